package multipart

// Config controls the resource limits and behavior of an Iterator.
//
// Like shockwave's server.Config and bolt's core.Config, this is a plain
// struct with exported fields and a Default constructor. The library never
// reads environment variables or flags itself; callers (cmd/mpdump, the
// core.Context integration) are responsible for turning CLI flags or env
// vars into a Config.
type Config struct {
	// MemoryCeiling bounds how large the RingBuffer's backing array may
	// grow while searching for a boundary. Hitting it returns ErrMemoryLimit.
	MemoryCeiling int

	// PayloadCeiling bounds the cumulative number of bytes the Iterator
	// will pull from the Source across the entire body. Hitting it returns
	// ErrPayloadLimit. The limit is checked as bytes arrive; a request's
	// Content-Length is not consulted, so an oversized request is not
	// rejected before the first read.
	PayloadCeiling int64

	// MaxParts bounds how many parts the Iterator will yield before
	// returning ErrPartLimit. Zero means unlimited.
	MaxParts int

	// MaxDrainBytes bounds how many bytes Part.Bytes()/Part.Text() will
	// buffer in memory on a caller's behalf. It is independent of
	// MemoryCeiling, which only bounds the scanner's own working set.
	// Hitting it returns ErrPayloadLimit.
	MaxDrainBytes int64
}

const (
	defaultMemoryCeiling  = 4 << 20  // 4 MiB
	defaultPayloadCeiling = 16 << 20 // 16 MiB — see DESIGN.md, Open Question (i)
	defaultMaxDrainBytes  = 32 << 20 // 32 MiB
)

// DefaultConfig returns the Config used when callers don't supply one.
func DefaultConfig() Config {
	return Config{
		MemoryCeiling:  defaultMemoryCeiling,
		PayloadCeiling: defaultPayloadCeiling,
		MaxParts:       0,
		MaxDrainBytes:  defaultMaxDrainBytes,
	}
}

func (c Config) withDefaults() Config {
	if c.MemoryCeiling <= 0 {
		c.MemoryCeiling = defaultMemoryCeiling
	}
	if c.PayloadCeiling <= 0 {
		c.PayloadCeiling = defaultPayloadCeiling
	}
	if c.MaxDrainBytes <= 0 {
		c.MaxDrainBytes = defaultMaxDrainBytes
	}
	return c
}
