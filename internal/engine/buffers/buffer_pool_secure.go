package buffers

import (
	"crypto/rand"
	"sync"
	"sync/atomic"
)

// SecureBufferPool provides pre-zeroed buffers for security-sensitive operations.
//
// Key features:
// - Buffers are zeroed before being returned to pool
// - Buffers are zeroed when retrieved from pool (defense in depth)
// - Optional random fill for defense against memory scanning
// - Separate pools from regular buffers (no cross-contamination)
//
// Use cases:
// - Password processing
// - API keys and tokens
// - Cryptographic operations
// - Any sensitive data that should not leak
//
// Performance:
// - ~10-20% slower than regular pool due to zeroing
// - Still much faster than allocation (5-10x speedup)
type SecureBufferPool struct {
	// Size-specific pools
	pool2KB  *secureBufferPool
	pool4KB  *secureBufferPool
	pool8KB  *secureBufferPool
	pool16KB *secureBufferPool
	pool32KB *secureBufferPool
	pool64KB *secureBufferPool

	// Configuration
	randomFill bool // Fill with random data instead of zeros

	// Metrics
	totalGets atomic.Uint64
	totalPuts atomic.Uint64
}

// secureBufferPool manages a single size class of secure buffers
type secureBufferPool struct {
	size       int
	pool       sync.Pool
	randomFill bool

	// Metrics
	gets      atomic.Uint64
	puts      atomic.Uint64
	hits      atomic.Uint64
	misses    atomic.Uint64
	allocated atomic.Uint64
}

// newSecureBufferPool creates a new secure buffer pool
func newSecureBufferPool(size int, randomFill bool) *secureBufferPool {
	sbp := &secureBufferPool{
		size:       size,
		randomFill: randomFill,
	}
	sbp.pool.New = func() interface{} {
		sbp.misses.Add(1)
		sbp.allocated.Add(uint64(size))

		// Allocate and zero
		buf := make([]byte, size)
		for i := range buf {
			buf[i] = 0
		}

		return &buf
	}
	return sbp
}

// Get retrieves a secure buffer from the pool
// The buffer is guaranteed to be zeroed
func (sbp *secureBufferPool) Get() []byte {
	sbp.gets.Add(1)

	bufPtr := sbp.pool.Get().(*[]byte)
	buf := *bufPtr

	// Defense in depth: zero buffer even though it should already be zeroed
	if sbp.randomFill {
		// Fill with random data for defense against memory scanning
		rand.Read(buf)
	} else {
		// Zero the buffer
		for i := range buf {
			buf[i] = 0
		}
	}

	return buf[:sbp.size]
}

// Put returns a secure buffer to the pool
// The buffer is zeroed before being returned
func (sbp *secureBufferPool) Put(buf []byte) {
	if buf == nil {
		return
	}

	sbp.puts.Add(1)

	// Critical: Zero before returning to pool
	for i := range buf {
		buf[i] = 0
	}

	if cap(buf) < sbp.size {
		return
	}

	buf = buf[:sbp.size]
	sbp.pool.Put(&buf)
}

// NewSecureBufferPool creates a new secure buffer pool
// If randomFill is true, buffers are filled with random data instead of zeros
func NewSecureBufferPool(randomFill bool) *SecureBufferPool {
	return &SecureBufferPool{
		pool2KB:    newSecureBufferPool(BufferSize2KB, randomFill),
		pool4KB:    newSecureBufferPool(BufferSize4KB, randomFill),
		pool8KB:    newSecureBufferPool(BufferSize8KB, randomFill),
		pool16KB:   newSecureBufferPool(BufferSize16KB, randomFill),
		pool32KB:   newSecureBufferPool(BufferSize32KB, randomFill),
		pool64KB:   newSecureBufferPool(BufferSize64KB, randomFill),
		randomFill: randomFill,
	}
}

// Get retrieves a secure buffer from the pool
// The buffer is guaranteed to be zeroed (or random-filled)
func (sbp *SecureBufferPool) Get(size int) []byte {
	sbp.totalGets.Add(1)

	switch {
	case size <= BufferSize2KB:
		return sbp.pool2KB.Get()
	case size <= BufferSize4KB:
		return sbp.pool4KB.Get()
	case size <= BufferSize8KB:
		return sbp.pool8KB.Get()
	case size <= BufferSize16KB:
		return sbp.pool16KB.Get()
	case size <= BufferSize32KB:
		return sbp.pool32KB.Get()
	case size <= BufferSize64KB:
		return sbp.pool64KB.Get()
	default:
		// Allocate directly and zero
		buf := make([]byte, size)
		for i := range buf {
			buf[i] = 0
		}
		return buf
	}
}

// Put returns a secure buffer to the pool
// The buffer is zeroed before being returned
func (sbp *SecureBufferPool) Put(buf []byte) {
	if buf == nil {
		return
	}

	sbp.totalPuts.Add(1)

	// Zero first (defense in depth - Put also zeros)
	for i := range buf {
		buf[i] = 0
	}

	size := cap(buf)

	switch {
	case size >= BufferSize2KB && size < BufferSize4KB:
		sbp.pool2KB.Put(buf)
	case size >= BufferSize4KB && size < BufferSize8KB:
		sbp.pool4KB.Put(buf)
	case size >= BufferSize8KB && size < BufferSize16KB:
		sbp.pool8KB.Put(buf)
	case size >= BufferSize16KB && size < BufferSize32KB:
		sbp.pool16KB.Put(buf)
	case size >= BufferSize32KB && size < BufferSize64KB:
		sbp.pool32KB.Put(buf)
	case size >= BufferSize64KB:
		sbp.pool64KB.Put(buf)
	}
}

// SecureBufferPoolMetrics contains metrics for secure buffer pool
type SecureBufferPoolMetrics struct {
	Pool2KB  SizedPoolMetrics
	Pool4KB  SizedPoolMetrics
	Pool8KB  SizedPoolMetrics
	Pool16KB SizedPoolMetrics
	Pool32KB SizedPoolMetrics
	Pool64KB SizedPoolMetrics

	TotalGets     uint64
	TotalPuts     uint64
	GlobalHitRate float64
}

// GetMetrics returns metrics for the secure buffer pool
func (sbp *SecureBufferPool) GetMetrics() SecureBufferPoolMetrics {
	metrics := SecureBufferPoolMetrics{
		Pool2KB:   sbp.getSecureSizedMetrics(sbp.pool2KB),
		Pool4KB:   sbp.getSecureSizedMetrics(sbp.pool4KB),
		Pool8KB:   sbp.getSecureSizedMetrics(sbp.pool8KB),
		Pool16KB:  sbp.getSecureSizedMetrics(sbp.pool16KB),
		Pool32KB:  sbp.getSecureSizedMetrics(sbp.pool32KB),
		Pool64KB:  sbp.getSecureSizedMetrics(sbp.pool64KB),
		TotalGets: sbp.totalGets.Load(),
		TotalPuts: sbp.totalPuts.Load(),
	}

	// Compute global hit rate
	totalHits := metrics.Pool2KB.Hits + metrics.Pool4KB.Hits +
		metrics.Pool8KB.Hits + metrics.Pool16KB.Hits +
		metrics.Pool32KB.Hits + metrics.Pool64KB.Hits

	totalMisses := metrics.Pool2KB.Misses + metrics.Pool4KB.Misses +
		metrics.Pool8KB.Misses + metrics.Pool16KB.Misses +
		metrics.Pool32KB.Misses + metrics.Pool64KB.Misses

	total := totalHits + totalMisses
	if total > 0 {
		metrics.GlobalHitRate = float64(totalHits) / float64(total) * 100.0
	}

	return metrics
}

func (sbp *SecureBufferPool) getSecureSizedMetrics(pool *secureBufferPool) SizedPoolMetrics {
	gets := pool.gets.Load()
	puts := pool.puts.Load()
	misses := pool.misses.Load()
	allocated := pool.allocated.Load()

	var hits uint64
	if gets >= misses {
		hits = gets - misses
	}

	var hitRate float64
	if gets > 0 {
		hitRate = float64(hits) / float64(gets) * 100.0
	}

	return SizedPoolMetrics{
		Size:      pool.size,
		Gets:      gets,
		Puts:      puts,
		Hits:      hits,
		Misses:    misses,
		HitRate:   hitRate,
		Allocated: allocated,
	}
}

// Global secure buffer pool (zero-filled)
var globalSecureBufferPool = NewSecureBufferPool(false)

// Global random-filled buffer pool (for paranoid security)
var globalRandomBufferPool = NewSecureBufferPool(true)

// GetSecureBuffer retrieves a secure buffer from the global pool
// The buffer is guaranteed to be zeroed
func GetSecureBuffer(size int) []byte {
	return globalSecureBufferPool.Get(size)
}

// PutSecureBuffer returns a secure buffer to the global pool
// The buffer is zeroed before being returned
func PutSecureBuffer(buf []byte) {
	globalSecureBufferPool.Put(buf)
}

// GetRandomBuffer retrieves a random-filled buffer from the global pool
// Use this for defense against memory scanning attacks
func GetRandomBuffer(size int) []byte {
	return globalRandomBufferPool.Get(size)
}

// PutRandomBuffer returns a random-filled buffer to the global pool
func PutRandomBuffer(buf []byte) {
	globalRandomBufferPool.Put(buf)
}

// GetSecureBufferPoolMetrics returns metrics from the global secure pool
func GetSecureBufferPoolMetrics() SecureBufferPoolMetrics {
	return globalSecureBufferPool.GetMetrics()
}

// GetRandomBufferPoolMetrics returns metrics from the global random pool
func GetRandomBufferPoolMetrics() SecureBufferPoolMetrics {
	return globalRandomBufferPool.GetMetrics()
}

// Example usage:
//
//	// For passwords, tokens, etc.
//	func processPassword(password string) error {
//	    buf := GetSecureBuffer(len(password))
//	    defer PutSecureBuffer(buf)
//
//	    copy(buf, password)
//	    // ... process password ...
//	    // Buffer automatically zeroed on return
//	}
//
//	// For paranoid security (defense against memory scanning)
//	func processAPIKey(key string) error {
//	    buf := GetRandomBuffer(len(key))
//	    defer PutRandomBuffer(buf)
//
//	    copy(buf, key)
//	    // ... process key ...
//	}
