package multipart

// Needle is a precomputed search pattern used by the Scanner to find a
// boundary marker inside a RingBuffer's live window.
//
// It implements Boyer-Moore-Horspool: a bad-character skip table indexed
// by byte value, plus a per-byte list of positions within the pattern,
// used by the partial-suffix probe to recognize a boundary straddling two
// chunks. Both tables are fixed-size [256]-element arrays rather than
// maps, the same trade this codebase already makes in http11.Header for
// small fixed-domain lookups — a linear/array scan over 256 byte values
// is cheaper and allocation-free compared to a map.
type Needle struct {
	pattern []byte
	last    int        // len(pattern) - 1
	skip    [256]int   // bad-character skip distance, indexed by byte value
	loc     [256][]int // ascending positions of each byte value within pattern
}

// NewNeedle builds a Needle from a non-empty pattern. The returned Needle
// holds its own copy of pattern; callers may discard or mutate their slice
// afterward.
func NewNeedle(pattern []byte) *Needle {
	n := &Needle{
		pattern: append([]byte(nil), pattern...),
	}
	n.last = len(n.pattern) - 1

	for i := range n.skip {
		n.skip[i] = len(n.pattern)
	}
	for i := 0; i < n.last; i++ {
		// Later iterations overwrite earlier ones, so each byte value
		// ends up mapped to the distance from its largest position
		// that precedes the final pattern byte.
		n.skip[n.pattern[i]] = n.last - i
	}

	for i, b := range n.pattern {
		n.loc[b] = append(n.loc[b], i)
	}

	return n
}

// Len returns the pattern length.
func (n *Needle) Len() int { return len(n.pattern) }

// Bytes returns the pattern bytes. Callers must not modify the result.
func (n *Needle) Bytes() []byte { return n.pattern }
