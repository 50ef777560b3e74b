package multipart

import "io"

// PartStream is the lazy, single-pass, bounded byte stream exposed as a
// Part's Body. It has no buffer of its own beyond one pending slice handed
// back by the Iterator's RingBuffer — the same "pull more on demand,
// return io.EOF when the logical body ends" discipline http11's
// ChunkedReader uses for chunked transfer bodies, just driven by a
// boundary search instead of a chunk-size header.
type PartStream struct {
	it      *Iterator
	pending []byte
	err     error
	done    bool
}

// Read implements io.Reader. It is single-consumer and not safe for
// concurrent use, matching the non-restartable contract spec.md assigns
// to Part.body.
func (ps *PartStream) Read(p []byte) (int, error) {
	if ps.err != nil {
		return 0, ps.err
	}
	for len(ps.pending) == 0 {
		if ps.done {
			return 0, io.EOF
		}
		chunk, found, err := ps.it.pumpPart()
		if err != nil {
			ps.err = err
			ps.done = true
			ps.it.fail(err)
			return 0, err
		}
		ps.pending = chunk
		if found {
			ps.done = true
		}
	}
	n := copy(p, ps.pending)
	ps.pending = ps.pending[n:]
	recordBytesStreamed(n)
	return n, nil
}
