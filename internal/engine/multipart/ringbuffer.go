package multipart

import "github.com/valyala/bytebufferpool"

// ringBufferPool leases the growable backing arrays RingBuffer instances
// grow into and shrink back to zero before returning. This is the same
// "borrow instead of allocate" move buffers.BufferPool makes with sync.Pool
// for shockwave's fixed-size classes; bytebufferpool is a better fit here
// because a RingBuffer's capacity genuinely varies per-parse (small text
// forms vs. multi-megabyte file uploads) rather than falling into a small
// number of fixed size classes.
var ringBufferPool bytebufferpool.Pool

const initialRingBufferCapacity = 64 << 10 // 64 KiB, a common chunk size

// RingBuffer is the scanner's working set: a growable byte array tracking
// how much of it holds live, unconsumed data (valid), and two indices
// (start, end) the Scanner uses to record the bounds of whatever it most
// recently found — either a completed boundary match or a conservative
// "safe to emit" cut point.
type RingBuffer struct {
	bb      *bytebufferpool.ByteBuffer
	valid   int
	start   int
	end     int
	ceiling int
}

// newRingBuffer returns a RingBuffer whose backing array will never grow
// past ceiling bytes.
func newRingBuffer(ceiling int) *RingBuffer {
	bb := ringBufferPool.Get()
	if cap(bb.B) < initialRingBufferCapacity {
		bb.B = make([]byte, initialRingBufferCapacity)
	} else {
		bb.B = bb.B[:cap(bb.B)]
	}
	return &RingBuffer{bb: bb, ceiling: ceiling}
}

// Valid reports how many bytes of the backing array currently hold live data.
func (r *RingBuffer) Valid() int { return r.valid }

// Live returns the buffer's unconsumed bytes. The returned slice aliases
// the RingBuffer's backing array and is invalidated by the next Append or
// ShiftTo call.
func (r *RingBuffer) Live() []byte { return r.bb.B[:r.valid] }

// Append copies chunk onto the end of the live region, growing the backing
// array (doubling) as needed. It returns ErrMemoryLimit if chunk cannot be
// appended without exceeding the configured ceiling.
func (r *RingBuffer) Append(chunk []byte) error {
	need := r.valid + len(chunk)
	if need > r.ceiling {
		return ErrMemoryLimit
	}
	if need > cap(r.bb.B) {
		newCap := cap(r.bb.B)
		if newCap == 0 {
			newCap = initialRingBufferCapacity
		}
		for newCap < need {
			newCap *= 2
		}
		if newCap > r.ceiling {
			newCap = r.ceiling
		}
		if newCap < need {
			return ErrMemoryLimit
		}
		grown := make([]byte, newCap)
		copy(grown, r.bb.B[:r.valid])
		r.bb.B = grown
	}
	copy(r.bb.B[r.valid:need], chunk)
	r.valid = need
	return nil
}

// ShiftTo returns the bytes from the start of the live region up to the
// most recently recorded start index, then compacts the buffer by
// discarding everything through the most recently recorded end index
// (which is >= start; for a non-match "safe to emit" cut point the two
// are equal). The returned slice is a copy and remains valid after the
// shift.
func (r *RingBuffer) ShiftTo() []byte {
	out := make([]byte, r.start)
	copy(out, r.bb.B[:r.start])

	remaining := r.valid - r.end
	copy(r.bb.B, r.bb.B[r.end:r.valid])
	r.valid = remaining
	r.start = 0
	r.end = 0

	return out
}

// Release returns the backing array to the shared pool. The RingBuffer
// must not be used again afterward.
func (r *RingBuffer) Release() {
	if r.bb == nil {
		return
	}
	r.bb.Reset()
	ringBufferPool.Put(r.bb)
	r.bb = nil
}
