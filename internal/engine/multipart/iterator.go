package multipart

import (
	"errors"
	"io"
	"strings"
)

type iteratorState int

const (
	stateStart iteratorState = iota
	stateHeadersPending
	stateAfterPart
	stateDone
)

// Stats is a point-in-time snapshot of one Iterator's progress, useful for
// the Prometheus wiring in metrics.go and for cmd/mpdump's summary line.
// It is additive bookkeeping, not excluded by any Non-goal.
type Stats struct {
	PartsYielded   int
	BytesRead      int64
	PreambleLength int64
	EpilogueLength int64
}

// Iterator drives the parser's state machine: preamble skip, header scan,
// part emission, auto-drain, terminator disambiguation, epilogue drain.
// It exclusively owns a RingBuffer and a Source; a Part's body stream
// borrows the buffer under the discipline that at most one Part is ever
// live (spec.md §3, "Ownership").
type Iterator struct {
	src    Source
	buf    *RingBuffer
	cfg    Config
	state  iteratorState
	opening          *Needle // "--" + boundary + CRLF, used once at Start
	terminator       *Needle // CRLF + "--" + boundary, used by every PartStream
	headerTerminator *Needle // CRLF CRLF

	current *PartStream

	partsYielded   int
	bytesRead      int64
	preambleLength int64
	epilogueLength int64

	err  error
	done bool
}

// NewIterator validates src's Content-Type header and boundary token, then
// returns an Iterator ready to yield Parts. Construction fails closed —
// ErrInvalidContentType or ErrInvalidBoundary — rather than deferring
// validation to the first scan.
func NewIterator(src Source, cfg Config) (*Iterator, error) {
	cfg = cfg.withDefaults()

	boundary, err := extractBoundary(src.Header("Content-Type"))
	if err != nil {
		recordError(err)
		return nil, err
	}

	it := &Iterator{
		src:              src,
		buf:              newRingBuffer(cfg.MemoryCeiling),
		cfg:              cfg,
		opening:          NewNeedle([]byte("--" + boundary + "\r\n")),
		terminator:       NewNeedle([]byte("\r\n--" + boundary)),
		headerTerminator: NewNeedle([]byte("\r\n\r\n")),
	}
	return it, nil
}

// extractBoundary parses a Content-Type header value, validating it names
// a multipart subtype and carries a boundary token conforming to RFC 2046
// §5.1.1 (1-70 characters from the restricted bchars set; may be quoted).
func extractBoundary(contentType string) (string, error) {
	if contentType == "" {
		return "", ErrInvalidContentType
	}
	mediaType, params := splitContentType(contentType)
	if !strings.HasPrefix(strings.ToLower(mediaType), "multipart/") {
		return "", ErrInvalidContentType
	}
	boundary, ok := params["boundary"]
	if !ok {
		return "", ErrInvalidContentType
	}
	if len(boundary) >= 2 && boundary[0] == '"' && boundary[len(boundary)-1] == '"' {
		boundary = boundary[1 : len(boundary)-1]
	}
	if !validBoundaryToken(boundary) {
		return "", ErrInvalidBoundary
	}
	return boundary, nil
}

func splitContentType(value string) (string, map[string]string) {
	fields := strings.Split(value, ";")
	media := strings.TrimSpace(fields[0])
	params := make(map[string]string, len(fields)-1)
	for _, f := range fields[1:] {
		f = strings.TrimSpace(f)
		eq := strings.IndexByte(f, '=')
		if eq < 0 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(f[:eq]))
		params[key] = strings.TrimSpace(f[eq+1:])
	}
	return media, params
}

const bchars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789'()+_,-./:=? "

func validBoundaryToken(b string) bool {
	if len(b) == 0 || len(b) > 70 {
		return false
	}
	for i := 0; i < len(b); i++ {
		if strings.IndexByte(bchars, b[i]) < 0 {
			return false
		}
	}
	// A trailing space is only legal inside a quoted boundary, which the
	// caller has already stripped quotes from by this point, so disallow it.
	return b[len(b)-1] != ' '
}

// Next advances the Iterator and returns the next Part, or (nil, io.EOF)
// once the body (and its epilogue) have been fully consumed. Any other
// error is terminal: the Iterator releases its Source and must not be
// used again.
func (it *Iterator) Next() (*Part, error) {
	if it.err != nil {
		return nil, it.err
	}
	if it.done {
		return nil, io.EOF
	}

	if it.current != nil && !it.current.done {
		if _, err := io.Copy(io.Discard, it.current); err != nil {
			return nil, it.fail(err)
		}
	}
	it.current = nil

	switch it.state {
	case stateStart:
		if err := it.skipPreamble(); err != nil {
			return nil, it.fail(err)
		}
		it.state = stateHeadersPending
		return it.Next()

	case stateHeadersPending:
		if it.cfg.MaxParts > 0 && it.partsYielded >= it.cfg.MaxParts {
			return nil, it.fail(ErrPartLimit)
		}
		header, err := it.scanHeaderBlock()
		if err != nil {
			return nil, it.fail(err)
		}
		ps := &PartStream{it: it}
		part := newPart(header, it.cfg.MaxDrainBytes)
		part.body = ps
		it.current = ps
		it.partsYielded++
		recordPartYielded()
		it.state = stateAfterPart
		return part, nil

	case stateAfterPart:
		two, err := it.peekTwo()
		if err != nil {
			return nil, it.fail(err)
		}
		it.discardTwo()
		if two[0] == '-' && two[1] == '-' {
			if err := it.drainEpilogue(); err != nil {
				return nil, it.fail(err)
			}
			it.done = true
			it.buf.Release()
			return nil, io.EOF
		}
		it.state = stateHeadersPending
		return it.Next()
	}

	return nil, io.EOF
}

// Stats returns a snapshot of this Iterator's progress so far.
func (it *Iterator) Stats() Stats {
	return Stats{
		PartsYielded:   it.partsYielded,
		BytesRead:      it.bytesRead,
		PreambleLength: it.preambleLength,
		EpilogueLength: it.epilogueLength,
	}
}

func (it *Iterator) fail(err error) error {
	it.err = err
	it.state = stateDone
	recordError(err)
	if it.buf != nil {
		it.buf.Release()
	}
	return err
}

// pullMore reads the next chunk from the Source, appends it to the
// RingBuffer, and enforces payload_ceiling. An io.EOF from the Source
// surfaces as ErrUnexpectedEOF — skipPreamble's first pull translates it
// back; drainEpilogue reads the Source itself and never calls pullMore.
func (it *Iterator) pullMore() error {
	chunk, err := it.src.ReadChunk()
	if len(chunk) > 0 {
		it.bytesRead += int64(len(chunk))
		if it.cfg.PayloadCeiling > 0 && it.bytesRead > it.cfg.PayloadCeiling {
			return ErrPayloadLimit
		}
		if appendErr := it.buf.Append(chunk); appendErr != nil {
			return appendErr
		}
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ErrUnexpectedEOF
		}
		return err
	}
	if len(chunk) == 0 {
		return ErrUnexpectedEOF
	}
	return nil
}

// skipPreamble discards bytes before the first opening boundary match,
// counting them against payload_ceiling (spec.md §4.6, "Preamble").
func (it *Iterator) skipPreamble() error {
	if it.buf.valid == 0 && it.bytesRead == 0 {
		if err := it.pullMore(); err != nil {
			if errors.Is(err, ErrUnexpectedEOF) {
				return ErrNoRequestBody
			}
			return err
		}
	}

	for {
		res := Find(it.buf, it.opening)
		if res.Found {
			discarded := it.buf.ShiftTo()
			it.preambleLength += int64(len(discarded))
			return nil
		}
		discarded := it.buf.ShiftTo()
		it.preambleLength += int64(len(discarded))
		if err := it.pullMore(); err != nil {
			return err
		}
	}
}

// scanHeaderBlock locates the CRLFCRLF terminating a part's header block
// and parses everything before it. The whole block is buffered (headers
// are small and bounded by memory_ceiling like everything else); unlike
// part bodies there is no partial-emission path.
func (it *Iterator) scanHeaderBlock() (Header, error) {
	for {
		res := Find(it.buf, it.headerTerminator)
		if res.Found {
			raw := it.buf.ShiftTo()
			return parsePartHeader(raw), nil
		}
		if err := it.pullMore(); err != nil {
			if errors.Is(err, ErrUnexpectedEOF) {
				return Header{}, ErrInvalidHeader
			}
			return Header{}, err
		}
	}
}

// pumpPart implements PartStream's single pull step (spec.md §4.4).
func (it *Iterator) pumpPart() ([]byte, bool, error) {
	for {
		res := Find(it.buf, it.terminator)
		if res.Found {
			return it.buf.ShiftTo(), true, nil
		}

		if it.buf.start == 0 {
			if ProbePartialSuffix(it.buf, it.terminator) {
				if it.buf.start > 0 {
					return it.buf.ShiftTo(), false, nil
				}
				// Pinned at 0: even the tail alone might be a boundary
				// prefix. Nothing is safe to emit yet.
			} else {
				it.buf.start = it.buf.valid
				it.buf.end = it.buf.valid
				if it.buf.start > 0 {
					return it.buf.ShiftTo(), false, nil
				}
			}
		} else {
			return it.buf.ShiftTo(), false, nil
		}

		if err := it.pullMore(); err != nil {
			return nil, false, err
		}
	}
}

// peekTwo ensures at least two bytes are buffered and returns them without
// consuming them.
func (it *Iterator) peekTwo() ([2]byte, error) {
	for it.buf.valid < 2 {
		if err := it.pullMore(); err != nil {
			return [2]byte{}, err
		}
	}
	live := it.buf.Live()
	return [2]byte{live[0], live[1]}, nil
}

// discardTwo consumes the two bytes peekTwo just inspected (either the
// final "--" marker or the CRLF separating two parts).
func (it *Iterator) discardTwo() {
	it.buf.start = 2
	it.buf.end = 2
	it.buf.ShiftTo()
}

// drainEpilogue discards everything remaining in the buffer and on the
// Source, still counting against payload_ceiling, until the Source is
// exhausted.
func (it *Iterator) drainEpilogue() error {
	it.epilogueLength += int64(it.buf.valid - it.buf.end)
	it.buf.start = it.buf.valid
	it.buf.end = it.buf.valid
	it.buf.ShiftTo()

	for {
		chunk, err := it.src.ReadChunk()
		if len(chunk) > 0 {
			it.bytesRead += int64(len(chunk))
			it.epilogueLength += int64(len(chunk))
			if it.cfg.PayloadCeiling > 0 && it.bytesRead > it.cfg.PayloadCeiling {
				return ErrPayloadLimit
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if len(chunk) == 0 {
			return nil
		}
	}
}
