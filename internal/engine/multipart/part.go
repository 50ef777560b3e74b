package multipart

import (
	"io"
	"strings"
)

// Part is the unit the Iterator yields: a header block plus a lazy body
// stream. A Part is invalidated the moment the Iterator advances past it —
// callers must fully read or drop Body before calling Iterator.Next again;
// the Iterator auto-drains an unfinished body rather than corrupting the
// scan state.
type Part struct {
	// Header holds every header field the part carried, case-insensitive,
	// multi-valued.
	Header Header

	// Name is the content-disposition "name" parameter, or "" if the part
	// had no content-disposition header (a deliberate policy choice —
	// the part is still yielded, see DESIGN.md's Open Question (ii)).
	Name string

	// Filename is the content-disposition "filename" parameter, or "" if
	// absent.
	Filename string

	// Type is the portion of Content-Type before the first ';', or "" if
	// the part carried no Content-Type header.
	Type string

	body     *PartStream
	maxDrain int64
}

func newPart(h Header, maxDrain int64) *Part {
	name, filename := contentDispositionParams(h.Get("Content-Disposition"))
	ctype := h.Get("Content-Type")
	if idx := strings.IndexByte(ctype, ';'); idx >= 0 {
		ctype = ctype[:idx]
	}
	return &Part{
		Header:   h,
		Name:     name,
		Filename: filename,
		Type:     strings.TrimSpace(ctype),
		maxDrain: maxDrain,
	}
}

// Body returns the part's lazy, single-consumer, non-restartable byte
// stream.
func (p *Part) Body() io.Reader { return p.body }

// Bytes drains Body into a contiguous byte slice, capped at the
// Config.MaxDrainBytes the Iterator was constructed with. Exceeding the
// cap returns ErrPayloadLimit without retaining the partial read.
func (p *Part) Bytes() ([]byte, error) {
	limited := io.LimitReader(p.body, p.maxDrain+1)
	buf, err := io.ReadAll(limited)
	if err != nil {
		return nil, err
	}
	if int64(len(buf)) > p.maxDrain {
		return nil, ErrPayloadLimit
	}
	return buf, nil
}

// Text is Bytes decoded as UTF-8 (no validation beyond the Go string
// conversion — malformed sequences pass through as the replacement
// character would on any other boundary, matching §7's lenient-decode
// policy for header-adjacent text).
func (p *Part) Text() (string, error) {
	b, err := p.Bytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
