package core

import (
	"errors"
	"io"

	"github.com/yourusername/bolt/internal/engine/multipart"
)

// MultipartReader builds a multipart.Iterator over this Context's request
// body, using whichever request the Context wraps — shockwaveReq's
// chunked-or-fixed-length Body in the hot path, httpReq in test mode —
// the same branch GetHeader already makes. The parser itself
// never learns which one it got; it only sees a multipart.Source.
func (c *Context) MultipartReader() (*multipart.Iterator, error) {
	var src multipart.Source

	switch {
	case c.shockwaveReq != nil:
		if c.shockwaveReq.Body == nil {
			return nil, ErrBadRequest
		}
		src = multipart.NewReaderSource(c.shockwaveReq.Body, func(name string) string {
			return string(c.shockwaveReq.Header.Get([]byte(name)))
		})

	case c.httpReq != nil:
		if c.httpReq.Body == nil {
			return nil, ErrBadRequest
		}
		src = multipart.NewReaderSource(c.httpReq.Body, c.httpReq.Header.Get)

	default:
		return nil, ErrBadRequest
	}

	return multipart.NewIterator(src, multipart.DefaultConfig())
}

// MultipartForm drains a multipart.Iterator built from this Context's
// request body. Text fields (no filename) collapse into the returned map,
// last value wins, matching the url.Values convention bolt's own
// query-string parsing already follows. Parts carrying a filename are
// handed back unread — callers that want the bytes call Part.Bytes() or
// Part.Text() themselves, so a large upload is never forced into memory
// just because the caller also wanted the three text fields sitting next
// to it in the same form.
func (c *Context) MultipartForm(cfg multipart.Config) (fields map[string]string, files []*multipart.Part, err error) {
	var src multipart.Source

	switch {
	case c.shockwaveReq != nil:
		if c.shockwaveReq.Body == nil {
			return nil, nil, ErrBadRequest
		}
		src = multipart.NewReaderSource(c.shockwaveReq.Body, func(name string) string {
			return string(c.shockwaveReq.Header.Get([]byte(name)))
		})

	case c.httpReq != nil:
		if c.httpReq.Body == nil {
			return nil, nil, ErrBadRequest
		}
		src = multipart.NewReaderSource(c.httpReq.Body, c.httpReq.Header.Get)

	default:
		return nil, nil, ErrBadRequest
	}

	it, err := multipart.NewIterator(src, cfg)
	if err != nil {
		return nil, nil, err
	}

	fields = make(map[string]string, 8)
	for {
		part, nerr := it.Next()
		if nerr != nil {
			if errors.Is(nerr, io.EOF) {
				break
			}
			return nil, nil, nerr
		}
		if part.Filename == "" {
			text, terr := part.Text()
			if terr != nil {
				return nil, nil, terr
			}
			fields[part.Name] = text
			continue
		}
		files = append(files, part)
	}

	return fields, files, nil
}
