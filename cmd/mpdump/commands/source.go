package commands

import (
	"io"
	"os"

	"github.com/yourusername/bolt/internal/engine/multipart"
)

// openSource opens path (or stdin, if path is "" or "-") and wraps it as a
// multipart.Source. A raw file has no Content-Type header of its own, so
// the caller-supplied contentType stands in for the one an HTTP request
// would have carried.
func openSource(path, contentType string) (multipart.Source, io.Closer, error) {
	if path == "" || path == "-" {
		return multipart.NewReaderSource(os.Stdin, constHeader(contentType)), io.NopCloser(nil), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return multipart.NewReaderSource(f, constHeader(contentType)), f, nil
}

func constHeader(contentType string) func(name string) string {
	return func(name string) string {
		if name == "Content-Type" {
			return contentType
		}
		return ""
	}
}
