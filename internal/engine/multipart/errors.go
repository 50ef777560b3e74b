// Package multipart implements a streaming multipart/form-data body parser.
//
// It consumes an HTTP request body as a sequence of opaque byte chunks and
// yields, one at a time, the logical parts contained within it. Each part's
// body is itself a lazy, bounded byte stream so a multi-gigabyte upload can
// be forwarded without ever buffering the whole request in memory.
package multipart

import "errors"

// Parser errors. All are terminal: once returned from Iterator.Next or a
// Part's body stream, the Iterator is done and the source is released.
var (
	// ErrInvalidContentType indicates the request did not carry a
	// Content-Type: multipart/...; boundary=... header.
	ErrInvalidContentType = errors.New("multipart: missing or invalid Content-Type")

	// ErrInvalidBoundary indicates the boundary token is empty or does not
	// conform to RFC 2046 §5.1.1 (1-70 chars from the allowed charset).
	ErrInvalidBoundary = errors.New("multipart: invalid boundary")

	// ErrNoRequestBody indicates the source had no body to read.
	ErrNoRequestBody = errors.New("multipart: request has no body")

	// ErrMemoryLimit indicates the RingBuffer would have to grow past its
	// configured ceiling to hold the next chunk.
	ErrMemoryLimit = errors.New("multipart: memory ceiling exceeded")

	// ErrPayloadLimit indicates the cumulative bytes read from the source
	// exceeded the configured payload ceiling.
	ErrPayloadLimit = errors.New("multipart: payload ceiling exceeded")

	// ErrPartLimit indicates the configured maximum number of parts was
	// reached and another part was requested.
	ErrPartLimit = errors.New("multipart: part limit exceeded")

	// ErrUnexpectedEOF indicates the source was exhausted before a
	// terminator (closing boundary or part-terminating boundary) was found.
	ErrUnexpectedEOF = errors.New("multipart: unexpected EOF")

	// ErrInvalidHeader indicates a per-part header block could not be
	// located (no CRLF-CRLF terminator found before the source ended).
	ErrInvalidHeader = errors.New("multipart: invalid part header block")
)
