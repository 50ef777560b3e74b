package multipart

import (
	"errors"
	"sync/atomic"
)

// Lightweight, always-on counters the parser updates regardless of build
// tags — the same split shockwave's buffer pool uses: plain atomic state
// here, a //go:build prometheus file (metrics_prometheus.go) that exposes
// it through promauto when that tag is set, and nothing extra compiled in
// when it isn't.
var (
	globalPartsYielded  int64
	globalBytesStreamed int64
	globalErrorCounts   [int(errKindCount)]int64
)

type errorKind int

const (
	errKindInvalidContentType errorKind = iota
	errKindInvalidBoundary
	errKindNoRequestBody
	errKindMemoryLimit
	errKindPayloadLimit
	errKindPartLimit
	errKindUnexpectedEOF
	errKindInvalidHeader
	errKindCount
)

var errorKindNames = [int(errKindCount)]string{
	errKindInvalidContentType: "invalid_content_type",
	errKindInvalidBoundary:    "invalid_boundary",
	errKindNoRequestBody:      "no_request_body",
	errKindMemoryLimit:        "memory_limit",
	errKindPayloadLimit:       "payload_limit",
	errKindPartLimit:          "part_limit",
	errKindUnexpectedEOF:      "unexpected_eof",
	errKindInvalidHeader:      "invalid_header",
}

func classifyError(err error) (errorKind, bool) {
	switch {
	case errors.Is(err, ErrInvalidContentType):
		return errKindInvalidContentType, true
	case errors.Is(err, ErrInvalidBoundary):
		return errKindInvalidBoundary, true
	case errors.Is(err, ErrNoRequestBody):
		return errKindNoRequestBody, true
	case errors.Is(err, ErrMemoryLimit):
		return errKindMemoryLimit, true
	case errors.Is(err, ErrPayloadLimit):
		return errKindPayloadLimit, true
	case errors.Is(err, ErrPartLimit):
		return errKindPartLimit, true
	case errors.Is(err, ErrUnexpectedEOF):
		return errKindUnexpectedEOF, true
	case errors.Is(err, ErrInvalidHeader):
		return errKindInvalidHeader, true
	default:
		return 0, false
	}
}

func recordPartYielded() {
	atomic.AddInt64(&globalPartsYielded, 1)
}

func recordBytesStreamed(n int) {
	if n <= 0 {
		return
	}
	atomic.AddInt64(&globalBytesStreamed, int64(n))
}

func recordError(err error) {
	kind, ok := classifyError(err)
	if !ok {
		return
	}
	atomic.AddInt64(&globalErrorCounts[kind], 1)
}

// GlobalMetrics is a point-in-time snapshot of every Iterator's cumulative
// activity in this process. It's cheap to call and safe for concurrent use;
// the Prometheus collector (build tag prometheus) reads it on every scrape.
type GlobalMetrics struct {
	PartsYielded  int64
	BytesStreamed int64
	Errors        map[string]int64
}

// Metrics returns the current GlobalMetrics snapshot.
func Metrics() GlobalMetrics {
	errs := make(map[string]int64, int(errKindCount))
	for k := errorKind(0); k < errKindCount; k++ {
		if v := atomic.LoadInt64(&globalErrorCounts[k]); v != 0 {
			errs[errorKindNames[k]] = v
		}
	}
	return GlobalMetrics{
		PartsYielded:  atomic.LoadInt64(&globalPartsYielded),
		BytesStreamed: atomic.LoadInt64(&globalBytesStreamed),
		Errors:        errs,
	}
}
