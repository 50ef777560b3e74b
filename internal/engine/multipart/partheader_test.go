package multipart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePartHeaderSingleLine(t *testing.T) {
	h := parsePartHeader([]byte(`Content-Disposition: form-data; name="u"`))
	require.Equal(t, 1, h.Len())
	assert.Equal(t, `form-data; name="u"`, h.Get("content-disposition"))
}

func TestParsePartHeaderMultipleLines(t *testing.T) {
	raw := "Content-Disposition: form-data; name=\"file\"; filename=\"a.txt\"\r\nContent-Type: text/plain"
	h := parsePartHeader([]byte(raw))
	require.Equal(t, 2, h.Len())
	assert.Equal(t, "text/plain", h.Get("Content-Type"))
	assert.Equal(t, `form-data; name="file"; filename="a.txt"`, h.Get("content-disposition"))
}

func TestParsePartHeaderSkipsMalformedLines(t *testing.T) {
	raw := "Content-Type: text/plain\r\nthis line has no colon\r\nX-Custom: ok"
	h := parsePartHeader([]byte(raw))
	require.Equal(t, 2, h.Len())
	assert.Equal(t, "ok", h.Get("x-custom"))
}

func TestParsePartHeaderLookupIsCaseInsensitive(t *testing.T) {
	h := parsePartHeader([]byte("X-Token: abc123"))
	assert.Equal(t, "abc123", h.Get("x-token"))
	assert.Equal(t, "abc123", h.Get("X-TOKEN"))
}

func TestContentDispositionParamsBasic(t *testing.T) {
	name, filename := contentDispositionParams(`form-data; name="u"`)
	assert.Equal(t, "u", name)
	assert.Equal(t, "", filename)
}

func TestContentDispositionParamsWithFilename(t *testing.T) {
	name, filename := contentDispositionParams(`form-data; name="file"; filename="a b.txt"`)
	assert.Equal(t, "file", name)
	assert.Equal(t, "a b.txt", filename)
}

func TestContentDispositionParamsUnquotedToken(t *testing.T) {
	name, _ := contentDispositionParams(`form-data; name=unquoted`)
	assert.Equal(t, "unquoted", name)
}

func TestContentDispositionParamsExtFilename(t *testing.T) {
	_, filename := contentDispositionParams(`form-data; name="f"; filename*=UTF-8''caf%C3%A9.txt`)
	assert.Equal(t, "café.txt", filename)
}

func TestContentDispositionParamsAbsent(t *testing.T) {
	name, filename := contentDispositionParams("")
	assert.Equal(t, "", name)
	assert.Equal(t, "", filename)
}
