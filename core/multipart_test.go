package core

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/bolt/internal/engine/multipart"
)

const multipartTestBoundary = "----CoreTestBoundary"
const multipartTestContentType = "multipart/form-data; boundary=" + multipartTestBoundary

func buildMultipartFormBody() string {
	const B = multipartTestBoundary
	const C = "\r\n"
	return "--" + B + C +
		`Content-Disposition: form-data; name="username"` + C + C +
		"alice" + C +
		"--" + B + C +
		`Content-Disposition: form-data; name="avatar"; filename="pic.bin"` + C +
		"Content-Type: application/octet-stream" + C + C +
		"\x00\x01\x02\x03" + C +
		"--" + B + "--" + C
}

// newHTTPTestContext builds a Context wrapping a plain *http.Request, the
// same test-mode branch Context.GetHeader already takes when shockwaveReq
// is nil — core/multipart.go's switch follows it too.
func newHTTPTestContext(t *testing.T, body string) *Context {
	t.Helper()
	req := httptest.NewRequest("POST", "/upload", strings.NewReader(body))
	req.Header.Set("Content-Type", multipartTestContentType)
	return &Context{httpReq: req}
}

func TestContextMultipartReader(t *testing.T) {
	c := newHTTPTestContext(t, buildMultipartFormBody())

	it, err := c.MultipartReader()
	require.NoError(t, err)

	p1, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, "username", p1.Name)

	p2, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, "avatar", p2.Name)
	assert.Equal(t, "pic.bin", p2.Filename)
	body, err := p2.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("\x00\x01\x02\x03"), body)
}

func TestContextMultipartReaderNoBody(t *testing.T) {
	c := &Context{}
	_, err := c.MultipartReader()
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestContextMultipartForm(t *testing.T) {
	c := newHTTPTestContext(t, buildMultipartFormBody())

	fields, files, err := c.MultipartForm(multipart.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, "alice", fields["username"])
	require.Len(t, files, 1)
	assert.Equal(t, "avatar", files[0].Name)
	assert.Equal(t, "pic.bin", files[0].Filename)

	data, err := files[0].Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("\x00\x01\x02\x03"), data)
}

func TestContextMultipartFormInvalidContentType(t *testing.T) {
	req := httptest.NewRequest("POST", "/upload", strings.NewReader("irrelevant"))
	req.Header.Set("Content-Type", "application/json")
	c := &Context{httpReq: req}

	_, _, err := c.MultipartForm(multipart.DefaultConfig())
	assert.ErrorIs(t, err, multipart.ErrInvalidContentType)
}
