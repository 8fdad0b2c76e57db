//go:build e2e

package e2e

import (
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploads_ServeFile(t *testing.T) {
	status, body, hdr := call(t, "GET", "/uploads/resumes/cv.docx", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "docx-data", string(body))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", hdr.Get("Content-Type"))
	assert.Equal(t, "public, max-age=31536000, immutable", hdr.Get("Cache-Control"))
}

func TestUploads_Errors(t *testing.T) {
	status, body, _ := call(t, "GET", "/uploads/missing.png", "", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"error": "File not found"}`, string(body))

	status, body, _ = call(t, "GET", "/uploads/resumes", "", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"error": "Not a file"}`, string(body))
}

// TestUploads_RawTraversal sends unnormalized path over raw tcp, http clients clean dot segments themselves
func TestUploads_RawTraversal(t *testing.T) {
	conn, err := net.Dial("tcp", "localhost:18090")
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("GET /uploads/../../secret.txt HTTP/1.1\r\nHost: localhost\r\nConnection: close\r\n\r\n"))
	require.NoError(t, err)

	buf := make([]byte, 4096)
	n, _ := conn.Read(buf)
	resp := string(buf[:n])
	assert.NotContains(t, resp, "top secret")
	assert.NotContains(t, resp, "200 OK")
}
