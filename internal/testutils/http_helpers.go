package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/phrazzld/spending-api/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CreateTestServer creates a httptest server with the given handler.
// The server is closed automatically when the test finishes.
func CreateTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

// DoJSON sends a request with a JSON body (empty for none) to handler. A
// non-empty token is sent as a bearer credential.
func DoJSON(t *testing.T, handler http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// PostForm sends a form-encoded POST to handler.
func PostForm(t *testing.T, handler http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// SignIn posts credentials to /user/signin.
func SignIn(t *testing.T, handler http.Handler, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	return PostForm(t, handler, "/user/signin", url.Values{"username": {email}, "password": {password}})
}

// DecodeBody unmarshals the recorded JSON body into a T.
func DecodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "Failed to unmarshal response: %s", rec.Body.String())
	return v
}

// AssertErrorResponse checks the status code and the exact detail message of an error response.
func AssertErrorResponse(t *testing.T, rec *httptest.ResponseRecorder, expectedStatus int, expectedDetail string) {
	t.Helper()
	assert.Equal(t, expectedStatus, rec.Code, "unexpected status, body: %s", rec.Body.String())
	errResp := DecodeBody[shared.ErrorResponse](t, rec)
	assert.Equal(t, expectedDetail, errResp.Detail)
}

// AssertMessageResponse checks for a 200 acknowledgement with the given message.
func AssertMessageResponse(t *testing.T, rec *httptest.ResponseRecorder, expectedMessage string) {
	t.Helper()
	assert.Equal(t, http.StatusOK, rec.Code, "unexpected status, body: %s", rec.Body.String())
	msg := DecodeBody[shared.MessageResponse](t, rec)
	assert.Equal(t, expectedMessage, msg.Message)
}
