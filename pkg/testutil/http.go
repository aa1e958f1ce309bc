// Package testutil holds request builders and response assertions shared by
// the handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewRequest builds a request with no body.
func NewRequest(t *testing.T, method, path string) *http.Request {
	t.Helper()
	return httptest.NewRequest(method, path, nil)
}

// NewJSONRequest marshals body and sends it as application/json. A nil body
// sends the header only.
func NewJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err, "marshal request body")
		r = bytes.NewReader(raw)
	}
	return jsonRequest(method, path, r)
}

// NewRawJSONRequest sends body verbatim, for malformed or loosely typed payloads.
func NewRawJSONRequest(t *testing.T, method, path, body string) *http.Request {
	t.Helper()
	return jsonRequest(method, path, strings.NewReader(body))
}

func jsonRequest(method, path string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// DoRequest serves req on h and returns the recorded response.
func DoRequest(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// UnmarshalResponse decodes the recorded body into a T.
func UnmarshalResponse[T any](t *testing.T, rr *httptest.ResponseRecorder) *T {
	t.Helper()
	out := new(T)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), out), "decode response: %s", rr.Body.String())
	return out
}

func errorBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	return *UnmarshalResponse[map[string]string](t, rr)
}

func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	assert.Equal(t, want, rr.Code, "status (body: %s)", rr.Body.String())
}

// AssertStatusAndError checks the status and the "error" code of the envelope.
func AssertStatusAndError(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	AssertStatus(t, rr, status)
	assert.Equal(t, code, errorBody(t, rr)["error"], "error code")
}

func AssertErrorDescription(t *testing.T, rr *httptest.ResponseRecorder, want string) {
	t.Helper()
	assert.Equal(t, want, errorBody(t, rr)["error_description"], "error description")
}

// AssertJSONContains checks one top-level member of a JSON object body.
func AssertJSONContains(t *testing.T, rr *httptest.ResponseRecorder, key string, want any) {
	t.Helper()
	body := *UnmarshalResponse[map[string]any](t, rr)
	assert.Equal(t, want, body[key], "member %q", key)
}
