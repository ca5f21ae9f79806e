package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dimitrije/prompthub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// HTTPTestClient drives an http.Handler in-process with JSON requests.
type HTTPTestClient struct {
	t       *testing.T
	handler http.Handler
	header  http.Header
}

func NewHTTPTestClient(t *testing.T, handler http.Handler) *HTTPTestClient {
	return &HTTPTestClient{t: t, handler: handler, header: http.Header{}}
}

// WithHeader returns a copy of the client that sends key: value on every request.
func (c *HTTPTestClient) WithHeader(key, value string) *HTTPTestClient {
	header := c.header.Clone()
	header.Set(key, value)
	return &HTTPTestClient{t: c.t, handler: c.handler, header: header}
}

func (c *HTTPTestClient) Do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(c.t, err, "failed to marshal request body")
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range c.header {
		req.Header[key] = values
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	return rec
}

func (c *HTTPTestClient) GET(path string) *httptest.ResponseRecorder {
	return c.Do(http.MethodGet, path, nil)
}

func (c *HTTPTestClient) POST(path string, body any) *httptest.ResponseRecorder {
	return c.Do(http.MethodPost, path, body)
}

func (c *HTTPTestClient) PUT(path string, body any) *httptest.ResponseRecorder {
	return c.Do(http.MethodPut, path, body)
}

func (c *HTTPTestClient) DELETE(path string) *httptest.ResponseRecorder {
	return c.Do(http.MethodDelete, path, nil)
}

// ParseJSON decodes the recorded body into v.
func ParseJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), "body: %s", rec.Body.String())
}

func ParsePrompt(t *testing.T, rec *httptest.ResponseRecorder) models.Prompt {
	t.Helper()
	var p models.Prompt
	ParseJSON(t, rec, &p)
	return p
}

func ParsePrompts(t *testing.T, rec *httptest.ResponseRecorder) []models.Prompt {
	t.Helper()
	var prompts []models.Prompt
	ParseJSON(t, rec, &prompts)
	return prompts
}

func AssertStatus(t *testing.T, rec *httptest.ResponseRecorder, expected int) {
	t.Helper()
	assert.Equal(t, expected, rec.Code, "body: %s", rec.Body.String())
}

// AssertJSON checks that every key in expected is present in the body with an
// equal value. Keys absent from expected are ignored.
func AssertJSON(t *testing.T, rec *httptest.ResponseRecorder, expected map[string]any) {
	t.Helper()
	var actual map[string]any
	ParseJSON(t, rec, &actual)

	for key, want := range expected {
		got, ok := actual[key]
		if assert.True(t, ok, "key %q missing from response", key) {
			assert.Equal(t, want, got, "key %q", key)
		}
	}
}
