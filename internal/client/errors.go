package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dimitrije/prompthub/pkg/dto"
)

const maxErrorBody = 64 << 10

var ErrNotFound = errors.New("prompt not found")

// StatusError is returned for any non-2xx response. Message holds the
// server's own error text when the body carried one.
type StatusError struct {
	StatusCode int
	Method     string
	URL        string
	Message    string
	Body       []byte
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// IsStatus reports whether err carries the given HTTP status code.
func IsStatus(err error, code int) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == code
	}
	return false
}

func newStatusError(req *http.Request, resp *http.Response) *StatusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	statusErr := &StatusError{
		StatusCode: resp.StatusCode,
		Method:     req.Method,
		URL:        req.URL.String(),
		Body:       body,
	}

	var errResp dto.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		statusErr.Message = errResp.Text()
	}

	return statusErr
}
