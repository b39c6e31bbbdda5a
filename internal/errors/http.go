package errors

import (
	"encoding/json"
	"io"
	"net/http"
)

// FromResponse builds a StatusError from a non-success response, draining the
// body for the backend's {message} payload. The body is read to completion so
// the underlying connection can be reused.
func FromResponse(op string, resp *http.Response) *StatusError {
	var body struct {
		Message string `json:"message"`
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil {
		_ = json.Unmarshal(raw, &body)
	}
	return &StatusError{
		Op:         op,
		StatusCode: resp.StatusCode,
		Message:    body.Message,
		Category:   categoryFor(resp.StatusCode),
	}
}

// New builds a StatusError when no response body is available, such as a
// failed WebSocket handshake.
func New(op string, statusCode int) *StatusError {
	return &StatusError{Op: op, StatusCode: statusCode, Category: categoryFor(statusCode)}
}

// categoryFor maps HTTP status codes to retry categories.
func categoryFor(statusCode int) ErrorCategory {
	switch {
	case statusCode >= 400 && statusCode < 500:
		switch statusCode {
		case http.StatusRequestTimeout, http.StatusTooManyRequests:
			return Recoverable
		default:
			return Irrecoverable
		}
	default:
		// 5xx and anything unexpected: be conservative and retry.
		return Recoverable
	}
}
