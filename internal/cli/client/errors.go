package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
)

// APIError is the failure carrier for every client operation. Status holds the
// HTTP status code of a non-2xx response; failures that never reached the HTTP
// layer (connection refused, malformed body) carry Status 0.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

// IsNotFound reports whether err is an APIError for a 404 response.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// wrapLocalError normalizes a transport or decode failure into an APIError
// with status 0.
func wrapLocalError(err error) *APIError {
	return &APIError{Status: 0, Message: err.Error()}
}

// serverErrorBody is the error shape the API server returns on failures.
type serverErrorBody struct {
	Error string `json:"error"`
}

// newStatusError builds an APIError from a non-2xx response. The server's
// {"error": ...} body wins when present; otherwise a generic status message.
func newStatusError(status int, body []byte) *APIError {
	var parsed serverErrorBody
	if err := sonic.Unmarshal(body, &parsed); err == nil && parsed.Error != "" {
		return &APIError{Status: status, Message: parsed.Error}
	}
	return &APIError{Status: status, Message: fmt.Sprintf("HTTP error: status %d", status)}
}
