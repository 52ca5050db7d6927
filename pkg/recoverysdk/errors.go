package recoverysdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lockstead/recovery/pkg/httpx"
)

// Error codes shared by the server handlers and the client.
const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeServerError        = "server_error"
	ErrorCodeStorageUnavailable = "storage_unavailable"
	ErrorCodeAnswersRejected    = "answers_rejected"
)

// APIError represents an error response from the recovery service. It
// implements the error interface and is used both by the server (to write
// HTTP responses) and by the SDK client (to surface failures).
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, ErrorResponse{
		Error:            e.Code,
		ErrorDescription: e.Description,
	})
}

var (
	// ErrInvalidRequest is returned when the request body is malformed or
	// missing required fields.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrNotFound is returned when the referenced question does not exist.
	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "the requested resource does not exist",
	}

	// ErrServerError is returned for unexpected internal failures.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "an internal error occurred",
	}

	// ErrStorageUnavailable is returned when the question store cannot be
	// read. It is deliberately distinct from a rejected attempt: "could not
	// check" is never reported as "checked and wrong".
	ErrStorageUnavailable = &APIError{
		StatusCode:  http.StatusServiceUnavailable,
		Code:        ErrorCodeStorageUnavailable,
		Description: "the question store is currently unavailable",
	}

	// ErrAnswersRejected is returned by the upgrade endpoint when the
	// confirmed answers do not satisfy the stored records.
	ErrAnswersRejected = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeAnswersRejected,
		Description: "the supplied answers do not satisfy the stored records",
	}
)

// parseErrorResponse turns a non-2xx HTTP response into a typed *APIError.
// Unparseable bodies fall back to a generic error carrying the status code.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("unexpected response status %d", resp.StatusCode),
	}
}
