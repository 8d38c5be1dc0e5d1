package agendasdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Stable error kinds shared by the server and this client. The HTTP
// boundary is the only place these are mapped to status codes.
const (
	ErrorCodeInvalidRequest       = "invalid_request"
	ErrorCodeDuplicateEmail       = "duplicate_email"
	ErrorCodeInvalidCredentials   = "invalid_credentials"
	ErrorCodeInvalidToken         = "invalid_token"
	ErrorCodeUnknownUser          = "unknown_user"
	ErrorCodeDuplicateContactName = "duplicate_contact_name"
	ErrorCodeContactNotFound      = "contact_not_found"
	ErrorCodeServerError          = "server_error"
)

// APIError is the JSON error payload returned by every failing endpoint.
// It implements the error interface so the SDK client can surface it
// directly, and the server handlers use WriteError to render it.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the stable error kind (e.g. "duplicate_contact_name")
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
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

var (
	// ErrDuplicateEmail is returned when registering an email that already
	// has an account.
	ErrDuplicateEmail = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeDuplicateEmail,
		Description: "an account with this email already exists",
	}

	// ErrInvalidCredentials is returned on login failure. It deliberately
	// does not say whether the email or the password was wrong.
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid email or password",
	}

	// ErrInvalidToken is returned when the bearer token is missing,
	// malformed, forged or expired.
	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the access token is missing, invalid or expired",
	}

	// ErrUnknownUser is returned when a verified token subject no longer
	// maps to a stored account.
	ErrUnknownUser = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnknownUser,
		Description: "the token subject does not match any account",
	}

	// ErrDuplicateContactName is returned when a contact name collides,
	// case-insensitively, with another contact of the same owner.
	ErrDuplicateContactName = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeDuplicateContactName,
		Description: "a contact with this name already exists",
	}

	// ErrContactNotFound is returned when the scoped lookup finds nothing.
	ErrContactNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeContactNotFound,
		Description: "contact not found",
	}

	// ErrServerError hides unexpected persistence failures from callers.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// NewValidationError builds an invalid_request error with a field-specific
// description, e.g. "phone is required".
func NewValidationError(description string) *APIError {
	return &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: description,
	}
}

// parseErrorResponse turns a non-2xx HTTP response into a typed *APIError.
// Returns nil for success responses.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

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
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
