package agendasdk

import "time"

// ErrorResponse is the wire shape of every error payload.
type ErrorResponse struct {
	// Error is the stable error kind (e.g. "contact_not_found")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// RegisterRequest is the JSON body for POST /v1/auth/register.
type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

// RegisterResponse confirms a new account. No token is included; the
// caller logs in separately.
type RegisterResponse struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the JSON body for POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries the signed session token.
type TokenResponse struct {
	// AccessToken is the signed session token for the Authorization header
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the token lifetime in seconds
	ExpiresIn int `json:"expires_in"`
}

// Contact is the wire shape of an address-book entry.
type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateContactRequest is the JSON body for POST /v1/contacts. Name and
// phone are required, email is optional.
type CreateContactRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// UpdateContactRequest is the JSON body for PUT /v1/contacts/{name}.
// Only fields present in the payload are applied; an explicit empty email
// clears the stored value.
type UpdateContactRequest struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
}

// DeleteContactResponse confirms a deletion.
type DeleteContactResponse struct {
	Detail string `json:"detail"`
}

// WelcomeResponse is the root endpoint payload.
type WelcomeResponse struct {
	Message     string            `json:"message"`
	Description string            `json:"description"`
	Status      string            `json:"status"`
	Links       map[string]string `json:"links,omitempty"`
}

// HealthChecks details the state of critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is returned by the livez/readyz endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
