package agendasdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a small Go client for the agenda API. Unauthenticated
// operations hang off the Client itself; Login returns a Session bound to
// the issued bearer token.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates a new account. It does not log in.
func (c *Client) Register(ctx context.Context, email, displayName, password string) (*RegisterResponse, error) {
	var out RegisterResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/auth/register", "",
		RegisterRequest{Email: email, DisplayName: displayName, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates and returns a Session holding the bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var out TokenResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/auth/login", "",
		LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &Session{client: c, token: out.AccessToken, tokenResponse: out}, nil
}

// Livez fetches the liveness probe payload.
func (c *Client) Livez(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/livez", "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Session is an authenticated client scoped to one user's token. Tokens
// are stateless and non-refreshable; when one expires, log in again.
type Session struct {
	client        *Client
	token         string
	tokenResponse TokenResponse
}

// NewSessionFromToken builds a Session around an existing bearer token,
// e.g. one stored by a previous login.
func (c *Client) NewSessionFromToken(token string) *Session {
	return &Session{client: c, token: token}
}

// Token returns the raw bearer token backing this session.
func (s *Session) Token() string { return s.token }

// TokenResponse returns the login response this session was created from.
func (s *Session) TokenResponse() TokenResponse { return s.tokenResponse }

// ListContacts returns all of the user's contacts.
func (s *Session) ListContacts(ctx context.Context) ([]Contact, error) {
	var out []Contact
	if err := s.client.doJSON(ctx, http.MethodGet, "/v1/contacts", s.token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateContact adds a contact. Name and phone are required.
func (s *Session) CreateContact(ctx context.Context, name, phone, email string) (*Contact, error) {
	var out Contact
	err := s.client.doJSON(ctx, http.MethodPost, "/v1/contacts", s.token,
		CreateContactRequest{Name: name, Phone: phone, Email: email}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetContact fetches a contact by name (case-insensitive).
func (s *Session) GetContact(ctx context.Context, name string) (*Contact, error) {
	var out Contact
	if err := s.client.doJSON(ctx, http.MethodGet, contactPath(name), s.token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateContact applies a partial update to a contact located by name.
func (s *Session) UpdateContact(ctx context.Context, name string, patch UpdateContactRequest) (*Contact, error) {
	var out Contact
	if err := s.client.doJSON(ctx, http.MethodPut, contactPath(name), s.token, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteContact removes a contact by name. Deletion is final.
func (s *Session) DeleteContact(ctx context.Context, name string) error {
	var out DeleteContactResponse
	return s.client.doJSON(ctx, http.MethodDelete, contactPath(name), s.token, nil, &out)
}

func contactPath(name string) string {
	return "/v1/contacts/" + url.PathEscape(name)
}

// doJSON performs a request with an optional JSON body and bearer token,
// decoding a success response into out and error payloads into *APIError.
func (c *Client) doJSON(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err := parseErrorResponse(resp, raw); err != nil {
		return err
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response body: %w", err)
		}
	}
	return nil
}
