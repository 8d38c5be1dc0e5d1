package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/teyroberto/agenda/internal/agenda/service"
	"github.com/teyroberto/agenda/pkg/agendasdk"
	"github.com/teyroberto/agenda/pkg/httpx"
	"github.com/teyroberto/agenda/pkg/slogx"
)

type LoginHandler struct {
	IdentityService *service.IdentityService
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Exchange an email and password for a signed session token
//	@Description	The response does not distinguish a wrong password from an unknown email
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		agendasdk.LoginRequest	true	"email, password"
//	@Success		200		{object}	agendasdk.TokenResponse	"access_token, token_type, expires_in"
//	@Failure		400		{object}	agendasdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	agendasdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	agendasdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req agendasdk.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		agendasdk.NewValidationError("request body must be a valid JSON object").WriteError(w)
		return
	}

	req.Email = strings.TrimSpace(req.Email)

	if req.Email == "" {
		agendasdk.NewValidationError("email is required").WriteError(w)
		return
	}
	if req.Password == "" {
		agendasdk.NewValidationError("password is required").WriteError(w)
		return
	}

	session, err := h.IdentityService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			agendasdk.ErrInvalidCredentials.WriteError(w)
		default:
			log.Error("failed to authenticate account", "err", err)
			agendasdk.ErrServerError.WriteError(w)
		}
		return
	}

	// Token responses must never be cached by intermediaries.
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, agendasdk.TokenResponse{
		AccessToken: session.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(session.ExpiresIn.Seconds()),
	})
}
