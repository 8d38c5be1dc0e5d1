package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/teyroberto/agenda/internal/agenda/service"
	"github.com/teyroberto/agenda/pkg/agendasdk"
	"github.com/teyroberto/agenda/pkg/cryptox"
	"github.com/teyroberto/agenda/pkg/httpx"
	"github.com/teyroberto/agenda/pkg/slogx"
)

type RegisterHandler struct {
	IdentityService *service.IdentityService
}

// ServeHTTP godoc
//
//	@Summary		Register Endpoint
//	@Description	Create a new account from an email, a display name and a password
//	@Description	The email must not belong to an existing account; no session token is issued here
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		agendasdk.RegisterRequest	true	"email, display_name, password"
//	@Success		201		{object}	agendasdk.RegisterResponse	"user_id, email, display_name"
//	@Failure		400		{object}	agendasdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	agendasdk.ErrorResponse		"error, error_description"
//	@Router			/v1/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req agendasdk.RegisterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		agendasdk.NewValidationError("request body must be a valid JSON object").WriteError(w)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.DisplayName = strings.TrimSpace(req.DisplayName)

	if req.Email == "" {
		agendasdk.NewValidationError("email is required").WriteError(w)
		return
	}
	if req.DisplayName == "" {
		agendasdk.NewValidationError("display_name is required").WriteError(w)
		return
	}
	if req.Password == "" {
		agendasdk.NewValidationError("password is required").WriteError(w)
		return
	}

	user, err := h.IdentityService.Register(ctx, req.Email, req.DisplayName, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateEmail):
			agendasdk.ErrDuplicateEmail.WriteError(w)
		case errors.Is(err, cryptox.ErrPasswordTooShort):
			agendasdk.NewValidationError("password must be at least 6 characters").WriteError(w)
		default:
			log.Error("failed to register account", "err", err)
			agendasdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, agendasdk.RegisterResponse{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	})
}
