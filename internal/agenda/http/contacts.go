package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/teyroberto/agenda/internal/agenda/domain"
	"github.com/teyroberto/agenda/internal/agenda/service"
	"github.com/teyroberto/agenda/pkg/agendasdk"
	"github.com/teyroberto/agenda/pkg/httpx"
	"github.com/teyroberto/agenda/pkg/slogx"
)

type ContactsHandler struct {
	ContactsService *service.ContactsService
}

// HandleList godoc
//
//	@Summary		List Contacts Endpoint
//	@Description	List every contact owned by the authenticated account
//	@Tags			Contacts
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		agendasdk.Contact		"id, name, phone, email, created_at, updated_at"
//	@Failure		401	{object}	agendasdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	agendasdk.ErrorResponse	"error, error_description"
//	@Router			/v1/contacts [get].
func (h *ContactsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := currentUser(ctx)
	if !ok {
		agendasdk.ErrInvalidToken.WriteError(w)
		return
	}

	contacts, err := h.ContactsService.List(ctx, user.ID)
	if err != nil {
		log.Error("failed to list contacts", "err", err)
		agendasdk.ErrServerError.WriteError(w)
		return
	}

	out := make([]agendasdk.Contact, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, toWireContact(c))
	}

	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate godoc
//
//	@Summary		Create Contact Endpoint
//	@Description	Add a contact to the authenticated account's list
//	@Description	The name must be unique within the list, compared case-insensitively
//	@Tags			Contacts
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		agendasdk.CreateContactRequest	true	"name, phone, optional email"
//	@Success		201		{object}	agendasdk.Contact				"id, name, phone, email, created_at, updated_at"
//	@Failure		400		{object}	agendasdk.ErrorResponse			"error, error_description"
//	@Failure		401		{object}	agendasdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	agendasdk.ErrorResponse			"error, error_description"
//	@Router			/v1/contacts [post].
func (h *ContactsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := currentUser(ctx)
	if !ok {
		agendasdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req agendasdk.CreateContactRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		agendasdk.NewValidationError("request body must be a valid JSON object").WriteError(w)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)

	if req.Name == "" {
		agendasdk.NewValidationError("name is required").WriteError(w)
		return
	}
	if req.Phone == "" {
		agendasdk.NewValidationError("phone is required").WriteError(w)
		return
	}

	contact, err := h.ContactsService.Create(ctx, user.ID, req.Name, req.Phone, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateContactName):
			agendasdk.ErrDuplicateContactName.WriteError(w)
		default:
			log.Error("failed to create contact", "err", err)
			agendasdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toWireContact(contact))
}

// HandleGet godoc
//
//	@Summary		Get Contact Endpoint
//	@Description	Fetch a single contact by name; the lookup ignores case
//	@Tags			Contacts
//	@Produce		json
//	@Security		BearerAuth
//	@Param			name	path		string					true	"Contact name"
//	@Success		200		{object}	agendasdk.Contact		"id, name, phone, email, created_at, updated_at"
//	@Failure		401		{object}	agendasdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	agendasdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	agendasdk.ErrorResponse	"error, error_description"
//	@Router			/v1/contacts/{name} [get].
func (h *ContactsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := currentUser(ctx)
	if !ok {
		agendasdk.ErrInvalidToken.WriteError(w)
		return
	}

	contact, err := h.ContactsService.Get(ctx, user.ID, r.PathValue("name"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContactNotFound):
			agendasdk.ErrContactNotFound.WriteError(w)
		default:
			log.Error("failed to get contact", "err", err)
			agendasdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toWireContact(contact))
}

// HandleUpdate godoc
//
//	@Summary		Update Contact Endpoint
//	@Description	Apply a partial update to a contact addressed by name
//	@Description	Only fields present in the payload change; an explicit empty email clears the stored value
//	@Tags			Contacts
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			name	path		string							true	"Contact name"
//	@Param			request	body		agendasdk.UpdateContactRequest	true	"optional name, phone, email"
//	@Success		200		{object}	agendasdk.Contact				"id, name, phone, email, created_at, updated_at"
//	@Failure		400		{object}	agendasdk.ErrorResponse			"error, error_description"
//	@Failure		401		{object}	agendasdk.ErrorResponse			"error, error_description"
//	@Failure		404		{object}	agendasdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	agendasdk.ErrorResponse			"error, error_description"
//	@Router			/v1/contacts/{name} [put].
func (h *ContactsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := currentUser(ctx)
	if !ok {
		agendasdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req agendasdk.UpdateContactRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		agendasdk.NewValidationError("request body must be a valid JSON object").WriteError(w)
		return
	}

	patch := domain.ContactPatch{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	}
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			agendasdk.NewValidationError("name must not be empty").WriteError(w)
			return
		}
		patch.Name = &trimmed
	}
	if patch.Phone != nil {
		trimmed := strings.TrimSpace(*patch.Phone)
		if trimmed == "" {
			agendasdk.NewValidationError("phone must not be empty").WriteError(w)
			return
		}
		patch.Phone = &trimmed
	}

	contact, err := h.ContactsService.Update(ctx, user.ID, r.PathValue("name"), patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContactNotFound):
			agendasdk.ErrContactNotFound.WriteError(w)
		case errors.Is(err, service.ErrDuplicateContactName):
			agendasdk.ErrDuplicateContactName.WriteError(w)
		default:
			log.Error("failed to update contact", "err", err)
			agendasdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toWireContact(contact))
}

// HandleDelete godoc
//
//	@Summary		Delete Contact Endpoint
//	@Description	Remove a contact from the authenticated account's list; the name becomes reusable
//	@Tags			Contacts
//	@Produce		json
//	@Security		BearerAuth
//	@Param			name	path		string							true	"Contact name"
//	@Success		200		{object}	agendasdk.DeleteContactResponse	"detail"
//	@Failure		401		{object}	agendasdk.ErrorResponse			"error, error_description"
//	@Failure		404		{object}	agendasdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	agendasdk.ErrorResponse			"error, error_description"
//	@Router			/v1/contacts/{name} [delete].
func (h *ContactsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := currentUser(ctx)
	if !ok {
		agendasdk.ErrInvalidToken.WriteError(w)
		return
	}

	if err := h.ContactsService.Delete(ctx, user.ID, r.PathValue("name")); err != nil {
		switch {
		case errors.Is(err, service.ErrContactNotFound):
			agendasdk.ErrContactNotFound.WriteError(w)
		default:
			log.Error("failed to delete contact", "err", err)
			agendasdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, agendasdk.DeleteContactResponse{
		Detail: "contact deleted",
	})
}

func toWireContact(c domain.Contact) agendasdk.Contact {
	return agendasdk.Contact{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
