package http

import (
	"net/http"

	"github.com/teyroberto/agenda/pkg/agendasdk"
	"github.com/teyroberto/agenda/pkg/httpx"
)

// RootHandler godoc
//
//	@Summary		Welcome Endpoint
//	@Description	Service landing page with pointers to the API surface
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	agendasdk.WelcomeResponse	"message, description, status, links"
//	@Router			/ [get].
func RootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, agendasdk.WelcomeResponse{
			Message:     "Agenda de Contatos API",
			Description: "Personal contact book with per-account lists behind token authentication",
			Status:      "online",
			Links: map[string]string{
				"docs":     "/swagger/index.html",
				"register": "/v1/auth/register",
				"login":    "/v1/auth/login",
				"contacts": "/v1/contacts",
			},
		})
	}
}
