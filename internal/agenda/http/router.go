package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/teyroberto/agenda/internal/agenda/service"
	"github.com/teyroberto/agenda/internal/agenda/store"
	"github.com/teyroberto/agenda/pkg/httpx"
	"github.com/teyroberto/agenda/pkg/jwtx"
	"github.com/teyroberto/agenda/pkg/slogx"

	_ "github.com/teyroberto/agenda/api/agenda" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store           store.Store
	IdentityService *service.IdentityService
	ContactsService *service.ContactsService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	cors httpx.CORSConfig,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Global middleware chain; CORS runs after logging so preflights are
	// visible in the request log.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(cors),
	}

	return r
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
//
//	@title			Agenda de Contatos API
//	@version		2.0.0
//	@description	Personal contact-book service: register, log in, and manage a private list of contacts.
//	@description	Contact operations require a bearer session token obtained from the login endpoint.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerContacts()
	r.registerSystem()

	r.Mux.Handle("GET /{$}", RootHandler())
	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

func (r *Router) registerAuth() {
	registerHandler := &RegisterHandler{IdentityService: r.IdentityService}
	loginHandler := &LoginHandler{IdentityService: r.IdentityService}

	r.Mux.Handle("POST /v1/auth/register", registerHandler)
	r.Mux.Handle("POST /v1/auth/login", loginHandler)
}

func (r *Router) registerContacts() {
	h := &ContactsHandler{ContactsService: r.ContactsService}

	// Every contact route verifies the bearer token and then resolves its
	// subject to a live user before the handler runs.
	secured := func(handler http.HandlerFunc) http.Handler {
		return httpx.Chain(handler,
			httpx.AuthnMiddleware(r.verifier),
			CurrentUserMiddleware(r.IdentityService),
		)
	}

	r.Mux.Handle("GET /v1/contacts", secured(h.HandleList))
	r.Mux.Handle("POST /v1/contacts", secured(h.HandleCreate))
	r.Mux.Handle("GET /v1/contacts/{name}", secured(h.HandleGet))
	r.Mux.Handle("PUT /v1/contacts/{name}", secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/contacts/{name}", secured(h.HandleDelete))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
