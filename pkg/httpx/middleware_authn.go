package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/teyroberto/agenda/pkg/jwtx"
	"github.com/teyroberto/agenda/pkg/slogx"
)

// AuthnMiddleware extracts the bearer token from the Authorization header
// and verifies it. On success the token subject and claims are injected into
// the request context for downstream handlers. Whether the subject still
// maps to a live user is for the application layer to decide.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("token verification failed", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}

			ctx = context.WithValue(ctx, CtxKeySubject, claims.Subject)
			ctx = context.WithValue(ctx, CtxKeyClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteJSON(w, http.StatusUnauthorized, map[string]string{
		"error":             "invalid_token",
		"error_description": desc,
	})
}
