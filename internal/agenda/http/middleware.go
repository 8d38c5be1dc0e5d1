package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/teyroberto/agenda/internal/agenda/domain"
	"github.com/teyroberto/agenda/internal/agenda/service"
	"github.com/teyroberto/agenda/pkg/agendasdk"
	"github.com/teyroberto/agenda/pkg/httpx"
	"github.com/teyroberto/agenda/pkg/slogx"
)

type userCtxKey struct{}

// CurrentUserMiddleware resolves the verified token subject (injected by
// httpx.AuthnMiddleware) to a stored user and makes it available to
// handlers. A subject with no matching account is rejected here, before
// any contact logic runs.
func CurrentUserMiddleware(identity *service.IdentityService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			subject := httpx.SubjectFromContext(ctx)
			if subject == "" {
				agendasdk.ErrInvalidToken.WriteError(w)
				return
			}

			user, err := identity.ResolveSubject(ctx, subject)
			if err != nil {
				if errors.Is(err, service.ErrUnknownUser) {
					agendasdk.ErrUnknownUser.WriteError(w)
					return
				}
				slogx.FromContext(ctx).Error("failed to resolve token subject", "err", err)
				agendasdk.ErrServerError.WriteError(w)
				return
			}

			ctx = context.WithValue(ctx, userCtxKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// currentUser returns the resolved user for an authenticated request. The
// second return is false when the middleware did not run.
func currentUser(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(userCtxKey{}).(domain.User)
	return u, ok
}
