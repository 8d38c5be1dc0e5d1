package httpx

import "context"

type ctxKey string

const (
	// CtxKeySubject holds the verified token subject (the user's email).
	CtxKeySubject ctxKey = "subject"

	// CtxKeyClaims holds the full jwtx.Claims when needed downstream.
	CtxKeyClaims ctxKey = "claims"
)

// SubjectFromContext returns the verified token subject, or "" when the
// request did not pass through AuthnMiddleware.
func SubjectFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeySubject).(string); ok {
		return v
	}
	return ""
}
