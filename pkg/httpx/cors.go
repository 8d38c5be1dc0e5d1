package httpx

import (
	"net/http"
	"slices"
)

// CORSConfig controls cross-origin access for browser clients.
type CORSConfig struct {
	// AllowedOrigins lists origins permitted to call the API. A single "*"
	// entry allows any origin (fine for development, lock down in prod).
	AllowedOrigins []string
}

// CORS answers preflight requests and sets the access-control headers on
// every response whose Origin is allowed.
func CORS(cfg CORSConfig) Middleware {
	allowAll := slices.Contains(cfg.AllowedOrigins, "*")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (allowAll || slices.Contains(cfg.AllowedOrigins, origin)) {
				h := w.Header()
				if allowAll {
					h.Set("Access-Control-Allow-Origin", "*")
				} else {
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
				h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
