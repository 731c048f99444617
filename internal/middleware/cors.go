package middleware

import (
	"net/http"
	"strings"
)

const allowedMethods = "DELETE, GET, HEAD, OPTIONS, PATCH, POST, PUT"

// CORS admits cross-origin calls from the listed origins only. Preflight
// requests are answered directly and echo the headers the browser asked for.
func CORS(allowedOrigins ...string) func(http.Handler) http.Handler {
	allow := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin != "" {
			allow[origin] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			preflight := r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
			if origin != "" {
				w.Header().Add("Vary", "Origin")
				if _, ok := allow[origin]; ok {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Access-Control-Allow-Credentials", "true")
					if preflight {
						w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
						if requested := r.Header.Get("Access-Control-Request-Headers"); requested != "" {
							w.Header().Set("Access-Control-Allow-Headers", requested)
						}
						w.Header().Set("Access-Control-Max-Age", "600")
					}
				}
			}
			if preflight {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
