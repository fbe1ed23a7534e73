package httpapi

import "net/http"

// CORS enforces §6.3: a single allowed origin in production, permissive in
// development. No wildcard is ever combined with credentialed requests.
func CORS(domain string, production bool) func(http.Handler) http.Handler {
	allowedOrigin := "*"
	if production {
		allowedOrigin = "https://" + domain
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
