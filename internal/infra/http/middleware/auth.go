package middleware

import (
	"encoding/json"
	"net/http"
)

// RequireAuth bloqueia as rotas do funil enquanto o login não foi feito.
func RequireAuth(isAuthenticated func() bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isAuthenticated() {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{
					"error":   "UNAUTHENTICATED",
					"message": "faça login para acessar o funil",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
