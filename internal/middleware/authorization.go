package middleware

import (
	"net/http"

	"go.uber.org/zap"
)

// RequireAdmin ensures the customer can manage the shop
func RequireAdmin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsAdmin(r.Context()) {
				logger.Warn("Non-admin user attempted to access admin endpoint",
					zap.String("path", r.URL.Path),
				)
				RespondWithError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireSocio ensures the customer is a club member. The loyalty ledger is
// unreachable for everyone else.
func RequireSocio(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsSocio(r.Context()) {
				logger.Warn("Non-member attempted to access club endpoint",
					zap.String("path", r.URL.Path),
				)
				RespondWithError(w, http.StatusForbidden, "club members only")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
