package middleware

import (
	"net/http"

	"github.com/2beens/healthdash/internal/health/session"
)

// WithSession makes s reachable from every request context.
func WithSession(s *session.Session) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), s)))
		})
	}
}
