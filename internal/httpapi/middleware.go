package httpapi

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/proximark/server/internal/auth"
)

func loggingMiddleware(logger *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now().UTC()
		next.ServeHTTP(w, r)
		logger.Printf("%s %s from=%s dur=%s", r.Method, r.URL.Path, r.RemoteAddr, time.Since(start))
	})
}

type ctxKey int

const principalKey ctxKey = iota

// withRole verifies the bearer token and requires the given role before
// handing the request to next.  The principal lands in the request context.
func (s *Server) withRole(role string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			writeError(w, http.StatusUnauthorized, "missing_token", "bearer token required")
			return
		}

		p, err := s.auth.Verify(strings.TrimSpace(token))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_token", "invalid or expired token")
			return
		}
		if p.Role != role {
			writeError(w, http.StatusForbidden, "forbidden", "insufficient role for this operation")
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), principalKey, p)))
	}
}

func principalFrom(r *http.Request) auth.Principal {
	p, _ := r.Context().Value(principalKey).(auth.Principal)
	return p
}
