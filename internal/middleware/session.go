package middleware

import (
	"net/http"
	"strings"

	"github.com/hongminglow/va-ops-be/internal/auth"
	"github.com/hongminglow/va-ops-be/internal/logger"
)

// Sessions resolves the bearer token into the caller's session. Requests with
// no token, or one this process cannot resolve, get a fresh anonymous session.
func Sessions(registry *auth.Registry, log logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := auth.NewSession()
		if token := bearerToken(r); token != "" {
			resolved, err := registry.Resolve(token)
			if err != nil {
				log.Debug("ignoring session token", "error", err)
			} else {
				session = resolved
			}
		}
		next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), session)))
	})
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
