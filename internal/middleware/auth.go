package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/prplkane/umazona-website/internal/util"
)

// AdminTokenHeader is the shared-secret header gating admin routes.
const AdminTokenHeader = "x-admin-token"

// AdminGate checks the shared-secret header against the configured
// token. An empty configured token disables the gate entirely (open
// access); that default is dangerous, so it is announced loudly at
// construction.
func AdminGate(token string, logger *slog.Logger) func(http.Handler) http.Handler {
	if token == "" {
		logger.Warn("ADMIN_TOKEN not configured, admin routes are OPEN")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			supplied := r.Header.Get(AdminTokenHeader)
			if subtle.ConstantTimeCompare([]byte(supplied), []byte(token)) != 1 {
				util.ErrorResponse(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
