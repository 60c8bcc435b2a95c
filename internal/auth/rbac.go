package auth

import (
	"log/slog"
	"net/http"

	"github.com/docconnect/docconnect/internal"
	"github.com/docconnect/docconnect/internal/core/datamodel/user"
)

// RoleAuthorization builds role-gated middlewares. Roles here are coarse on
// purpose: patient, doctor, admin. Must run after AuthMiddleware.
type RoleAuthorization struct {
	logger *slog.Logger
}

func NewRoleAuthorization(logger *slog.Logger) *RoleAuthorization {
	return &RoleAuthorization{logger: logger}
}

func (ra *RoleAuthorization) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := internal.IdentityFromContext(r.Context())
			if !ok {
				ra.logger.Warn("role check without identity", "path", r.URL.Path)
				http.Error(w, `{"error": "unauthorized"}`, http.StatusUnauthorized)
				return
			}

			for _, role := range roles {
				if identity.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			ra.logger.Warn("access denied: insufficient role",
				"user_id", identity.UserID,
				"role", identity.Role,
				"required_roles", roles,
				"path", r.URL.Path)
			http.Error(w, `{"error": "forbidden"}`, http.StatusForbidden)
		})
	}
}

func (ra *RoleAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return ra.RequireRole(user.RoleAdmin)
}

func (ra *RoleAuthorization) RequireDoctor() func(http.Handler) http.Handler {
	return ra.RequireRole(user.RoleDoctor)
}
