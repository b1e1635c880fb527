package middleware

import (
	"net/http"

	"github.com/alfarhan/hr-fleet-management/internal/auth"
	"github.com/alfarhan/hr-fleet-management/internal/permission"
	"github.com/alfarhan/hr-fleet-management/pkg/logger"
)

// RequirePermission guards a route with a module/capability check. Admin
// users bypass the check inside permission.HasPermission.
func RequirePermission(module permission.Module, capability permission.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !permission.HasPermission(user, module, capability) {
				logger.From(r.Context()).Warn("access denied: insufficient permissions",
					"user_id", user.ID,
					"module", module,
					"capability", capability)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireModuleAccess guards a route group with module visibility only.
func RequireModuleAccess(module permission.Module) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !permission.HasModuleAccess(user, module) {
				logger.From(r.Context()).Warn("access denied: no module access",
					"user_id", user.ID,
					"module", module)
				http.Error(w, "Forbidden: no access to this module", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
