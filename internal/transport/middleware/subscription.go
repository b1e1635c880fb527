package middleware

import (
	"context"
	"net/http"

	"github.com/alfarhan/hr-fleet-management/internal"
	"github.com/alfarhan/hr-fleet-management/internal/auth"
	userDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/user"
	"github.com/alfarhan/hr-fleet-management/pkg/logger"
)

// AccessChecker reports whether a company currently has product access.
type AccessChecker interface {
	CheckAccess(ctx context.Context, companyID int64) error
}

// RequireActiveCompany rejects requests from companies that are suspended or
// whose subscription and trial have both lapsed. System admins pass through;
// they need to manage exactly those companies.
func RequireActiveCompany(checker AccessChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if user.UserType == userDatamodel.TypeSystemAdmin {
				next.ServeHTTP(w, r)
				return
			}

			if user.CompanyID == nil {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			if err := checker.CheckAccess(r.Context(), *user.CompanyID); err != nil {
				logger.From(r.Context()).Warn("company access rejected",
					"company_id", *user.CompanyID,
					"user_id", user.ID,
					"error", err)
				if appErr, ok := internal.IsAppError(err); ok {
					status, body := appErr.ToHTTPResponse()
					writeJSONError(w, status, body)
					return
				}
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
