package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/smartoffice/platform/internal/api/metrics"
	"github.com/smartoffice/platform/internal/core/domain"
	"github.com/smartoffice/platform/internal/core/security"
)

// Require enforces req against the claims set by Auth. Anonymous requests get
// domain.ErrUnauthenticated (401); a role mismatch gets domain.ErrForbidden (403).
func Require(req security.Requirement) echo.MiddlewareFunc {
	label := req.String()
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := security.Authorize(ClaimsFrom(c), req); err != nil {
				metrics.AuthzDecisionsTotal.WithLabelValues(label, "deny").Inc()
				return err
			}
			metrics.AuthzDecisionsTotal.WithLabelValues(label, "allow").Inc()
			return next(c)
		}
	}
}

// RequireRole admits only callers holding exactly role.
func RequireRole(role domain.Role) echo.MiddlewareFunc {
	return Require(security.RoleRequired(role))
}

// RequireAuthenticated admits any caller with valid claims.
func RequireAuthenticated() echo.MiddlewareFunc {
	return Require(security.AnyAuthenticated())
}
