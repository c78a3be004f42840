package security

import (
	"fmt"

	"github.com/smartoffice/platform/internal/core/domain"
)

// Requirement describes what an operation demands of its caller.
type Requirement struct {
	role domain.Role
}

// AnyAuthenticated admits every caller holding valid claims.
func AnyAuthenticated() Requirement { return Requirement{} }

// RoleRequired admits only callers whose role equals role exactly.
func RoleRequired(role domain.Role) Requirement { return Requirement{role: role} }

// Role returns the required role, or "" for AnyAuthenticated.
func (r Requirement) Role() domain.Role { return r.role }

func (r Requirement) String() string {
	if r.role == "" {
		return "authenticated"
	}
	return "role:" + string(r.role)
}

// Authorize returns nil when claims satisfy req. Nil claims yield
// domain.ErrUnauthenticated; a role mismatch yields domain.ErrForbidden.
func Authorize(claims *domain.Claims, req Requirement) error {
	if claims == nil {
		return domain.ErrUnauthenticated
	}
	if req.role == "" {
		return nil
	}
	if claims.Role != req.role {
		return fmt.Errorf("%w: requires role %s", domain.ErrForbidden, req.role)
	}
	return nil
}

// Allows is the boolean form of Authorize.
func Allows(claims *domain.Claims, req Requirement) bool {
	return Authorize(claims, req) == nil
}
