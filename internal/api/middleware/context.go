package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/smartoffice/platform/internal/core/domain"
)

const claimsKey = "auth.claims"

// SetClaims stores verified claims on the request context.
func SetClaims(c echo.Context, claims *domain.Claims) {
	c.Set(claimsKey, claims)
}

// ClaimsFrom returns the claims stored by Auth, or nil for anonymous requests.
func ClaimsFrom(c echo.Context) *domain.Claims {
	claims, _ := c.Get(claimsKey).(*domain.Claims)
	return claims
}
