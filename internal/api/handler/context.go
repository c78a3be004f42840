package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/smartoffice/platform/internal/api/middleware"
	"github.com/smartoffice/platform/internal/core/domain"
)

// ctxClaims returns the claims injected by the Auth middleware. Their absence
// means the route was mounted without Auth, which is reported as 401.
func ctxClaims(c echo.Context) (*domain.Claims, error) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil || claims.Username == "" {
		return nil, domain.ErrUnauthenticated
	}
	return claims, nil
}
