package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/smartoffice/platform/internal/api/metrics"
	"github.com/smartoffice/platform/internal/core/domain"
	"github.com/smartoffice/platform/internal/core/ports"
)

// Auth validates the bearer token and injects its claims into the context.
// Failures are returned as domain token errors for the HTTP error handler.
func Auth(validator ports.TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				metrics.TokenValidationsTotal.WithLabelValues(validationResult(err)).Inc()
				return err
			}

			claims, err := validator.Validate(token)
			if err != nil {
				metrics.TokenValidationsTotal.WithLabelValues(validationResult(err)).Inc()
				return err
			}
			metrics.TokenValidationsTotal.WithLabelValues("valid").Inc()

			SetClaims(c, claims)
			return next(c)
		}
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", domain.ErrMissingToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", domain.ErrMalformedToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", domain.ErrMissingToken
	}
	return token, nil
}

func validationResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingToken):
		return "missing"
	case errors.Is(err, domain.ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, domain.ErrInvalidIssuerOrAudience):
		return "invalid_issuer_or_audience"
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenNotYetValid):
		return "not_yet_valid"
	case errors.Is(err, domain.ErrInvalidClaims):
		return "invalid_claims"
	default:
		return "malformed"
	}
}
