package domain

import "errors"

// Input and credential errors.
var (
	ErrValidation         = errors.New("validation failed")
	ErrUserExists         = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Token errors. All of them mean the caller must log in again.
var (
	ErrMissingToken            = errors.New("missing authorization token")
	ErrMalformedToken          = errors.New("malformed token")
	ErrInvalidSignature        = errors.New("invalid token signature")
	ErrInvalidIssuerOrAudience = errors.New("invalid token issuer or audience")
	ErrTokenExpired            = errors.New("token expired")
	ErrTokenNotYetValid        = errors.New("token not yet valid")
	ErrInvalidClaims           = errors.New("invalid token claims")
)

// Authorization errors.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("access forbidden")
)

// Asset errors.
var (
	ErrAssetNotFound = errors.New("asset not found")
	ErrAssetExists   = errors.New("asset already exists")
)

// ErrStoreUnavailable wraps infrastructure failures of a backing store.
var ErrStoreUnavailable = errors.New("store unavailable")

// IsTokenError reports whether err is one of the token validation failures.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrMissingToken) ||
		errors.Is(err, ErrMalformedToken) ||
		errors.Is(err, ErrInvalidSignature) ||
		errors.Is(err, ErrInvalidIssuerOrAudience) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenNotYetValid) ||
		errors.Is(err, ErrInvalidClaims)
}
