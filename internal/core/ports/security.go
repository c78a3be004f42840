package ports

import "github.com/smartoffice/platform/internal/core/domain"

// PasswordHasher produces and checks salted one-way password hashes.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenIssuer mints signed session tokens.
type TokenIssuer interface {
	Issue(username string, role domain.Role) (string, *domain.Claims, error)
}

// TokenValidator verifies a session token and returns its claims.
type TokenValidator interface {
	Validate(token string) (*domain.Claims, error)
}
