package ports

import (
	"context"

	"github.com/smartoffice/platform/internal/core/domain"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string
	Role      domain.Role
	ExpiresAt int64
}

// AuthService registers users and exchanges credentials for session tokens.
type AuthService interface {
	Register(ctx context.Context, username, password, role string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}
