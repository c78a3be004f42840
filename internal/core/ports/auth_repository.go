package ports

import (
	"context"

	"github.com/smartoffice/platform/internal/core/domain"
)

// CredentialStore persists user credential records.
type CredentialStore interface {
	// FindByUsername returns domain.ErrUserNotFound when no record matches.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Insert stores a new record. A storage-level uniqueness violation is
	// reported as domain.ErrUserExists.
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
}
