package ports

import (
	"context"

	"github.com/smartoffice/platform/internal/core/domain"
)

// AssetRepository defines persistence operations for assets.
type AssetRepository interface {
	List(ctx context.Context) ([]*domain.Asset, error)
	// FindByID returns domain.ErrAssetNotFound when the id is unknown or malformed.
	FindByID(ctx context.Context, id string) (*domain.Asset, error)
	// FindByNameAndType returns domain.ErrAssetNotFound when no asset has the pair.
	FindByNameAndType(ctx context.Context, name, assetType string) (*domain.Asset, error)
	// Create and Replace report a (name, type) collision as domain.ErrAssetExists.
	Create(ctx context.Context, asset *domain.Asset) error
	Replace(ctx context.Context, asset *domain.Asset) error
	// Delete reports whether a document was removed.
	Delete(ctx context.Context, id string) (bool, error)
}

// AuditRepository persists asset audit events.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AssetEvent) error
}

// IdempotencyStore remembers which asset an Idempotency-Key produced.
type IdempotencyStore interface {
	// Lookup returns the asset id stored under key, or "" when absent.
	Lookup(ctx context.Context, key string) (string, error)
	Remember(ctx context.Context, key, assetID string) error
}
