package ports

import (
	"context"

	"github.com/smartoffice/platform/internal/core/domain"
)

// AssetInput carries the writable fields of an asset.
type AssetInput struct {
	Name     string
	Type     string
	Location string
}

// CreateAssetInput carries everything needed to create an asset.
type CreateAssetInput struct {
	AssetInput
	Actor          string
	IdempotencyKey string
}

// UpdateAssetInput replaces the writable fields of an existing asset.
type UpdateAssetInput struct {
	AssetInput
	ID    string
	Actor string
}

// CreateAssetResult is returned by CreateAsset.
type CreateAssetResult struct {
	Asset *domain.Asset
	// AlreadyExisted is true when the Idempotency-Key matched an earlier create.
	AlreadyExisted bool
}

// AssetService defines use-case operations for assets.
type AssetService interface {
	ListAssets(ctx context.Context) ([]*domain.Asset, error)
	GetAsset(ctx context.Context, id string) (*domain.Asset, error)
	CreateAsset(ctx context.Context, input CreateAssetInput) (*CreateAssetResult, error)
	UpdateAsset(ctx context.Context, input UpdateAssetInput) error
	DeleteAsset(ctx context.Context, id, actor string) error
}

// AssetEventPublisher hands audit events to background processing.
type AssetEventPublisher interface {
	Publish(event domain.AssetEvent)
}
