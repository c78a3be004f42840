package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/smartoffice/platform/internal/core/domain"
	"github.com/smartoffice/platform/internal/core/ports"
)

const assetFieldMaxLength = 200

type AssetService struct {
	repo   ports.AssetRepository
	idem   ports.IdempotencyStore
	events ports.AssetEventPublisher
	logger zerolog.Logger
}

// NewAssetService wires the asset use cases. idem and events may be nil, in
// which case Idempotency-Key replay and auditing are disabled.
func NewAssetService(
	repo ports.AssetRepository,
	idem ports.IdempotencyStore,
	events ports.AssetEventPublisher,
	logger zerolog.Logger,
) *AssetService {
	return &AssetService{repo: repo, idem: idem, events: events, logger: logger}
}

func (s *AssetService) ListAssets(ctx context.Context) ([]*domain.Asset, error) {
	assets, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	if assets == nil {
		assets = []*domain.Asset{}
	}
	return assets, nil
}

func (s *AssetService) GetAsset(ctx context.Context, id string) (*domain.Asset, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrAssetNotFound
	}
	return s.repo.FindByID(ctx, id)
}

// CreateAsset stores a new asset. If an idempotency key is provided and
// already seen, the previously created asset is returned without side effects.
func (s *AssetService) CreateAsset(ctx context.Context, input ports.CreateAssetInput) (*ports.CreateAssetResult, error) {
	fields, err := normalizeAssetInput(input.AssetInput)
	if err != nil {
		return nil, err
	}

	if existing := s.replay(ctx, input.IdempotencyKey); existing != nil {
		return &ports.CreateAssetResult{Asset: existing, AlreadyExisted: true}, nil
	}

	if _, err := s.repo.FindByNameAndType(ctx, fields.Name, fields.Type); err == nil {
		return nil, domain.ErrAssetExists
	} else if !errors.Is(err, domain.ErrAssetNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	asset := &domain.Asset{
		Name:      fields.Name,
		Type:      fields.Type,
		Location:  fields.Location,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, asset); err != nil {
		if !errors.Is(err, domain.ErrAssetExists) {
			s.logger.Error().Err(err).Msg("failed to create asset")
		}
		return nil, err
	}

	if input.IdempotencyKey != "" && s.idem != nil {
		if err := s.idem.Remember(ctx, input.IdempotencyKey, asset.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("failed to store idempotency key")
		}
	}

	s.publish(domain.AssetCreated, asset, input.Actor)
	s.logger.Info().Str("asset_id", asset.ID).Str("actor", input.Actor).Msg("asset created")
	return &ports.CreateAssetResult{Asset: asset}, nil
}

// UpdateAsset replaces the writable fields of an existing asset. The id and
// creation time are preserved.
func (s *AssetService) UpdateAsset(ctx context.Context, input ports.UpdateAssetInput) error {
	fields, err := normalizeAssetInput(input.AssetInput)
	if err != nil {
		return err
	}

	current, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return err
	}

	other, err := s.repo.FindByNameAndType(ctx, fields.Name, fields.Type)
	switch {
	case err == nil && other.ID != current.ID:
		return domain.ErrAssetExists
	case err != nil && !errors.Is(err, domain.ErrAssetNotFound):
		return err
	}

	current.Name = fields.Name
	current.Type = fields.Type
	current.Location = fields.Location
	current.UpdatedAt = time.Now().UTC()

	if err := s.repo.Replace(ctx, current); err != nil {
		return err
	}

	s.publish(domain.AssetUpdated, current, input.Actor)
	s.logger.Info().Str("asset_id", current.ID).Str("actor", input.Actor).Msg("asset updated")
	return nil
}

// DeleteAsset removes an asset. Deleting an absent asset is not an error.
func (s *AssetService) DeleteAsset(ctx context.Context, id, actor string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, domain.ErrAssetNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if removed {
		s.publish(domain.AssetDeleted, existing, actor)
		s.logger.Info().Str("asset_id", id).Str("actor", actor).Msg("asset deleted")
	}
	return nil
}

func (s *AssetService) replay(ctx context.Context, key string) *domain.Asset {
	if key == "" || s.idem == nil {
		return nil
	}
	id, err := s.idem.Lookup(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed, creating anyway")
		return nil
	}
	if id == "" {
		return nil
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		// The asset was deleted since; treat the key as unused.
		return nil
	}
	s.logger.Info().Str("idempotency_key", key).Str("asset_id", id).Msg("idempotent replay")
	return existing
}

func (s *AssetService) publish(action domain.AssetAction, a *domain.Asset, actor string) {
	if s.events == nil {
		return
	}
	s.events.Publish(domain.AssetEvent{
		ID:         uuid.NewString(),
		AssetID:    a.ID,
		Action:     action,
		Actor:      actor,
		Name:       a.Name,
		Type:       a.Type,
		Location:   a.Location,
		OccurredAt: time.Now().UTC(),
	})
}

func normalizeAssetInput(in ports.AssetInput) (ports.AssetInput, error) {
	out := ports.AssetInput{
		Name:     strings.TrimSpace(in.Name),
		Type:     strings.TrimSpace(in.Type),
		Location: strings.TrimSpace(in.Location),
	}
	if out.Name == "" || out.Type == "" || out.Location == "" {
		return out, fmt.Errorf("%w: name, type and location are required", domain.ErrValidation)
	}
	if len(out.Name) > assetFieldMaxLength || len(out.Type) > assetFieldMaxLength || len(out.Location) > assetFieldMaxLength {
		return out, fmt.Errorf("%w: fields must be at most %d characters", domain.ErrValidation, assetFieldMaxLength)
	}
	return out, nil
}
