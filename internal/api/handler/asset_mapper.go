package handler

import (
	"github.com/smartoffice/platform/internal/core/domain"
	"github.com/smartoffice/platform/internal/core/ports"
)

// --- Request → Service input ---

func toAssetInput(req assetRequest) ports.AssetInput {
	return ports.AssetInput{
		Name:     req.Name,
		Type:     req.Type,
		Location: req.Location,
	}
}

// --- Domain → Response ---

func toAssetResponse(a *domain.Asset) assetResponse {
	return assetResponse{
		ID:        a.ID,
		Name:      a.Name,
		Type:      a.Type,
		Location:  a.Location,
		CreatedAt: a.CreatedAt.UTC(),
		UpdatedAt: a.UpdatedAt.UTC(),
	}
}

func toAssetResponses(assets []*domain.Asset) []assetResponse {
	out := make([]assetResponse, 0, len(assets))
	for _, a := range assets {
		out = append(out, toAssetResponse(a))
	}
	return out
}
