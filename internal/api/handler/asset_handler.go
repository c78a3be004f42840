package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartoffice/platform/internal/api/metrics"
	"github.com/smartoffice/platform/internal/core/ports"
)

// HeaderIdempotencyKey lets clients retry asset creation safely.
const HeaderIdempotencyKey = "Idempotency-Key"

// AssetHandler handles HTTP requests for asset operations.
type AssetHandler struct {
	service ports.AssetService
}

func NewAssetHandler(service ports.AssetService) *AssetHandler {
	return &AssetHandler{service: service}
}

// List handles GET /api/assets.
//
// @Summary      List assets
// @Tags         assets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   assetResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/assets [get]
func (h *AssetHandler) List(c echo.Context) error {
	assets, err := h.service.ListAssets(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAssetResponses(assets))
}

// Get handles GET /api/assets/:id.
//
// @Summary      Get an asset
// @Tags         assets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Asset id"
// @Success      200  {object}  assetResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/assets/{id} [get]
func (h *AssetHandler) Get(c echo.Context) error {
	asset, err := h.service.GetAsset(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAssetResponse(asset))
}

// Create handles POST /api/assets. A repeated Idempotency-Key returns the
// asset created by the first request with 200.
//
// @Summary      Create an asset
// @Tags         assets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string        false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      assetRequest  true   "Asset"
// @Success      201              {object}  assetResponse
// @Success      200              {object}  assetResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Router       /api/assets [post]
func (h *AssetHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req assetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.service.CreateAsset(c.Request().Context(), ports.CreateAssetInput{
		AssetInput:     toAssetInput(req),
		Actor:          claims.Username,
		IdempotencyKey: c.Request().Header.Get(HeaderIdempotencyKey),
	})
	if err != nil {
		return err
	}

	if result.AlreadyExisted {
		metrics.AssetMutationsTotal.WithLabelValues("replayed").Inc()
		return c.JSON(http.StatusOK, toAssetResponse(result.Asset))
	}
	metrics.AssetMutationsTotal.WithLabelValues("created").Inc()
	c.Response().Header().Set(echo.HeaderLocation, "/api/assets/"+result.Asset.ID)
	return c.JSON(http.StatusCreated, toAssetResponse(result.Asset))
}

// Update handles PUT /api/assets/:id.
//
// @Summary      Replace an asset
// @Tags         assets
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string        true  "Asset id"
// @Param        body  body  assetRequest  true  "Asset"
// @Success      204
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/assets/{id} [put]
func (h *AssetHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req assetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.service.UpdateAsset(c.Request().Context(), ports.UpdateAssetInput{
		AssetInput: toAssetInput(req),
		ID:         c.Param("id"),
		Actor:      claims.Username,
	}); err != nil {
		return err
	}

	metrics.AssetMutationsTotal.WithLabelValues("updated").Inc()
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /api/assets/:id. Deleting an unknown id still
// returns 204.
//
// @Summary      Delete an asset
// @Tags         assets
// @Security     BearerAuth
// @Param        id  path  string  true  "Asset id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/assets/{id} [delete]
func (h *AssetHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteAsset(c.Request().Context(), c.Param("id"), claims.Username); err != nil {
		return err
	}

	metrics.AssetMutationsTotal.WithLabelValues("deleted").Inc()
	return c.NoContent(http.StatusNoContent)
}
