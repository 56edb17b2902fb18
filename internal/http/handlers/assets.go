package handlers

import (
	"net/http"
	"strconv"

	"asset_bridge/internal/domain"
	"asset_bridge/internal/metrics"
	"asset_bridge/internal/service"
	"asset_bridge/internal/ws"

	"github.com/gin-gonic/gin"
)

// Numeric fields carry no "required" binding: zero is inside the domain's
// invalid range, so the service reports it with the proper error code
// instead of a generic binding failure.
type MintAssetRequest struct {
	Recipient   string `json:"recipient" binding:"required"`
	GameID      int64  `json:"game_id"`
	AssetType   int64  `json:"asset_type"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Rarity      int64  `json:"rarity"`
	Power       int64  `json:"power"`
	MetadataURI string `json:"metadata_uri" binding:"required"`
}

// MintAsset handles the mint-gaming-asset operation. Only the game's issuer
// may mint.
func (h *Handler) MintAsset(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "caller not found"})
		return
	}

	var req MintAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	assetID, err := h.Assets.Mint(ctx, caller, service.MintParams{
		Recipient:   req.Recipient,
		GameID:      req.GameID,
		AssetType:   domain.AssetType(req.AssetType),
		Name:        req.Name,
		Description: req.Description,
		Rarity:      domain.Rarity(req.Rarity),
		Power:       req.Power,
		MetadataURI: req.MetadataURI,
	})
	if err != nil {
		fail(c, err)
		return
	}

	metrics.AssetsMinted.Inc()
	h.Feed.Publish(ws.EventAssetMinted, ws.AssetMintedPayload{
		AssetID: assetID,
		GameID:  req.GameID,
		Name:    req.Name,
		Rarity:  req.Rarity,
		Owner:   req.Recipient,
	})
	h.AuditService.Log(ctx, caller, domain.AuditActionAssetMinted, domain.AuditCategoryRegistry,
		map[string]interface{}{"asset_id": assetID, "game_id": req.GameID, "recipient": req.Recipient})

	c.JSON(http.StatusOK, gin.H{"asset_id": assetID})
}

type TransferAssetRequest struct {
	Recipient string `json:"recipient" binding:"required"`
}

// TransferAsset handles the transfer-asset operation. Only the current owner
// may transfer.
func (h *Handler) TransferAsset(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "caller not found"})
		return
	}

	assetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid asset id"})
		return
	}

	var req TransferAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	id, err := h.Assets.Transfer(ctx, caller, assetID, req.Recipient)
	if err != nil {
		fail(c, err)
		return
	}

	metrics.AssetTransfers.Inc()
	h.AuditService.Log(ctx, caller, domain.AuditActionAssetTransfer, domain.AuditCategoryRegistry,
		map[string]interface{}{"asset_id": id, "recipient": req.Recipient})

	c.JSON(http.StatusOK, gin.H{"asset_id": id})
}

type RebindAssetRequest struct {
	TargetGameID int64 `json:"target_game_id"`
}

// RebindAsset handles the cross-game-transfer operation, rebinding an asset
// to another game.
func (h *Handler) RebindAsset(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "caller not found"})
		return
	}

	assetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid asset id"})
		return
	}

	var req RebindAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	id, err := h.Assets.CrossGameTransfer(ctx, caller, assetID, req.TargetGameID)
	if err != nil {
		fail(c, err)
		return
	}

	metrics.AssetTransfers.Inc()
	h.AuditService.Log(ctx, caller, domain.AuditActionAssetRebound, domain.AuditCategoryRegistry,
		map[string]interface{}{"asset_id": id, "target_game_id": req.TargetGameID})

	c.JSON(http.StatusOK, gin.H{"asset_id": id})
}

// GetAsset returns asset details, or 404 if the asset was never minted.
func (h *Handler) GetAsset(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid asset id"})
		return
	}

	asset, err := h.Assets.GetAsset(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if asset == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrAssetNotFound.Error(), "code": domain.CodeAssetNotFound})
		return
	}

	c.JSON(http.StatusOK, asset)
}

// GetAssetStats returns an asset's transfer and sale counters.
func (h *Handler) GetAssetStats(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid asset id"})
		return
	}

	stats, err := h.Stats.GetAssetStats(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if stats == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrAssetNotFound.Error(), "code": domain.CodeAssetNotFound})
		return
	}

	c.JSON(http.StatusOK, stats)
}
