package handlers

import (
	"net/http"
	"strconv"

	"asset_bridge/internal/domain"
	"asset_bridge/internal/metrics"
	"asset_bridge/internal/ws"

	"github.com/gin-gonic/gin"
)

// Zero values flow through to the service so InvalidPrice and
// InvalidParameter cover the whole invalid range.
type ListAssetRequest struct {
	AssetID        int64 `json:"asset_id"`
	Price          int64 `json:"price"`
	DurationBlocks int64 `json:"duration_blocks"`
}

// ListAsset handles the list-asset-for-sale operation.
func (h *Handler) ListAsset(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "caller not found"})
		return
	}

	var req ListAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	listingID, err := h.Market.List(ctx, caller, req.AssetID, req.Price, req.DurationBlocks)
	if err != nil {
		fail(c, err)
		return
	}

	metrics.ListingsCreated.Inc()
	h.Feed.Publish(ws.EventListingCreated, ws.ListingPayload{
		ListingID: listingID,
		AssetID:   req.AssetID,
		Price:     req.Price,
	})
	h.AuditService.LogTrade(ctx, caller, domain.AuditActionListingCreated, req.AssetID, listingID, req.Price)

	c.JSON(http.StatusOK, gin.H{"listing_id": listingID})
}

// CancelListing deactivates the caller's own active listing.
func (h *Handler) CancelListing(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "caller not found"})
		return
	}

	listingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing id"})
		return
	}

	ctx := c.Request.Context()
	if err := h.Market.Cancel(ctx, caller, listingID); err != nil {
		fail(c, err)
		return
	}

	h.Feed.Publish(ws.EventListingCancelled, ws.ListingPayload{ListingID: listingID})
	h.AuditService.LogTrade(ctx, caller, domain.AuditActionListingCancelled, 0, listingID, 0)

	c.JSON(http.StatusOK, gin.H{"listing_id": listingID})
}

// BuyAsset handles the buy-asset operation: the atomic ownership-for-payment
// exchange.
func (h *Handler) BuyAsset(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "caller not found"})
		return
	}

	listingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing id"})
		return
	}

	ctx := c.Request.Context()
	sale, err := h.Market.Buy(ctx, caller, listingID)
	if err != nil {
		fail(c, err)
		return
	}

	metrics.AssetsSold.Inc()
	metrics.TradeVolume.Add(float64(sale.Price))
	h.Feed.Publish(ws.EventAssetSold, ws.AssetSoldPayload{
		ListingID: listingID,
		AssetID:   sale.AssetID,
		Price:     sale.Price,
		Buyer:     caller,
	})
	h.AuditService.LogTrade(ctx, caller, domain.AuditActionAssetSold, sale.AssetID, listingID, sale.Price)

	c.JSON(http.StatusOK, sale)
}

// Listings returns currently active listings.
func (h *Handler) Listings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	listings, err := h.Market.ListActive(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"listings": listings})
}

// GetListing returns a single listing.
func (h *Handler) GetListing(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing id"})
		return
	}

	listing, err := h.Market.GetListing(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if listing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrListingNotFound.Error(), "code": domain.CodeListingNotFound})
		return
	}

	c.JSON(http.StatusOK, listing)
}
