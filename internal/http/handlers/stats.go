package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MarketplaceStats returns the global counters and the fixed fee.
func (h *Handler) MarketplaceStats(c *gin.Context) {
	stats, err := h.Stats.GetMarketplaceStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ChainHeight returns the current block height of the ledger clock.
func (h *Handler) ChainHeight(c *gin.Context) {
	height, err := h.Clock.Height(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"height": height})
}
