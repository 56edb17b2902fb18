package handlers

import (
	"net/http"
	"strconv"

	"asset_bridge/internal/domain"
	"asset_bridge/internal/metrics"
	"asset_bridge/internal/ws"

	"github.com/gin-gonic/gin"
)

type RegisterGameRequest struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description" binding:"required"`
	RevenueShareBps int64  `json:"revenue_share_bps"`
	Website         string `json:"website" binding:"required"`
}

// RegisterGame handles the register-game operation. Any authenticated caller
// may register; the caller becomes the game's issuer.
func (h *Handler) RegisterGame(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "caller not found"})
		return
	}

	var req RegisterGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	gameID, err := h.Registry.RegisterGame(ctx, caller, req.Name, req.Description, req.Website, req.RevenueShareBps)
	if err != nil {
		fail(c, err)
		return
	}

	metrics.GamesRegistered.Inc()
	h.Feed.Publish(ws.EventGameRegistered, ws.GameRegisteredPayload{
		GameID: gameID,
		Name:   req.Name,
		Issuer: caller,
	})
	h.AuditService.Log(ctx, caller, domain.AuditActionGameRegistered, domain.AuditCategoryRegistry,
		map[string]interface{}{"game_id": gameID, "name": req.Name})

	c.JSON(http.StatusOK, gin.H{"game_id": gameID})
}

// GetGame returns a game's details.
func (h *Handler) GetGame(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
		return
	}

	game, err := h.Registry.GetGame(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if game == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrGameNotFound.Error(), "code": domain.CodeGameNotFound})
		return
	}

	c.JSON(http.StatusOK, game)
}

// GameAssets returns the assets currently bound to a game.
func (h *Handler) GameAssets(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
		return
	}

	ctx := c.Request.Context()
	game, err := h.Registry.GetGame(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if game == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrGameNotFound.Error(), "code": domain.CodeGameNotFound})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	assets, err := h.Assets.ListByGame(ctx, id, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"game_id": id, "assets": assets})
}
