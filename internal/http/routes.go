package http

import (
	"asset_bridge/internal/chain"
	"asset_bridge/internal/config"
	"asset_bridge/internal/http/handlers"
	"asset_bridge/internal/http/middleware"
	"asset_bridge/internal/service"
	"asset_bridge/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes wires every public operation onto the router.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string,
	stats *service.StatsService, clock *chain.Clock, feed *ws.Hub) {

	h := handlers.NewHandler(db, handlers.HandlerConfig{
		TreasuryAddress: cfg.TreasuryAddress,
	}, stats, clock, feed)
	healthHandler := handlers.NewHealthHandler(db, clock, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))

	authRL := middleware.RedisRateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow)
	tradeRL := middleware.TradeRateLimit(cfg.TradeRateLimit, cfg.TradeRateWindow)

	// Auth
	v1.POST("/auth/register", authRL, h.Register)
	v1.POST("/auth", authRL, h.Auth)
	v1.GET("/me", middleware.JWT(), h.Me)
	v1.GET("/me/ledger", middleware.JWT(), h.MyLedger)
	v1.GET("/me/audit", middleware.JWT(), h.MyAudit)

	// Game registry
	v1.POST("/games", middleware.JWT(), h.RegisterGame)
	v1.GET("/games/:id", h.GetGame)
	v1.GET("/games/:id/assets", h.GameAssets)

	// Assets
	v1.POST("/assets", middleware.JWT(), h.MintAsset)
	v1.POST("/assets/:id/transfer", middleware.JWT(), h.TransferAsset)
	v1.POST("/assets/:id/rebind", middleware.JWT(), h.RebindAsset)
	v1.GET("/assets/:id", h.GetAsset)
	v1.GET("/assets/:id/stats", h.GetAssetStats)

	// Marketplace
	v1.POST("/listings", middleware.JWT(), tradeRL, h.ListAsset)
	v1.POST("/listings/:id/cancel", middleware.JWT(), tradeRL, h.CancelListing)
	v1.POST("/listings/:id/buy", middleware.JWT(), tradeRL, h.BuyAsset)
	v1.GET("/listings", h.Listings)
	v1.GET("/listings/:id", h.GetListing)

	// Stats and chain info
	v1.GET("/stats", h.MarketplaceStats)
	v1.GET("/chain/height", h.ChainHeight)

	// WebSocket market event feed
	r.GET("/ws", h.FeedWS)
}
