package handlers

import (
	"net/http"

	"asset_bridge/internal/chain"
	"asset_bridge/internal/domain"
	"asset_bridge/internal/service"
	"asset_bridge/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HandlerConfig holds configuration for handler
type HandlerConfig struct {
	TreasuryAddress string
}

type Handler struct {
	DB           *pgxpool.Pool
	Registry     *service.RegistryService
	Assets       *service.AssetService
	Market       *service.MarketplaceService
	Stats        *service.StatsService
	Balance      *service.BalanceService
	AuditService *service.AuditService
	Clock        *chain.Clock
	Feed         *ws.Hub
}

// NewHandler wires the operation services around one database pool.
func NewHandler(db *pgxpool.Pool, cfg HandlerConfig, stats *service.StatsService, clock *chain.Clock, feed *ws.Hub) *Handler {
	return &Handler{
		DB:           db,
		Registry:     service.NewRegistryService(db),
		Assets:       service.NewAssetService(db),
		Market:       service.NewMarketplaceService(db, cfg.TreasuryAddress),
		Stats:        stats,
		Balance:      service.NewBalanceService(db),
		AuditService: service.NewAuditService(db),
		Clock:        clock,
		Feed:         feed,
	}
}

// getCaller extracts the effective caller address set by the JWT middleware.
func getCaller(c *gin.Context) (string, bool) {
	val, ok := c.Get("address")
	if !ok {
		return "", false
	}
	address, ok := val.(string)
	if !ok || address == "" {
		return "", false
	}
	return address, true
}

// fail writes the error kind and numeric code for a failed operation.
func fail(c *gin.Context, err error) {
	code := domain.ErrorCode(err)
	status := statusForCode(code)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}

func statusForCode(code int) int {
	switch code {
	case domain.CodeNotAuthorized:
		return http.StatusForbidden
	case domain.CodeGameNotFound, domain.CodeAssetNotFound, domain.CodeListingNotFound:
		return http.StatusNotFound
	case domain.CodeAlreadyListed, domain.CodeListingExpired, domain.CodeListingInactive:
		return http.StatusConflict
	case domain.CodeInvalidRarity, domain.CodeInvalidAssetType, domain.CodeInvalidPrice,
		domain.CodeInvalidParameter, domain.CodeInsufficientFunds:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
