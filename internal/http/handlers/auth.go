package handlers

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"

	"asset_bridge/internal/chain"
	"asset_bridge/internal/domain"
	"asset_bridge/internal/repository"
	"asset_bridge/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type RegisterRequest struct {
	Address string `json:"address" binding:"required"`
}

// Register creates an account for an address and returns its API key. The
// key is shown once; logins exchange it for a JWT.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	if !chain.ValidAddress(req.Address) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address", "code": domain.CodeInvalidParameter})
		return
	}
	address := chain.NormalizeAddress(req.Address)

	keyBytes := make([]byte, 32)
	if _, err := rand.Read(keyBytes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	apiKey := hex.EncodeToString(keyBytes)

	ctx := c.Request.Context()
	repo := repository.NewAccountRepository(h.DB)
	account := &domain.Account{Address: address, APIKey: apiKey}
	if err := repo.Create(ctx, account); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "account already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	h.AuditService.LogWithRequest(ctx, address, domain.AuditActionRegister, domain.AuditCategoryAuth,
		c.ClientIP(), c.Request.UserAgent(), nil)

	c.JSON(http.StatusCreated, gin.H{"address": address, "api_key": apiKey})
}

type AuthRequest struct {
	Address string `json:"address" binding:"required"`
	APIKey  string `json:"api_key" binding:"required"`
}

// Auth exchanges an address plus API key for a JWT.
func (h *Handler) Auth(c *gin.Context) {
	var req AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	address := chain.NormalizeAddress(req.Address)
	ctx := c.Request.Context()

	repo := repository.NewAccountRepository(h.DB)
	account, err := repo.GetByAddress(ctx, address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if account.APIKey == "" ||
		subtle.ConstantTimeCompare([]byte(account.APIKey), []byte(req.APIKey)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := service.GenerateJWT(address)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	h.AuditService.LogWithRequest(ctx, address, domain.AuditActionLogin, domain.AuditCategoryAuth,
		c.ClientIP(), c.Request.UserAgent(), nil)

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Me returns the caller's account and balance.
func (h *Handler) Me(c *gin.Context) {
	address, ok := getCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "caller not found"})
		return
	}

	balance, err := h.Balance.GetBalance(c.Request.Context(), address)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"address": address, "balance": balance})
}

// MyLedger returns the caller's recent balance movements.
func (h *Handler) MyLedger(c *gin.Context) {
	address, ok := getCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "caller not found"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	repo := repository.NewLedgerRepository(h.DB)
	entries, err := repo.GetByAddress(c.Request.Context(), address, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"address": address, "entries": entries})
}

// MyAudit returns the caller's recent audit trail.
func (h *Handler) MyAudit(c *gin.Context) {
	address, ok := getCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "caller not found"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	repo := repository.NewAuditRepository(h.DB)
	logs, err := repo.GetByAddress(c.Request.Context(), address, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"address": address, "logs": logs})
}
