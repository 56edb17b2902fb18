package service

import (
	"context"

	"asset_bridge/internal/domain"
	"asset_bridge/internal/logger"
	"asset_bridge/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditService handles audit logging
type AuditService struct {
	repo *repository.AuditRepository
}

// NewAuditService creates a new audit service
func NewAuditService(db *pgxpool.Pool) *AuditService {
	return &AuditService{
		repo: repository.NewAuditRepository(db),
	}
}

// Log creates a new audit log entry
func (s *AuditService) Log(ctx context.Context, address, action, category string, details map[string]interface{}) {
	log := &domain.AuditLog{
		Address:  address,
		Action:   action,
		Category: category,
		Details:  details,
	}

	if err := s.repo.Create(ctx, log); err != nil {
		logger.Error("failed to create audit log", "error", err, "action", action, "address", address)
	}
}

// LogWithRequest creates an audit log with request info (IP, User-Agent)
func (s *AuditService) LogWithRequest(ctx context.Context, address, action, category, ip, userAgent string, details map[string]interface{}) {
	log := &domain.AuditLog{
		Address:   address,
		Action:    action,
		Category:  category,
		Details:   details,
		IP:        ip,
		UserAgent: userAgent,
	}

	if err := s.repo.Create(ctx, log); err != nil {
		logger.Error("failed to create audit log", "error", err, "action", action, "address", address)
	}
}

// LogTrade logs a marketplace action tied to an asset
func (s *AuditService) LogTrade(ctx context.Context, address, action string, assetID, listingID, price int64) {
	s.Log(ctx, address, action, domain.AuditCategoryMarket, map[string]interface{}{
		"asset_id":   assetID,
		"listing_id": listingID,
		"price":      price,
	})
}
