package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"asset_bridge/internal/domain"
	"asset_bridge/internal/logger"
	"asset_bridge/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	redis "github.com/redis/go-redis/v9"
)

const (
	statsCacheKey = "stats:marketplace"
	statsCacheTTL = 5 * time.Second
)

// StatsService serves the read-only statistics operations. Marketplace stats
// are cached briefly in Redis when a client is configured; the cache is
// fail-open.
type StatsService struct {
	stateRepo *repository.StateRepository
	assetRepo *repository.AssetRepository
	cache     *redis.Client
}

// NewStatsService creates a new stats service. cache may be nil.
func NewStatsService(db *pgxpool.Pool, cache *redis.Client) *StatsService {
	return &StatsService{
		stateRepo: repository.NewStateRepository(db),
		assetRepo: repository.NewAssetRepository(db),
		cache:     cache,
	}
}

// GetAssetStats returns an asset's counters, or nil if the asset was never
// minted.
func (s *StatsService) GetAssetStats(ctx context.Context, assetID int64) (*domain.AssetStats, error) {
	stats, err := s.assetRepo.GetStats(ctx, assetID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return stats, nil
}

// GetMarketplaceStats returns the global counters.
func (s *StatsService) GetMarketplaceStats(ctx context.Context) (*domain.MarketplaceStats, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, statsCacheKey).Bytes(); err == nil {
			var cached domain.MarketplaceStats
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	stats, err := s.stateRepo.GetMarketplaceStats(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, raw, statsCacheTTL).Err(); err != nil {
				logger.Debug("stats cache write failed", "error", err)
			}
		}
	}
	return stats, nil
}
