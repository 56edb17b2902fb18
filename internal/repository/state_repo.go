package repository

import (
	"context"

	"asset_bridge/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StateRepository owns the bridge_state singleton row: the id sequences and
// the global counters. Every mutating operation takes the row lock first
// (either through a sequence bump or LockTx), which serializes operations the
// same way the host ledger's total ordering would.
type StateRepository struct {
	db *pgxpool.Pool
}

func NewStateRepository(db *pgxpool.Pool) *StateRepository {
	return &StateRepository{db: db}
}

// LockTx acquires the state row lock without assigning an id.
func (r *StateRepository) LockTx(ctx context.Context, tx pgx.Tx) error {
	var id int64
	return tx.QueryRow(ctx, `SELECT id FROM bridge_state WHERE id = 1 FOR UPDATE`).Scan(&id)
}

// NextGameIDTx assigns the next sequential game id.
func (r *StateRepository) NextGameIDTx(ctx context.Context, tx pgx.Tx) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx,
		`UPDATE bridge_state SET game_seq = game_seq + 1 WHERE id = 1 RETURNING game_seq`,
	).Scan(&id)
	return id, err
}

// NextAssetIDTx assigns the next sequential asset id.
func (r *StateRepository) NextAssetIDTx(ctx context.Context, tx pgx.Tx) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx,
		`UPDATE bridge_state SET asset_seq = asset_seq + 1 WHERE id = 1 RETURNING asset_seq`,
	).Scan(&id)
	return id, err
}

// NextListingIDTx assigns the next sequential listing id.
func (r *StateRepository) NextListingIDTx(ctx context.Context, tx pgx.Tx) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx,
		`UPDATE bridge_state SET listing_seq = listing_seq + 1 WHERE id = 1 RETURNING listing_seq`,
	).Scan(&id)
	return id, err
}

func (r *StateRepository) IncrTotalGamesTx(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, `UPDATE bridge_state SET total_games = total_games + 1 WHERE id = 1`)
	return err
}

func (r *StateRepository) IncrTotalAssetsTx(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, `UPDATE bridge_state SET total_assets = total_assets + 1 WHERE id = 1`)
	return err
}

// AddVolumeTx adds a completed sale price to the global volume counter.
func (r *StateRepository) AddVolumeTx(ctx context.Context, tx pgx.Tx, price int64) error {
	_, err := tx.Exec(ctx, `UPDATE bridge_state SET total_volume = total_volume + $1 WHERE id = 1`, price)
	return err
}

// GetMarketplaceStats reads the global counters.
func (r *StateRepository) GetMarketplaceStats(ctx context.Context) (*domain.MarketplaceStats, error) {
	stats := &domain.MarketplaceStats{MarketplaceFeeBps: domain.MarketplaceFeeBps}
	err := r.db.QueryRow(ctx,
		`SELECT total_games, total_assets, total_volume FROM bridge_state WHERE id = 1`,
	).Scan(&stats.TotalGames, &stats.TotalAssets, &stats.TotalVolume)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
