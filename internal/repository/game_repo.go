package repository

import (
	"context"

	"asset_bridge/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GameRepository struct {
	db *pgxpool.Pool
}

func NewGameRepository(db *pgxpool.Pool) *GameRepository {
	return &GameRepository{db: db}
}

const gameColumns = `id, name, description, revenue_share_bps, website, issuer, asset_count, created_at`

// CreateWithTx inserts a game with an explicitly assigned id.
func (r *GameRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, g *domain.Game) error {
	return tx.QueryRow(ctx,
		`INSERT INTO games (id, name, description, revenue_share_bps, website, issuer, asset_count)
		 VALUES ($1, $2, $3, $4, $5, $6, 0)
		 RETURNING created_at`,
		g.ID, g.Name, g.Description, g.RevenueShareBps, g.Website, g.Issuer,
	).Scan(&g.CreatedAt)
}

// GetByID returns a game or pgx.ErrNoRows.
func (r *GameRepository) GetByID(ctx context.Context, id int64) (*domain.Game, error) {
	return scanGame(r.db.QueryRow(ctx,
		`SELECT `+gameColumns+` FROM games WHERE id = $1`, id))
}

// GetTx returns a game with its row locked for the rest of the transaction.
func (r *GameRepository) GetTx(ctx context.Context, tx pgx.Tx, id int64) (*domain.Game, error) {
	return scanGame(tx.QueryRow(ctx,
		`SELECT `+gameColumns+` FROM games WHERE id = $1 FOR UPDATE`, id))
}

// AdjustAssetCountTx shifts a game's asset count by delta (±1 on mint/rebind).
func (r *GameRepository) AdjustAssetCountTx(ctx context.Context, tx pgx.Tx, id, delta int64) error {
	_, err := tx.Exec(ctx,
		`UPDATE games SET asset_count = asset_count + $1 WHERE id = $2`, delta, id)
	return err
}

func scanGame(row pgx.Row) (*domain.Game, error) {
	var g domain.Game
	err := row.Scan(&g.ID, &g.Name, &g.Description, &g.RevenueShareBps,
		&g.Website, &g.Issuer, &g.AssetCount, &g.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}
