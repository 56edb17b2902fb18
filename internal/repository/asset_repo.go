package repository

import (
	"context"

	"asset_bridge/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AssetRepository struct {
	db *pgxpool.Pool
}

func NewAssetRepository(db *pgxpool.Pool) *AssetRepository {
	return &AssetRepository{db: db}
}

const assetColumns = `id, game_id, asset_type, name, description, rarity, power, metadata_uri, owner, created_at_height`

// CreateWithTx inserts an asset with an explicitly assigned id and its zeroed
// statistics row.
func (r *AssetRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, a *domain.Asset) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO assets (id, game_id, asset_type, name, description, rarity, power, metadata_uri, owner, created_at_height)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID, a.GameID, a.AssetType, a.Name, a.Description, a.Rarity, a.Power, a.MetadataURI, a.Owner, a.CreatedAtHeight,
	)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO asset_stats (asset_id, total_transfers, total_sales) VALUES ($1, 0, 0)`, a.ID)
	return err
}

// GetByID returns an asset or pgx.ErrNoRows.
func (r *AssetRepository) GetByID(ctx context.Context, id int64) (*domain.Asset, error) {
	return scanAsset(r.db.QueryRow(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE id = $1`, id))
}

// GetTx returns an asset with its row locked for the rest of the transaction.
func (r *AssetRepository) GetTx(ctx context.Context, tx pgx.Tx, id int64) (*domain.Asset, error) {
	return scanAsset(tx.QueryRow(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE id = $1 FOR UPDATE`, id))
}

func (r *AssetRepository) UpdateOwnerTx(ctx context.Context, tx pgx.Tx, id int64, owner string) error {
	_, err := tx.Exec(ctx, `UPDATE assets SET owner = $1 WHERE id = $2`, owner, id)
	return err
}

func (r *AssetRepository) UpdateGameTx(ctx context.Context, tx pgx.Tx, id, gameID int64) error {
	_, err := tx.Exec(ctx, `UPDATE assets SET game_id = $1 WHERE id = $2`, gameID, id)
	return err
}

// IncrTransfersTx bumps the per-asset transfer counter.
func (r *AssetRepository) IncrTransfersTx(ctx context.Context, tx pgx.Tx, id int64) error {
	_, err := tx.Exec(ctx,
		`UPDATE asset_stats SET total_transfers = total_transfers + 1 WHERE asset_id = $1`, id)
	return err
}

// IncrSalesTx bumps the per-asset sale counter.
func (r *AssetRepository) IncrSalesTx(ctx context.Context, tx pgx.Tx, id int64) error {
	_, err := tx.Exec(ctx,
		`UPDATE asset_stats SET total_sales = total_sales + 1 WHERE asset_id = $1`, id)
	return err
}

// GetStats returns an asset's counters or pgx.ErrNoRows if it was never minted.
func (r *AssetRepository) GetStats(ctx context.Context, id int64) (*domain.AssetStats, error) {
	var s domain.AssetStats
	err := r.db.QueryRow(ctx,
		`SELECT asset_id, total_transfers, total_sales FROM asset_stats WHERE asset_id = $1`, id,
	).Scan(&s.AssetID, &s.TotalTransfers, &s.TotalSales)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByGame returns assets currently bound to a game, newest first.
func (r *AssetRepository) ListByGame(ctx context.Context, gameID int64, limit int) ([]*domain.Asset, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE game_id = $1 ORDER BY id DESC LIMIT $2`,
		gameID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Asset
	for rows.Next() {
		var a domain.Asset
		if err := rows.Scan(&a.ID, &a.GameID, &a.AssetType, &a.Name, &a.Description,
			&a.Rarity, &a.Power, &a.MetadataURI, &a.Owner, &a.CreatedAtHeight); err != nil {
			return nil, err
		}
		res = append(res, &a)
	}
	return res, rows.Err()
}

func scanAsset(row pgx.Row) (*domain.Asset, error) {
	var a domain.Asset
	err := row.Scan(&a.ID, &a.GameID, &a.AssetType, &a.Name, &a.Description,
		&a.Rarity, &a.Power, &a.MetadataURI, &a.Owner, &a.CreatedAtHeight)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
