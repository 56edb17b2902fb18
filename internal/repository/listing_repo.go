package repository

import (
	"context"

	"asset_bridge/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ListingRepository struct {
	db *pgxpool.Pool
}

func NewListingRepository(db *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{db: db}
}

const listingColumns = `id, asset_id, seller, price, expiry_height, active, created_at`

// CreateWithTx inserts a listing with an explicitly assigned id.
func (r *ListingRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, l *domain.Listing) error {
	return tx.QueryRow(ctx,
		`INSERT INTO listings (id, asset_id, seller, price, expiry_height, active)
		 VALUES ($1, $2, $3, $4, $5, true)
		 RETURNING created_at`,
		l.ID, l.AssetID, l.Seller, l.Price, l.ExpiryHeight,
	).Scan(&l.CreatedAt)
}

// GetByID returns a listing or pgx.ErrNoRows.
func (r *ListingRepository) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	return scanListing(r.db.QueryRow(ctx,
		`SELECT `+listingColumns+` FROM listings WHERE id = $1`, id))
}

// GetTx returns a listing with its row locked for the rest of the transaction.
func (r *ListingRepository) GetTx(ctx context.Context, tx pgx.Tx, id int64) (*domain.Listing, error) {
	return scanListing(tx.QueryRow(ctx,
		`SELECT `+listingColumns+` FROM listings WHERE id = $1 FOR UPDATE`, id))
}

// HasActiveForAssetTx reports whether the asset already has an active listing.
// Expired-but-active rows still count; expiry is only decided when a listing
// is touched by a purchase.
func (r *ListingRepository) HasActiveForAssetTx(ctx context.Context, tx pgx.Tx, assetID int64) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM listings WHERE asset_id = $1 AND active)`, assetID,
	).Scan(&exists)
	return exists, err
}

// DeactivateTx marks a listing consumed, cancelled or expired.
func (r *ListingRepository) DeactivateTx(ctx context.Context, tx pgx.Tx, id int64) error {
	_, err := tx.Exec(ctx, `UPDATE listings SET active = false WHERE id = $1`, id)
	return err
}

// DeactivateActiveForAssetTx clears any active listing on an asset. Called
// when ownership changes outside the marketplace so a stale offer cannot
// sell an asset its seller no longer owns.
func (r *ListingRepository) DeactivateActiveForAssetTx(ctx context.Context, tx pgx.Tx, assetID int64) error {
	_, err := tx.Exec(ctx,
		`UPDATE listings SET active = false WHERE asset_id = $1 AND active`, assetID)
	return err
}

// ListActive returns active listings, newest first.
func (r *ListingRepository) ListActive(ctx context.Context, limit int) ([]*domain.Listing, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+listingColumns+` FROM listings WHERE active ORDER BY id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Listing
	for rows.Next() {
		var l domain.Listing
		if err := rows.Scan(&l.ID, &l.AssetID, &l.Seller, &l.Price,
			&l.ExpiryHeight, &l.Active, &l.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &l)
	}
	return res, rows.Err()
}

func scanListing(row pgx.Row) (*domain.Listing, error) {
	var l domain.Listing
	err := row.Scan(&l.ID, &l.AssetID, &l.Seller, &l.Price,
		&l.ExpiryHeight, &l.Active, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
