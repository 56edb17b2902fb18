package repository

import (
	"context"
	"encoding/json"
	"time"

	"asset_bridge/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LedgerRepository struct {
	db *pgxpool.Pool
}

func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// CreateWithTx records a balance movement using an existing database
// transaction so the entry commits atomically with the movement itself.
func (r *LedgerRepository) CreateWithTx(ctx context.Context, dbTx pgx.Tx, e *domain.LedgerEntry) error {
	metaJSON, err := json.Marshal(e.Meta)
	if err != nil {
		metaJSON = []byte("{}")
	}

	return dbTx.QueryRow(ctx,
		`INSERT INTO ledger_entries (address, kind, amount, meta)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		e.Address, e.Kind, e.Amount, metaJSON,
	).Scan(&e.ID, &e.CreatedAt)
}

// GetByAddress returns recent ledger entries for an address.
func (r *LedgerRepository) GetByAddress(ctx context.Context, address string, limit int) ([]*domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, address, kind, amount, meta, created_at
		 FROM ledger_entries
		 WHERE address = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		address, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.LedgerEntry
	for rows.Next() {
		var (
			e         domain.LedgerEntry
			metaJSON  []byte
			createdAt time.Time
		)
		if err := rows.Scan(&e.ID, &e.Address, &e.Kind, &e.Amount, &metaJSON, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt = createdAt
		if len(metaJSON) > 0 {
			_ = json.Unmarshal(metaJSON, &e.Meta)
		}
		result = append(result, &e)
	}
	return result, rows.Err()
}
