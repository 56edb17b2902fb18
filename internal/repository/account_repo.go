package repository

import (
	"context"

	"asset_bridge/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AccountRepository struct {
	db *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts a new account with a zero balance.
func (r *AccountRepository) Create(ctx context.Context, a *domain.Account) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO accounts (address, api_key, balance)
		 VALUES ($1, $2, 0)
		 RETURNING created_at`,
		a.Address, a.APIKey,
	).Scan(&a.CreatedAt)
}

// GetByAddress returns an account or pgx.ErrNoRows.
func (r *AccountRepository) GetByAddress(ctx context.Context, address string) (*domain.Account, error) {
	var a domain.Account
	err := r.db.QueryRow(ctx,
		`SELECT address, api_key, balance, created_at FROM accounts WHERE address = $1`, address,
	).Scan(&a.Address, &a.APIKey, &a.Balance, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
