package service

import (
	"context"
	"errors"

	"asset_bridge/internal/domain"
	"asset_bridge/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrInvalidAmount = errors.New("invalid amount")

// BalanceService is the monetary-transfer primitive: debits and credits on
// account balances, each paired with a ledger entry. The Tx variants run
// inside a caller-owned transaction so a multi-leg payment either fully
// commits or leaves every balance untouched.
type BalanceService struct {
	db         *pgxpool.Pool
	ledgerRepo *repository.LedgerRepository
}

// NewBalanceService creates a new balance service
func NewBalanceService(db *pgxpool.Pool) *BalanceService {
	return &BalanceService{
		db:         db,
		ledgerRepo: repository.NewLedgerRepository(db),
	}
}

// GetBalance returns an account's current balance. A missing account reads
// as zero.
func (s *BalanceService) GetBalance(ctx context.Context, address string) (int64, error) {
	var balance int64
	err := s.db.QueryRow(ctx, `SELECT balance FROM accounts WHERE address = $1`, address).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return balance, nil
}

// DebitTx deducts amount from an address inside an open transaction. A
// missing account or a balance below amount fails with ErrInsufficientFunds.
func (s *BalanceService) DebitTx(ctx context.Context, tx pgx.Tx, address string, amount int64, kind string, meta map[string]interface{}) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	// Lock and check balance
	var balance int64
	err := tx.QueryRow(ctx, `SELECT balance FROM accounts WHERE address = $1 FOR UPDATE`, address).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrInsufficientFunds
		}
		return err
	}
	if balance < amount {
		return domain.ErrInsufficientFunds
	}

	if _, err := tx.Exec(ctx, `UPDATE accounts SET balance = balance - $1 WHERE address = $2`, amount, address); err != nil {
		return err
	}

	return s.ledgerRepo.CreateWithTx(ctx, tx, &domain.LedgerEntry{
		Address: address,
		Kind:    kind,
		Amount:  -amount,
		Meta:    meta,
	})
}

// CreditTx adds amount to an address inside an open transaction, creating the
// account row if the address was never seen before.
func (s *BalanceService) CreditTx(ctx context.Context, tx pgx.Tx, address string, amount int64, kind string, meta map[string]interface{}) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	_, err := tx.Exec(ctx,
		`INSERT INTO accounts (address, api_key, balance) VALUES ($1, '', $2)
		 ON CONFLICT (address) DO UPDATE SET balance = accounts.balance + $2`,
		address, amount,
	)
	if err != nil {
		return err
	}

	return s.ledgerRepo.CreateWithTx(ctx, tx, &domain.LedgerEntry{
		Address: address,
		Kind:    kind,
		Amount:  amount,
		Meta:    meta,
	})
}

// Credit adds amount to an address in its own transaction (seeding, tools).
func (s *BalanceService) Credit(ctx context.Context, address string, amount int64, kind string, meta map[string]interface{}) (int64, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := s.CreditTx(ctx, tx, address, amount, kind, meta); err != nil {
		return 0, err
	}

	var newBalance int64
	if err := tx.QueryRow(ctx, `SELECT balance FROM accounts WHERE address = $1`, address).Scan(&newBalance); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return newBalance, nil
}
