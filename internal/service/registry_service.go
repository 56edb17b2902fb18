package service

import (
	"context"
	"errors"

	"asset_bridge/internal/domain"
	"asset_bridge/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegistryService handles game registration.
type RegistryService struct {
	db        *pgxpool.Pool
	stateRepo *repository.StateRepository
	gameRepo  *repository.GameRepository
}

// NewRegistryService creates a new registry service
func NewRegistryService(db *pgxpool.Pool) *RegistryService {
	return &RegistryService{
		db:        db,
		stateRepo: repository.NewStateRepository(db),
		gameRepo:  repository.NewGameRepository(db),
	}
}

// RegisterGame registers a new game with the caller as issuer and returns
// the assigned game id. Any caller may register.
func (s *RegistryService) RegisterGame(ctx context.Context, caller, name, description, website string, revenueShareBps int64) (int64, error) {
	if err := domain.ValidateGameParams(name, description, website, revenueShareBps); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	id, err := s.stateRepo.NextGameIDTx(ctx, tx)
	if err != nil {
		return 0, err
	}

	game := &domain.Game{
		ID:              id,
		Name:            name,
		Description:     description,
		RevenueShareBps: revenueShareBps,
		Website:         website,
		Issuer:          caller,
	}
	if err := s.gameRepo.CreateWithTx(ctx, tx, game); err != nil {
		return 0, err
	}

	if err := s.stateRepo.IncrTotalGamesTx(ctx, tx); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

// GetGame returns a game or nil if it does not exist.
func (s *RegistryService) GetGame(ctx context.Context, id int64) (*domain.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return game, nil
}
