package service

import (
	"context"
	"errors"

	"asset_bridge/internal/chain"
	"asset_bridge/internal/domain"
	"asset_bridge/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AssetService handles asset minting, transfers and game rebinding. Every
// mutating method runs as one transaction serialized on the bridge state row:
// the first failing precondition aborts with zero state change.
type AssetService struct {
	db          *pgxpool.Pool
	stateRepo   *repository.StateRepository
	gameRepo    *repository.GameRepository
	assetRepo   *repository.AssetRepository
	listingRepo *repository.ListingRepository
}

// NewAssetService creates a new asset service
func NewAssetService(db *pgxpool.Pool) *AssetService {
	return &AssetService{
		db:          db,
		stateRepo:   repository.NewStateRepository(db),
		gameRepo:    repository.NewGameRepository(db),
		assetRepo:   repository.NewAssetRepository(db),
		listingRepo: repository.NewListingRepository(db),
	}
}

// MintParams carries the mint-gaming-asset inputs.
type MintParams struct {
	Recipient   string
	GameID      int64
	AssetType   domain.AssetType
	Name        string
	Description string
	Rarity      domain.Rarity
	Power       int64
	MetadataURI string
}

// Mint creates a new asset owned by the recipient and bound to the game.
// Only the game's issuer may mint; the issuer check runs before parameter
// validation so an unauthorized caller always sees ErrNotAuthorized.
func (s *AssetService) Mint(ctx context.Context, caller string, p MintParams) (int64, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := s.stateRepo.LockTx(ctx, tx); err != nil {
		return 0, err
	}

	game, err := s.gameRepo.GetTx(ctx, tx, p.GameID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrGameNotFound
		}
		return 0, err
	}
	if caller != game.Issuer {
		return 0, domain.ErrNotAuthorized
	}

	if err := domain.ValidateMintParams(p.AssetType, p.Rarity, p.Power); err != nil {
		return 0, err
	}
	if !chain.ValidAddress(p.Recipient) {
		return 0, domain.ErrInvalidParameter
	}

	id, err := s.stateRepo.NextAssetIDTx(ctx, tx)
	if err != nil {
		return 0, err
	}
	height, err := chain.HeightTx(ctx, tx)
	if err != nil {
		return 0, err
	}

	asset := &domain.Asset{
		ID:              id,
		GameID:          p.GameID,
		AssetType:       p.AssetType,
		Name:            p.Name,
		Description:     p.Description,
		Rarity:          p.Rarity,
		Power:           p.Power,
		MetadataURI:     p.MetadataURI,
		Owner:           chain.NormalizeAddress(p.Recipient),
		CreatedAtHeight: height,
	}
	if err := s.assetRepo.CreateWithTx(ctx, tx, asset); err != nil {
		return 0, err
	}

	if err := s.gameRepo.AdjustAssetCountTx(ctx, tx, p.GameID, 1); err != nil {
		return 0, err
	}
	if err := s.stateRepo.IncrTotalAssetsTx(ctx, tx); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

// Transfer moves asset ownership to the recipient. Only the current owner
// may transfer, and not to themselves. Any active listing on the asset is
// deactivated in the same transaction: the seller no longer owns what the
// listing offers.
func (s *AssetService) Transfer(ctx context.Context, caller string, assetID int64, recipient string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := s.stateRepo.LockTx(ctx, tx); err != nil {
		return 0, err
	}

	asset, err := s.assetRepo.GetTx(ctx, tx, assetID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrAssetNotFound
		}
		return 0, err
	}
	if caller != asset.Owner {
		return 0, domain.ErrNotAuthorized
	}

	if !chain.ValidAddress(recipient) {
		return 0, domain.ErrInvalidParameter
	}
	recipient = chain.NormalizeAddress(recipient)
	if recipient == asset.Owner {
		return 0, domain.ErrInvalidParameter
	}

	if err := s.listingRepo.DeactivateActiveForAssetTx(ctx, tx, assetID); err != nil {
		return 0, err
	}
	if err := s.assetRepo.UpdateOwnerTx(ctx, tx, assetID, recipient); err != nil {
		return 0, err
	}
	if err := s.assetRepo.IncrTransfersTx(ctx, tx, assetID); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return assetID, nil
}

// CrossGameTransfer rebinds an asset to another game, moving it between the
// games' asset counts. Rebinding to the asset's current game is a permitted
// no-op that still counts as a transfer event.
func (s *AssetService) CrossGameTransfer(ctx context.Context, caller string, assetID, targetGameID int64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := s.stateRepo.LockTx(ctx, tx); err != nil {
		return 0, err
	}

	asset, err := s.assetRepo.GetTx(ctx, tx, assetID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrAssetNotFound
		}
		return 0, err
	}
	if caller != asset.Owner {
		return 0, domain.ErrNotAuthorized
	}

	if _, err := s.gameRepo.GetTx(ctx, tx, targetGameID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrGameNotFound
		}
		return 0, err
	}

	if err := s.gameRepo.AdjustAssetCountTx(ctx, tx, asset.GameID, -1); err != nil {
		return 0, err
	}
	if err := s.assetRepo.UpdateGameTx(ctx, tx, assetID, targetGameID); err != nil {
		return 0, err
	}
	if err := s.gameRepo.AdjustAssetCountTx(ctx, tx, targetGameID, 1); err != nil {
		return 0, err
	}
	if err := s.assetRepo.IncrTransfersTx(ctx, tx, assetID); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return assetID, nil
}

// GetAsset returns asset details or nil if the asset does not exist.
func (s *AssetService) GetAsset(ctx context.Context, id int64) (*domain.Asset, error) {
	asset, err := s.assetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return asset, nil
}

// ListByGame returns the assets currently bound to a game.
func (s *AssetService) ListByGame(ctx context.Context, gameID int64, limit int) ([]*domain.Asset, error) {
	return s.assetRepo.ListByGame(ctx, gameID, limit)
}
