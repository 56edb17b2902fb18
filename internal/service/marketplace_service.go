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

// MarketplaceService handles listings and the atomic ownership-for-payment
// exchange.
type MarketplaceService struct {
	db          *pgxpool.Pool
	stateRepo   *repository.StateRepository
	gameRepo    *repository.GameRepository
	assetRepo   *repository.AssetRepository
	listingRepo *repository.ListingRepository
	balance     *BalanceService
	treasury    string
}

// NewMarketplaceService creates a new marketplace service. The treasury
// address collects the marketplace fee cut of every sale.
func NewMarketplaceService(db *pgxpool.Pool, treasury string) *MarketplaceService {
	return &MarketplaceService{
		db:          db,
		stateRepo:   repository.NewStateRepository(db),
		gameRepo:    repository.NewGameRepository(db),
		assetRepo:   repository.NewAssetRepository(db),
		listingRepo: repository.NewListingRepository(db),
		balance:     NewBalanceService(db),
		treasury:    treasury,
	}
}

// splitSalePrice divides a sale price into the marketplace fee, the game
// issuer's revenue share and the seller proceeds. Fee and share are floored
// by integer division, so the rounding remainder accrues to the seller. The
// share is capped at what remains after the fee so the three legs never
// exceed the price.
func splitSalePrice(price, revenueShareBps int64) (fee, revenueShare, proceeds int64) {
	fee = price * domain.MarketplaceFeeBps / 10000
	revenueShare = price * revenueShareBps / 10000
	if revenueShare > price-fee {
		revenueShare = price - fee
	}
	proceeds = price - fee - revenueShare
	return fee, revenueShare, proceeds
}

// List puts an asset up for sale and returns the listing id. Only the
// current owner may list, and only once per asset at a time.
func (s *MarketplaceService) List(ctx context.Context, caller string, assetID, price, durationBlocks int64) (int64, error) {
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

	listed, err := s.listingRepo.HasActiveForAssetTx(ctx, tx, assetID)
	if err != nil {
		return 0, err
	}
	if listed {
		return 0, domain.ErrAlreadyListed
	}

	if price <= 0 {
		return 0, domain.ErrInvalidPrice
	}
	if durationBlocks <= 0 {
		return 0, domain.ErrInvalidParameter
	}

	height, err := chain.HeightTx(ctx, tx)
	if err != nil {
		return 0, err
	}
	id, err := s.stateRepo.NextListingIDTx(ctx, tx)
	if err != nil {
		return 0, err
	}

	listing := &domain.Listing{
		ID:           id,
		AssetID:      assetID,
		Seller:       caller,
		Price:        price,
		ExpiryHeight: height + durationBlocks,
		Active:       true,
	}
	if err := s.listingRepo.CreateWithTx(ctx, tx, listing); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

// Cancel deactivates an active listing. Only the seller may cancel.
func (s *MarketplaceService) Cancel(ctx context.Context, caller string, listingID int64) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := s.stateRepo.LockTx(ctx, tx); err != nil {
		return err
	}

	listing, err := s.listingRepo.GetTx(ctx, tx, listingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrListingNotFound
		}
		return err
	}
	if !listing.Active {
		return domain.ErrListingInactive
	}
	if caller != listing.Seller {
		return domain.ErrNotAuthorized
	}

	if err := s.listingRepo.DeactivateTx(ctx, tx, listingID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// SaleResult describes a completed purchase.
type SaleResult struct {
	AssetID      int64 `json:"asset_id"`
	Price        int64 `json:"price"`
	Fee          int64 `json:"fee"`
	RevenueShare int64 `json:"revenue_share"`
	Proceeds     int64 `json:"proceeds"`
}

// Buy executes the atomic ownership-for-payment exchange: the buyer pays the
// listed price, which is split into marketplace fee, issuer revenue share and
// seller proceeds; ownership, listing state and counters update in the same
// transaction. If any leg fails nothing persists. The one exception is an
// expired listing: its lazy deactivation commits while the call still fails
// with ErrListingExpired.
func (s *MarketplaceService) Buy(ctx context.Context, buyer string, listingID int64) (*SaleResult, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := s.stateRepo.LockTx(ctx, tx); err != nil {
		return nil, err
	}

	listing, err := s.listingRepo.GetTx(ctx, tx, listingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}
	if !listing.Active {
		return nil, domain.ErrListingInactive
	}

	height, err := chain.HeightTx(ctx, tx)
	if err != nil {
		return nil, err
	}
	if listing.Expired(height) {
		if err := s.listingRepo.DeactivateTx(ctx, tx, listingID); err != nil {
			return nil, err
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}
		return nil, domain.ErrListingExpired
	}

	if buyer == listing.Seller {
		return nil, domain.ErrNotAuthorized
	}

	asset, err := s.assetRepo.GetTx(ctx, tx, listing.AssetID)
	if err != nil {
		return nil, err
	}
	game, err := s.gameRepo.GetTx(ctx, tx, asset.GameID)
	if err != nil {
		return nil, err
	}

	fee, revenueShare, proceeds := splitSalePrice(listing.Price, game.RevenueShareBps)
	meta := map[string]interface{}{
		"listing_id": listingID,
		"asset_id":   asset.ID,
		"price":      listing.Price,
	}

	if err := s.balance.DebitTx(ctx, tx, buyer, listing.Price, domain.LedgerSalePayment, meta); err != nil {
		return nil, err
	}
	if fee > 0 {
		if err := s.balance.CreditTx(ctx, tx, s.treasury, fee, domain.LedgerMarketplaceFee, meta); err != nil {
			return nil, err
		}
	}
	if revenueShare > 0 {
		if err := s.balance.CreditTx(ctx, tx, game.Issuer, revenueShare, domain.LedgerRevenueShare, meta); err != nil {
			return nil, err
		}
	}
	if proceeds > 0 {
		if err := s.balance.CreditTx(ctx, tx, listing.Seller, proceeds, domain.LedgerSaleProceeds, meta); err != nil {
			return nil, err
		}
	}

	if err := s.assetRepo.UpdateOwnerTx(ctx, tx, asset.ID, buyer); err != nil {
		return nil, err
	}
	if err := s.listingRepo.DeactivateTx(ctx, tx, listingID); err != nil {
		return nil, err
	}
	if err := s.assetRepo.IncrSalesTx(ctx, tx, asset.ID); err != nil {
		return nil, err
	}
	if err := s.stateRepo.AddVolumeTx(ctx, tx, listing.Price); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &SaleResult{
		AssetID:      asset.ID,
		Price:        listing.Price,
		Fee:          fee,
		RevenueShare: revenueShare,
		Proceeds:     proceeds,
	}, nil
}

// GetListing returns a listing or nil if it does not exist.
func (s *MarketplaceService) GetListing(ctx context.Context, id int64) (*domain.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return listing, nil
}

// ListActive returns currently active listings.
func (s *MarketplaceService) ListActive(ctx context.Context, limit int) ([]*domain.Listing, error) {
	return s.listingRepo.ListActive(ctx, limit)
}
