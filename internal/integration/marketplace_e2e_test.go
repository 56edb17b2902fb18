package integration

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"asset_bridge/internal/chain"
	"asset_bridge/internal/domain"
	"asset_bridge/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		if filepath.Ext(f.Name()) != ".sql" {
			continue
		}
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func connectDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)
	applyMigrations(t, db)
	return db
}

// randomAddress returns a fresh address so test runs never collide on
// account rows.
func randomAddress(t *testing.T) string {
	t.Helper()
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		t.Fatalf("rand: %v", err)
	}
	return "0x" + hex.EncodeToString(b)
}

func TestMarketplaceLifecycle(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	issuer := randomAddress(t)
	buyer := randomAddress(t)
	treasury := randomAddress(t)

	registry := service.NewRegistryService(db)
	assets := service.NewAssetService(db)
	market := service.NewMarketplaceService(db, treasury)
	balances := service.NewBalanceService(db)

	gameID, err := registry.RegisterGame(ctx, issuer, "Realm", "an rpg", "https://realm.example", 500)
	if err != nil {
		t.Fatalf("register game: %v", err)
	}

	assetID, err := assets.Mint(ctx, issuer, service.MintParams{
		Recipient: issuer,
		GameID:    gameID,
		AssetType: domain.TypeWeapon,
		Name:      "Sword",
		Rarity:    domain.RarityLegendary,
		Power:     800,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	listingID, err := market.List(ctx, issuer, assetID, 10000, 100)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if _, err := balances.Credit(ctx, buyer, 50000, domain.LedgerSeed, nil); err != nil {
		t.Fatalf("seed buyer: %v", err)
	}

	sale, err := market.Buy(ctx, buyer, listingID)
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	if sale.Fee != 250 || sale.RevenueShare != 500 || sale.Proceeds != 9250 {
		t.Errorf("sale split = (%d, %d, %d), want (250, 500, 9250)",
			sale.Fee, sale.RevenueShare, sale.Proceeds)
	}

	a, err := assets.GetAsset(ctx, assetID)
	if err != nil {
		t.Fatalf("get asset: %v", err)
	}
	if a.Owner != buyer {
		t.Errorf("asset owner = %s, want buyer %s", a.Owner, buyer)
	}

	bal, err := balances.GetBalance(ctx, buyer)
	if err != nil {
		t.Fatalf("buyer balance: %v", err)
	}
	if bal != 40000 {
		t.Errorf("buyer balance = %d, want 40000", bal)
	}
	// issuer is also the seller here: proceeds + revenue share
	bal, err = balances.GetBalance(ctx, issuer)
	if err != nil {
		t.Fatalf("issuer balance: %v", err)
	}
	if bal != 9750 {
		t.Errorf("issuer balance = %d, want 9750", bal)
	}
	bal, err = balances.GetBalance(ctx, treasury)
	if err != nil {
		t.Fatalf("treasury balance: %v", err)
	}
	if bal != 250 {
		t.Errorf("treasury balance = %d, want 250", bal)
	}

	l, err := market.GetListing(ctx, listingID)
	if err != nil {
		t.Fatalf("get listing: %v", err)
	}
	if l.Active {
		t.Error("listing should be inactive after the sale")
	}
}

func TestMintAuthorization(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	issuer := randomAddress(t)
	stranger := randomAddress(t)

	registry := service.NewRegistryService(db)
	assets := service.NewAssetService(db)

	gameID, err := registry.RegisterGame(ctx, issuer, "Realm", "an rpg", "https://realm.example", 0)
	if err != nil {
		t.Fatalf("register game: %v", err)
	}

	// non-issuer fails with NotAuthorized even when parameters are invalid
	_, err = assets.Mint(ctx, stranger, service.MintParams{
		Recipient: stranger,
		GameID:    gameID,
		AssetType: 99,
		Name:      "x",
		Rarity:    0,
	})
	if !errors.Is(err, domain.ErrNotAuthorized) {
		t.Errorf("non-issuer mint: got %v, want ErrNotAuthorized", err)
	}

	_, err = assets.Mint(ctx, issuer, service.MintParams{
		Recipient: issuer,
		GameID:    999999999,
		AssetType: domain.TypeArmor,
		Name:      "x",
		Rarity:    domain.RarityCommon,
	})
	if !errors.Is(err, domain.ErrGameNotFound) {
		t.Errorf("mint into missing game: got %v, want ErrGameNotFound", err)
	}

	_, err = assets.Mint(ctx, issuer, service.MintParams{
		Recipient: issuer,
		GameID:    gameID,
		AssetType: 99,
		Name:      "x",
		Rarity:    0,
	})
	if !errors.Is(err, domain.ErrInvalidRarity) {
		t.Errorf("issuer mint with bad rarity and type: got %v, want ErrInvalidRarity", err)
	}
}

func TestTransferAndRebind(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	issuer := randomAddress(t)
	other := randomAddress(t)

	registry := service.NewRegistryService(db)
	assets := service.NewAssetService(db)

	gameA, err := registry.RegisterGame(ctx, issuer, "A", "game a", "https://a.example", 0)
	if err != nil {
		t.Fatalf("register game a: %v", err)
	}
	gameB, err := registry.RegisterGame(ctx, issuer, "B", "game b", "https://b.example", 0)
	if err != nil {
		t.Fatalf("register game b: %v", err)
	}

	assetID, err := assets.Mint(ctx, issuer, service.MintParams{
		Recipient: issuer,
		GameID:    gameA,
		AssetType: domain.TypeCharacter,
		Name:      "Hero",
		Rarity:    domain.RarityEpic,
		Power:     100,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := assets.Transfer(ctx, other, assetID, other); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Errorf("transfer by non-owner: got %v, want ErrNotAuthorized", err)
	}
	if _, err := assets.Transfer(ctx, issuer, assetID, issuer); !errors.Is(err, domain.ErrInvalidParameter) {
		t.Errorf("transfer to self: got %v, want ErrInvalidParameter", err)
	}
	if _, err := assets.Transfer(ctx, issuer, assetID, other); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	if _, err := assets.CrossGameTransfer(ctx, issuer, assetID, gameB); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Errorf("rebind by previous owner: got %v, want ErrNotAuthorized", err)
	}
	if _, err := assets.CrossGameTransfer(ctx, other, assetID, 999999999); !errors.Is(err, domain.ErrGameNotFound) {
		t.Errorf("rebind to missing game: got %v, want ErrGameNotFound", err)
	}
	// the failed rebind left the binding unchanged
	a0, err := assets.GetAsset(ctx, assetID)
	if err != nil {
		t.Fatalf("get asset: %v", err)
	}
	if a0.GameID != gameA {
		t.Errorf("asset game after failed rebind = %d, want %d", a0.GameID, gameA)
	}
	if _, err := assets.CrossGameTransfer(ctx, other, assetID, gameB); err != nil {
		t.Fatalf("rebind: %v", err)
	}

	a, err := assets.GetAsset(ctx, assetID)
	if err != nil {
		t.Fatalf("get asset: %v", err)
	}
	if a.GameID != gameB {
		t.Errorf("asset game = %d, want %d", a.GameID, gameB)
	}

	ga, err := registry.GetGame(ctx, gameA)
	if err != nil {
		t.Fatalf("get game a: %v", err)
	}
	gb, err := registry.GetGame(ctx, gameB)
	if err != nil {
		t.Fatalf("get game b: %v", err)
	}
	if ga.AssetCount != 0 || gb.AssetCount != 1 {
		t.Errorf("asset counts = (%d, %d), want (0, 1)", ga.AssetCount, gb.AssetCount)
	}
}

func TestListingRules(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	issuer := randomAddress(t)
	buyer := randomAddress(t)
	treasury := randomAddress(t)

	registry := service.NewRegistryService(db)
	assets := service.NewAssetService(db)
	market := service.NewMarketplaceService(db, treasury)
	balances := service.NewBalanceService(db)

	gameID, err := registry.RegisterGame(ctx, issuer, "Realm", "an rpg", "https://realm.example", 0)
	if err != nil {
		t.Fatalf("register game: %v", err)
	}
	assetID, err := assets.Mint(ctx, issuer, service.MintParams{
		Recipient: issuer,
		GameID:    gameID,
		AssetType: domain.TypeCollectible,
		Name:      "Card",
		Rarity:    domain.RarityRare,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := market.List(ctx, buyer, assetID, 100, 10); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Errorf("list by non-owner: got %v, want ErrNotAuthorized", err)
	}
	if _, err := market.List(ctx, issuer, assetID, 0, 10); !errors.Is(err, domain.ErrInvalidPrice) {
		t.Errorf("list at zero price: got %v, want ErrInvalidPrice", err)
	}

	listingID, err := market.List(ctx, issuer, assetID, 100, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := market.List(ctx, issuer, assetID, 200, 10); !errors.Is(err, domain.ErrAlreadyListed) {
		t.Errorf("double list: got %v, want ErrAlreadyListed", err)
	}

	if _, err := market.Buy(ctx, issuer, listingID); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Errorf("buy own listing: got %v, want ErrNotAuthorized", err)
	}
	if _, err := market.Buy(ctx, buyer, listingID); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Errorf("buy without funds: got %v, want ErrInsufficientFunds", err)
	}
	// the failed purchase changed nothing
	a, err := assets.GetAsset(ctx, assetID)
	if err != nil {
		t.Fatalf("get asset: %v", err)
	}
	if a.Owner != issuer {
		t.Errorf("asset owner after failed buy = %s, want issuer", a.Owner)
	}

	if err := market.Cancel(ctx, buyer, listingID); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Errorf("cancel by non-seller: got %v, want ErrNotAuthorized", err)
	}
	if err := market.Cancel(ctx, issuer, listingID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := market.Cancel(ctx, issuer, listingID); !errors.Is(err, domain.ErrListingInactive) {
		t.Errorf("cancel twice: got %v, want ErrListingInactive", err)
	}

	if _, err := balances.Credit(ctx, buyer, 1000, domain.LedgerSeed, nil); err != nil {
		t.Fatalf("seed buyer: %v", err)
	}
	if _, err := market.Buy(ctx, buyer, listingID); !errors.Is(err, domain.ErrListingInactive) {
		t.Errorf("buy cancelled listing: got %v, want ErrListingInactive", err)
	}

	if _, err := market.Buy(ctx, buyer, 999999999); !errors.Is(err, domain.ErrListingNotFound) {
		t.Errorf("buy missing listing: got %v, want ErrListingNotFound", err)
	}
}

func TestListingExpiry(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	issuer := randomAddress(t)
	buyer := randomAddress(t)
	treasury := randomAddress(t)

	registry := service.NewRegistryService(db)
	assets := service.NewAssetService(db)
	market := service.NewMarketplaceService(db, treasury)
	balances := service.NewBalanceService(db)
	clock := chain.NewClock(db, time.Hour)

	gameID, err := registry.RegisterGame(ctx, issuer, "Realm", "an rpg", "https://realm.example", 0)
	if err != nil {
		t.Fatalf("register game: %v", err)
	}
	assetID, err := assets.Mint(ctx, issuer, service.MintParams{
		Recipient: issuer,
		GameID:    gameID,
		AssetType: domain.TypeConsumable,
		Name:      "Potion",
		Rarity:    domain.RarityCommon,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	listingID, err := market.List(ctx, issuer, assetID, 100, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if _, err := clock.Advance(ctx, 2); err != nil {
		t.Fatalf("advance clock: %v", err)
	}

	if _, err := balances.Credit(ctx, buyer, 1000, domain.LedgerSeed, nil); err != nil {
		t.Fatalf("seed buyer: %v", err)
	}
	if _, err := market.Buy(ctx, buyer, listingID); !errors.Is(err, domain.ErrListingExpired) {
		t.Errorf("buy expired listing: got %v, want ErrListingExpired", err)
	}

	// lazy expiry deactivates the listing even though the call failed
	l, err := market.GetListing(ctx, listingID)
	if err != nil {
		t.Fatalf("get listing: %v", err)
	}
	if l.Active {
		t.Error("expired listing should have been deactivated")
	}
	// the asset is free to list again
	if _, err := market.List(ctx, issuer, assetID, 100, 10); err != nil {
		t.Fatalf("relist after expiry: %v", err)
	}
}

func TestAssetStatsCounters(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	issuer := randomAddress(t)
	other := randomAddress(t)

	registry := service.NewRegistryService(db)
	assets := service.NewAssetService(db)
	stats := service.NewStatsService(db, nil)

	gameA, err := registry.RegisterGame(ctx, issuer, "A", "game a", "https://a.example", 0)
	if err != nil {
		t.Fatalf("register game a: %v", err)
	}
	gameB, err := registry.RegisterGame(ctx, issuer, "B", "game b", "https://b.example", 0)
	if err != nil {
		t.Fatalf("register game b: %v", err)
	}

	assetID, err := assets.Mint(ctx, issuer, service.MintParams{
		Recipient: issuer,
		GameID:    gameA,
		AssetType: domain.TypeArmor,
		Name:      "Shield",
		Rarity:    domain.RarityUncommon,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	s, err := stats.GetAssetStats(ctx, assetID)
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if s == nil || s.TotalTransfers != 0 || s.TotalSales != 0 {
		t.Fatalf("stats at mint = %+v, want zeroed row", s)
	}

	if _, err := assets.Transfer(ctx, issuer, assetID, other); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	s, err = stats.GetAssetStats(ctx, assetID)
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if s.TotalTransfers != 1 {
		t.Errorf("transfers after one transfer = %d, want 1", s.TotalTransfers)
	}

	// a rebind counts as a transfer event
	if _, err := assets.CrossGameTransfer(ctx, other, assetID, gameB); err != nil {
		t.Fatalf("rebind: %v", err)
	}
	s, err = stats.GetAssetStats(ctx, assetID)
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if s.TotalTransfers != 2 {
		t.Errorf("transfers after rebind = %d, want 2", s.TotalTransfers)
	}
	if s.TotalSales != 0 {
		t.Errorf("sales = %d, want 0", s.TotalSales)
	}

	if missing, err := stats.GetAssetStats(ctx, 999999999); err != nil || missing != nil {
		t.Errorf("stats for never-minted asset = (%+v, %v), want (nil, nil)", missing, err)
	}
}

// Global counters are asserted as before/after deltas: the database is
// shared across tests, only this test's own contributions are known.
func TestMarketplaceStatsCounters(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	issuer := randomAddress(t)
	buyer := randomAddress(t)
	treasury := randomAddress(t)

	registry := service.NewRegistryService(db)
	assets := service.NewAssetService(db)
	market := service.NewMarketplaceService(db, treasury)
	balances := service.NewBalanceService(db)
	stats := service.NewStatsService(db, nil)

	before, err := stats.GetMarketplaceStats(ctx)
	if err != nil {
		t.Fatalf("stats before: %v", err)
	}
	if before.MarketplaceFeeBps != domain.MarketplaceFeeBps {
		t.Errorf("fee bps = %d, want %d", before.MarketplaceFeeBps, domain.MarketplaceFeeBps)
	}

	gameID, err := registry.RegisterGame(ctx, issuer, "Realm", "an rpg", "https://realm.example", 0)
	if err != nil {
		t.Fatalf("register game: %v", err)
	}

	// one registration, zero mints: only the game counter moved
	mid, err := stats.GetMarketplaceStats(ctx)
	if err != nil {
		t.Fatalf("stats after registration: %v", err)
	}
	if mid.TotalGames != before.TotalGames+1 {
		t.Errorf("total games = %d, want %d", mid.TotalGames, before.TotalGames+1)
	}
	if mid.TotalAssets != before.TotalAssets {
		t.Errorf("total assets moved on registration: %d, want %d", mid.TotalAssets, before.TotalAssets)
	}
	if mid.TotalVolume != before.TotalVolume {
		t.Errorf("total volume moved on registration: %d, want %d", mid.TotalVolume, before.TotalVolume)
	}

	assetID, err := assets.Mint(ctx, issuer, service.MintParams{
		Recipient: issuer,
		GameID:    gameID,
		AssetType: domain.TypeCollectible,
		Name:      "Relic",
		Rarity:    domain.RarityMythic,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	const price = int64(1000000)
	listingID, err := market.List(ctx, issuer, assetID, price, 100)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := balances.Credit(ctx, buyer, price, domain.LedgerSeed, nil); err != nil {
		t.Fatalf("seed buyer: %v", err)
	}
	if _, err := market.Buy(ctx, buyer, listingID); err != nil {
		t.Fatalf("buy: %v", err)
	}

	after, err := stats.GetMarketplaceStats(ctx)
	if err != nil {
		t.Fatalf("stats after sale: %v", err)
	}
	if after.TotalAssets != before.TotalAssets+1 {
		t.Errorf("total assets = %d, want %d", after.TotalAssets, before.TotalAssets+1)
	}
	if after.TotalVolume != before.TotalVolume+price {
		t.Errorf("total volume = %d, want %d", after.TotalVolume, before.TotalVolume+price)
	}
}

func TestTransferDeactivatesListing(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	issuer := randomAddress(t)
	other := randomAddress(t)
	treasury := randomAddress(t)

	registry := service.NewRegistryService(db)
	assets := service.NewAssetService(db)
	market := service.NewMarketplaceService(db, treasury)

	gameID, err := registry.RegisterGame(ctx, issuer, "Realm", "an rpg", "https://realm.example", 0)
	if err != nil {
		t.Fatalf("register game: %v", err)
	}
	assetID, err := assets.Mint(ctx, issuer, service.MintParams{
		Recipient: issuer,
		GameID:    gameID,
		AssetType: domain.TypeWeapon,
		Name:      "Axe",
		Rarity:    domain.RarityRare,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	listingID, err := market.List(ctx, issuer, assetID, 100, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if _, err := assets.Transfer(ctx, issuer, assetID, other); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	l, err := market.GetListing(ctx, listingID)
	if err != nil {
		t.Fatalf("get listing: %v", err)
	}
	if l.Active {
		t.Error("listing should be deactivated when the asset changes hands")
	}
	// the new owner is free to list
	if _, err := market.List(ctx, other, assetID, 200, 10); err != nil {
		t.Fatalf("list by new owner: %v", err)
	}
}

func TestSequentialIDs(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	issuer := randomAddress(t)
	registry := service.NewRegistryService(db)

	first, err := registry.RegisterGame(ctx, issuer, "G1", "d", "https://g.example", 0)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	second, err := registry.RegisterGame(ctx, issuer, "G2", "d", "https://g.example", 0)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if second != first+1 {
		t.Errorf("game ids not sequential: %d then %d", first, second)
	}
}
