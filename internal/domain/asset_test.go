package domain

import "testing"

func TestAssetTypeValid(t *testing.T) {
	cases := []struct {
		typ  AssetType
		want bool
	}{
		{TypeCharacter, true},
		{TypeWeapon, true},
		{TypeArmor, true},
		{TypeConsumable, true},
		{TypeCollectible, true},
		{0, false},
		{6, false},
		{-1, false},
	}
	for _, c := range cases {
		if got := c.typ.Valid(); got != c.want {
			t.Errorf("AssetType(%d).Valid() = %v, want %v", c.typ, got, c.want)
		}
	}
}

func TestRarityValid(t *testing.T) {
	cases := []struct {
		rarity Rarity
		want   bool
	}{
		{RarityCommon, true},
		{RarityMythic, true},
		{0, false},
		{7, false},
	}
	for _, c := range cases {
		if got := c.rarity.Valid(); got != c.want {
			t.Errorf("Rarity(%d).Valid() = %v, want %v", c.rarity, got, c.want)
		}
	}
}

func TestValidateMintParams(t *testing.T) {
	if err := ValidateMintParams(TypeWeapon, RarityLegendary, 500); err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}

	// invalid rarity wins over invalid type
	if err := ValidateMintParams(99, 0, 10); err != ErrInvalidRarity {
		t.Errorf("bad rarity + bad type: got %v, want ErrInvalidRarity", err)
	}
	if err := ValidateMintParams(99, RarityCommon, 10); err != ErrInvalidAssetType {
		t.Errorf("bad type: got %v, want ErrInvalidAssetType", err)
	}
	if err := ValidateMintParams(TypeArmor, RarityRare, -1); err != ErrInvalidParameter {
		t.Errorf("negative power: got %v, want ErrInvalidParameter", err)
	}
	if err := ValidateMintParams(TypeConsumable, RarityCommon, 0); err != nil {
		t.Errorf("zero power should be allowed: %v", err)
	}
}

func TestValidateGameParams(t *testing.T) {
	if err := ValidateGameParams("Realm", "an rpg", "https://realm.example", 500); err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}
	if err := ValidateGameParams("", "d", "w", 0); err != ErrInvalidParameter {
		t.Errorf("empty name: got %v, want ErrInvalidParameter", err)
	}
	if err := ValidateGameParams("n", "d", "w", MaxRevenueShareBps+1); err != ErrInvalidParameter {
		t.Errorf("share over 100%%: got %v, want ErrInvalidParameter", err)
	}
	if err := ValidateGameParams("n", "d", "w", MaxRevenueShareBps); err != nil {
		t.Errorf("share at exactly 100%% should be allowed: %v", err)
	}
	if err := ValidateGameParams("n", "d", "w", -1); err != ErrInvalidParameter {
		t.Errorf("negative share: got %v, want ErrInvalidParameter", err)
	}
}

func TestListingExpired(t *testing.T) {
	l := &Listing{ExpiryHeight: 100}
	if l.Expired(100) {
		t.Error("listing at exactly its expiry height should not be expired")
	}
	if !l.Expired(101) {
		t.Error("listing past its expiry height should be expired")
	}
}
