package domain

// AssetType - closed set of asset kinds
type AssetType int64

const (
	TypeCharacter   AssetType = 1
	TypeWeapon      AssetType = 2
	TypeArmor       AssetType = 3
	TypeConsumable  AssetType = 4
	TypeCollectible AssetType = 5
)

// Valid reports whether the type is one of the enumerated kinds.
func (t AssetType) Valid() bool {
	return t >= TypeCharacter && t <= TypeCollectible
}

func (t AssetType) String() string {
	switch t {
	case TypeCharacter:
		return "character"
	case TypeWeapon:
		return "weapon"
	case TypeArmor:
		return "armor"
	case TypeConsumable:
		return "consumable"
	case TypeCollectible:
		return "collectible"
	default:
		return "unknown"
	}
}

// Rarity - closed ordinal scale 1-6
type Rarity int64

const (
	RarityCommon    Rarity = 1
	RarityUncommon  Rarity = 2
	RarityRare      Rarity = 3
	RarityEpic      Rarity = 4
	RarityLegendary Rarity = 5
	RarityMythic    Rarity = 6
)

// Valid reports whether the rarity is within the 1-6 scale.
func (r Rarity) Valid() bool {
	return r >= RarityCommon && r <= RarityMythic
}

func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "common"
	case RarityUncommon:
		return "uncommon"
	case RarityRare:
		return "rare"
	case RarityEpic:
		return "epic"
	case RarityLegendary:
		return "legendary"
	case RarityMythic:
		return "mythic"
	default:
		return "unknown"
	}
}

// Asset is a uniquely owned gaming asset bound to a game. The id is immutable
// once assigned; owner and game binding change over the asset's life.
type Asset struct {
	ID              int64     `db:"id" json:"id"`
	GameID          int64     `db:"game_id" json:"game_id"`
	AssetType       AssetType `db:"asset_type" json:"asset_type"`
	Name            string    `db:"name" json:"name"`
	Description     string    `db:"description" json:"description"`
	Rarity          Rarity    `db:"rarity" json:"rarity"`
	Power           int64     `db:"power" json:"power"`
	MetadataURI     string    `db:"metadata_uri" json:"metadata_uri"`
	Owner           string    `db:"owner" json:"owner"`
	CreatedAtHeight int64     `db:"created_at_height" json:"created_at_height"`
}

// ValidateMintParams checks mint inputs that do not require state lookups.
func ValidateMintParams(assetType AssetType, rarity Rarity, power int64) error {
	if !rarity.Valid() {
		return ErrInvalidRarity
	}
	if !assetType.Valid() {
		return ErrInvalidAssetType
	}
	if power < 0 {
		return ErrInvalidParameter
	}
	return nil
}
