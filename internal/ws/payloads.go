package ws

import "time"

// Market event types, server → client only.
const (
	EventGameRegistered   = "game_registered"
	EventAssetMinted      = "asset_minted"
	EventListingCreated   = "listing_created"
	EventListingCancelled = "listing_cancelled"
	EventAssetSold        = "asset_sold"
)

// Event is the envelope for every feed message.
type Event struct {
	Type string    `json:"type"`
	Data any       `json:"data"`
	Time time.Time `json:"time"`
}

type GameRegisteredPayload struct {
	GameID int64  `json:"game_id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
}

type AssetMintedPayload struct {
	AssetID int64  `json:"asset_id"`
	GameID  int64  `json:"game_id"`
	Name    string `json:"name"`
	Rarity  int64  `json:"rarity"`
	Owner   string `json:"owner"`
}

type ListingPayload struct {
	ListingID int64 `json:"listing_id"`
	AssetID   int64 `json:"asset_id"`
	Price     int64 `json:"price"`
}

type AssetSoldPayload struct {
	ListingID int64  `json:"listing_id"`
	AssetID   int64  `json:"asset_id"`
	Price     int64  `json:"price"`
	Buyer     string `json:"buyer"`
}
