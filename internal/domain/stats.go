package domain

// MarketplaceFeeBps is the fixed marketplace cut on every sale (2.5%).
const MarketplaceFeeBps = 250

// AssetStats counts ownership events per asset. A zeroed row is created at
// mint time and never deleted.
type AssetStats struct {
	AssetID        int64 `db:"asset_id" json:"asset_id"`
	TotalTransfers int64 `db:"total_transfers" json:"total_transfers"`
	TotalSales     int64 `db:"total_sales" json:"total_sales"`
}

// MarketplaceStats is the global counter set.
type MarketplaceStats struct {
	TotalGames        int64 `json:"total_games"`
	TotalAssets       int64 `json:"total_assets"`
	TotalVolume       int64 `json:"total_volume"`
	MarketplaceFeeBps int64 `json:"marketplace_fee_bps"`
}
