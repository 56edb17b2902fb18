package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	GamesRegistered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bridge_games_registered_total",
			Help: "Total games registered",
		},
	)
	AssetsMinted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bridge_assets_minted_total",
			Help: "Total assets minted",
		},
	)
	AssetTransfers = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bridge_asset_transfers_total",
			Help: "Total asset transfers, including cross-game rebinds",
		},
	)
	ListingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bridge_listings_created_total",
			Help: "Total marketplace listings created",
		},
	)
	AssetsSold = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bridge_assets_sold_total",
			Help: "Total completed sales",
		},
	)
	TradeVolume = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bridge_trade_volume_total",
			Help: "Sum of completed sale prices in smallest currency units",
		},
	)
)

func init() {
	prometheus.MustRegister(GamesRegistered)
	prometheus.MustRegister(AssetsMinted)
	prometheus.MustRegister(AssetTransfers)
	prometheus.MustRegister(ListingsCreated)
	prometheus.MustRegister(AssetsSold)
	prometheus.MustRegister(TradeVolume)
}
