package domain

import "time"

// Listing is a marketplace offer binding an asset, a price and an expiry
// height. At most one active listing exists per asset; a listing is consumed
// by a successful purchase, cancelled by its seller, or discovered expired
// lazily when touched.
type Listing struct {
	ID           int64     `db:"id" json:"id"`
	AssetID      int64     `db:"asset_id" json:"asset_id"`
	Seller       string    `db:"seller" json:"seller"`
	Price        int64     `db:"price" json:"price"`
	ExpiryHeight int64     `db:"expiry_height" json:"expiry_height"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Expired reports whether the listing is past its expiry at the given height.
func (l *Listing) Expired(height int64) bool {
	return height > l.ExpiryHeight
}
