package domain

import "time"

// MaxRevenueShareBps is the upper bound for a game's revenue share (100%).
const MaxRevenueShareBps = 10000

// Game is a registered game. The registering account becomes the issuer and
// is the only identity allowed to mint assets into the game.
type Game struct {
	ID              int64     `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Description     string    `db:"description" json:"description"`
	RevenueShareBps int64     `db:"revenue_share_bps" json:"revenue_share_bps"`
	Website         string    `db:"website" json:"website"`
	Issuer          string    `db:"issuer" json:"issuer"`
	AssetCount      int64     `db:"asset_count" json:"asset_count"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// ValidateGameParams checks register-game inputs before any state is touched.
func ValidateGameParams(name, description, website string, revenueShareBps int64) error {
	if name == "" || description == "" || website == "" {
		return ErrInvalidParameter
	}
	if revenueShareBps < 0 || revenueShareBps > MaxRevenueShareBps {
		return ErrInvalidParameter
	}
	return nil
}
