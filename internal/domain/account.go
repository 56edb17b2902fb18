package domain

import "time"

// Account holds the on-platform balance for an address. API key auth maps a
// caller to an address; the address is the identity every registry and
// marketplace operation is authorized against.
type Account struct {
	Address   string    `db:"address" json:"address"`
	APIKey    string    `db:"api_key" json:"-"`
	Balance   int64     `db:"balance" json:"balance"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
