package domain

import "time"

// Ledger entry kinds.
const (
	LedgerSalePayment    = "sale_payment"
	LedgerSaleProceeds   = "sale_proceeds"
	LedgerRevenueShare   = "revenue_share"
	LedgerMarketplaceFee = "marketplace_fee"
	LedgerSeed           = "seed"
)

// LedgerEntry records a single balance movement. Amount is negative for
// debits and positive for credits.
type LedgerEntry struct {
	ID        int64                  `db:"id" json:"id"`
	Address   string                 `db:"address" json:"address"`
	Kind      string                 `db:"kind" json:"kind"`
	Amount    int64                  `db:"amount" json:"amount"`
	Meta      map[string]interface{} `db:"meta" json:"meta,omitempty"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
}
