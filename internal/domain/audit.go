package domain

import "time"

// AuditLog represents an audit log entry for tracking important actions
type AuditLog struct {
	ID        int64                  `db:"id" json:"id"`
	Address   string                 `db:"address" json:"address"`
	Action    string                 `db:"action" json:"action"`
	Category  string                 `db:"category" json:"category"`
	Details   map[string]interface{} `db:"details" json:"details"`
	IP        string                 `db:"ip" json:"ip,omitempty"`
	UserAgent string                 `db:"user_agent" json:"user_agent,omitempty"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
}

// Audit action categories
const (
	AuditCategoryAuth     = "auth"
	AuditCategoryRegistry = "registry"
	AuditCategoryMarket   = "market"
)

// Audit actions
const (
	// Auth actions
	AuditActionRegister = "account_register"
	AuditActionLogin    = "login"

	// Registry actions
	AuditActionGameRegistered = "game_registered"
	AuditActionAssetMinted    = "asset_minted"
	AuditActionAssetTransfer  = "asset_transferred"
	AuditActionAssetRebound   = "asset_rebound"

	// Market actions
	AuditActionListingCreated   = "listing_created"
	AuditActionListingCancelled = "listing_cancelled"
	AuditActionAssetSold        = "asset_sold"
)
