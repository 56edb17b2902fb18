package repository

import (
	"context"
	"encoding/json"

	"asset_bridge/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditRepository handles audit log database operations
type AuditRepository struct {
	db *pgxpool.Pool
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create inserts a new audit log entry
func (r *AuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	detailsJSON, err := json.Marshal(log.Details)
	if err != nil {
		detailsJSON = []byte("{}")
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO audit_logs (address, action, category, details, ip, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, log.Address, log.Action, log.Category, detailsJSON, log.IP, log.UserAgent)
	return err
}

// GetByAddress returns audit logs for an address
func (r *AuditRepository) GetByAddress(ctx context.Context, address string, limit int) ([]*domain.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, address, action, category, details, ip, user_agent, created_at
		FROM audit_logs
		WHERE address = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, address, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.AuditLog
	for rows.Next() {
		var (
			log         domain.AuditLog
			detailsJSON []byte
		)
		if err := rows.Scan(&log.ID, &log.Address, &log.Action, &log.Category,
			&detailsJSON, &log.IP, &log.UserAgent, &log.CreatedAt); err != nil {
			return nil, err
		}
		if len(detailsJSON) > 0 {
			_ = json.Unmarshal(detailsJSON, &log.Details)
		}
		result = append(result, &log)
	}
	return result, rows.Err()
}
