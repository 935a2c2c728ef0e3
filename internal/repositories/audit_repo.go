package repositories

import (
	"context"

	"github.com/campaign-tracker/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const defaultHistoryLimit = 50

// AuditRepo is an append-only log of campaign writes.
type AuditRepo struct {
	db DBTX
}

func NewAuditRepo(db DBTX) *AuditRepo {
	return &AuditRepo{db: db}
}

// Log appends entry. Meta is stored as JSONB.
func (r *AuditRepo) Log(ctx context.Context, entry models.AuditLog) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO audit_log (actor_user_id, action, entity_type, entity_id, meta)
		VALUES ($1, $2, $3, $4, $5)
	`, entry.ActorUserID, entry.Action, entry.EntityType, entry.EntityID, entry.Meta)
	return err
}

// GetByEntity pages through the entries for one entity, newest first. A
// non-positive limit falls back to defaultHistoryLimit.
func (r *AuditRepo) GetByEntity(ctx context.Context, entityType string, entityID uuid.UUID, limit, offset int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, actor_user_id, action, entity_type, entity_id, meta, created_at
		FROM audit_log WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC, id DESC LIMIT $3 OFFSET $4
	`, entityType, entityID, limit, offset)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.AuditLog, error) {
		var l models.AuditLog
		err := row.Scan(&l.ID, &l.ActorUserID, &l.Action, &l.EntityType, &l.EntityID, &l.Meta, &l.CreatedAt)
		return l, err
	})
}
