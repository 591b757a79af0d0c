package intents

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ujenzihq/ujenzipay-backend/pkg/db/models"
)

// Repository drains the intent_events table.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to intent event operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FetchUndispatched returns the oldest undispatched intents that have not
// exhausted their attempts.
func (r *Repository) FetchUndispatched(ctx context.Context, limit, maxAttempts int) ([]models.IntentEvent, error) {
	var rows []models.IntentEvent
	err := r.db.WithContext(ctx).
		Where("dispatched_at IS NULL").
		Where("attempts < ?", maxAttempts).
		Order("created_at ASC").
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// MarkDispatched stamps the intent as delivered.
func (r *Repository) MarkDispatched(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.IntentEvent{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"dispatched_at": time.Now(),
		}).Error
}

// MarkFailed records a dispatch failure and bumps the attempt counter.
func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID, dispatchErr error) error {
	msg := dispatchErr.Error()
	return r.db.WithContext(ctx).Model(&models.IntentEvent{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": msg,
		}).Error
}
