package payments

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgdb "github.com/ujenzihq/ujenzipay-backend/pkg/db"
	"github.com/ujenzihq/ujenzipay-backend/pkg/db/models"
	pkgerrors "github.com/ujenzihq/ujenzipay-backend/pkg/errors"
)

// Repository handles payment record persistence. List returns a fresh
// snapshot on every call; the engine never shares slices with storage.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to payment record operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List loads the full record set in seed order.
func (r *Repository) List(ctx context.Context) ([]models.PaymentRecord, error) {
	var records []models.PaymentRecord
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Order("payment_number ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindByID loads a single record by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.PaymentRecord, error) {
	var record models.PaymentRecord
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// SaveWithIntents replaces the record row and inserts the side-effect
// intents in one transaction, so readers never observe a mutation without
// its declared effects.
func (r *Repository) SaveWithIntents(ctx context.Context, record *models.PaymentRecord, intents []models.IntentEvent) error {
	if record == nil {
		return fmt.Errorf("record is required")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(record).Error; err != nil {
			return err
		}
		for i := range intents {
			if err := tx.Create(&intents[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Count returns the number of stored records.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PaymentRecord{}).Count(&count).Error
	return count, err
}

// InsertAll bulk-inserts seed records.
func (r *Repository) InsertAll(ctx context.Context, records []models.PaymentRecord) error {
	if len(records) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&records).Error; err != nil {
		if pkgdb.IsUniqueViolation(err, "") {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "duplicate payment number in seed data")
		}
		return err
	}
	return nil
}
