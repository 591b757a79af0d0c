package payments

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ujenzihq/ujenzipay-backend/pkg/db/models"
	"github.com/ujenzihq/ujenzipay-backend/pkg/enums"
)

func setupPaymentsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	paymentRecords := `
CREATE TABLE IF NOT EXISTS payment_records (
  id TEXT PRIMARY KEY,
  payment_number TEXT NOT NULL UNIQUE,
  invoice_number TEXT NOT NULL,
  payee_name TEXT NOT NULL,
  payee_kind TEXT NOT NULL,
  project_name TEXT NOT NULL,
  description TEXT,
  amount NUMERIC NOT NULL,
  due_date DATETIME NOT NULL,
  category TEXT NOT NULL,
  cost_code TEXT,
  status TEXT NOT NULL DEFAULT 'pending',
  approved_by TEXT,
  rejection_reason TEXT,
  paid_date DATETIME,
  payment_method TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	intentEvents := `
CREATE TABLE IF NOT EXISTS intent_events (
  id TEXT PRIMARY KEY,
  record_id TEXT NOT NULL,
  action TEXT NOT NULL,
  kind TEXT NOT NULL,
  payload TEXT NOT NULL,
  attempts INTEGER NOT NULL DEFAULT 0,
  last_error TEXT,
  dispatched_at DATETIME,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(paymentRecords).Error)
	require.NoError(t, db.Exec(intentEvents).Error)
	// The shared in-memory database outlives each test.
	require.NoError(t, db.Exec(`DELETE FROM payment_records`).Error)
	require.NoError(t, db.Exec(`DELETE FROM intent_events`).Error)
	return db
}

func createRecord(t *testing.T, db *gorm.DB, number string, status enums.PaymentStatus, created time.Time) *models.PaymentRecord {
	t.Helper()

	record := &models.PaymentRecord{
		ID:            uuid.New(),
		PaymentNumber: number,
		InvoiceNumber: "INV-" + number,
		PayeeName:     "Nakuru Quarry Co",
		PayeeKind:     enums.PayeeKindVendor,
		ProjectName:   "Thika Road Depot",
		Amount:        decimal.RequireFromString("980000.00"),
		DueDate:       time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Category:      "Materials",
		Status:        status,
		CreatedAt:     created,
		UpdatedAt:     created,
	}
	if status == enums.PaymentStatusApproved {
		approver := "grace.kamau"
		record.ApprovedBy = &approver
	}
	require.NoError(t, db.Create(record).Error)
	return record
}

func TestRepositoryListOrdersByCreation(t *testing.T) {
	db := setupPaymentsTestDB(t)
	repo := NewRepository(db)

	now := time.Now().UTC()
	createRecord(t, db, "PAY-L-002", enums.PaymentStatusPending, now)
	createRecord(t, db, "PAY-L-001", enums.PaymentStatusPending, now.Add(-time.Hour))

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "PAY-L-001", records[0].PaymentNumber)
	assert.Equal(t, "PAY-L-002", records[1].PaymentNumber)
}

func TestRepositoryFindByID(t *testing.T) {
	db := setupPaymentsTestDB(t)
	repo := NewRepository(db)

	created := createRecord(t, db, "PAY-F-001", enums.PaymentStatusPending, time.Now().UTC())

	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.PaymentNumber, found.PaymentNumber)
	assert.True(t, found.Amount.Equal(created.Amount))

	_, err = repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositorySaveWithIntents(t *testing.T) {
	db := setupPaymentsTestDB(t)
	repo := NewRepository(db)

	record := createRecord(t, db, "PAY-S-001", enums.PaymentStatusPending, time.Now().UTC())

	approver := "grace.kamau"
	record.Status = enums.PaymentStatusApproved
	record.ApprovedBy = &approver
	intents := []models.IntentEvent{
		{
			ID:       uuid.New(),
			RecordID: record.ID,
			Action:   "approve",
			Kind:     enums.IntentKindNotifyPayee,
			Payload:  []byte(`{"message":"notify"}`),
		},
		{
			ID:       uuid.New(),
			RecordID: record.ID,
			Action:   "approve",
			Kind:     enums.IntentKindAlertAccounts,
			Payload:  []byte(`{"message":"alert"}`),
		},
	}
	require.NoError(t, repo.SaveWithIntents(context.Background(), record, intents))

	reloaded, err := repo.FindByID(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.PaymentStatusApproved, reloaded.Status)
	require.NotNil(t, reloaded.ApprovedBy)
	assert.Equal(t, "grace.kamau", *reloaded.ApprovedBy)

	var stored []models.IntentEvent
	require.NoError(t, db.Where("record_id = ?", record.ID).Find(&stored).Error)
	assert.Len(t, stored, 2)
}

func TestRepositoryCountAndInsertAll(t *testing.T) {
	db := setupPaymentsTestDB(t)
	repo := NewRepository(db)

	before, err := repo.Count(context.Background())
	require.NoError(t, err)

	rows := []SeedRow{
		{
			PaymentNumber: "PAY-I-001",
			InvoiceNumber: "INV-I-001",
			PayeeName:     "Kisumu Glass & Glazing",
			PayeeKind:     "vendor",
			ProjectName:   "Riverside Towers",
			Amount:        "1850000.00",
			DueDate:       "2025-03-18",
			Category:      "Materials",
			Status:        "pending",
		},
		{
			PaymentNumber: "PAY-I-002",
			InvoiceNumber: "INV-I-002",
			PayeeName:     "Juma Otieno",
			PayeeKind:     "worker",
			ProjectName:   "Riverside Towers",
			Amount:        "185000.00",
			DueDate:       "2025-02-28",
			Category:      "Direct Labor",
			Status:        "overdue",
		},
	}
	records, err := BuildSeedRecords(rows)
	require.NoError(t, err)
	for i := range records {
		records[i].ID = uuid.New()
	}
	require.NoError(t, repo.InsertAll(context.Background(), records))

	after, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before+2, after)
}
