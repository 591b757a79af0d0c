package intents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ujenzihq/ujenzipay-backend/pkg/db/models"
	"github.com/ujenzihq/ujenzipay-backend/pkg/enums"
)

func setupIntentsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
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
	require.NoError(t, db.Exec(schema).Error)
	// The shared in-memory database outlives each test.
	require.NoError(t, db.Exec(`DELETE FROM intent_events`).Error)
	return db
}

func createIntent(t *testing.T, db *gorm.DB, attempts int, dispatchedAt *time.Time, created time.Time) *models.IntentEvent {
	t.Helper()

	event := &models.IntentEvent{
		ID:           uuid.New(),
		RecordID:     uuid.New(),
		Action:       "approve",
		Kind:         enums.IntentKindNotifyPayee,
		Payload:      []byte(`{"message":"notify"}`),
		Attempts:     attempts,
		DispatchedAt: dispatchedAt,
		CreatedAt:    created,
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

func TestFetchUndispatchedSkipsDoneAndExhausted(t *testing.T) {
	db := setupIntentsTestDB(t)
	repo := NewRepository(db)

	now := time.Now().UTC()
	pending := createIntent(t, db, 0, nil, now.Add(-2*time.Minute))
	retried := createIntent(t, db, 3, nil, now.Add(-time.Minute))
	done := now.Add(-time.Hour)
	createIntent(t, db, 1, &done, now.Add(-3*time.Minute))
	createIntent(t, db, 10, nil, now.Add(-4*time.Minute)) // attempts exhausted

	rows, err := repo.FetchUndispatched(context.Background(), 10, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// Oldest first.
	assert.Equal(t, pending.ID, rows[0].ID)
	assert.Equal(t, retried.ID, rows[1].ID)
}

func TestFetchUndispatchedHonorsLimit(t *testing.T) {
	db := setupIntentsTestDB(t)
	repo := NewRepository(db)

	now := time.Now().UTC()
	for i := 0; i < 4; i++ {
		createIntent(t, db, 0, nil, now.Add(time.Duration(i)*time.Second))
	}

	rows, err := repo.FetchUndispatched(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestMarkDispatched(t *testing.T) {
	db := setupIntentsTestDB(t)
	repo := NewRepository(db)

	event := createIntent(t, db, 0, nil, time.Now().UTC())
	require.NoError(t, repo.MarkDispatched(context.Background(), event.ID))

	var reloaded models.IntentEvent
	require.NoError(t, db.Where("id = ?", event.ID).First(&reloaded).Error)
	assert.NotNil(t, reloaded.DispatchedAt)

	rows, err := repo.FetchUndispatched(context.Background(), 10, 10)
	require.NoError(t, err)
	for _, row := range rows {
		assert.NotEqual(t, event.ID, row.ID)
	}
}

func TestMarkFailedBumpsAttempts(t *testing.T) {
	db := setupIntentsTestDB(t)
	repo := NewRepository(db)

	event := createIntent(t, db, 2, nil, time.Now().UTC())
	require.NoError(t, repo.MarkFailed(context.Background(), event.ID, errors.New("sink unavailable")))

	var reloaded models.IntentEvent
	require.NoError(t, db.Where("id = ?", event.ID).First(&reloaded).Error)
	assert.Equal(t, 3, reloaded.Attempts)
	require.NotNil(t, reloaded.LastError)
	assert.Equal(t, "sink unavailable", *reloaded.LastError)
	assert.Nil(t, reloaded.DispatchedAt)
}
