package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/ujenzihq/ujenzipay-backend/pkg/enums"
)

// IntentEvent is a side-effect declaration emitted by the action
// orchestrator, persisted in the same transaction as the record mutation and
// drained by the intent worker. The worker dispatches; the orchestrator only
// declares.
type IntentEvent struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RecordID     uuid.UUID        `gorm:"column:record_id;type:uuid;not null;index"`
	Action       string           `gorm:"column:action;not null"`
	Kind         enums.IntentKind `gorm:"column:kind;not null"`
	Payload      json.RawMessage  `gorm:"column:payload;type:jsonb"`
	Attempts     int              `gorm:"column:attempts;not null;default:0"`
	LastError    *string          `gorm:"column:last_error"`
	DispatchedAt *time.Time       `gorm:"column:dispatched_at"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
}

// TableName pins the table name for GORM.
func (IntentEvent) TableName() string {
	return "intent_events"
}
