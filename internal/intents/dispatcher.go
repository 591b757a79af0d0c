package intents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ujenzihq/ujenzipay-backend/pkg/db/models"
	"github.com/ujenzihq/ujenzipay-backend/pkg/logger"
)

// Dispatcher delivers one intent to its external sink.
type Dispatcher interface {
	Dispatch(ctx context.Context, event models.IntentEvent) error
}

// LogDispatcher writes intents to the structured log. It stands in for the
// real notification sink, which lives outside this service.
type LogDispatcher struct {
	logg *logger.Logger
}

// NewLogDispatcher builds a dispatcher that emits intents as log entries.
func NewLogDispatcher(logg *logger.Logger) (*LogDispatcher, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &LogDispatcher{logg: logg}, nil
}

// Dispatch logs the intent with its payload fields.
func (d *LogDispatcher) Dispatch(ctx context.Context, event models.IntentEvent) error {
	fields := map[string]any{
		"intent_id": event.ID.String(),
		"record_id": event.RecordID.String(),
		"action":    event.Action,
		"kind":      event.Kind.String(),
	}
	if len(event.Payload) > 0 {
		var payload map[string]string
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return fmt.Errorf("decoding intent payload: %w", err)
		}
		for k, v := range payload {
			fields[k] = v
		}
	}
	d.logg.Info(d.logg.WithFields(ctx, fields), "intent.dispatched")
	return nil
}
