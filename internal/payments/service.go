package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ujenzihq/ujenzipay-backend/internal/insights"
	"github.com/ujenzihq/ujenzipay-backend/pkg/db/models"
	"github.com/ujenzihq/ujenzipay-backend/pkg/enums"
	pkgerrors "github.com/ujenzihq/ujenzipay-backend/pkg/errors"
	"github.com/ujenzihq/ujenzipay-backend/pkg/metrics"
)

type recordRepository interface {
	List(ctx context.Context) ([]models.PaymentRecord, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.PaymentRecord, error)
	SaveWithIntents(ctx context.Context, record *models.PaymentRecord, intents []models.IntentEvent) error
}

// ListQuery captures the three listing dimensions. Composition order is
// fixed: search narrows, the tab scopes, the group key partitions.
type ListQuery struct {
	Search  string
	Tab     enums.TabFilter
	GroupBy enums.GroupKey
}

// Listing is an ordered, grouped view over a snapshot.
type Listing struct {
	Groups []RecordGroup `json:"groups"`
	Total  int           `json:"total"`
	AsOf   time.Time     `json:"as_of"`
}

// ActionInput carries the caller-supplied fields for a mutating action.
type ActionInput struct {
	ActorID string
	Reason  string
	Method  enums.PaymentMethod
}

// Service exposes payment operations over the stored record set.
type Service interface {
	List(ctx context.Context, query ListQuery) (*Listing, error)
	Get(ctx context.Context, id uuid.UUID) (*models.PaymentRecord, error)
	Insights(ctx context.Context) ([]insights.Insight, error)
	Act(ctx context.Context, id uuid.UUID, action enums.PaymentAction, input ActionInput) (*Receipt, error)
}

type service struct {
	repo    recordRepository
	metrics *metrics.EngineMetrics
	now     func() time.Time
}

// NewService builds a payment service. The clock is injected so queries and
// insight evaluation are deterministic under test.
func NewService(repo recordRepository, engineMetrics *metrics.EngineMetrics, now func() time.Time) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payment repository required")
	}
	if now == nil {
		return nil, fmt.Errorf("clock required")
	}
	return &service{repo: repo, metrics: engineMetrics, now: now}, nil
}

func (s *service) List(ctx context.Context, query ListQuery) (*Listing, error) {
	if query.Tab == "" {
		query.Tab = enums.TabFilterAll
	}
	if query.GroupBy == "" {
		query.GroupBy = enums.GroupKeyNone
	}
	if !query.Tab.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown tab %q", query.Tab))
	}
	if !query.GroupBy.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown group key %q", query.GroupBy))
	}

	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment records")
	}

	asOf := s.now()
	scoped := FilterByTab(Search(records, query.Search), query.Tab, asOf)
	return &Listing{
		Groups: GroupBy(scoped, query.GroupBy),
		Total:  len(scoped),
		AsOf:   asOf,
	}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.PaymentRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateLookupError(err, id)
	}
	return record, nil
}

func (s *service) Insights(ctx context.Context) ([]insights.Insight, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment records")
	}

	started := time.Now()
	result := insights.Evaluate(records, s.now())
	s.metrics.ObserveEvaluation(time.Since(started))
	for _, insight := range result {
		s.metrics.IncRuleFire(insight.Rule)
	}
	return result, nil
}

func (s *service) Act(ctx context.Context, id uuid.UUID, action enums.PaymentAction, input ActionInput) (*Receipt, error) {
	if !action.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown action %q", action))
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateLookupError(err, id)
	}

	receipt, err := Perform(action, *record, ActionContext{
		ActorID: input.ActorID,
		Reason:  input.Reason,
		Method:  input.Method,
		Now:     s.now(),
	})
	if err != nil {
		s.metrics.IncTransition(action.String(), "error")
		return nil, err
	}

	if action.Mutates() {
		intents, err := intentEvents(action, receipt)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode side effects")
		}
		if err := s.repo.SaveWithIntents(ctx, &receipt.Record, intents); err != nil {
			s.metrics.IncTransition(action.String(), "error")
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist payment record")
		}
		s.metrics.IncTransition(action.String(), "ok")
	}

	return &receipt, nil
}

func intentEvents(action enums.PaymentAction, receipt Receipt) ([]models.IntentEvent, error) {
	events := make([]models.IntentEvent, 0, len(receipt.SideEffects))
	for _, effect := range receipt.SideEffects {
		payload, err := json.Marshal(map[string]string{
			"message":        effect.Message,
			"payee_name":     receipt.Record.PayeeName,
			"payment_number": receipt.Record.PaymentNumber,
		})
		if err != nil {
			return nil, err
		}
		events = append(events, models.IntentEvent{
			RecordID: receipt.Record.ID,
			Action:   action.String(),
			Kind:     effect.Kind,
			Payload:  payload,
		})
	}
	return events, nil
}

func translateLookupError(err error, id uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("payment record %s not found", id))
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment record")
}
