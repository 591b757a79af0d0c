package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ujenzihq/ujenzipay-backend/internal/intents"
	"github.com/ujenzihq/ujenzipay-backend/pkg/config"
	"github.com/ujenzihq/ujenzipay-backend/pkg/db/models"
	"github.com/ujenzihq/ujenzipay-backend/pkg/logger"
)

type intentRepository interface {
	FetchUndispatched(ctx context.Context, limit, maxAttempts int) ([]models.IntentEvent, error)
	MarkDispatched(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, dispatchErr error) error
}

// Service drains intent events: fetch a batch, dispatch each to the sink,
// and record the outcome. Failures stay in the table for the next pass
// until their attempts run out.
type Service struct {
	cfg        config.IntentConfig
	logg       *logger.Logger
	repo       intentRepository
	dispatcher intents.Dispatcher
}

func NewService(cfg config.IntentConfig, logg *logger.Logger, repo intentRepository, dispatcher intents.Dispatcher) (*Service, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if repo == nil {
		return nil, fmt.Errorf("intent repository required")
	}
	if dispatcher == nil {
		return nil, fmt.Errorf("dispatcher required")
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 10
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 500 * time.Millisecond
	}
	return &Service{cfg: cfg, logg: logg, repo: repo, dispatcher: dispatcher}, nil
}

// Run polls until the context is canceled.
func (s *Service) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.DrainOnce(ctx); err != nil {
				s.logg.Error(ctx, "intent drain failed", err)
			}
		}
	}
}

// DrainOnce processes a single batch and reports how many intents were
// dispatched.
func (s *Service) DrainOnce(ctx context.Context) (int, error) {
	events, err := s.repo.FetchUndispatched(ctx, s.cfg.BatchSize, s.cfg.MaxAttempts)
	if err != nil {
		return 0, fmt.Errorf("fetching intents: %w", err)
	}

	dispatched := 0
	for _, event := range events {
		if err := s.dispatcher.Dispatch(ctx, event); err != nil {
			entryCtx := s.logg.WithField(ctx, "intent_id", event.ID.String())
			s.logg.Error(entryCtx, "intent dispatch failed", err)
			if markErr := s.repo.MarkFailed(ctx, event.ID, err); markErr != nil {
				s.logg.Error(entryCtx, "failed to record dispatch failure", markErr)
			}
			continue
		}
		if err := s.repo.MarkDispatched(ctx, event.ID); err != nil {
			return dispatched, fmt.Errorf("marking intent %s dispatched: %w", event.ID, err)
		}
		dispatched++
	}
	return dispatched, nil
}
