package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bilancio/internal/amqp"
	"bilancio/internal/core"
	"bilancio/internal/engine"
	"bilancio/internal/log"
	"bilancio/internal/storage"
)

// PeriodService orchestrates budget period operations across SQLite and AMQP.
type PeriodService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
}

func NewPeriodService(storage *storage.SQLiteRepository, amqpClient *amqp.Client) *PeriodService {
	return &PeriodService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

// Report is the derived view of one period: its totals and the alerts
// evaluated against the stored history.
type Report struct {
	Period core.BudgetPeriod `json:"period"`
	Totals core.Totals       `json:"totals"`
	Alerts []engine.Alert    `json:"alerts"`
}

// SavePeriod validates and persists a period, then publishes a saved
// message. Publishing is best effort: the period is already durable
// locally, so a broker outage never fails the request.
func (s *PeriodService) SavePeriod(ctx context.Context, p core.BudgetPeriod) (core.BudgetPeriod, error) {
	if err := p.Validate(); err != nil {
		return p, err
	}

	saved, version, err := s.storage.SavePeriod(ctx, p)
	if err != nil {
		return p, fmt.Errorf("save period: %w", err)
	}

	if err := s.publishSaved(ctx, saved.ID, version); err != nil {
		slog.ErrorContext(ctx, "Failed to publish period saved message",
			log.FieldComponent, log.ComponentPeriod,
			log.FieldPeriodID, saved.ID,
			log.FieldError, err)
	}

	return saved, nil
}

// CreateWithRollover persists a new period whose rollover is the source
// period's left-to-spend. The source keeps existing untouched; periods are
// superseded, never merged.
func (s *PeriodService) CreateWithRollover(ctx context.Context, p core.BudgetPeriod, sourceID string) (core.BudgetPeriod, error) {
	source, err := s.storage.GetPeriod(ctx, sourceID)
	if err != nil {
		return p, fmt.Errorf("load rollover source: %w", err)
	}

	p.ID = ""
	p.Rollover = source.Totals().LeftToSpend

	slog.InfoContext(ctx, "Rolling over period",
		log.FieldComponent, log.ComponentPeriod,
		"source_id", sourceID,
		"rollover_cents", p.Rollover.Cents)

	return s.SavePeriod(ctx, p)
}

func (s *PeriodService) GetPeriod(ctx context.Context, id string) (core.BudgetPeriod, error) {
	return s.storage.GetPeriod(ctx, id)
}

func (s *PeriodService) ListPeriods(ctx context.Context) ([]core.BudgetPeriod, error) {
	return s.storage.ListPeriods(ctx)
}

// DeletePeriod removes a period and notifies the worker. The message names
// the deleted id; the worker sees it vanished and refreshes the current
// period instead, since the history its advisory summarizes just changed.
func (s *PeriodService) DeletePeriod(ctx context.Context, id string) error {
	if err := s.storage.DeletePeriod(ctx, id); err != nil {
		return err
	}

	if err := s.publishSaved(ctx, id, 0); err != nil {
		slog.ErrorContext(ctx, "Failed to publish period deleted message",
			log.FieldComponent, log.ComponentPeriod,
			log.FieldPeriodID, id,
			log.FieldError, err)
	}

	return nil
}

func (s *PeriodService) SetCurrentPeriod(ctx context.Context, id string) error {
	return s.storage.SetCurrentPeriod(ctx, id)
}

// CurrentPeriod loads the period the current-period pointer names.
func (s *PeriodService) CurrentPeriod(ctx context.Context) (core.BudgetPeriod, error) {
	id, err := s.storage.CurrentPeriodID(ctx)
	if err != nil {
		return core.BudgetPeriod{}, err
	}
	return s.storage.GetPeriod(ctx, id)
}

// BuildReport computes the totals and alerts for one period. History for
// the anomaly check is every other stored period, in creation order.
func (s *PeriodService) BuildReport(ctx context.Context, id string, now time.Time) (Report, error) {
	period, err := s.storage.GetPeriod(ctx, id)
	if err != nil {
		return Report{}, err
	}

	all, err := s.storage.ListPeriods(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("load period history: %w", err)
	}

	history := make([]core.BudgetPeriod, 0, len(all))
	for _, p := range all {
		if p.ID != period.ID {
			history = append(history, p)
		}
	}

	return Report{
		Period: period,
		Totals: period.Totals(),
		Alerts: engine.EvaluateAlerts(period, history, now),
	}, nil
}

// Ping reports whether the backing store is reachable.
func (s *PeriodService) Ping(ctx context.Context) error {
	return s.storage.Ping(ctx)
}

// LatestAdvisory returns the newest stored advisory text for a period.
func (s *PeriodService) LatestAdvisory(ctx context.Context, periodID string) (string, error) {
	return s.storage.LatestAdvisory(ctx, periodID)
}

func (s *PeriodService) publishSaved(ctx context.Context, id string, version int64) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping saved message",
			log.FieldComponent, log.ComponentPeriod)
		return nil
	}
	return s.amqpClient.PublishPeriodSaved(ctx, id, version)
}

// Close closes both storage and AMQP connections.
func (s *PeriodService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close period service: %v", errs)
	}

	return nil
}
