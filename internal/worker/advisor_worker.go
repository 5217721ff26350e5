package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"bilancio/internal/advisor"
	"bilancio/internal/amqp"
	"bilancio/internal/log"
	"bilancio/internal/storage"
)

// AdvisorWorker regenerates the stored advisory text for a period whenever
// the period changes, and periodically for the current period.
type AdvisorWorker struct {
	storage *storage.SQLiteRepository
	advisor *advisor.Client
}

func NewAdvisorWorker(storage *storage.SQLiteRepository, advisor *advisor.Client) *AdvisorWorker {
	return &AdvisorWorker{
		storage: storage,
		advisor: advisor,
	}
}

// HandlePeriodSaved processes one period-saved message. The message carries
// only the id; the worker reloads the history from storage so it always
// summarizes the latest state, not the state at publish time.
func (w *AdvisorWorker) HandlePeriodSaved(ctx context.Context, msg *amqp.PeriodSavedMessage) error {
	slog.InfoContext(ctx, "Processing period saved message",
		log.FieldComponent, log.ComponentWorker,
		log.FieldPeriodID, msg.PeriodID,
		"version", msg.Version)

	if _, err := w.storage.GetPeriod(ctx, msg.PeriodID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Deleted, either explicitly or between publish and delivery.
			// The history changed either way, so refresh the current
			// period's advisory instead.
			slog.WarnContext(ctx, "Period vanished, refreshing current instead",
				log.FieldComponent, log.ComponentWorker,
				log.FieldPeriodID, msg.PeriodID)
			return w.RefreshCurrent(ctx)
		}
		return fmt.Errorf("load period: %w", err)
	}

	return w.refresh(ctx, msg.PeriodID)
}

// RefreshCurrent regenerates the advisory for the current period, if one is
// set. Used by the periodic ticker.
func (w *AdvisorWorker) RefreshCurrent(ctx context.Context) error {
	id, err := w.storage.CurrentPeriodID(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		slog.InfoContext(ctx, "No current period set, skipping advisory refresh",
			log.FieldComponent, log.ComponentWorker)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get current period: %w", err)
	}
	return w.refresh(ctx, id)
}

func (w *AdvisorWorker) refresh(ctx context.Context, periodID string) error {
	history, err := w.storage.ListPeriods(ctx)
	if err != nil {
		return fmt.Errorf("load period history: %w", err)
	}

	// The advisor degrades to a fixed message on failure; store whatever
	// it produced so the API always has something to serve.
	text := w.advisor.AdviceFor(ctx, history)

	if err := w.storage.SaveAdvisory(ctx, periodID, w.advisor.Model(), text); err != nil {
		return fmt.Errorf("store advisory: %w", err)
	}

	slog.InfoContext(ctx, "Advisory refreshed",
		log.FieldComponent, log.ComponentWorker,
		log.FieldPeriodID, periodID,
		log.FieldModel, w.advisor.Model(),
		"history_periods", len(history))
	return nil
}
