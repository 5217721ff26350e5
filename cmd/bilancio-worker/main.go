package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"bilancio/internal/advisor"
	"bilancio/internal/amqp"
	"bilancio/internal/cli"
	"bilancio/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	logger.Info("Starting bilancio-worker")

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	advisorClient := advisor.NewClient(cfg.AdvisorURL, cfg.AdvisorModel, cfg.AdvisorTimeout)
	advisorWorker := worker.NewAdvisorWorker(repo, advisorClient)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	// Consumer: refresh the advisory whenever a period is saved.
	g.Go(func() error {
		return amqpClient.ConsumePeriodSaved(gctx, func(msg *amqp.PeriodSavedMessage) error {
			return advisorWorker.HandlePeriodSaved(gctx, msg)
		})
	})

	// Ticker: keep the current period's advisory fresh even when nothing
	// is being saved.
	g.Go(func() error {
		ticker := time.NewTicker(cfg.AdviceRefreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-ticker.C:
				if err := advisorWorker.RefreshCurrent(gctx); err != nil {
					logger.Error("Periodic advisory refresh failed", "error", err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker shutdown complete")
}
