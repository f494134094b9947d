package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-timeclock/internal/account"
	"go-timeclock/internal/anomaly"
	"go-timeclock/internal/config"
	"go-timeclock/internal/ledger"
	"go-timeclock/internal/messaging/kafka"
	"go-timeclock/internal/messaging/kafka/producer"
	"go-timeclock/internal/punch"
	"go-timeclock/internal/reconcile"
	"go-timeclock/internal/replstore"
	"go-timeclock/internal/scheduler"
	"go-timeclock/internal/shared/connection"

	"go.uber.org/zap"
)

const ledgerDrainBatchSize = 100

// RunScheduler hosts the background jobs: the daily reconciliation
// sweep, the payroll drain, and the outbox relay that pushes queued
// anomaly events to Kafka.
func RunScheduler(cfg config.Config) error {
	logger := zap.L().Named("app.scheduler")

	primary, err := connection.ConnectGORMWithRetry(cfg.Primary, 5)
	if err != nil {
		return err
	}
	backup, err := connection.ConnectGORMWithRetry(cfg.Backup, 5)
	if err != nil {
		return err
	}
	store := replstore.New(primary, backup, cfg.StoreTimeout, zap.L())

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}
	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	punchRepo := punch.NewRepository(store)
	anomalyRepo := anomaly.NewRepository(store)
	accountRepo := account.NewRepository(store)
	outboxRepo := kafka.NewOutboxRepository(store)
	ledgerRepo := ledger.NewRepository(store)

	reconcileService := reconcile.NewService(
		store,
		punchRepo,
		anomalyRepo,
		accountRepo,
		outboxRepo,
		reconcile.Policy{
			StandardShift:     cfg.Policy.StandardShiftDuration,
			OvertimeThreshold: cfg.Policy.OvertimeThreshold,
		},
		zap.L(),
	)
	ledgerService := ledger.NewService(ledgerRepo, redisClient, ledger.Pricing{
		RatePerMinute:      cfg.Policy.RatePerMinute,
		AbsentPenalty:      cfg.Policy.AbsentPenalty,
		OvertimeMultiplier: cfg.Policy.OvertimeMultiplier,
	}, zap.L())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		cfg.OutboxInterval,
	)

	runner := scheduler.NewRunner(zap.L())
	runner.Start(ctx,
		scheduler.Job{
			Name:     "reconcile_daily",
			Interval: cfg.ReconcileInterval,
			Run: func(ctx context.Context) error {
				window := previousDay(time.Now(), loc)
				summary, err := reconcileService.RunWindow(ctx, window)
				if err != nil {
					return err
				}
				logger.Info("reconciliation window finished",
					zap.Time("window_start", window.Start),
					zap.Time("window_end", window.End),
					zap.Int("users_scanned", summary.UsersScanned),
					zap.Int("anomalies_new", summary.AnomaliesNew),
					zap.Int("anomalies_duplicate", summary.AnomaliesDuplicate),
					zap.Int("notifications_queued", summary.NotificationsQueued),
					zap.Int("user_errors", summary.UserErrors),
				)
				return nil
			},
		},
		scheduler.Job{
			Name:     "ledger_drain",
			Interval: cfg.LedgerInterval,
			Run: func(ctx context.Context) error {
				summary, err := ledgerService.Drain(ctx, ledgerDrainBatchSize)
				if err != nil {
					return err
				}
				if summary.Listed > 0 {
					logger.Info("ledger drain finished",
						zap.Int("listed", summary.Listed),
						zap.Int("applied", summary.Applied),
						zap.Int("duplicates", summary.Duplicates),
						zap.Int("errors", summary.Errors),
					)
				}
				return nil
			},
		},
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("scheduler shutting down")
	cancel()
	runner.Wait()

	return nil
}

// previousDay returns the most recent completed local day: midnight to
// midnight in loc, ending on the midnight at or before now.
func previousDay(now time.Time, loc *time.Location) reconcile.Window {
	local := now.In(loc)
	end := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return reconcile.Window{Start: end.AddDate(0, 0, -1), End: end}
}
