package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-timeclock/internal/config"
	"go-timeclock/internal/events"
	"go-timeclock/internal/messaging/kafka/consumer"
	"go-timeclock/internal/notify"
	"go-timeclock/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunNotifier consumes anomaly events from Kafka and retains the latest
// warning per manager/employee pair in Redis for the warnings endpoint.
func RunNotifier(cfg config.Config) error {
	logger := zap.L().Named("app.notifier")

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	notifyService := notify.NewService(redisClient, zap.L())

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.AnomalyDetectedTopic,
		GroupID:        "go-timeclock-warnings",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeAnomalyAlerts(ctx, reader, notifyService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("notifier shutting down")
	cancel()

	return nil
}
