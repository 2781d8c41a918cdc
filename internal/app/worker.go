package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-school/internal/balance"
	"go-school/internal/messaging/kafka"
	"go-school/internal/messaging/kafka/producer"
	"go-school/internal/processing"
	"go-school/internal/shared/config"
	"go-school/internal/shared/connection"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RunWorker publishes the outbox, polls for approved applications and runs
// the yearly reset sweep until SIGINT or SIGTERM.
func RunWorker(cfg config.Config) error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.Database.MaxRetries)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}
	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.Database.MaxRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	core := newLedger(cfg, sqlDB, gormDB, redisClient, zap.L())
	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	resetCron, err := balance.StartResetCron(cfg.Leave.ResetCron, core.balances, logger)
	if err != nil {
		return err
	}
	defer func() { <-resetCron.Stop().Done() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		producer.ProcessOutboxEvents(gctx, outboxRepo, kafkaWriter, logger, 0)
		return nil
	})
	g.Go(func() error {
		processing.RunPoller(gctx, core.engine, cfg.Leave.PollInterval, cfg.Leave.PollBatchSize, logger)
		return nil
	})

	err = g.Wait()
	logger.Info("worker shutting down")
	return err
}
