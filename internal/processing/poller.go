package processing

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	defaultPollInterval = 10 * time.Second
	defaultPollBatch    = 100
)

// RunPoller rescans approved applications on every tick until ctx is done.
func RunPoller(ctx context.Context, engine Engine, interval time.Duration, batchSize int, logger *zap.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if batchSize <= 0 {
		batchSize = defaultPollBatch
	}

	log := logger.Named("processing.poller")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("leave poller started",
		zap.Duration("poll_interval", interval),
		zap.Int("batch_size", batchSize),
	)

	for {
		select {
		case <-ctx.Done():
			log.Info("leave poller stopped")
			return
		case <-ticker.C:
			n, err := engine.ProcessPending(ctx, batchSize)
			if err != nil {
				log.Error("process pending leave failed", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Info("pending leave processed", zap.Int("processed", n))
			}
		}
	}
}
