package balance

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const resetSweepTimeout = 30 * time.Minute

// StartResetCron schedules ResetAll so applicants who never open a session
// still roll over to the new year. The caller stops the returned cron.
func StartResetCron(schedule string, svc Service, logger *zap.Logger) (*cron.Cron, error) {
	if logger == nil {
		logger = zap.L()
	}
	logger = logger.Named("balance.reset_cron")

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), resetSweepTimeout)
		defer cancel()

		started := time.Now()
		n, err := svc.ResetAll(ctx)
		if err != nil {
			logger.Error("reset sweep failed", zap.Int("reset", n), zap.Error(err))
			return
		}
		logger.Info("reset sweep done",
			zap.Int("reset", n),
			zap.Duration("took", time.Since(started)),
		)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("reset cron started", zap.String("schedule", schedule))
	c.Start()
	return c, nil
}
