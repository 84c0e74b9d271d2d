// Package scheduler owns the background jobs started by main.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Sweeper interface {
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
}

type ExpirySweepConfig struct {
	Schedule string        // cron expression, default hourly
	Timeout  time.Duration // per run
}

// StartExpirySweep registers the sweep and starts the scheduler. The caller
// stops it on shutdown (Stop returns a context that is done once running
// jobs finished).
func StartExpirySweep(cfg ExpirySweepConfig, sweeper Sweeper, log *zap.Logger) (*cron.Cron, error) {
	if cfg.Schedule == "" {
		cfg.Schedule = "0 * * * *"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	if log == nil {
		log = zap.L()
	}
	log = log.Named("expiry-sweep")

	c := cron.New(cron.WithChain(
		cron.Recover(cron.DefaultLogger),
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))
	_, err := c.AddFunc(cfg.Schedule, func() {
		RunExpirySweep(context.Background(), sweeper, cfg.Timeout, time.Now(), log)
	})
	if err != nil {
		return nil, err
	}
	log.Info("started", zap.String("schedule", cfg.Schedule))
	c.Start()
	return c, nil
}

// RunExpirySweep performs one sweep and logs the outcome.
func RunExpirySweep(ctx context.Context, sweeper Sweeper, timeout time.Duration, now time.Time, log *zap.Logger) int64 {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	n, err := sweeper.SweepExpired(ctx, now)
	if err != nil {
		log.Error("sweep failed", zap.Error(err))
		return 0
	}
	log.Info("expired links flagged", zap.Int64("count", n))
	return n
}
