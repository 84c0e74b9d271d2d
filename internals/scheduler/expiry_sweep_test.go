package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bmizerany/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeSweeper struct {
	n    int64
	err  error
	seen time.Time
}

func (f *fakeSweeper) SweepExpired(_ context.Context, now time.Time) (int64, error) {
	f.seen = now
	return f.n, f.err
}

func TestRunExpirySweep(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	s := &fakeSweeper{n: 3}
	assert.Equal(t, int64(3), RunExpirySweep(context.Background(), s, time.Second, now, zap.New(core)))
	assert.Equal(t, now, s.seen)

	s.err = errors.New("db down")
	assert.Equal(t, int64(0), RunExpirySweep(context.Background(), s, time.Second, now, zap.New(core)))
	assert.Equal(t, 1, logs.FilterMessage("sweep failed").Len())
}

func TestStartExpirySweepRejectsBadSchedule(t *testing.T) {
	_, err := StartExpirySweep(ExpirySweepConfig{Schedule: "not a cron"}, &fakeSweeper{}, zap.NewNop())
	assert.NotEqual(t, nil, err)
}

func TestStartExpirySweepDefaults(t *testing.T) {
	c, err := StartExpirySweep(ExpirySweepConfig{}, &fakeSweeper{}, zap.NewNop())
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(c.Entries()))
	<-c.Stop().Done()
}
