package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunner_NeverOverlapsSameJob(t *testing.T) {
	var running int32
	var maxRunning int32
	var runs int32

	slow := Job{
		Name:     "slow",
		Interval: 10 * time.Millisecond,
		Run: func(ctx context.Context) error {
			now := atomic.AddInt32(&running, 1)
			if now > atomic.LoadInt32(&maxRunning) {
				atomic.StoreInt32(&maxRunning, now)
			}
			time.Sleep(35 * time.Millisecond)
			atomic.AddInt32(&running, -1)
			atomic.AddInt32(&runs, 1)
			return nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := NewRunner(nil)
	r.Start(ctx, slow)

	time.Sleep(150 * time.Millisecond)
	cancel()
	r.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&maxRunning), "a slow run must suppress further ticks")
	assert.GreaterOrEqual(t, atomic.LoadInt32(&runs), int32(2))
	// ~15 ticks fired, most skipped while a run was in flight
	assert.Less(t, atomic.LoadInt32(&runs), int32(8))
}

func TestRunner_RunsJobsIndependently(t *testing.T) {
	var a, b int32

	ctx, cancel := context.WithCancel(context.Background())
	r := NewRunner(nil)
	r.Start(ctx,
		Job{Name: "a", Interval: 10 * time.Millisecond, Run: func(ctx context.Context) error {
			atomic.AddInt32(&a, 1)
			return nil
		}},
		Job{Name: "b", Interval: 10 * time.Millisecond, Run: func(ctx context.Context) error {
			atomic.AddInt32(&b, 1)
			return nil
		}},
	)

	time.Sleep(100 * time.Millisecond)
	cancel()
	r.Wait()

	assert.GreaterOrEqual(t, atomic.LoadInt32(&a), int32(3))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&b), int32(3))
}
