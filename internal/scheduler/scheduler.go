package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is a recurring batch task. Run receives a context cancelled on
// shutdown and should check it between units of work.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Runner ticks each job on its own interval. A tick fires only when the
// previous run of the same job has finished; an overdue run makes the
// runner skip ticks instead of stacking overlapping executions.
type Runner struct {
	logger *zap.Logger
	wg     sync.WaitGroup
}

func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger.Named("scheduler")}
}

func (r *Runner) Start(ctx context.Context, jobs ...Job) {
	for _, job := range jobs {
		r.wg.Add(1)
		go func(job Job) {
			defer r.wg.Done()
			r.loop(ctx, job)
		}(job)
	}
}

// Wait blocks until every job loop has exited after ctx cancellation.
// In-flight runs are waited out, not interrupted mid-user.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) loop(ctx context.Context, job Job) {
	if job.Interval <= 0 {
		job.Interval = time.Minute
	}

	log := r.logger.With(zap.String("job", job.Name))
	log.Info("job scheduled", zap.Duration("interval", job.Interval))

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	var guard sync.Mutex
	var inFlight sync.WaitGroup

	for {
		select {
		case <-ctx.Done():
			inFlight.Wait()
			log.Info("job loop stopped")
			return
		case <-ticker.C:
			if !guard.TryLock() {
				log.Warn("previous run still in flight, skipping tick")
				continue
			}

			inFlight.Add(1)
			go func() {
				defer inFlight.Done()
				defer guard.Unlock()

				started := time.Now()
				if err := job.Run(ctx); err != nil {
					log.Error("job run failed", zap.Duration("elapsed", time.Since(started)), zap.Error(err))
					return
				}
				log.Info("job run finished", zap.Duration("elapsed", time.Since(started)))
			}()
		}
	}
}
