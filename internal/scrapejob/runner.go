package scrapejob

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// RunFunc executes one job by id.
type RunFunc func(ctx context.Context, jobID int64)

// Runner is a single-worker task queue: job ids go in, runs happen one at a
// time in the background. Admission control already guarantees at most one
// active job, so one worker is all the parallelism there is to have.
type Runner struct {
	jobs chan int64
	log  zerolog.Logger
	wg   sync.WaitGroup
}

func NewRunner(buffer int, log zerolog.Logger) *Runner {
	if buffer < 1 {
		buffer = 1
	}
	return &Runner{
		jobs: make(chan int64, buffer),
		log:  log.With().Str("component", "job_runner").Logger(),
	}
}

// Start launches the worker goroutine; it drains the queue until ctx is
// cancelled.
func (r *Runner) Start(ctx context.Context, run RunFunc) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case id := <-r.jobs:
				run(ctx, id)
			}
		}
	}()
}

// Enqueue hands a job to the worker without blocking; false means the queue
// is full.
func (r *Runner) Enqueue(id int64) bool {
	select {
	case r.jobs <- id:
		return true
	default:
		r.log.Error().Int64("job_id", id).Msg("job queue full")
		return false
	}
}

// Wait blocks until the worker goroutine has exited.
func (r *Runner) Wait() {
	r.wg.Wait()
}
