package job

import (
	"context"
	"errors"
	"sync"
)

// ErrQueueFull reports that a task could not be accepted because the submit
// queue is at capacity. Callers surface this as backpressure instead of
// spawning unbounded goroutines.
var ErrQueueFull = errors.New("job queue full")

// Runner executes submitted tasks on a fixed pool of workers fed by a
// bounded queue.
type Runner struct {
	queue  chan func(context.Context)
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewRunner(workers, queueSize int) *Runner {
	if workers < 1 {
		workers = 1
	}

	if queueSize < 1 {
		queueSize = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &Runner{
		queue:  make(chan func(context.Context), queueSize),
		cancel: cancel,
	}

	for i := 0; i < workers; i++ {
		r.wg.Add(1)

		go r.work(ctx)
	}

	return r
}

// Submit enqueues task without blocking. A full queue returns ErrQueueFull.
func (r *Runner) Submit(task func(context.Context)) error {
	select {
	case r.queue <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop signals workers to exit after their current task and waits for them.
// Tasks still queued but not started are dropped.
func (r *Runner) Stop() {
	r.cancel()
	r.wg.Wait()
}

func (r *Runner) work(ctx context.Context) {
	defer r.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case task := <-r.queue:
			task(ctx)
		}
	}
}
