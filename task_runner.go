package raidsync

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// TaskRunner bounds the number of concurrently in-flight goroutines spawned
// via Go, joining them with Wait. Used by the sync driver to fan the
// per-disk open/stat/read/hash step out across disks within one block
// position, while the RAID encode and parity write that follow remain
// serialized (a plain Wait() barrier).
type TaskRunner struct {
	eg          *errgroup.Group
	limiterChan chan struct{}
	ctx         context.Context
}

// NewTaskRunner creates a TaskRunner capped at maxThreadCount concurrent
// goroutines. maxThreadCount <= 0 caps it at 1.
func NewTaskRunner(ctx context.Context, maxThreadCount int) *TaskRunner {
	eg, ctx2 := errgroup.WithContext(ctx)
	cap := maxThreadCount
	if cap <= 0 {
		cap = 1
	}
	return &TaskRunner{
		eg:          eg,
		limiterChan: make(chan struct{}, cap),
		ctx:         ctx2,
	}
}

// GetContext returns the errgroup-derived context, cancelled on first error.
func (tr *TaskRunner) GetContext() context.Context {
	return tr.ctx
}

// Go schedules task to run, blocking the caller only if the concurrency cap
// is already occupied.
func (tr *TaskRunner) Go(task func() error) {
	tr.limiterChan <- struct{}{}
	tr.eg.Go(func() error {
		defer func() { <-tr.limiterChan }()
		return task()
	})
}

// Wait blocks until every scheduled task has returned, propagating the first
// non-nil error (if any).
func (tr *TaskRunner) Wait() error {
	return tr.eg.Wait()
}
