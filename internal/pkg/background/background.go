// Package background runs fire-and-forget continuations for webhook
// pipelines. The HTTP response to a webhook is sent before the outbound
// call chain finishes, so the remaining work is handed to a Runner that
// tracks it, logs its failures, and can be drained on shutdown.
package background

import (
	"context"
	"sync"
	"time"

	"github.com/ignite/dixa-voyado-bridge/internal/pkg/logger"
)

// Runner tracks detached tasks. The zero value is not usable; use New.
type Runner struct {
	wg sync.WaitGroup
}

// New creates a Runner.
func New() *Runner {
	return &Runner{}
}

// Go launches fn on its own goroutine. The task's error is logged, never
// returned: by the time it runs, the HTTP caller is gone. The context is
// detached from the originating request so the task survives the
// response being written.
func (r *Runner) Go(name string, fn func(ctx context.Context) error) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("background task panicked", "task", name, "panic", rec)
			}
		}()
		if err := fn(context.Background()); err != nil {
			logger.Error("background task failed", "task", name, "error", err.Error())
		}
	}()
}

// Drain waits for in-flight tasks to finish, up to the given timeout.
// Returns true if everything completed. An abrupt process kill can still
// drop a half-finished task; a clean SIGTERM will not.
func (r *Runner) Drain(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}
