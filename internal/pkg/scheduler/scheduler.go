// Package scheduler runs named background jobs on cron schedules.
//
// A job never overlaps with itself: when a tick fires while the previous run
// of the same job is still going, the tick is skipped and logged.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/atomic"

	"github.com/shandysiswandi/blipzo-admin/internal/pkg/stacktrace"
)

// ErrEmptyName is returned when a job is registered without a name.
var ErrEmptyName = errors.New("scheduler: job name is required")

// Job is the unit of work executed on each tick.
type Job func(ctx context.Context) error

// Scheduler wraps a cron runner with per-job overlap guards.
type Scheduler struct {
	cron    *cron.Cron
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration

	mu   sync.Mutex
	jobs map[string]cron.EntryID
}

// New creates a scheduler using UTC schedules. timeout bounds each job run;
// zero means no bound.
func New(timeout time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		ctx:     ctx,
		cancel:  cancel,
		timeout: timeout,
		jobs:    map[string]cron.EntryID{},
	}
}

// Register adds job under name with a cron spec such as "@every 1h" or "0 3 * * *".
func (s *Scheduler) Register(spec, name string, job Job) error {
	if name == "" {
		return ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[name]; ok {
		return fmt.Errorf("scheduler: job %q already registered", name)
	}

	id, err := s.cron.AddFunc(spec, s.wrap(name, job))
	if err != nil {
		return fmt.Errorf("scheduler: job %q: %w", name, err)
	}
	s.jobs[name] = id

	return nil
}

func (s *Scheduler) wrap(name string, job Job) func() {
	running := atomic.NewBool(false)

	return func() {
		if !running.CompareAndSwap(false, true) {
			slog.WarnContext(s.ctx, "scheduler: skip overlapping run", "job", name)
			return
		}
		defer running.Store(false)

		defer func() {
			if rec := recover(); rec != nil {
				slog.ErrorContext(s.ctx, "scheduler: job panic", "job", name, "panic", rec,
					"stack", stacktrace.InternalPaths(debug.Stack()))
			}
		}()

		ctx := s.ctx
		if s.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}

		start := time.Now()
		if err := job(ctx); err != nil {
			slog.ErrorContext(ctx, "scheduler: job failed", "job", name, "error", err)
			return
		}
		slog.DebugContext(ctx, "scheduler: job done", "job", name, "took", time.Since(start).String())
	}
}

// Start begins dispatching jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels running jobs and waits for them to return or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.cancel()
	done := s.cron.Stop()

	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
