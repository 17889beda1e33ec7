// Package progress provides a concurrency-safe completion tracker that
// workers use to report per-phase progress. It logs structured progress
// lines at a fixed stride and a summary when the phase drains.
package progress

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// logStride controls how often an interim progress line is emitted.
const logStride = 25

// Tracker counts task completions and failures for one pipeline phase. It
// is safe for concurrent use by every worker in the phase's pool.
type Tracker struct {
	phase     string
	total     int64
	succeeded atomic.Int64
	failed    atomic.Int64
	logger    *zap.Logger
}

// NewTracker starts tracking a phase of total tasks.
func NewTracker(phase string, total int, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{
		phase:  phase,
		total:  int64(total),
		logger: logger,
	}
}

// Success records one completed task.
func (t *Tracker) Success() {
	done := t.succeeded.Add(1) + t.failed.Load()
	t.maybeLog(done)
}

// Failure records one failed task with its offending identifier. The
// failure never propagates; the task's contribution is simply empty.
func (t *Tracker) Failure(id string, err error) {
	t.logger.Warn("task failed",
		zap.String("phase", t.phase),
		zap.String("id", id),
		zap.Error(err),
	)
	done := t.failed.Add(1) + t.succeeded.Load()
	t.maybeLog(done)
}

// Summary logs final counts for the phase.
func (t *Tracker) Summary() {
	t.logger.Info("phase complete",
		zap.String("phase", t.phase),
		zap.Int64("total", t.total),
		zap.Int64("succeeded", t.succeeded.Load()),
		zap.Int64("failed", t.failed.Load()),
	)
}

// Failed returns the number of failed tasks so far.
func (t *Tracker) Failed() int64 {
	return t.failed.Load()
}

func (t *Tracker) maybeLog(done int64) {
	if done == t.total || done%logStride == 0 {
		t.logger.Info("progress",
			zap.String("phase", t.phase),
			zap.Int64("done", done),
			zap.Int64("total", t.total),
		)
	}
}
