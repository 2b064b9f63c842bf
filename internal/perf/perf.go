// Package perf measures how long picker operations take and logs the slow
// ones.
package perf

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const noMin = 1<<63 - 1

// Timer measures one operation from creation to Stop.
type Timer struct {
	name      string
	logger    *slog.Logger
	start     time.Time
	threshold time.Duration
}

// NewTimer starts a timer. A nil logger makes Stop silent.
func NewTimer(name string, logger *slog.Logger, threshold time.Duration) *Timer {
	return &Timer{
		name:      name,
		logger:    logger,
		start:     time.Now(),
		threshold: threshold,
	}
}

// Stop returns the elapsed time and logs it: at Debug normally, at Warn when
// it exceeds the threshold.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	if t.logger == nil {
		return elapsed
	}
	if elapsed > t.threshold {
		t.logger.Warn(t.name+"_slow", "duration", elapsed, "threshold", t.threshold)
	} else {
		t.logger.Debug(t.name, "duration", elapsed)
	}
	return elapsed
}

// Measure starts a timer and returns its Stop, for use with defer.
func Measure(name string, logger *slog.Logger, threshold time.Duration) func() {
	t := NewTimer(name, logger, threshold)
	return func() { t.Stop() }
}

// OpCounter counts events such as key presses or config reloads.
type OpCounter struct {
	name string
	n    atomic.Int64
}

func NewOpCounter(name string) *OpCounter {
	return &OpCounter{name: name}
}

func (c *OpCounter) Name() string { return c.name }
func (c *OpCounter) Inc()         { c.n.Add(1) }
func (c *OpCounter) Value() int64 { return c.n.Load() }
func (c *OpCounter) Reset()       { c.n.Store(0) }

// Stats summarises the durations a Recorder has seen.
type Stats struct {
	Name          string
	Count         int64
	TotalDuration time.Duration
	MinDuration   time.Duration
	MaxDuration   time.Duration
	SlowOps       int64
}

// AvgDuration is zero before anything was recorded.
func (s Stats) AvgDuration() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.Count)
}

// Recorder aggregates durations of a repeated operation, such as rendering.
// It is safe for concurrent use.
type Recorder struct {
	name      string
	logger    *slog.Logger
	threshold time.Duration

	count atomic.Int64
	total atomic.Int64
	slow  atomic.Int64
	min   atomic.Int64 // noMin until the first Record
	max   atomic.Int64
}

func NewRecorder(name string, logger *slog.Logger, threshold time.Duration) *Recorder {
	r := &Recorder{name: name, logger: logger, threshold: threshold}
	r.min.Store(noMin)
	return r
}

// Time records the duration of fn.
func (r *Recorder) Time(fn func()) {
	start := time.Now()
	fn()
	r.Record(time.Since(start))
}

// Record adds one observation. Durations at or over the threshold count as
// slow.
func (r *Recorder) Record(elapsed time.Duration) {
	ns := int64(elapsed)
	r.count.Add(1)
	r.total.Add(ns)
	if elapsed >= r.threshold {
		r.slow.Add(1)
	}
	for cur := r.min.Load(); ns < cur && !r.min.CompareAndSwap(cur, ns); cur = r.min.Load() {
	}
	for cur := r.max.Load(); ns > cur && !r.max.CompareAndSwap(cur, ns); cur = r.max.Load() {
	}
}

func (r *Recorder) Stats() Stats {
	lo := r.min.Load()
	if lo == noMin {
		lo = 0
	}
	return Stats{
		Name:          r.name,
		Count:         r.count.Load(),
		TotalDuration: time.Duration(r.total.Load()),
		MinDuration:   time.Duration(lo),
		MaxDuration:   time.Duration(r.max.Load()),
		SlowOps:       r.slow.Load(),
	}
}

// LogStats writes the summary at level. Nothing is logged before the first
// Record or without a logger.
func (r *Recorder) LogStats(level slog.Level) {
	st := r.Stats()
	if st.Count == 0 || r.logger == nil {
		return
	}
	r.logger.Log(context.Background(), level, r.name+"_stats",
		"count", st.Count,
		"avg_ms", st.AvgDuration().Milliseconds(),
		"min_ms", st.MinDuration.Milliseconds(),
		"max_ms", st.MaxDuration.Milliseconds(),
		"slow_ops", st.SlowOps,
	)
}
