package perf

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestTimerLogsSlowOperations(t *testing.T) {
	logger, buf := bufferLogger()

	timer := NewTimer("config.load", logger, 0)
	time.Sleep(time.Millisecond)
	elapsed := timer.Stop()

	assert.Positive(t, elapsed)
	assert.Contains(t, buf.String(), "config.load_slow")
}

func TestTimerWithoutLogger(t *testing.T) {
	assert.NotPanics(t, func() { NewTimer("quiet", nil, time.Second).Stop() })
}

func TestMeasure(t *testing.T) {
	logger, buf := bufferLogger()
	func() {
		defer Measure("render", logger, time.Hour)()
	}()
	assert.Contains(t, buf.String(), "msg=render")
	assert.NotContains(t, buf.String(), "render_slow")
}

func TestOpCounter(t *testing.T) {
	c := NewOpCounter("keys")

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				c.Inc()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, "keys", c.Name())
	assert.Equal(t, int64(1000), c.Value())
	c.Reset()
	assert.Zero(t, c.Value())
}

func TestRecorderStats(t *testing.T) {
	logger, buf := bufferLogger()
	r := NewRecorder("tui.view", logger, 10*time.Millisecond)

	empty := r.Stats()
	assert.Zero(t, empty.MinDuration)
	assert.Zero(t, empty.AvgDuration())
	r.LogStats(slog.LevelInfo)
	assert.Empty(t, buf.String())

	r.Record(2 * time.Millisecond)
	r.Record(20 * time.Millisecond)
	r.Record(8 * time.Millisecond)

	stats := r.Stats()
	assert.Equal(t, int64(3), stats.Count)
	assert.Equal(t, 2*time.Millisecond, stats.MinDuration)
	assert.Equal(t, 20*time.Millisecond, stats.MaxDuration)
	assert.Equal(t, 10*time.Millisecond, stats.AvgDuration())
	assert.Equal(t, int64(1), stats.SlowOps)

	r.LogStats(slog.LevelInfo)
	assert.Contains(t, buf.String(), "tui.view_stats")
	assert.Contains(t, buf.String(), "count=3")
}

func TestRecorderTime(t *testing.T) {
	r := NewRecorder("op", nil, time.Hour)
	called := false
	r.Time(func() { called = true })

	assert.True(t, called)
	assert.Equal(t, int64(1), r.Stats().Count)
	assert.NotPanics(t, func() { r.LogStats(slog.LevelDebug) })
}
