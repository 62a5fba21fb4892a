package app

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Metrics tracks frame and input counts for one session.
type Metrics struct {
	frameCount   atomic.Uint64
	frameTotalNs atomic.Int64
	frameMaxNs   atomic.Int64
	failedFrames atomic.Uint64

	eventCount   atomic.Uint64
	ignoredCount atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordFrame records a flushed frame and its duration.
func (m *Metrics) RecordFrame(duration time.Duration) {
	ns := duration.Nanoseconds()
	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)

	for {
		old := m.frameMaxNs.Load()
		if ns <= old || m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordFailedFrame records a frame that ended with an error.
func (m *Metrics) RecordFailedFrame() {
	m.failedFrames.Add(1)
}

// RecordEvent records a handled input event. Ignored events are
// counted separately as well.
func (m *Metrics) RecordEvent(ignored bool) {
	m.eventCount.Add(1)
	if ignored {
		m.ignoredCount.Add(1)
	}
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	Frames       uint64
	FailedFrames uint64
	FrameAvg     time.Duration
	FrameMax     time.Duration
	Events       uint64
	Ignored      uint64
	Uptime       time.Duration
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	frames := m.frameCount.Load()
	var avg time.Duration
	if frames > 0 {
		avg = time.Duration(m.frameTotalNs.Load() / int64(frames))
	}

	return MetricsSnapshot{
		Frames:       frames,
		FailedFrames: m.failedFrames.Load(),
		FrameAvg:     avg,
		FrameMax:     time.Duration(m.frameMaxNs.Load()),
		Events:       m.eventCount.Load(),
		Ignored:      m.ignoredCount.Load(),
		Uptime:       time.Since(m.startTime),
	}
}

// String formats the snapshot for a log line.
func (s MetricsSnapshot) String() string {
	return fmt.Sprintf("frames=%d failed=%d avg=%s max=%s events=%d ignored=%d uptime=%s",
		s.Frames, s.FailedFrames, s.FrameAvg, s.FrameMax, s.Events, s.Ignored, s.Uptime.Round(time.Millisecond))
}
