package app

import (
	"strings"
	"testing"
	"time"
)

func TestNewMetrics(t *testing.T) {
	snapshot := NewMetrics().Snapshot()

	if snapshot.Frames != 0 || snapshot.Events != 0 {
		t.Errorf("expected empty metrics, got %+v", snapshot)
	}
	if snapshot.FrameAvg != 0 {
		t.Errorf("expected zero average without frames, got %s", snapshot.FrameAvg)
	}
}

func TestMetrics_RecordFrame(t *testing.T) {
	m := NewMetrics()

	m.RecordFrame(10 * time.Millisecond)
	m.RecordFrame(20 * time.Millisecond)
	m.RecordFrame(30 * time.Millisecond)
	m.RecordFailedFrame()

	snapshot := m.Snapshot()
	if snapshot.Frames != 3 {
		t.Errorf("expected 3 frames, got %d", snapshot.Frames)
	}
	if snapshot.FrameAvg != 20*time.Millisecond {
		t.Errorf("expected avg 20ms, got %s", snapshot.FrameAvg)
	}
	if snapshot.FrameMax != 30*time.Millisecond {
		t.Errorf("expected max 30ms, got %s", snapshot.FrameMax)
	}
	if snapshot.FailedFrames != 1 {
		t.Errorf("expected 1 failed frame, got %d", snapshot.FailedFrames)
	}
}

func TestMetrics_RecordEvent(t *testing.T) {
	m := NewMetrics()

	m.RecordEvent(false)
	m.RecordEvent(true)
	m.RecordEvent(false)

	snapshot := m.Snapshot()
	if snapshot.Events != 3 {
		t.Errorf("expected 3 events, got %d", snapshot.Events)
	}
	if snapshot.Ignored != 1 {
		t.Errorf("expected 1 ignored event, got %d", snapshot.Ignored)
	}
}

func TestMetricsSnapshot_String(t *testing.T) {
	m := NewMetrics()
	m.RecordFrame(time.Millisecond)
	m.RecordEvent(false)

	s := m.Snapshot().String()
	for _, want := range []string{"frames=1", "failed=0", "events=1", "ignored=0", "max=1ms"} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %q in %q", want, s)
		}
	}
}
