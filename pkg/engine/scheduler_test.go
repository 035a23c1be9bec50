package engine

import (
	"errors"
	"strings"
	"testing"
)

func newTestScheduler(update UpdateFunc, maxDelta float64) (*FrameScheduler, *fakeFrameSource, *InputRouter) {
	log, _ := newTestLogger()
	source := &fakeFrameSource{}
	router := NewInputRouter(zeroOrigin, 0, log)
	return NewFrameScheduler(source, router, update, maxDelta, log), source, router
}

func TestSchedulerOneTickPerCallback(t *testing.T) {
	ticks := 0
	s, source, _ := newTestScheduler(func(FrameTick, []PointerEvent) error {
		ticks++
		return nil
	}, 0)

	s.Start()
	if s.State() != StateArmed {
		t.Fatalf("state = %s after Start, want armed", s.State())
	}

	source.fire(100)
	if ticks != 1 {
		t.Errorf("ticks = %d after one callback, want 1", ticks)
	}
	if s.State() != StateArmed {
		t.Errorf("state = %s after tick, want armed", s.State())
	}
	if source.pending == nil {
		t.Fatal("scheduler did not re-arm after the tick")
	}
	if source.doubleArm {
		t.Error("scheduler armed more than one callback at a time")
	}

	source.fire(116)
	if ticks != 2 {
		t.Errorf("ticks = %d after two callbacks, want 2", ticks)
	}
}

func TestSchedulerDeltaClamping(t *testing.T) {
	var deltas []float64
	s, source, _ := newTestScheduler(func(tick FrameTick, _ []PointerEvent) error {
		deltas = append(deltas, tick.Delta)
		return nil
	}, 0.1)

	s.Start()
	source.fire(1000) // first tick has no predecessor
	source.fire(1050) // 50ms
	source.fire(9000) // huge gap, clamped to maxDelta
	source.fire(8000) // clock went backwards, clamped to zero

	want := []float64{0, 0.05, 0.1, 0}
	if len(deltas) != len(want) {
		t.Fatalf("got %d ticks, want %d", len(deltas), len(want))
	}
	for i := range want {
		if deltas[i] != want[i] {
			t.Errorf("delta[%d] = %v, want %v", i, deltas[i], want[i])
		}
	}
}

func TestSchedulerStopInsideClosure(t *testing.T) {
	ticks := 0
	var s *FrameScheduler
	var source *fakeFrameSource
	s, source, _ = newTestScheduler(func(FrameTick, []PointerEvent) error {
		ticks++
		s.Stop()
		return nil
	}, 0)

	s.Start()
	source.fire(100)

	if s.State() != StateStopped {
		t.Errorf("state = %s after in-closure Stop, want stopped", s.State())
	}
	if source.pending != nil {
		t.Error("scheduler re-armed after Stop")
	}
	if source.fire(200) {
		t.Error("a callback fired after Stop")
	}
	if ticks != 1 {
		t.Errorf("ticks = %d, want 1", ticks)
	}
}

func TestSchedulerStopBeforeFirstTick(t *testing.T) {
	ticks := 0
	s, source, _ := newTestScheduler(func(FrameTick, []PointerEvent) error {
		ticks++
		return nil
	}, 0)

	s.Start()
	s.Stop()
	// The already-armed callback still arrives, but the closure must not run.
	source.fire(100)

	if ticks != 0 {
		t.Errorf("ticks = %d after Stop before first tick, want 0", ticks)
	}
	if s.State() != StateStopped {
		t.Errorf("state = %s, want stopped", s.State())
	}
}

func TestSchedulerStopIdempotent(t *testing.T) {
	s, _, _ := newTestScheduler(func(FrameTick, []PointerEvent) error { return nil }, 0)

	s.Stop()
	if s.State() != StateStopped {
		t.Fatalf("state = %s after Stop from idle, want stopped", s.State())
	}
	s.Stop()
	if s.State() != StateStopped {
		t.Errorf("state = %s after second Stop, want stopped", s.State())
	}

	// A stopped scheduler ignores Start.
	s.Start()
	if s.State() != StateStopped {
		t.Errorf("state = %s after Start on stopped scheduler, want stopped", s.State())
	}
}

func TestSchedulerStartOnlyFromIdle(t *testing.T) {
	s, source, _ := newTestScheduler(func(FrameTick, []PointerEvent) error { return nil }, 0)

	s.Start()
	s.Start()
	if source.doubleArm {
		t.Error("second Start armed a second callback")
	}
}

func TestSchedulerDeliversDrainedEvents(t *testing.T) {
	var seen [][]PointerEvent
	s, source, router := newTestScheduler(func(_ FrameTick, events []PointerEvent) error {
		seen = append(seen, events)
		return nil
	}, 0)

	router.MouseDown(5, 5)
	router.MouseUp(6, 6)

	s.Start()
	source.fire(100)
	source.fire(116)

	if len(seen) != 2 {
		t.Fatalf("got %d ticks, want 2", len(seen))
	}
	if len(seen[0]) != 2 {
		t.Errorf("first tick saw %d events, want 2", len(seen[0]))
	}
	if len(seen[1]) != 0 {
		t.Errorf("second tick saw %d events, want 0 after drain", len(seen[1]))
	}
}

func TestSchedulerUpdateErrorKeepsRunning(t *testing.T) {
	log, buf := newTestLogger()
	source := &fakeFrameSource{}
	router := NewInputRouter(zeroOrigin, 0, log)
	ticks := 0
	s := NewFrameScheduler(source, router, func(FrameTick, []PointerEvent) error {
		ticks++
		return errors.New("scene draw failed")
	}, 0, log)

	s.Start()
	source.fire(100)

	if s.State() != StateArmed {
		t.Errorf("state = %s after update error, want armed", s.State())
	}
	if !strings.Contains(buf.String(), "scene draw failed") {
		t.Error("update error was not logged")
	}

	source.fire(116)
	if ticks != 2 {
		t.Errorf("ticks = %d, want the loop to continue past the error", ticks)
	}
}
