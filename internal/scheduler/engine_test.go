package scheduler

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestEngineEmitsInTriggerOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	if err := engine.Schedule(AlertEvent{ID: "later", Kind: AlertDocument, TriggerAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(AlertEvent{ID: "sooner", Kind: AlertCleaning, TriggerAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitEvent(t, engine.C(), time.Second)
	second := waitEvent(t, engine.C(), time.Second)
	if first.ID != "sooner" || second.ID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.ID, second.ID)
	}
}

func TestEngineEmitsPastEventsImmediately(t *testing.T) {
	engine := NewEngine(2)
	engine.Start()
	defer engine.Stop()

	if err := engine.Schedule(AlertEvent{ID: "past", TriggerAt: time.Now().Add(-time.Hour)}); err != nil {
		t.Fatalf("schedule past: %v", err)
	}
	if ev := waitEvent(t, engine.C(), time.Second); ev.ID != "past" {
		t.Fatalf("unexpected event: %s", ev.ID)
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(AlertEvent{
			ID:        "evt",
			TriggerAt: now,
		}); err != nil {
			t.Fatalf("schedule event: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped events > 0, got %d", engine.Dropped())
	}
}

func TestEngineReplaceDiscardsPending(t *testing.T) {
	engine := NewEngine(4)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(AlertEvent{ID: "stale", TriggerAt: now.Add(30 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule stale: %v", err)
	}
	err := engine.Replace([]AlertEvent{
		{ID: "fresh", TriggerAt: now.Add(40 * time.Millisecond)},
		{ID: "zero"},
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if engine.Pending() != 1 {
		t.Fatalf("expected 1 pending event, got %d", engine.Pending())
	}
	if ev := waitEvent(t, engine.C(), time.Second); ev.ID != "fresh" {
		t.Fatalf("unexpected event after replace: %s", ev.ID)
	}
	select {
	case ev := <-engine.C():
		t.Fatalf("unexpected extra event: %s", ev.ID)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestScheduleValidatesTriggerTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(AlertEvent{ID: "bad"}); err != ErrInvalidTriggerTime {
		t.Fatalf("expected ErrInvalidTriggerTime, got %v", err)
	}
}

func TestScheduleAfterStop(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	engine.Stop()
	engine.Stop()

	err := engine.Schedule(AlertEvent{ID: "late", TriggerAt: time.Now()})
	if !errors.Is(err, ErrEngineStopped) {
		t.Fatalf("expected ErrEngineStopped, got %v", err)
	}
	if _, ok := <-engine.C(); ok {
		t.Fatal("expected closed channel after stop")
	}
}

func TestStopWithoutStartClosesChannel(t *testing.T) {
	engine := NewEngine(1)
	engine.Stop()
	engine.Stop()
	engine.Start()

	select {
	case _, ok := <-engine.C():
		if ok {
			t.Fatal("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("receive on C blocked after Stop")
	}
	if err := engine.Replace(nil); !errors.Is(err, ErrEngineStopped) {
		t.Fatalf("expected ErrEngineStopped, got %v", err)
	}
}

func TestEngineUsesInjectedClock(t *testing.T) {
	pinned := time.Date(2026, 2, 9, 9, 30, 0, 0, time.UTC)
	engine := NewEngine(2, WithClock(func() time.Time { return pinned }))
	engine.Start()
	defer engine.Stop()

	// Neither trigger time is near the wall clock; only the pinned clock decides.
	err := engine.Replace([]AlertEvent{
		{ID: "due", TriggerAt: pinned.Add(-time.Minute)},
		{ID: "future", TriggerAt: pinned.Add(time.Hour)},
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if ev := waitEvent(t, engine.C(), time.Second); ev.ID != "due" {
		t.Fatalf("unexpected event: %s", ev.ID)
	}
	select {
	case ev := <-engine.C():
		t.Fatalf("event %s fired before the pinned clock reached it", ev.ID)
	case <-time.After(80 * time.Millisecond):
	}
	if engine.Pending() != 1 {
		t.Fatalf("expected 1 pending event, got %d", engine.Pending())
	}
}

func waitEvent(t *testing.T, ch <-chan AlertEvent, timeout time.Duration) AlertEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for event")
		return AlertEvent{}
	}
}
