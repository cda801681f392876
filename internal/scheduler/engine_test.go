package scheduler

import (
	"testing"
	"time"
)

func TestEngineEmitsInTriggerOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(ReminderEvent{ID: "later", TaskID: "t1", TriggerAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(ReminderEvent{ID: "sooner", TaskID: "t1", TriggerAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitEvent(t, engine.C(), time.Second)
	second := waitEvent(t, engine.C(), time.Second)
	if first.ID != "sooner" || second.ID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.ID, second.ID)
	}
}

func TestEngineCancelTaskDropsAllItsEvents(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	for _, label := range []string{"1h", "15m", "due"} {
		if err := engine.Schedule(ReminderEvent{
			ID:        "cancel-me-" + label,
			TaskID:    "cancel-me",
			Label:     label,
			TriggerAt: now.Add(40 * time.Millisecond),
		}); err != nil {
			t.Fatalf("schedule %s: %v", label, err)
		}
	}
	if err := engine.Schedule(ReminderEvent{ID: "keep", TaskID: "other", TriggerAt: now.Add(40 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule keep: %v", err)
	}

	if removed := engine.CancelTask("cancel-me"); removed != 3 {
		t.Fatalf("cancel removed %d events, want 3", removed)
	}

	ev := waitEvent(t, engine.C(), time.Second)
	if ev.ID != "keep" {
		t.Fatalf("expected only surviving event, got %s", ev.ID)
	}
	if engine.Pending() != 0 {
		t.Fatalf("expected empty queue, %d pending", engine.Pending())
	}
}

func TestEngineCancelAll(t *testing.T) {
	engine := NewEngine(4)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	for i := 0; i < 5; i++ {
		if err := engine.Schedule(ReminderEvent{ID: "evt", TaskID: "t", TriggerAt: now.Add(time.Hour)}); err != nil {
			t.Fatalf("schedule: %v", err)
		}
	}
	engine.CancelAll()
	if engine.Pending() != 0 {
		t.Fatalf("expected empty queue after CancelAll, %d pending", engine.Pending())
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	now := time.Now().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(ReminderEvent{ID: "evt", TaskID: "t", TriggerAt: now}); err != nil {
			t.Fatalf("schedule event: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped events > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidatesTriggerTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(ReminderEvent{ID: "bad"}); err != ErrInvalidTriggerTime {
		t.Fatalf("expected ErrInvalidTriggerTime, got %v", err)
	}
}

func waitEvent(t *testing.T, ch <-chan ReminderEvent, timeout time.Duration) ReminderEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for event")
		return ReminderEvent{}
	}
}
