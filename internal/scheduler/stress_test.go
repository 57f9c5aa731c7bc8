package scheduler

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// Refresh cycles replace the whole plan while the loop is firing due events.
func TestEngineStressConcurrentReplace(t *testing.T) {
	engine := NewEngine(64)
	engine.Start()
	defer engine.Stop()

	const workers = 6
	const rounds = 150

	var drained sync.WaitGroup
	drained.Add(1)
	stopDrain := make(chan struct{})
	go func() {
		defer drained.Done()
		for {
			select {
			case <-stopDrain:
				return
			case _, ok := <-engine.C():
				if !ok {
					return
				}
			}
		}
	}()

	now := time.Now().UTC()
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		w := w
		go func() {
			defer wg.Done()
			for r := 0; r < rounds; r++ {
				plan := make([]AlertEvent, 0, 8)
				for i := 0; i < 8; i++ {
					at := now.Add(time.Duration(i-4) * time.Millisecond)
					if i%2 == 0 {
						at = now.Add(time.Hour)
					}
					plan = append(plan, AlertEvent{
						ID:        fmt.Sprintf("w%d-r%d-%d", w, r, i),
						Kind:      AlertDocument,
						Subject:   fmt.Sprintf("doc-%d", i),
						Status:    "Expiring Soon",
						TriggerAt: at,
					})
				}
				if err := engine.Replace(plan); err != nil {
					t.Errorf("replace failed: %v", err)
					return
				}
				_ = engine.Pending()
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for concurrent replace workers")
	}

	final := []AlertEvent{
		{ID: "a", TriggerAt: now.Add(time.Hour)},
		{ID: "b", TriggerAt: now.Add(2 * time.Hour)},
		{ID: "c"},
	}
	if err := engine.Replace(final); err != nil {
		t.Fatalf("final replace: %v", err)
	}
	if got := engine.Pending(); got != 2 {
		t.Fatalf("expected final plan to leave 2 pending events, got %d", got)
	}

	close(stopDrain)
	drained.Wait()
}
