package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidTriggerTime = errors.New("scheduler: invalid trigger time")
	ErrEngineStopped      = errors.New("scheduler: engine stopped")
)

type AlertKind string

const (
	AlertDocument     AlertKind = "document"
	AlertCleaning     AlertKind = "cleaning"
	AlertSafeguarding AlertKind = "safeguarding"
)

// AlertEvent marks the instant a tracked item moves into Status.
type AlertEvent struct {
	ID        string
	Kind      AlertKind
	Subject   string
	Status    string
	TriggerAt time.Time
}

type alertQueue []AlertEvent

func (q alertQueue) Len() int { return len(q) }

func (q alertQueue) Less(i, j int) bool {
	if q[i].TriggerAt.Equal(q[j].TriggerAt) {
		return q[i].ID < q[j].ID
	}
	return q[i].TriggerAt.Before(q[j].TriggerAt)
}

func (q alertQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *alertQueue) Push(x any) {
	*q = append(*q, x.(AlertEvent))
}

func (q *alertQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[0 : n-1]
	return item
}

// Engine delivers alert events on C once their trigger time passes. Delivery
// never blocks: when the buffer is full the event is counted in Dropped.
type Engine struct {
	mu      sync.Mutex
	queue   alertQueue
	out     chan AlertEvent
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	now     func() time.Time
	started bool
	stopped bool
	dropped uint64
}

type Option func(*Engine)

// WithClock sets the clock trigger times are compared against. Pass the same
// clock that produced the alert plan so a pinned time never fires early.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func NewEngine(bufferSize int, opts ...Option) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	e := &Engine{
		queue:  make(alertQueue, 0),
		out:    make(chan AlertEvent, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) C() <-chan AlertEvent {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started || e.stopped {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

// Stop halts the loop and closes C. Safe to call more than once.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	if !e.started {
		// No loop owns out yet, so close it here for receivers on C.
		e.stopped = true
		close(e.out)
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

func (e *Engine) Schedule(ev AlertEvent) error {
	if ev.TriggerAt.IsZero() {
		return ErrInvalidTriggerTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrEngineStopped
	}

	heap.Push(&e.queue, ev)
	e.signalWakeup()
	return nil
}

// Replace discards every pending event and schedules events instead. Events
// with a zero trigger time are skipped.
func (e *Engine) Replace(events []AlertEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrEngineStopped
	}

	e.queue = e.queue[:0]
	for _, ev := range events {
		if ev.TriggerAt.IsZero() {
			continue
		}
		e.queue = append(e.queue, ev)
	}
	heap.Init(&e.queue)
	e.signalWakeup()
	return nil
}

func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				stopTimer(timer)
				return
			}
		}

		wait := next.TriggerAt.Sub(e.now())
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			for _, ev := range e.popDue(e.now()) {
				select {
				case e.out <- ev:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			stopTimer(timer)
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (AlertEvent, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return AlertEvent{}, false
	}
	return e.queue[0], true
}

func (e *Engine) popDue(now time.Time) []AlertEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]AlertEvent, 0)
	for len(e.queue) > 0 {
		if e.queue[0].TriggerAt.After(now) {
			break
		}
		out = append(out, heap.Pop(&e.queue).(AlertEvent))
	}
	return out
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
