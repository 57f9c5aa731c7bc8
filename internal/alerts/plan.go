// Package alerts works out when tracked items next change status so the
// scheduler can announce the change as it happens.
package alerts

import (
	"fmt"
	"sort"
	"time"

	"github.com/sandeepkv93/rxtrack/internal/model"
	"github.com/sandeepkv93/rxtrack/internal/scheduler"
	"github.com/sandeepkv93/rxtrack/internal/scorecard"
)

// Plan returns, for every dated item in snap, the next status change strictly
// after now, soonest first. Items already in their final state produce
// nothing.
func Plan(policy model.Policy, snap scorecard.Snapshot, now time.Time) ([]scheduler.AlertEvent, error) {
	loc := now.Location()
	out := make([]scheduler.AlertEvent, 0)

	for _, doc := range snap.Documents {
		if doc.ExpiryDate == nil {
			continue
		}
		amberAt, redAt := policy.ExpiryTransitions(*doc.ExpiryDate, loc)
		if ev, ok := next(now,
			transition{amberAt, string(model.TrafficAmber)},
			transition{redAt, string(model.TrafficRed)},
		); ok {
			ev.ID = "doc:" + doc.ID + ":" + ev.Status
			ev.Kind = scheduler.AlertDocument
			ev.Subject = doc.Name
			out = append(out, ev)
		}
	}

	for _, task := range snap.Tasks {
		last, ok := model.LastCompletion(task.Name, snap.Completions)
		if !ok {
			continue
		}
		dueAt, overdueAt, err := policy.TaskTransitions(task.Frequency, last)
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", task.Name, err)
		}
		if ev, ok := next(now,
			transition{dueAt, string(model.TaskDue)},
			transition{overdueAt, string(model.TaskOverdue)},
		); ok {
			ev.ID = "task:" + task.ID + ":" + ev.Status
			ev.Kind = scheduler.AlertCleaning
			ev.Subject = task.Name
			out = append(out, ev)
		}
	}

	for _, rec := range snap.Safeguarding {
		if rec.TrainingDate == nil {
			continue
		}
		dueSoonAt, overdueAt := policy.RefresherTransitions(*rec.TrainingDate, loc)
		if ev, ok := next(now,
			transition{dueSoonAt, string(model.SafeguardingDueSoon)},
			transition{overdueAt, string(model.SafeguardingOverdue)},
		); ok {
			ev.ID = "sg:" + rec.ID + ":" + ev.Status
			ev.Kind = scheduler.AlertSafeguarding
			ev.Subject = rec.StaffName
			out = append(out, ev)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TriggerAt.Before(out[j].TriggerAt)
	})
	return out, nil
}

// Message renders an alert as a one-line notice.
func Message(ev scheduler.AlertEvent) string {
	switch ev.Kind {
	case scheduler.AlertDocument:
		return fmt.Sprintf("Document %q is now %s", ev.Subject, model.TrafficLight(ev.Status).Label())
	case scheduler.AlertCleaning:
		return fmt.Sprintf("Cleaning task %q is now %s", ev.Subject, model.TaskStatus(ev.Status).Label())
	case scheduler.AlertSafeguarding:
		return fmt.Sprintf("Safeguarding refresher for %s is %s", ev.Subject, model.SafeguardingStatus(ev.Status).Label())
	default:
		return fmt.Sprintf("%s %s: %s", ev.Kind, ev.Subject, ev.Status)
	}
}

type transition struct {
	at     time.Time
	status string
}

// next picks the first transition after now; steps must be in time order.
func next(now time.Time, steps ...transition) (scheduler.AlertEvent, bool) {
	for _, s := range steps {
		if s.at.IsZero() || !s.at.After(now) {
			continue
		}
		return scheduler.AlertEvent{Status: s.status, TriggerAt: s.at}, true
	}
	return scheduler.AlertEvent{}, false
}
