package model

import (
	"fmt"
	"time"
)

const day = 24 * time.Hour

// TaskStatus derives a recurring task's status from its most recent
// completion. A task with no completions is overdue. Daily tasks are never
// overdue: any completion before today leaves them due.
func (p Policy) TaskStatus(taskName string, freq Frequency, events []CompletionEvent, now time.Time) (TaskStatus, error) {
	if !freq.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFrequency, freq)
	}
	last, ok := LastCompletion(taskName, events)
	if !ok {
		return TaskOverdue, nil
	}
	if SameDay(last, now) {
		return TaskDone, nil
	}
	if freq == FrequencyDaily {
		return TaskDue, nil
	}

	w, err := p.window(freq)
	if err != nil {
		return "", err
	}
	elapsed := now.Sub(last).Hours() / 24
	switch {
	case elapsed >= w.OverdueDays:
		return TaskOverdue, nil
	case elapsed >= w.DueDays:
		return TaskDue, nil
	default:
		return TaskUpcoming, nil
	}
}

// TaskStatusOf applies the default policy.
func TaskStatusOf(taskName string, freq Frequency, events []CompletionEvent, now time.Time) (TaskStatus, error) {
	return DefaultPolicy().TaskStatus(taskName, freq, events, now)
}

// LastCompletion returns the latest completion recorded for taskName.
func LastCompletion(taskName string, events []CompletionEvent) (time.Time, bool) {
	var last time.Time
	found := false
	for _, ev := range events {
		if ev.TaskName != taskName {
			continue
		}
		if !found || ev.At.After(last) {
			last = ev.At
			found = true
		}
	}
	return last, found
}

// TaskTransitions reports when a task completed at last becomes due and
// overdue. Daily tasks become due at the next midnight and have no overdue
// instant.
func (p Policy) TaskTransitions(freq Frequency, last time.Time) (dueAt time.Time, overdueAt time.Time, err error) {
	if !freq.IsValid() {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidFrequency, freq)
	}
	nextMidnight := StartOfDay(last).AddDate(0, 0, 1)
	if freq == FrequencyDaily {
		return nextMidnight, time.Time{}, nil
	}
	w, err := p.window(freq)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	dueAt = latest(last.Add(time.Duration(w.DueDays*float64(day))), nextMidnight)
	overdueAt = latest(last.Add(time.Duration(w.OverdueDays*float64(day))), nextMidnight)
	return dueAt, overdueAt, nil
}

// ExpiryTransitions reports the midnights, in loc, at which an expiring
// record turns amber and red.
func (p Policy) ExpiryTransitions(expiry time.Time, loc *time.Location) (amberAt time.Time, redAt time.Time) {
	d := dateIn(expiry, loc)
	return d.AddDate(0, 0, -p.AmberWindowDays), d.AddDate(0, 0, 1)
}

// RefresherTransitions reports the midnights, in loc, at which a safeguarding
// record becomes due soon and overdue.
func (p Policy) RefresherTransitions(trainingDate time.Time, loc *time.Location) (dueSoonAt time.Time, overdueAt time.Time) {
	d := dateIn(p.RefresherDate(trainingDate), loc)
	return d.AddDate(0, 0, -p.RefresherWarningDays), d.AddDate(0, 0, 1)
}

func latest(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
