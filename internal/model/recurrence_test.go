package model

import (
	"errors"
	"testing"
	"time"
)

func completion(name string, at time.Time) CompletionEvent {
	return CompletionEvent{ID: name + at.Format(time.RFC3339), TaskName: name, At: at}
}

func TestTaskStatusNoHistoryIsOverdue(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	for _, f := range Frequencies {
		got, err := TaskStatusOf("Floor Clean", f, nil, now)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", f, err)
		}
		if got != TaskOverdue {
			t.Fatalf("%s: expected overdue with no history, got %s", f, got)
		}
	}
}

func TestTaskStatusIgnoresOtherTasks(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	events := []CompletionEvent{completion("Kitchen Clean", now.Add(-time.Hour))}
	got, err := TaskStatusOf("Floor Clean", FrequencyWeekly, events, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != TaskOverdue {
		t.Fatalf("expected overdue, got %s", got)
	}
}

func TestTaskStatusWeeklyThresholds(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		ago  int
		want TaskStatus
	}{
		{7, TaskOverdue},
		{6, TaskDue},
		{5, TaskUpcoming},
		{1, TaskUpcoming},
	}
	for _, tc := range cases {
		events := []CompletionEvent{completion("Kitchen Clean", now.AddDate(0, 0, -tc.ago))}
		got, err := TaskStatusOf("Kitchen Clean", FrequencyWeekly, events, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tc.want {
			t.Fatalf("%d days ago: got %s want %s", tc.ago, got, tc.want)
		}
	}
}

func TestTaskStatusFrequencyThresholds(t *testing.T) {
	now := time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)
	cases := []struct {
		freq Frequency
		ago  int
		want TaskStatus
	}{
		{FrequencyFortnightly, 14, TaskOverdue},
		{FrequencyFortnightly, 12, TaskDue},
		{FrequencyFortnightly, 11, TaskUpcoming},
		{FrequencyMonthly, 30, TaskOverdue},
		{FrequencyMonthly, 25, TaskDue},
		{FrequencyMonthly, 24, TaskUpcoming},
		{FrequencyAnnually, 365, TaskOverdue},
		{FrequencyAnnually, 335, TaskDue},
		{FrequencyAnnually, 334, TaskUpcoming},
		{FrequencyDaily, 1, TaskDue},
		{FrequencyDaily, 40, TaskDue},
	}
	for _, tc := range cases {
		events := []CompletionEvent{completion("Task", now.Add(-time.Duration(tc.ago)*24*time.Hour))}
		got, err := TaskStatusOf("Task", tc.freq, events, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tc.want {
			t.Fatalf("%s %d days ago: got %s want %s", tc.freq, tc.ago, got, tc.want)
		}
	}
}

func TestTaskStatusFractionalDays(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	almostSix := now.Add(-(6*24*time.Hour - time.Minute))
	got, err := TaskStatusOf("Kitchen Clean", FrequencyWeekly, []CompletionEvent{completion("Kitchen Clean", almostSix)}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != TaskUpcoming {
		t.Fatalf("expected upcoming one minute short of six days, got %s", got)
	}
}

func TestTaskStatusSameDayIsDone(t *testing.T) {
	now := time.Date(2026, 2, 9, 23, 0, 0, 0, time.UTC)
	events := []CompletionEvent{
		completion("Robot Maintenance", now.AddDate(0, 0, -20)),
		completion("Robot Maintenance", time.Date(2026, 2, 9, 0, 5, 0, 0, time.UTC)),
	}
	for _, f := range Frequencies {
		got, err := TaskStatusOf("Robot Maintenance", f, events, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != TaskDone {
			t.Fatalf("%s: expected done, got %s", f, got)
		}
	}
}

func TestTaskStatusSameDayUsesNowLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	// 23:30 UTC on 8 Feb is 01:30 on 9 Feb at UTC+2.
	at := time.Date(2026, 2, 8, 23, 30, 0, 0, time.UTC)
	now := time.Date(2026, 2, 9, 10, 0, 0, 0, loc)
	got, err := TaskStatusOf("Dispensary Clean", FrequencyDaily, []CompletionEvent{completion("Dispensary Clean", at)}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != TaskDone {
		t.Fatalf("expected done in local day, got %s", got)
	}
}

func TestTaskStatusLatestCompletionWins(t *testing.T) {
	now := time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)
	events := []CompletionEvent{
		completion("Floor Clean", now.AddDate(0, 0, -2)),
		completion("Floor Clean", now.AddDate(0, 0, -30)),
	}
	got, err := TaskStatusOf("Floor Clean", FrequencyWeekly, events, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != TaskUpcoming {
		t.Fatalf("expected upcoming from latest completion, got %s", got)
	}
}

func TestTaskStatusInvalidFrequency(t *testing.T) {
	_, err := TaskStatusOf("Floor Clean", Frequency("hourly"), nil, time.Now())
	if !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("expected ErrInvalidFrequency, got %v", err)
	}
}

func TestParseFrequency(t *testing.T) {
	got, err := ParseFrequency("  Weekly ")
	if err != nil || got != FrequencyWeekly {
		t.Fatalf("expected weekly, got %q err=%v", got, err)
	}
	if _, err := ParseFrequency("quarterly"); !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("expected ErrInvalidFrequency, got %v", err)
	}
}

func TestTaskTransitions(t *testing.T) {
	p := DefaultPolicy()
	last := time.Date(2026, 2, 9, 10, 0, 0, 0, time.UTC)

	due, overdue, err := p.TaskTransitions(FrequencyWeekly, last)
	if err != nil {
		t.Fatalf("weekly transitions: %v", err)
	}
	if due.Format(time.RFC3339) != "2026-02-15T10:00:00Z" || overdue.Format(time.RFC3339) != "2026-02-16T10:00:00Z" {
		t.Fatalf("unexpected weekly transitions: due=%s overdue=%s", due, overdue)
	}

	due, overdue, err = p.TaskTransitions(FrequencyDaily, last)
	if err != nil {
		t.Fatalf("daily transitions: %v", err)
	}
	if due.Format(time.RFC3339) != "2026-02-10T00:00:00Z" || !overdue.IsZero() {
		t.Fatalf("unexpected daily transitions: due=%s overdue=%s", due, overdue)
	}

	if _, _, err := p.TaskTransitions(Frequency("bad"), last); !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("expected ErrInvalidFrequency, got %v", err)
	}
}

func TestExpiryAndRefresherTransitions(t *testing.T) {
	p := DefaultPolicy()
	amber, red := p.ExpiryTransitions(*date(t, "2026-05-31"), time.UTC)
	if amber.Format(DateLayout) != "2026-05-01" || red.Format(DateLayout) != "2026-06-01" {
		t.Fatalf("unexpected expiry transitions: amber=%s red=%s", amber, red)
	}
	dueSoon, overdue := p.RefresherTransitions(*date(t, "2024-06-15"), time.UTC)
	if dueSoon.Format(DateLayout) != "2026-03-17" || overdue.Format(DateLayout) != "2026-06-16" {
		t.Fatalf("unexpected refresher transitions: dueSoon=%s overdue=%s", dueSoon, overdue)
	}
}
