package model

import (
	"testing"
	"time"
)

func date(t *testing.T, value string) *time.Time {
	t.Helper()
	out, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return &out
}

func TestTrafficLightMissingDateIsRed(t *testing.T) {
	for _, today := range []time.Time{
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2030, 7, 4, 23, 59, 0, 0, time.UTC),
	} {
		if got := ClassifyExpiry(nil, today); got != TrafficRed {
			t.Fatalf("expected red for missing date on %s, got %s", today, got)
		}
	}
}

func TestTrafficLightBoundaries(t *testing.T) {
	today := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	cases := []struct {
		expiry string
		want   TrafficLight
	}{
		{"2026-03-09", TrafficRed},
		{"2026-03-10", TrafficAmber},
		{"2026-04-09", TrafficAmber},
		{"2026-04-10", TrafficGreen},
		{"2027-01-01", TrafficGreen},
	}
	for _, tc := range cases {
		if got := ClassifyExpiry(date(t, tc.expiry), today); got != tc.want {
			t.Fatalf("expiry %s: got %s want %s", tc.expiry, got, tc.want)
		}
	}
}

func TestTrafficLightIgnoresTimeOfDay(t *testing.T) {
	expiry := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	late := time.Date(2026, 3, 10, 23, 59, 59, 0, time.UTC)
	if got := ClassifyExpiry(&expiry, late); got != TrafficAmber {
		t.Fatalf("expected amber on expiry day, got %s", got)
	}
}

func TestTrafficLightMonotonic(t *testing.T) {
	today := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	prev := TrafficGreen
	for gap := 60; gap >= -5; gap-- {
		expiry := today.AddDate(0, 0, gap)
		got := ClassifyExpiry(&expiry, today)
		if got.Rank() > prev.Rank() {
			t.Fatalf("classification improved from %s to %s at gap %d", prev, got, gap)
		}
		prev = got
	}
}

func TestTrafficLightMissingDateWarningPolicy(t *testing.T) {
	p := DefaultPolicy()
	p.TreatMissingDateAsFailure = false
	if got := p.TrafficLight(nil, time.Now()); got != TrafficAmber {
		t.Fatalf("expected amber when missing dates are not failures, got %s", got)
	}
	if got := p.SafeguardingStatus(nil, time.Now()); got != SafeguardingDueSoon {
		t.Fatalf("expected due-soon when missing dates are not failures, got %s", got)
	}
}

func TestTrafficLightCustomWindow(t *testing.T) {
	p := DefaultPolicy()
	p.AmberWindowDays = 60
	today := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	expiry := today.AddDate(0, 0, 45)
	if got := p.TrafficLight(&expiry, today); got != TrafficAmber {
		t.Fatalf("expected amber with 60-day window, got %s", got)
	}
}

func TestSafeguardingStatusBoundaries(t *testing.T) {
	today := time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		name     string
		training string
		want     SafeguardingStatus
	}{
		{"two years minus 91 days", "2024-09-14", SafeguardingCurrent},
		{"two years minus 90 days", "2024-09-13", SafeguardingDueSoon},
		{"two years minus 89 days", "2024-09-12", SafeguardingDueSoon},
		{"refresher today", "2024-06-15", SafeguardingDueSoon},
		{"two years plus one day", "2024-06-14", SafeguardingOverdue},
	}
	for _, tc := range cases {
		if got := SafeguardingStatusOf(date(t, tc.training), today); got != tc.want {
			t.Fatalf("%s: got %s want %s", tc.name, got, tc.want)
		}
	}
	if got := SafeguardingStatusOf(nil, today); got != SafeguardingOverdue {
		t.Fatalf("expected overdue for missing training date, got %s", got)
	}
}

func TestRefresherDateUsesCalendarYears(t *testing.T) {
	p := DefaultPolicy()
	got := p.RefresherDate(*date(t, "2024-02-29"))
	if got.Format(DateLayout) != "2026-03-01" {
		t.Fatalf("unexpected leap-day refresher: %s", got.Format(DateLayout))
	}
	got = p.RefresherDate(*date(t, "2023-03-01"))
	if got.Format(DateLayout) != "2025-03-01" {
		t.Fatalf("unexpected refresher: %s", got.Format(DateLayout))
	}
}

func TestScore(t *testing.T) {
	cases := []struct {
		total, good, want int
	}{
		{0, 0, 100},
		{4, 4, 100},
		{4, 0, 0},
		{3, 1, 33},
		{3, 2, 67},
		{8, 1, 13},
		{2, 5, 100},
	}
	for _, tc := range cases {
		if got := Score(tc.total, tc.good); got != tc.want {
			t.Fatalf("Score(%d, %d) = %d, want %d", tc.total, tc.good, got, tc.want)
		}
	}
}

func TestClassifiersArePure(t *testing.T) {
	today := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	expiry := today.AddDate(0, 0, 12)
	if ClassifyExpiry(&expiry, today) != ClassifyExpiry(&expiry, today) {
		t.Fatal("traffic light not deterministic")
	}
	training := today.AddDate(-2, 0, 30)
	if SafeguardingStatusOf(&training, today) != SafeguardingStatusOf(&training, today) {
		t.Fatal("safeguarding status not deterministic")
	}
	if expiry != today.AddDate(0, 0, 12) {
		t.Fatal("classifier mutated its input")
	}
}

func TestPolicyValidate(t *testing.T) {
	if err := DefaultPolicy().Validate(); err != nil {
		t.Fatalf("default policy invalid: %v", err)
	}
	p := DefaultPolicy()
	p.Windows = map[Frequency]Window{FrequencyWeekly: {DueDays: 8, OverdueDays: 7}}
	if err := p.Validate(); err == nil {
		t.Fatal("expected error for inverted window")
	}
	p = DefaultPolicy()
	p.FridgeMinC = 9
	if err := p.Validate(); err == nil {
		t.Fatal("expected error for inverted fridge range")
	}
}

func TestTemperatureInRange(t *testing.T) {
	p := DefaultPolicy()
	for _, c := range []float64{2, 5.5, 8} {
		if !p.TemperatureInRange(c) {
			t.Fatalf("expected %.1f in range", c)
		}
	}
	for _, c := range []float64{1.9, 8.1, -3} {
		if p.TemperatureInRange(c) {
			t.Fatalf("expected %.1f out of range", c)
		}
	}
}
