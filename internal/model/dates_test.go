package model

import (
	"testing"
	"time"
)

func TestParseDateFormats(t *testing.T) {
	loc := time.FixedZone("BST", 60*60)
	cases := []struct {
		in   string
		want string
	}{
		{"2026-02-09", "2026-02-09T00:00:00+01:00"},
		{"2026-02-09T10:00", "2026-02-09T10:00:00+01:00"},
		{" 2026-02-09T10:00:30 ", "2026-02-09T10:00:30+01:00"},
		{"2026-02-09T10:00:00Z", "2026-02-09T10:00:00Z"},
	}
	for _, tc := range cases {
		got := ParseDate(tc.in, loc)
		if got == nil {
			t.Fatalf("parse %q returned nil", tc.in)
		}
		if got.Format(time.RFC3339) != tc.want {
			t.Fatalf("parse %q = %s, want %s", tc.in, got.Format(time.RFC3339), tc.want)
		}
	}
}

func TestParseDateMalformedIsAbsent(t *testing.T) {
	for _, in := range []string{"", "   ", "not a date", "2026-13-40", "09/02/2026"} {
		if got := ParseDate(in, time.UTC); got != nil {
			t.Fatalf("expected nil for %q, got %s", in, got)
		}
	}
}

func TestMalformedDateFailsTowardWorse(t *testing.T) {
	today := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := ClassifyExpiry(ParseDate("31/12/2030", time.UTC), today); got != TrafficRed {
		t.Fatalf("expected red for malformed expiry, got %s", got)
	}
	if got := SafeguardingStatusOf(ParseDate("garbage", time.UTC), today); got != SafeguardingOverdue {
		t.Fatalf("expected overdue for malformed training date, got %s", got)
	}
}

func TestDaysUntil(t *testing.T) {
	today := time.Date(2026, 3, 28, 23, 0, 0, 0, time.UTC)
	target := time.Date(2026, 3, 30, 0, 0, 0, 0, time.UTC)
	if got := DaysUntil(target, today); got != 2 {
		t.Fatalf("expected 2 days, got %d", got)
	}
	if got := DaysUntil(today, target); got != -2 {
		t.Fatalf("expected -2 days, got %d", got)
	}
}

func TestFormatDate(t *testing.T) {
	if FormatDate(nil) != "" {
		t.Fatal("expected empty string for nil date")
	}
	d := time.Date(2026, 2, 9, 15, 0, 0, 0, time.UTC)
	if FormatDate(&d) != "2026-02-09" {
		t.Fatalf("unexpected format: %s", FormatDate(&d))
	}
}
