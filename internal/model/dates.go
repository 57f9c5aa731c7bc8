package model

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var localLayouts = []string{
	DateLayout,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// ParseDate reads an ISO date or timestamp. Values without an offset are
// interpreted in loc. Empty or unparsable input yields nil so the caller
// classifies the record as having no date.
func ParseDate(raw string, loc *time.Location) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range localLayouts {
		if tm, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return &tm
		}
	}
	if tm, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return &tm
	}
	return nil
}

// FormatDate renders a nullable date as YYYY-MM-DD, or "" when absent.
func FormatDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(DateLayout)
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysUntil counts whole calendar days from today's date to target's date,
// each read in its own location. Negative when target is in the past.
func DaysUntil(target, today time.Time) int {
	return civilDay(target) - civilDay(today)
}

func SameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func civilDay(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// dateIn moves a calendar date into loc without shifting the day.
func dateIn(d time.Time, loc *time.Location) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, loc)
}
