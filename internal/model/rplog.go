package model

import (
	"errors"
	"strings"
	"time"
)

var (
	RPDailyItems = []string{
		"RP notice displayed",
		"Controlled drugs checked",
		"Pharmacy opened correctly",
		"Pharmacy closed correctly",
		"Fridge temperature recorded",
	}
	RPWeeklyItems = []string{
		"Pharmacy record up to date",
		"RP absent period recorded (if applicable)",
		"Near-miss log reviewed",
		"Dispensing area clean and tidy",
	}
	RPFortnightlyItems = []string{
		"Date checking completed",
		"Returned medicines destroyed log reviewed",
		"Staff training records reviewed",
		"SOPs reviewed for currency",
	}
)

// RPItems returns every checklist item in display order.
func RPItems() []string {
	out := make([]string, 0, len(RPDailyItems)+len(RPWeeklyItems)+len(RPFortnightlyItems))
	out = append(out, RPDailyItems...)
	out = append(out, RPWeeklyItems...)
	out = append(out, RPFortnightlyItems...)
	return out
}

// MatchRPItem resolves a case-insensitive prefix to a checklist item.
func MatchRPItem(query string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}
	match := ""
	for _, item := range RPItems() {
		lower := strings.ToLower(item)
		if lower == q {
			return item, true
		}
		if strings.HasPrefix(lower, q) {
			if match != "" {
				return "", false
			}
			match = item
		}
	}
	return match, match != ""
}

// RPLogEntry is the Responsible Pharmacist checklist for one day.
type RPLogEntry struct {
	ID         string
	Date       time.Time
	Pharmacist string
	Checklist  map[string]bool
	Notes      string
	CreatedAt  time.Time
}

func (e RPLogEntry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return errors.New("model: rp log id is required")
	}
	if e.Date.IsZero() {
		return errors.New("model: rp log date is required")
	}
	if strings.TrimSpace(e.Pharmacist) == "" {
		return errors.New("model: rp log pharmacist is required")
	}
	return nil
}

// Completion counts checked items among items.
func (e RPLogEntry) Completion(items []string) (checked int, total int) {
	for _, item := range items {
		if e.Checklist[item] {
			checked++
		}
	}
	return checked, len(items)
}

// Toggle flips item and returns the new value.
func (e *RPLogEntry) Toggle(item string) bool {
	if e.Checklist == nil {
		e.Checklist = make(map[string]bool)
	}
	e.Checklist[item] = !e.Checklist[item]
	return e.Checklist[item]
}
