package model

import "time"

// Rotation assigns cleaning tasks across the staff roster. Each task rotates
// independently; taskIndex offsets tasks sharing a frequency so they land on
// different people.
type Rotation struct {
	Staff      []string
	Fixed      map[string]string
	Pharmacist string
}

func (r Rotation) Assignee(taskName string, freq Frequency, taskIndex int, now time.Time) string {
	if name, ok := r.Fixed[taskName]; ok && name != "" {
		return name
	}
	if len(r.Staff) == 0 {
		return ""
	}
	if taskIndex < 0 {
		taskIndex = 0
	}
	return r.Staff[(rotationPeriod(freq, now)+taskIndex)%len(r.Staff)]
}

func rotationPeriod(freq Frequency, now time.Time) int {
	switch freq {
	case FrequencyWeekly:
		return weekOfYear(now)
	case FrequencyFortnightly:
		return weekOfYear(now) / 2
	case FrequencyMonthly:
		return int(now.Month()) - 1
	default:
		return now.YearDay()
	}
}

// weekOfYear is ceil(elapsed since 1 January / 7 days).
func weekOfYear(now time.Time) int {
	jan1 := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	elapsed := now.Sub(jan1)
	weeks := int(elapsed / (7 * day))
	if elapsed%(7*day) != 0 {
		weeks++
	}
	return weeks
}
