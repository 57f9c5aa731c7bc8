package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidFrequency      = errors.New("model: invalid frequency")
	ErrInvalidTrainingStatus = errors.New("model: invalid training status")
)

type Frequency string

const (
	FrequencyDaily       Frequency = "daily"
	FrequencyWeekly      Frequency = "weekly"
	FrequencyFortnightly Frequency = "fortnightly"
	FrequencyMonthly     Frequency = "monthly"
	FrequencyAnnually    Frequency = "annually"
)

// Frequencies lists every supported frequency, shortest period first.
var Frequencies = []Frequency{
	FrequencyDaily,
	FrequencyWeekly,
	FrequencyFortnightly,
	FrequencyMonthly,
	FrequencyAnnually,
}

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyFortnightly, FrequencyMonthly, FrequencyAnnually:
		return true
	default:
		return false
	}
}

func ParseFrequency(raw string) (Frequency, error) {
	f := Frequency(strings.ToLower(strings.TrimSpace(raw)))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFrequency, raw)
	}
	return f, nil
}

type TrafficLight string

const (
	TrafficRed   TrafficLight = "red"
	TrafficAmber TrafficLight = "amber"
	TrafficGreen TrafficLight = "green"
)

func (l TrafficLight) Label() string {
	switch l {
	case TrafficRed:
		return "Expired / No Date"
	case TrafficAmber:
		return "Due Within 30 Days"
	case TrafficGreen:
		return "Valid"
	default:
		return ""
	}
}

// Rank orders lights from worst (0) to best (2).
func (l TrafficLight) Rank() int {
	switch l {
	case TrafficAmber:
		return 1
	case TrafficGreen:
		return 2
	default:
		return 0
	}
}

type TaskStatus string

const (
	TaskDone     TaskStatus = "done"
	TaskDue      TaskStatus = "due"
	TaskUpcoming TaskStatus = "upcoming"
	TaskOverdue  TaskStatus = "overdue"
)

func (s TaskStatus) Label() string {
	switch s {
	case TaskDone:
		return "Done"
	case TaskDue:
		return "Due Today"
	case TaskOverdue:
		return "Overdue"
	case TaskUpcoming:
		return "Up to Date"
	default:
		return ""
	}
}

// Good reports whether the status counts towards the cleaning score.
func (s TaskStatus) Good() bool {
	return s == TaskDone || s == TaskUpcoming
}

// NeedsAction is true for due and overdue tasks.
func (s TaskStatus) NeedsAction() bool {
	return s == TaskDue || s == TaskOverdue
}

type SafeguardingStatus string

const (
	SafeguardingCurrent SafeguardingStatus = "current"
	SafeguardingDueSoon SafeguardingStatus = "due-soon"
	SafeguardingOverdue SafeguardingStatus = "overdue"
)

func (s SafeguardingStatus) Label() string {
	switch s {
	case SafeguardingCurrent:
		return "Current"
	case SafeguardingDueSoon:
		return "Due Soon"
	case SafeguardingOverdue:
		return "Overdue"
	default:
		return ""
	}
}

type TrainingStatus string

const (
	TrainingPending    TrainingStatus = "Pending"
	TrainingInProgress TrainingStatus = "In Progress"
	TrainingComplete   TrainingStatus = "Complete"
)

func (s TrainingStatus) IsValid() bool {
	switch s {
	case TrainingPending, TrainingInProgress, TrainingComplete:
		return true
	default:
		return false
	}
}

// Next cycles Pending -> In Progress -> Complete -> Pending. Unknown values
// restart the cycle.
func (s TrainingStatus) Next() TrainingStatus {
	switch s {
	case TrainingPending:
		return TrainingInProgress
	case TrainingInProgress:
		return TrainingComplete
	default:
		return TrainingPending
	}
}
