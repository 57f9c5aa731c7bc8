package model

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidPolicy = errors.New("model: invalid policy")

// Rules groups the status classifiers so alternative policies can be
// substituted. Policy is the default implementation.
type Rules interface {
	TrafficLight(expiry *time.Time, today time.Time) TrafficLight
	TaskStatus(taskName string, freq Frequency, events []CompletionEvent, now time.Time) (TaskStatus, error)
	SafeguardingStatus(trainingDate *time.Time, today time.Time) SafeguardingStatus
	Score(total, good int) int
}

// Window is the grace window of a recurring task, in elapsed days since the
// last completion.
type Window struct {
	DueDays     float64
	OverdueDays float64
}

type Policy struct {
	AmberWindowDays      int
	Windows              map[Frequency]Window
	RefresherYears       int
	RefresherWarningDays int
	// TreatMissingDateAsFailure classifies records without a usable date as
	// red/overdue. When false they land in the warning state instead.
	TreatMissingDateAsFailure bool
	FridgeMinC                float64
	FridgeMaxC                float64
}

var _ Rules = Policy{}

func DefaultPolicy() Policy {
	return Policy{
		AmberWindowDays: 30,
		Windows: map[Frequency]Window{
			FrequencyWeekly:      {DueDays: 6, OverdueDays: 7},
			FrequencyFortnightly: {DueDays: 12, OverdueDays: 14},
			FrequencyMonthly:     {DueDays: 25, OverdueDays: 30},
			FrequencyAnnually:    {DueDays: 335, OverdueDays: 365},
		},
		RefresherYears:            2,
		RefresherWarningDays:      90,
		TreatMissingDateAsFailure: true,
		FridgeMinC:                2,
		FridgeMaxC:                8,
	}
}

func (p Policy) Validate() error {
	if p.AmberWindowDays < 0 {
		return fmt.Errorf("%w: amber window %d", ErrInvalidPolicy, p.AmberWindowDays)
	}
	if p.RefresherYears <= 0 {
		return fmt.Errorf("%w: refresher years %d", ErrInvalidPolicy, p.RefresherYears)
	}
	if p.RefresherWarningDays < 0 {
		return fmt.Errorf("%w: refresher warning days %d", ErrInvalidPolicy, p.RefresherWarningDays)
	}
	if p.FridgeMinC > p.FridgeMaxC {
		return fmt.Errorf("%w: fridge range %.1f..%.1f", ErrInvalidPolicy, p.FridgeMinC, p.FridgeMaxC)
	}
	for _, f := range Frequencies {
		if f == FrequencyDaily {
			continue
		}
		w, ok := p.Windows[f]
		if !ok {
			return fmt.Errorf("%w: missing %s window", ErrInvalidPolicy, f)
		}
		if w.DueDays <= 0 || w.OverdueDays < w.DueDays {
			return fmt.Errorf("%w: %s window due=%g overdue=%g", ErrInvalidPolicy, f, w.DueDays, w.OverdueDays)
		}
	}
	return nil
}

func (p Policy) TemperatureInRange(celsius float64) bool {
	return celsius >= p.FridgeMinC && celsius <= p.FridgeMaxC
}

func (p Policy) window(f Frequency) (Window, error) {
	w, ok := p.Windows[f]
	if !ok {
		return Window{}, fmt.Errorf("%w: missing %s window", ErrInvalidPolicy, f)
	}
	return w, nil
}
