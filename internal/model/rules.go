package model

import (
	"math"
	"time"
)

// TrafficLight classifies an expiring record by calendar days left. Expiring
// today is amber, not red.
func (p Policy) TrafficLight(expiry *time.Time, today time.Time) TrafficLight {
	if expiry == nil {
		if p.TreatMissingDateAsFailure {
			return TrafficRed
		}
		return TrafficAmber
	}
	days := DaysUntil(*expiry, today)
	switch {
	case days < 0:
		return TrafficRed
	case days <= p.AmberWindowDays:
		return TrafficAmber
	default:
		return TrafficGreen
	}
}

// RefresherDate is the training date plus the refresher cycle in calendar
// years, so a 29 February training rolls to 1 March.
func (p Policy) RefresherDate(trainingDate time.Time) time.Time {
	return trainingDate.AddDate(p.RefresherYears, 0, 0)
}

func (p Policy) SafeguardingStatus(trainingDate *time.Time, today time.Time) SafeguardingStatus {
	if trainingDate == nil {
		if p.TreatMissingDateAsFailure {
			return SafeguardingOverdue
		}
		return SafeguardingDueSoon
	}
	days := DaysUntil(p.RefresherDate(*trainingDate), today)
	switch {
	case days < 0:
		return SafeguardingOverdue
	case days <= p.RefresherWarningDays:
		return SafeguardingDueSoon
	default:
		return SafeguardingCurrent
	}
}

func (p Policy) Score(total, good int) int {
	return Score(total, good)
}

// Score is the rounded percentage of good items. An empty category scores
// 100.
func Score(total, good int) int {
	if total <= 0 {
		return 100
	}
	if good < 0 {
		good = 0
	}
	if good > total {
		good = total
	}
	return int(math.Round(100 * float64(good) / float64(total)))
}

// ClassifyExpiry applies the default policy.
func ClassifyExpiry(expiry *time.Time, today time.Time) TrafficLight {
	return DefaultPolicy().TrafficLight(expiry, today)
}

func SafeguardingStatusOf(trainingDate *time.Time, today time.Time) SafeguardingStatus {
	return DefaultPolicy().SafeguardingStatus(trainingDate, today)
}
