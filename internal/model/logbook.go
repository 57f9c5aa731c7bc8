package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidIncidentType = errors.New("model: invalid incident type")
	ErrInvalidSeverity     = errors.New("model: invalid severity")
)

type IncidentType string

const (
	IncidentNearMiss        IncidentType = "Near Miss"
	IncidentDispensingError IncidentType = "Dispensing Error"
	IncidentComplaint       IncidentType = "Complaint"
	IncidentOther           IncidentType = "Other"
)

var IncidentTypes = []IncidentType{IncidentNearMiss, IncidentDispensingError, IncidentComplaint, IncidentOther}

func (t IncidentType) IsValid() bool {
	switch t {
	case IncidentNearMiss, IncidentDispensingError, IncidentComplaint, IncidentOther:
		return true
	default:
		return false
	}
}

// ParseIncidentType accepts any casing, with hyphens or underscores in place
// of spaces ("near-miss").
func ParseIncidentType(raw string) (IncidentType, error) {
	norm := strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(raw))
	for _, t := range IncidentTypes {
		if strings.EqualFold(norm, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidIncidentType, raw)
}

type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	default:
		return false
	}
}

func ParseSeverity(raw string) (Severity, error) {
	raw = strings.TrimSpace(raw)
	for _, s := range []Severity{SeverityLow, SeverityMedium, SeverityHigh} {
		if strings.EqualFold(raw, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSeverity, raw)
}

// Incident is a near miss, dispensing error or complaint noted at the counter.
type Incident struct {
	ID          string
	Date        time.Time
	Type        IncidentType
	Description string
	Severity    Severity
	CreatedAt   time.Time
}

func (i Incident) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return errors.New("model: incident id is required")
	}
	if strings.TrimSpace(i.Description) == "" {
		return errors.New("model: incident description is required")
	}
	if i.Date.IsZero() {
		return errors.New("model: incident date is required")
	}
	if !i.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidIncidentType, i.Type)
	}
	if !i.Severity.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidSeverity, i.Severity)
	}
	return nil
}

// TrainingLog is a completed training session. CertificateExpiry is
// optional and classified like a document expiry.
type TrainingLog struct {
	ID                string
	StaffName         string
	DateCompleted     *time.Time
	Topic             string
	TrainerName       string
	CertificateExpiry *time.Time
	Notes             string
	CreatedAt         time.Time
}

func (l TrainingLog) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return errors.New("model: training log id is required")
	}
	if strings.TrimSpace(l.StaffName) == "" {
		return errors.New("model: training log staff name is required")
	}
	if l.DateCompleted == nil {
		return errors.New("model: training log completion date is required")
	}
	if strings.TrimSpace(l.Topic) == "" {
		return errors.New("model: training log topic is required")
	}
	return nil
}

// AssignedTask is a one-off task handed to a staff member for a single day,
// on top of their cleaning rotation.
type AssignedTask struct {
	ID          string
	StaffName   string
	Title       string
	Date        time.Time
	Completed   bool
	CompletedBy string
	CompletedAt *time.Time
	Notes       string
	CreatedBy   string
	CreatedAt   time.Time
}

func (t AssignedTask) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: assigned task id is required")
	}
	if strings.TrimSpace(t.StaffName) == "" {
		return errors.New("model: assigned task staff name is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: assigned task title is required")
	}
	if t.Date.IsZero() {
		return errors.New("model: assigned task date is required")
	}
	return nil
}

// Toggle flips completion. Completing records who and when; reopening clears
// both.
func (t *AssignedTask) Toggle(by string, at time.Time) bool {
	t.Completed = !t.Completed
	if t.Completed {
		t.CompletedBy = by
		t.CompletedAt = &at
	} else {
		t.CompletedBy = ""
		t.CompletedAt = nil
	}
	return t.Completed
}
