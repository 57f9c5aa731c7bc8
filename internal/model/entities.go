package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var ErrInvalidCategory = errors.New("model: invalid document category")

type DocumentCategory string

const (
	CategoryRegistration DocumentCategory = "Registration"
	CategoryInsurance    DocumentCategory = "Insurance"
	CategoryStaff        DocumentCategory = "Staff"
	CategorySOP          DocumentCategory = "SOP"
	CategoryContract     DocumentCategory = "Contract"
	CategoryTraining     DocumentCategory = "Training"
)

func (c DocumentCategory) IsValid() bool {
	switch c {
	case CategoryRegistration, CategoryInsurance, CategoryStaff, CategorySOP, CategoryContract, CategoryTraining:
		return true
	default:
		return false
	}
}

type StaffMember struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

func (s StaffMember) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("model: staff id is required")
	}
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("model: staff name is required")
	}
	return nil
}

type Document struct {
	ID         string
	Name       string
	Category   DocumentCategory
	Owner      string
	IssueDate  *time.Time
	ExpiryDate *time.Time
	Notes      string
	CreatedAt  time.Time
}

func (d Document) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return errors.New("model: document id is required")
	}
	if strings.TrimSpace(d.Name) == "" {
		return errors.New("model: document name is required")
	}
	if d.Category != "" && !d.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, d.Category)
	}
	return nil
}

type CleaningTask struct {
	ID        string
	Name      string
	Frequency Frequency
	CreatedAt time.Time
}

func (t CleaningTask) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: cleaning task id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("model: cleaning task name is required")
	}
	if !t.Frequency.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidFrequency, t.Frequency)
	}
	return nil
}

// CompletionEvent records one completion of a cleaning task.
type CompletionEvent struct {
	ID          string
	TaskName    string
	At          time.Time
	StaffMember string
	Result      string
	Notes       string
	CreatedAt   time.Time
}

func (e CompletionEvent) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return errors.New("model: completion id is required")
	}
	if strings.TrimSpace(e.TaskName) == "" {
		return errors.New("model: completion task name is required")
	}
	if e.At.IsZero() {
		return errors.New("model: completion time is required")
	}
	return nil
}

type TrainingItem struct {
	ID         string
	StaffName  string
	Role       string
	Item       string
	TargetDate *time.Time
	Status     TrainingStatus
	CreatedAt  time.Time
}

func (t TrainingItem) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: training id is required")
	}
	if strings.TrimSpace(t.StaffName) == "" {
		return errors.New("model: training staff name is required")
	}
	if strings.TrimSpace(t.Item) == "" {
		return errors.New("model: training item is required")
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTrainingStatus, t.Status)
	}
	return nil
}

type SafeguardingRecord struct {
	ID              string
	StaffName       string
	JobTitle        string
	TrainingDate    *time.Time
	DeliveredBy     string
	Method          string
	HandbookVersion string
	SignedOff       bool
	CreatedAt       time.Time
}

func (r SafeguardingRecord) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("model: safeguarding id is required")
	}
	if strings.TrimSpace(r.StaffName) == "" {
		return errors.New("model: safeguarding staff name is required")
	}
	return nil
}

type TemperatureReading struct {
	ID        string
	Date      time.Time
	Time      string
	Celsius   float64
	LoggedBy  string
	Notes     string
	CreatedAt time.Time
}

func (r TemperatureReading) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("model: temperature id is required")
	}
	if r.Date.IsZero() {
		return errors.New("model: temperature date is required")
	}
	if math.IsNaN(r.Celsius) || math.IsInf(r.Celsius, 0) {
		return errors.New("model: temperature must be a number")
	}
	return nil
}
