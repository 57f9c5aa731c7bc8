package storage

import "time"

// Rows mirror the tables. Calendar dates are kept as the text the user
// entered (YYYY-MM-DD) so that malformed values survive a round trip and are
// classified as absent rather than rejected.

type StaffMember struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

type Document struct {
	ID         string
	Name       string
	Category   string
	Owner      string
	IssueDate  string
	ExpiryDate string
	Notes      string
	CreatedAt  time.Time
}

type CleaningTask struct {
	ID        string
	Name      string
	Frequency string
	CreatedAt time.Time
}

type CleaningEntry struct {
	ID          string
	TaskName    string
	CompletedAt time.Time
	// CompletedRaw is the stored completed_at text. CompletedAt stays zero
	// when that text is not RFC 3339.
	CompletedRaw string
	StaffMember  string
	Result       string
	Notes        string
	CreatedAt    time.Time
}

type TrainingItem struct {
	ID         string
	StaffName  string
	Role       string
	Item       string
	TargetDate string
	Status     string
	CreatedAt  time.Time
}

type SafeguardingRecord struct {
	ID              string
	StaffName       string
	JobTitle        string
	TrainingDate    string
	DeliveredBy     string
	Method          string
	HandbookVersion string
	SignedOff       bool
	CreatedAt       time.Time
}

type TemperatureLog struct {
	ID        string
	Date      string
	Time      string
	Celsius   float64
	LoggedBy  string
	Notes     string
	CreatedAt time.Time
}

type RPLog struct {
	ID         string
	Date       string
	Pharmacist string
	Checklist  map[string]bool
	Notes      string
	CreatedAt  time.Time
}

type Incident struct {
	ID          string
	Date        string
	Type        string
	Description string
	Severity    string
	CreatedAt   time.Time
}

type TrainingLog struct {
	ID                string
	StaffName         string
	DateCompleted     string
	Topic             string
	TrainerName       string
	CertificateExpiry string
	Notes             string
	CreatedAt         time.Time
}

type AssignedTask struct {
	ID          string
	StaffName   string
	Title       string
	Date        string
	Completed   bool
	CompletedBy string
	CompletedAt *time.Time
	Notes       string
	CreatedBy   string
	CreatedAt   time.Time
}

type ListFilter struct {
	Limit  int
	Offset int
}

type CleaningEntryFilter struct {
	TaskName string
	Since    *time.Time
	Limit    int
	Offset   int
}

type TrainingListFilter struct {
	StaffName string
	Status    string
	Limit     int
	Offset    int
}

type TemperatureListFilter struct {
	Date   string
	Limit  int
	Offset int
}

type AssignedTaskFilter struct {
	Date      string
	StaffName string
	Limit     int
	Offset    int
}
