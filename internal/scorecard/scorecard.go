package scorecard

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sandeepkv93/rxtrack/internal/model"
)

const (
	upcomingLimit    = 5
	recentLimit      = 5
	expiringSoonDays = 7
)

// Snapshot is every record the scorecard is computed from.
type Snapshot struct {
	Staff        []model.StaffMember
	Documents    []model.Document
	Tasks        []model.CleaningTask
	Completions  []model.CompletionEvent
	Training     []model.TrainingItem
	Safeguarding []model.SafeguardingRecord
	Temperatures []model.TemperatureReading
	RPLog        []model.RPLogEntry
	Incidents    []model.Incident
	TrainingLogs []model.TrainingLog
	Assigned     []model.AssignedTask
	Rotation     model.Rotation
}

type Band string

const (
	BandGood Band = "good"
	BandWarn Band = "warn"
	BandBad  Band = "bad"
)

func BandFor(score int) Band {
	switch {
	case score > 80:
		return BandGood
	case score >= 50:
		return BandWarn
	default:
		return BandBad
	}
}

type Category struct {
	Name  string
	Total int
	Good  int
	Score int
}

func (c Category) Band() Band {
	return BandFor(c.Score)
}

type TaskRow struct {
	Task     model.CleaningTask
	Status   model.TaskStatus
	LastDone *time.Time
	Assignee string
}

type DocumentRow struct {
	Document model.Document
	Light    model.TrafficLight
	// DaysLeft is meaningful only when the document has an expiry date.
	DaysLeft int
}

type SafeguardingRow struct {
	Record       model.SafeguardingRecord
	Status       model.SafeguardingStatus
	RefresherDue *time.Time
}

type ActionKind string

const (
	ActionDocumentExpired  ActionKind = "document_expired"
	ActionDocumentExpiring ActionKind = "document_expiring"
	ActionTrainingPending  ActionKind = "training_pending"
	ActionTaskOverdue      ActionKind = "task_overdue"
	ActionSafeguardingDue  ActionKind = "safeguarding_due"
)

type ActionItem struct {
	Kind    ActionKind
	Subject string
	Detail  string
}

type Scorecard struct {
	GeneratedAt  time.Time
	Documents    Category
	Training     Category
	Cleaning     Category
	Safeguarding Category
	Overall      int

	DocumentRows     []DocumentRow
	TaskRows         []TaskRow
	SafeguardingRows []SafeguardingRow
	Actions          []ActionItem
	Upcoming         []DocumentRow

	CompletedToday int
	AllDone        bool
	AllClear       bool

	ReadingsToday []model.TemperatureReading
	OutOfRange    []model.TemperatureReading

	RPLogged  bool
	RPChecked int
	RPTotal   int

	// Most recently recorded first, by CreatedAt.
	RecentTraining []model.TrainingLog
	RecentCleaning []model.CompletionEvent
}

// Categories returns the four category scores in display order.
func (s Scorecard) Categories() []Category {
	return []Category{s.Documents, s.Training, s.Cleaning, s.Safeguarding}
}

// ActionCount groups action items by kind.
func (s Scorecard) ActionCount(kind ActionKind) int {
	n := 0
	for _, a := range s.Actions {
		if a.Kind == kind {
			n++
		}
	}
	return n
}

// Build rolls a snapshot up into category scores, per-record statuses and the
// action list as of now.
func Build(policy model.Policy, snap Snapshot, now time.Time) (Scorecard, error) {
	out := Scorecard{GeneratedAt: now}

	buildDocuments(policy, snap, now, &out)
	buildTraining(policy, snap, &out)
	if err := buildCleaning(policy, snap, now, &out); err != nil {
		return Scorecard{}, err
	}
	buildSafeguarding(policy, snap, now, &out)
	buildDaily(policy, snap, now, &out)
	buildRecent(snap, &out)

	out.Overall = int(math.Round(float64(out.Documents.Score+out.Training.Score+out.Cleaning.Score+out.Safeguarding.Score) / 4))
	out.AllClear = len(out.Actions) == 0
	return out, nil
}

func buildDocuments(policy model.Policy, snap Snapshot, now time.Time, out *Scorecard) {
	out.Documents = Category{Name: "Documents", Total: len(snap.Documents)}
	var expiring []ActionItem
	for _, doc := range snap.Documents {
		row := DocumentRow{Document: doc, Light: policy.TrafficLight(doc.ExpiryDate, now)}
		if doc.ExpiryDate != nil {
			row.DaysLeft = model.DaysUntil(*doc.ExpiryDate, now)
		}
		out.DocumentRows = append(out.DocumentRows, row)

		switch row.Light {
		case model.TrafficGreen:
			out.Documents.Good++
		case model.TrafficRed:
			detail := "no expiry date"
			if doc.ExpiryDate != nil {
				detail = "expired " + model.FormatDate(doc.ExpiryDate)
			}
			out.Actions = append(out.Actions, ActionItem{Kind: ActionDocumentExpired, Subject: doc.Name, Detail: detail})
		}
		if doc.ExpiryDate != nil && row.DaysLeft >= 1 && row.DaysLeft <= expiringSoonDays {
			expiring = append(expiring, ActionItem{
				Kind:    ActionDocumentExpiring,
				Subject: doc.Name,
				Detail:  fmt.Sprintf("expires in %d day%s", row.DaysLeft, plural(row.DaysLeft)),
			})
		}
		if doc.ExpiryDate != nil && (row.Light == model.TrafficAmber || row.Light == model.TrafficGreen) {
			out.Upcoming = append(out.Upcoming, row)
		}
	}
	out.Actions = append(out.Actions, expiring...)
	out.Documents.Score = policy.Score(out.Documents.Total, out.Documents.Good)

	sort.SliceStable(out.Upcoming, func(i, j int) bool {
		return out.Upcoming[i].Document.ExpiryDate.Before(*out.Upcoming[j].Document.ExpiryDate)
	})
	if len(out.Upcoming) > upcomingLimit {
		out.Upcoming = out.Upcoming[:upcomingLimit]
	}
}

func buildTraining(policy model.Policy, snap Snapshot, out *Scorecard) {
	out.Training = Category{Name: "Staff Training", Total: len(snap.Training)}
	for _, item := range snap.Training {
		switch item.Status {
		case model.TrainingComplete:
			out.Training.Good++
		case model.TrainingPending:
			out.Actions = append(out.Actions, ActionItem{Kind: ActionTrainingPending, Subject: item.StaffName, Detail: item.Item})
		}
	}
	out.Training.Score = policy.Score(out.Training.Total, out.Training.Good)
}

func buildCleaning(policy model.Policy, snap Snapshot, now time.Time, out *Scorecard) error {
	out.Cleaning = Category{Name: "Cleaning Tasks", Total: len(snap.Tasks)}
	needsAction := 0
	byFrequency := make(map[model.Frequency]int)
	for _, task := range snap.Tasks {
		status, err := policy.TaskStatus(task.Name, task.Frequency, snap.Completions, now)
		if err != nil {
			return fmt.Errorf("task %q: %w", task.Name, err)
		}
		row := TaskRow{
			Task:     task,
			Status:   status,
			Assignee: snap.Rotation.Assignee(task.Name, task.Frequency, byFrequency[task.Frequency], now),
		}
		byFrequency[task.Frequency]++
		if last, ok := model.LastCompletion(task.Name, snap.Completions); ok {
			row.LastDone = &last
		}
		out.TaskRows = append(out.TaskRows, row)

		if status.Good() {
			out.Cleaning.Good++
		}
		if status.NeedsAction() {
			needsAction++
		}
		if status == model.TaskOverdue {
			detail := "never completed"
			if row.LastDone != nil {
				detail = "last done " + model.FormatDate(row.LastDone)
			}
			out.Actions = append(out.Actions, ActionItem{Kind: ActionTaskOverdue, Subject: task.Name, Detail: detail})
		}
	}
	out.Cleaning.Score = policy.Score(out.Cleaning.Total, out.Cleaning.Good)
	out.AllDone = needsAction == 0 && len(snap.Tasks) > 0

	for _, ev := range snap.Completions {
		if model.SameDay(ev.At, now) {
			out.CompletedToday++
		}
	}
	return nil
}

func buildSafeguarding(policy model.Policy, snap Snapshot, now time.Time, out *Scorecard) {
	out.Safeguarding = Category{Name: "Safeguarding", Total: len(snap.Safeguarding)}
	for _, rec := range snap.Safeguarding {
		row := SafeguardingRow{Record: rec, Status: policy.SafeguardingStatus(rec.TrainingDate, now)}
		if rec.TrainingDate != nil {
			due := policy.RefresherDate(*rec.TrainingDate)
			row.RefresherDue = &due
		}
		out.SafeguardingRows = append(out.SafeguardingRows, row)

		switch row.Status {
		case model.SafeguardingCurrent:
			out.Safeguarding.Good++
		case model.SafeguardingDueSoon, model.SafeguardingOverdue:
			out.Actions = append(out.Actions, ActionItem{Kind: ActionSafeguardingDue, Subject: rec.StaffName, Detail: row.Status.Label()})
		}
	}
	out.Safeguarding.Score = policy.Score(out.Safeguarding.Total, out.Safeguarding.Good)
}

func buildDaily(policy model.Policy, snap Snapshot, now time.Time, out *Scorecard) {
	for _, r := range snap.Temperatures {
		if model.DaysUntil(r.Date, now) != 0 {
			continue
		}
		out.ReadingsToday = append(out.ReadingsToday, r)
		if !policy.TemperatureInRange(r.Celsius) {
			out.OutOfRange = append(out.OutOfRange, r)
		}
	}

	out.RPTotal = len(model.RPItems())
	for _, entry := range snap.RPLog {
		if model.DaysUntil(entry.Date, now) != 0 {
			continue
		}
		out.RPLogged = true
		out.RPChecked, _ = entry.Completion(model.RPItems())
		break
	}
}

func buildRecent(snap Snapshot, out *Scorecard) {
	out.RecentTraining = append([]model.TrainingLog(nil), snap.TrainingLogs...)
	sort.SliceStable(out.RecentTraining, func(i, j int) bool {
		return out.RecentTraining[i].CreatedAt.After(out.RecentTraining[j].CreatedAt)
	})
	if len(out.RecentTraining) > recentLimit {
		out.RecentTraining = out.RecentTraining[:recentLimit]
	}

	out.RecentCleaning = append([]model.CompletionEvent(nil), snap.Completions...)
	sort.SliceStable(out.RecentCleaning, func(i, j int) bool {
		return out.RecentCleaning[i].CreatedAt.After(out.RecentCleaning[j].CreatedAt)
	})
	if len(out.RecentCleaning) > recentLimit {
		out.RecentCleaning = out.RecentCleaning[:recentLimit]
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
