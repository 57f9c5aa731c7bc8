// Package seed loads YAML fixtures into the store.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/rxtrack/internal/model"
	"github.com/sandeepkv93/rxtrack/internal/storage"
)

//go:embed default.yaml
var defaultFixtures []byte

var ErrInvalidFixture = errors.New("seed: invalid fixture")

type Fixtures struct {
	Staff         []string             `yaml:"staff"`
	CleaningTasks []CleaningTask       `yaml:"cleaning_tasks"`
	Documents     []Document           `yaml:"documents"`
	Training      []TrainingItem       `yaml:"training"`
	Safeguarding  []SafeguardingRecord `yaml:"safeguarding"`
	Completions   []Completion         `yaml:"completions"`
}

type CleaningTask struct {
	Name      string `yaml:"name"`
	Frequency string `yaml:"frequency"`
}

type Document struct {
	Name       string `yaml:"name"`
	Category   string `yaml:"category"`
	Owner      string `yaml:"owner"`
	IssueDate  string `yaml:"issue_date"`
	ExpiryDate string `yaml:"expiry_date"`
	Notes      string `yaml:"notes"`
}

type TrainingItem struct {
	Staff      string `yaml:"staff"`
	Role       string `yaml:"role"`
	Item       string `yaml:"item"`
	TargetDate string `yaml:"target_date"`
	Status     string `yaml:"status"`
}

type SafeguardingRecord struct {
	Staff           string `yaml:"staff"`
	JobTitle        string `yaml:"job_title"`
	TrainingDate    string `yaml:"training_date"`
	DeliveredBy     string `yaml:"delivered_by"`
	Method          string `yaml:"method"`
	HandbookVersion string `yaml:"handbook_version"`
	SignedOff       bool   `yaml:"signed_off"`
}

type Completion struct {
	Task   string `yaml:"task"`
	At     string `yaml:"at"`
	Staff  string `yaml:"staff"`
	Result string `yaml:"result"`
	Notes  string `yaml:"notes"`
}

// Result counts what Apply wrote.
type Result struct {
	Staff         int
	CleaningTasks int
	Skipped       int
	Documents     int
	Training      int
	Safeguarding  int
	Completions   int
}

func Load(r io.Reader) (Fixtures, error) {
	var fx Fixtures
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil {
		if errors.Is(err, io.EOF) {
			return Fixtures{}, nil
		}
		return Fixtures{}, fmt.Errorf("parse fixtures: %w", err)
	}
	if err := fx.Validate(); err != nil {
		return Fixtures{}, err
	}
	return fx, nil
}

// Default returns the built-in cleaning rota.
func Default() Fixtures {
	fx, err := Load(bytes.NewReader(defaultFixtures))
	if err != nil {
		panic(fmt.Sprintf("seed: embedded fixtures: %v", err))
	}
	return fx
}

func (fx Fixtures) Validate() error {
	for i, t := range fx.CleaningTasks {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("%w: cleaning task %d has no name", ErrInvalidFixture, i)
		}
		if _, err := model.ParseFrequency(t.Frequency); err != nil {
			return fmt.Errorf("%w: cleaning task %q: %w", ErrInvalidFixture, t.Name, err)
		}
	}
	for i, d := range fx.Documents {
		if strings.TrimSpace(d.Name) == "" {
			return fmt.Errorf("%w: document %d has no name", ErrInvalidFixture, i)
		}
		if d.Category != "" && !model.DocumentCategory(d.Category).IsValid() {
			return fmt.Errorf("%w: document %q: %w: %q", ErrInvalidFixture, d.Name, model.ErrInvalidCategory, d.Category)
		}
	}
	for i, t := range fx.Training {
		if strings.TrimSpace(t.Staff) == "" || strings.TrimSpace(t.Item) == "" {
			return fmt.Errorf("%w: training %d needs staff and item", ErrInvalidFixture, i)
		}
		if t.Status != "" && !model.TrainingStatus(t.Status).IsValid() {
			return fmt.Errorf("%w: training %d: %w: %q", ErrInvalidFixture, i, model.ErrInvalidTrainingStatus, t.Status)
		}
	}
	for i, s := range fx.Safeguarding {
		if strings.TrimSpace(s.Staff) == "" {
			return fmt.Errorf("%w: safeguarding %d has no staff", ErrInvalidFixture, i)
		}
	}
	for i, c := range fx.Completions {
		if strings.TrimSpace(c.Task) == "" {
			return fmt.Errorf("%w: completion %d has no task", ErrInvalidFixture, i)
		}
		if model.ParseDate(c.At, time.UTC) == nil {
			return fmt.Errorf("%w: completion %d has unreadable time %q", ErrInvalidFixture, i, c.At)
		}
	}
	return nil
}

// Apply inserts fx. Staff and cleaning tasks that already exist by name are
// skipped so the default rota can be applied repeatedly.
func Apply(ctx context.Context, repo storage.Repository, fx Fixtures, now time.Time) (Result, error) {
	var res Result
	if err := fx.Validate(); err != nil {
		return res, err
	}

	existingStaff, err := repo.ListStaff(ctx, storage.ListFilter{})
	if err != nil {
		return res, fmt.Errorf("list staff: %w", err)
	}
	staffNames := make(map[string]bool, len(existingStaff))
	for _, s := range existingStaff {
		staffNames[strings.ToLower(s.Name)] = true
	}
	for _, name := range fx.Staff {
		name = strings.TrimSpace(name)
		if name == "" || staffNames[strings.ToLower(name)] {
			res.Skipped++
			continue
		}
		if err := repo.CreateStaff(ctx, storage.StaffMember{ID: storage.NewID(), Name: name, CreatedAt: now}); err != nil {
			return res, fmt.Errorf("create staff %q: %w", name, err)
		}
		staffNames[strings.ToLower(name)] = true
		res.Staff++
	}

	existingTasks, err := repo.ListCleaningTasks(ctx, storage.ListFilter{})
	if err != nil {
		return res, fmt.Errorf("list cleaning tasks: %w", err)
	}
	taskNames := make(map[string]bool, len(existingTasks))
	for _, t := range existingTasks {
		taskNames[strings.ToLower(t.Name)] = true
	}
	for _, t := range fx.CleaningTasks {
		name := strings.TrimSpace(t.Name)
		if taskNames[strings.ToLower(name)] {
			res.Skipped++
			continue
		}
		freq, _ := model.ParseFrequency(t.Frequency)
		if err := repo.CreateCleaningTask(ctx, storage.CleaningTask{
			ID:        storage.NewID(),
			Name:      name,
			Frequency: string(freq),
			CreatedAt: now,
		}); err != nil {
			return res, fmt.Errorf("create cleaning task %q: %w", name, err)
		}
		taskNames[strings.ToLower(name)] = true
		res.CleaningTasks++
	}

	for _, d := range fx.Documents {
		if err := repo.CreateDocument(ctx, storage.Document{
			ID:         storage.NewID(),
			Name:       strings.TrimSpace(d.Name),
			Category:   d.Category,
			Owner:      d.Owner,
			IssueDate:  d.IssueDate,
			ExpiryDate: d.ExpiryDate,
			Notes:      d.Notes,
			CreatedAt:  now,
		}); err != nil {
			return res, fmt.Errorf("create document %q: %w", d.Name, err)
		}
		res.Documents++
	}

	for _, t := range fx.Training {
		status := t.Status
		if status == "" {
			status = string(model.TrainingPending)
		}
		if err := repo.CreateTraining(ctx, storage.TrainingItem{
			ID:         storage.NewID(),
			StaffName:  strings.TrimSpace(t.Staff),
			Role:       t.Role,
			Item:       strings.TrimSpace(t.Item),
			TargetDate: t.TargetDate,
			Status:     status,
			CreatedAt:  now,
		}); err != nil {
			return res, fmt.Errorf("create training for %q: %w", t.Staff, err)
		}
		res.Training++
	}

	for _, s := range fx.Safeguarding {
		if err := repo.CreateSafeguarding(ctx, storage.SafeguardingRecord{
			ID:              storage.NewID(),
			StaffName:       strings.TrimSpace(s.Staff),
			JobTitle:        s.JobTitle,
			TrainingDate:    s.TrainingDate,
			DeliveredBy:     s.DeliveredBy,
			Method:          s.Method,
			HandbookVersion: s.HandbookVersion,
			SignedOff:       s.SignedOff,
			CreatedAt:       now,
		}); err != nil {
			return res, fmt.Errorf("create safeguarding for %q: %w", s.Staff, err)
		}
		res.Safeguarding++
	}

	for _, c := range fx.Completions {
		at := model.ParseDate(c.At, now.Location())
		if err := repo.CreateCleaningEntry(ctx, storage.CleaningEntry{
			ID:          storage.NewID(),
			TaskName:    strings.TrimSpace(c.Task),
			CompletedAt: *at,
			StaffMember: c.Staff,
			Result:      c.Result,
			Notes:       c.Notes,
			CreatedAt:   now,
		}); err != nil {
			return res, fmt.Errorf("create completion for %q: %w", c.Task, err)
		}
		res.Completions++
	}
	return res, nil
}
