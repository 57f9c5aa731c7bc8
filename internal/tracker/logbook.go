package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sandeepkv93/rxtrack/internal/model"
	"github.com/sandeepkv93/rxtrack/internal/scorecard"
	"github.com/sandeepkv93/rxtrack/internal/storage"
)

var (
	ErrUnknownStaff        = errors.New("tracker: unknown staff member")
	ErrUnknownAssignedTask = errors.New("tracker: unknown assigned task")
	ErrInvalidDate         = errors.New("tracker: invalid date")
)

// IncidentInput is a quick incident report. Empty fields take the defaults:
// a low severity near miss dated today.
type IncidentInput struct {
	Type        string
	Severity    string
	Description string
	Date        string
}

func (s *Service) ReportIncident(ctx context.Context, in IncidentInput) (model.Incident, error) {
	now := s.Now()
	inc := model.Incident{
		ID:          storage.NewID(),
		Date:        model.StartOfDay(now),
		Type:        model.IncidentNearMiss,
		Severity:    model.SeverityLow,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now.UTC(),
	}
	if strings.TrimSpace(in.Type) != "" {
		t, err := model.ParseIncidentType(in.Type)
		if err != nil {
			return model.Incident{}, err
		}
		inc.Type = t
	}
	if strings.TrimSpace(in.Severity) != "" {
		sev, err := model.ParseSeverity(in.Severity)
		if err != nil {
			return model.Incident{}, err
		}
		inc.Severity = sev
	}
	if strings.TrimSpace(in.Date) != "" {
		d, err := s.parseDate(in.Date)
		if err != nil {
			return model.Incident{}, err
		}
		inc.Date = *d
	}
	if err := inc.Validate(); err != nil {
		return model.Incident{}, err
	}
	if err := s.repo.CreateIncident(ctx, storage.IncidentFromModel(inc)); err != nil {
		return model.Incident{}, fmt.Errorf("report incident: %w", err)
	}
	s.logger.Info("incident reported",
		zap.String("type", string(inc.Type)),
		zap.String("severity", string(inc.Severity)),
		zap.String("date", inc.Date.Format(model.DateLayout)),
	)
	return inc, nil
}

type TrainingLogInput struct {
	StaffName         string
	DateCompleted     string
	Topic             string
	TrainerName       string
	CertificateExpiry string
	Notes             string
}

// LogTraining records a completed session. Staff, completion date and topic
// are required; a certificate expiry is optional.
func (s *Service) LogTraining(ctx context.Context, in TrainingLogInput) (model.TrainingLog, error) {
	entry := model.TrainingLog{
		ID:          storage.NewID(),
		StaffName:   strings.TrimSpace(in.StaffName),
		Topic:       strings.TrimSpace(in.Topic),
		TrainerName: strings.TrimSpace(in.TrainerName),
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   s.Now().UTC(),
	}
	if strings.TrimSpace(in.DateCompleted) != "" {
		d, err := s.parseDate(in.DateCompleted)
		if err != nil {
			return model.TrainingLog{}, err
		}
		entry.DateCompleted = d
	}
	if strings.TrimSpace(in.CertificateExpiry) != "" {
		d, err := s.parseDate(in.CertificateExpiry)
		if err != nil {
			return model.TrainingLog{}, err
		}
		entry.CertificateExpiry = d
	}
	if err := entry.Validate(); err != nil {
		return model.TrainingLog{}, err
	}
	if err := s.repo.CreateTrainingLog(ctx, storage.TrainingLogFromModel(entry)); err != nil {
		return model.TrainingLog{}, fmt.Errorf("log training: %w", err)
	}
	s.logger.Info("training logged", zap.String("staff", entry.StaffName), zap.String("topic", entry.Topic))
	return entry, nil
}

// AssignTask gives staff a one-off task for today. staff is matched against
// the staff list and rotation roster like a task name.
func (s *Service) AssignTask(ctx context.Context, staff, title, createdBy string) (model.AssignedTask, error) {
	name, err := s.resolveStaff(ctx, staff)
	if err != nil {
		return model.AssignedTask{}, err
	}
	now := s.Now()
	task := model.AssignedTask{
		ID:        storage.NewID(),
		StaffName: name,
		Title:     strings.TrimSpace(title),
		Date:      model.StartOfDay(now),
		CreatedBy: strings.TrimSpace(createdBy),
		CreatedAt: now.UTC(),
	}
	if err := task.Validate(); err != nil {
		return model.AssignedTask{}, err
	}
	if err := s.repo.CreateAssignedTask(ctx, storage.AssignedTaskFromModel(task)); err != nil {
		return model.AssignedTask{}, fmt.Errorf("assign task: %w", err)
	}
	s.logger.Info("task assigned", zap.String("staff", name), zap.String("title", task.Title))
	return task, nil
}

// ToggleAssignedTask completes or reopens an assigned task. target is an id
// or a unique id prefix.
func (s *Service) ToggleAssignedTask(ctx context.Context, target, by string) (model.AssignedTask, error) {
	row, err := s.findAssigned(ctx, strings.TrimSpace(target))
	if err != nil {
		return model.AssignedTask{}, err
	}
	task, err := storage.AssignedTaskToModel(row, s.loc)
	if err != nil {
		return model.AssignedTask{}, err
	}
	by = strings.TrimSpace(by)
	if by == "" {
		by = task.StaffName
	}
	task.Toggle(by, s.Now().UTC())
	if err := s.repo.UpdateAssignedTask(ctx, storage.AssignedTaskFromModel(task)); err != nil {
		return model.AssignedTask{}, fmt.Errorf("update assigned task %s: %w", task.ID, err)
	}
	s.logger.Info("assigned task toggled", zap.String("id", task.ID), zap.Bool("completed", task.Completed))
	return task, nil
}

// MyTasks is staff's rotation and assigned work for today.
func (s *Service) MyTasks(ctx context.Context, staff string) (scorecard.StaffDay, error) {
	name, err := s.resolveStaff(ctx, staff)
	if err != nil {
		return scorecard.StaffDay{}, err
	}
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return scorecard.StaffDay{}, err
	}
	return scorecard.TasksFor(snap, name, s.Now()), nil
}

func (s *Service) TeamProgress(ctx context.Context) ([]scorecard.StaffDay, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return scorecard.TeamProgress(snap, s.Now()), nil
}

func (s *Service) resolveStaff(ctx context.Context, query string) (string, error) {
	staff, err := s.repo.ListStaff(ctx, storage.ListFilter{})
	if err != nil {
		return "", fmt.Errorf("list staff: %w", err)
	}
	seen := make(map[string]bool)
	names := make([]string, 0, len(staff)+len(s.rotation.Staff))
	for _, m := range staff {
		names = append(names, m.Name)
		seen[strings.ToLower(m.Name)] = true
	}
	for _, n := range s.rotation.Staff {
		if !seen[strings.ToLower(n)] {
			names = append(names, n)
			seen[strings.ToLower(n)] = true
		}
	}
	return match(query, names, ErrUnknownStaff)
}

func (s *Service) findAssigned(ctx context.Context, target string) (storage.AssignedTask, error) {
	if target == "" {
		return storage.AssignedTask{}, fmt.Errorf("%w: empty id", ErrUnknownAssignedTask)
	}
	row, err := s.repo.GetAssignedTask(ctx, target)
	if err == nil {
		return row, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return storage.AssignedTask{}, err
	}
	rows, err := s.repo.ListAssignedTasks(ctx, storage.AssignedTaskFilter{})
	if err != nil {
		return storage.AssignedTask{}, fmt.Errorf("list assigned tasks: %w", err)
	}
	var found []storage.AssignedTask
	for _, r := range rows {
		if strings.HasPrefix(r.ID, target) {
			found = append(found, r)
		}
	}
	switch len(found) {
	case 0:
		return storage.AssignedTask{}, fmt.Errorf("%w: %q", ErrUnknownAssignedTask, target)
	case 1:
		return found[0], nil
	default:
		return storage.AssignedTask{}, fmt.Errorf("%w: %d assigned tasks start with %q", ErrAmbiguous, len(found), target)
	}
}

func (s *Service) parseDate(raw string) (*time.Time, error) {
	d := model.ParseDate(raw, s.loc)
	if d == nil {
		return nil, fmt.Errorf("%w: %q (want YYYY-MM-DD)", ErrInvalidDate, raw)
	}
	day := model.StartOfDay(*d)
	return &day, nil
}
