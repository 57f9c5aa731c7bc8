package storage

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sandeepkv93/rxtrack/internal/model"
	"github.com/sandeepkv93/rxtrack/internal/scorecard"
)

func StaffToModel(in StaffMember) model.StaffMember {
	return model.StaffMember{ID: in.ID, Name: in.Name, CreatedAt: in.CreatedAt}
}

func DocumentToModel(in Document, loc *time.Location) model.Document {
	return model.Document{
		ID:         in.ID,
		Name:       in.Name,
		Category:   model.DocumentCategory(in.Category),
		Owner:      in.Owner,
		IssueDate:  model.ParseDate(in.IssueDate, loc),
		ExpiryDate: model.ParseDate(in.ExpiryDate, loc),
		Notes:      in.Notes,
		CreatedAt:  in.CreatedAt,
	}
}

func DocumentFromModel(in model.Document) Document {
	return Document{
		ID:         in.ID,
		Name:       in.Name,
		Category:   string(in.Category),
		Owner:      in.Owner,
		IssueDate:  model.FormatDate(in.IssueDate),
		ExpiryDate: model.FormatDate(in.ExpiryDate),
		Notes:      in.Notes,
		CreatedAt:  in.CreatedAt,
	}
}

func CleaningTaskToModel(in CleaningTask) model.CleaningTask {
	return model.CleaningTask{
		ID:        in.ID,
		Name:      in.Name,
		Frequency: model.Frequency(in.Frequency),
		CreatedAt: in.CreatedAt,
	}
}

// CompletionToModel falls back to reading CompletedRaw in loc, so a local
// timestamp such as 2026-03-10T09:15 still counts.
func CompletionToModel(in CleaningEntry, loc *time.Location) (model.CompletionEvent, error) {
	at := in.CompletedAt
	if at.IsZero() {
		d := model.ParseDate(in.CompletedRaw, loc)
		if d == nil {
			return model.CompletionEvent{}, fmt.Errorf("cleaning entry %s: bad completion time %q", in.ID, in.CompletedRaw)
		}
		at = *d
	}
	return model.CompletionEvent{
		ID:          in.ID,
		TaskName:    in.TaskName,
		At:          at,
		StaffMember: in.StaffMember,
		Result:      in.Result,
		Notes:       in.Notes,
		CreatedAt:   in.CreatedAt,
	}, nil
}

func CompletionFromModel(in model.CompletionEvent) CleaningEntry {
	return CleaningEntry{
		ID:          in.ID,
		TaskName:    in.TaskName,
		CompletedAt: in.At,
		StaffMember: in.StaffMember,
		Result:      in.Result,
		Notes:       in.Notes,
		CreatedAt:   in.CreatedAt,
	}
}

func TrainingToModel(in TrainingItem, loc *time.Location) model.TrainingItem {
	return model.TrainingItem{
		ID:         in.ID,
		StaffName:  in.StaffName,
		Role:       in.Role,
		Item:       in.Item,
		TargetDate: model.ParseDate(in.TargetDate, loc),
		Status:     model.TrainingStatus(in.Status),
		CreatedAt:  in.CreatedAt,
	}
}

func SafeguardingToModel(in SafeguardingRecord, loc *time.Location) model.SafeguardingRecord {
	return model.SafeguardingRecord{
		ID:              in.ID,
		StaffName:       in.StaffName,
		JobTitle:        in.JobTitle,
		TrainingDate:    model.ParseDate(in.TrainingDate, loc),
		DeliveredBy:     in.DeliveredBy,
		Method:          in.Method,
		HandbookVersion: in.HandbookVersion,
		SignedOff:       in.SignedOff,
		CreatedAt:       in.CreatedAt,
	}
}

// TemperatureToModel fails on an unreadable date: a reading without a day
// cannot be attributed to one.
func TemperatureToModel(in TemperatureLog, loc *time.Location) (model.TemperatureReading, error) {
	d := model.ParseDate(in.Date, loc)
	if d == nil {
		return model.TemperatureReading{}, fmt.Errorf("temperature %s: bad date %q", in.ID, in.Date)
	}
	return model.TemperatureReading{
		ID:        in.ID,
		Date:      *d,
		Time:      in.Time,
		Celsius:   in.Celsius,
		LoggedBy:  in.LoggedBy,
		Notes:     in.Notes,
		CreatedAt: in.CreatedAt,
	}, nil
}

func RPLogToModel(in RPLog, loc *time.Location) (model.RPLogEntry, error) {
	d := model.ParseDate(in.Date, loc)
	if d == nil {
		return model.RPLogEntry{}, fmt.Errorf("rp log %s: bad date %q", in.ID, in.Date)
	}
	return model.RPLogEntry{
		ID:         in.ID,
		Date:       *d,
		Pharmacist: in.Pharmacist,
		Checklist:  in.Checklist,
		Notes:      in.Notes,
		CreatedAt:  in.CreatedAt,
	}, nil
}

func RPLogFromModel(in model.RPLogEntry) RPLog {
	return RPLog{
		ID:         in.ID,
		Date:       in.Date.Format(model.DateLayout),
		Pharmacist: in.Pharmacist,
		Checklist:  in.Checklist,
		Notes:      in.Notes,
		CreatedAt:  in.CreatedAt,
	}
}

func IncidentToModel(in Incident, loc *time.Location) (model.Incident, error) {
	d := model.ParseDate(in.Date, loc)
	if d == nil {
		return model.Incident{}, fmt.Errorf("incident %s: bad date %q", in.ID, in.Date)
	}
	return model.Incident{
		ID:          in.ID,
		Date:        *d,
		Type:        model.IncidentType(in.Type),
		Description: in.Description,
		Severity:    model.Severity(in.Severity),
		CreatedAt:   in.CreatedAt,
	}, nil
}

func IncidentFromModel(in model.Incident) Incident {
	return Incident{
		ID:          in.ID,
		Date:        in.Date.Format(model.DateLayout),
		Type:        string(in.Type),
		Description: in.Description,
		Severity:    string(in.Severity),
		CreatedAt:   in.CreatedAt,
	}
}

func TrainingLogToModel(in TrainingLog, loc *time.Location) model.TrainingLog {
	return model.TrainingLog{
		ID:                in.ID,
		StaffName:         in.StaffName,
		DateCompleted:     model.ParseDate(in.DateCompleted, loc),
		Topic:             in.Topic,
		TrainerName:       in.TrainerName,
		CertificateExpiry: model.ParseDate(in.CertificateExpiry, loc),
		Notes:             in.Notes,
		CreatedAt:         in.CreatedAt,
	}
}

func TrainingLogFromModel(in model.TrainingLog) TrainingLog {
	return TrainingLog{
		ID:                in.ID,
		StaffName:         in.StaffName,
		DateCompleted:     model.FormatDate(in.DateCompleted),
		Topic:             in.Topic,
		TrainerName:       in.TrainerName,
		CertificateExpiry: model.FormatDate(in.CertificateExpiry),
		Notes:             in.Notes,
		CreatedAt:         in.CreatedAt,
	}
}

func AssignedTaskToModel(in AssignedTask, loc *time.Location) (model.AssignedTask, error) {
	d := model.ParseDate(in.Date, loc)
	if d == nil {
		return model.AssignedTask{}, fmt.Errorf("assigned task %s: bad date %q", in.ID, in.Date)
	}
	return model.AssignedTask{
		ID:          in.ID,
		StaffName:   in.StaffName,
		Title:       in.Title,
		Date:        *d,
		Completed:   in.Completed,
		CompletedBy: in.CompletedBy,
		CompletedAt: in.CompletedAt,
		Notes:       in.Notes,
		CreatedBy:   in.CreatedBy,
		CreatedAt:   in.CreatedAt,
	}, nil
}

func AssignedTaskFromModel(in model.AssignedTask) AssignedTask {
	return AssignedTask{
		ID:          in.ID,
		StaffName:   in.StaffName,
		Title:       in.Title,
		Date:        in.Date.Format(model.DateLayout),
		Completed:   in.Completed,
		CompletedBy: in.CompletedBy,
		CompletedAt: in.CompletedAt,
		Notes:       in.Notes,
		CreatedBy:   in.CreatedBy,
		CreatedAt:   in.CreatedAt,
	}
}

// LoadSnapshot reads every table into a scorecard snapshot. Dates without an
// offset are interpreted in loc. Tables are read concurrently; each goroutine
// owns one snapshot field. Rows whose date is required but cannot be read
// (completions, readings, RP logs, incidents, assigned tasks) are skipped
// with a warning instead of failing the load.
func LoadSnapshot(ctx context.Context, repo Repository, loc *time.Location, logger *zap.Logger) (scorecard.Snapshot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var snap scorecard.Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		staff, err := repo.ListStaff(gctx, ListFilter{})
		if err != nil {
			return fmt.Errorf("list staff: %w", err)
		}
		for _, s := range staff {
			snap.Staff = append(snap.Staff, StaffToModel(s))
		}
		return nil
	})
	g.Go(func() error {
		docs, err := repo.ListDocuments(gctx, ListFilter{})
		if err != nil {
			return fmt.Errorf("list documents: %w", err)
		}
		for _, d := range docs {
			snap.Documents = append(snap.Documents, DocumentToModel(d, loc))
		}
		return nil
	})
	g.Go(func() error {
		tasks, err := repo.ListCleaningTasks(gctx, ListFilter{})
		if err != nil {
			return fmt.Errorf("list cleaning tasks: %w", err)
		}
		for _, t := range tasks {
			snap.Tasks = append(snap.Tasks, CleaningTaskToModel(t))
		}
		return nil
	})
	g.Go(func() error {
		entries, err := repo.ListCleaningEntries(gctx, CleaningEntryFilter{})
		if err != nil {
			return fmt.Errorf("list cleaning entries: %w", err)
		}
		for _, e := range entries {
			ev, err := CompletionToModel(e, loc)
			if err != nil {
				logger.Warn("skip cleaning entry", zap.String("id", e.ID), zap.Error(err))
				continue
			}
			snap.Completions = append(snap.Completions, ev)
		}
		return nil
	})
	g.Go(func() error {
		training, err := repo.ListTraining(gctx, TrainingListFilter{})
		if err != nil {
			return fmt.Errorf("list training: %w", err)
		}
		for _, t := range training {
			snap.Training = append(snap.Training, TrainingToModel(t, loc))
		}
		return nil
	})
	g.Go(func() error {
		records, err := repo.ListSafeguarding(gctx, ListFilter{})
		if err != nil {
			return fmt.Errorf("list safeguarding: %w", err)
		}
		for _, r := range records {
			snap.Safeguarding = append(snap.Safeguarding, SafeguardingToModel(r, loc))
		}
		return nil
	})
	g.Go(func() error {
		temps, err := repo.ListTemperatures(gctx, TemperatureListFilter{})
		if err != nil {
			return fmt.Errorf("list temperatures: %w", err)
		}
		for _, t := range temps {
			reading, err := TemperatureToModel(t, loc)
			if err != nil {
				logger.Warn("skip temperature reading", zap.String("id", t.ID), zap.Error(err))
				continue
			}
			snap.Temperatures = append(snap.Temperatures, reading)
		}
		return nil
	})
	g.Go(func() error {
		logs, err := repo.ListRPLogs(gctx, ListFilter{})
		if err != nil {
			return fmt.Errorf("list rp log: %w", err)
		}
		for _, l := range logs {
			entry, err := RPLogToModel(l, loc)
			if err != nil {
				logger.Warn("skip rp log", zap.String("id", l.ID), zap.Error(err))
				continue
			}
			snap.RPLog = append(snap.RPLog, entry)
		}
		return nil
	})

	g.Go(func() error {
		rows, err := repo.ListIncidents(gctx, ListFilter{})
		if err != nil {
			return fmt.Errorf("list incidents: %w", err)
		}
		for _, r := range rows {
			in, err := IncidentToModel(r, loc)
			if err != nil {
				logger.Warn("skip incident", zap.String("id", r.ID), zap.Error(err))
				continue
			}
			snap.Incidents = append(snap.Incidents, in)
		}
		return nil
	})
	g.Go(func() error {
		rows, err := repo.ListTrainingLogs(gctx, ListFilter{})
		if err != nil {
			return fmt.Errorf("list training logs: %w", err)
		}
		for _, r := range rows {
			snap.TrainingLogs = append(snap.TrainingLogs, TrainingLogToModel(r, loc))
		}
		return nil
	})
	g.Go(func() error {
		rows, err := repo.ListAssignedTasks(gctx, AssignedTaskFilter{})
		if err != nil {
			return fmt.Errorf("list assigned tasks: %w", err)
		}
		for _, r := range rows {
			task, err := AssignedTaskToModel(r, loc)
			if err != nil {
				logger.Warn("skip assigned task", zap.String("id", r.ID), zap.Error(err))
				continue
			}
			snap.Assigned = append(snap.Assigned, task)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return scorecard.Snapshot{}, err
	}
	return snap, nil
}
