// Package tracker is the write path shared by the CLI and the TUI: it resolves
// user input against stored records and persists completions, readings,
// checklist ticks and training progress.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sandeepkv93/rxtrack/internal/alerts"
	"github.com/sandeepkv93/rxtrack/internal/model"
	"github.com/sandeepkv93/rxtrack/internal/scheduler"
	"github.com/sandeepkv93/rxtrack/internal/scorecard"
	"github.com/sandeepkv93/rxtrack/internal/storage"
)

var (
	ErrUnknownTask     = errors.New("tracker: unknown cleaning task")
	ErrUnknownTraining = errors.New("tracker: unknown training item")
	ErrUnknownRPItem   = errors.New("tracker: unknown checklist item")
	ErrAmbiguous       = errors.New("tracker: ambiguous match")
	ErrNoPharmacist    = errors.New("tracker: no responsible pharmacist")
)

type Service struct {
	repo     storage.Repository
	policy   model.Policy
	rotation model.Rotation
	loc      *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func New(repo storage.Repository, policy model.Policy, rotation model.Rotation, loc *time.Location, opts ...Option) *Service {
	if loc == nil {
		loc = time.Local
	}
	s := &Service{
		repo:     repo,
		policy:   policy,
		rotation: rotation,
		loc:      loc,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now is the current time in the pharmacy's timezone.
func (s *Service) Now() time.Time {
	return s.now().In(s.loc)
}

func (s *Service) Policy() model.Policy {
	return s.policy
}

// Snapshot loads every record. When no rotation roster is configured the
// staff table is used in name order.
func (s *Service) Snapshot(ctx context.Context) (scorecard.Snapshot, error) {
	snap, err := storage.LoadSnapshot(ctx, s.repo, s.loc, s.logger)
	if err != nil {
		return scorecard.Snapshot{}, err
	}
	snap.Rotation = s.rotation
	if len(snap.Rotation.Staff) == 0 {
		for _, m := range snap.Staff {
			snap.Rotation.Staff = append(snap.Rotation.Staff, m.Name)
		}
	}
	return snap, nil
}

func (s *Service) Scorecard(ctx context.Context) (scorecard.Scorecard, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return scorecard.Scorecard{}, err
	}
	return scorecard.Build(s.policy, snap, s.Now())
}

// Alerts plans the next status change of every tracked item.
func (s *Service) Alerts(ctx context.Context) ([]scheduler.AlertEvent, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return alerts.Plan(s.policy, snap, s.Now())
}

// LogCompletion records that taskName was done now. The name is matched
// case-insensitively, falling back to a unique prefix.
func (s *Service) LogCompletion(ctx context.Context, taskName, staff, notes string) (model.CompletionEvent, error) {
	tasks, err := s.repo.ListCleaningTasks(ctx, storage.ListFilter{})
	if err != nil {
		return model.CompletionEvent{}, fmt.Errorf("list cleaning tasks: %w", err)
	}
	names := make([]string, 0, len(tasks))
	for _, t := range tasks {
		names = append(names, t.Name)
	}
	name, err := match(taskName, names, ErrUnknownTask)
	if err != nil {
		return model.CompletionEvent{}, err
	}

	now := s.Now()
	ev := model.CompletionEvent{
		ID:          storage.NewID(),
		TaskName:    name,
		At:          now,
		StaffMember: strings.TrimSpace(staff),
		Result:      "Completed",
		Notes:       strings.TrimSpace(notes),
		CreatedAt:   now.UTC(),
	}
	if err := ev.Validate(); err != nil {
		return model.CompletionEvent{}, err
	}
	if err := s.repo.CreateCleaningEntry(ctx, storage.CompletionFromModel(ev)); err != nil {
		return model.CompletionEvent{}, fmt.Errorf("log %q: %w", name, err)
	}
	s.logger.Info("cleaning task logged", zap.String("task", name), zap.String("staff", ev.StaffMember))
	return ev, nil
}

// LogTemperature records a fridge reading for now and reports whether it is
// inside the configured range.
func (s *Service) LogTemperature(ctx context.Context, celsius float64, loggedBy, notes string) (model.TemperatureReading, bool, error) {
	now := s.Now()
	r := model.TemperatureReading{
		ID:        storage.NewID(),
		Date:      model.StartOfDay(now),
		Time:      now.Format("15:04"),
		Celsius:   celsius,
		LoggedBy:  strings.TrimSpace(loggedBy),
		Notes:     strings.TrimSpace(notes),
		CreatedAt: now.UTC(),
	}
	if err := r.Validate(); err != nil {
		return model.TemperatureReading{}, false, err
	}
	row := storage.TemperatureLog{
		ID:        r.ID,
		Date:      r.Date.Format(model.DateLayout),
		Time:      r.Time,
		Celsius:   r.Celsius,
		LoggedBy:  r.LoggedBy,
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt,
	}
	if err := s.repo.CreateTemperature(ctx, row); err != nil {
		return model.TemperatureReading{}, false, fmt.Errorf("log temperature: %w", err)
	}
	inRange := s.policy.TemperatureInRange(celsius)
	if inRange {
		s.logger.Info("fridge temperature logged", zap.Float64("celsius", celsius))
	} else {
		s.logger.Warn("fridge temperature out of range", zap.Float64("celsius", celsius),
			zap.Float64("min", s.policy.FridgeMinC), zap.Float64("max", s.policy.FridgeMaxC))
	}
	return r, inRange, nil
}

// ToggleRPItem flips item on today's RP checklist, starting the day's log
// when there is none yet.
func (s *Service) ToggleRPItem(ctx context.Context, item string) (bool, error) {
	known := false
	for _, it := range model.RPItems() {
		if it == item {
			known = true
			break
		}
	}
	if !known {
		return false, fmt.Errorf("%w: %q", ErrUnknownRPItem, item)
	}

	now := s.Now()
	today := now.Format(model.DateLayout)
	row, err := s.repo.GetRPLogByDate(ctx, today)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		pharmacist, err := s.pharmacist(ctx)
		if err != nil {
			return false, err
		}
		entry := model.RPLogEntry{
			ID:         storage.NewID(),
			Date:       model.StartOfDay(now),
			Pharmacist: pharmacist,
			CreatedAt:  now.UTC(),
		}
		if err := entry.Validate(); err != nil {
			return false, fmt.Errorf("%w: %v", ErrNoPharmacist, err)
		}
		value := entry.Toggle(item)
		if err := s.repo.CreateRPLog(ctx, storage.RPLogFromModel(entry)); err != nil {
			return false, fmt.Errorf("start rp log: %w", err)
		}
		s.logger.Info("rp log started", zap.String("date", today), zap.String("item", item))
		return value, nil
	case err != nil:
		return false, fmt.Errorf("load rp log: %w", err)
	}

	entry, err := storage.RPLogToModel(row, s.loc)
	if err != nil {
		return false, err
	}
	value := entry.Toggle(item)
	if err := s.repo.UpdateRPLog(ctx, storage.RPLogFromModel(entry)); err != nil {
		return false, fmt.Errorf("update rp log: %w", err)
	}
	s.logger.Info("rp item toggled", zap.String("item", item), zap.Bool("checked", value))
	return value, nil
}

// pharmacist names the RP for a new day's log: the configured pharmacist,
// then the first rostered name, then the first staff member on record.
func (s *Service) pharmacist(ctx context.Context) (string, error) {
	if name := strings.TrimSpace(s.rotation.Pharmacist); name != "" {
		return name, nil
	}
	for _, name := range s.rotation.Staff {
		if name = strings.TrimSpace(name); name != "" {
			return name, nil
		}
	}
	staff, err := s.repo.ListStaff(ctx, storage.ListFilter{Limit: 1})
	if err != nil {
		return "", fmt.Errorf("list staff: %w", err)
	}
	if len(staff) == 0 {
		return "", nil
	}
	return staff[0].Name, nil
}

// CycleTraining advances a training item to its next status. target is an
// id or a unique id prefix.
func (s *Service) CycleTraining(ctx context.Context, target string) (model.TrainingItem, error) {
	row, err := s.findTraining(ctx, strings.TrimSpace(target))
	if err != nil {
		return model.TrainingItem{}, err
	}
	item := storage.TrainingToModel(row, s.loc)
	item.Status = item.Status.Next()
	row.Status = string(item.Status)
	if err := s.repo.UpdateTraining(ctx, row); err != nil {
		return model.TrainingItem{}, fmt.Errorf("update training %s: %w", row.ID, err)
	}
	s.logger.Info("training status changed", zap.String("id", row.ID), zap.String("status", row.Status))
	return item, nil
}

func (s *Service) findTraining(ctx context.Context, target string) (storage.TrainingItem, error) {
	if target == "" {
		return storage.TrainingItem{}, fmt.Errorf("%w: empty id", ErrUnknownTraining)
	}
	row, err := s.repo.GetTraining(ctx, target)
	if err == nil {
		return row, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return storage.TrainingItem{}, err
	}
	rows, err := s.repo.ListTraining(ctx, storage.TrainingListFilter{})
	if err != nil {
		return storage.TrainingItem{}, fmt.Errorf("list training: %w", err)
	}
	var found []storage.TrainingItem
	for _, r := range rows {
		if strings.HasPrefix(r.ID, target) {
			found = append(found, r)
		}
	}
	switch len(found) {
	case 0:
		return storage.TrainingItem{}, fmt.Errorf("%w: %q", ErrUnknownTraining, target)
	case 1:
		return found[0], nil
	default:
		return storage.TrainingItem{}, fmt.Errorf("%w: %d training items start with %q", ErrAmbiguous, len(found), target)
	}
}

func match(query string, candidates []string, notFound error) (string, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", fmt.Errorf("%w: empty name", notFound)
	}
	var prefixed []string
	for _, c := range candidates {
		lower := strings.ToLower(c)
		if lower == q {
			return c, nil
		}
		if strings.HasPrefix(lower, q) {
			prefixed = append(prefixed, c)
		}
	}
	switch len(prefixed) {
	case 0:
		return "", fmt.Errorf("%w: %q", notFound, query)
	case 1:
		return prefixed[0], nil
	default:
		return "", fmt.Errorf("%w: %q matches %s", ErrAmbiguous, query, strings.Join(prefixed, ", "))
	}
}
