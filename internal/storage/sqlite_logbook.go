package storage

import (
	"context"
	"database/sql"
	"strings"
)

func (r *SQLiteRepository) CreateIncident(ctx context.Context, in Incident) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO incidents (id, incident_date, incident_type, description, severity, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.ID, in.Date, in.Type, in.Description, in.Severity, mustTime(in.CreatedAt),
	)
	return mapWriteErr(err)
}

func (r *SQLiteRepository) GetIncident(ctx context.Context, id string) (Incident, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, incident_date, incident_type, description, severity, created_at
		FROM incidents WHERE id = ?`, id)
	item, err := scanIncident(row)
	if err != nil {
		return Incident{}, mapReadErr(err)
	}
	return item, nil
}

func (r *SQLiteRepository) DeleteIncident(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "incidents", id)
}

// ListIncidents returns the newest incident first.
func (r *SQLiteRepository) ListIncidents(ctx context.Context, filter ListFilter) ([]Incident, error) {
	args := make([]any, 0, 2)
	query := `SELECT id, incident_date, incident_type, description, severity, created_at
		FROM incidents ORDER BY incident_date DESC, created_at DESC`
	query += applyPagination(&args, filter.Limit, filter.Offset)
	return queryAll(ctx, r.db, query, args, scanIncident)
}

func (r *SQLiteRepository) CreateTrainingLog(ctx context.Context, in TrainingLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO training_logs (id, staff_name, date_completed, topic, trainer_name, certificate_expiry, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.StaffName, in.DateCompleted, in.Topic, in.TrainerName, nullText(in.CertificateExpiry), in.Notes, mustTime(in.CreatedAt),
	)
	return mapWriteErr(err)
}

func (r *SQLiteRepository) GetTrainingLog(ctx context.Context, id string) (TrainingLog, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, staff_name, date_completed, topic, trainer_name, certificate_expiry, notes, created_at
		FROM training_logs WHERE id = ?`, id)
	item, err := scanTrainingLog(row)
	if err != nil {
		return TrainingLog{}, mapReadErr(err)
	}
	return item, nil
}

func (r *SQLiteRepository) DeleteTrainingLog(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "training_logs", id)
}

// ListTrainingLogs returns the most recently recorded log first.
func (r *SQLiteRepository) ListTrainingLogs(ctx context.Context, filter ListFilter) ([]TrainingLog, error) {
	args := make([]any, 0, 2)
	query := `SELECT id, staff_name, date_completed, topic, trainer_name, certificate_expiry, notes, created_at
		FROM training_logs ORDER BY created_at DESC, rowid DESC`
	query += applyPagination(&args, filter.Limit, filter.Offset)
	return queryAll(ctx, r.db, query, args, scanTrainingLog)
}

func (r *SQLiteRepository) CreateAssignedTask(ctx context.Context, in AssignedTask) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO assigned_tasks (id, staff_name, title, task_date, completed, completed_by, completed_at, notes, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.StaffName, in.Title, in.Date, boolInt(in.Completed), in.CompletedBy, nullTime(in.CompletedAt),
		in.Notes, in.CreatedBy, mustTime(in.CreatedAt),
	)
	return mapWriteErr(err)
}

func (r *SQLiteRepository) GetAssignedTask(ctx context.Context, id string) (AssignedTask, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, staff_name, title, task_date, completed, completed_by, completed_at, notes, created_by, created_at
		FROM assigned_tasks WHERE id = ?`, id)
	item, err := scanAssignedTask(row)
	if err != nil {
		return AssignedTask{}, mapReadErr(err)
	}
	return item, nil
}

func (r *SQLiteRepository) UpdateAssignedTask(ctx context.Context, in AssignedTask) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE assigned_tasks
		SET staff_name = ?, title = ?, task_date = ?, completed = ?, completed_by = ?, completed_at = ?, notes = ?
		WHERE id = ?`,
		in.StaffName, in.Title, in.Date, boolInt(in.Completed), in.CompletedBy, nullTime(in.CompletedAt), in.Notes, in.ID,
	)
	if err != nil {
		return mapWriteErr(err)
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteAssignedTask(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "assigned_tasks", id)
}

func (r *SQLiteRepository) ListAssignedTasks(ctx context.Context, filter AssignedTaskFilter) ([]AssignedTask, error) {
	query := `SELECT id, staff_name, title, task_date, completed, completed_by, completed_at, notes, created_by, created_at
		FROM assigned_tasks`
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if filter.Date != "" {
		clauses = append(clauses, "task_date = ?")
		args = append(args, filter.Date)
	}
	if filter.StaffName != "" {
		clauses = append(clauses, "staff_name = ?")
		args = append(args, filter.StaffName)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY created_at ASC, rowid ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)
	return queryAll(ctx, r.db, query, args, scanAssignedTask)
}

func scanIncident(s scanner) (Incident, error) {
	var out Incident
	var created string
	if err := s.Scan(&out.ID, &out.Date, &out.Type, &out.Description, &out.Severity, &created); err != nil {
		return Incident{}, err
	}
	out.CreatedAt = parseStoredTime(created)
	return out, nil
}

func scanTrainingLog(s scanner) (TrainingLog, error) {
	var out TrainingLog
	var expiry sql.NullString
	var created string
	if err := s.Scan(&out.ID, &out.StaffName, &out.DateCompleted, &out.Topic, &out.TrainerName, &expiry, &out.Notes, &created); err != nil {
		return TrainingLog{}, err
	}
	out.CertificateExpiry = expiry.String
	out.CreatedAt = parseStoredTime(created)
	return out, nil
}

func scanAssignedTask(s scanner) (AssignedTask, error) {
	var out AssignedTask
	var completed int
	var completedAt sql.NullString
	var created string
	if err := s.Scan(&out.ID, &out.StaffName, &out.Title, &out.Date, &completed, &out.CompletedBy, &completedAt,
		&out.Notes, &out.CreatedBy, &created); err != nil {
		return AssignedTask{}, err
	}
	out.Completed = completed != 0
	if completedAt.Valid {
		if at := parseStoredTime(completedAt.String); !at.IsZero() {
			out.CompletedAt = &at
		}
	}
	out.CreatedAt = parseStoredTime(created)
	return out, nil
}
