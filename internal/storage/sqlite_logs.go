package storage

import (
	"context"
	"fmt"
)

func (r *SQLiteRepository) CreateTemperature(ctx context.Context, in TemperatureLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO temperature_logs (id, log_date, log_time, celsius, logged_by, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Date, in.Time, in.Celsius, in.LoggedBy, in.Notes, mustTime(in.CreatedAt),
	)
	return mapWriteErr(err)
}

func (r *SQLiteRepository) GetTemperature(ctx context.Context, id string) (TemperatureLog, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, log_date, log_time, celsius, logged_by, notes, created_at
		FROM temperature_logs WHERE id = ?`, id)
	item, err := scanTemperature(row)
	if err != nil {
		return TemperatureLog{}, mapReadErr(err)
	}
	return item, nil
}

func (r *SQLiteRepository) UpdateTemperature(ctx context.Context, in TemperatureLog) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE temperature_logs
		SET log_date = ?, log_time = ?, celsius = ?, logged_by = ?, notes = ?
		WHERE id = ?`,
		in.Date, in.Time, in.Celsius, in.LoggedBy, in.Notes, in.ID,
	)
	if err != nil {
		return mapWriteErr(err)
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTemperature(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "temperature_logs", id)
}

func (r *SQLiteRepository) ListTemperatures(ctx context.Context, filter TemperatureListFilter) ([]TemperatureLog, error) {
	query := `SELECT id, log_date, log_time, celsius, logged_by, notes, created_at FROM temperature_logs`
	args := make([]any, 0, 3)
	if filter.Date != "" {
		query += ` WHERE log_date = ?`
		args = append(args, filter.Date)
	}
	query += ` ORDER BY log_date DESC, log_time DESC`
	query += applyPagination(&args, filter.Limit, filter.Offset)
	return queryAll(ctx, r.db, query, args, scanTemperature)
}

func (r *SQLiteRepository) CreateRPLog(ctx context.Context, in RPLog) error {
	checklist, err := encodeChecklist(in.Checklist)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO rp_log (id, log_date, pharmacist, checklist, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.ID, in.Date, in.Pharmacist, checklist, in.Notes, mustTime(in.CreatedAt),
	)
	return mapWriteErr(err)
}

func (r *SQLiteRepository) GetRPLog(ctx context.Context, id string) (RPLog, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, log_date, pharmacist, checklist, notes, created_at
		FROM rp_log WHERE id = ?`, id)
	item, err := scanRPLog(row)
	if err != nil {
		return RPLog{}, mapReadErr(err)
	}
	return item, nil
}

func (r *SQLiteRepository) GetRPLogByDate(ctx context.Context, date string) (RPLog, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, log_date, pharmacist, checklist, notes, created_at
		FROM rp_log WHERE log_date = ?`, date)
	item, err := scanRPLog(row)
	if err != nil {
		return RPLog{}, mapReadErr(err)
	}
	return item, nil
}

func (r *SQLiteRepository) UpdateRPLog(ctx context.Context, in RPLog) error {
	checklist, err := encodeChecklist(in.Checklist)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE rp_log SET log_date = ?, pharmacist = ?, checklist = ?, notes = ? WHERE id = ?`,
		in.Date, in.Pharmacist, checklist, in.Notes, in.ID,
	)
	if err != nil {
		return mapWriteErr(err)
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteRPLog(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "rp_log", id)
}

func (r *SQLiteRepository) ListRPLogs(ctx context.Context, filter ListFilter) ([]RPLog, error) {
	args := make([]any, 0, 2)
	query := `SELECT id, log_date, pharmacist, checklist, notes, created_at FROM rp_log ORDER BY log_date DESC`
	query += applyPagination(&args, filter.Limit, filter.Offset)
	return queryAll(ctx, r.db, query, args, scanRPLog)
}

func scanTemperature(s scanner) (TemperatureLog, error) {
	var out TemperatureLog
	var created string
	if err := s.Scan(&out.ID, &out.Date, &out.Time, &out.Celsius, &out.LoggedBy, &out.Notes, &created); err != nil {
		return TemperatureLog{}, err
	}
	out.CreatedAt = parseStoredTime(created)
	return out, nil
}

func scanRPLog(s scanner) (RPLog, error) {
	var out RPLog
	var checklist string
	var created string
	if err := s.Scan(&out.ID, &out.Date, &out.Pharmacist, &checklist, &out.Notes, &created); err != nil {
		return RPLog{}, err
	}
	items, err := decodeChecklist(checklist)
	if err != nil {
		return RPLog{}, fmt.Errorf("rp log %s: %w", out.ID, err)
	}
	out.Checklist = items
	out.CreatedAt = parseStoredTime(created)
	return out, nil
}
