package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

const sqliteTimeLayout = time.RFC3339Nano

const (
	DriverCgo    = "sqlite3"
	DriverPureGo = "sqlite"
)

var ErrUnknownDriver = errors.New("storage: unknown sqlite driver")

type SQLiteRepository struct {
	db *sql.DB
}

var _ Repository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// OpenSQLite opens path with either the cgo driver (mattn/go-sqlite3) or the
// pure Go one (modernc.org/sqlite). An empty driver selects the cgo driver.
func OpenSQLite(driver, path string) (*SQLiteRepository, error) {
	switch driver {
	case "":
		driver = DriverCgo
	case DriverCgo, DriverPureGo:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection keeps :memory: databases coherent and serialises
	// writers.
	db.SetMaxOpenConns(1)
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// NewID returns a random record identifier.
func NewID() string {
	return uuid.NewString()
}

func (r *SQLiteRepository) CreateStaff(ctx context.Context, in StaffMember) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO staff_members (id, name, created_at) VALUES (?, ?, ?)`,
		in.ID, in.Name, mustTime(in.CreatedAt),
	)
	return mapWriteErr(err)
}

func (r *SQLiteRepository) GetStaff(ctx context.Context, id string) (StaffMember, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM staff_members WHERE id = ?`, id)
	item, err := scanStaff(row)
	if err != nil {
		return StaffMember{}, mapReadErr(err)
	}
	return item, nil
}

func (r *SQLiteRepository) UpdateStaff(ctx context.Context, in StaffMember) error {
	res, err := r.db.ExecContext(ctx, `UPDATE staff_members SET name = ? WHERE id = ?`, in.Name, in.ID)
	if err != nil {
		return mapWriteErr(err)
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteStaff(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "staff_members", id)
}

func (r *SQLiteRepository) ListStaff(ctx context.Context, filter ListFilter) ([]StaffMember, error) {
	args := make([]any, 0, 2)
	query := `SELECT id, name, created_at FROM staff_members ORDER BY name ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)
	return queryAll(ctx, r.db, query, args, scanStaff)
}

func (r *SQLiteRepository) CreateCleaningTask(ctx context.Context, in CleaningTask) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cleaning_tasks (id, name, frequency, created_at) VALUES (?, ?, ?, ?)`,
		in.ID, in.Name, in.Frequency, mustTime(in.CreatedAt),
	)
	return mapWriteErr(err)
}

func (r *SQLiteRepository) GetCleaningTask(ctx context.Context, id string) (CleaningTask, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, frequency, created_at FROM cleaning_tasks WHERE id = ?`, id)
	item, err := scanCleaningTask(row)
	if err != nil {
		return CleaningTask{}, mapReadErr(err)
	}
	return item, nil
}

func (r *SQLiteRepository) UpdateCleaningTask(ctx context.Context, in CleaningTask) error {
	res, err := r.db.ExecContext(ctx, `UPDATE cleaning_tasks SET name = ?, frequency = ? WHERE id = ?`,
		in.Name, in.Frequency, in.ID)
	if err != nil {
		return mapWriteErr(err)
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteCleaningTask(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "cleaning_tasks", id)
}

// ListCleaningTasks returns tasks in insertion order, which is the order the
// dashboard and the rotation offsets use.
func (r *SQLiteRepository) ListCleaningTasks(ctx context.Context, filter ListFilter) ([]CleaningTask, error) {
	args := make([]any, 0, 2)
	query := `SELECT id, name, frequency, created_at FROM cleaning_tasks ORDER BY created_at ASC, rowid ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)
	return queryAll(ctx, r.db, query, args, scanCleaningTask)
}

func (r *SQLiteRepository) CreateCleaningEntry(ctx context.Context, in CleaningEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cleaning_entries (id, task_name, completed_at, staff_member, result, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.TaskName, mustTime(in.CompletedAt), in.StaffMember, in.Result, in.Notes, mustTime(in.CreatedAt),
	)
	return mapWriteErr(err)
}

func (r *SQLiteRepository) GetCleaningEntry(ctx context.Context, id string) (CleaningEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, task_name, completed_at, staff_member, result, notes, created_at
		FROM cleaning_entries WHERE id = ?`, id)
	item, err := scanCleaningEntry(row)
	if err != nil {
		return CleaningEntry{}, mapReadErr(err)
	}
	return item, nil
}

func (r *SQLiteRepository) UpdateCleaningEntry(ctx context.Context, in CleaningEntry) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cleaning_entries
		SET task_name = ?, completed_at = ?, staff_member = ?, result = ?, notes = ?
		WHERE id = ?`,
		in.TaskName, mustTime(in.CompletedAt), in.StaffMember, in.Result, in.Notes, in.ID,
	)
	if err != nil {
		return mapWriteErr(err)
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteCleaningEntry(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "cleaning_entries", id)
}

func (r *SQLiteRepository) ListCleaningEntries(ctx context.Context, filter CleaningEntryFilter) ([]CleaningEntry, error) {
	query := `SELECT id, task_name, completed_at, staff_member, result, notes, created_at FROM cleaning_entries`
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if filter.TaskName != "" {
		clauses = append(clauses, "task_name = ?")
		args = append(args, filter.TaskName)
	}
	if filter.Since != nil {
		clauses = append(clauses, "completed_at >= ?")
		args = append(args, mustTime(*filter.Since))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY completed_at DESC`
	query += applyPagination(&args, filter.Limit, filter.Offset)
	return queryAll(ctx, r.db, query, args, scanCleaningEntry)
}

func (r *SQLiteRepository) deleteByID(ctx context.Context, table, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func queryAll[T any](ctx context.Context, db *sql.DB, query string, args []any, scan func(scanner) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		item, scanErr := scan(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func scanStaff(s scanner) (StaffMember, error) {
	var out StaffMember
	var created string
	if err := s.Scan(&out.ID, &out.Name, &created); err != nil {
		return StaffMember{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return StaffMember{}, err
	}
	out.CreatedAt = createdAt
	return out, nil
}

func scanCleaningTask(s scanner) (CleaningTask, error) {
	var out CleaningTask
	var created string
	if err := s.Scan(&out.ID, &out.Name, &out.Frequency, &created); err != nil {
		return CleaningTask{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return CleaningTask{}, err
	}
	out.CreatedAt = createdAt
	return out, nil
}

func scanCleaningEntry(s scanner) (CleaningEntry, error) {
	var out CleaningEntry
	var completed string
	var created string
	if err := s.Scan(&out.ID, &out.TaskName, &completed, &out.StaffMember, &out.Result, &out.Notes, &created); err != nil {
		return CleaningEntry{}, err
	}
	// Rows written by other tools may carry local timestamps; the caller
	// decides how to read CompletedRaw.
	out.CompletedRaw = completed
	out.CompletedAt = parseStoredTime(completed)
	out.CreatedAt = parseStoredTime(created)
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func mapReadErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// mapWriteErr folds unique constraint failures from either driver into
// ErrDuplicate.
func mapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

// parseStoredTime returns the zero time for text that is not RFC 3339.
func parseStoredTime(v string) time.Time {
	out, err := parseRequiredTime(v)
	if err != nil {
		return time.Time{}
	}
	return out
}

func nullText(v string) sql.NullString {
	v = strings.TrimSpace(v)
	return sql.NullString{String: v, Valid: v != ""}
}

func nullTime(v *time.Time) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: mustTime(*v), Valid: true}
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func encodeChecklist(items map[string]bool) (string, error) {
	if items == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode checklist: %w", err)
	}
	return string(raw), nil
}

func decodeChecklist(raw string) (map[string]bool, error) {
	out := make(map[string]bool)
	if strings.TrimSpace(raw) == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decode checklist: %w", err)
	}
	return out, nil
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		if limit <= 0 {
			sql += " LIMIT -1"
		}
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}
