package storage

import (
	"context"
	"database/sql"
	"strings"
)

func (r *SQLiteRepository) CreateDocument(ctx context.Context, in Document) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO documents (id, name, category, owner, issue_date, expiry_date, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Name, in.Category, in.Owner, nullText(in.IssueDate), nullText(in.ExpiryDate), in.Notes, mustTime(in.CreatedAt),
	)
	return mapWriteErr(err)
}

func (r *SQLiteRepository) GetDocument(ctx context.Context, id string) (Document, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, category, owner, issue_date, expiry_date, notes, created_at
		FROM documents WHERE id = ?`, id)
	item, err := scanDocument(row)
	if err != nil {
		return Document{}, mapReadErr(err)
	}
	return item, nil
}

func (r *SQLiteRepository) UpdateDocument(ctx context.Context, in Document) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE documents
		SET name = ?, category = ?, owner = ?, issue_date = ?, expiry_date = ?, notes = ?
		WHERE id = ?`,
		in.Name, in.Category, in.Owner, nullText(in.IssueDate), nullText(in.ExpiryDate), in.Notes, in.ID,
	)
	if err != nil {
		return mapWriteErr(err)
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteDocument(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "documents", id)
}

// ListDocuments orders by expiry date with undated documents first.
func (r *SQLiteRepository) ListDocuments(ctx context.Context, filter ListFilter) ([]Document, error) {
	args := make([]any, 0, 2)
	query := `SELECT id, name, category, owner, issue_date, expiry_date, notes, created_at
		FROM documents ORDER BY expiry_date IS NOT NULL, expiry_date ASC, name ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)
	return queryAll(ctx, r.db, query, args, scanDocument)
}

func (r *SQLiteRepository) CreateTraining(ctx context.Context, in TrainingItem) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO staff_training (id, staff_name, role, item, target_date, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.StaffName, in.Role, in.Item, nullText(in.TargetDate), in.Status, mustTime(in.CreatedAt),
	)
	return mapWriteErr(err)
}

func (r *SQLiteRepository) GetTraining(ctx context.Context, id string) (TrainingItem, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, staff_name, role, item, target_date, status, created_at
		FROM staff_training WHERE id = ?`, id)
	item, err := scanTraining(row)
	if err != nil {
		return TrainingItem{}, mapReadErr(err)
	}
	return item, nil
}

func (r *SQLiteRepository) UpdateTraining(ctx context.Context, in TrainingItem) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE staff_training
		SET staff_name = ?, role = ?, item = ?, target_date = ?, status = ?
		WHERE id = ?`,
		in.StaffName, in.Role, in.Item, nullText(in.TargetDate), in.Status, in.ID,
	)
	if err != nil {
		return mapWriteErr(err)
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTraining(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "staff_training", id)
}

func (r *SQLiteRepository) ListTraining(ctx context.Context, filter TrainingListFilter) ([]TrainingItem, error) {
	query := `SELECT id, staff_name, role, item, target_date, status, created_at FROM staff_training`
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if filter.StaffName != "" {
		clauses = append(clauses, "staff_name = ?")
		args = append(args, filter.StaffName)
	}
	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, filter.Status)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY staff_name ASC, created_at ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)
	return queryAll(ctx, r.db, query, args, scanTraining)
}

func (r *SQLiteRepository) CreateSafeguarding(ctx context.Context, in SafeguardingRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO safeguarding_records (id, staff_name, job_title, training_date, delivered_by, method, handbook_version, signed_off, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.StaffName, in.JobTitle, nullText(in.TrainingDate), in.DeliveredBy, in.Method, in.HandbookVersion,
		boolInt(in.SignedOff), mustTime(in.CreatedAt),
	)
	return mapWriteErr(err)
}

func (r *SQLiteRepository) GetSafeguarding(ctx context.Context, id string) (SafeguardingRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, staff_name, job_title, training_date, delivered_by, method, handbook_version, signed_off, created_at
		FROM safeguarding_records WHERE id = ?`, id)
	item, err := scanSafeguarding(row)
	if err != nil {
		return SafeguardingRecord{}, mapReadErr(err)
	}
	return item, nil
}

func (r *SQLiteRepository) UpdateSafeguarding(ctx context.Context, in SafeguardingRecord) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE safeguarding_records
		SET staff_name = ?, job_title = ?, training_date = ?, delivered_by = ?, method = ?, handbook_version = ?, signed_off = ?
		WHERE id = ?`,
		in.StaffName, in.JobTitle, nullText(in.TrainingDate), in.DeliveredBy, in.Method, in.HandbookVersion,
		boolInt(in.SignedOff), in.ID,
	)
	if err != nil {
		return mapWriteErr(err)
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteSafeguarding(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "safeguarding_records", id)
}

func (r *SQLiteRepository) ListSafeguarding(ctx context.Context, filter ListFilter) ([]SafeguardingRecord, error) {
	args := make([]any, 0, 2)
	query := `SELECT id, staff_name, job_title, training_date, delivered_by, method, handbook_version, signed_off, created_at
		FROM safeguarding_records ORDER BY staff_name ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)
	return queryAll(ctx, r.db, query, args, scanSafeguarding)
}

func scanDocument(s scanner) (Document, error) {
	var out Document
	var issue, expiry sql.NullString
	var created string
	if err := s.Scan(&out.ID, &out.Name, &out.Category, &out.Owner, &issue, &expiry, &out.Notes, &created); err != nil {
		return Document{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Document{}, err
	}
	out.IssueDate = issue.String
	out.ExpiryDate = expiry.String
	out.CreatedAt = createdAt
	return out, nil
}

func scanTraining(s scanner) (TrainingItem, error) {
	var out TrainingItem
	var target sql.NullString
	var created string
	if err := s.Scan(&out.ID, &out.StaffName, &out.Role, &out.Item, &target, &out.Status, &created); err != nil {
		return TrainingItem{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return TrainingItem{}, err
	}
	out.TargetDate = target.String
	out.CreatedAt = createdAt
	return out, nil
}

func scanSafeguarding(s scanner) (SafeguardingRecord, error) {
	var out SafeguardingRecord
	var trained sql.NullString
	var signed int
	var created string
	if err := s.Scan(&out.ID, &out.StaffName, &out.JobTitle, &trained, &out.DeliveredBy, &out.Method, &out.HandbookVersion, &signed, &created); err != nil {
		return SafeguardingRecord{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return SafeguardingRecord{}, err
	}
	out.TrainingDate = trained.String
	out.SignedOff = signed == 1
	out.CreatedAt = createdAt
	return out, nil
}
