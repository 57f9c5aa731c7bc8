package storage

import (
	"context"
	"testing"
	"time"
)

func TestIncidentCRUD(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	now := parseRFC3339(t, "2026-02-09T12:00:00Z")

	for _, in := range []Incident{
		{ID: "i1", Date: "2026-02-01", Type: "Complaint", Description: "Queue", Severity: "Low", CreatedAt: now},
		{ID: "i2", Date: "2026-02-08", Type: "Near Miss", Description: "Wrong strength picked", Severity: "High", CreatedAt: now},
	} {
		if err := repo.CreateIncident(ctx, in); err != nil {
			t.Fatalf("create incident %s: %v", in.ID, err)
		}
	}
	list, err := repo.ListIncidents(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("list incidents: %v", err)
	}
	if len(list) != 2 || list[0].ID != "i2" {
		t.Fatalf("expected newest incident first, got %#v", list)
	}
	got, err := repo.GetIncident(ctx, "i2")
	if err != nil {
		t.Fatalf("get incident: %v", err)
	}
	if got.Severity != "High" || got.Description != "Wrong strength picked" || !got.CreatedAt.Equal(now) {
		t.Fatalf("unexpected incident: %#v", got)
	}
	if err := repo.DeleteIncident(ctx, "i1"); err != nil {
		t.Fatalf("delete incident: %v", err)
	}
	if _, err := repo.GetIncident(ctx, "i1"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTrainingLogKeepsOptionalExpiry(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	now := parseRFC3339(t, "2026-02-09T12:00:00Z")

	logs := []TrainingLog{
		{ID: "l1", StaffName: "Ana", DateCompleted: "2026-01-10", Topic: "Fire safety", CreatedAt: now.Add(-time.Hour)},
		{ID: "l2", StaffName: "Ben", DateCompleted: "2026-02-01", Topic: "CPR", TrainerName: "St John", CertificateExpiry: "2027-02-01", CreatedAt: now},
	}
	for _, l := range logs {
		if err := repo.CreateTrainingLog(ctx, l); err != nil {
			t.Fatalf("create training log %s: %v", l.ID, err)
		}
	}
	list, err := repo.ListTrainingLogs(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("list training logs: %v", err)
	}
	if len(list) != 2 || list[0].ID != "l2" {
		t.Fatalf("expected most recent log first, got %#v", list)
	}
	if list[0].CertificateExpiry != "2027-02-01" || list[1].CertificateExpiry != "" {
		t.Fatalf("unexpected certificate expiry: %q %q", list[0].CertificateExpiry, list[1].CertificateExpiry)
	}
	if err := repo.DeleteTrainingLog(ctx, "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAssignedTaskToggleRoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	now := parseRFC3339(t, "2026-02-09T12:00:00Z")

	tasks := []AssignedTask{
		{ID: "a1", StaffName: "Ana", Title: "Restock bags", Date: "2026-02-09", CreatedBy: "Dr Shah", CreatedAt: now},
		{ID: "a2", StaffName: "Ben", Title: "Order labels", Date: "2026-02-09", CreatedAt: now},
		{ID: "a3", StaffName: "Ana", Title: "Old job", Date: "2026-02-08", CreatedAt: now},
	}
	for _, task := range tasks {
		if err := repo.CreateAssignedTask(ctx, task); err != nil {
			t.Fatalf("create assigned task %s: %v", task.ID, err)
		}
	}
	today, err := repo.ListAssignedTasks(ctx, AssignedTaskFilter{Date: "2026-02-09", StaffName: "Ana"})
	if err != nil {
		t.Fatalf("list assigned tasks: %v", err)
	}
	if len(today) != 1 || today[0].ID != "a1" || today[0].CompletedAt != nil {
		t.Fatalf("unexpected assigned tasks: %#v", today)
	}

	task := today[0]
	task.Completed = true
	task.CompletedBy = "Ana"
	task.CompletedAt = &now
	if err := repo.UpdateAssignedTask(ctx, task); err != nil {
		t.Fatalf("update assigned task: %v", err)
	}
	got, err := repo.GetAssignedTask(ctx, "a1")
	if err != nil {
		t.Fatalf("get assigned task: %v", err)
	}
	if !got.Completed || got.CompletedBy != "Ana" || got.CompletedAt == nil || !got.CompletedAt.Equal(now) || got.CreatedBy != "Dr Shah" {
		t.Fatalf("unexpected assigned task: %#v", got)
	}

	got.Completed = false
	got.CompletedBy = ""
	got.CompletedAt = nil
	if err := repo.UpdateAssignedTask(ctx, got); err != nil {
		t.Fatalf("reopen assigned task: %v", err)
	}
	got, err = repo.GetAssignedTask(ctx, "a1")
	if err != nil {
		t.Fatalf("get reopened task: %v", err)
	}
	if got.Completed || got.CompletedAt != nil {
		t.Fatalf("expected reopened task, got %#v", got)
	}
	if err := repo.UpdateAssignedTask(ctx, AssignedTask{ID: "missing", Date: "2026-02-09"}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
