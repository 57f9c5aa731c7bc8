package tracker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/rxtrack/internal/model"
	"github.com/sandeepkv93/rxtrack/internal/storage"
)

func TestReportIncidentDefaults(t *testing.T) {
	svc, repo, logs := setup(t)
	ctx := context.Background()

	inc, err := svc.ReportIncident(ctx, IncidentInput{Description: "  Wrong strength picked  "})
	require.NoError(t, err)
	require.Equal(t, model.IncidentNearMiss, inc.Type)
	require.Equal(t, model.SeverityLow, inc.Severity)
	require.Equal(t, "Wrong strength picked", inc.Description)
	require.Equal(t, "2026-02-09", inc.Date.Format(model.DateLayout))

	row, err := repo.GetIncident(ctx, inc.ID)
	require.NoError(t, err)
	require.Equal(t, "Near Miss", row.Type)
	require.Equal(t, 1, logs.FilterMessage("incident reported").Len())

	inc, err = svc.ReportIncident(ctx, IncidentInput{Type: "complaint", Severity: "high", Description: "Rude", Date: "2026-02-01"})
	require.NoError(t, err)
	require.Equal(t, model.IncidentComplaint, inc.Type)
	require.Equal(t, model.SeverityHigh, inc.Severity)
	require.Equal(t, "2026-02-01", inc.Date.Format(model.DateLayout))

	_, err = svc.ReportIncident(ctx, IncidentInput{Description: "   "})
	require.Error(t, err)
	_, err = svc.ReportIncident(ctx, IncidentInput{Description: "x", Type: "fire"})
	require.ErrorIs(t, err, model.ErrInvalidIncidentType)
	_, err = svc.ReportIncident(ctx, IncidentInput{Description: "x", Date: "next week"})
	require.ErrorIs(t, err, ErrInvalidDate)

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Incidents, 2)
}

func TestLogTrainingAppearsInRecentTraining(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	_, err := svc.LogTraining(ctx, TrainingLogInput{StaffName: "Ana", Topic: "CPR"})
	require.Error(t, err, "completion date is required")

	entry, err := svc.LogTraining(ctx, TrainingLogInput{
		StaffName:         "Ana",
		DateCompleted:     "2026-02-02",
		Topic:             "CPR",
		TrainerName:       "St John",
		CertificateExpiry: "2027-02-02",
	})
	require.NoError(t, err)
	require.NotNil(t, entry.CertificateExpiry)

	card, err := svc.Scorecard(ctx)
	require.NoError(t, err)
	require.Len(t, card.RecentTraining, 1)
	require.Equal(t, "CPR", card.RecentTraining[0].Topic)
	require.Equal(t, "2027-02-02", model.FormatDate(card.RecentTraining[0].CertificateExpiry))
}

func TestAssignAndToggleTask(t *testing.T) {
	svc, repo, _ := setup(t)
	ctx := context.Background()
	for _, name := range []string{"Ana Patel", "Ben Cole"} {
		require.NoError(t, repo.CreateStaff(ctx, storage.StaffMember{ID: storage.NewID(), Name: name, CreatedAt: fixedNow}))
	}
	addTask(t, repo, "Floor Clean", "weekly")

	_, err := svc.AssignTask(ctx, "zed", "Restock bags", "Dr Shah")
	require.ErrorIs(t, err, ErrUnknownStaff)

	task, err := svc.AssignTask(ctx, "ana", "Restock bags", "Dr Shah")
	require.NoError(t, err)
	require.Equal(t, "Ana Patel", task.StaffName)
	require.False(t, task.Completed)

	done, err := svc.ToggleAssignedTask(ctx, task.ID[:8], "")
	require.NoError(t, err)
	require.True(t, done.Completed)
	require.Equal(t, "Ana Patel", done.CompletedBy)
	require.NotNil(t, done.CompletedAt)

	day, err := svc.MyTasks(ctx, "Ana")
	require.NoError(t, err)
	require.Equal(t, "Ana Patel", day.Staff)
	require.Len(t, day.Assigned, 1)
	require.True(t, day.Assigned[0].Completed)

	team, err := svc.TeamProgress(ctx)
	require.NoError(t, err)
	require.Len(t, team, 2)
	total := 0
	for _, d := range team {
		total += len(d.Rotation)
	}
	require.Equal(t, 1, total, "the weekly task lands on exactly one person")

	reopened, err := svc.ToggleAssignedTask(ctx, task.ID, "Ana Patel")
	require.NoError(t, err)
	require.False(t, reopened.Completed)
	require.Nil(t, reopened.CompletedAt)

	_, err = svc.ToggleAssignedTask(ctx, "nope", "")
	require.ErrorIs(t, err, ErrUnknownAssignedTask)
}
