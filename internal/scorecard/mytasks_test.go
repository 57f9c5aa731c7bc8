package scorecard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/rxtrack/internal/model"
)

func TestTasksForCombinesRotationAndAssigned(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Staff: []model.StaffMember{{ID: "p1", Name: "Ana"}, {ID: "p2", Name: "Ben"}},
		Tasks: []model.CleaningTask{
			{ID: "c1", Name: "Dispensary Clean", Frequency: model.FrequencyDaily},
			{ID: "c2", Name: "Floor Clean", Frequency: model.FrequencyWeekly},
			{ID: "c3", Name: "Fridge Clean", Frequency: model.FrequencyMonthly},
		},
		Completions: []model.CompletionEvent{
			{ID: "e1", TaskName: "Dispensary Clean", At: now.Add(-time.Hour), StaffMember: "Ben"},
			{ID: "e2", TaskName: "Floor Clean", At: now.AddDate(0, 0, -1)},
		},
		Assigned: []model.AssignedTask{
			{ID: "a1", StaffName: "ana", Title: "Restock bags", Date: now, Completed: true},
			{ID: "a2", StaffName: "Ana", Title: "Call wholesaler", Date: now},
			{ID: "a3", StaffName: "Ana", Title: "Yesterday's job", Date: now.AddDate(0, 0, -1)},
			{ID: "a4", StaffName: "Ben", Title: "Order labels", Date: now},
		},
		Rotation: model.Rotation{
			Staff: []string{"Ana", "Ben"},
			Fixed: map[string]string{"Dispensary Clean": "Ana", "Floor Clean": "Ana", "Fridge Clean": "Ben"},
		},
	}

	ana := TasksFor(snap, "Ana", now)
	require.Len(t, ana.Rotation, 2)
	require.Equal(t, "Dispensary Clean", ana.Rotation[0].Task.Name)
	require.True(t, ana.Rotation[0].Done, "completion by anyone today counts")
	require.False(t, ana.Rotation[1].Done, "yesterday's completion does not count")
	require.Len(t, ana.Assigned, 2)
	require.Equal(t, 4, ana.Total)
	require.Equal(t, 2, ana.Done)
	require.False(t, ana.AllDone())

	team := TeamProgress(snap, now)
	require.Len(t, team, 2)
	require.Equal(t, "Ben", team[1].Staff)
	require.Equal(t, 2, team[1].Total)
	require.Equal(t, 0, team[1].Done)

	require.False(t, TasksFor(snap, "Nobody", now).AllDone(), "an empty day is not all done")
}

func TestRecentListsNewestFirst(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	snap := Snapshot{}
	for i := 0; i < 7; i++ {
		created := now.Add(time.Duration(i) * time.Hour)
		snap.TrainingLogs = append(snap.TrainingLogs, model.TrainingLog{ID: string(rune('a' + i)), CreatedAt: created})
		snap.Completions = append(snap.Completions, model.CompletionEvent{ID: string(rune('a' + i)), TaskName: "Floor Clean", At: now, CreatedAt: created})
	}

	card, err := Build(model.DefaultPolicy(), snap, now)
	require.NoError(t, err)
	require.Len(t, card.RecentTraining, 5)
	require.Len(t, card.RecentCleaning, 5)
	require.Equal(t, "g", card.RecentTraining[0].ID)
	require.Equal(t, "c", card.RecentTraining[4].ID)
	require.Equal(t, "g", card.RecentCleaning[0].ID)
	require.Equal(t, "a", snap.TrainingLogs[0].ID, "snapshot order is left alone")
}
