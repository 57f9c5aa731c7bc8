package seed

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sandeepkv93/rxtrack/internal/model"
	"github.com/sandeepkv93/rxtrack/internal/storage"
)

func openRepo(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	repo, err := storage.OpenSQLite(storage.DriverPureGo, filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	require.NoError(t, storage.MigrateUp(repo.DB()))
	return repo
}

func TestDefaultFixtures(t *testing.T) {
	fx := Default()
	require.Len(t, fx.CleaningTasks, 19)
	require.Equal(t, "Dispensary Clean", fx.CleaningTasks[0].Name)
	require.Equal(t, "daily", fx.CleaningTasks[0].Frequency)
	require.Equal(t, "Replace Near Miss Record", fx.CleaningTasks[18].Name)
}

func TestLoadFixtures(t *testing.T) {
	fx, err := Load(strings.NewReader(`
staff: [Ana, Ben]
cleaning_tasks:
  - name: Floor Clean
    frequency: Weekly
documents:
  - name: GPhC Premises Registration
    category: Registration
    expiry_date: "2026-09-30"
training:
  - staff: Ana
    item: Fire safety
safeguarding:
  - staff: Ben
    training_date: "2024-06-15"
    signed_off: true
completions:
  - task: Floor Clean
    at: "2026-02-09T10:00"
    staff: Ana
    result: Pass
`))
	require.NoError(t, err)
	require.Equal(t, []string{"Ana", "Ben"}, fx.Staff)
	require.Len(t, fx.Documents, 1)
	require.True(t, fx.Safeguarding[0].SignedOff)
	require.Equal(t, "2026-02-09T10:00", fx.Completions[0].At)
}

func TestLoadRejectsInvalidFixtures(t *testing.T) {
	cases := map[string]string{
		"unknown field":   "staf: [Ana]\n",
		"bad frequency":   "cleaning_tasks:\n  - {name: X, frequency: hourly}\n",
		"bad category":    "documents:\n  - {name: X, category: Misc}\n",
		"bad status":      "training:\n  - {staff: A, item: B, status: Done}\n",
		"unreadable time": "completions:\n  - {task: X, at: yesterday}\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(content))
			require.Error(t, err)
		})
	}
}

func TestLoadEmptyInput(t *testing.T) {
	fx, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, fx.CleaningTasks)
}

func TestApplyIsIdempotentForRota(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)

	res, err := Apply(ctx, repo, Default(), now)
	require.NoError(t, err)
	require.Equal(t, 19, res.CleaningTasks)

	res, err = Apply(ctx, repo, Default(), now)
	require.NoError(t, err)
	require.Equal(t, 0, res.CleaningTasks)
	require.Equal(t, 19, res.Skipped)

	tasks, err := repo.ListCleaningTasks(ctx, storage.ListFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 19)
	require.Equal(t, "Dispensary Clean", tasks[0].Name)
}

func TestApplyWritesEveryRecordKind(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)

	fx := Fixtures{
		Staff:         []string{"Ana", "ana", "Ben"},
		CleaningTasks: []CleaningTask{{Name: "Floor Clean", Frequency: "weekly"}},
		Documents:     []Document{{Name: "Indemnity", Category: "Insurance", ExpiryDate: "2026-03-01"}},
		Training:      []TrainingItem{{Staff: "Ana", Item: "GDPR"}},
		Safeguarding:  []SafeguardingRecord{{Staff: "Ben", TrainingDate: "2025-01-01"}},
		Completions:   []Completion{{Task: "Floor Clean", At: "2026-02-08T09:30", Staff: "Ana"}},
	}
	res, err := Apply(ctx, repo, fx, now)
	require.NoError(t, err)
	require.Equal(t, Result{Staff: 2, CleaningTasks: 1, Skipped: 1, Documents: 1, Training: 1, Safeguarding: 1, Completions: 1}, res)

	snap, err := storage.LoadSnapshot(ctx, repo, time.UTC, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, model.TrainingPending, snap.Training[0].Status)
	require.True(t, snap.Completions[0].At.Equal(time.Date(2026, 2, 8, 9, 30, 0, 0, time.UTC)))

	status, err := model.TaskStatusOf("Floor Clean", model.FrequencyWeekly, snap.Completions, now)
	require.NoError(t, err)
	require.Equal(t, model.TaskUpcoming, status)
}
