package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/rxtrack/internal/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rxtrack.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	require.Equal(t, "sqlite3", cfg.Storage.Driver)
	require.Equal(t, "rxtrack.db", cfg.Storage.Path)
	require.Equal(t, 64, cfg.TUI.AlertBuffer)

	policy, err := cfg.ModelPolicy()
	require.NoError(t, err)
	require.Equal(t, model.DefaultPolicy(), policy)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[pharmacy]
name = "High Street Pharmacy"
timezone = "Europe/London"

[storage]
driver = "sqlite"
path = "/var/lib/rxtrack/data.db"

[policy]
amber-window-days = 45
treat-missing-date-as-failure = false

[policy.windows.weekly]
due = 5

[rotation]
staff = [" Ana ", "Ben", ""]
pharmacist = "Dr Patel"

[rotation.fixed]
"Robot Maintenance" = "Cal"

[tui]
refresh-seconds = 0
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "High Street Pharmacy", cfg.Pharmacy.Name)
	require.Equal(t, "sqlite", cfg.Storage.Driver)
	require.Equal(t, "/var/lib/rxtrack/data.db", cfg.Storage.Path)
	require.Zero(t, cfg.RefreshInterval())

	policy, err := cfg.ModelPolicy()
	require.NoError(t, err)
	require.Equal(t, 45, policy.AmberWindowDays)
	require.False(t, policy.TreatMissingDateAsFailure)
	require.Equal(t, model.Window{DueDays: 5, OverdueDays: 7}, policy.Windows[model.FrequencyWeekly])
	require.Equal(t, model.Window{DueDays: 25, OverdueDays: 30}, policy.Windows[model.FrequencyMonthly])

	rot := cfg.ModelRotation()
	require.Equal(t, []string{"Ana", "Ben"}, rot.Staff)
	require.Equal(t, "Cal", rot.Fixed["Robot Maintenance"])
	require.Equal(t, "Dr Patel", rot.Pharmacist)

	loc, err := cfg.Location()
	require.NoError(t, err)
	require.Equal(t, "Europe/London", loc.String())
}

func TestLoadRejectsBadFiles(t *testing.T) {
	cases := map[string]string{
		"syntax":          "[storage\npath = 1",
		"unknown key":     "[storage]\nflavour = \"x\"\n",
		"bad frequency":   "[policy.windows.hourly]\ndue = 1\n",
		"inverted window": "[policy.windows.monthly]\ndue = 40\n",
		"bad driver":      "[storage]\ndriver = \"postgres\"\n",
		"bad timezone":    "[pharmacy]\ntimezone = \"Mars/Olympus\"\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			require.Error(t, err)
		})
	}
}

func TestLoadInvalidWindowIsPolicyError(t *testing.T) {
	_, err := Load(writeConfig(t, "[policy.windows.monthly]\ndue = 40\n"))
	require.ErrorIs(t, err, model.ErrInvalidPolicy)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("RXTRACK_DB", "env.db")
	t.Setenv("RXTRACK_DB_DRIVER", "sqlite")
	t.Setenv("RXTRACK_LOG_LEVEL", "debug")
	t.Setenv("RXTRACK_LOG_FILE", "rxtrack.log")
	t.Setenv("RXTRACK_ALERT_BUFFER", "128")
	t.Setenv("RXTRACK_REFRESH_SECONDS", "15")
	t.Setenv("RXTRACK_TREAT_MISSING_DATE_AS_FAILURE", "no")
	t.Setenv("RXTRACK_TZ", "UTC")

	path := writeConfig(t, "[storage]\npath = \"file.db\"\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "env.db", cfg.Storage.Path)
	require.Equal(t, "sqlite", cfg.Storage.Driver)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "rxtrack.log", cfg.Log.File)
	require.Equal(t, 128, cfg.TUI.AlertBuffer)
	require.Equal(t, 15*time.Second, cfg.RefreshInterval())
	require.False(t, cfg.Policy.TreatMissingDateAsFailure)

	loc, err := cfg.Location()
	require.NoError(t, err)
	require.Equal(t, time.UTC, loc)
}

func TestEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("RXTRACK_ALERT_BUFFER", "lots")
	t.Setenv("RXTRACK_TREAT_MISSING_DATE_AS_FAILURE", "maybe")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 64, cfg.TUI.AlertBuffer)
	require.True(t, cfg.Policy.TreatMissingDateAsFailure)
}
