package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sandeepkv93/rxtrack/internal/config"
	"github.com/sandeepkv93/rxtrack/internal/logging"
	"github.com/sandeepkv93/rxtrack/internal/storage"
	"github.com/sandeepkv93/rxtrack/internal/tracker"
)

// app holds what the persistent pre-run prepares for every subcommand.
type app struct {
	configPath string
	dbPath     string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
	repo   *storage.SQLiteRepository
	// pinned is RXTRACK_NOW; zero means the wall clock.
	pinned time.Time
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "rxtrack",
		Short: "Pharmacy compliance tracker",
		Long: `rxtrack tracks pharmacy compliance records: document expiry, staff training,
recurring cleaning tasks, safeguarding refreshers, fridge temperatures and the
Responsible Pharmacist checklist.

Run without arguments to open the interactive dashboard.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default is the user config dir rxtrack/config.toml)")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "database path (overrides config and RXTRACK_DB)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newMigrateCmd(a),
		newSeedCmd(a),
		newStatusCmd(a),
		newTasksCmd(a),
		newDocsCmd(a),
		newSafeguardingCmd(a),
		newTrainingCmd(a),
		newAlertsCmd(a),
		newLogCmd(a),
		newTempCmd(a),
		newCheckCmd(a),
		newCycleCmd(a),
		newIncidentCmd(a),
		newIncidentsCmd(a),
		newTrainLogCmd(a),
		newAssignCmd(a),
		newDoneCmd(a),
		newMyTasksCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	path := a.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err == nil {
			path = p
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.dbPath != "" {
		cfg.Storage.Path = a.dbPath
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	a.cfg = cfg
	if a.pinned, err = clockFromEnv(); err != nil {
		return err
	}

	// The dashboard owns the terminal, so it only logs to a file.
	if cmd.Root() == cmd {
		a.logger, err = logging.ForTUI(cfg.Log.Level, cfg.Log.File)
	} else if cfg.Log.File != "" {
		a.logger, err = logging.New(cfg.Log.Level, cfg.Log.File)
	} else {
		a.logger, err = logging.New(cfg.Log.Level)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger.Debug("config loaded",
		zap.String("config", path),
		zap.String("driver", cfg.Storage.Driver),
		zap.String("db", cfg.Storage.Path),
	)
	return nil
}

func (a *app) close() {
	if a.repo != nil {
		if err := a.repo.Close(); err != nil && a.logger != nil {
			a.logger.Warn("close database", zap.Error(err))
		}
		a.repo = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// open connects to the configured database without migrating it.
func (a *app) open() (*storage.SQLiteRepository, error) {
	if a.repo != nil {
		return a.repo, nil
	}
	repo, err := storage.OpenSQLite(a.cfg.Storage.Driver, a.cfg.Storage.Path)
	if err != nil {
		return nil, err
	}
	a.repo = repo
	return repo, nil
}

// service opens and migrates the database and wraps it for reads and writes.
func (a *app) service() (*tracker.Service, error) {
	repo, err := a.open()
	if err != nil {
		return nil, err
	}
	if err := storage.MigrateUp(repo.DB()); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	policy, err := a.cfg.ModelPolicy()
	if err != nil {
		return nil, err
	}
	loc, err := a.cfg.Location()
	if err != nil {
		return nil, err
	}
	opts := []tracker.Option{tracker.WithLogger(a.logger)}
	if pinned := a.pinned; !pinned.IsZero() {
		opts = append(opts, tracker.WithClock(func() time.Time { return pinned }))
	}
	return tracker.New(repo, policy, a.cfg.ModelRotation(), loc, opts...), nil
}

// clockFromEnv pins the clock to RXTRACK_NOW (RFC 3339) so a report can be
// reproduced for a past or future day. Unset yields the zero time.
func clockFromEnv() (time.Time, error) {
	raw := strings.TrimSpace(os.Getenv("RXTRACK_NOW"))
	if raw == "" {
		return time.Time{}, nil
	}
	now, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid RXTRACK_NOW %q: want RFC 3339 such as 2026-02-09T09:30:00Z", raw)
	}
	return now, nil
}
