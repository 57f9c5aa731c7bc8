package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sandeepkv93/rxtrack/internal/seed"
	"github.com/sandeepkv93/rxtrack/internal/storage"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate up|down",
		Short:     "Apply or roll back the database schema",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.open()
			if err != nil {
				return err
			}
			switch args[0] {
			case "up":
				err = storage.MigrateUp(repo.DB())
			default:
				err = storage.MigrateDown(repo.DB())
			}
			if err != nil {
				return fmt.Errorf("migrate %s: %w", args[0], err)
			}
			a.logger.Info("migration applied", zap.String("direction", args[0]), zap.String("db", a.cfg.Storage.Path))
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %s: %s\n", args[0], a.cfg.Storage.Path)
			return nil
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed [file]",
		Short: "Load YAML fixtures, or the default cleaning rota when no file is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fx := seed.Default()
			if len(args) == 1 {
				var r io.Reader = cmd.InOrStdin()
				if args[0] != "-" {
					f, err := os.Open(args[0])
					if err != nil {
						return fmt.Errorf("open fixtures: %w", err)
					}
					defer f.Close()
					r = f
				}
				loaded, err := seed.Load(r)
				if err != nil {
					return err
				}
				fx = loaded
			}

			svc, err := a.service()
			if err != nil {
				return err
			}
			res, err := seed.Apply(cmd.Context(), a.repo, fx, svc.Now())
			if err != nil {
				return err
			}
			a.logger.Info("fixtures applied",
				zap.Int("staff", res.Staff),
				zap.Int("cleaning_tasks", res.CleaningTasks),
				zap.Int("skipped", res.Skipped),
			)
			fmt.Fprintf(cmd.OutOrStdout(),
				"seeded: %d staff, %d cleaning tasks (%d skipped), %d documents, %d training, %d safeguarding, %d completions\n",
				res.Staff, res.CleaningTasks, res.Skipped, res.Documents, res.Training, res.Safeguarding, res.Completions)
			return nil
		},
	}
}
