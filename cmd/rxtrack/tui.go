package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sandeepkv93/rxtrack/internal/scheduler"
	"github.com/sandeepkv93/rxtrack/internal/update"
)

func (a *app) runTUI(cmd *cobra.Command) error {
	svc, err := a.service()
	if err != nil {
		return err
	}

	// Alert trigger times come from svc's clock, so the engine must share it.
	engine := scheduler.NewEngine(a.cfg.TUI.AlertBuffer, scheduler.WithClock(svc.Now))
	engine.Start()
	defer engine.Stop()

	model := update.NewModel(svc, engine, update.Options{
		PharmacyName:    a.cfg.Pharmacy.Name,
		RefreshInterval: a.cfg.RefreshInterval(),
		Logger:          a.logger,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("rxtrack failed: %w", err)
	}
	if dropped := engine.Dropped(); dropped > 0 {
		a.logger.Warn("alerts dropped", zap.Uint64("count", dropped))
	}
	return nil
}
