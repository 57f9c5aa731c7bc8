package update

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/rxtrack/internal/alerts"
	"github.com/sandeepkv93/rxtrack/internal/scheduler"
	"github.com/sandeepkv93/rxtrack/internal/scorecard"
)

const loadTimeout = 10 * time.Second

func loadCmd(store Store) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		snap, err := store.Snapshot(ctx)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		now := store.Now()
		card, err := scorecard.Build(store.Policy(), snap, now)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		planned, err := alerts.Plan(store.Policy(), snap, now)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return DataLoadedMsg{Snapshot: snap, Card: card, Alerts: planned}
	}
}

func refreshTickCmd(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		return nil
	}
	return tea.Tick(interval, func(time.Time) tea.Msg { return RefreshTickMsg{} })
}

func waitForAlertCmd(ch <-chan scheduler.AlertEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return AlertDueMsg{Event: ev}
	}
}
