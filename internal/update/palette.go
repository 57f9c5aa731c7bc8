package update

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/rxtrack/internal/commands"
	"github.com/sandeepkv93/rxtrack/internal/tracker"
)

var errNoStore = errors.New("update: no store configured")

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m, nil
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	wrote := false
	res, err := commands.Execute(cmd, commands.Handlers{
		Log: func(a commands.LogArgs) (commands.Result, error) {
			wrote = true
			return m.logTask(a.Task, a.Staff)
		},
		Temp: func(a commands.TempArgs) (commands.Result, error) {
			wrote = true
			return m.logTemp(a.Celsius, a.Note)
		},
		Check: func(a commands.CheckArgs) (commands.Result, error) {
			wrote = true
			return m.toggleRP(a.Item)
		},
		Show: func(a commands.ShowArgs) (commands.Result, error) {
			for _, v := range Views {
				if strings.EqualFold(string(v), a.View) {
					m.CurrentView = v
					return commands.Result{Message: fmt.Sprintf("showing %s", v)}, nil
				}
			}
			return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown view: %s", a.View)}
		},
		Cycle: func(a commands.CycleArgs) (commands.Result, error) {
			wrote = true
			return m.cycleTraining(a.Target)
		},
		Incident: func(a commands.IncidentArgs) (commands.Result, error) {
			wrote = true
			return m.reportIncident(a)
		},
	})
	if !wrote || err != nil {
		if err != nil {
			m.LastError = err
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			m.notify("Command Failed", err.Error(), "error")
		} else {
			m.Status = StatusBar{Text: res.Message}
		}
		return m, nil
	}
	return m.afterWrite(res.Message, nil)
}

func (m Model) logTask(name, staff string) (commands.Result, error) {
	if m.Store == nil {
		return commands.Result{}, errNoStore
	}
	ev, err := m.Store.LogCompletion(context.Background(), name, staff, "")
	if err != nil {
		return commands.Result{}, err
	}
	msg := fmt.Sprintf("logged %s", ev.TaskName)
	if ev.StaffMember != "" {
		msg += " by " + ev.StaffMember
	}
	return commands.Result{Message: msg}, nil
}

func (m Model) logTemp(celsius float64, note string) (commands.Result, error) {
	if m.Store == nil {
		return commands.Result{}, errNoStore
	}
	r, inRange, err := m.Store.LogTemperature(context.Background(), celsius, "", note)
	if err != nil {
		return commands.Result{}, err
	}
	if !inRange {
		p := m.Store.Policy()
		return commands.Result{Message: fmt.Sprintf("logged %.1f°C at %s: OUTSIDE %.0f-%.0f°C", r.Celsius, r.Time, p.FridgeMinC, p.FridgeMaxC)}, nil
	}
	return commands.Result{Message: fmt.Sprintf("logged %.1f°C at %s", r.Celsius, r.Time)}, nil
}

func (m Model) toggleRP(item string) (commands.Result, error) {
	if m.Store == nil {
		return commands.Result{}, errNoStore
	}
	checked, err := m.Store.ToggleRPItem(context.Background(), item)
	if err != nil {
		return commands.Result{}, err
	}
	if checked {
		return commands.Result{Message: fmt.Sprintf("checked: %s", item)}, nil
	}
	return commands.Result{Message: fmt.Sprintf("unchecked: %s", item)}, nil
}

func (m Model) cycleTraining(target string) (commands.Result, error) {
	if m.Store == nil {
		return commands.Result{}, errNoStore
	}
	item, err := m.Store.CycleTraining(context.Background(), target)
	if err != nil {
		return commands.Result{}, err
	}
	return commands.Result{Message: fmt.Sprintf("%s / %s: %s", item.StaffName, item.Item, item.Status)}, nil
}

func (m Model) reportIncident(a commands.IncidentArgs) (commands.Result, error) {
	if m.Store == nil {
		return commands.Result{}, errNoStore
	}
	inc, err := m.Store.ReportIncident(context.Background(), tracker.IncidentInput{
		Type:        a.Type,
		Severity:    a.Severity,
		Description: a.Description,
	})
	if err != nil {
		return commands.Result{}, err
	}
	return commands.Result{Message: fmt.Sprintf("recorded %s (%s)", inc.Type, inc.Severity)}, nil
}
