package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sandeepkv93/rxtrack/internal/alerts"
	"github.com/sandeepkv93/rxtrack/internal/model"
	"github.com/sandeepkv93/rxtrack/internal/views"
)

const alertLogLimit = 20

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadCmd(m.Store), refreshTickCmd(m.refreshInterval)}
	if m.Scheduler != nil {
		cmds = append(cmds, waitForAlertCmd(m.Scheduler.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == "ctrl+c" {
				m.Quitting = true
				return m, tea.Quit
			}
			return m.handlePaletteKey(typed)
		}
		return m.handleKey(typed)
	case tea.WindowSizeMsg:
		m.Width = typed.Width
		return m, nil
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case DataLoadedMsg:
		return m.applyData(typed), nil
	case RefreshTickMsg:
		return m, tea.Batch(loadCmd(m.Store), refreshTickCmd(m.refreshInterval))
	case AlertDueMsg:
		m.AlertLog = append(m.AlertLog, typed.Event)
		if len(m.AlertLog) > alertLogLimit {
			m.AlertLog = m.AlertLog[len(m.AlertLog)-alertLogLimit:]
		}
		text := alerts.Message(typed.Event)
		m.Status = StatusBar{Text: text}
		m.notify("Alert", text, "warn")
		cmds := []tea.Cmd{loadCmd(m.Store)}
		if m.Scheduler != nil {
			cmds = append(cmds, waitForAlertCmd(m.Scheduler.C()))
		}
		return m, tea.Batch(cmds...)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	keyStr := msg.String()
	if v, ok := viewForKey(keyStr); ok {
		m.CurrentView = v
		return m, nil
	}
	switch keyStr {
	case "/":
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.Status = StatusBar{Text: "command palette active"}
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		if m.HelpVisible {
			m.Status = StatusBar{Text: "help shown"}
		} else {
			m.Status = StatusBar{Text: "help hidden"}
		}
		return m, nil
	case m.Keys.Reload:
		m.Status = StatusBar{Text: "reloading"}
		return m, loadCmd(m.Store)
	case "ctrl+c", m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case "j", "down":
		m.moveCursor(1)
		return m, nil
	case "k", "up":
		m.moveCursor(-1)
		return m, nil
	}

	switch {
	case m.CurrentView == ViewCleaning && keyStr == "enter":
		return m.logSelectedTask()
	case m.CurrentView == ViewRP && keyStr == " ":
		return m.toggleSelectedRPItem()
	case m.CurrentView == ViewTraining && keyStr == "c":
		return m.cycleSelectedTraining()
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	n := m.rowCount(m.CurrentView)
	m.Cursors[m.CurrentView] = clampCursor(m.Cursors[m.CurrentView]+delta, n)
}

func (m Model) logSelectedTask() (Model, tea.Cmd) {
	i := m.Cursors[ViewCleaning]
	if i >= len(m.Card.TaskRows) {
		return m, nil
	}
	row := m.Card.TaskRows[i]
	res, err := m.logTask(row.Task.Name, row.Assignee)
	return m.afterWrite(res.Message, err)
}

func (m Model) toggleSelectedRPItem() (Model, tea.Cmd) {
	items := model.RPItems()
	i := m.Cursors[ViewRP]
	if i >= len(items) {
		return m, nil
	}
	res, err := m.toggleRP(items[i])
	return m.afterWrite(res.Message, err)
}

func (m Model) cycleSelectedTraining() (Model, tea.Cmd) {
	i := m.Cursors[ViewTraining]
	if i >= len(m.Snapshot.Training) {
		return m, nil
	}
	res, err := m.cycleTraining(m.Snapshot.Training[i].ID)
	return m.afterWrite(res.Message, err)
}

// afterWrite reports a store write and reloads on success.
func (m Model) afterWrite(message string, err error) (Model, tea.Cmd) {
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Error", err.Error(), "error")
		return m, nil
	}
	m.Status = StatusBar{Text: message}
	m.notify("Saved", message, "info")
	return m, loadCmd(m.Store)
}

func (m Model) applyData(msg DataLoadedMsg) Model {
	m.Snapshot = msg.Snapshot
	m.Card = msg.Card
	m.Loaded = true
	m.LastError = nil
	for _, v := range Views {
		m.Cursors[v] = clampCursor(m.Cursors[v], m.rowCount(v))
	}
	m.dashboardView = views.RenderMarkdown(views.DashboardMarkdown(m.pharmacyName, m.Card))
	if m.Scheduler != nil {
		if err := m.Scheduler.Replace(msg.Alerts); err != nil {
			m.Status = StatusBar{Text: fmt.Sprintf("alert scheduling failed: %v", err), IsError: true}
		}
	}
	m.logger.Debug("data loaded",
		zap.Int("overall", m.Card.Overall),
		zap.Int("actions", len(m.Card.Actions)),
		zap.Int("alerts", len(msg.Alerts)),
	)
	return m
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	right := strings.TrimSpace(strings.Join([]string{
		m.renderDetailPane(),
		m.renderCommandPalette(),
		m.renderHelpIfVisible(),
	}, "\n\n"))
	if m.CurrentView == ViewDashboard && !m.Palette.Active && !m.HelpVisible {
		right = ""
	}

	names := make([]string, 0, len(Views))
	for _, v := range Views {
		names = append(names, string(v))
	}

	return views.RenderApp(views.AppData{
		Header:       m.header(),
		Tabs:         views.RenderTabs(names, string(m.CurrentView)),
		LeftPane:     m.renderMainPane(),
		RightPane:    right,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: m.renderNotificationsView(),
		Footer:       fmt.Sprintf("keys: 1-7 views | j/k move | / cmd | %s reload | %s help | %s quit", m.Keys.Reload, m.Keys.Help, m.Keys.Quit),
		Width:        m.Width,
	})
}

func (m Model) header() string {
	name := m.pharmacyName
	if name == "" {
		name = "pharmacy"
	}
	if !m.Loaded {
		return fmt.Sprintf("rxtrack | %s | loading", name)
	}
	return fmt.Sprintf("rxtrack | %s | overall: %d%% | actions: %d", name, m.Card.Overall, len(m.Card.Actions))
}

func viewForKey(k string) (View, bool) {
	if len(k) != 1 || k[0] < '1' || k[0] > '9' {
		return "", false
	}
	i := int(k[0] - '1')
	if i >= len(Views) {
		return "", false
	}
	return Views[i], true
}

func isKnownView(v View) bool {
	for _, known := range Views {
		if known == v {
			return true
		}
	}
	return false
}
