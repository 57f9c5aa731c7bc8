package update

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sandeepkv93/rxtrack/internal/model"
)

const (
	tableHeight     = 14
	maxReadingsShow = 50
)

func (m *Model) initBubbleComponents() {
	m.cleaningTable = newTable([]table.Column{
		{Title: "Task", Width: 28},
		{Title: "Frequency", Width: 11},
		{Title: "Status", Width: 10},
		{Title: "Last done", Width: 11},
		{Title: "Assignee", Width: 12},
	})
	m.documentTable = newTable([]table.Column{
		{Title: "Document", Width: 28},
		{Title: "Category", Width: 12},
		{Title: "Expiry", Width: 11},
		{Title: "Status", Width: 18},
	})
	m.trainingTable = newTable([]table.Column{
		{Title: "ID", Width: 8},
		{Title: "Staff", Width: 14},
		{Title: "Item", Width: 26},
		{Title: "Target", Width: 11},
		{Title: "Status", Width: 11},
	})
	m.safeguardingTable = newTable([]table.Column{
		{Title: "Staff", Width: 16},
		{Title: "Job title", Width: 14},
		{Title: "Trained", Width: 11},
		{Title: "Refresher", Width: 11},
		{Title: "Status", Width: 9},
	})
	m.temperatureTable = newTable([]table.Column{
		{Title: "Date", Width: 11},
		{Title: "Time", Width: 6},
		{Title: "°C", Width: 6},
		{Title: "Range", Width: 6},
		{Title: "By", Width: 12},
		{Title: "Notes", Width: 20},
	})

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
}

func newTable(cols []table.Column) table.Model {
	return table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(tableHeight))
}

func (m *Model) syncBubbleData() {
	rows := make([]table.Row, 0, len(m.Card.TaskRows))
	for _, r := range m.Card.TaskRows {
		last := "never"
		if r.LastDone != nil {
			last = r.LastDone.In(m.location()).Format(model.DateLayout)
		}
		rows = append(rows, table.Row{r.Task.Name, string(r.Task.Frequency), r.Status.Label(), last, orDash(r.Assignee)})
	}
	setRows(&m.cleaningTable, rows, m.Cursors[ViewCleaning])

	rows = make([]table.Row, 0, len(m.Card.DocumentRows))
	for _, r := range m.Card.DocumentRows {
		rows = append(rows, table.Row{r.Document.Name, string(r.Document.Category), orDash(model.FormatDate(r.Document.ExpiryDate)), r.Light.Label()})
	}
	setRows(&m.documentTable, rows, m.Cursors[ViewDocuments])

	rows = make([]table.Row, 0, len(m.Snapshot.Training))
	for _, t := range m.Snapshot.Training {
		rows = append(rows, table.Row{shortID(t.ID), t.StaffName, t.Item, orDash(model.FormatDate(t.TargetDate)), string(t.Status)})
	}
	setRows(&m.trainingTable, rows, m.Cursors[ViewTraining])

	rows = make([]table.Row, 0, len(m.Card.SafeguardingRows))
	for _, r := range m.Card.SafeguardingRows {
		rows = append(rows, table.Row{r.Record.StaffName, orDash(r.Record.JobTitle), orDash(model.FormatDate(r.Record.TrainingDate)), orDash(model.FormatDate(r.RefresherDue)), r.Status.Label()})
	}
	setRows(&m.safeguardingTable, rows, m.Cursors[ViewSafeguarding])

	readings := m.recentReadings()
	rows = make([]table.Row, 0, len(readings))
	for _, r := range readings {
		state := "ok"
		if m.Store != nil && !m.Store.Policy().TemperatureInRange(r.Celsius) {
			state = "OUT"
		}
		rows = append(rows, table.Row{r.Date.Format(model.DateLayout), r.Time, fmt.Sprintf("%.1f", r.Celsius), state, orDash(r.LoggedBy), r.Notes})
	}
	setRows(&m.temperatureTable, rows, m.Cursors[ViewTemperature])

	m.commandInput.SetValue(m.Palette.Input)
	if m.Palette.Active {
		m.commandInput.Focus()
	} else {
		m.commandInput.Blur()
	}
}

func setRows(t *table.Model, rows []table.Row, cursor int) {
	t.SetRows(rows)
	if len(rows) > 0 && cursor < len(rows) {
		t.SetCursor(cursor)
	}
}

// recentReadings lists readings newest first.
func (m Model) recentReadings() []model.TemperatureReading {
	out := append([]model.TemperatureReading(nil), m.Snapshot.Temperatures...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].Time > out[j].Time
	})
	if len(out) > maxReadingsShow {
		out = out[:maxReadingsShow]
	}
	return out
}

// rowCount is the number of selectable rows in v.
func (m Model) rowCount(v View) int {
	switch v {
	case ViewCleaning:
		return len(m.Card.TaskRows)
	case ViewDocuments:
		return len(m.Card.DocumentRows)
	case ViewTraining:
		return len(m.Snapshot.Training)
	case ViewSafeguarding:
		return len(m.Card.SafeguardingRows)
	case ViewTemperature:
		return len(m.recentReadings())
	case ViewRP:
		return len(model.RPItems())
	default:
		return 0
	}
}
