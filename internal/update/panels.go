package update

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sandeepkv93/rxtrack/internal/model"
	"github.com/sandeepkv93/rxtrack/internal/views"
)

const notificationLimit = 40

func (m Model) renderMainPane() string {
	if !m.Loaded && m.LastError == nil {
		return "loading..."
	}
	switch m.CurrentView {
	case ViewCleaning:
		return fmt.Sprintf("cleaning:\ncompleted today: %d | all done: %t\nactions: [j/k]move [enter]log selected\n%s",
			m.Card.CompletedToday, m.Card.AllDone, m.cleaningTable.View())
	case ViewDocuments:
		return fmt.Sprintf("documents: %d/%d valid\n%s", m.Card.Documents.Good, m.Card.Documents.Total, m.documentTable.View())
	case ViewTraining:
		return fmt.Sprintf("staff training: %d/%d complete\nactions: [j/k]move [c]cycle status\n%s",
			m.Card.Training.Good, m.Card.Training.Total, m.trainingTable.View())
	case ViewSafeguarding:
		return fmt.Sprintf("safeguarding: %d/%d current\n%s", m.Card.Safeguarding.Good, m.Card.Safeguarding.Total, m.safeguardingTable.View())
	case ViewTemperature:
		return m.renderTemperatureView()
	case ViewRP:
		return m.renderRPView()
	default:
		if m.dashboardView != "" {
			return m.dashboardView
		}
		return views.DashboardMarkdown(m.pharmacyName, m.Card)
	}
}

func (m Model) renderTemperatureView() string {
	rangeText := "-"
	if m.Store != nil {
		p := m.Store.Policy()
		rangeText = fmt.Sprintf("%.0f-%.0f°C", p.FridgeMinC, p.FridgeMaxC)
	}
	return views.RenderTemperaturePanel(views.TemperaturePanelData{
		TableView: m.temperatureTable.View(),
		Range:     rangeText,
		Today:     len(m.Card.ReadingsToday),
		Outside:   len(m.Card.OutOfRange),
	})
}

func (m Model) renderRPView() string {
	entry, _ := m.todayRPLog()
	data := views.ChecklistData{
		Date:       m.today().Format(model.DateLayout),
		Pharmacist: entry.Pharmacist,
		Cursor:     m.Cursors[ViewRP],
	}
	if data.Pharmacist == "" {
		data.Pharmacist = m.Snapshot.Rotation.Pharmacist
	}
	add := func(group string, items []string) {
		for _, item := range items {
			data.Items = append(data.Items, views.ChecklistItemData{Label: item, Group: group, Checked: entry.Checklist[item]})
		}
	}
	add("Daily", model.RPDailyItems)
	add("Weekly", model.RPWeeklyItems)
	add("Fortnightly", model.RPFortnightlyItems)
	return views.RenderChecklist(data)
}

func (m Model) todayRPLog() (model.RPLogEntry, bool) {
	today := m.today()
	for _, e := range m.Snapshot.RPLog {
		if model.DaysUntil(e.Date, today) == 0 {
			return e, true
		}
	}
	return model.RPLogEntry{}, false
}

func (m Model) today() time.Time {
	if !m.Card.GeneratedAt.IsZero() {
		return m.Card.GeneratedAt
	}
	if m.Store != nil {
		return m.Store.Now()
	}
	return time.Now()
}

func (m Model) renderDetailPane() string {
	switch m.CurrentView {
	case ViewCleaning:
		i := m.Cursors[ViewCleaning]
		if i >= len(m.Card.TaskRows) {
			return views.RenderDetail("task", nil)
		}
		r := m.Card.TaskRows[i]
		last := "never"
		if r.LastDone != nil {
			last = r.LastDone.In(m.location()).Format("2006-01-02 15:04")
		}
		return views.RenderDetail("task", []views.DetailField{
			{Label: "Name", Value: r.Task.Name},
			{Label: "Frequency", Value: string(r.Task.Frequency)},
			{Label: "Status", Value: views.TaskBadge(r.Status)},
			{Label: "Last done", Value: last},
			{Label: "Assignee", Value: r.Assignee},
		})
	case ViewDocuments:
		i := m.Cursors[ViewDocuments]
		if i >= len(m.Card.DocumentRows) {
			return views.RenderDetail("document", nil)
		}
		r := m.Card.DocumentRows[i]
		fields := []views.DetailField{
			{Label: "Name", Value: r.Document.Name},
			{Label: "Category", Value: string(r.Document.Category)},
			{Label: "Owner", Value: r.Document.Owner},
			{Label: "Issued", Value: model.FormatDate(r.Document.IssueDate)},
			{Label: "Expiry", Value: model.FormatDate(r.Document.ExpiryDate)},
			{Label: "Status", Value: views.LightBadge(r.Light)},
		}
		if r.Document.ExpiryDate != nil {
			fields = append(fields, views.DetailField{Label: "Days left", Value: fmt.Sprintf("%d", r.DaysLeft)})
		}
		fields = append(fields, views.DetailField{Label: "Notes", Value: r.Document.Notes})
		return views.RenderDetail("document", fields)
	case ViewTraining:
		i := m.Cursors[ViewTraining]
		if i >= len(m.Snapshot.Training) {
			return views.RenderDetail("training", nil)
		}
		t := m.Snapshot.Training[i]
		return views.RenderDetail("training", []views.DetailField{
			{Label: "ID", Value: t.ID},
			{Label: "Staff", Value: t.StaffName},
			{Label: "Role", Value: t.Role},
			{Label: "Item", Value: t.Item},
			{Label: "Target", Value: model.FormatDate(t.TargetDate)},
			{Label: "Status", Value: views.TrainingBadge(t.Status)},
		})
	case ViewSafeguarding:
		i := m.Cursors[ViewSafeguarding]
		if i >= len(m.Card.SafeguardingRows) {
			return views.RenderDetail("safeguarding", nil)
		}
		r := m.Card.SafeguardingRows[i]
		signed := "no"
		if r.Record.SignedOff {
			signed = "yes"
		}
		return views.RenderDetail("safeguarding", []views.DetailField{
			{Label: "Staff", Value: r.Record.StaffName},
			{Label: "Job title", Value: r.Record.JobTitle},
			{Label: "Trained", Value: model.FormatDate(r.Record.TrainingDate)},
			{Label: "Delivered by", Value: r.Record.DeliveredBy},
			{Label: "Method", Value: r.Record.Method},
			{Label: "Handbook", Value: r.Record.HandbookVersion},
			{Label: "Signed off", Value: signed},
			{Label: "Refresher due", Value: model.FormatDate(r.RefresherDue)},
			{Label: "Status", Value: views.SafeguardingBadge(r.Status)},
		})
	case ViewTemperature:
		var b strings.Builder
		b.WriteString("out of range today:\n")
		if len(m.Card.OutOfRange) == 0 {
			b.WriteString("(none)")
		}
		for _, r := range m.Card.OutOfRange {
			fmt.Fprintf(&b, "- %s %s\n", r.Time, views.TemperatureBadge(r.Celsius, false))
		}
		return strings.TrimSpace(b.String())
	case ViewRP:
		return fmt.Sprintf("rp checklist:\n%d/%d checked today", m.Card.RPChecked, m.Card.RPTotal)
	default:
		return ""
	}
}

func (m Model) renderCommandPalette() string {
	if !m.Palette.Active {
		return ""
	}
	return views.RenderCommandPalette(true, m.Palette.Input)
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > notificationLimit {
		m.Notifications = m.Notifications[len(m.Notifications)-notificationLimit:]
	}
	if m.logger != nil {
		m.logger.Info("notification", zap.String("title", title), zap.String("level", level), zap.String("body", body))
	}
}
