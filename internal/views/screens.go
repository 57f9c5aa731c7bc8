package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// detailWidth wraps long detail values such as notes.
const detailWidth = 48

var (
	activeTabStyle   = lipgloss.NewStyle().Bold(true).Underline(true).Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(0, 1)
)

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

type DetailField struct {
	Label string
	Value string
}

type ChecklistItemData struct {
	Label   string
	Checked bool
	Group   string
}

type ChecklistData struct {
	Date       string
	Pharmacist string
	Items      []ChecklistItemData
	Cursor     int
}

type TemperaturePanelData struct {
	TableView string
	Range     string
	Today     int
	Outside   int
}

// RenderTabs numbers the views from 1 and highlights the current one.
func RenderTabs(names []string, current string) string {
	parts := make([]string, 0, len(names))
	for i, name := range names {
		label := fmt.Sprintf("%d %s", i+1, name)
		if name == current {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, inactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func RenderDetail(title string, fields []DetailField) string {
	var b strings.Builder
	b.WriteString(title + ":\n")
	if len(fields) == 0 {
		b.WriteString("(no selection)")
		return b.String()
	}
	for _, f := range fields {
		value := f.Value
		if strings.TrimSpace(value) == "" {
			value = "-"
		}
		label := strings.ToLower(f.Label)
		lines := strings.Split(wordwrap.String(value, detailWidth), "\n")
		fmt.Fprintf(&b, "%s: %s\n", label, lines[0])
		indent := strings.Repeat(" ", len(label)+2)
		for _, line := range lines[1:] {
			b.WriteString(indent + line + "\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderChecklist(data ChecklistData) string {
	var b strings.Builder
	b.WriteString("rp log:\n")
	fmt.Fprintf(&b, "date: %s | pharmacist: %s\n", data.Date, orDash(data.Pharmacist))
	b.WriteString("actions: [j/k]move [space]toggle\n")
	group := ""
	checked := 0
	for i, item := range data.Items {
		if item.Group != group {
			group = item.Group
			fmt.Fprintf(&b, "\n%s:\n", group)
		}
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		box := "[ ]"
		if item.Checked {
			box = "[x]"
			checked++
		}
		fmt.Fprintf(&b, "%s %s %s\n", cursor, box, item.Label)
	}
	fmt.Fprintf(&b, "\n%d/%d checked", checked, len(data.Items))
	return b.String()
}

func RenderTemperaturePanel(data TemperaturePanelData) string {
	var b strings.Builder
	b.WriteString("fridge temperatures:\n")
	fmt.Fprintf(&b, "range: %s | today: %d reading(s), %d out of range\n", data.Range, data.Today, data.Outside)
	b.WriteString("actions: /temp <celsius> [note]\n")
	b.WriteString(data.TableView)
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
