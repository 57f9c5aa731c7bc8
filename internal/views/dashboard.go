package views

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/rxtrack/internal/model"
	"github.com/sandeepkv93/rxtrack/internal/scorecard"
)

var actionTitles = map[scorecard.ActionKind]string{
	scorecard.ActionDocumentExpired:  "Expired document",
	scorecard.ActionDocumentExpiring: "Expiring soon",
	scorecard.ActionTrainingPending:  "Training pending",
	scorecard.ActionTaskOverdue:      "Overdue task",
	scorecard.ActionSafeguardingDue:  "Safeguarding refresher",
}

func ActionTitle(kind scorecard.ActionKind) string {
	if title, ok := actionTitles[kind]; ok {
		return title
	}
	return string(kind)
}

// DashboardMarkdown summarises a scorecard as markdown for glamour.
func DashboardMarkdown(pharmacy string, sc scorecard.Scorecard) string {
	var b strings.Builder
	title := "Compliance"
	if strings.TrimSpace(pharmacy) != "" {
		title = pharmacy + " compliance"
	}
	fmt.Fprintf(&b, "# %s: %s\n\n", title, sc.GeneratedAt.Format(model.DateLayout))
	fmt.Fprintf(&b, "**Overall score: %d%%** (%s)\n\n", sc.Overall, scorecard.BandFor(sc.Overall))

	b.WriteString("| Category | Good | Total | Score |\n|---|---|---|---|\n")
	for _, c := range sc.Categories() {
		fmt.Fprintf(&b, "| %s | %d | %d | %d%% |\n", c.Name, c.Good, c.Total, c.Score)
	}

	fmt.Fprintf(&b, "\n## Action required (%d)\n\n", len(sc.Actions))
	if sc.AllClear {
		b.WriteString("All clear.\n")
	}
	for _, a := range sc.Actions {
		fmt.Fprintf(&b, "- **%s** %s: %s\n", ActionTitle(a.Kind), a.Subject, a.Detail)
	}

	b.WriteString("\n## Upcoming expiries\n\n")
	if len(sc.Upcoming) == 0 {
		b.WriteString("None.\n")
	}
	for _, row := range sc.Upcoming {
		fmt.Fprintf(&b, "- %s %s (%s)\n", model.FormatDate(row.Document.ExpiryDate), row.Document.Name, daysLeft(row.DaysLeft))
	}

	b.WriteString("\n## Today\n\n")
	switch {
	case sc.AllDone:
		fmt.Fprintf(&b, "- Cleaning: all done, %d completed today\n", sc.CompletedToday)
	default:
		fmt.Fprintf(&b, "- Cleaning: %d completed today, %d outstanding\n", sc.CompletedToday, outstanding(sc))
	}
	fmt.Fprintf(&b, "- Fridge: %d reading(s), %d out of range\n", len(sc.ReadingsToday), len(sc.OutOfRange))
	if sc.RPLogged {
		fmt.Fprintf(&b, "- RP log: %d/%d checked\n", sc.RPChecked, sc.RPTotal)
	} else {
		b.WriteString("- RP log: not started\n")
	}

	if len(sc.RecentTraining) > 0 {
		b.WriteString("\n## Recent training\n\n")
		for _, l := range sc.RecentTraining {
			fmt.Fprintf(&b, "- %s %s: %s\n", model.FormatDate(l.DateCompleted), l.StaffName, l.Topic)
		}
	}
	if len(sc.RecentCleaning) > 0 {
		b.WriteString("\n## Recent cleaning\n\n")
		for _, ev := range sc.RecentCleaning {
			who := ""
			if ev.StaffMember != "" {
				who = " by " + ev.StaffMember
			}
			fmt.Fprintf(&b, "- %s %s%s\n", ev.At.Format("2006-01-02 15:04"), ev.TaskName, who)
		}
	}
	return b.String()
}

func outstanding(sc scorecard.Scorecard) int {
	n := 0
	for _, row := range sc.TaskRows {
		if row.Status.NeedsAction() {
			n++
		}
	}
	return n
}

func daysLeft(n int) string {
	switch {
	case n == 0:
		return "today"
	case n == 1:
		return "in 1 day"
	default:
		return fmt.Sprintf("in %d days", n)
	}
}
