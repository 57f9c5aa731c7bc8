package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/rxtrack/internal/alerts"
	"github.com/sandeepkv93/rxtrack/internal/model"
	"github.com/sandeepkv93/rxtrack/internal/scorecard"
	"github.com/sandeepkv93/rxtrack/internal/views"
)

func (a *app) scorecard(cmd *cobra.Command) (scorecard.Scorecard, error) {
	svc, err := a.service()
	if err != nil {
		return scorecard.Scorecard{}, err
	}
	return svc.Scorecard(cmd.Context())
}

func newStatusCmd(a *app) *cobra.Command {
	var markdown, pretty bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the compliance scorecard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := a.scorecard(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch {
			case pretty:
				fmt.Fprintln(out, views.RenderMarkdown(views.DashboardMarkdown(a.cfg.Pharmacy.Name, sc)))
			case markdown:
				fmt.Fprint(out, views.DashboardMarkdown(a.cfg.Pharmacy.Name, sc))
			default:
				writeStatus(out, sc)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&markdown, "markdown", false, "print the summary as markdown")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "render the markdown summary for the terminal")
	return cmd
}

func writeStatus(out io.Writer, sc scorecard.Scorecard) {
	rows := make([][]string, 0, 4)
	for _, c := range sc.Categories() {
		rows = append(rows, []string{c.Name, strconv.Itoa(c.Good), strconv.Itoa(c.Total), fmt.Sprintf("%d%%", c.Score)})
	}
	fmt.Fprintln(out, views.RenderTable([]string{"Category", "Good", "Total", "Score"}, rows))
	fmt.Fprintf(out, "overall: %d%% (%s)\n", sc.Overall, scorecard.BandFor(sc.Overall))
	if sc.AllClear {
		fmt.Fprintln(out, "action required: none")
	} else {
		fmt.Fprintf(out, "action required: %d\n", len(sc.Actions))
		for _, act := range sc.Actions {
			fmt.Fprintf(out, "- %s: %s (%s)\n", views.ActionTitle(act.Kind), act.Subject, act.Detail)
		}
	}
	fmt.Fprintf(out, "completed today: %d\n", sc.CompletedToday)
	fmt.Fprintf(out, "fridge readings today: %d (%d out of range)\n", len(sc.ReadingsToday), len(sc.OutOfRange))
	if sc.RPLogged {
		fmt.Fprintf(out, "rp checklist: %d/%d\n", sc.RPChecked, sc.RPTotal)
	} else {
		fmt.Fprintln(out, "rp checklist: not started")
	}
}

func newTasksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List cleaning tasks with their status and assignee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := a.scorecard(cmd)
			if err != nil {
				return err
			}
			loc, err := a.cfg.Location()
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(sc.TaskRows))
			for _, r := range sc.TaskRows {
				last := "never"
				if r.LastDone != nil {
					last = r.LastDone.In(loc).Format("2006-01-02 15:04")
				}
				rows = append(rows, []string{r.Task.Name, string(r.Task.Frequency), r.Status.Label(), last, dash(r.Assignee)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), views.RenderTable([]string{"Task", "Frequency", "Status", "Last done", "Assignee"}, rows))
			return nil
		},
	}
}

func newDocsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "docs",
		Short: "List documents with their expiry traffic light",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := a.scorecard(cmd)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(sc.DocumentRows))
			for _, r := range sc.DocumentRows {
				left := "-"
				if r.Document.ExpiryDate != nil {
					left = strconv.Itoa(r.DaysLeft)
				}
				rows = append(rows, []string{r.Document.Name, dash(string(r.Document.Category)), dash(model.FormatDate(r.Document.ExpiryDate)), string(r.Light), left})
			}
			fmt.Fprintln(cmd.OutOrStdout(), views.RenderTable([]string{"Document", "Category", "Expiry", "Light", "Days left"}, rows))
			return nil
		},
	}
}

func newSafeguardingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "safeguarding",
		Short: "List safeguarding training and refresher status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := a.scorecard(cmd)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(sc.SafeguardingRows))
			for _, r := range sc.SafeguardingRows {
				rows = append(rows, []string{r.Record.StaffName, dash(model.FormatDate(r.Record.TrainingDate)), dash(model.FormatDate(r.RefresherDue)), string(r.Status)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), views.RenderTable([]string{"Staff", "Trained", "Refresher due", "Status"}, rows))
			return nil
		},
	}
}

func newTrainingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "training",
		Short: "List staff training items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			snap, err := svc.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(snap.Training))
			for _, t := range snap.Training {
				rows = append(rows, []string{t.ID, t.StaffName, t.Item, dash(model.FormatDate(t.TargetDate)), string(t.Status)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), views.RenderTable([]string{"ID", "Staff", "Item", "Target", "Status"}, rows))
			return nil
		},
	}
}

func newAlertsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "alerts",
		Short: "List upcoming status changes, soonest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			events, err := svc.Alerts(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "no upcoming changes")
				return nil
			}
			for _, ev := range events {
				fmt.Fprintf(out, "%s  %s\n", ev.TriggerAt.Format("2006-01-02 15:04"), alerts.Message(ev))
			}
			return nil
		},
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
