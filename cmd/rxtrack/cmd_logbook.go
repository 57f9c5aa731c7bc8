package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/rxtrack/internal/model"
	"github.com/sandeepkv93/rxtrack/internal/scorecard"
	"github.com/sandeepkv93/rxtrack/internal/tracker"
	"github.com/sandeepkv93/rxtrack/internal/views"
)

func newIncidentCmd(a *app) *cobra.Command {
	var in tracker.IncidentInput
	cmd := &cobra.Command{
		Use:   "incident <description>",
		Short: "Record a near miss, dispensing error or complaint",
		Long:  "Record an incident. Type is one of Near Miss, Dispensing Error, Complaint or Other (default Near Miss); severity is Low, Medium or High (default Low); date defaults to today.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			in.Description = strings.Join(args, " ")
			inc, err := svc.ReportIncident(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "recorded %s (%s) on %s\n", inc.Type, inc.Severity, inc.Date.Format(model.DateLayout))
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Type, "type", "", "incident type")
	cmd.Flags().StringVar(&in.Severity, "severity", "", "Low, Medium or High")
	cmd.Flags().StringVar(&in.Date, "date", "", "date of the incident (YYYY-MM-DD)")
	return cmd
}

func newIncidentsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "incidents",
		Short: "List recorded incidents, newest first",
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
			rows := make([][]string, 0, len(snap.Incidents))
			for _, inc := range snap.Incidents {
				rows = append(rows, []string{inc.Date.Format(model.DateLayout), string(inc.Type), string(inc.Severity), inc.Description})
			}
			fmt.Fprintln(cmd.OutOrStdout(), views.RenderTable([]string{"Date", "Type", "Severity", "Description"}, rows))
			return nil
		},
	}
}

func newTrainLogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trainlog",
		Short: "List completed training sessions, most recently recorded first",
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
			policy, now := svc.Policy(), svc.Now()
			rows := make([][]string, 0, len(snap.TrainingLogs))
			for _, l := range snap.TrainingLogs {
				cert := "-"
				if l.CertificateExpiry != nil {
					cert = policy.TrafficLight(l.CertificateExpiry, now).Label()
				}
				rows = append(rows, []string{
					l.StaffName,
					dash(model.FormatDate(l.DateCompleted)),
					l.Topic,
					dash(l.TrainerName),
					dash(model.FormatDate(l.CertificateExpiry)),
					cert,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), views.RenderTable([]string{"Staff", "Completed", "Topic", "Trainer", "Cert. Expiry", "Certificate"}, rows))
			return nil
		},
	}
	cmd.AddCommand(newTrainLogAddCmd(a))
	return cmd
}

func newTrainLogAddCmd(a *app) *cobra.Command {
	var in tracker.TrainingLogInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a completed training session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			entry, err := svc.LogTraining(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged %s for %s on %s\n", entry.Topic, entry.StaffName, model.FormatDate(entry.DateCompleted))
			return nil
		},
	}
	cmd.Flags().StringVar(&in.StaffName, "staff", "", "staff member trained (required)")
	cmd.Flags().StringVar(&in.DateCompleted, "date", "", "date completed, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&in.Topic, "topic", "", "training topic (required)")
	cmd.Flags().StringVar(&in.TrainerName, "trainer", "", "trainer name")
	cmd.Flags().StringVar(&in.CertificateExpiry, "expiry", "", "certificate expiry, YYYY-MM-DD")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "notes")
	return cmd
}

func newAssignCmd(a *app) *cobra.Command {
	var by string
	cmd := &cobra.Command{
		Use:   "assign <staff> <title>",
		Short: "Give a staff member a one-off task for today",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			task, err := svc.AssignTask(cmd.Context(), args[0], strings.Join(args[1:], " "), by)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "assigned %q to %s (%s)\n", task.Title, task.StaffName, shortID(task.ID))
			return nil
		},
	}
	cmd.Flags().StringVar(&by, "by", "", "who is assigning the task")
	return cmd
}

func newDoneCmd(a *app) *cobra.Command {
	var by string
	cmd := &cobra.Command{
		Use:   "done <assigned task id>",
		Short: "Complete or reopen an assigned task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			task, err := svc.ToggleAssignedTask(cmd.Context(), args[0], by)
			if err != nil {
				return err
			}
			state := "reopened"
			if task.Completed {
				state = "done"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", state, task.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&by, "by", "", "who completed the task (defaults to the assignee)")
	return cmd
}

func newMyTasksCmd(a *app) *cobra.Command {
	var team bool
	cmd := &cobra.Command{
		Use:   "mytasks [staff]",
		Short: "Show a staff member's tasks for today, or the whole team with --team",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if team {
				days, err := svc.TeamProgress(cmd.Context())
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(days))
				for _, d := range days {
					state := ""
					if d.AllDone() {
						state = "all done"
					}
					rows = append(rows, []string{d.Staff, fmt.Sprintf("%d/%d", d.Done, d.Total), state})
				}
				fmt.Fprintln(out, views.RenderTable([]string{"Staff", "Done", ""}, rows))
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("name a staff member or pass --team")
			}
			day, err := svc.MyTasks(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			writeStaffDay(out, day)
			return nil
		},
	}
	cmd.Flags().BoolVar(&team, "team", false, "show progress for every staff member")
	return cmd
}

func writeStaffDay(out io.Writer, day scorecard.StaffDay) {
	fmt.Fprintf(out, "%s: %d/%d done\n", day.Staff, day.Done, day.Total)
	if day.Total == 0 {
		fmt.Fprintln(out, "no tasks today")
		return
	}
	for _, r := range day.Rotation {
		fmt.Fprintf(out, "%s %s (%s)\n", checkbox(r.Done), r.Task.Name, r.Task.Frequency)
	}
	for _, t := range day.Assigned {
		fmt.Fprintf(out, "%s %s [%s]\n", checkbox(t.Completed), t.Title, shortID(t.ID))
	}
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
