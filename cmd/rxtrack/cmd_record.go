package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/rxtrack/internal/model"
)

func newLogCmd(a *app) *cobra.Command {
	var by, notes string
	cmd := &cobra.Command{
		Use:   "log <task>",
		Short: "Record that a cleaning task was done now",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			ev, err := svc.LogCompletion(cmd.Context(), strings.Join(args, " "), by, notes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged %s at %s\n", ev.TaskName, ev.At.Format("2006-01-02 15:04"))
			return nil
		},
	}
	cmd.Flags().StringVar(&by, "by", "", "staff member who did the task")
	cmd.Flags().StringVar(&notes, "notes", "", "notes for the entry")
	return cmd
}

func newTempCmd(a *app) *cobra.Command {
	var by, note string
	cmd := &cobra.Command{
		Use:   "temp <celsius>",
		Short: "Record a fridge temperature reading",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			celsius, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "C"), 64)
			if err != nil {
				return fmt.Errorf("invalid temperature %q", args[0])
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			r, inRange, err := svc.LogTemperature(cmd.Context(), celsius, by, note)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if inRange {
				fmt.Fprintf(out, "logged %.1f°C at %s\n", r.Celsius, r.Time)
				return nil
			}
			p := svc.Policy()
			fmt.Fprintf(out, "logged %.1f°C at %s: OUT OF RANGE (%.0f-%.0f°C)\n", r.Celsius, r.Time, p.FridgeMinC, p.FridgeMaxC)
			return nil
		},
	}
	cmd.Flags().StringVar(&by, "by", "", "staff member taking the reading")
	cmd.Flags().StringVar(&note, "note", "", "note for the reading")
	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <item>",
		Short: "Toggle an item on today's Responsible Pharmacist checklist",
		Long:  "Toggle an item on today's Responsible Pharmacist checklist. The item may be a unique prefix, for example \"controlled\".",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			item, ok := model.MatchRPItem(query)
			if !ok {
				return fmt.Errorf("no single checklist item matches %q", query)
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			checked, err := svc.ToggleRPItem(cmd.Context(), item)
			if err != nil {
				return err
			}
			state := "unchecked"
			if checked {
				state = "checked"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", state, item)
			return nil
		},
	}
}

func newCycleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cycle <training id>",
		Short: "Advance a training item to its next status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			item, err := svc.CycleTraining(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s / %s: %s\n", item.StaffName, item.Item, item.Status)
			return nil
		},
	}
}
