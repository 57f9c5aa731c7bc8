package scorecard

import (
	"strings"
	"time"

	"github.com/sandeepkv93/rxtrack/internal/model"
)

// RotationTask is a cleaning task the rotation gives someone today.
type RotationTask struct {
	Task model.CleaningTask
	Done bool
}

// StaffDay is one person's work for the day: rotation tasks plus tasks
// assigned to them for that date.
type StaffDay struct {
	Staff    string
	Rotation []RotationTask
	Assigned []model.AssignedTask
	Total    int
	Done     int
}

func (d StaffDay) AllDone() bool {
	return d.Total > 0 && d.Done == d.Total
}

// TasksFor collects staff's day. A rotation task counts as done once any
// completion of it falls on now's calendar day, whoever logged it.
func TasksFor(snap Snapshot, staff string, now time.Time) StaffDay {
	day := StaffDay{Staff: staff}
	byFrequency := make(map[model.Frequency]int)
	for _, task := range snap.Tasks {
		assignee := snap.Rotation.Assignee(task.Name, task.Frequency, byFrequency[task.Frequency], now)
		byFrequency[task.Frequency]++
		if !strings.EqualFold(assignee, staff) {
			continue
		}
		row := RotationTask{Task: task, Done: doneOn(task.Name, snap.Completions, now)}
		day.Rotation = append(day.Rotation, row)
		day.Total++
		if row.Done {
			day.Done++
		}
	}
	for _, t := range snap.Assigned {
		if !strings.EqualFold(t.StaffName, staff) || !model.SameDay(t.Date, now) {
			continue
		}
		day.Assigned = append(day.Assigned, t)
		day.Total++
		if t.Completed {
			day.Done++
		}
	}
	return day
}

// TeamProgress is TasksFor for everyone on the staff list, falling back to
// the rotation roster when no staff are recorded.
func TeamProgress(snap Snapshot, now time.Time) []StaffDay {
	names := make([]string, 0, len(snap.Staff))
	for _, m := range snap.Staff {
		names = append(names, m.Name)
	}
	if len(names) == 0 {
		names = append(names, snap.Rotation.Staff...)
	}
	out := make([]StaffDay, 0, len(names))
	for _, name := range names {
		out = append(out, TasksFor(snap, name, now))
	}
	return out
}

func doneOn(taskName string, events []model.CompletionEvent, now time.Time) bool {
	for _, ev := range events {
		if ev.TaskName == taskName && model.SameDay(ev.At, now) {
			return true
		}
	}
	return false
}
