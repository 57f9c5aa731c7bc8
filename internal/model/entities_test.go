package model

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestCleaningTaskValidate(t *testing.T) {
	task := CleaningTask{ID: "task-1", Name: "Kitchen Clean", Frequency: FrequencyWeekly}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}

	task.Frequency = Frequency("hourly")
	if err := task.Validate(); !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("expected ErrInvalidFrequency, got: %v", err)
	}

	task.Frequency = FrequencyDaily
	task.Name = " "
	err := task.Validate()
	if err == nil || err.Error() != "model: cleaning task name is required" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDocumentValidateCategory(t *testing.T) {
	doc := Document{ID: "doc-1", Name: "GPhC Registration", Category: CategoryRegistration}
	if err := doc.Validate(); err != nil {
		t.Fatalf("expected valid document, got error: %v", err)
	}
	doc.Category = ""
	if err := doc.Validate(); err != nil {
		t.Fatalf("expected uncategorised document to be valid, got: %v", err)
	}
	doc.Category = DocumentCategory("Misc")
	if err := doc.Validate(); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got: %v", err)
	}
}

func TestTrainingItemValidateAndCycle(t *testing.T) {
	item := TrainingItem{ID: "tr-1", StaffName: "Sam", Item: "Fire safety", Status: TrainingPending}
	if err := item.Validate(); err != nil {
		t.Fatalf("expected valid training item, got: %v", err)
	}
	item.Status = TrainingStatus("Done")
	if err := item.Validate(); !errors.Is(err, ErrInvalidTrainingStatus) {
		t.Fatalf("expected ErrInvalidTrainingStatus, got: %v", err)
	}

	s := TrainingPending
	want := []TrainingStatus{TrainingInProgress, TrainingComplete, TrainingPending}
	for i, w := range want {
		s = s.Next()
		if s != w {
			t.Fatalf("step %d: got %s want %s", i, s, w)
		}
	}
	if TrainingStatus("bogus").Next() != TrainingPending {
		t.Fatal("expected unknown status to restart at Pending")
	}
}

func TestCompletionEventValidate(t *testing.T) {
	ev := CompletionEvent{ID: "c-1", TaskName: "Floor Clean", At: time.Date(2026, 2, 9, 9, 0, 0, 0, time.UTC)}
	if err := ev.Validate(); err != nil {
		t.Fatalf("expected valid completion, got: %v", err)
	}
	ev.At = time.Time{}
	if err := ev.Validate(); err == nil {
		t.Fatal("expected error for zero completion time")
	}
}

func TestTemperatureReadingValidate(t *testing.T) {
	r := TemperatureReading{ID: "t-1", Date: time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC), Celsius: 4.5}
	if err := r.Validate(); err != nil {
		t.Fatalf("expected valid reading, got: %v", err)
	}
	r.Celsius = math.NaN()
	if err := r.Validate(); err == nil {
		t.Fatal("expected error for NaN reading")
	}
}

func TestStatusLabels(t *testing.T) {
	if TrafficAmber.Label() != "Due Within 30 Days" || TaskUpcoming.Label() != "Up to Date" || SafeguardingDueSoon.Label() != "Due Soon" {
		t.Fatal("unexpected status labels")
	}
	if !TaskDone.Good() || !TaskUpcoming.Good() || TaskDue.Good() || TaskOverdue.Good() {
		t.Fatal("unexpected good task statuses")
	}
}
