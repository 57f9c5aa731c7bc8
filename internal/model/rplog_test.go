package model

import (
	"testing"
	"time"
)

func TestRPLogCompletionAndToggle(t *testing.T) {
	entry := RPLogEntry{ID: "rp-1", Date: time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC), Pharmacist: "RP"}
	if err := entry.Validate(); err != nil {
		t.Fatalf("expected valid entry, got: %v", err)
	}
	if checked, total := entry.Completion(RPDailyItems); checked != 0 || total != len(RPDailyItems) {
		t.Fatalf("unexpected empty completion: %d/%d", checked, total)
	}
	if !entry.Toggle("RP notice displayed") {
		t.Fatal("expected toggle to check item")
	}
	entry.Toggle("Controlled drugs checked")
	if checked, _ := entry.Completion(RPDailyItems); checked != 2 {
		t.Fatalf("expected 2 checked, got %d", checked)
	}
	if entry.Toggle("RP notice displayed") {
		t.Fatal("expected second toggle to uncheck item")
	}
}

func TestMatchRPItem(t *testing.T) {
	got, ok := MatchRPItem("controlled")
	if !ok || got != "Controlled drugs checked" {
		t.Fatalf("unexpected match: %q ok=%v", got, ok)
	}
	if _, ok := MatchRPItem("pharmacy"); ok {
		t.Fatal("expected ambiguous prefix to fail")
	}
	if _, ok := MatchRPItem("nothing like this"); ok {
		t.Fatal("expected no match")
	}
	if len(RPItems()) != 13 {
		t.Fatalf("unexpected item count: %d", len(RPItems()))
	}
}
