package main

import (
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"rxtrack": main,
	})
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
		Setup: func(env *testscript.Env) error {
			env.Setenv("RXTRACK_DB", env.WorkDir+"/rxtrack.db")
			env.Setenv("RXTRACK_DB_DRIVER", "sqlite")
			env.Setenv("RXTRACK_TZ", "UTC")
			env.Setenv("RXTRACK_NOW", "2026-02-09T09:30:00Z")
			env.Setenv("RXTRACK_LOG_LEVEL", "error")
			return nil
		},
	})
}

func TestRootCommandName(t *testing.T) {
	root := newRootCmd()
	if root.Use != "rxtrack" {
		t.Fatalf("expected root command name rxtrack, got %q", root.Use)
	}
	want := []string{"alerts", "assign", "check", "cycle", "docs", "done", "incident", "incidents", "log", "migrate", "mytasks", "safeguarding", "seed", "status", "tasks", "temp", "trainlog", "training"}
	for _, name := range want {
		found := false
		for _, c := range root.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("missing subcommand %q", name)
		}
	}
}
