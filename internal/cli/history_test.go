package cli

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bng0y/managed-notifications/internal/config"
	"github.com/bng0y/managed-notifications/internal/state"
)

func newHistoryApp(store *state.Store) (*app, *bytes.Buffer) {
	out := &bytes.Buffer{}
	cfg := config.Default()
	cfg.Output.Colors = false
	a := &app{
		cfg:       cfg,
		stdin:     strings.NewReader(""),
		stdout:    out,
		stderr:    &bytes.Buffer{},
		loadState: func() (*state.Store, error) { return store, nil },
		saveState: func(*state.Store) error { return nil },
	}
	return a, out
}

func TestHistory_Empty(t *testing.T) {
	a, out := newHistoryApp(&state.Store{})
	cmd := newHistoryCmd(a)
	cmd.SetOut(out)
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(out.String(), "no send history") {
		t.Fatalf("expected empty-history message, got %q", out.String())
	}
}

func TestHistory_ListsBatches(t *testing.T) {
	store := &state.Store{}
	store.RecordBatch(state.Batch{
		Time:     time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC),
		Filters:  []string{"state = 'ready'"},
		Template: "tpl.json",
		Sent:     2,
		Skipped:  1,
	})
	a, out := newHistoryApp(store)
	cmd := newHistoryCmd(a)
	cmd.SetOut(out)
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got := out.String()
	for _, want := range []string{"2026-08-24 12:00", "tpl.json", "state = 'ready'"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output:\n%s", want, got)
		}
	}
}

func TestHistoryClear(t *testing.T) {
	store := &state.Store{}
	store.RecordBatch(state.Batch{Template: "tpl.json"})
	saved := false
	a, out := newHistoryApp(store)
	a.saveState = func(s *state.Store) error {
		saved = true
		if len(s.History) != 0 {
			t.Fatal("expected history cleared before save")
		}
		return nil
	}
	cmd := newHistoryCmd(a)
	cmd.SetOut(out)
	cmd.SetArgs([]string{"clear"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !saved {
		t.Fatal("expected state to be saved")
	}
}

func TestHistoryClear_SaveFailurePropagates(t *testing.T) {
	a, out := newHistoryApp(&state.Store{})
	a.saveState = func(*state.Store) error { return fmt.Errorf("disk full") }
	cmd := newHistoryCmd(a)
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"clear"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error when save fails")
	}
}
