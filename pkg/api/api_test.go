package api

import (
	"strings"
	"testing"

	"github.com/bng0y/managed-notifications/internal/cli"
)

func TestExecute_Version(t *testing.T) {
	c := New(Config{Env: map[string]string{"HOME": t.TempDir()}})
	out, err := c.Execute("mnctl version")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(out, "mnctl") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestExecute_StripsLeadingBinaryName(t *testing.T) {
	c := New(Config{Env: map[string]string{"HOME": t.TempDir()}})
	withPrefix, err1 := c.Execute("mnctl version")
	withoutPrefix, err2 := c.Execute("version")
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errs: %v %v", err1, err2)
	}
	if withPrefix != withoutPrefix {
		t.Fatalf("expected identical output, got %q vs %q", withPrefix, withoutPrefix)
	}
}

func TestExecute_Empty(t *testing.T) {
	c := New(Config{})
	if _, err := c.Execute("   "); err == nil {
		t.Fatal("expected error for empty command")
	}
}

func TestExecute_ErrorCarriesExitCode(t *testing.T) {
	c := New(Config{Env: map[string]string{"HOME": t.TempDir()}})
	_, err := c.Execute("send")
	if err == nil {
		t.Fatal("expected error for send without --template")
	}
	if cli.ExitCode(err) != 2 {
		t.Fatalf("expected exit code 2, got %d", cli.ExitCode(err))
	}
}

func TestExecuteStream_EmitsDone(t *testing.T) {
	c := New(Config{Env: map[string]string{"HOME": t.TempDir()}})
	ch, err := c.ExecuteStream("mnctl version")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	sawOutput := false
	sawDone := false
	for chunk := range ch {
		if chunk.Done {
			sawDone = true
			if chunk.Err != nil {
				t.Fatalf("unexpected command err: %v", chunk.Err)
			}
			continue
		}
		if strings.Contains(chunk.Data, "mnctl") {
			sawOutput = true
		}
	}
	if !sawOutput || !sawDone {
		t.Fatalf("expected output and done sentinel, got output=%v done=%v", sawOutput, sawDone)
	}
}
