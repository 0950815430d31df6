package cli

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitCode_Nil(t *testing.T) {
	if got := ExitCode(nil); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestExitCode_PlainError(t *testing.T) {
	if got := ExitCode(errors.New("boom")); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}

func TestExitCode_ExitError(t *testing.T) {
	cases := []struct {
		code int
	}{{1}, {2}, {3}, {99}}
	for _, tc := range cases {
		err := exitErrf(tc.code, "failure %d", tc.code)
		if got := ExitCode(err); got != tc.code {
			t.Fatalf("expected %d, got %d", tc.code, got)
		}
	}
}

func TestExitCode_WrappedExitError(t *testing.T) {
	err := fmt.Errorf("context: %w", exitErrf(exitNoMatches, "no clusters matched"))
	if got := ExitCode(err); got != exitNoMatches {
		t.Fatalf("expected %d, got %d", exitNoMatches, got)
	}
}

func TestExitError_Message(t *testing.T) {
	err := exitErrf(exitDeclined, "aborted by operator")
	if err.Error() != "aborted by operator" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
