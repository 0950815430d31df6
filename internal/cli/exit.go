package cli

import (
	"errors"
	"fmt"
)

// Exit codes form the tool's scripting contract and must stay stable:
// 0 success or help, 1 usage or collaborator failure, 2 missing template,
// 3 no clusters matched, 99 operator declined.
const (
	exitFailure         = 1
	exitMissingTemplate = 2
	exitNoMatches       = 3
	exitDeclined        = 99
)

// ExitError carries a process exit code alongside the error message.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func exitErrf(code int, format string, args ...any) *ExitError {
	return &ExitError{Code: code, Err: fmt.Errorf(format, args...)}
}

// ExitCode maps an Execute error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return exitFailure
}
