// Package servicelog adapts the notification CLI into a narrow sender
// interface. Template schema and rendering are owned by the notification
// service; this package only builds the post invocation.
package servicelog

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bng0y/managed-notifications/internal/runner"
)

// Param is one key=value template parameter.
type Param struct {
	Key   string
	Value string
}

func (p Param) String() string {
	return p.Key + "=" + p.Value
}

// ParseParam splits a key=value flag argument. The value may contain '='.
func ParseParam(s string) (Param, error) {
	key, value, found := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !found || key == "" {
		return Param{}, fmt.Errorf("invalid parameter %q, expected KEY=VALUE", s)
	}
	return Param{Key: key, Value: value}, nil
}

// uuidParamKey carries the per-cluster target identifier. It is appended by
// this package, never by callers.
const uuidParamKey = "CLUSTER_UUID"

// Sender posts a templated notification. Preview renders without delivering;
// Send delivers to the cluster identified by externalID.
type Sender interface {
	Preview(ctx context.Context, template string, params []Param) error
	Send(ctx context.Context, template string, params []Param, externalID string) error
}

type runFunc func(ctx context.Context, bin string, args []string, opts runner.ExecOptions) error

// CLISender implements Sender by invoking the osdctl binary. Tool output is
// streamed straight through to the configured writers so the operator sees
// the rendered notification exactly as the tool prints it.
type CLISender struct {
	Binary          string
	PlaceholderUUID string
	Stdin           io.Reader
	Stdout          io.Writer
	Stderr          io.Writer

	run runFunc
}

func NewCLISender(binary, placeholderUUID string, stdin io.Reader, stdout, stderr io.Writer) *CLISender {
	return &CLISender{
		Binary:          binary,
		PlaceholderUUID: placeholderUUID,
		Stdin:           stdin,
		Stdout:          stdout,
		Stderr:          stderr,
		run:             runner.RunContext,
	}
}

func (s *CLISender) Preview(ctx context.Context, template string, params []Param) error {
	args := s.postArgs(template, params, s.PlaceholderUUID)
	args = append(args, "--dry-run")
	return s.exec(ctx, args)
}

func (s *CLISender) Send(ctx context.Context, template string, params []Param, externalID string) error {
	return s.exec(ctx, s.postArgs(template, params, externalID))
}

func (s *CLISender) postArgs(template string, params []Param, uuid string) []string {
	args := []string{"servicelog", "post", "--template", template}
	for _, p := range params {
		args = append(args, "-p", p.String())
	}
	args = append(args, "-p", uuidParamKey+"="+uuid)
	return args
}

func (s *CLISender) exec(ctx context.Context, args []string) error {
	run := s.run
	if run == nil {
		run = runner.RunContext
	}
	return run(ctx, s.Binary, args, runner.ExecOptions{
		Stdin:  s.Stdin,
		Stdout: s.Stdout,
		Stderr: s.Stderr,
	})
}
