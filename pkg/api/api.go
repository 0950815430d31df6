// Package api embeds mnctl in other Go programs: commands execute in-process
// with captured output instead of spawning the binary.
package api

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/bng0y/managed-notifications/internal/cli"
)

type Config struct {
	// Stdin feeds the confirmation prompt; nil means no input (use --yes).
	Stdin io.Reader
	// Env is applied for the duration of each call, e.g. HOME or
	// MNCTL_NO_COLOR.
	Env map[string]string
}

type StreamChunk struct {
	Stream string
	Data   string
	Done   bool
	Err    error
}

type Client struct {
	cfg Config
	mu  sync.Mutex
}

func New(cfg Config) *Client {
	return &Client{cfg: cfg}
}

// Execute runs one mnctl command line and returns its combined output. The
// error, if any, carries the exit code via cli.ExitCode.
func (c *Client) Execute(command string) (string, error) {
	args := parseCommand(command)
	if len(args) == 0 {
		return "", fmt.Errorf("empty command")
	}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := c.executeArgs(args, stdout, stderr)
	out := strings.TrimSpace(stdout.String())
	errOut := strings.TrimSpace(stderr.String())
	if err != nil {
		if errOut != "" {
			return strings.TrimSpace(out + "\n" + errOut), err
		}
		return out, err
	}
	if errOut != "" {
		if out != "" {
			return out + "\n" + errOut, nil
		}
		return errOut, nil
	}
	return out, nil
}

// ExecuteStream runs one mnctl command line, emitting output lines as they
// are produced. The final chunk has Done=true and the command error.
func (c *Client) ExecuteStream(command string) (<-chan StreamChunk, error) {
	args := parseCommand(command)
	if len(args) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	outR, outW := io.Pipe()
	errR, errW := io.Pipe()
	ch := make(chan StreamChunk, 64)

	// wg tracks the two streamPipe goroutines so the Done sentinel is only
	// sent after both pipes have drained; closing ch earlier would race with
	// their sends.
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		streamPipe("stdout", outR, ch)
	}()
	go func() {
		defer wg.Done()
		streamPipe("stderr", errR, ch)
	}()

	go func() {
		err := c.executeArgs(args, outW, errW)
		_ = outW.Close()
		_ = errW.Close()
		wg.Wait()
		ch <- StreamChunk{Done: true, Err: err}
		close(ch)
	}()

	return ch, nil
}

func (c *Client) executeArgs(args []string, out, errOut io.Writer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	restore := c.applyEnv()
	defer restore()

	in := c.cfg.Stdin
	if in == nil {
		in = bytes.NewReader(nil)
	}
	root := cli.NewRootCommandWithIO(in, out, errOut)
	root.SetArgs(args)
	return root.Execute()
}

func (c *Client) applyEnv() func() {
	if len(c.cfg.Env) == 0 {
		return func() {}
	}
	prev := map[string]*string{}
	for k, v := range c.cfg.Env {
		if old, ok := os.LookupEnv(k); ok {
			ov := old
			prev[k] = &ov
		} else {
			prev[k] = nil
		}
		_ = os.Setenv(k, v)
	}
	return func() {
		for k, v := range prev {
			if v == nil {
				_ = os.Unsetenv(k)
			} else {
				_ = os.Setenv(k, *v)
			}
		}
	}
}

func parseCommand(command string) []string {
	fields := strings.Fields(strings.TrimSpace(command))
	if len(fields) == 0 {
		return nil
	}
	if fields[0] == "mnctl" {
		return fields[1:]
	}
	return fields
}

func streamPipe(stream string, r io.Reader, ch chan<- StreamChunk) {
	s := bufio.NewScanner(r)
	for s.Scan() {
		ch <- StreamChunk{Stream: stream, Data: s.Text()}
	}
}
