package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/bng0y/managed-notifications/internal/cli"
)

func main() {
	args := os.Args[1:]
	// The historical surface was flag-only: `mnctl -t tpl -f expr`. Route
	// that straight to send so scripts keep working.
	if shouldDefaultToSend(args) {
		args = append([]string{"send"}, args...)
	}

	root := cli.NewRootCommand()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mnctl:", err)
		os.Exit(cli.ExitCode(err))
	}
}

// shouldDefaultToSend reports whether the invocation starts with a flag that
// is not one of the root command's own.
func shouldDefaultToSend(args []string) bool {
	for _, a := range args {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		switch a {
		case "-h", "--help", "--version":
			return false
		}
		return strings.HasPrefix(a, "-")
	}
	return false
}
