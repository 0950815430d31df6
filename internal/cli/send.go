package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bng0y/managed-notifications/internal/servicelog"
	"github.com/bng0y/managed-notifications/internal/state"
)

func newSendCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "send -t TEMPLATE [-f FILTER]... [-p KEY=VALUE]... [flags]",
		Short: "Send a templated service log to every matching cluster",
		Long: `Send a templated service log to every cluster matching the filters.

The run is a single pass: list matching clusters, render a dry-run preview,
ask for confirmation, then post to each cluster in turn. Clusters without an
external ID are skipped with a warning; any failed post aborts the rest of
the batch.

Flags:

  -f, --filter EXPR     Inventory search expression. Repeatable; the
                        inventory combines multiple filters with AND.
                        (--filters is accepted as an alias.)
  -t, --template REF    Path or URL of the service log template. Required.
  -p, --param KEY=VALUE Template parameter. Repeatable. CLUSTER_UUID is
                        injected automatically per cluster and is ignored
                        with a warning if supplied here.
  -y, --yes             Skip the confirmation prompt (still previews).
      --dry-run         Stop after the preview; nothing is sent.

Exit codes:

  0   sent (or help / --dry-run)
  1   usage error, inventory failure, or a failed preview/post
  2   --template missing
  3   no clusters matched the filters
  99  confirmation declined or unrecognized

Examples:

  # Preview only
  mnctl send -t upgrade-notice.json -f "state is not 'ready'" --dry-run

  # Two filters (ANDed by the inventory), two template parameters
  mnctl send -t maintenance.json \
    -f "region.id = 'us-east-1'" -f "managed = 'true'" \
    -p WINDOW_START=2026-09-01T02:00Z -p DURATION=2h`,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, rawArgs []string) error {
			opts, err := parseSendArgs(rawArgs)
			if err != nil {
				fmt.Fprint(a.stderr, cmd.UsageString())
				return &ExitError{Code: exitFailure, Err: err}
			}
			if opts.ShowHelp {
				return cmd.Help()
			}
			for _, w := range opts.Warnings {
				fmt.Fprintln(a.stdout, a.renderer().Warning(w))
			}
			if strings.TrimSpace(opts.Template) == "" {
				fmt.Fprint(a.stderr, cmd.UsageString())
				return exitErrf(exitMissingTemplate, "--template is required")
			}
			return a.runSend(cmd, opts)
		},
	}
}

func (a *app) runSend(cmd *cobra.Command, opts *sendOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	r := a.renderer()
	params := a.mergedParams(opts)

	clusters, err := a.clusterDirectory().List(ctx, opts.Filters)
	if err != nil {
		return exitErrf(exitFailure, "listing clusters: %v", err)
	}
	if len(clusters) == 0 {
		fmt.Fprintln(a.stdout, "no clusters matched filters:", formatFilters(opts.Filters))
		return exitErrf(exitNoMatches, "no clusters matched")
	}

	fmt.Fprintf(a.stdout, "%d matching cluster(s):\n", len(clusters))
	fmt.Fprint(a.stdout, r.ClusterTable(clusters))
	fmt.Fprintln(a.stdout)

	fmt.Fprintln(a.stdout, r.Banner("Preview (dry-run):"))
	if err := a.notificationSender().Preview(ctx, opts.Template, params); err != nil {
		return exitErrf(exitFailure, "preview failed, not sending anything: %v", err)
	}
	fmt.Fprintln(a.stdout)

	if opts.DryRun {
		fmt.Fprintln(a.stdout, "--dry-run set, nothing sent.")
		return nil
	}

	if !opts.Yes {
		if err := a.confirmSend(len(clusters)); err != nil {
			return err
		}
	}

	sent, skipped := 0, 0
	for _, c := range clusters {
		externalID, ok, err := a.clusterDirectory().ResolveExternalID(ctx, c.ID)
		if err != nil || !ok {
			// Lookup failures and null external IDs are the one tolerated
			// per-cluster failure: warn and move on.
			msg := fmt.Sprintf("skipping cluster %s (%s): no external ID", c.Name, c.ID)
			if err != nil {
				msg += ": " + err.Error()
			}
			fmt.Fprintln(a.stdout, r.Warning(msg))
			skipped++
			continue
		}
		if err := a.notificationSender().Send(ctx, opts.Template, params, externalID); err != nil {
			// A single failed post stops the whole batch; the remaining
			// clusters are deliberately left untouched.
			return exitErrf(exitFailure, "sending to cluster %s (%s): %v", c.Name, c.ID, err)
		}
		fmt.Fprintln(a.stdout, r.Success(fmt.Sprintf("sent to cluster %s (%s)", c.Name, c.ID)))
		sent++
	}

	fmt.Fprintf(a.stdout, "\nSent %d service log(s), skipped %d cluster(s).\n", sent, skipped)
	a.recordBatch(state.Batch{
		Time:     time.Now(),
		Filters:  opts.Filters,
		Template: opts.Template,
		Sent:     sent,
		Skipped:  skipped,
	})
	return nil
}

// confirmSend runs the interactive gate: one prompt, no retry loop. Anything
// but y/yes aborts.
func (a *app) confirmSend(clusterCount int) error {
	if f, ok := a.stdin.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return exitErrf(exitDeclined, "stdin is not a terminal; use --yes to send without confirmation")
	}
	fmt.Fprintf(a.stderr, "Send this service log to %d cluster(s)? [y/N]: ", clusterCount)
	switch readAnswer(a.stdin) {
	case answerYes:
		return nil
	case answerNo:
		return exitErrf(exitDeclined, "aborted by operator")
	default:
		fmt.Fprintln(a.stderr, "please answer 'y', 'yes', 'n' or 'no'")
		return exitErrf(exitDeclined, "unrecognized confirmation input")
	}
}

// mergedParams places operator-supplied params first, then config defaults
// for any keys the operator did not set. The per-cluster CLUSTER_UUID is
// appended later by the sender.
func (a *app) mergedParams(opts *sendOptions) []servicelog.Param {
	out := append([]servicelog.Param(nil), opts.Params...)
	seen := map[string]struct{}{}
	for _, p := range opts.Params {
		seen[p.Key] = struct{}{}
	}
	keys := make([]string, 0, len(a.cfg.ServiceLog.DefaultParams))
	for k := range a.cfg.ServiceLog.DefaultParams {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		out = append(out, servicelog.Param{Key: k, Value: a.cfg.ServiceLog.DefaultParams[k]})
	}
	return out
}

// recordBatch appends to the send history. Best-effort: history must never
// fail a completed send.
func (a *app) recordBatch(b state.Batch) {
	s, err := a.loadState()
	if err != nil {
		return
	}
	s.RecordBatch(b)
	_ = a.saveState(s)
}

func formatFilters(filters []string) string {
	if len(filters) == 0 {
		return "(none)"
	}
	quoted := make([]string, len(filters))
	for i, f := range filters {
		quoted[i] = fmt.Sprintf("%q", f)
	}
	return strings.Join(quoted, ", ")
}
