package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bng0y/managed-notifications/internal/config"
	"github.com/bng0y/managed-notifications/internal/ocm"
	"github.com/bng0y/managed-notifications/internal/servicelog"
	"github.com/bng0y/managed-notifications/internal/state"
	"github.com/bng0y/managed-notifications/internal/terminal"
	"github.com/bng0y/managed-notifications/internal/ui"
	"github.com/bng0y/managed-notifications/internal/version"
)

type app struct {
	cfg    *config.Config
	cfgErr error

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// Collaborator seams; nil means "build from config". Tests install fakes.
	directory ocm.ClusterDirectory
	sender    servicelog.Sender
	loadState func() (*state.Store, error)
	saveState func(*state.Store) error
	render    *ui.Renderer
}

func NewRootCommand() *cobra.Command {
	return newRootCommand(os.Stdin, os.Stdout, os.Stderr)
}

func NewRootCommandWithIO(in io.Reader, out, errOut io.Writer) *cobra.Command {
	return newRootCommand(in, out, errOut)
}

func newRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	cfg, cfgErr := config.Load()
	if cfg == nil {
		cfg = config.Default()
	}
	a := &app{
		cfg:       cfg,
		cfgErr:    cfgErr,
		stdin:     in,
		stdout:    out,
		stderr:    errOut,
		loadState: state.Load,
		saveState: state.Save,
	}

	cmd := &cobra.Command{
		Use:           "mnctl",
		Short:         "Bulk-send operator service logs to managed clusters",
		Long:          "mnctl queries the cluster inventory, filters clusters, previews a templated service log, and posts it to every matching cluster after confirmation.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	cmd.AddCommand(
		newSendCmd(a),
		newConfigCmd(a),
		newHistoryCmd(a),
		newVersionCmd(),
	)

	cmd.SetVersionTemplate(fmt.Sprintf("mnctl {{.Version}} (commit %s, built %s)\n", version.Commit, version.BuildDate))

	cmd.PersistentPreRunE = func(*cobra.Command, []string) error {
		if a.cfgErr != nil {
			return fmt.Errorf("invalid %s: %w", configPathSafe(), a.cfgErr)
		}
		return nil
	}

	cmd.SetErrPrefix("mnctl: ")
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	return cmd
}

func (a *app) renderer() *ui.Renderer {
	if a.render == nil {
		a.render = ui.NewRenderer(a.cfg.Output.Colors && !terminal.ColorDisabled())
	}
	return a.render
}

func (a *app) clusterDirectory() ocm.ClusterDirectory {
	if a.directory == nil {
		a.directory = ocm.NewCLIDirectory(a.cfg.OCM.Binary, a.cfg.CaptureTimeoutDuration())
	}
	return a.directory
}

func (a *app) notificationSender() servicelog.Sender {
	if a.sender == nil {
		a.sender = servicelog.NewCLISender(
			a.cfg.Osdctl.Binary,
			a.cfg.ServiceLog.PlaceholderUUID,
			a.stdin, a.stdout, a.stderr,
		)
	}
	return a.sender
}

func configPathSafe() string {
	p, err := config.FilePath()
	if err != nil {
		return "~/.mnctl/config.yaml"
	}
	return p
}
