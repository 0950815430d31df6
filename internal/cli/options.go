package cli

import (
	"fmt"
	"strings"

	"github.com/bng0y/managed-notifications/internal/config"
	"github.com/bng0y/managed-notifications/internal/servicelog"
)

// sendOptions is the immutable result of parsing the send flags. Nothing
// mutates it after parseSendArgs returns.
type sendOptions struct {
	Filters  []string
	Template string
	Params   []servicelog.Param
	Yes      bool
	DryRun   bool
	ShowHelp bool
	// Warnings collects non-fatal parse notes, e.g. a dropped CLUSTER_UUID
	// parameter.
	Warnings []string
}

// parseSendArgs hand-parses the send flag list. Flag parsing is manual
// (cobra's is disabled) so repeated flags keep their order and the exit-code
// contract stays exact: any unrecognized flag or argument is a usage error.
//
// Recognized: -f/--filter/--filters EXPR (repeatable), -t/--template REF,
// -p/--param KEY=VALUE (repeatable), --yes, --dry-run, -h/--help. Both
// "--flag value" and "--flag=value" forms are accepted.
func parseSendArgs(args []string) (*sendOptions, error) {
	opts := &sendOptions{}
	for i := 0; i < len(args); i++ {
		arg := strings.TrimSpace(args[i])
		switch {
		case arg == "-h" || arg == "--help":
			opts.ShowHelp = true
			return opts, nil
		case arg == "-f" || arg == "--filter" || arg == "--filters":
			v, next, err := flagValue(arg, args, i)
			if err != nil {
				return nil, err
			}
			i = next
			opts.Filters = append(opts.Filters, v)
		case strings.HasPrefix(arg, "--filter=") || strings.HasPrefix(arg, "--filters=") || strings.HasPrefix(arg, "-f="):
			opts.Filters = append(opts.Filters, valueAfterEquals(arg))
		case arg == "-t" || arg == "--template":
			v, next, err := flagValue(arg, args, i)
			if err != nil {
				return nil, err
			}
			i = next
			opts.Template = v
		case strings.HasPrefix(arg, "--template=") || strings.HasPrefix(arg, "-t="):
			opts.Template = valueAfterEquals(arg)
		case arg == "-p" || arg == "--param":
			v, next, err := flagValue(arg, args, i)
			if err != nil {
				return nil, err
			}
			i = next
			if err := opts.addParam(v); err != nil {
				return nil, err
			}
		case strings.HasPrefix(arg, "--param=") || strings.HasPrefix(arg, "-p="):
			if err := opts.addParam(valueAfterEquals(arg)); err != nil {
				return nil, err
			}
		case arg == "--yes" || arg == "-y":
			opts.Yes = true
		case arg == "--dry-run":
			opts.DryRun = true
		case strings.HasPrefix(arg, "-"):
			return nil, fmt.Errorf("unrecognized flag %q", arg)
		default:
			return nil, fmt.Errorf("unexpected argument %q", arg)
		}
	}
	return opts, nil
}

func (o *sendOptions) addParam(raw string) error {
	p, err := servicelog.ParseParam(raw)
	if err != nil {
		return err
	}
	if p.Key == config.ReservedParamKey {
		o.Warnings = append(o.Warnings,
			fmt.Sprintf("ignoring %s parameter: it is injected automatically per cluster", config.ReservedParamKey))
		return nil
	}
	o.Params = append(o.Params, p)
	return nil
}

func flagValue(flag string, args []string, i int) (string, int, error) {
	if i+1 >= len(args) {
		return "", i, fmt.Errorf("%s requires a value", flag)
	}
	return args[i+1], i + 1, nil
}

func valueAfterEquals(arg string) string {
	_, v, _ := strings.Cut(arg, "=")
	return v
}
