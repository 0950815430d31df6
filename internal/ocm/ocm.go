// Package ocm adapts the cluster inventory CLI into typed lookups. The
// inventory owns filter semantics and authentication; this package only
// shells out and parses what comes back.
package ocm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bng0y/managed-notifications/internal/runner"
)

// Cluster is one row of the inventory listing. Transient per run; nothing
// here persists.
type Cluster struct {
	ID   string
	Name string
}

// ClusterDirectory is the narrow view of the inventory the send pipeline
// depends on. Tests substitute fakes.
type ClusterDirectory interface {
	// List returns the clusters matching all filters. Each filter is passed
	// to the inventory as an independent search parameter; the inventory
	// combines them with logical AND.
	List(ctx context.Context, filters []string) ([]Cluster, error)
	// ResolveExternalID looks up the stable external identifier for an
	// internal cluster ID. ok=false means the cluster has none.
	ResolveExternalID(ctx context.Context, internalID string) (externalID string, ok bool, err error)
}

type captureFunc func(ctx context.Context, bin string, args []string) (string, error)

// CLIDirectory implements ClusterDirectory by invoking the ocm binary.
type CLIDirectory struct {
	Binary  string
	Timeout time.Duration

	capture captureFunc
}

func NewCLIDirectory(binary string, timeout time.Duration) *CLIDirectory {
	return &CLIDirectory{
		Binary:  binary,
		Timeout: timeout,
		capture: runner.CaptureContext,
	}
}

func (d *CLIDirectory) List(ctx context.Context, filters []string) ([]Cluster, error) {
	args := []string{"list", "clusters"}
	for _, f := range filters {
		args = append(args, "--parameter", "search="+f)
	}
	out, err := d.run(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("listing clusters: %w: %s", err, strings.TrimSpace(out))
	}
	return parseClusterTable(out), nil
}

func (d *CLIDirectory) ResolveExternalID(ctx context.Context, internalID string) (string, bool, error) {
	out, err := d.run(ctx, []string{"get", "cluster", internalID})
	if err != nil {
		return "", false, fmt.Errorf("getting cluster %s: %w", internalID, err)
	}
	var record struct {
		ExternalID string `json:"external_id"`
	}
	if err := json.Unmarshal([]byte(out), &record); err != nil {
		return "", false, fmt.Errorf("parsing cluster %s record: %w", internalID, err)
	}
	ext := strings.TrimSpace(record.ExternalID)
	// The inventory reports a missing external ID as the literal "null".
	if ext == "" || ext == "null" {
		return "", false, nil
	}
	return ext, true, nil
}

func (d *CLIDirectory) run(ctx context.Context, args []string) (string, error) {
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}
	fn := d.capture
	if fn == nil {
		fn = runner.CaptureContext
	}
	return fn(ctx, d.Binary, args)
}
