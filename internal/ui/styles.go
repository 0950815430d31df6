// Package ui renders the operator-facing output: the matched-cluster table,
// the preview banner, and per-cluster status lines.
package ui

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/bng0y/managed-notifications/internal/ocm"
)

// Renderer formats output, optionally with color. A single Renderer is built
// per run from the config and terminal capability.
type Renderer struct {
	colors bool

	header  lipgloss.Style
	warn    lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	dim     lipgloss.Style
}

func NewRenderer(colors bool) *Renderer {
	return &Renderer{
		colors:  colors,
		header:  lipgloss.NewStyle().Bold(true),
		warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		failure: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// ClusterTable renders the matched clusters as an aligned two-column table.
// Cells stay unstyled: escape sequences would throw off tabwriter's column
// widths.
func (r *Renderer) ClusterTable(clusters []ocm.Cluster) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME")
	for _, c := range clusters {
		fmt.Fprintf(w, "%s\t%s\n", c.ID, c.Name)
	}
	w.Flush()
	return b.String()
}

// Banner renders a bold section heading, e.g. before the rendered preview.
func (r *Renderer) Banner(text string) string {
	return r.style(r.header, text)
}

// Warning renders a per-cluster skip warning.
func (r *Renderer) Warning(text string) string {
	return r.style(r.warn, "⚠ "+text)
}

// Success renders a per-cluster sent confirmation.
func (r *Renderer) Success(text string) string {
	return r.style(r.success, "✓ "+text)
}

// Failure renders a fatal error line.
func (r *Renderer) Failure(text string) string {
	return r.style(r.failure, "✗ "+text)
}

// Dim renders secondary detail, e.g. the literal filters of an empty match.
func (r *Renderer) Dim(text string) string {
	return r.style(r.dim, text)
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.colors {
		return text
	}
	return s.Render(text)
}
