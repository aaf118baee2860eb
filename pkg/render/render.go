// Package render prints the plugin inventory and vulnerability summaries.
package render

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/obsidian-security/vaultscan/pkg/types"
	"github.com/sirupsen/logrus"
)

const (
	headerComponent = "Component"
	headerVersion   = "Version"
	headerSeverity  = "Severity"
	headerInfo      = "Info (CVEs)"
	headerName      = "Name"

	severityColumn = 2
)

// Row is one (component, version, severity) line of a plugin's table.
type Row struct {
	Component string
	Version   string
	Severity  string
	Info      string // Only filled when CVE details were requested
}

// Renderer writes tables to Out and notices to Log.
type Renderer struct {
	Out     io.Writer
	Log     logrus.FieldLogger
	WithCVE bool

	// SortBySeverity orders each plugin's rows from critical to low.
	SortBySeverity bool
}

// New creates a renderer printing tables to stdout.
func New(withCVE bool) *Renderer {
	return &Renderer{
		Out:     os.Stdout,
		Log:     logrus.StandardLogger(),
		WithCVE: withCVE,
	}
}

// Plugins prints the discovered plugins as a Name/Version table.
func (r *Renderer) Plugins(plugins []types.PluginManifest) {
	r.Log.Info("Found plugins:")

	t := Table{Headers: []string{headerName, headerVersion}}
	for _, p := range plugins {
		t.Rows = append(t.Rows, []string{p.Name, p.Version})
	}
	fmt.Fprint(r.Out, t.Render())
}

// Results prints one table per plugin with vulnerabilities, or a single
// success notice when there are none. It returns the number of rows printed.
func (r *Renderer) Results(results []types.PluginScanResult) int {
	var affected []types.PluginScanResult
	for _, res := range results {
		if res.VulnerabilityCount() > 0 {
			affected = append(affected, res)
		}
	}

	if len(affected) == 0 {
		r.Log.Info("Scan complete. No vulnerabilities found.")
		return 0
	}

	r.Log.Warn("Scan complete. Vulnerabilities found in the following plugins:")

	total := 0
	for _, res := range affected {
		rows := Rows(res.Results, r.WithCVE)
		if r.SortBySeverity {
			SortBySeverity(rows)
		}
		total += len(rows)

		fmt.Fprintf(r.Out, "\nPlugin: %s (v%s)\n", res.Plugin.Name, res.Plugin.Version)
		fmt.Fprint(r.Out, r.vulnerabilityTable(rows).Render())
	}

	return total
}

func (r *Renderer) vulnerabilityTable(rows []Row) Table {
	t := Table{
		Headers: []string{headerComponent, headerVersion, headerSeverity},
		Styles: func(row, col int) (lipgloss.Style, bool) {
			if col != severityColumn {
				return lipgloss.Style{}, false
			}
			return severityStyle(rows[row].Severity)
		},
	}
	if r.WithCVE {
		t.Headers = append(t.Headers, headerInfo)
	}

	for _, row := range rows {
		cells := []string{row.Component, row.Version, row.Severity}
		if r.WithCVE {
			cells = append(cells, row.Info)
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

// Rows expands scanner results into one row per reported vulnerability.
func Rows(results []types.RetireFileResult, withCVE bool) []Row {
	var rows []Row
	for _, res := range results {
		for _, vuln := range res.Vulnerabilities {
			row := Row{
				Component: res.Component,
				Version:   res.Version,
				Severity:  vuln.Severity,
			}
			if withCVE {
				row.Info = strings.Join(vuln.Info, ", ")
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// SortBySeverity orders rows from most to least severe, keeping the
// original order between rows of equal severity.
func SortBySeverity(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return types.ParseSeverity(rows[i].Severity) > types.ParseSeverity(rows[j].Severity)
	})
}
