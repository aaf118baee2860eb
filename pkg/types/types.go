package types

import "strings"

// PluginManifest identifies one installed plugin discovered in a vault.
type PluginManifest struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version string `json:"version"`
	Path    string `json:"-"` // Absolute path of the plugin's installed directory
}

// Vulnerability is a single weakness reported by retire.js for a component.
type Vulnerability struct {
	Severity string   `json:"severity"`
	Info     []string `json:"info"`
}

// Vulnerabilities is the list retire.js reports for one component.
type Vulnerabilities []Vulnerability

// RetireFileResult is one detected component in a scanned file.
type RetireFileResult struct {
	Component       string          `json:"component"`
	Version         string          `json:"version"`
	Vulnerabilities Vulnerabilities `json:"vulnerabilities,omitempty"`
}

// PluginScanResult joins a plugin with everything retire.js reported for it.
type PluginScanResult struct {
	Plugin  PluginManifest
	Results []RetireFileResult
}

// VulnerabilityCount returns the number of vulnerabilities across all results.
func (r PluginScanResult) VulnerabilityCount() int {
	n := 0
	for _, res := range r.Results {
		n += len(res.Vulnerabilities)
	}
	return n
}

// Severity ranks retire.js severities. Unknown values rank below SeverityLow.
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

var severityNames = map[string]Severity{
	"low":      SeverityLow,
	"medium":   SeverityMedium,
	"high":     SeverityHigh,
	"critical": SeverityCritical,
}

// ParseSeverity maps a retire.js severity string to its rank.
func ParseSeverity(s string) Severity {
	return severityNames[strings.ToLower(strings.TrimSpace(s))]
}
