package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/obsidian-security/vaultscan/pkg/types"
)

const columnGap = 2

const (
	hexHeader   = "#AAAAAA"
	hexCritical = "#FF3B30"
	hexHigh     = "#FF9500"
	hexMedium   = "#FFCC00"
	hexLow      = "#34C759"
)

var (
	styleHeader    = lipgloss.NewStyle().Foreground(lipgloss.Color(hexHeader)).Bold(true)
	styleCell      = lipgloss.NewStyle()
	severityStyles = map[types.Severity]lipgloss.Style{
		types.SeverityCritical: lipgloss.NewStyle().Foreground(lipgloss.Color(hexCritical)).Bold(true),
		types.SeverityHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color(hexHigh)),
		types.SeverityMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color(hexMedium)),
		types.SeverityLow:      lipgloss.NewStyle().Foreground(lipgloss.Color(hexLow)),
	}
)

// Table is a plain column-aligned table.
type Table struct {
	Headers []string
	Rows    [][]string

	// Styles optionally overrides the style of a single cell.
	Styles func(row, col int) (lipgloss.Style, bool)
}

// Render lays the table out with every column as wide as its widest cell.
func (t Table) Render() string {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i := range widths {
			if i < len(row) && lipgloss.Width(row[i]) > widths[i] {
				widths[i] = lipgloss.Width(row[i])
			}
		}
	}

	var sb strings.Builder

	header := make([]string, len(t.Headers))
	rule := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = renderCell(styleHeader, h, widths[i], i == len(widths)-1)
		rule[i] = renderCell(styleHeader, strings.Repeat("─", widths[i]), widths[i], i == len(widths)-1)
	}
	sb.WriteString(strings.Join(header, "") + "\n")
	sb.WriteString(strings.Join(rule, "") + "\n")

	for r, row := range t.Rows {
		cells := make([]string, len(widths))
		for c := range widths {
			value := ""
			if c < len(row) {
				value = row[c]
			}
			style := styleCell
			if t.Styles != nil {
				if s, ok := t.Styles(r, c); ok {
					style = s
				}
			}
			cells[c] = renderCell(style, value, widths[c], c == len(widths)-1)
		}
		sb.WriteString(strings.Join(cells, "") + "\n")
	}

	return sb.String()
}

func renderCell(style lipgloss.Style, value string, width int, last bool) string {
	out := style.Render(value)
	if last {
		return out
	}
	return out + strings.Repeat(" ", width-lipgloss.Width(value)+columnGap)
}

func severityStyle(severity string) (lipgloss.Style, bool) {
	s, ok := severityStyles[types.ParseSeverity(severity)]
	return s, ok
}
