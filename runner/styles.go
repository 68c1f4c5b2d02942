package runner

import "github.com/charmbracelet/lipgloss"

// Semantic colors for the checker's summary output, following the same
// nextest/vitest-style palette the teacher used for its own pass/fail
// reporting, remapped from test verdicts to proof-check verdicts.
var (
	colorOK     = lipgloss.Color("#10b981") // green-500: verification succeeded
	colorFail   = lipgloss.Color("#ef4444") // red-500: parse/check/line/fatal error
	colorDim    = lipgloss.Color("#6b7280") // gray-500
	colorMuted  = lipgloss.Color("#9ca3af") // gray-400
	colorAccent = lipgloss.Color("#3b82f6") // blue-500
)

// Styles holds the lipgloss styles used for the verdict banner that
// Runner.Run prints to stdout.
type Styles struct {
	OK    lipgloss.Style
	Fail  lipgloss.Style
	Dim   lipgloss.Style
	Muted lipgloss.Style
	Bold  lipgloss.Style
	Label lipgloss.Style
	Value lipgloss.Style

	SymbolOK   string
	SymbolFail string
}

// DefaultStyles returns the default summary styles.
func DefaultStyles() *Styles {
	return &Styles{
		OK:    lipgloss.NewStyle().Foreground(colorOK).Bold(true),
		Fail:  lipgloss.NewStyle().Foreground(colorFail).Bold(true),
		Dim:   lipgloss.NewStyle().Foreground(colorDim),
		Muted: lipgloss.NewStyle().Foreground(colorMuted),
		Bold:  lipgloss.NewStyle().Bold(true),
		Label: lipgloss.NewStyle().Foreground(colorDim),
		Value: lipgloss.NewStyle().Bold(true).Foreground(colorAccent),

		SymbolOK:   "✓",
		SymbolFail: "✗",
	}
}
