package output

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/leapstack-labs/capilint/pkg/core"
)

// Styles holds the lipgloss styles used by the CLI.
type Styles struct {
	Header1  lipgloss.Style
	Header2  lipgloss.Style
	Bold     lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Info     lipgloss.Style
	FilePath lipgloss.Style
	ID       lipgloss.Style
}

// NewStyles builds styles bound to a lipgloss renderer, so that color output
// follows the renderer's profile.
func NewStyles(lr *lipgloss.Renderer) *Styles {
	return &Styles{
		Header1:  lr.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Header2:  lr.NewStyle().Bold(true).Underline(true),
		Bold:     lr.NewStyle().Bold(true),
		Muted:    lr.NewStyle().Foreground(lipgloss.Color("8")),
		Success:  lr.NewStyle().Foreground(lipgloss.Color("10")),
		Error:    lr.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning:  lr.NewStyle().Foreground(lipgloss.Color("11")),
		Info:     lr.NewStyle().Foreground(lipgloss.Color("14")),
		FilePath: lr.NewStyle().Foreground(lipgloss.Color("13")).Underline(true),
		ID:       lr.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

// Severity returns the style for a diagnostic severity.
func (s *Styles) Severity(sev core.Severity) lipgloss.Style {
	switch sev {
	case core.SeverityError:
		return s.Error
	case core.SeverityWarning:
		return s.Warning
	case core.SeverityInfo:
		return s.Info
	default:
		return s.Muted
	}
}
