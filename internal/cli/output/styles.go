package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles groups the lipgloss styles used by commands.
type Styles struct {
	Header1       lipgloss.Style
	Header2       lipgloss.Style
	Bold          lipgloss.Style
	Muted         lipgloss.Style
	Info          lipgloss.Style
	Warning       lipgloss.Style
	Error         lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusFailed  lipgloss.Style
}

// NewStyles returns colored styles bound to w's color profile.
func NewStyles(w io.Writer) *Styles {
	re := lipgloss.NewRenderer(w)
	return &Styles{
		Header1:       re.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Header2:       re.NewStyle().Bold(true),
		Bold:          re.NewStyle().Bold(true),
		Muted:         re.NewStyle().Foreground(lipgloss.Color("8")),
		Info:          re.NewStyle().Foreground(lipgloss.Color("6")),
		Warning:       re.NewStyle().Foreground(lipgloss.Color("11")),
		Error:         re.NewStyle().Foreground(lipgloss.Color("9")),
		StatusSuccess: re.NewStyle().Foreground(lipgloss.Color("10")).SetString("✓"),
		StatusFailed:  re.NewStyle().Foreground(lipgloss.Color("9")).SetString("✗"),
	}
}

// PlainStyles returns styles that never emit escape codes.
func PlainStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Header1:       plain,
		Header2:       plain,
		Bold:          plain,
		Muted:         plain,
		Info:          plain,
		Warning:       plain,
		Error:         plain,
		StatusSuccess: plain.SetString("ok"),
		StatusFailed:  plain.SetString("error:"),
	}
}
