package style

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// --- Reusable Colors ---
var (
	colorPink  = lipgloss.Color("205")
	colorCyan  = lipgloss.Color("212")
	colorRed   = lipgloss.Color("196")
	colorGreen = lipgloss.Color("78")
)

// --- General Purpose Styles ---
var (
	ErrorStyle         = lipgloss.NewStyle().Foreground(colorRed)
	SuccessStyle       = lipgloss.NewStyle().Foreground(colorGreen)
	TitleStyle         = lipgloss.NewStyle().Bold(true).Foreground(colorPink)
	HelpStyle          = lipgloss.NewStyle().Faint(true)
	HighlightFontStyle = lipgloss.NewStyle().Foreground(colorCyan)

	// PhraseStyle makes the verification phrase unmissable; the operator
	// has to read it aloud to the other device's operator.
	PhraseStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1).Border(lipgloss.RoundedBorder())
)

// --- Entry Picker Styles ---
var (
	CursorStyle     = lipgloss.NewStyle().Foreground(colorCyan).SetString("> ")
	NoCursorStyle   = lipgloss.NewStyle().SetString("  ")
	SelectedStyle   = lipgloss.NewStyle().Foreground(colorGreen).SetString("[x] ")
	DeselectedStyle = lipgloss.NewStyle().SetString("[ ] ")
	SensitiveStyle  = lipgloss.NewStyle().Foreground(colorRed)
	HeaderStyle     = lipgloss.NewStyle().Bold(true)
)

// NewSpinner creates a spinner with a consistent style.
func NewSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPink)
	return s
}
