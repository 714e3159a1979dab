// Package styles holds the palette and lipgloss styles shared by the
// document explorer, the language picker and their components.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the palette the document views draw from.
type Theme struct {
	// Primary marks the cursor row, titles and the active sort column.
	Primary lipgloss.Color
	// Secondary marks documents that are checked for deletion.
	Secondary lipgloss.Color

	Background lipgloss.Color
	Foreground lipgloss.Color
	// Panel backs the status bar under the document table.
	Panel lipgloss.Color

	// Muted is used for hints, sizes and dates.
	Muted lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// Border outlines the table and the filter input.
	Border lipgloss.Color
}

// DefaultTheme returns the dark palette docdeck starts with.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#1976D2"),
		Secondary:  lipgloss.Color("#26A69A"),
		Background: lipgloss.Color("#1E1E2E"),
		Foreground: lipgloss.Color("#E0E0E0"),
		Panel:      lipgloss.Color("#181825"),
		Muted:      lipgloss.Color("#757575"),
		Success:    lipgloss.Color("#66BB6A"),
		Warning:    lipgloss.Color("#FFA726"),
		Error:      lipgloss.Color("#EF5350"),
		Border:     lipgloss.Color("#424242"),
	}
}

// Styles are the rendered styles built from a Theme.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style

	// Selected is the row under the cursor; Checked is a row in the
	// deletion set. A row can be both.
	Selected lipgloss.Style
	Checked  lipgloss.Style

	// Header is a column heading. ActiveHeader is the one the table is
	// sorted by.
	Header       lipgloss.Style
	ActiveHeader lipgloss.Style

	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style

	// InputField frames the filename filter.
	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style
	Border     lipgloss.Style
}

// NewStyles builds styles from theme, falling back to DefaultTheme when
// theme is nil.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	bold := lipgloss.NewStyle().Bold(true)
	framed := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)

	return &Styles{
		theme: theme,

		Title:    bold.Foreground(theme.Primary),
		Subtitle: bold.Foreground(theme.Secondary),
		Normal:   lipgloss.NewStyle().Foreground(theme.Foreground),
		Muted:    lipgloss.NewStyle().Foreground(theme.Muted),

		Selected: bold.
			Foreground(theme.Foreground).
			Background(theme.Primary),
		Checked: lipgloss.NewStyle().Foreground(theme.Secondary),

		Header:       bold.Foreground(theme.Foreground),
		ActiveHeader: bold.Underline(true).Foreground(theme.Primary),

		Error:   lipgloss.NewStyle().Foreground(theme.Error),
		Success: lipgloss.NewStyle().Foreground(theme.Success),
		Warning: lipgloss.NewStyle().Foreground(theme.Warning),

		InputField: framed.Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Panel).
			Padding(0, 1),
		Help:   lipgloss.NewStyle().Foreground(theme.Muted),
		Border: framed,
	}
}

// DefaultStyles is NewStyles(DefaultTheme()).
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette the styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}
