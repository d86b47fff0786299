package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme and styling
type Theme struct {
	Name string

	// Background colors
	Background lipgloss.Color
	Foreground lipgloss.Color

	// UI elements
	Border        lipgloss.Color
	BorderFocused lipgloss.Color
	Selection     lipgloss.Color
	Cursor        lipgloss.Color

	// Status colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	// Table colors
	TableHeader      lipgloss.Color
	TableRowEven     lipgloss.Color
	TableRowOdd      lipgloss.Color
	TableRowSelected lipgloss.Color
	SortIndicator    lipgloss.Color
	ResizeHandle     lipgloss.Color

	// Filter builder colors
	GroupOperator lipgloss.Color
	Pattern       lipgloss.Color
	Muted         lipgloss.Color
}

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMochaTheme()
	default:
		return DefaultTheme()
	}
}

// RowClassColor maps a row class to its tint; unknown classes fall
// back to the normal foreground.
func (t Theme) RowClassColor(class string) lipgloss.Color {
	switch class {
	case "error":
		return t.Error
	case "warning":
		return t.Warning
	case "success":
		return t.Success
	default:
		return t.Foreground
	}
}
