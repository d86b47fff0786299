package components

import (
	"github.com/charmbracelet/lipgloss"
)

// Panel frames a block of content with an optional title. Height zero
// lets the panel grow with its content.
type Panel struct {
	Title   string
	Content string
	Width   int
	Height  int
	Style   lipgloss.Style
}

// View renders the panel
func (p *Panel) View() string {
	if p.Width <= 0 {
		return ""
	}

	style := p.Style.
		Width(p.Width).
		Border(lipgloss.RoundedBorder())
	if p.Height > 0 {
		style = style.Height(p.Height)
	}

	content := p.Content
	if p.Title != "" {
		titleStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
		content = titleStyle.Render(p.Title) + "\n" + content
	}

	return style.Render(content)
}
