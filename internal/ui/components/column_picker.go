package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/unrealemotion/gridview/internal/models"
	"github.com/unrealemotion/gridview/internal/ui/theme"
)

// CloseColumnPickerMsg is sent when the column picker should close
type CloseColumnPickerMsg struct{}

// ColumnPicker toggles column visibility. The toggle callback refuses
// to hide the last visible column; the picker surfaces that refusal.
type ColumnPicker struct {
	Width int
	Theme theme.Theme

	columns      []models.ColumnDefinition
	isVisible    func(key string) bool
	toggle       func(key string) bool
	currentIndex int
	notice       string
}

// NewColumnPicker creates a picker over the full column schema
func NewColumnPicker(th theme.Theme, columns []models.ColumnDefinition, isVisible func(string) bool, toggle func(string) bool) *ColumnPicker {
	return &ColumnPicker{
		Width:     40,
		Theme:     th,
		columns:   columns,
		isVisible: isVisible,
		toggle:    toggle,
	}
}

// Update handles keyboard input
func (cp *ColumnPicker) Update(msg tea.KeyMsg) (*ColumnPicker, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if cp.currentIndex > 0 {
			cp.currentIndex--
		}
		cp.notice = ""
	case "down", "j":
		if cp.currentIndex < len(cp.columns)-1 {
			cp.currentIndex++
		}
		cp.notice = ""
	case " ", "enter":
		if cp.currentIndex < len(cp.columns) {
			key := cp.columns[cp.currentIndex].Key
			if !cp.toggle(key) && cp.isVisible(key) {
				cp.notice = "At least one column must stay visible"
			} else {
				cp.notice = ""
			}
		}
	case "esc", "v":
		return cp, func() tea.Msg {
			return CloseColumnPickerMsg{}
		}
	}
	return cp, nil
}

// View renders the picker
func (cp *ColumnPicker) View() string {
	var sections []string

	titleStyle := lipgloss.NewStyle().
		Foreground(cp.Theme.Foreground).
		Background(cp.Theme.Info).
		Padding(0, 1).
		Bold(true)
	sections = append(sections, titleStyle.Render("Columns"))

	helpStyle := lipgloss.NewStyle().Foreground(cp.Theme.Muted).Padding(0, 1)
	sections = append(sections, helpStyle.Render("Space=Toggle Esc=Close"))
	sections = append(sections, "")

	for i, col := range cp.columns {
		marker := "[ ]"
		if cp.isVisible(col.Key) {
			marker = "[x]"
		}
		line := marker + " " + col.Label

		style := lipgloss.NewStyle().Padding(0, 1)
		if i == cp.currentIndex {
			style = style.Background(cp.Theme.Selection).Foreground(cp.Theme.Foreground)
		}
		sections = append(sections, style.Render(line))
	}

	if cp.notice != "" {
		noticeStyle := lipgloss.NewStyle().Foreground(cp.Theme.Warning).Padding(0, 1)
		sections = append(sections, "", noticeStyle.Render(cp.notice))
	}

	panel := Panel{
		Content: strings.Join(sections, "\n"),
		Width:   cp.Width,
		Style: lipgloss.NewStyle().
			BorderForeground(cp.Theme.BorderFocused).
			Padding(1),
	}
	return panel.View()
}
