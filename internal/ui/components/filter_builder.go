package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/unrealemotion/gridview/internal/filter"
	"github.com/unrealemotion/gridview/internal/models"
	"github.com/unrealemotion/gridview/internal/ui/theme"
)

// FilterAppliedMsg is sent when the user explicitly applies the filter
type FilterAppliedMsg struct{}

// CloseFilterBuilderMsg is sent when the filter builder should close
type CloseFilterBuilderMsg struct{}

// entryKind discriminates rendered tree lines
type entryKind int

const (
	entryGroup entryKind = iota
	entryCondition
)

// entry is one visible line of the flattened filter tree
type entry struct {
	kind       entryKind
	id         string
	depth      int
	parentPath []int // path of the enclosing group
	index      int   // position within the enclosing group
	path       []int // for groups: the group's own path
	cond       *models.FilterCondition
	group      *models.FilterGroup
}

// FilterBuilder provides an interactive editor over a filter session's
// expression tree. Structural keys rebuild the tree through the session;
// pattern keystrokes only touch the session's side table.
type FilterBuilder struct {
	Width   int
	Height  int
	Theme   theme.Theme
	session *filter.Session

	entries      []entry
	currentIndex int
	editing      bool
	patternInput textinput.Model
}

// NewFilterBuilder creates a builder bound to session
func NewFilterBuilder(th theme.Theme, session *filter.Session) *FilterBuilder {
	ti := textinput.New()
	ti.Placeholder = "regular expression"
	ti.CharLimit = 256
	ti.Width = 40

	fb := &FilterBuilder{
		Width:        70,
		Height:       24,
		Theme:        th,
		session:      session,
		patternInput: ti,
	}
	fb.reload()
	return fb
}

// reload rebuilds the flattened entry list from the session snapshot
func (fb *FilterBuilder) reload() {
	root := fb.session.Snapshot()
	fb.entries = fb.entries[:0]
	fb.flatten(root, nil, nil, 0, 0)
	if fb.currentIndex >= len(fb.entries) {
		fb.currentIndex = len(fb.entries) - 1
	}
	if fb.currentIndex < 0 {
		fb.currentIndex = 0
	}
}

func (fb *FilterBuilder) flatten(node models.FilterNode, parentPath []int, path []int, index, depth int) {
	switch n := node.(type) {
	case *models.FilterGroup:
		fb.entries = append(fb.entries, entry{
			kind:       entryGroup,
			id:         n.ID,
			depth:      depth,
			parentPath: parentPath,
			index:      index,
			path:       path,
			group:      n,
		})
		for i, child := range n.Children {
			childPath := append(append([]int(nil), path...), i)
			fb.flatten(child, path, childPath, i, depth+1)
		}
	case *models.FilterCondition:
		fb.entries = append(fb.entries, entry{
			kind:       entryCondition,
			id:         n.ID,
			depth:      depth,
			parentPath: parentPath,
			index:      index,
			cond:       n,
		})
	}
}

func (fb *FilterBuilder) current() (entry, bool) {
	if fb.currentIndex < 0 || fb.currentIndex >= len(fb.entries) {
		return entry{}, false
	}
	return fb.entries[fb.currentIndex], true
}

// groupPath returns the path of the group an add operates on: the
// entry itself when it is a group, its parent otherwise.
func (e entry) groupPath() []int {
	if e.kind == entryGroup {
		return e.path
	}
	return e.parentPath
}

// Update handles keyboard input
func (fb *FilterBuilder) Update(msg tea.KeyMsg) (*FilterBuilder, tea.Cmd) {
	if fb.editing {
		return fb.handleEditMode(msg)
	}
	return fb.handleNavigationMode(msg)
}

func (fb *FilterBuilder) handleNavigationMode(msg tea.KeyMsg) (*FilterBuilder, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if fb.currentIndex > 0 {
			fb.currentIndex--
		}
	case "down", "j":
		if fb.currentIndex < len(fb.entries)-1 {
			fb.currentIndex++
		}
	case "a":
		if e, ok := fb.current(); ok {
			fb.session.AddCondition(e.groupPath())
			fb.reload()
		}
	case "g":
		if e, ok := fb.current(); ok {
			fb.session.AddGroup(e.groupPath())
			fb.reload()
		}
	case "d", "x":
		// The root group itself is not removable, only its children.
		if e, ok := fb.current(); ok && !(e.kind == entryGroup && len(e.path) == 0) {
			fb.session.RemoveChild(e.parentPath, e.index)
			fb.reload()
		}
	case "o", "tab":
		if e, ok := fb.current(); ok {
			fb.session.ToggleOperator(e.groupPath())
			fb.reload()
		}
	case "c":
		if e, ok := fb.current(); ok && e.kind == entryCondition {
			fb.session.SetColumn(e.id, fb.nextColumn(e.cond.Column))
			fb.reload()
		}
	case "s":
		if e, ok := fb.current(); ok && e.kind == entryCondition {
			fb.session.SetCaseSensitive(e.id, !e.cond.CaseSensitive)
			fb.reload()
		}
	case "i", "enter":
		if e, ok := fb.current(); ok && e.kind == entryCondition {
			fb.editing = true
			fb.patternInput.SetValue(e.cond.Pattern)
			fb.patternInput.CursorEnd()
			fb.patternInput.Focus()
		}
	case "r":
		fb.session.Reset()
		fb.reload()
	case "esc":
		return fb, func() tea.Msg {
			return CloseFilterBuilderMsg{}
		}
	}
	return fb, nil
}

func (fb *FilterBuilder) handleEditMode(msg tea.KeyMsg) (*FilterBuilder, tea.Cmd) {
	e, ok := fb.current()
	if !ok || e.kind != entryCondition {
		fb.editing = false
		return fb, nil
	}

	switch msg.String() {
	case "enter":
		// Affirmative keystroke inside a condition's input: apply
		// immediately, bypassing the debounce.
		fb.editing = false
		fb.patternInput.Blur()
		fb.session.Commit()
		return fb, func() tea.Msg {
			return FilterAppliedMsg{}
		}
	case "esc":
		fb.editing = false
		fb.patternInput.Blur()
		fb.reload()
		return fb, nil
	}

	var cmd tea.Cmd
	fb.patternInput, cmd = fb.patternInput.Update(msg)
	// Live value edits go to the side table only; the debounce decides
	// when they become the active predicate.
	fb.session.SetPattern(e.id, fb.patternInput.Value())
	fb.reload()
	return fb, cmd
}

func (fb *FilterBuilder) nextColumn(current string) string {
	columns := fb.session.Columns()
	if len(columns) == 0 {
		return current
	}
	for i, key := range columns {
		if key == current {
			return columns[(i+1)%len(columns)]
		}
	}
	return columns[0]
}

// View renders the filter builder
func (fb *FilterBuilder) View() string {
	var sections []string

	titleStyle := lipgloss.NewStyle().
		Foreground(fb.Theme.Foreground).
		Background(fb.Theme.Info).
		Padding(0, 1).
		Bold(true)
	sections = append(sections, titleStyle.Render("Filter"))

	instructionStyle := lipgloss.NewStyle().
		Foreground(fb.Theme.Muted).
		Padding(0, 1)
	var instructions string
	if fb.editing {
		instructions = "Enter=Apply now  Esc=Done"
	} else {
		instructions = "a=Condition g=Group d=Delete o=AND/OR c=Column s=Case i=Pattern r=Clear Esc=Close"
	}
	sections = append(sections, instructionStyle.Render(instructions))
	sections = append(sections, "")

	opStyle := lipgloss.NewStyle().Foreground(fb.Theme.GroupOperator).Bold(true)
	patternStyle := lipgloss.NewStyle().Foreground(fb.Theme.Pattern)
	mutedStyle := lipgloss.NewStyle().Foreground(fb.Theme.Muted)

	for i, e := range fb.entries {
		indent := strings.Repeat("  ", e.depth)
		var line string
		switch e.kind {
		case entryGroup:
			line = indent + opStyle.Render(string(e.group.Operator)+" group")
			if len(e.group.Children) == 1 {
				line += mutedStyle.Render(" (1 rule)")
			} else {
				line += mutedStyle.Render(fmt.Sprintf(" (%d rules)", len(e.group.Children)))
			}
		case entryCondition:
			column := e.cond.Column
			if column == "" {
				column = "(no column)"
			}
			caseFlag := "Aa"
			if e.cond.CaseSensitive {
				caseFlag = "A≠a"
			}
			pattern := e.cond.Pattern
			if fb.editing && i == fb.currentIndex {
				pattern = fb.patternInput.View()
			} else if pattern == "" {
				pattern = mutedStyle.Render("(match all)")
			} else {
				pattern = patternStyle.Render(pattern)
			}
			line = fmt.Sprintf("%s%s ~ %s %s", indent, column, pattern, mutedStyle.Render(caseFlag))
		}

		style := lipgloss.NewStyle().Padding(0, 1)
		if i == fb.currentIndex && !fb.editing {
			style = style.Background(fb.Theme.Selection).Foreground(fb.Theme.Foreground)
		}
		sections = append(sections, style.Render(line))
	}

	panel := Panel{
		Content: strings.Join(sections, "\n"),
		Width:   fb.Width,
		Style: lipgloss.NewStyle().
			BorderForeground(fb.Theme.BorderFocused).
			Padding(1),
	}
	return panel.View()
}
