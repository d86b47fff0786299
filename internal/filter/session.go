package filter

import (
	"sync"
	"time"

	"github.com/unrealemotion/gridview/internal/models"
)

// DefaultQuiescence is the pause after the last edit before an armed
// auto-apply fires.
const DefaultQuiescence = 500 * time.Millisecond

// ConditionValues holds the live editable fields of one condition.
// They sit outside the structural tree so a keystroke in a pattern
// input never forces a tree reconstruction; they are merged back into
// a snapshot only at compile time.
type ConditionValues struct {
	Column        string
	Pattern       string
	CaseSensitive bool
}

type applyState int

const (
	stateIdle applyState = iota
	stateArmed
	stateApplied
)

// Session owns one filter tree being edited: the structural tree, the
// id-keyed side table of live condition values, and the debounce timer
// that turns bursts of edits into a single published predicate.
//
// The apply callback runs on the timer goroutine when a debounce fires
// and on the caller's goroutine for Commit and Reset.
type Session struct {
	mu      sync.Mutex
	root    *models.FilterGroup
	values  map[string]ConditionValues
	columns []string

	autoApply bool
	window    time.Duration
	timer     *time.Timer
	state     applyState
	closed    bool

	onApply func(Predicate)
	onReset func()
}

// NewSession creates a session over the given column keys. The root is
// an AND group with one empty condition on the first column. onApply
// receives every published predicate; onReset fires additionally when
// the session is reset. Either callback may be nil.
func NewSession(columns []string, onApply func(Predicate), onReset func()) *Session {
	s := &Session{
		root:      models.NewFilterGroup(firstColumn(columns)),
		values:    make(map[string]ConditionValues),
		columns:   columns,
		autoApply: true,
		window:    DefaultQuiescence,
		onApply:   onApply,
		onReset:   onReset,
	}
	s.seedValues(s.root)
	return s
}

func firstColumn(columns []string) string {
	if len(columns) == 0 {
		return ""
	}
	return columns[0]
}

// seedValues registers side-table entries for every condition under node
func (s *Session) seedValues(node models.FilterNode) {
	switch n := node.(type) {
	case *models.FilterCondition:
		s.values[n.ID] = ConditionValues{
			Column:        n.Column,
			Pattern:       n.Pattern,
			CaseSensitive: n.CaseSensitive,
		}
	case *models.FilterGroup:
		for _, child := range n.Children {
			s.seedValues(child)
		}
	}
}

// SetAutoApply enables or disables the debounce timer. While disabled,
// only Commit publishes a predicate.
func (s *Session) SetAutoApply(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoApply = on
	if !on {
		s.cancelTimerLocked()
	}
}

// SetQuiescence overrides the debounce window
func (s *Session) SetQuiescence(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d > 0 {
		s.window = d
	}
}

// Columns returns the column keys available to conditions
func (s *Session) Columns() []string { return s.columns }

// Snapshot returns a deep copy of the tree with the live side-table
// values merged in. Conditions whose entry is missing keep their last
// structural values.
func (s *Session) Snapshot() *models.FilterGroup {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() *models.FilterGroup {
	g := s.root.Clone().(*models.FilterGroup)
	s.overlay(g)
	return g
}

func (s *Session) overlay(node models.FilterNode) {
	switch n := node.(type) {
	case *models.FilterCondition:
		if v, ok := s.values[n.ID]; ok {
			n.Column = v.Column
			n.Pattern = v.Pattern
			n.CaseSensitive = v.CaseSensitive
		}
	case *models.FilterGroup:
		for _, child := range n.Children {
			s.overlay(child)
		}
	}
}

// Values returns the live values for a condition id, falling back to
// the structural node when no side entry exists.
func (s *Session) Values(id string) ConditionValues {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.values[id]; ok {
		return v
	}
	if c := findCondition(s.root, id); c != nil {
		return ConditionValues{Column: c.Column, Pattern: c.Pattern, CaseSensitive: c.CaseSensitive}
	}
	return ConditionValues{}
}

func findCondition(node models.FilterNode, id string) *models.FilterCondition {
	switch n := node.(type) {
	case *models.FilterCondition:
		if n.ID == id {
			return n
		}
	case *models.FilterGroup:
		for _, child := range n.Children {
			if found := findCondition(child, id); found != nil {
				return found
			}
		}
	}
	return nil
}

// SetColumn updates the column a condition matches against
func (s *Session) SetColumn(id, column string) {
	s.editValue(id, func(v *ConditionValues) { v.Column = column })
}

// SetPattern updates a condition's regular-expression source
func (s *Session) SetPattern(id, pattern string) {
	s.editValue(id, func(v *ConditionValues) { v.Pattern = pattern })
}

// SetCaseSensitive toggles case-sensitive matching for a condition
func (s *Session) SetCaseSensitive(id string, on bool) {
	s.editValue(id, func(v *ConditionValues) { v.CaseSensitive = on })
}

func (s *Session) editValue(id string, change func(*ConditionValues)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	v, ok := s.values[id]
	if !ok {
		if c := findCondition(s.root, id); c != nil {
			v = ConditionValues{Column: c.Column, Pattern: c.Pattern, CaseSensitive: c.CaseSensitive}
		} else {
			// Dangling id: nothing owns this entry, drop the edit.
			return
		}
	}
	change(&v)
	s.values[id] = v
	s.touchLocked()
}

// AddCondition appends a fresh condition to the group at path and
// returns its id.
func (s *Session) AddCondition(path []int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ""
	}
	var id string
	s.root = RewriteAt(s.root, path, func(g *models.FilterGroup) *models.FilterGroup {
		g2 := AddCondition(g, firstColumn(s.columns))
		c := g2.Children[len(g2.Children)-1].(*models.FilterCondition)
		id = c.ID
		s.values[id] = ConditionValues{Column: c.Column}
		return g2
	})
	s.touchLocked()
	return id
}

// AddGroup appends a fresh AND sub-group (holding one empty condition)
// to the group at path and returns the new group's id.
func (s *Session) AddGroup(path []int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ""
	}
	var id string
	s.root = RewriteAt(s.root, path, func(g *models.FilterGroup) *models.FilterGroup {
		g2 := AddGroup(g, firstColumn(s.columns))
		added := g2.Children[len(g2.Children)-1].(*models.FilterGroup)
		id = added.ID
		s.seedValues(added)
		return g2
	})
	s.touchLocked()
	return id
}

// RemoveChild deletes the child at index of the group at path, along
// with the side-table entries of every node in the removed subtree.
// The root itself is never removable.
func (s *Session) RemoveChild(path []int, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.root = RewriteAt(s.root, path, func(g *models.FilterGroup) *models.FilterGroup {
		g2, removed := RemoveChild(g, index)
		for _, id := range removed {
			delete(s.values, id)
		}
		return g2
	})
	s.touchLocked()
}

// ToggleOperator flips AND/OR on the group at path
func (s *Session) ToggleOperator(path []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.root = RewriteAt(s.root, path, ToggleOperator)
	s.touchLocked()
}

// touchLocked (re)arms the debounce timer after an edit. The most
// recent edit before quiescence wins: N edits inside the window produce
// exactly one publish reflecting the final tree.
func (s *Session) touchLocked() {
	if !s.autoApply {
		return
	}
	s.cancelTimerLocked()
	s.state = stateArmed
	s.timer = time.AfterFunc(s.window, s.fire)
}

func (s *Session) cancelTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) fire() {
	s.mu.Lock()
	if s.closed || s.state != stateArmed {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.state = stateApplied
	pred := Compile(s.snapshotLocked())
	apply := s.onApply
	s.mu.Unlock()

	if apply != nil {
		apply(pred)
	}
}

// Commit cancels any armed timer and publishes the current tree
// immediately. This is the only way to apply while auto-apply is off.
func (s *Session) Commit() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.cancelTimerLocked()
	s.state = stateApplied
	pred := Compile(s.snapshotLocked())
	apply := s.onApply
	s.mu.Unlock()

	if apply != nil {
		apply(pred)
	}
}

// Reset publishes the match-all predicate and notifies the consumer.
// The tree keeps its structure so in-progress edits survive clearing
// the results.
func (s *Session) Reset() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.cancelTimerLocked()
	s.state = stateIdle
	apply := s.onApply
	reset := s.onReset
	s.mu.Unlock()

	if apply != nil {
		apply(MatchAll)
	}
	if reset != nil {
		reset()
	}
}

// Close cancels any armed timer so no publish fires after the consumer
// is gone. A closed session ignores further edits.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelTimerLocked()
	s.closed = true
}
