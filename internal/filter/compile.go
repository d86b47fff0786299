package filter

import (
	"regexp"

	"github.com/unrealemotion/gridview/internal/models"
)

// Predicate decides whether a row passes the active filter
type Predicate func(models.Row) bool

// MatchAll is the predicate published on reset; it excludes nothing
func MatchAll(models.Row) bool { return true }

func matchNone(models.Row) bool { return false }

// Compile turns a filter tree into a per-row predicate. Each condition's
// pattern is compiled exactly once here, so evaluating the predicate over
// an arbitrarily large row set never re-parses a regular expression.
func Compile(root *models.FilterGroup) Predicate {
	return compileGroup(root)
}

func compileNode(node models.FilterNode) Predicate {
	switch n := node.(type) {
	case *models.FilterCondition:
		return compileCondition(n)
	case *models.FilterGroup:
		return compileGroup(n)
	default:
		return matchNone
	}
}

func compileCondition(c *models.FilterCondition) Predicate {
	// An empty filter excludes nothing.
	if c.Pattern == "" {
		return MatchAll
	}
	pattern := c.Pattern
	if !c.CaseSensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		// A half-typed pattern must not crash evaluation; fail closed.
		return matchNone
	}
	column := c.Column
	return func(row models.Row) bool {
		return re.MatchString(models.CellString(row[column]))
	}
}

func compileGroup(g *models.FilterGroup) Predicate {
	children := make([]Predicate, len(g.Children))
	for i, child := range g.Children {
		children[i] = compileNode(child)
	}
	if g.Operator == models.OpOr {
		return func(row models.Row) bool {
			// An empty group is true under either operator.
			if len(children) == 0 {
				return true
			}
			for _, match := range children {
				if match(row) {
					return true
				}
			}
			return false
		}
	}
	return func(row models.Row) bool {
		for _, match := range children {
			if !match(row) {
				return false
			}
		}
		return true
	}
}
