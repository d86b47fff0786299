package filter

import (
	"github.com/unrealemotion/gridview/internal/models"
)

// Structural edits are copy-on-write: each operation clones the group it
// touches and returns the clone, so a post-edit tree never aliases the
// pre-edit one. RewriteAt splices an edited subtree back along its path,
// cloning every group on the spine.

// AddCondition returns a copy of group with a fresh empty condition on
// column appended.
func AddCondition(group *models.FilterGroup, column string) *models.FilterGroup {
	g := group.Clone().(*models.FilterGroup)
	g.Children = append(g.Children, models.NewFilterCondition(column))
	return g
}

// AddGroup returns a copy of group with a fresh AND sub-group appended.
// The new group starts with one empty condition on column.
func AddGroup(group *models.FilterGroup, column string) *models.FilterGroup {
	g := group.Clone().(*models.FilterGroup)
	g.Children = append(g.Children, models.NewFilterGroup(column))
	return g
}

// RemoveChild returns a copy of group without the child at index, plus
// the ids of every node in the removed subtree. An out-of-range index
// removes nothing.
func RemoveChild(group *models.FilterGroup, index int) (*models.FilterGroup, []string) {
	g := group.Clone().(*models.FilterGroup)
	if index < 0 || index >= len(g.Children) {
		return g, nil
	}
	removed := models.CollectIDs(g.Children[index])
	g.Children = append(g.Children[:index], g.Children[index+1:]...)
	return g, removed
}

// ToggleOperator returns a copy of group with AND and OR swapped
func ToggleOperator(group *models.FilterGroup) *models.FilterGroup {
	g := group.Clone().(*models.FilterGroup)
	if g.Operator == models.OpOr {
		g.Operator = models.OpAnd
	} else {
		g.Operator = models.OpOr
	}
	return g
}

// ReplaceChild returns a copy of group with the child at index swapped
// for node. Used when an edited sub-group is reported back upward.
func ReplaceChild(group *models.FilterGroup, index int, node models.FilterNode) *models.FilterGroup {
	g := group.Clone().(*models.FilterGroup)
	if index < 0 || index >= len(g.Children) {
		return g
	}
	g.Children[index] = node
	return g
}

// RewriteAt applies edit to the group reached by descending path (child
// indexes) from root and returns a new root with fresh copies along the
// whole spine. A path through a missing or non-group child leaves the
// tree untouched.
func RewriteAt(root *models.FilterGroup, path []int, edit func(*models.FilterGroup) *models.FilterGroup) *models.FilterGroup {
	if len(path) == 0 {
		return edit(root)
	}
	index := path[0]
	if index < 0 || index >= len(root.Children) {
		return root
	}
	child, ok := root.Children[index].(*models.FilterGroup)
	if !ok {
		return root
	}
	return ReplaceChild(root, index, RewriteAt(child, path[1:], edit))
}

// GroupAt returns the group reached by descending path from root, or
// nil if the path does not lead to a group.
func GroupAt(root *models.FilterGroup, path []int) *models.FilterGroup {
	current := root
	for _, index := range path {
		if index < 0 || index >= len(current.Children) {
			return nil
		}
		child, ok := current.Children[index].(*models.FilterGroup)
		if !ok {
			return nil
		}
		current = child
	}
	return current
}
