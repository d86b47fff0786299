package models

import "github.com/google/uuid"

// GroupOperator combines the children of a filter group
type GroupOperator string

const (
	OpAnd GroupOperator = "AND"
	OpOr  GroupOperator = "OR"
)

// FilterNode is one node of a filter expression tree: either a
// *FilterCondition leaf or a *FilterGroup interior node. The union is
// closed; consumers switch exhaustively over the two concrete types.
type FilterNode interface {
	NodeID() string
	Clone() FilterNode
	isFilterNode()
}

// FilterCondition matches one column's stringified value against a
// regular expression. An empty Pattern matches every row; an empty
// Column means no column has been chosen yet.
type FilterCondition struct {
	ID            string
	Column        string
	Pattern       string
	CaseSensitive bool
}

// NewFilterCondition creates an empty condition on the given column
func NewFilterCondition(column string) *FilterCondition {
	return &FilterCondition{
		ID:     uuid.NewString(),
		Column: column,
	}
}

// NodeID returns the node's stable identity
func (c *FilterCondition) NodeID() string { return c.ID }

// Clone returns a copy sharing nothing with the receiver
func (c *FilterCondition) Clone() FilterNode {
	cp := *c
	return &cp
}

func (*FilterCondition) isFilterNode() {}

// FilterGroup combines child nodes with AND/OR logic. A group with no
// children evaluates to true under either operator.
type FilterGroup struct {
	ID       string
	Operator GroupOperator
	Children []FilterNode
}

// NewFilterGroup creates an AND group holding one empty condition on
// the given column. This is the shape of a freshly created root and of
// every group added through the editor.
func NewFilterGroup(column string) *FilterGroup {
	return &FilterGroup{
		ID:       uuid.NewString(),
		Operator: OpAnd,
		Children: []FilterNode{NewFilterCondition(column)},
	}
}

// NodeID returns the node's stable identity
func (g *FilterGroup) NodeID() string { return g.ID }

// Clone deep-copies the group and every descendant
func (g *FilterGroup) Clone() FilterNode {
	cp := &FilterGroup{
		ID:       g.ID,
		Operator: g.Operator,
		Children: make([]FilterNode, len(g.Children)),
	}
	for i, child := range g.Children {
		cp.Children[i] = child.Clone()
	}
	return cp
}

func (*FilterGroup) isFilterNode() {}

// CollectIDs returns the ids of node and every descendant. Used to
// purge side state when a subtree is removed.
func CollectIDs(node FilterNode) []string {
	switch n := node.(type) {
	case *FilterCondition:
		return []string{n.ID}
	case *FilterGroup:
		ids := []string{n.ID}
		for _, child := range n.Children {
			ids = append(ids, CollectIDs(child)...)
		}
		return ids
	default:
		return nil
	}
}
