package models

import "fmt"

// Row is a single record keyed by column key
type Row map[string]any

// CellString returns the string form of a cell value used for filter
// matching: nil becomes the empty string, booleans become "true"/"false",
// everything else its default string form.
func CellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(x)
	}
}

// Alignment controls horizontal cell alignment
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignRight  Alignment = "right"
	AlignCenter Alignment = "center"
)

// ColumnDefinition describes one displayable column. Key is the row
// lookup key and the canonical column identity everywhere else (sort
// state, visibility, width map, filter column list).
type ColumnDefinition struct {
	Key       string
	Label     string
	Width     string // fixed cell count ("24") or percentage ("25%"); empty = auto
	MinWidth  int
	Align     Alignment
	Sortable  bool
	Resizable bool
	Render    func(v any, row Row) string
	ClassName string
}

// NewColumn creates a sortable, resizable column with key as label
func NewColumn(key, label string) ColumnDefinition {
	if label == "" {
		label = key
	}
	return ColumnDefinition{
		Key:       key,
		Label:     label,
		Sortable:  true,
		Resizable: true,
	}
}

// SortDirection orders a sorted column
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortState holds the active sort column and direction. The zero value
// means unsorted; Column and Direction are always empty together.
type SortState struct {
	Column    string
	Direction SortDirection
}

// Active reports whether a sort is in effect
func (s SortState) Active() bool {
	return s.Column != "" && s.Direction != ""
}
