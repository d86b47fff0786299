package view

import (
	"fmt"

	"github.com/unrealemotion/gridview/internal/filter"
	"github.com/unrealemotion/gridview/internal/models"
	"github.com/unrealemotion/gridview/internal/sorting"
)

// ExportMode selects which rows an export operates on
type ExportMode string

const (
	ExportVisible ExportMode = "visible" // current filtered+sorted rows
	ExportAll     ExportMode = "all"     // every raw row
)

// DefaultMinColumnWidth floors every column when no configuration says
// otherwise.
const DefaultMinColumnWidth = 4

// Options configures a View. Columns is required; everything else has a
// usable zero value.
type Options struct {
	Columns        []models.ColumnDefinition
	Rows           []models.Row
	DefaultSort    models.SortState
	VisibleColumns []string // nil = all columns, in schema order
	MinColumnWidth int
	RowClass       func(models.Row) string

	ShowExport         bool
	ShowColumnSelector bool
	AllowResize        bool

	// OnChange observes every recomputation with the resulting rows
	OnChange func([]models.Row)
}

// View composes the filter predicate, sort engine and resize engine
// over a raw row collection: processed = Sort(Filter(raw)). Raw rows
// and the column schema are immutable inputs; filter, sort, widths and
// visibility are owned and mutated only here.
type View struct {
	columns   []models.ColumnDefinition
	raw       []models.Row
	predicate filter.Predicate
	sort      models.SortState
	visible   []string
	widths    map[string]string
	minWidth  int
	rowClass  func(models.Row) string
	onChange  func([]models.Row)

	showExport         bool
	showColumnSelector bool
	allowResize        bool

	processed []models.Row
	drag      *drag
}

// New builds a View and computes the initial row set
func New(opts Options) *View {
	v := &View{
		columns:            opts.Columns,
		raw:                opts.Rows,
		predicate:          filter.MatchAll,
		sort:               opts.DefaultSort,
		minWidth:           opts.MinColumnWidth,
		rowClass:           opts.RowClass,
		onChange:           opts.OnChange,
		showExport:         opts.ShowExport,
		showColumnSelector: opts.ShowColumnSelector,
		allowResize:        opts.AllowResize,
	}
	if v.minWidth <= 0 {
		v.minWidth = DefaultMinColumnWidth
	}

	if len(opts.VisibleColumns) > 0 {
		v.visible = append([]string(nil), opts.VisibleColumns...)
	} else {
		for _, col := range v.columns {
			v.visible = append(v.visible, col.Key)
		}
	}

	// Widths are seeded once from the schema or an even split and from
	// here on mutated only by the resize engine. Keys persist even for
	// hidden columns.
	v.widths = make(map[string]string, len(v.columns))
	even := ""
	if len(v.columns) > 0 {
		even = fmt.Sprintf("%.2f%%", 100/float64(len(v.columns)))
	}
	for _, col := range v.columns {
		if col.Width != "" {
			v.widths[col.Key] = col.Width
		} else {
			v.widths[col.Key] = even
		}
	}

	v.recompute()
	return v
}

// Rows returns the current filtered and sorted row list
func (v *View) Rows() []models.Row { return v.processed }

// RawRows returns the unfiltered input collection
func (v *View) RawRows() []models.Row { return v.raw }

// Columns returns the full column schema
func (v *View) Columns() []models.ColumnDefinition { return v.columns }

// SetRows replaces the raw row collection
func (v *View) SetRows(rows []models.Row) {
	v.raw = rows
	v.recompute()
}

// ApplyPredicate installs a compiled filter predicate
func (v *View) ApplyPredicate(p filter.Predicate) {
	if p == nil {
		p = filter.MatchAll
	}
	v.predicate = p
	v.recompute()
}

// ResetFilter restores the match-all predicate
func (v *View) ResetFilter() {
	v.predicate = filter.MatchAll
	v.recompute()
}

// SortState returns the active sort
func (v *View) SortState() models.SortState { return v.sort }

// ToggleSort advances the per-column click cycle: unsorted → ascending
// → descending → unsorted. A different column always restarts at
// ascending, discarding the previous column's state. Non-sortable
// columns are ignored.
func (v *View) ToggleSort(key string) {
	col, ok := v.columnByKey(key)
	if !ok || !col.Sortable {
		return
	}
	switch {
	case v.sort.Column != key:
		v.sort = models.SortState{Column: key, Direction: models.SortAsc}
	case v.sort.Direction == models.SortAsc:
		v.sort = models.SortState{Column: key, Direction: models.SortDesc}
	default:
		v.sort = models.SortState{}
	}
	v.recompute()
}

// VisibleColumns returns the visible column keys in display order
func (v *View) VisibleColumns() []string {
	return append([]string(nil), v.visible...)
}

// VisibleColumnDefs returns the definitions of the visible columns in
// display order.
func (v *View) VisibleColumnDefs() []models.ColumnDefinition {
	defs := make([]models.ColumnDefinition, 0, len(v.visible))
	for _, key := range v.visible {
		if col, ok := v.columnByKey(key); ok {
			defs = append(defs, col)
		}
	}
	return defs
}

// IsVisible reports whether column key is currently shown
func (v *View) IsVisible(key string) bool {
	for _, k := range v.visible {
		if k == key {
			return true
		}
	}
	return false
}

// ToggleColumn shows or hides a column. The last visible column cannot
// be hidden; returns false when the toggle was refused. Hidden columns
// keep their width map entry.
func (v *View) ToggleColumn(key string) bool {
	if _, ok := v.columnByKey(key); !ok {
		return false
	}
	for i, k := range v.visible {
		if k == key {
			if len(v.visible) == 1 {
				return false
			}
			v.visible = append(v.visible[:i], v.visible[i+1:]...)
			return true
		}
	}
	// Re-show in schema order.
	v.visible = v.orderedSubset(append(v.visible, key))
	return true
}

// SetVisibleColumns replaces the visible set wholesale. Unknown keys
// are dropped; an empty result falls back to all columns.
func (v *View) SetVisibleColumns(keys []string) {
	var next []string
	for _, key := range keys {
		if _, ok := v.columnByKey(key); ok {
			next = append(next, key)
		}
	}
	if len(next) == 0 {
		for _, col := range v.columns {
			next = append(next, col.Key)
		}
	}
	v.visible = next
}

// orderedSubset reorders keys into schema order, dropping duplicates
func (v *View) orderedSubset(keys []string) []string {
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}
	var out []string
	for _, col := range v.columns {
		if want[col.Key] {
			out = append(out, col.Key)
		}
	}
	return out
}

// Widths returns a copy of the width map, including entries for hidden
// columns.
func (v *View) Widths() map[string]string {
	out := make(map[string]string, len(v.widths))
	for k, w := range v.widths {
		out[k] = w
	}
	return out
}

// RowClass returns the caller-supplied class for a row, or ""
func (v *View) RowClass(row models.Row) string {
	if v.rowClass == nil {
		return ""
	}
	return v.rowClass(row)
}

// Feature toggles surfaced to the UI layer.
func (v *View) ShowExport() bool         { return v.showExport }
func (v *View) ShowColumnSelector() bool { return v.showColumnSelector }
func (v *View) AllowResize() bool        { return v.allowResize }

// ExportRows returns the rows an export of the given mode operates on
func (v *View) ExportRows(mode ExportMode) []models.Row {
	if mode == ExportAll {
		return v.raw
	}
	return v.processed
}

func (v *View) columnByKey(key string) (models.ColumnDefinition, bool) {
	for _, col := range v.columns {
		if col.Key == key {
			return col, true
		}
	}
	return models.ColumnDefinition{}, false
}

// recompute re-derives the processed row list and reports it
func (v *View) recompute() {
	filtered := make([]models.Row, 0, len(v.raw))
	for _, row := range v.raw {
		if v.predicate(row) {
			filtered = append(filtered, row)
		}
	}
	v.processed = sorting.Apply(filtered, v.sort)
	if v.onChange != nil {
		v.onChange(v.processed)
	}
}
