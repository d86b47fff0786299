package view

import (
	"testing"

	"github.com/unrealemotion/gridview/internal/filter"
	"github.com/unrealemotion/gridview/internal/models"
)

func people() ([]models.ColumnDefinition, []models.Row) {
	cols := []models.ColumnDefinition{
		models.NewColumn("name", "Name"),
		models.NewColumn("age", "Age"),
	}
	rows := []models.Row{
		{"name": "carol", "age": 35},
		{"name": "alice", "age": 30},
		{"name": "bob", "age": 25},
	}
	return cols, rows
}

func names(rows []models.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = models.CellString(r["name"])
	}
	return out
}

func TestToggleSort_ThreePhaseCycle(t *testing.T) {
	cols, rows := people()
	v := New(Options{Columns: cols, Rows: rows})

	v.ToggleSort("age")
	if s := v.SortState(); s.Column != "age" || s.Direction != models.SortAsc {
		t.Fatalf("first toggle: %+v", s)
	}
	if got := names(v.Rows()); got[0] != "bob" {
		t.Errorf("ascending by age should put bob first, got %v", got)
	}

	v.ToggleSort("age")
	if s := v.SortState(); s.Direction != models.SortDesc {
		t.Fatalf("second toggle: %+v", s)
	}
	if got := names(v.Rows()); got[0] != "carol" {
		t.Errorf("descending by age should put carol first, got %v", got)
	}

	v.ToggleSort("age")
	if v.SortState().Active() {
		t.Fatal("third toggle should clear the sort")
	}
	if got := names(v.Rows()); got[0] != "carol" || got[2] != "bob" {
		t.Errorf("unsorted should restore input order, got %v", got)
	}
}

func TestToggleSort_DifferentColumnRestartsAscending(t *testing.T) {
	cols, rows := people()
	v := New(Options{Columns: cols, Rows: rows})

	v.ToggleSort("age")
	v.ToggleSort("age") // age desc
	v.ToggleSort("name")

	if s := v.SortState(); s.Column != "name" || s.Direction != models.SortAsc {
		t.Errorf("switching columns should restart ascending, got %+v", s)
	}
}

func TestToggleSort_NonSortableIgnored(t *testing.T) {
	cols, rows := people()
	cols[1].Sortable = false
	v := New(Options{Columns: cols, Rows: rows})

	v.ToggleSort("age")

	if v.SortState().Active() {
		t.Error("non-sortable column activated a sort")
	}
}

func TestApplyPredicate_FiltersThenSorts(t *testing.T) {
	cols, rows := people()
	v := New(Options{Columns: cols, Rows: rows})
	v.ToggleSort("name")

	v.ApplyPredicate(func(r models.Row) bool {
		return models.CellString(r["name"]) != "bob"
	})

	got := names(v.Rows())
	if len(got) != 2 || got[0] != "alice" || got[1] != "carol" {
		t.Errorf("expected [alice carol], got %v", got)
	}

	v.ResetFilter()
	if len(v.Rows()) != 3 {
		t.Errorf("reset should restore all rows, got %d", len(v.Rows()))
	}
}

func TestApplyPredicate_NilMeansMatchAll(t *testing.T) {
	cols, rows := people()
	v := New(Options{Columns: cols, Rows: rows})

	v.ApplyPredicate(nil)

	if len(v.Rows()) != 3 {
		t.Errorf("nil predicate should keep every row, got %d", len(v.Rows()))
	}
}

func TestOnChange_ObservesEveryRecompute(t *testing.T) {
	cols, rows := people()
	var calls int
	var last []models.Row
	v := New(Options{Columns: cols, Rows: rows, OnChange: func(out []models.Row) {
		calls++
		last = out
	}})

	if calls != 1 {
		t.Fatalf("construction should recompute once, got %d", calls)
	}

	v.ApplyPredicate(filter.MatchAll)
	v.ToggleSort("name")

	if calls != 3 {
		t.Errorf("expected 3 recomputes, got %d", calls)
	}
	if len(last) != 3 {
		t.Errorf("observer got %d rows", len(last))
	}
}

func TestToggleColumn_RefusesLastVisible(t *testing.T) {
	cols, rows := people()
	v := New(Options{Columns: cols, Rows: rows})

	if !v.ToggleColumn("name") {
		t.Fatal("hiding name should succeed")
	}
	if v.ToggleColumn("age") {
		t.Error("hiding the last visible column must be refused")
	}
	if !v.IsVisible("age") {
		t.Error("age should still be visible")
	}
}

func TestToggleColumn_ReshowsInSchemaOrder(t *testing.T) {
	cols := []models.ColumnDefinition{
		models.NewColumn("a", "A"),
		models.NewColumn("b", "B"),
		models.NewColumn("c", "C"),
	}
	v := New(Options{Columns: cols})

	v.ToggleColumn("a")
	v.ToggleColumn("a")

	got := v.VisibleColumns()
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestToggleColumn_HiddenColumnKeepsWidth(t *testing.T) {
	cols := []models.ColumnDefinition{
		models.NewColumn("a", "A"),
		models.NewColumn("b", "B"),
	}
	cols[0].Width = "24"
	v := New(Options{Columns: cols})

	v.ToggleColumn("a")
	if v.widths["a"] != "24" {
		t.Errorf("hidden column lost its width: %q", v.widths["a"])
	}
	v.ToggleColumn("a")
	if v.widths["a"] != "24" {
		t.Errorf("re-shown column lost its width: %q", v.widths["a"])
	}
}

func TestSetVisibleColumns(t *testing.T) {
	cols, rows := people()
	v := New(Options{Columns: cols, Rows: rows})

	v.SetVisibleColumns([]string{"age", "bogus"})
	got := v.VisibleColumns()
	if len(got) != 1 || got[0] != "age" {
		t.Errorf("unknown keys should be dropped, got %v", got)
	}

	v.SetVisibleColumns(nil)
	if len(v.VisibleColumns()) != 2 {
		t.Error("empty set should fall back to all columns")
	}
}

func TestExportRows_Modes(t *testing.T) {
	cols, rows := people()
	v := New(Options{Columns: cols, Rows: rows})
	v.ApplyPredicate(func(r models.Row) bool {
		return models.CellString(r["name"]) == "alice"
	})

	if got := v.ExportRows(ExportVisible); len(got) != 1 {
		t.Errorf("visible export should honor the filter, got %d rows", len(got))
	}
	if got := v.ExportRows(ExportAll); len(got) != 3 {
		t.Errorf("all export should bypass the filter, got %d rows", len(got))
	}
}

func TestNew_SeedsWidthsFromSchemaOrEvenSplit(t *testing.T) {
	cols := []models.ColumnDefinition{
		models.NewColumn("a", "A"),
		models.NewColumn("b", "B"),
	}
	cols[0].Width = "30%"
	v := New(Options{Columns: cols})

	if v.widths["a"] != "30%" {
		t.Errorf("schema width not honored: %q", v.widths["a"])
	}
	if v.widths["b"] != "50.00%" {
		t.Errorf("even split expected for unspecified width: %q", v.widths["b"])
	}
}

func TestRowClass(t *testing.T) {
	cols, rows := people()
	v := New(Options{Columns: cols, Rows: rows, RowClass: func(r models.Row) string {
		if models.CellString(r["name"]) == "bob" {
			return "warning"
		}
		return ""
	}})

	if got := v.RowClass(models.Row{"name": "bob"}); got != "warning" {
		t.Errorf("got %q", got)
	}
	if got := v.RowClass(models.Row{"name": "alice"}); got != "" {
		t.Errorf("got %q", got)
	}
}
