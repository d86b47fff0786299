package view

import (
	"testing"

	"github.com/unrealemotion/gridview/internal/models"
)

func TestRedistribute_ConservesPairTotal(t *testing.T) {
	cases := []struct {
		name                string
		left, right, delta  int
		wantLeft, wantRight int
	}{
		{"grow left", 100, 100, 30, 130, 70},
		{"shrink left", 100, 100, -30, 70, 130},
		{"clamp right at min", 100, 100, 70, 150, 50},
		{"clamp left at min", 100, 100, -70, 50, 150},
		{"huge delta still clamps", 100, 100, 500, 150, 50},
		{"zero delta", 80, 120, 0, 80, 120},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			left, right := Redistribute(tc.left, tc.right, tc.delta, 50)
			if left != tc.wantLeft || right != tc.wantRight {
				t.Errorf("got %d/%d, want %d/%d", left, right, tc.wantLeft, tc.wantRight)
			}
			if left+right != tc.left+tc.right {
				t.Errorf("pair total not conserved: %d != %d", left+right, tc.left+tc.right)
			}
		})
	}
}

func resizableView() *View {
	return New(Options{
		Columns: []models.ColumnDefinition{
			models.NewColumn("a", "A"),
			models.NewColumn("b", "B"),
			models.NewColumn("c", "C"),
		},
		AllowResize:    true,
		MinColumnWidth: 5,
	})
}

func TestBeginResize_RebaselinesAllVisibleColumns(t *testing.T) {
	v := resizableView()
	rendered := map[string]int{"a": 40, "b": 30, "c": 30}

	if !v.BeginResize("a", rendered) {
		t.Fatal("resize should start")
	}

	// Every visible column is now pinned to cells, including the one not
	// involved in the drag.
	for key, want := range map[string]string{"a": "40", "b": "30", "c": "30"} {
		if got := v.widths[key]; got != want {
			t.Errorf("width[%s] = %q, want %q", key, got, want)
		}
	}
}

func TestMoveResize_PublishesBothWidths(t *testing.T) {
	v := resizableView()
	v.BeginResize("a", map[string]int{"a": 40, "b": 30, "c": 30})

	v.MoveResize(10)

	if v.widths["a"] != "50" || v.widths["b"] != "20" {
		t.Errorf("got %s/%s, want 50/20", v.widths["a"], v.widths["b"])
	}
	if v.widths["c"] != "30" {
		t.Errorf("uninvolved column moved: %s", v.widths["c"])
	}
}

func TestMoveResize_DeltasAreFromDragStartNotCumulative(t *testing.T) {
	v := resizableView()
	v.BeginResize("a", map[string]int{"a": 40, "b": 30, "c": 30})

	v.MoveResize(10)
	v.MoveResize(5)

	// The second move supersedes the first; both measure from the start.
	if v.widths["a"] != "45" || v.widths["b"] != "25" {
		t.Errorf("got %s/%s, want 45/25", v.widths["a"], v.widths["b"])
	}
}

func TestMoveResize_ClampsAtMinWidth(t *testing.T) {
	v := resizableView()
	v.BeginResize("a", map[string]int{"a": 40, "b": 30, "c": 30})

	v.MoveResize(100)

	if v.widths["a"] != "65" || v.widths["b"] != "5" {
		t.Errorf("got %s/%s, want 65/5", v.widths["a"], v.widths["b"])
	}
}

func TestBeginResize_SingleActiveDrag(t *testing.T) {
	v := resizableView()
	rendered := map[string]int{"a": 40, "b": 30, "c": 30}

	if !v.BeginResize("a", rendered) {
		t.Fatal("first drag should start")
	}
	if v.BeginResize("b", rendered) {
		t.Error("second drag must be refused while the first is active")
	}

	v.EndResize()
	if !v.BeginResize("b", rendered) {
		t.Error("drag should start again after the first ends")
	}
}

func TestBeginResize_Guards(t *testing.T) {
	rendered := map[string]int{"a": 40, "b": 30, "c": 30}

	v := resizableView()
	if v.BeginResize("c", rendered) {
		t.Error("last visible column has no right neighbor")
	}
	if v.BeginResize("nope", rendered) {
		t.Error("unknown column")
	}

	cols := []models.ColumnDefinition{
		models.NewColumn("a", "A"),
		models.NewColumn("b", "B"),
	}
	cols[0].Resizable = false
	v = New(Options{Columns: cols, AllowResize: true})
	if v.BeginResize("a", map[string]int{"a": 40, "b": 30}) {
		t.Error("non-resizable column")
	}

	v = New(Options{Columns: []models.ColumnDefinition{
		models.NewColumn("a", "A"),
		models.NewColumn("b", "B"),
	}})
	if v.BeginResize("a", map[string]int{"a": 40, "b": 30}) {
		t.Error("resize disabled view-wide")
	}
}

func TestCanResize(t *testing.T) {
	v := resizableView()

	if !v.CanResize("a") || !v.CanResize("b") {
		t.Error("interior columns should offer a handle")
	}
	if v.CanResize("c") {
		t.Error("last column must not offer a handle")
	}

	// Hiding c makes b last.
	v.ToggleColumn("c")
	if v.CanResize("b") {
		t.Error("b became last visible, no handle")
	}
}

func TestMeasureWidths_MixedSpecs(t *testing.T) {
	cols := []models.ColumnDefinition{
		models.NewColumn("fixed", "F"),
		models.NewColumn("pct", "P"),
		models.NewColumn("auto", "A"),
	}
	cols[0].Width = "24"
	cols[1].Width = "25%"
	v := New(Options{Columns: cols, MinColumnWidth: 5})

	got := v.MeasureWidths(100)

	if got["fixed"] != 24 {
		t.Errorf("fixed: got %d", got["fixed"])
	}
	if got["pct"] != 25 {
		t.Errorf("pct: got %d", got["pct"])
	}
	if got["auto"] != 51 {
		t.Errorf("auto should take the remainder, got %d", got["auto"])
	}
}

func TestMeasureWidths_FlooredAtMin(t *testing.T) {
	cols := []models.ColumnDefinition{
		models.NewColumn("a", "A"),
		models.NewColumn("b", "B"),
	}
	cols[0].Width = "2"
	cols[1].MinWidth = 12
	cols[1].Width = "8"
	v := New(Options{Columns: cols, MinColumnWidth: 5})

	got := v.MeasureWidths(100)

	if got["a"] != 5 {
		t.Errorf("shared min floor: got %d, want 5", got["a"])
	}
	if got["b"] != 12 {
		t.Errorf("per-column min floor: got %d, want 12", got["b"])
	}
}
