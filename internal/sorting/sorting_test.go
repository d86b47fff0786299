package sorting

import (
	"testing"

	"github.com/unrealemotion/gridview/internal/models"
)

func numbers(rows []models.Row) []any {
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = r["n"]
	}
	return out
}

func TestApply_NumericAscending(t *testing.T) {
	rows := []models.Row{{"n": 3}, {"n": 1}, {"n": 2}}

	got := Apply(rows, models.SortState{Column: "n", Direction: models.SortAsc})

	want := []any{1, 2, 3}
	for i, v := range numbers(got) {
		if v != want[i] {
			t.Fatalf("position %d: got %v, want %v", i, v, want[i])
		}
	}
}

func TestApply_NumericDescending(t *testing.T) {
	rows := []models.Row{{"n": 3}, {"n": 1}, {"n": 2}}

	got := Apply(rows, models.SortState{Column: "n", Direction: models.SortDesc})

	want := []any{3, 2, 1}
	for i, v := range numbers(got) {
		if v != want[i] {
			t.Fatalf("position %d: got %v, want %v", i, v, want[i])
		}
	}
}

func TestApply_InactiveStateReturnsInputOrder(t *testing.T) {
	rows := []models.Row{{"n": 3}, {"n": 1}, {"n": 2}}

	got := Apply(rows, models.SortState{})

	for i := range rows {
		if got[i]["n"] != rows[i]["n"] {
			t.Fatalf("position %d reordered without an active sort", i)
		}
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	rows := []models.Row{{"n": 3}, {"n": 1}, {"n": 2}}

	_ = Apply(rows, models.SortState{Column: "n", Direction: models.SortAsc})

	want := []any{3, 1, 2}
	for i, v := range numbers(rows) {
		if v != want[i] {
			t.Fatalf("input slice mutated at %d: got %v, want %v", i, v, want[i])
		}
	}
}

func TestApply_StableForEqualKeys(t *testing.T) {
	rows := []models.Row{
		{"n": 1, "tag": "a"},
		{"n": 1, "tag": "b"},
		{"n": 1, "tag": "c"},
	}

	got := Apply(rows, models.SortState{Column: "n", Direction: models.SortAsc})

	for i, want := range []string{"a", "b", "c"} {
		if got[i]["tag"] != want {
			t.Fatalf("equal keys reordered: position %d is %v", i, got[i]["tag"])
		}
	}
}

func TestApply_StringCaseInsensitive(t *testing.T) {
	rows := []models.Row{{"s": "Banana"}, {"s": "apple"}, {"s": "Cherry"}}

	got := Apply(rows, models.SortState{Column: "s", Direction: models.SortAsc})

	for i, want := range []string{"apple", "Banana", "Cherry"} {
		if got[i]["s"] != want {
			t.Fatalf("position %d: got %v, want %s", i, got[i]["s"], want)
		}
	}
}

func TestApply_BooleansFalseBeforeTrue(t *testing.T) {
	rows := []models.Row{{"b": true}, {"b": false}, {"b": true}}

	got := Apply(rows, models.SortState{Column: "b", Direction: models.SortAsc})

	want := []bool{false, true, true}
	for i := range want {
		if got[i]["b"] != want[i] {
			t.Fatalf("position %d: got %v, want %v", i, got[i]["b"], want[i])
		}
	}
}

func TestApply_MixedNumericTypesCompareNumerically(t *testing.T) {
	rows := []models.Row{{"n": float64(2.5)}, {"n": int64(10)}, {"n": 1}}

	got := Apply(rows, models.SortState{Column: "n", Direction: models.SortAsc})

	want := []any{1, float64(2.5), int64(10)}
	for i := range want {
		if got[i]["n"] != want[i] {
			t.Fatalf("position %d: got %v, want %v", i, got[i]["n"], want[i])
		}
	}
}

func TestApply_NilSortsAsEmptyString(t *testing.T) {
	rows := []models.Row{{"s": "b"}, {"s": nil}, {"s": "a"}}

	got := Apply(rows, models.SortState{Column: "s", Direction: models.SortAsc})

	if got[0]["s"] != nil {
		t.Errorf("nil should sort first ascending, got %v", got[0]["s"])
	}
	if got[1]["s"] != "a" || got[2]["s"] != "b" {
		t.Errorf("unexpected order: %v, %v", got[1]["s"], got[2]["s"])
	}
}
