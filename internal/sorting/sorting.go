package sorting

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/unrealemotion/gridview/internal/models"
)

// Apply returns rows ordered by state. An inactive state returns the
// input untouched; otherwise the sort is stable and operates on a copy,
// so repeated re-sorts never visibly reorder equal-valued rows and the
// caller's slice is never mutated.
//
// Numbers compare numerically and booleans as false < true; everything
// else (nil included, as the empty string) compares as lowercase strings
// under locale-aware collation. Descending negates the comparison.
func Apply(rows []models.Row, state models.SortState) []models.Row {
	if !state.Active() {
		return rows
	}

	out := make([]models.Row, len(rows))
	copy(out, rows)

	col := collate.New(language.Und)
	desc := state.Direction == models.SortDesc

	sort.SliceStable(out, func(i, j int) bool {
		r := compare(col, out[i][state.Column], out[j][state.Column])
		if desc {
			return r > 0
		}
		return r < 0
	})

	return out
}

func compare(col *collate.Collator, a, b any) int {
	if an, ok := toNumber(a); ok {
		if bn, ok := toNumber(b); ok {
			switch {
			case an < bn:
				return -1
			case an > bn:
				return 1
			default:
				return 0
			}
		}
	}
	if ab, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ab == bb:
				return 0
			case !ab:
				return -1
			default:
				return 1
			}
		}
	}
	return col.CompareString(
		strings.ToLower(models.CellString(a)),
		strings.ToLower(models.CellString(b)),
	)
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
