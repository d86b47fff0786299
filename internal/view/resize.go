package view

import (
	"strconv"
	"strings"
)

// Redistribute moves delta cells between two adjacent columns, holding
// their combined width constant. Either side underflowing min is
// clamped and the remainder goes to the other side, so the pair total
// is conserved in every case.
func Redistribute(left, right, delta, min int) (int, int) {
	total := left + right
	newLeft := left + delta
	newRight := right - delta
	if newLeft < min {
		newLeft = min
		newRight = total - min
	} else if newRight < min {
		newRight = min
		newLeft = total - min
	}
	return newLeft, newRight
}

// drag tracks the one resize allowed to be active at a time
type drag struct {
	column     string // key of the dragged column
	neighbor   string // key of its immediate right visible neighbor
	leftStart  int
	rightStart int
}

// BeginResize starts a drag on column key. Before anything moves, the
// current rendered width of every visible column is written back into
// the width map so percentage/auto widths become fixed cell counts and
// uninvolved columns cannot reflow as a side effect of the pair
// adjustment. Returns false when resizing is suppressed: toggle off,
// column non-resizable, no right neighbor, or a drag already active.
func (v *View) BeginResize(key string, rendered map[string]int) bool {
	if !v.allowResize || v.drag != nil {
		return false
	}
	col, ok := v.columnByKey(key)
	if !ok || !col.Resizable {
		return false
	}
	neighbor := v.rightNeighbor(key)
	if neighbor == "" {
		return false
	}

	// Re-baseline every visible column, not just the pair.
	for _, k := range v.visible {
		if w, ok := rendered[k]; ok {
			v.widths[k] = strconv.Itoa(w)
		}
	}

	v.drag = &drag{
		column:     key,
		neighbor:   neighbor,
		leftStart:  rendered[key],
		rightStart: rendered[neighbor],
	}
	return true
}

// MoveResize applies the pointer delta of the active drag, publishing
// both new widths together. No-op without an active drag.
func (v *View) MoveResize(delta int) {
	if v.drag == nil {
		return
	}
	left, right := Redistribute(v.drag.leftStart, v.drag.rightStart, delta, v.minWidth)
	v.widths[v.drag.column] = strconv.Itoa(left)
	v.widths[v.drag.neighbor] = strconv.Itoa(right)
}

// EndResize finishes the active drag. Until this fires, attempts to
// start another drag have no effect.
func (v *View) EndResize() {
	v.drag = nil
}

// Resizing reports whether a drag is active and for which column
func (v *View) Resizing() (string, bool) {
	if v.drag == nil {
		return "", false
	}
	return v.drag.column, true
}

// CanResize reports whether column key currently offers a resize
// handle. The last visible column never does: there is no right
// neighbor to borrow width from.
func (v *View) CanResize(key string) bool {
	if !v.allowResize {
		return false
	}
	col, ok := v.columnByKey(key)
	if !ok || !col.Resizable {
		return false
	}
	return v.rightNeighbor(key) != ""
}

// rightNeighbor returns the key of the next visible column after key,
// or "" when key is hidden or last.
func (v *View) rightNeighbor(key string) string {
	for i, k := range v.visible {
		if k == key {
			if i+1 < len(v.visible) {
				return v.visible[i+1]
			}
			return ""
		}
	}
	return ""
}

// MeasureWidths resolves the width map into concrete cell counts for
// every visible column given the total width available. Fixed entries
// ("24") are taken as-is, percentages ("25%") against total, anything
// else shares the space left over evenly. Every column is floored at
// the shared minimum and its own MinWidth.
func (v *View) MeasureWidths(total int) map[string]int {
	out := make(map[string]int, len(v.visible))
	var auto []string
	used := 0

	for _, key := range v.visible {
		spec := v.widths[key]
		switch {
		case strings.HasSuffix(spec, "%"):
			pct, err := strconv.ParseFloat(strings.TrimSuffix(spec, "%"), 64)
			if err != nil {
				auto = append(auto, key)
				continue
			}
			out[key] = int(float64(total) * pct / 100)
			used += out[key]
		case spec != "":
			n, err := strconv.Atoi(spec)
			if err != nil {
				auto = append(auto, key)
				continue
			}
			out[key] = n
			used += n
		default:
			auto = append(auto, key)
		}
	}

	if len(auto) > 0 {
		remaining := total - used
		share := remaining / len(auto)
		for _, key := range auto {
			out[key] = share
		}
	}

	for _, key := range v.visible {
		floor := v.minWidth
		if col, ok := v.columnByKey(key); ok && col.MinWidth > floor {
			floor = col.MinWidth
		}
		if out[key] < floor {
			out[key] = floor
		}
	}
	return out
}
