package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/unrealemotion/gridview/internal/models"
	"github.com/unrealemotion/gridview/internal/ui/theme"
)

// TableView displays the processed row set with a scrolling window
type TableView struct {
	Theme  theme.Theme
	Width  int
	Height int

	columns []models.ColumnDefinition // visible columns in display order
	widths  map[string]int            // measured cell widths per column key
	rows    []models.Row
	sort    models.SortState

	rowClass  func(models.Row) string
	canResize func(key string) bool

	// Scrolling window state
	TopRow      int
	VisibleRows int
	SelectedRow int
	SelectedCol int
}

// NewTableView creates an empty table view
func NewTableView(th theme.Theme) *TableView {
	return &TableView{
		Theme:  th,
		widths: map[string]int{},
	}
}

// SetData replaces the rendered columns, widths, rows and sort state
func (tv *TableView) SetData(columns []models.ColumnDefinition, widths map[string]int, rows []models.Row, sort models.SortState) {
	tv.columns = columns
	tv.widths = widths
	tv.rows = rows
	tv.sort = sort
	if tv.SelectedRow >= len(rows) {
		tv.SelectedRow = len(rows) - 1
	}
	if tv.SelectedRow < 0 {
		tv.SelectedRow = 0
	}
	if tv.SelectedCol >= len(columns) {
		tv.SelectedCol = len(columns) - 1
	}
	if tv.SelectedCol < 0 {
		tv.SelectedCol = 0
	}
	if tv.TopRow > tv.SelectedRow {
		tv.TopRow = tv.SelectedRow
	}
}

// SetRowClass installs the row class hook used for row tinting
func (tv *TableView) SetRowClass(fn func(models.Row) string) {
	tv.rowClass = fn
}

// SetResizeProbe installs the check deciding which headers render a
// resize handle.
func (tv *TableView) SetResizeProbe(fn func(key string) bool) {
	tv.canResize = fn
}

// SelectedCell returns the key and value under the cursor
func (tv *TableView) SelectedCell() (string, any, bool) {
	if tv.SelectedRow >= len(tv.rows) || tv.SelectedCol >= len(tv.columns) {
		return "", nil, false
	}
	key := tv.columns[tv.SelectedCol].Key
	return key, tv.rows[tv.SelectedRow][key], true
}

// SelectedColumnKey returns the key of the column under the cursor
func (tv *TableView) SelectedColumnKey() (string, bool) {
	if tv.SelectedCol >= len(tv.columns) {
		return "", false
	}
	return tv.columns[tv.SelectedCol].Key, true
}

// HeaderBoundaryAt maps a screen x position on the header row to the
// column whose right edge sits there, for starting a mouse resize.
func (tv *TableView) HeaderBoundaryAt(x int) (string, bool) {
	// Row layout: one leading space, then cells joined by " │ ".
	pos := 1
	for _, col := range tv.columns {
		pos += tv.widths[col.Key]
		if x >= pos && x <= pos+2 {
			if tv.canResize == nil || tv.canResize(col.Key) {
				return col.Key, true
			}
			return "", false
		}
		pos += 3
	}
	return "", false
}

// View renders the table
func (tv *TableView) View() string {
	if len(tv.columns) == 0 {
		return lipgloss.NewStyle().Foreground(tv.Theme.Muted).Render("No columns visible")
	}

	var b strings.Builder

	b.WriteString(tv.renderHeader())
	b.WriteString("\n")
	b.WriteString(tv.renderSeparator())
	b.WriteString("\n")

	tv.VisibleRows = tv.Height - 3 // header + separator + status
	if tv.VisibleRows < 1 {
		tv.VisibleRows = 1
	}

	endRow := tv.TopRow + tv.VisibleRows
	if endRow > len(tv.rows) {
		endRow = len(tv.rows)
	}

	for i := tv.TopRow; i < endRow; i++ {
		b.WriteString(tv.renderRow(tv.rows[i], i == tv.SelectedRow))
		b.WriteString("\n")
	}

	b.WriteString(tv.renderStatus())

	return b.String()
}

func (tv *TableView) renderHeader() string {
	parts := make([]string, 0, len(tv.columns))
	for _, col := range tv.columns {
		width := tv.widths[col.Key]
		label := col.Label
		if tv.sort.Active() && tv.sort.Column == col.Key {
			if tv.sort.Direction == models.SortAsc {
				label += " ▲"
			} else {
				label += " ▼"
			}
		}
		parts = append(parts, pad(label, width, col.Align))
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tv.Theme.TableHeader)
	return headerStyle.Render(" " + strings.Join(parts, " │ ") + " ")
}

func (tv *TableView) renderSeparator() string {
	parts := make([]string, 0, len(tv.columns))
	for _, col := range tv.columns {
		parts = append(parts, strings.Repeat("─", tv.widths[col.Key]))
	}
	return lipgloss.NewStyle().
		Foreground(tv.Theme.Border).
		Render("─" + strings.Join(parts, "─┼─") + "─")
}

func (tv *TableView) renderRow(row models.Row, selected bool) string {
	parts := make([]string, 0, len(tv.columns))
	for _, col := range tv.columns {
		width := tv.widths[col.Key]
		parts = append(parts, pad(displayCell(col, row), width, col.Align))
	}

	line := " " + strings.Join(parts, " │ ") + " "

	if selected {
		return lipgloss.NewStyle().
			Background(tv.Theme.TableRowSelected).
			Foreground(tv.Theme.Foreground).
			Bold(true).
			Render(line)
	}

	if tv.rowClass != nil {
		if class := tv.rowClass(row); class != "" {
			return lipgloss.NewStyle().
				Foreground(tv.Theme.RowClassColor(class)).
				Render(line)
		}
	}
	return line
}

func (tv *TableView) renderStatus() string {
	if len(tv.rows) == 0 {
		return lipgloss.NewStyle().
			Foreground(tv.Theme.Muted).
			Italic(true).
			Render(" no rows")
	}
	endRow := tv.TopRow + tv.VisibleRows
	if endRow > len(tv.rows) {
		endRow = len(tv.rows)
	}
	showing := fmt.Sprintf(" %d-%d of %d rows", tv.TopRow+1, endRow, len(tv.rows))
	return lipgloss.NewStyle().
		Foreground(tv.Theme.Muted).
		Italic(true).
		Render(showing)
}

// displayCell renders one cell for display: a column Render hook wins,
// otherwise booleans show as Yes/No and everything else its string form.
func displayCell(col models.ColumnDefinition, row models.Row) string {
	v := row[col.Key]
	if col.Render != nil {
		return col.Render(v, row)
	}
	if b, ok := v.(bool); ok {
		if b {
			return "Yes"
		}
		return "No"
	}
	return models.CellString(v)
}

func pad(s string, width int, align models.Alignment) string {
	if width < 1 {
		width = 1
	}
	runes := []rune(s)
	if len(runes) > width {
		if width <= 3 {
			return string(runes[:width])
		}
		return string(runes[:width-3]) + "..."
	}
	gap := width - len(runes)
	switch align {
	case models.AlignRight:
		return strings.Repeat(" ", gap) + s
	case models.AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	default:
		return s + strings.Repeat(" ", gap)
	}
}

// MoveSelection moves the row cursor up or down
func (tv *TableView) MoveSelection(delta int) {
	tv.SelectedRow += delta

	if tv.SelectedRow < 0 {
		tv.SelectedRow = 0
	}
	if tv.SelectedRow >= len(tv.rows) {
		tv.SelectedRow = len(tv.rows) - 1
	}
	if tv.SelectedRow < 0 {
		tv.SelectedRow = 0
	}

	if tv.SelectedRow < tv.TopRow {
		tv.TopRow = tv.SelectedRow
	}
	if tv.VisibleRows > 0 && tv.SelectedRow >= tv.TopRow+tv.VisibleRows {
		tv.TopRow = tv.SelectedRow - tv.VisibleRows + 1
	}
}

// MoveColumn moves the column cursor left or right
func (tv *TableView) MoveColumn(delta int) {
	tv.SelectedCol += delta
	if tv.SelectedCol < 0 {
		tv.SelectedCol = 0
	}
	if tv.SelectedCol >= len(tv.columns) {
		tv.SelectedCol = len(tv.columns) - 1
	}
	if tv.SelectedCol < 0 {
		tv.SelectedCol = 0
	}
}

// PageUp moves the window up a page
func (tv *TableView) PageUp() {
	tv.SelectedRow -= tv.VisibleRows
	if tv.SelectedRow < 0 {
		tv.SelectedRow = 0
	}
	tv.TopRow = tv.SelectedRow
}

// PageDown moves the window down a page
func (tv *TableView) PageDown() {
	tv.SelectedRow += tv.VisibleRows
	if tv.SelectedRow >= len(tv.rows) {
		tv.SelectedRow = len(tv.rows) - 1
	}
	if tv.SelectedRow < 0 {
		tv.SelectedRow = 0
	}
	tv.TopRow = tv.SelectedRow
	if tv.TopRow+tv.VisibleRows > len(tv.rows) {
		tv.TopRow = len(tv.rows) - tv.VisibleRows
		if tv.TopRow < 0 {
			tv.TopRow = 0
		}
	}
}
