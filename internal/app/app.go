package app

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/unrealemotion/gridview/internal/config"
	"github.com/unrealemotion/gridview/internal/export"
	"github.com/unrealemotion/gridview/internal/filter"
	"github.com/unrealemotion/gridview/internal/history"
	"github.com/unrealemotion/gridview/internal/models"
	"github.com/unrealemotion/gridview/internal/ui/components"
	"github.com/unrealemotion/gridview/internal/ui/help"
	"github.com/unrealemotion/gridview/internal/ui/theme"
	"github.com/unrealemotion/gridview/internal/view"
)

// predicateAppliedMsg carries a freshly published filter predicate.
// The filter session publishes from its timer goroutine; the message
// crosses back onto the program loop through Program.Send.
type predicateAppliedMsg struct {
	predicate filter.Predicate
}

// filterClearedMsg is sent when the filter session was reset
type filterClearedMsg struct{}

// exportDoneMsg reports a finished export
type exportDoneMsg struct {
	path string
	rows int
	err  error
}

// App is the main application model
type App struct {
	config  *config.Config
	theme   theme.Theme
	grid    *view.View
	session *filter.Session

	tableView     *components.TableView
	filterBuilder *components.FilterBuilder
	columnPicker  *components.ColumnPicker

	histStore *history.Store
	send      func(tea.Msg)

	width  int
	height int

	showFilter bool
	showPicker bool
	showHelp   bool

	status      string
	statusIsErr bool

	// Mouse resize drag state
	dragging  bool
	dragStart int
}

// New creates the application over a loaded column schema and row set
func New(cfg *config.Config, columns []models.ColumnDefinition, rows []models.Row, rowClass func(models.Row) string) *App {
	if cfg == nil {
		cfg = config.GetDefaults()
	}
	th := theme.GetTheme(cfg.UI.Theme)

	a := &App{
		config: cfg,
		theme:  th,
		width:  100,
		height: 30,
	}

	a.grid = view.New(view.Options{
		Columns:            columns,
		Rows:               rows,
		MinColumnWidth:     cfg.Table.MinColumnWidth,
		RowClass:           rowClass,
		ShowExport:         cfg.Export.Enabled,
		ShowColumnSelector: cfg.Table.ShowColumnSelector,
		AllowResize:        cfg.Table.AllowResize,
	})

	keys := make([]string, len(columns))
	for i, col := range columns {
		keys[i] = col.Key
	}
	a.session = filter.NewSession(keys,
		func(p filter.Predicate) { a.post(predicateAppliedMsg{predicate: p}) },
		func() { a.post(filterClearedMsg{}) },
	)
	a.session.SetAutoApply(cfg.Filter.AutoApply)
	if cfg.Filter.DebounceMs > 0 {
		a.session.SetQuiescence(time.Duration(cfg.Filter.DebounceMs) * time.Millisecond)
	}

	a.tableView = components.NewTableView(th)
	a.tableView.SetRowClass(a.grid.RowClass)
	a.tableView.SetResizeProbe(a.grid.CanResize)
	a.filterBuilder = components.NewFilterBuilder(th, a.session)
	a.columnPicker = components.NewColumnPicker(th, columns, a.grid.IsVisible, a.toggleColumn)

	if cfg.History.Enabled {
		if path, err := cfg.HistoryPath(); err == nil {
			if store, err := history.NewStore(path); err == nil {
				a.histStore = store
			}
		}
	}

	a.refreshTable()
	return a
}

// SetSender installs the function used to deliver messages from the
// filter session's timer goroutine into the program loop. Must be set
// before the program runs.
func (a *App) SetSender(send func(tea.Msg)) {
	a.send = send
}

func (a *App) post(msg tea.Msg) {
	if a.send != nil {
		a.send(msg)
	}
}

func (a *App) toggleColumn(key string) bool {
	ok := a.grid.ToggleColumn(key)
	a.refreshTable()
	return ok
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.refreshTable()
		return a, nil

	case predicateAppliedMsg:
		a.grid.ApplyPredicate(msg.predicate)
		a.refreshTable()
		a.setStatus(fmt.Sprintf("filter applied (%d rows)", len(a.grid.Rows())), false)
		return a, nil

	case filterClearedMsg:
		a.setStatus("filter cleared", false)
		return a, nil

	case exportDoneMsg:
		if msg.err != nil {
			a.setStatus("export failed: "+msg.err.Error(), true)
		} else {
			a.setStatus(fmt.Sprintf("exported %d rows to %s", msg.rows, msg.path), false)
		}
		return a, nil

	case components.FilterAppliedMsg:
		a.showFilter = false
		return a, nil

	case components.CloseFilterBuilderMsg:
		a.showFilter = false
		return a, nil

	case components.CloseColumnPickerMsg:
		a.showPicker = false
		return a, nil

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit always works, even inside overlays.
	switch msg.String() {
	case "ctrl+c":
		return a, a.quit()
	}

	if a.showHelp {
		switch msg.String() {
		case "?", "esc", "q":
			a.showHelp = false
		}
		return a, nil
	}

	if a.showFilter {
		var cmd tea.Cmd
		a.filterBuilder, cmd = a.filterBuilder.Update(msg)
		return a, cmd
	}

	if a.showPicker {
		var cmd tea.Cmd
		a.columnPicker, cmd = a.columnPicker.Update(msg)
		return a, cmd
	}

	switch msg.String() {
	case "q":
		return a, a.quit()
	case "?":
		a.showHelp = true
	case "f":
		a.showFilter = true
	case "v":
		if a.grid.ShowColumnSelector() {
			a.showPicker = true
		}
	case "R":
		a.session.Reset()
	case "up", "k":
		a.tableView.MoveSelection(-1)
	case "down", "j":
		a.tableView.MoveSelection(1)
	case "left", "h":
		a.tableView.MoveColumn(-1)
	case "right", "l":
		a.tableView.MoveColumn(1)
	case "pgup":
		a.tableView.PageUp()
	case "pgdown":
		a.tableView.PageDown()
	case "s":
		if key, ok := a.tableView.SelectedColumnKey(); ok {
			a.grid.ToggleSort(key)
			a.refreshTable()
		}
	case "<":
		a.nudgeColumn(-1)
	case ">":
		a.nudgeColumn(1)
	case "y":
		if _, value, ok := a.tableView.SelectedCell(); ok {
			if err := clipboard.WriteAll(models.CellString(value)); err != nil {
				a.setStatus("copy failed: "+err.Error(), true)
			} else {
				a.setStatus("cell copied", false)
			}
		}
	case "e":
		if a.grid.ShowExport() {
			return a, a.exportCmd(view.ExportVisible)
		}
	case "E":
		if a.grid.ShowExport() {
			return a, a.exportCmd(view.ExportAll)
		}
	}
	return a, nil
}

// nudgeColumn is the keyboard fallback for resizing: a one-cell drag
// on the selected column, begun and ended in a single step.
func (a *App) nudgeColumn(delta int) {
	key, ok := a.tableView.SelectedColumnKey()
	if !ok {
		return
	}
	if !a.grid.BeginResize(key, a.grid.MeasureWidths(a.tableWidth())) {
		return
	}
	a.grid.MoveResize(delta)
	a.grid.EndResize()
	a.refreshTable()
}

func (a *App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !a.config.UI.MouseEnabled || a.showFilter || a.showPicker || a.showHelp {
		return a, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || msg.Y != 0 {
			return a, nil
		}
		if key, ok := a.tableView.HeaderBoundaryAt(msg.X); ok {
			if a.grid.BeginResize(key, a.grid.MeasureWidths(a.tableWidth())) {
				a.dragging = true
				a.dragStart = msg.X
			}
		}
	case tea.MouseActionMotion:
		if a.dragging {
			a.grid.MoveResize(msg.X - a.dragStart)
			a.refreshTable()
		}
	case tea.MouseActionRelease:
		if a.dragging {
			a.grid.EndResize()
			a.dragging = false
			a.refreshTable()
		}
	}
	return a, nil
}

func (a *App) exportCmd(mode view.ExportMode) tea.Cmd {
	rows := a.grid.ExportRows(mode)
	columns := a.grid.VisibleColumnDefs()
	dir := a.config.Export.Directory
	base := a.config.Export.BaseName
	store := a.histStore

	return func() tea.Msg {
		document := export.Document(columns, rows)
		path, err := export.Write(dir, base, document, time.Now())
		if err != nil {
			return exportDoneMsg{err: err}
		}
		if store != nil {
			_ = store.Add(history.Entry{
				FilePath:    path,
				Mode:        string(mode),
				RowCount:    len(rows),
				ColumnCount: len(columns),
			})
		}
		return exportDoneMsg{path: path, rows: len(rows)}
	}
}

// quit tears the session down so no armed debounce fires after the
// program is gone, then stops the program.
func (a *App) quit() tea.Cmd {
	if a.dragging {
		a.grid.EndResize()
		a.dragging = false
	}
	a.session.Close()
	if a.histStore != nil {
		_ = a.histStore.Close()
	}
	return tea.Quit
}

func (a *App) setStatus(text string, isErr bool) {
	a.status = text
	a.statusIsErr = isErr
}

func (a *App) tableWidth() int {
	// Cell content width: borders and per-column separators come on top.
	w := a.width - 4*len(a.grid.VisibleColumns())
	if w < 20 {
		w = 20
	}
	return w
}

func (a *App) refreshTable() {
	a.tableView.Width = a.width
	a.tableView.Height = a.height - 2
	a.tableView.SetData(
		a.grid.VisibleColumnDefs(),
		a.grid.MeasureWidths(a.tableWidth()),
		a.grid.Rows(),
		a.grid.SortState(),
	)
}

// View implements tea.Model
func (a *App) View() string {
	if a.showHelp {
		return help.Render(a.width, a.height)
	}

	main := a.tableView.View()

	if a.showFilter {
		overlay := a.filterBuilder.View()
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, overlay)
	}
	if a.showPicker {
		overlay := a.columnPicker.View()
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, overlay)
	}

	return main + "\n" + a.renderStatusBar()
}

func (a *App) renderStatusBar() string {
	style := lipgloss.NewStyle().Foreground(a.theme.Muted)
	if a.statusIsErr {
		style = lipgloss.NewStyle().Foreground(a.theme.Error)
	}

	left := a.status
	if left == "" {
		left = "f filter · v columns · s sort · e export · ? help"
	}

	sortInfo := "unsorted"
	if state := a.grid.SortState(); state.Active() {
		sortInfo = state.Column + " " + string(state.Direction)
	}
	right := fmt.Sprintf("%d/%d rows · %s", len(a.grid.Rows()), len(a.grid.RawRows()), sortInfo)

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return style.Render(fmt.Sprintf(" %s%*s ", left, gap+lipgloss.Width(right), right))
}
