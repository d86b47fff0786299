package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"github.com/unrealemotion/gridview/internal/app"
	"github.com/unrealemotion/gridview/internal/config"
	"github.com/unrealemotion/gridview/internal/datasource"
	"github.com/unrealemotion/gridview/internal/export"
	"github.com/unrealemotion/gridview/internal/history"
	"github.com/unrealemotion/gridview/internal/models"
	"github.com/unrealemotion/gridview/internal/view"
)

func main() {
	csvPath := flag.String("csv", "", "load rows from a CSV file")
	dsn := flag.String("dsn", "", "Postgres connection string")
	query := flag.String("query", "", "SQL query to load rows from (requires --dsn)")
	exportMode := flag.String("export", "", "headless export instead of the TUI: visible or all")
	outDir := flag.String("out", "", "override the export directory")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Printf("Warning: Could not load config: %v (using defaults)\n", err)
		cfg = config.GetDefaults()
	}
	if *outDir != "" {
		cfg.Export.Directory = *outDir
	}

	columns, rows, err := loadData(*csvPath, *dsn, *query)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(1)
	}

	if *exportMode != "" {
		if err := headlessExport(cfg, columns, rows, *exportMode); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	a := app.New(cfg, columns, rows, nil)

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.MouseEnabled {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(a, opts...)
	a.SetSender(p.Send)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}

func loadData(csvPath, dsn, query string) ([]models.ColumnDefinition, []models.Row, error) {
	switch {
	case csvPath != "":
		return datasource.LoadCSV(csvPath)
	case dsn != "" && query != "":
		return datasource.QueryRows(context.Background(), dsn, query)
	default:
		return nil, nil, fmt.Errorf("no data source: pass --csv, or --dsn with --query")
	}
}

func headlessExport(cfg *config.Config, columns []models.ColumnDefinition, rows []models.Row, mode string) error {
	m := view.ExportMode(mode)
	if m != view.ExportVisible && m != view.ExportAll {
		return fmt.Errorf("invalid export mode %q: want visible or all", mode)
	}

	v := view.New(view.Options{Columns: columns, Rows: rows})
	document := export.Document(v.VisibleColumnDefs(), v.ExportRows(m))
	path, err := export.Write(cfg.Export.Directory, cfg.Export.BaseName, document, time.Now())
	if err != nil {
		return err
	}
	fmt.Println(path)

	if cfg.History.Enabled {
		if histPath, err := cfg.HistoryPath(); err == nil {
			if store, err := history.NewStore(histPath); err == nil {
				_ = store.Add(history.Entry{
					FilePath:    path,
					Mode:        mode,
					RowCount:    len(rows),
					ColumnCount: len(columns),
				})
				_ = store.Close()
			}
		}
	}
	return nil
}
