package history

import (
	"database/sql"
	_ "embed"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Entry records one completed CSV export
type Entry struct {
	ID          int
	FilePath    string
	Mode        string // "visible" or "all"
	RowCount    int
	ColumnCount int
	ExportedAt  time.Time
}

// Store persists export history
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if needed) the history database at path
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(schemaSQL)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Add records a completed export
func (s *Store) Add(entry Entry) error {
	_, err := s.db.Exec(`
		INSERT INTO export_history
		(file_path, mode, row_count, column_count)
		VALUES (?, ?, ?, ?)`,
		entry.FilePath,
		entry.Mode,
		entry.RowCount,
		entry.ColumnCount,
	)
	return err
}

// Recent retrieves the most recent exports, newest first
func (s *Store) Recent(limit int) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, file_path, mode, row_count, column_count, exported_at
		FROM export_history
		ORDER BY exported_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var exportedAt string

		err := rows.Scan(
			&e.ID,
			&e.FilePath,
			&e.Mode,
			&e.RowCount,
			&e.ColumnCount,
			&exportedAt,
		)
		if err != nil {
			return nil, err
		}

		e.ExportedAt, _ = time.Parse("2006-01-02 15:04:05", exportedAt)

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
