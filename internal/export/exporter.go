package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/unrealemotion/gridview/internal/models"
)

// bom lets spreadsheet applications detect the encoding
const bom = "\ufeff"

// DefaultBaseName is used when no export base name is configured
const DefaultBaseName = "export"

// Document serializes rows restricted to the given columns, in order,
// into a CSV document: a header row of column labels, then one line per
// row, joined with \n and prefixed with a UTF-8 byte-order mark. With
// no columns the export still proceeds with empty lines rather than
// erroring.
func Document(columns []models.ColumnDefinition, rows []models.Row) string {
	lines := make([]string, 0, len(rows)+1)

	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = quoteField(col.Label)
	}
	lines = append(lines, strings.Join(header, ","))

	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = quoteField(FormatCell(row[col.Key]))
		}
		lines = append(lines, strings.Join(cells, ","))
	}

	return bom + strings.Join(lines, "\n")
}

// FormatCell renders one cell value: nil becomes the empty string,
// booleans become "Yes"/"No", everything else its string form.
func FormatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case bool:
		if x {
			return "Yes"
		}
		return "No"
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// quoteField wraps a field in quotes, doubling internal quotes, if and
// only if it contains a comma, a quote or a newline.
func quoteField(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Filename stamps a base name with the export time:
// {base}_{YYYY-MM-DD_HH-mm-ss}.csv.
func Filename(base string, now time.Time) string {
	if base == "" {
		base = DefaultBaseName
	}
	return fmt.Sprintf("%s_%s.csv", base, now.Format("2006-01-02_15-04-05"))
}

// Write stores a document under dir with a timestamped name and
// returns the full path.
func Write(dir, base, document string, now time.Time) (string, error) {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, Filename(base, now))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if _, err := file.WriteString(document); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return path, nil
}
