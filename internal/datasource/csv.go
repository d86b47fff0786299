package datasource

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/unrealemotion/gridview/internal/models"
)

// LoadCSV reads a CSV file into a column schema and row collection. The
// first record is the header; its fields become column keys and labels.
// Cell values are type-inferred so numeric and boolean columns sort and
// export the way typed data does.
func LoadCSV(path string) ([]models.ColumnDefinition, []models.Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	columns := make([]models.ColumnDefinition, len(header))
	for i, key := range header {
		columns[i] = models.NewColumn(key, key)
	}

	var rows []models.Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		row := make(models.Row, len(header))
		for i, key := range header {
			if i < len(record) {
				row[key] = inferValue(record[i])
			}
		}
		rows = append(rows, row)
	}

	return columns, rows, nil
}

// inferValue parses a cell into int64, float64 or bool where the text
// allows it, otherwise keeps the string.
func inferValue(s string) any {
	if s == "" {
		return ""
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}
