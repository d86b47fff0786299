package datasource

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/unrealemotion/gridview/internal/models"
)

// QueryRows runs a SQL query against a Postgres database and adapts
// the result set into a column schema and row collection.
func QueryRows(ctx context.Context, dsn, query string) ([]models.ColumnDefinition, []models.Row, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect: %w", err)
	}
	defer pool.Close()

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	fieldDescs := rows.FieldDescriptions()
	columns := make([]models.ColumnDefinition, len(fieldDescs))
	keys := make([]string, len(fieldDescs))
	for i, fd := range fieldDescs {
		keys[i] = string(fd.Name)
		columns[i] = models.NewColumn(keys[i], keys[i])
	}

	var result []models.Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read row: %w", err)
		}

		row := make(models.Row, len(values))
		for i, v := range values {
			row[keys[i]] = normalizeValue(v)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("row iteration failed: %w", err)
	}

	return columns, result, nil
}

// normalizeValue flattens driver-specific values into the plain kinds
// the pipeline understands, rendering composite values as JSON.
func normalizeValue(v any) any {
	switch x := v.(type) {
	case map[string]any, []any:
		jsonBytes, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprintf("%v", x)
		}
		return string(jsonBytes)
	case []byte:
		return string(x)
	default:
		return v
	}
}
