package datasource

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCSV_SchemaAndTypedValues(t *testing.T) {
	path := writeCSV(t, "name,age,score,active\nalice,30,91.5,true\nbob,25,88,false\n")

	columns, rows, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}

	if len(columns) != 4 {
		t.Fatalf("expected 4 columns, got %d", len(columns))
	}
	if columns[0].Key != "name" || columns[0].Label != "name" {
		t.Errorf("unexpected first column: %+v", columns[0])
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["name"] != "alice" {
		t.Errorf("string cell: %v", rows[0]["name"])
	}
	if rows[0]["age"] != int64(30) {
		t.Errorf("integer cell should infer int64: %T %v", rows[0]["age"], rows[0]["age"])
	}
	if rows[0]["score"] != 91.5 {
		t.Errorf("float cell: %v", rows[0]["score"])
	}
	if rows[0]["active"] != true || rows[1]["active"] != false {
		t.Errorf("bool cells: %v, %v", rows[0]["active"], rows[1]["active"])
	}
}

func TestLoadCSV_StripsLeadingBOM(t *testing.T) {
	path := writeCSV(t, "\ufeffname\nalice\n")

	columns, _, err := LoadCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if columns[0].Key != "name" {
		t.Errorf("BOM leaked into the first key: %q", columns[0].Key)
	}
}

func TestLoadCSV_ShortRecordsLeaveCellsAbsent(t *testing.T) {
	path := writeCSV(t, "a,b,c\n1,2\n")

	_, rows, err := LoadCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, present := rows[0]["c"]; present {
		t.Error("missing trailing field should stay absent, not empty")
	}
	if rows[0]["a"] != int64(1) || rows[0]["b"] != int64(2) {
		t.Errorf("present fields mangled: %v", rows[0])
	}
}

func TestLoadCSV_EmptyCellStaysString(t *testing.T) {
	path := writeCSV(t, "a\n\n")

	_, rows, err := LoadCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if rows[0]["a"] != "" {
		t.Errorf("empty cell: %T %v", rows[0]["a"], rows[0]["a"])
	}
}

func TestLoadCSV_MissingFile(t *testing.T) {
	if _, _, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}
