package tabular

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"lastmile/domain/core"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deliveries.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadTableCSV(t *testing.T) {
	path := writeTempCSV(t, " Delivery_Time ,Weather\n30, Sunny \n45,Rainy\n")

	table, err := NewDataReader(path).ReadTable()
	if err != nil {
		t.Fatalf("ReadTable() error: %v", err)
	}

	if len(table.Headers) != 2 || table.Headers[0] != "Delivery_Time" {
		t.Errorf("headers not trimmed: %v", table.Headers)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}
	if got := table.Rows[0]["Weather"]; got != "Sunny" {
		t.Errorf("cell not trimmed: %q", got)
	}
}

func TestReadTableMissingFile(t *testing.T) {
	_, err := NewDataReader(filepath.Join(t.TempDir(), "nope.csv")).ReadTable()
	if !errors.Is(err, core.ErrMissingSource) {
		t.Errorf("expected ErrMissingSource, got %v", err)
	}
}

func TestReadTableHeaderOnly(t *testing.T) {
	// A header row with no data is a valid, empty table.
	path := writeTempCSV(t, "Delivery_Time,Weather\n")

	table, err := NewDataReader(path).ReadTable()
	if err != nil {
		t.Fatalf("ReadTable() error: %v", err)
	}
	if len(table.Rows) != 0 {
		t.Errorf("got %d rows, want 0", len(table.Rows))
	}
}

func TestReadTableRaggedRows(t *testing.T) {
	path := writeTempCSV(t, "Delivery_Time,Weather,Traffic\n30,Sunny\n45,Rainy,Low,extra\n")

	table, err := NewDataReader(path).ReadTable()
	if err != nil {
		t.Fatalf("ReadTable() error: %v", err)
	}
	if got := table.Rows[0]["Traffic"]; got != "" {
		t.Errorf("short row should read missing cells as empty, got %q", got)
	}
	if got := table.Rows[1]["Traffic"]; got != "Low" {
		t.Errorf("long row should keep in-range cells, got %q", got)
	}
}

func TestReadTableUnparseable(t *testing.T) {
	path := writeTempCSV(t, "Delivery_Time,Weather\n\"unterminated,30\n")

	_, err := NewDataReader(path).ReadTable()
	if !errors.Is(err, core.ErrUnparseableSource) {
		t.Errorf("expected ErrUnparseableSource, got %v", err)
	}
}
