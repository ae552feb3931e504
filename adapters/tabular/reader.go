package tabular

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"lastmile/domain/core"

	"github.com/xuri/excelize/v2"
)

// RawRow is one source row as a header-to-cell map. No invariants; cells may
// be empty or malformed.
type RawRow map[string]string

// Table is the raw tabular input before any cleaning.
type Table struct {
	Headers []string
	Rows    []RawRow
}

// DataReader reads delivery data from CSV or Excel files.
type DataReader struct {
	filePath string
	fileType string // "csv" or "xlsx"
}

// NewDataReader creates a reader for the given file, picking the format from
// the extension. Anything that is not .xlsx/.xls is treated as delimited text.
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "csv"
	if ext == ".xlsx" || ext == ".xls" {
		fileType = "xlsx"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadTable reads the file into a Table. The header row is required; a file
// with a header and no data rows is a valid, empty table.
func (r *DataReader) ReadTable() (*Table, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, core.NewMissingSourceError(r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readExcel()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

func (r *DataReader) readCSV() (*Table, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, core.NewUnparseableSourceError(r.filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Tolerate ragged rows; short rows become missing cells downstream.
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, core.NewUnparseableSourceError(r.filePath, err)
	}
	log.Printf("[DataReader] CSV file read (%d rows including header)", len(rows))

	return r.buildTable(rows)
}

func (r *DataReader) readExcel() (*Table, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, core.NewUnparseableSourceError(r.filePath, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, core.NewUnparseableSourceError(r.filePath, fmt.Errorf("workbook has no sheets"))
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, core.NewUnparseableSourceError(r.filePath, err)
	}
	log.Printf("[DataReader] Excel sheet %q read (%d rows including header)", sheets[0], len(rows))

	return r.buildTable(rows)
}

// buildTable converts raw string rows into a Table, trimming headers and
// cells. The first row is always the header row.
func (r *DataReader) buildTable(rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, core.NewUnparseableSourceError(r.filePath, fmt.Errorf("missing header row"))
	}

	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = strings.TrimSpace(header)
	}

	dataRows := make([]RawRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rowData := make(RawRow, len(headers))
		for j, cell := range row {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, rowData)
	}

	return &Table{Headers: headers, Rows: dataRows}, nil
}
