// Package parser loads wide-format tables and reshapes them into series.
package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/polioviz-go/pkg/polioviz/models"
	"github.com/xuri/excelize/v2"
)

// LoadOptions configures table loading.
type LoadOptions struct {
	// IDColumn is the header identifying each row. Empty means the first column.
	IDColumn string
	// Sheet is the worksheet to read from workbook inputs. Empty means the first sheet.
	Sheet string
}

// LoadTable reads a table from a .csv or .xlsx file.
func LoadTable(path string, opts LoadOptions) (*models.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer fh.Close()
		return ReadCSV(fh, filepath.Base(path), opts.IDColumn)
	case ".xlsx", ".xlsm":
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ReadXLSX(f, opts.Sheet, opts.IDColumn)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ReadCSV reads a comma-separated table whose first line is the header.
func ReadCSV(r io.Reader, name, idColumn string) (*models.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return buildTable(name, records, idColumn)
}

// ReadXLSX reads a table from a worksheet whose first row is the header.
func ReadXLSX(f *excelize.File, sheetName, idColumn string) (*models.Table, error) {
	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrEmptyTable
		}
		sheetName = sheets[0]
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	return buildTable(sheetName, rows, idColumn)
}

// buildTable maps each record onto the header. Short records leave the
// remaining cells empty; a repeated header keeps its last cell.
func buildTable(name string, records [][]string, idColumn string) (*models.Table, error) {
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyTable)
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	if idColumn == "" {
		idColumn = header[0]
	}

	t := &models.Table{
		Name:     name,
		Columns:  header,
		IDColumn: idColumn,
	}
	if !t.HasColumn(idColumn) {
		return nil, fmt.Errorf("%s: %w: %q", name, ErrNoIDColumn, idColumn)
	}

	for _, record := range records[1:] {
		if isBlank(record) {
			continue
		}
		row := make(models.RawRow, len(header))
		for colIdx, h := range header {
			// A repeated header keeps the first column's cell.
			if _, seen := row[h]; seen {
				continue
			}
			cell := ""
			if colIdx < len(record) {
				cell = record[colIdx]
			}
			row[h] = cell
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
