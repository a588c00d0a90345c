package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/debitsync/debitsync/internal/model"
)

// maxXLSRows caps legacy-workbook reads at the BIFF8 sheet limit.
const maxXLSRows = 65535

// Load reads a statement export into a RawTable, dispatching on the
// file extension. CSV, XLSX, and legacy XLS exports are supported; the
// origin institution does not matter as long as the file yields rows of
// cells.
func Load(path string) (model.RawTable, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(path)
	case ".xlsx":
		return LoadXLSX(path)
	case ".xls":
		return loadXLS(path)
	default:
		return nil, fmt.Errorf("%s: unsupported statement format (want .csv, .xlsx or .xls)", filepath.Base(path))
	}
}

func loadCSV(path string) (model.RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	table, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return table, nil
}

// ReadCSV parses delimited text. Field counts may vary per row, since
// preamble rows rarely match the data width.
func ReadCSV(r io.Reader) (model.RawTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	return model.RawTable(rows), nil
}

// LoadXLSX reads the first sheet of a workbook. Cell values arrive as
// display text; date cells without a date style surface as Excel serial
// numbers, which the schema parser understands.
func LoadXLSX(path string) (model.RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return model.RawTable(rows), nil
}

func loadXLS(path string) (model.RawTable, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	return model.RawTable(wb.ReadAllCells(maxXLSRows)), nil
}
