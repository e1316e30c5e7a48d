package logparse

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound is returned when the workbook has no sheet with the
// requested name.
var ErrSheetNotFound = errors.New("sheet not found")

// ReadWorkbook loads the named sheet of an .xlsx workbook as a Grid. Cell
// values are raw: dates and times stored as numbers come back as Excel
// serials, which Parse understands.
func ReadWorkbook(r io.Reader, sheet string) (Grid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return nil, fmt.Errorf("looking up sheet %q: %w", sheet, err)
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrSheetNotFound, sheet, strings.Join(f.GetSheetList(), ", "))
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return Grid(rows), nil
}

// OpenWorkbook is ReadWorkbook for a file on disk.
func OpenWorkbook(path, sheet string) (Grid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	grid, err := ReadWorkbook(file, sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return grid, nil
}
