package logparse_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Tiliavir/timesheet-validator/internal/logparse"
)

// writeWorkbook builds an .xlsx with the given rows on sheet. Values are
// written as-is, so time.Time cells end up as Excel date serials.
func writeWorkbook(t *testing.T, sheet string, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(sheet); err != nil {
		t.Fatalf("NewSheet: %v", err)
	}
	for r, cells := range rows {
		for c, v := range cells {
			if v == nil {
				continue
			}
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetCellValue(sheet, name, v); err != nil {
				t.Fatalf("SetCellValue(%s): %v", name, err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	return buf
}

func TestReadWorkbookAndParse(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	buf := writeWorkbook(t, "log", [][]any{
		{"Client onboarding"},
		{"Started By", nil, "Start Date", "End Date", "Start Time", "End Time"},
		{"ana", nil, "2025-03-10", "2025-03-10", "08:00:00 AM", "12:00:00 PM"},
		{"ana", nil, day, day, "01:00:00 PM", "06:00:00 PM"},
		{"Total"},
	})

	grid, err := logparse.ReadWorkbook(buf, "log")
	if err != nil {
		t.Fatalf("ReadWorkbook: %v", err)
	}
	entries, err := logparse.Parse(grid)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	for i, e := range entries {
		if e.Day.Format("2006-01-02") != "2025-03-10" {
			t.Errorf("entry %d day = %s", i, e.Day.Format("2006-01-02"))
		}
		if e.Description != "Client onboarding" {
			t.Errorf("entry %d description = %q", i, e.Description)
		}
	}
	if entries[1].DurationSeconds != 5*3600 {
		t.Errorf("serial-date entry duration = %d, want 18000", entries[1].DurationSeconds)
	}
}

func TestReadWorkbookMissingSheet(t *testing.T) {
	buf := writeWorkbook(t, "other", [][]any{{"x"}})
	_, err := logparse.ReadWorkbook(buf, "log")
	if !errors.Is(err, logparse.ErrSheetNotFound) {
		t.Fatalf("err = %v, want ErrSheetNotFound", err)
	}
}

func TestReadWorkbookNotAWorkbook(t *testing.T) {
	if _, err := logparse.ReadWorkbook(bytes.NewBufferString("date,owner\n"), "log"); err == nil {
		t.Fatal("expected error for non-xlsx input")
	}
}

func TestOpenWorkbookMissingFile(t *testing.T) {
	if _, err := logparse.OpenWorkbook(filepath.Join(t.TempDir(), "missing.xlsx"), "log"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
