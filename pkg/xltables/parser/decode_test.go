package parser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ukaji3/xltables-go/pkg/xltables/models"
	"github.com/xuri/excelize/v2"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("Failed to read fixture %s: %v", name, err)
	}
	return data
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected Format
		err      error
	}{
		{"zip", []byte("PK\x03\x04rest"), FormatXLSX, nil},
		{"ole2", []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1, 0x00}, FormatXLS, nil},
		{"html", []byte("<html>404</html>"), "", ErrUnsupportedFormat},
		{"empty", nil, "", ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		format, err := DetectFormat(tt.input)
		if format != tt.expected || !errors.Is(err, tt.err) {
			t.Errorf("DetectFormat(%s) = %q, %v, expected %q, %v", tt.name, format, err, tt.expected, tt.err)
		}
	}
}

func TestDecodeXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetCellValue("Sheet1", "A1", "INITIAL INVESTMENT")
	f.SetCellValue("Sheet1", "A2", "Cost of new plant")
	f.SetCellValue("Sheet1", "B2", 100000)
	if _, err := f.NewSheet("Second"); err != nil {
		t.Fatalf("Failed to add sheet: %v", err)
	}
	f.SetCellValue("Second", "E3", "DISCOUNT RATE =")

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("Failed to write workbook: %v", err)
	}

	wb, err := Decode("capbudg.xlsx", buf.Bytes())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if wb.Name != "capbudg.xlsx" {
		t.Errorf("Expected name capbudg.xlsx, got %q", wb.Name)
	}
	if len(wb.Sheets) != 2 || wb.Sheets[0].Name != "Sheet1" || wb.Sheets[1].Name != "Second" {
		t.Fatalf("Unexpected sheets: %+v", wb.Sheets)
	}
	if got := wb.Sheets[0].Cell(1, 1).String(); got != "100000" {
		t.Errorf("Expected B2 = 100000, got %q", got)
	}
	if got := wb.Sheets[1].Cell(2, 4).Text; got != "DISCOUNT RATE =" {
		t.Errorf("Expected E3 header, got %q", got)
	}
}

func TestDecodeRejectsUnknownFormat(t *testing.T) {
	_, err := Decode("page.html", []byte("<!DOCTYPE html>"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestDecodeCorruptXLSX(t *testing.T) {
	_, err := Decode("broken.xlsx", []byte("PK\x03\x04garbage"))
	if err == nil {
		t.Error("Expected error for truncated zip")
	}
}

func TestDecodeCorruptXLS(t *testing.T) {
	data := append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, make([]byte, 64)...)
	if _, err := Decode("broken.xls", data); err == nil {
		t.Error("Expected error for truncated compound document")
	}
}

// ledger.xls is a BIFF8 workbook with two sheets. Summary holds one value per
// record kind in column B: RK integer, RK integer scaled by 100, negative RK,
// NUMBER, numeric FORMULA, RK under a custom number format, string FORMULA,
// MULRK and BOOLERR.
func TestDecodeXLS(t *testing.T) {
	wb, err := Decode("ledger.xls", readFixture(t, "ledger.xls"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if len(wb.Sheets) != 2 || wb.Sheets[0].Name != "Summary" || wb.Sheets[1].Name != "Notes" {
		t.Fatalf("Unexpected sheets: %+v", wb.Sheets)
	}

	summary := wb.Sheet("Summary")
	tests := []struct {
		row, col int
		expected models.Cell
	}{
		{0, 0, models.TextCell("ITEM")},
		{0, 1, models.TextCell("VALUE")},
		{1, 1, models.NumberCell(42)},
		{2, 1, models.NumberCell(12.5)},
		{3, 1, models.NumberCell(-5)},
		{4, 1, models.NumberCell(0.125)},
		{5, 1, models.NumberCell(57.5)},
		{6, 1, models.NumberCell(3)},
		{7, 1, models.TextCell("n/a")},
		{8, 1, models.NumberCell(1.5)},
		{8, 2, models.NumberCell(7)},
		{9, 0, models.TextCell("Flag")},
		{9, 1, models.TextCell("TRUE")},
		{10, 0, models.EmptyCell()},
	}

	for _, tt := range tests {
		if got := summary.Cell(tt.row, tt.col); got != tt.expected {
			t.Errorf("Summary cell (%d, %d) = %+v, expected %+v", tt.row, tt.col, got, tt.expected)
		}
	}

	notes := wb.Sheet("Notes")
	if got := notes.Cell(1, 0); got != models.TextCell("Résumé") {
		t.Errorf("Expected LABEL text, got %+v", got)
	}
	if got := notes.Cell(1, 1); got != models.NumberCell(-2.25) {
		t.Errorf("Expected NUMBER -2.25, got %+v", got)
	}
}

func TestDecodeXLSRowSums(t *testing.T) {
	wb, err := Decode("ledger.xls", readFixture(t, "ledger.xls"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if tables := ListTables(wb); len(tables) != 3 || tables[0] != "ITEM" || tables[1] != "VALUE" || tables[2] != "NOTES" {
		t.Errorf("ListTables = %v, expected [ITEM VALUE NOTES]", tables)
	}

	ref, ok := LocateTable(wb, "item", DefaultLocatorParams())
	if !ok {
		t.Fatal("LocateTable(item) not found")
	}

	tests := []struct {
		row      string
		expected int64
		wantErr  bool
	}{
		{"Units", 42, false},
		{"Loss", -5, false},
		{"Growth", 3, false},
		// Fractional values are rejected, never truncated or rescaled.
		{"Discount", 0, true},
		{"Rate", 0, true},
		{"Total", 0, true},
		{"Pair", 0, true},
		{"Label", 0, true},
	}

	for _, tt := range tests {
		raw, found := FindRowValue(wb.Sheet(ref.Sheet), ref, tt.row)
		if !found {
			t.Errorf("FindRowValue(%q) not found", tt.row)
			continue
		}
		sum, err := ParseSum(ResolveValue(raw))
		if (err != nil) != tt.wantErr || sum != tt.expected {
			t.Errorf("row %q: raw %q gave %d, %v, expected %d, error %v",
				tt.row, raw, sum, err, tt.expected, tt.wantErr)
		}
	}
}

func TestDecodeXLSWithoutWorkbookStream(t *testing.T) {
	data := readFixture(t, "ledger.xls")
	// Rename the Workbook directory entry; its name starts at offset 1024+128.
	broken := append([]byte(nil), data...)
	copy(broken[1024+128:], []byte{'X', 0})

	if _, err := Decode("renamed.xls", broken); err == nil {
		t.Error("Expected error for a compound document without a Workbook stream")
	}
}
