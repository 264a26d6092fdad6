package parser

import (
	"strings"

	"github.com/ukaji3/xltables-go/pkg/xltables/models"
)

// LocatorParams holds parameters for table header search.
type LocatorParams struct {
	// PriorityColumns are tested, in order, before the full left-to-right
	// scan of a header row.
	PriorityColumns []int
}

// DefaultLocatorParams returns the header search order used by the service:
// column A, then column E, then the whole row. Column E matches the layout
// of the capital budgeting workbook, where side tables start there.
func DefaultLocatorParams() LocatorParams {
	return LocatorParams{
		PriorityColumns: []int{0, 4},
	}
}

// LocateTable finds the header cell whose normalized text equals the
// normalized name. Sheets are searched in workbook order and rows top to
// bottom; the first match wins even if the name occurs again later.
func LocateTable(wb *models.Workbook, name string, params LocatorParams) (models.TableRef, bool) {
	target := Normalize(name)

	for i := range wb.Sheets {
		sheet := &wb.Sheets[i]
		for rowIdx, row := range sheet.Rows {
			// Rows with a blank first cell never start a table.
			if sheet.Cell(rowIdx, 0).IsBlank() {
				continue
			}
			if col, ok := matchHeader(row, target, params); ok {
				return models.TableRef{Sheet: sheet.Name, HeaderRow: rowIdx, Column: col}, true
			}
		}
	}

	return models.TableRef{}, false
}

// matchHeader returns the column of the first text cell in row matching target.
func matchHeader(row []models.Cell, target string, params LocatorParams) (int, bool) {
	matches := func(col int) bool {
		if col < 0 || col >= len(row) {
			return false
		}
		cell := row[col]
		return cell.IsText() && Normalize(cell.Text) == target
	}

	for _, col := range params.PriorityColumns {
		if matches(col) {
			return col, true
		}
	}
	for col := range row {
		if matches(col) {
			return col, true
		}
	}
	return -1, false
}

// ListTables returns every distinct upper-case header cell in the workbook,
// in the order first seen. A header row is the first non-blank row of a
// block; blocks are separated by rows whose first cell is blank. Several
// names on one header row are all kept.
func ListTables(wb *models.Workbook) []string {
	names := []string{}
	seen := make(map[string]bool)

	for i := range wb.Sheets {
		sheet := &wb.Sheets[i]
		inTable := false

		for rowIdx, row := range sheet.Rows {
			if sheet.Cell(rowIdx, 0).IsBlank() {
				inTable = false
				continue
			}
			if inTable {
				continue
			}

			for _, cell := range row {
				if !cell.IsText() {
					continue
				}
				text := strings.TrimSpace(cell.Text)
				if text == "" || !isTableName(text) || seen[text] {
					continue
				}
				seen[text] = true
				names = append(names, text)
			}
			inTable = true
		}
	}

	return names
}
