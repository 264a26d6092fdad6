package parser

import (
	"strings"

	"github.com/ukaji3/xltables-go/pkg/xltables/models"
)

// ExtractRows reads the row labels of a located table: the run of non-blank
// cells below the header in the table's column. A single blank row directly
// under the header (a units row) is skipped.
func ExtractRows(sheet *models.Sheet, ref models.TableRef) []string {
	labels := []string{}

	start := ref.HeaderRow + 1
	if start < sheet.RowCount() && sheet.Cell(start, ref.Column).IsBlank() {
		start = ref.HeaderRow + 2
	}

	for rowIdx := start; rowIdx < sheet.RowCount(); rowIdx++ {
		cell := sheet.Cell(rowIdx, ref.Column)
		if cell.IsBlank() {
			break
		}
		labels = append(labels, strings.TrimSpace(cell.String()))
	}

	return labels
}
