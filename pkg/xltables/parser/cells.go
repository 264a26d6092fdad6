package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/xltables-go/pkg/xltables/models"
	"github.com/xuri/excelize/v2"
)

// ExtractCells reads a sheet of an xlsx workbook into a cell grid.
// Raw cell values are used so that percent-formatted numbers keep their
// stored fraction.
func ExtractCells(f *excelize.File, sheetName string) ([][]models.Cell, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	grid := make([][]models.Cell, len(rows))
	for rowIdx, row := range rows {
		cells := make([]models.Cell, len(row))
		for colIdx, value := range row {
			if value == "" {
				cells[colIdx] = models.EmptyCell()
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, err
			}
			cells[colIdx] = typedValue(cellType, value)
		}
		grid[rowIdx] = cells
	}

	return grid, nil
}

// typedValue builds a cell from a raw value and the type recorded in the
// sheet XML.
func typedValue(t excelize.CellType, value string) models.Cell {
	switch t {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return models.TextCell(value)
	case excelize.CellTypeBool:
		if value == "1" {
			return models.TextCell("TRUE")
		}
		return models.TextCell("FALSE")
	case excelize.CellTypeError, excelize.CellTypeDate:
		return models.TextCell(value)
	default:
		// Numeric, unset and formula cells hold either a number or a cached
		// string result.
		return parseValue(value)
	}
}

// parseValue classifies an untyped string as Empty, Number or Text.
func parseValue(s string) models.Cell {
	if s == "" {
		return models.EmptyCell()
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return models.NumberCell(f)
	}
	return models.TextCell(s)
}
