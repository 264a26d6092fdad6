package models

// Sheet is a named, row-major grid of cells. Rows may be ragged.
type Sheet struct {
	// Name is the sheet name as shown in the workbook.
	Name string `json:"name"`
	// Rows holds the grid, 0-indexed by row then column.
	Rows [][]Cell `json:"rows"`
}

// Cell returns the cell at (row, col), or an empty cell when out of range.
func (s *Sheet) Cell(row, col int) Cell {
	if row < 0 || row >= len(s.Rows) {
		return EmptyCell()
	}
	r := s.Rows[row]
	if col < 0 || col >= len(r) {
		return EmptyCell()
	}
	return r[col]
}

// RowCount returns the number of rows in the grid.
func (s *Sheet) RowCount() int {
	return len(s.Rows)
}
