package models

// TableRef locates a table inside a workbook.
type TableRef struct {
	// Sheet is the name of the sheet holding the header cell.
	Sheet string `json:"sheet"`
	// HeaderRow is the 0-based row index of the header cell.
	HeaderRow int `json:"header_row"`
	// Column is the 0-based column of the header cell; row labels live here too.
	Column int `json:"column"`
}

// TableRows is the list of row labels of one table.
type TableRows struct {
	Table string
	Rows  []string
}

// AsMap returns the {table: rows} shape served to clients.
func (t TableRows) AsMap() map[string][]string {
	rows := t.Rows
	if rows == nil {
		rows = []string{}
	}
	return map[string][]string{t.Table: rows}
}

// RowSum is the resolved integer value of one row of a table.
type RowSum struct {
	// Table is the table name as requested.
	Table string `json:"table name"`
	// Row is the row name as requested.
	Row string `json:"row name"`
	// Sum is the resolved value.
	Sum int64 `json:"sum"`
}
