package parser

import (
	"bytes"
	"fmt"

	"github.com/extrame/xls"
	"github.com/ukaji3/xltables-go/pkg/xltables/models"
)

// legacyCharsets are tried in order when opening a BIFF workbook.
var legacyCharsets = []string{"utf-8", "windows-1252"}

// ExtractXLS decodes a legacy .xls workbook into sheets. Sheet names, labels
// and shared strings come from the BIFF reader's rendered text; numeric,
// boolean and formula cells are then replaced with the values scanned from
// their records, since the reader renders those lossily.
func ExtractXLS(data []byte) (sheets []models.Sheet, err error) {
	// The BIFF reader panics on some malformed streams.
	defer func() {
		if r := recover(); r != nil {
			sheets, err = nil, fmt.Errorf("malformed xls: %v", r)
		}
	}()

	var wb *xls.WorkBook
	for _, charset := range legacyCharsets {
		wb, err = xls.OpenReader(bytes.NewReader(data), charset)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	stream, err := workbookStream(data)
	if err != nil {
		return nil, err
	}
	values, err := scanValues(stream)
	if err != nil {
		return nil, err
	}

	sheets = make([]models.Sheet, 0, wb.NumSheets())
	for i := 0; i < wb.NumSheets(); i++ {
		ws := wb.GetSheet(i)
		if ws == nil {
			continue
		}

		rows := make([][]models.Cell, 0, int(ws.MaxRow)+1)
		for r := 0; r <= int(ws.MaxRow); r++ {
			row := ws.Row(r)
			if row == nil {
				rows = append(rows, nil)
				continue
			}
			last := row.LastCol()
			cells := make([]models.Cell, 0, last+1)
			for c := 0; c <= last; c++ {
				cells = append(cells, labelValue(row.Col(c)))
			}
			rows = append(rows, cells)
		}
		if i < len(values) {
			rows = values[i].applyTo(rows)
		}

		sheets = append(sheets, models.Sheet{Name: ws.Name, Rows: rows})
	}

	return sheets, nil
}

// labelValue types text rendered by the BIFF reader. Value records are
// overlaid afterwards, so anything left is a label or a shared string.
func labelValue(s string) models.Cell {
	if s == "" {
		return models.EmptyCell()
	}
	return models.TextCell(s)
}
