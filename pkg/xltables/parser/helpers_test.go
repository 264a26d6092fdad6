package parser

import (
	"github.com/ukaji3/xltables-go/pkg/xltables/models"
)

// sheet builds a grid from literal rows: nil is Empty, strings are Text and
// numeric literals are Number.
func sheet(name string, rows ...[]interface{}) models.Sheet {
	grid := make([][]models.Cell, len(rows))
	for i, row := range rows {
		cells := make([]models.Cell, len(row))
		for j, v := range row {
			switch val := v.(type) {
			case nil:
				cells[j] = models.EmptyCell()
			case string:
				cells[j] = models.TextCell(val)
			case int:
				cells[j] = models.NumberCell(float64(val))
			case float64:
				cells[j] = models.NumberCell(val)
			}
		}
		grid[i] = cells
	}
	return models.Sheet{Name: name, Rows: grid}
}

func book(sheets ...models.Sheet) *models.Workbook {
	return &models.Workbook{Name: "test.xlsx", Sheets: sheets}
}

// capbudg mirrors the layout of the capital budgeting workbook: tables in
// column A, a side table in column E, and a units row under one header.
func capbudg() *models.Workbook {
	return book(
		sheet("CapBudgWS",
			[]interface{}{"Capital Budgeting Analysis"},
			[]interface{}{nil},
			[]interface{}{"INITIAL INVESTMENT", "", "", "", "DISCOUNT RATE ="},
			[]interface{}{"Initial Investment=", 50000, nil, nil, "Discount rate=", "12%"},
			[]interface{}{"Opportunity cost (if any)=", nil, 0, nil, "Tax on salvage", "30 %"},
			[]interface{}{"Lifetime of the investment", 10, nil, nil, "Growth rate", 0.08},
			[]interface{}{"Salvage Value at end of project=", 10000},
			[]interface{}{nil},
			[]interface{}{"CASHFLOW DETAILS", nil, nil, nil, "WORKING CAPITAL"},
			[]interface{}{nil, "in $"},
			[]interface{}{"Revenues in year 1", 150},
			[]interface{}{"Var. Expenses as % of Rev", "12.5%"},
			[]interface{}{"Tax rate", 0.4},
			[]interface{}{"  "},
			[]interface{}{"BOOK VALUE & DEPRECIATION", "Bv"},
			[]interface{}{2019, 1, 2},
		),
		sheet("Summary",
			[]interface{}{"INITIAL INVESTMENT"},
			[]interface{}{"Duplicate table", 1},
			[]interface{}{nil},
			[]interface{}{"Operating Cashflows", "OCF"},
			[]interface{}{"Year", 1},
		),
	)
}
