// Package models defines data structures for workbook table extraction.
package models

import (
	"strconv"
	"strings"
)

// CellKind discriminates the value held by a Cell.
type CellKind int

const (
	// CellEmpty is a missing value.
	CellEmpty CellKind = iota
	// CellText holds a string value.
	CellText
	// CellNumber holds a numeric value.
	CellNumber
)

// Cell is a single grid value: Empty, Text or Number.
type Cell struct {
	// Kind selects which of Text or Number is meaningful.
	Kind CellKind `json:"kind"`
	// Text is the string value for CellText.
	Text string `json:"text,omitempty"`
	// Number is the numeric value for CellNumber.
	Number float64 `json:"number,omitempty"`
}

// EmptyCell returns a cell with no value.
func EmptyCell() Cell {
	return Cell{Kind: CellEmpty}
}

// TextCell returns a cell holding s.
func TextCell(s string) Cell {
	return Cell{Kind: CellText, Text: s}
}

// NumberCell returns a cell holding v.
func NumberCell(v float64) Cell {
	return Cell{Kind: CellNumber, Number: v}
}

// IsBlank reports whether the cell is empty or holds whitespace-only text.
func (c Cell) IsBlank() bool {
	switch c.Kind {
	case CellEmpty:
		return true
	case CellText:
		return strings.TrimSpace(c.Text) == ""
	default:
		return false
	}
}

// IsText reports whether the cell holds a string value.
func (c Cell) IsText() bool {
	return c.Kind == CellText
}

// String renders the cell value. Numbers use the shortest decimal form that
// round-trips, so integral values carry no decimal point.
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	default:
		return ""
	}
}
