package parser

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ukaji3/xltables-go/pkg/xltables/models"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat indicates the bytes are neither an xlsx nor an xls workbook.
var ErrUnsupportedFormat = errors.New("unsupported workbook format")

// Format is the container format of a workbook.
type Format string

const (
	// FormatXLSX is an Office Open XML (zip) workbook.
	FormatXLSX Format = "xlsx"
	// FormatXLS is a legacy BIFF workbook in an OLE2 compound document.
	FormatXLS Format = "xls"
)

var (
	zipMagic = []byte{'P', 'K', 0x03, 0x04}
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// DetectFormat sniffs the container format from the leading bytes.
func DetectFormat(data []byte) (Format, error) {
	switch {
	case bytes.HasPrefix(data, zipMagic):
		return FormatXLSX, nil
	case bytes.HasPrefix(data, oleMagic):
		return FormatXLS, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// Decode parses workbook bytes into sheets of typed cells, keeping the
// workbook's sheet order.
func Decode(name string, data []byte) (*models.Workbook, error) {
	format, err := DetectFormat(data)
	if err != nil {
		return nil, err
	}

	var sheets []models.Sheet
	switch format {
	case FormatXLSX:
		sheets, err = extractXLSX(data)
	case FormatXLS:
		sheets, err = ExtractXLS(data)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}

	return &models.Workbook{Name: name, Sheets: sheets}, nil
}

func extractXLSX(data []byte) ([]models.Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	sheets := make([]models.Sheet, 0, len(sheetList))
	for _, sheetName := range sheetList {
		rows, err := ExtractCells(f, sheetName)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheetName, err)
		}
		sheets = append(sheets, models.Sheet{Name: sheetName, Rows: rows})
	}

	return sheets, nil
}
