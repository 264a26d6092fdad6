package parser

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/extrame/ole2"
	"github.com/ukaji3/xltables-go/pkg/xltables/models"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// BIFF record identifiers read by the value scanner.
const (
	recFormula    = 0x0006
	recEOF        = 0x000A
	recBoundSheet = 0x0085
	recMulRK      = 0x00BD
	recNumber     = 0x0203
	recBoolErr    = 0x0205
	recString     = 0x0207
	recArray      = 0x0221
	recTable      = 0x0236
	recRK         = 0x027E
	recShrFmla    = 0x04BC
	recBOF        = 0x0809
)

const biff8Version = 0x0600

var (
	errNoWorkbookStream = errors.New("compound document has no Workbook stream")
	errNotBIFF          = errors.New("workbook stream does not start with a BOF record")
)

// errorCodes maps BIFF error values to the text Excel displays.
var errorCodes = map[byte]string{
	0x00: "#NULL!",
	0x07: "#DIV/0!",
	0x0F: "#VALUE!",
	0x17: "#REF!",
	0x1D: "#NAME?",
	0x24: "#NUM!",
	0x2A: "#N/A",
}

type cellPos struct {
	row, col int
}

// valueGrid holds the value cells of one worksheet, keyed by position.
type valueGrid map[cellPos]models.Cell

// applyTo overwrites rows with the grid's cells, growing rows as needed.
func (g valueGrid) applyTo(rows [][]models.Cell) [][]models.Cell {
	for pos, cell := range g {
		for len(rows) <= pos.row {
			rows = append(rows, nil)
		}
		row := rows[pos.row]
		for len(row) <= pos.col {
			row = append(row, models.EmptyCell())
		}
		row[pos.col] = cell
		rows[pos.row] = row
	}
	return rows
}

// workbookStream returns the BIFF stream held in an OLE2 compound document.
func workbookStream(data []byte) ([]byte, error) {
	doc, err := ole2.Open(bytes.NewReader(data), legacyCharsets[0])
	if err != nil {
		return nil, err
	}
	dir, err := doc.ListDir()
	if err != nil {
		return nil, err
	}

	var book, root *ole2.File
	for _, file := range dir {
		switch file.Name() {
		case "Workbook", "Book":
			book = file
		case "Root Entry":
			root = file
		}
	}
	if book == nil || root == nil {
		return nil, errNoWorkbookStream
	}

	stream, err := io.ReadAll(doc.OpenFile(book, root))
	if err != nil {
		return nil, err
	}
	// The stream reader hands back whole sectors.
	if len(stream) > int(book.Size) {
		stream = stream[:book.Size]
	}
	return stream, nil
}

type biffReader struct {
	buf  []byte
	pos  int
	id   uint16
	body []byte
	err  error
}

func (r *biffReader) next() bool {
	if r.pos+4 > len(r.buf) {
		return false
	}
	r.id = binary.LittleEndian.Uint16(r.buf[r.pos:])
	size := int(binary.LittleEndian.Uint16(r.buf[r.pos+2:]))
	start := r.pos + 4
	if start+size > len(r.buf) {
		r.err = fmt.Errorf("record 0x%04X at offset %d overruns the stream", r.id, r.pos)
		return false
	}
	r.body = r.buf[start : start+size]
	r.pos = start + size
	return true
}

// scanValues collects the value cells of every sheet in BOUNDSHEET order.
// NUMBER, RK, MULRK, FORMULA and BOOLERR records are decoded from their
// stored bits, so number formats never turn a value into text and formula
// cells carry their cached result.
func scanValues(stream []byte) ([]valueGrid, error) {
	r := &biffReader{buf: stream}
	if !r.next() || r.id != recBOF {
		return nil, errNotBIFF
	}
	biff8 := len(r.body) >= 2 && binary.LittleEndian.Uint16(r.body) == biff8Version

	var offsets []int
	for depth := 1; depth > 0 && r.next(); {
		switch r.id {
		case recBOF:
			depth++
		case recEOF:
			depth--
		case recBoundSheet:
			if depth == 1 && len(r.body) >= 4 {
				offsets = append(offsets, int(binary.LittleEndian.Uint32(r.body)))
			}
		}
	}
	if r.err != nil {
		return nil, r.err
	}

	grids := make([]valueGrid, 0, len(offsets))
	for i, offset := range offsets {
		if offset >= len(stream) {
			return nil, fmt.Errorf("sheet %d starts at %d, past the end of the stream", i, offset)
		}
		grid, err := scanSheet(stream[offset:], biff8)
		if err != nil {
			return nil, fmt.Errorf("sheet %d: %w", i, err)
		}
		grids = append(grids, grid)
	}
	return grids, nil
}

func scanSheet(buf []byte, biff8 bool) (valueGrid, error) {
	grid := make(valueGrid)
	r := &biffReader{buf: buf}
	var pending *cellPos
	depth := 0

	for r.next() {
		switch r.id {
		case recBOF:
			depth++
			continue
		case recEOF:
			depth--
			if depth <= 0 {
				return grid, nil
			}
			continue
		}
		// Embedded chart substreams carry no cells of this sheet.
		if depth != 1 {
			continue
		}

		body := r.body
		var pos cellPos
		if len(body) >= 4 {
			pos = cellPos{int(binary.LittleEndian.Uint16(body)), int(binary.LittleEndian.Uint16(body[2:]))}
		}

		switch r.id {
		case recNumber:
			if len(body) >= 14 {
				grid[pos] = models.NumberCell(math.Float64frombits(binary.LittleEndian.Uint64(body[6:])))
			}
		case recRK:
			if len(body) >= 10 {
				grid[pos] = models.NumberCell(rkValue(binary.LittleEndian.Uint32(body[6:])))
			}
		case recMulRK:
			for i, off := 0, 4; off+6 <= len(body)-2; i, off = i+1, off+6 {
				cell := cellPos{pos.row, pos.col + i}
				grid[cell] = models.NumberCell(rkValue(binary.LittleEndian.Uint32(body[off+2:])))
			}
		case recFormula:
			if len(body) < 14 {
				break
			}
			if cell, ok := formulaResult(body[6:14]); ok {
				grid[pos] = cell
				break
			}
			// The string result follows in a STRING record.
			grid[pos] = models.EmptyCell()
			p := pos
			pending = &p
			continue
		case recString:
			if pending != nil {
				s, err := decodeString(body, biff8)
				if err != nil {
					return nil, fmt.Errorf("formula string at row %d col %d: %w", pending.row, pending.col, err)
				}
				if s != "" {
					grid[*pending] = models.TextCell(s)
				}
			}
		case recBoolErr:
			if len(body) >= 8 {
				grid[pos] = boolErrCell(body[6], body[7] != 0)
			}
		case recShrFmla, recArray, recTable:
			// May sit between a FORMULA and its STRING record.
			continue
		}
		pending = nil
	}

	return grid, r.err
}

// rkValue decodes an RK number: bit 1 selects a signed 30-bit integer over
// the top 30 bits of a double, bit 0 divides the result by 100.
func rkValue(rk uint32) float64 {
	var v float64
	if rk&0x02 != 0 {
		v = float64(int32(rk) >> 2)
	} else {
		v = math.Float64frombits(uint64(rk&0xFFFFFFFC) << 32)
	}
	if rk&0x01 != 0 {
		v /= 100
	}
	return v
}

// formulaResult decodes the cached result of a FORMULA record. ok is false
// for a string result, which is stored in the next STRING record.
func formulaResult(res []byte) (models.Cell, bool) {
	if res[6] != 0xFF || res[7] != 0xFF {
		return models.NumberCell(math.Float64frombits(binary.LittleEndian.Uint64(res))), true
	}
	switch res[0] {
	case 0x00:
		return models.Cell{}, false
	case 0x01:
		return boolErrCell(res[2], false), true
	case 0x02:
		return boolErrCell(res[2], true), true
	default:
		return models.EmptyCell(), true
	}
}

func boolErrCell(value byte, isError bool) models.Cell {
	if isError {
		if text, ok := errorCodes[value]; ok {
			return models.TextCell(text)
		}
		return models.EmptyCell()
	}
	if value != 0 {
		return models.TextCell("TRUE")
	}
	return models.TextCell("FALSE")
}

// decodeString reads the text of a STRING record. BIFF8 stores either
// Latin-1 or UTF-16LE characters behind a flags byte; BIFF5 stores
// code-page bytes.
func decodeString(body []byte, biff8 bool) (string, error) {
	if len(body) < 2 {
		return "", io.ErrUnexpectedEOF
	}
	n := int(binary.LittleEndian.Uint16(body))
	if !biff8 {
		return charmap.Windows1252.NewDecoder().String(string(clip(body[2:], n)))
	}
	if len(body) < 3 {
		return "", io.ErrUnexpectedEOF
	}
	if body[2]&0x01 != 0 {
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().String(string(clip(body[3:], 2*n)))
	}
	return charmap.ISO8859_1.NewDecoder().String(string(clip(body[3:], n)))
}

func clip(b []byte, n int) []byte {
	return b[:min(n, len(b))]
}
