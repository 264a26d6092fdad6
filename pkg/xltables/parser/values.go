package parser

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/xltables-go/pkg/xltables/models"
)

// snapTolerance absorbs binary rounding noise left by scaling a fraction to
// percent, e.g. 0.07*100 = 7.000000000000001.
const snapTolerance = 1e-9

var errNotDecimal = errors.New("not a decimal number")

// FindRowValue scans the table body for the row whose label matches row and
// returns the raw text of its value: the cell to the right of the label, or
// the one after that when the first is empty. The scan ends at the first
// blank label cell.
func FindRowValue(sheet *models.Sheet, ref models.TableRef, row string) (string, bool) {
	target := Normalize(row)

	for rowIdx := ref.HeaderRow + 1; rowIdx < sheet.RowCount(); rowIdx++ {
		label := sheet.Cell(rowIdx, ref.Column)
		if label.IsBlank() {
			break
		}
		// A non-text label has no name and only matches an empty one.
		name := ""
		if label.IsText() {
			name = Normalize(label.Text)
		}
		if name != target {
			continue
		}

		value := strings.TrimSpace(sheet.Cell(rowIdx, ref.Column+1).String())
		if value == "" {
			value = strings.TrimSpace(sheet.Cell(rowIdx, ref.Column+2).String())
		}
		return value, true
	}

	return "", false
}

// ResolveValue applies percent normalization to a raw value:
//   - "8%" keeps its number as is ("8");
//   - a number with magnitude at most 1 is a fraction and is scaled to percent;
//   - integral results are rendered without a decimal point;
//   - anything unparsable is returned unchanged.
func ResolveValue(raw string) string {
	if strings.HasSuffix(raw, "%") {
		return strings.TrimSpace(strings.TrimRight(raw, "%"))
	}

	v, err := parseDecimal(raw)
	if err != nil {
		return raw
	}
	if math.Abs(v) <= 1 {
		v *= 100
		if r := math.Round(v); math.Abs(v-r) < snapTolerance {
			v = r
		}
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseDecimal parses decimal float text. Hexadecimal literals are not
// numbers here, and a single underscore between two digits is a digit
// separator ("1_000").
func parseDecimal(s string) (float64, error) {
	if strings.ContainsAny(s, "xX") {
		return 0, errNotDecimal
	}
	if strings.Contains(s, "_") {
		for i := 0; i < len(s); i++ {
			if s[i] == '_' && (i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1])) {
				return 0, errNotDecimal
			}
		}
		s = strings.ReplaceAll(s, "_", "")
	}
	return strconv.ParseFloat(s, 64)
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

// ParseSum converts a resolved value to an integer. Values with a fractional
// part are rejected rather than truncated, as are values outside int64.
func ParseSum(resolved string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(resolved), 10, 64)
	if err != nil {
		return 0, err
	}
	return n, nil
}
