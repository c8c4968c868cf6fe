package dataset

import (
	"strconv"
	"strings"
	"time"
)

// Raw values treated as missing, matching common spreadsheet exports.
var missingTokens = map[string]struct{}{
	"": {}, "na": {}, "n/a": {}, "nan": {}, "null": {}, "none": {},
}

// parseCell converts one raw field into a cell: missing, number, or text.
// Datetime coercion happens later, per column, once the sample agrees.
func parseCell(raw string) Cell {
	v := strings.TrimSpace(raw)
	if _, ok := missingTokens[strings.ToLower(v)]; ok {
		return Cell{Kind: CellMissing}
	}
	if f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64); err == nil {
		return Cell{Kind: CellNumber, Num: f}
	}
	return Cell{Kind: CellText, Text: v}
}

var timeLayouts = []string{
	time.RFC3339, "2006-01-02", "2006/01/02", "02/01/2006", "01/02/2006",
	"2006-01-02 15:04", "2006-01-02 15:04:05", "1/2/2006", "1/2/2006 15:04",
	"Jan 2, 2006", "2 Jan 2006",
}

func parseTimeMaybe(s string) (time.Time, bool) {
	for _, l := range timeLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// inferType classifies a column and coerces datetime cells in place.
// Precedence: datetime, numeric, binary, categorical — with the 0/1 carve-out
// that sends all-numeric 0/1 columns to binary.
func inferType(c *Column) {
	if coerceDatetime(c) {
		c.Type = TypeDatetime
		return
	}
	if isNumeric(c) {
		if zeroOneOnly(c) {
			c.Type = TypeBinary
			return
		}
		c.Type = TypeNumeric
		return
	}
	if matchesBinaryPattern(c) {
		c.Type = TypeBinary
		return
	}
	c.Type = TypeCategorical
}

// coerceDatetime samples up to 10 non-missing text cells; if every sampled
// value parses as a timestamp the whole column is converted, with
// unparseable cells becoming missing.
func coerceDatetime(c *Column) bool {
	sampled := 0
	for _, cell := range c.Cells {
		if cell.Missing() {
			continue
		}
		if cell.Kind != CellText {
			return false
		}
		if _, ok := parseTimeMaybe(cell.Text); !ok {
			return false
		}
		sampled++
		if sampled >= 10 {
			break
		}
	}
	if sampled == 0 {
		return false
	}
	for i, cell := range c.Cells {
		if cell.Missing() {
			continue
		}
		if t, ok := parseTimeMaybe(cell.Text); ok {
			c.Cells[i] = Cell{Kind: CellTime, Time: t}
		} else {
			c.Cells[i] = Cell{Kind: CellMissing}
		}
	}
	return true
}

func isNumeric(c *Column) bool {
	seen := false
	for _, cell := range c.Cells {
		switch cell.Kind {
		case CellMissing:
		case CellNumber:
			seen = true
		default:
			return false
		}
	}
	return seen
}

func zeroOneOnly(c *Column) bool {
	seen := false
	for _, cell := range c.Cells {
		if cell.Kind != CellNumber {
			continue
		}
		if cell.Num != 0 && cell.Num != 1 {
			return false
		}
		seen = true
	}
	return seen
}

// Canonical two-value domains accepted as binary.
var binaryPatterns = [][2]string{
	{"yes", "no"},
	{"true", "false"},
	{"1", "0"},
	{"y", "n"},
	{"1.0", "0.0"},
	{"male", "female"},
	{"m", "f"},
}

func matchesBinaryPattern(c *Column) bool {
	distinct := make(map[string]struct{})
	for _, cell := range c.Cells {
		if cell.Missing() {
			continue
		}
		distinct[strings.ToLower(strings.TrimSpace(cell.String()))] = struct{}{}
	}
	if len(distinct) == 0 || len(distinct) > 2 {
		return false
	}
	for _, p := range binaryPatterns {
		ok := true
		for v := range distinct {
			if v != p[0] && v != p[1] {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}
