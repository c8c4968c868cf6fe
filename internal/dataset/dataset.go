package dataset

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Limits enforced at load time. Datasets outside these bounds are rejected
// wholesale; a failed load never replaces a previously loaded dataset.
const (
	MaxRows    = 500
	MaxColumns = 20
)

// Type is the inferred semantic type of a column.
type Type string

const (
	TypeNumeric     Type = "numeric"
	TypeDatetime    Type = "datetime"
	TypeBinary      Type = "binary"
	TypeCategorical Type = "categorical"
)

// CellKind discriminates the storage variant of a single cell.
type CellKind uint8

const (
	CellMissing CellKind = iota
	CellNumber
	CellText
	CellTime
)

// Cell is one value in a column. Missing cells carry no payload.
type Cell struct {
	Kind CellKind
	Num  float64
	Text string
	Time time.Time
}

// Missing reports whether the cell holds no value.
func (c Cell) Missing() bool { return c.Kind == CellMissing }

// String renders the cell for display and for categorical matching.
// Numbers drop insignificant trailing zeros; date-only timestamps drop the
// clock part.
func (c Cell) String() string {
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case CellText:
		return c.Text
	case CellTime:
		if c.Time.Hour() == 0 && c.Time.Minute() == 0 && c.Time.Second() == 0 {
			return c.Time.Format("2006-01-02")
		}
		return c.Time.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}

// Column is an ordered sequence of cells with a normalized identifier and the
// original header it was derived from.
type Column struct {
	Name     string // normalized, unique within the dataset
	Original string // raw header as uploaded
	Type     Type
	Cells    []Cell
}

// NonNull counts non-missing cells.
func (c *Column) NonNull() int {
	n := 0
	for _, cell := range c.Cells {
		if !cell.Missing() {
			n++
		}
	}
	return n
}

// MissingCount counts missing cells.
func (c *Column) MissingCount() int { return len(c.Cells) - c.NonNull() }

// Numbers returns the non-missing numeric values in row order.
func (c *Column) Numbers() []float64 {
	out := make([]float64, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if cell.Kind == CellNumber {
			out = append(out, cell.Num)
		}
	}
	return out
}

// Distinct returns the distinct non-missing values (stringified) in order of
// first appearance.
func (c *Column) Distinct() []string {
	seen := make(map[string]struct{}, len(c.Cells))
	var out []string
	for _, cell := range c.Cells {
		if cell.Missing() {
			continue
		}
		s := cell.String()
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Unique counts distinct non-missing values.
func (c *Column) Unique() int { return len(c.Distinct()) }

// MostCommon returns the most frequent non-missing value and its count.
// Ties break toward the value seen first.
func (c *Column) MostCommon() (string, int) {
	counts := make(map[string]int)
	order := c.Distinct()
	for _, cell := range c.Cells {
		if !cell.Missing() {
			counts[cell.String()]++
		}
	}
	best, bestN := "", 0
	for _, v := range order {
		if counts[v] > bestN {
			best, bestN = v, counts[v]
		}
	}
	return best, bestN
}

// ValueCounts returns distinct values with occurrence counts, most frequent
// first (ties by first appearance).
func (c *Column) ValueCounts() ([]string, []int) {
	counts := make(map[string]int)
	for _, cell := range c.Cells {
		if !cell.Missing() {
			counts[cell.String()]++
		}
	}
	vals := c.Distinct()
	sort.SliceStable(vals, func(i, j int) bool { return counts[vals[i]] > counts[vals[j]] })
	ns := make([]int, len(vals))
	for i, v := range vals {
		ns[i] = counts[v]
	}
	return vals, ns
}

// Dataset is a single in-memory table: ordered named columns with aligned
// rows and load-time inferred types. It is immutable after load.
type Dataset struct {
	Name   string // source file base name
	cols   []*Column
	byName map[string]*Column
}

// Columns returns the columns in dataset order.
func (d *Dataset) Columns() []*Column { return d.cols }

// Column looks a column up by normalized name.
func (d *Dataset) Column(name string) (*Column, bool) {
	c, ok := d.byName[name]
	return c, ok
}

// OriginalName maps a normalized name back to the uploaded header. Unknown
// names map to themselves.
func (d *Dataset) OriginalName(name string) string {
	if c, ok := d.byName[name]; ok {
		return c.Original
	}
	return name
}

// Rows returns the row count.
func (d *Dataset) Rows() int {
	if len(d.cols) == 0 {
		return 0
	}
	return len(d.cols[0].Cells)
}

// ColumnsOfType returns columns matching the given type, in dataset order.
func (d *Dataset) ColumnsOfType(t Type) []*Column {
	var out []*Column
	for _, c := range d.cols {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// NumericColumns returns the numeric columns in dataset order.
func (d *Dataset) NumericColumns() []*Column { return d.ColumnsOfType(TypeNumeric) }

// GroupableColumns returns categorical and binary columns in dataset order.
func (d *Dataset) GroupableColumns() []*Column {
	var out []*Column
	for _, c := range d.cols {
		if c.Type == TypeCategorical || c.Type == TypeBinary {
			out = append(out, c)
		}
	}
	return out
}

// Overview summarizes dataset shape and typing.
type Overview struct {
	Rows               int
	Columns            int
	NumericColumns     int
	CategoricalColumns int
	BinaryColumns      int
	DatetimeColumns    int
	MissingValues      int
}

// Overview computes whole-dataset counts.
func (d *Dataset) Overview() Overview {
	o := Overview{Rows: d.Rows(), Columns: len(d.cols)}
	for _, c := range d.cols {
		switch c.Type {
		case TypeNumeric:
			o.NumericColumns++
		case TypeCategorical:
			o.CategoricalColumns++
		case TypeBinary:
			o.BinaryColumns++
		case TypeDatetime:
			o.DatetimeColumns++
		}
		o.MissingValues += c.MissingCount()
	}
	return o
}

// DerivedRevenue synthesizes a Revenue column as price × quantity when the
// dataset has numeric price and quantity columns. The result is computed on
// read and never stored back. Rows where either input is missing are missing.
func (d *Dataset) DerivedRevenue() (*Column, bool) {
	price := d.findNumericByName("price")
	qty := d.findNumericByName("quantity")
	if qty == nil {
		qty = d.findNumericByName("qty")
	}
	if price == nil || qty == nil {
		return nil, false
	}
	cells := make([]Cell, len(price.Cells))
	for i := range price.Cells {
		p, q := price.Cells[i], qty.Cells[i]
		if p.Kind != CellNumber || q.Kind != CellNumber {
			cells[i] = Cell{Kind: CellMissing}
			continue
		}
		cells[i] = Cell{Kind: CellNumber, Num: p.Num * q.Num}
	}
	return &Column{Name: "revenue", Original: "Revenue", Type: TypeNumeric, Cells: cells}, true
}

func (d *Dataset) findNumericByName(part string) *Column {
	// Exact normalized match first, then substring.
	if c, ok := d.byName[part]; ok && c.Type == TypeNumeric {
		return c
	}
	for _, c := range d.cols {
		if c.Type == TypeNumeric && strings.Contains(c.Name, part) {
			return c
		}
	}
	return nil
}
