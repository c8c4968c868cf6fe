package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// New validates raw tabular data, normalizes headers, infers column types,
// and returns an immutable Dataset. Short rows are padded with missing cells;
// extra fields beyond the header are dropped.
func New(name string, headers []string, rows [][]string) (*Dataset, error) {
	ncol := len(headers)
	if ncol < 1 || ncol > MaxColumns {
		return nil, &ColumnCountError{Columns: ncol}
	}
	if len(rows) == 0 {
		return nil, &EmptyDatasetError{}
	}
	if len(rows) > MaxRows {
		return nil, &TooManyRowsError{Rows: len(rows)}
	}

	cols := make([]*Column, ncol)
	seen := make(map[string]struct{}, ncol)
	for i, h := range headers {
		norm := NormalizeName(h)
		if _, dup := seen[norm]; dup {
			return nil, &DuplicateColumnError{Name: norm}
		}
		seen[norm] = struct{}{}
		cols[i] = &Column{Name: norm, Original: strings.TrimSpace(h), Cells: make([]Cell, len(rows))}
	}

	for r, row := range rows {
		for i := 0; i < ncol; i++ {
			if i < len(row) {
				cols[i].Cells[r] = parseCell(row[i])
			} else {
				cols[i].Cells[r] = Cell{Kind: CellMissing}
			}
		}
	}

	for _, c := range cols {
		inferType(c)
	}

	d := &Dataset{Name: name, cols: cols, byName: make(map[string]*Column, ncol)}
	for _, c := range cols {
		d.byName[c.Name] = c
	}
	return d, nil
}

// LoadFile loads a tabular file by extension: .csv/.tsv or .xlsx.
func LoadFile(path string) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return LoadCSV(path)
	case ".xlsx":
		return LoadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported file format %q (use .csv, .tsv or .xlsx)", filepath.Ext(path))
	}
}

// LoadCSV reads a CSV or TSV file. The first record is the header.
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comma = sniffDelimiter(path)

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &EmptyDatasetError{}
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	var rows [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		row := make([]string, len(rec))
		copy(row, rec)
		rows = append(rows, row)
	}
	return New(datasetName(path), header, rows)
}

// LoadXLSX reads the first sheet of a workbook.
func LoadXLSX(path string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &EmptyDatasetError{}
	}
	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(all) == 0 {
		return nil, &EmptyDatasetError{}
	}
	return New(datasetName(path), all[0], all[1:])
}

// datasetName derives a display name from the file path, minus extension.
func datasetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
