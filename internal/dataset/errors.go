package dataset

import (
	"errors"
	"fmt"
)

// Load-time schema errors. A failed load leaves the caller's previous
// dataset untouched.

// DuplicateColumnError indicates two headers normalized to the same name.
type DuplicateColumnError struct {
	Name string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("column names collide after normalization: %q appears more than once; please make column names distinct", e.Name)
}

// EmptyDatasetError indicates a file with headers but no data rows.
type EmptyDatasetError struct{}

func (e *EmptyDatasetError) Error() string { return "the file contains no data rows" }

// TooManyRowsError indicates the row limit was exceeded.
type TooManyRowsError struct {
	Rows int
}

func (e *TooManyRowsError) Error() string {
	return fmt.Sprintf("file has %d rows; maximum allowed is %d", e.Rows, MaxRows)
}

// ColumnCountError indicates zero columns or too many columns.
type ColumnCountError struct {
	Columns int
}

func (e *ColumnCountError) Error() string {
	if e.Columns < 1 {
		return "file must have at least 1 column"
	}
	return fmt.Sprintf("file has %d columns; maximum allowed is %d", e.Columns, MaxColumns)
}

// IsSchemaError reports whether err is any load-time schema validation error.
func IsSchemaError(err error) bool {
	var dup *DuplicateColumnError
	var empty *EmptyDatasetError
	var rows *TooManyRowsError
	var cols *ColumnCountError
	return errors.As(err, &dup) || errors.As(err, &empty) || errors.As(err, &rows) || errors.As(err, &cols)
}
