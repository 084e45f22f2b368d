package parser

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange indicates a row index outside the table.
var ErrIndexOutOfRange = errors.New("row index out of range")

// ErrUnsupportedFormat indicates a table file with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported table format")

// ErrEmptyTable indicates a table without a header line.
var ErrEmptyTable = errors.New("empty table")

// ErrNoIDColumn indicates the identifier column is missing from the header.
var ErrNoIDColumn = errors.New("identifier column not found")

// ErrUnknownField indicates a value field other than incidence or coverage.
var ErrUnknownField = errors.New("unknown value field")

// IndexError reports a row index outside [0, Len).
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("row %d not in table of %d rows", e.Index, e.Len)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}
