package xltables

import (
	"errors"
	"fmt"
)

// ErrSourceUnavailable indicates the workbook could not be fetched or decoded.
var ErrSourceUnavailable = errors.New("workbook source unavailable")

// ErrTableNotFound indicates no header cell matches the requested table name.
var ErrTableNotFound = errors.New("table not found")

// ErrRowNotFound indicates the table has no such row, or the row has no
// integer value.
var ErrRowNotFound = errors.New("row not found")

// SourceError represents a failure to obtain the workbook grid.
type SourceError struct {
	Location string
	Stage    string // "fetch", "decode"
	Err      error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("unable to %s workbook %q: %v", e.Stage, e.Location, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Is reports every SourceError as ErrSourceUnavailable.
func (e *SourceError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

// NewSourceError creates a new SourceError.
func NewSourceError(location, stage string, err error) *SourceError {
	return &SourceError{
		Location: location,
		Stage:    stage,
		Err:      err,
	}
}

// LookupError represents a table or row that could not be resolved.
type LookupError struct {
	Table string
	Row   string
	// Value is the resolved text that failed integer conversion, if any.
	Value string
	Err   error // ErrTableNotFound or ErrRowNotFound
}

func (e *LookupError) Error() string {
	switch {
	case errors.Is(e.Err, ErrTableNotFound):
		return fmt.Sprintf("table '%s' doesn't exist", e.Table)
	case e.Value != "":
		return fmt.Sprintf("row name '%s' in table '%s' has non-integer value '%s'", e.Row, e.Table, e.Value)
	default:
		return fmt.Sprintf("row name '%s' not found or no valid sum in table '%s'", e.Row, e.Table)
	}
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

func tableNotFound(table string) *LookupError {
	return &LookupError{Table: table, Err: ErrTableNotFound}
}

func rowNotFound(table, row, value string) *LookupError {
	return &LookupError{Table: table, Row: row, Value: value, Err: ErrRowNotFound}
}
