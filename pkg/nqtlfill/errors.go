package nqtlfill

import (
	"errors"
	"fmt"

	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/injector"
)

// ErrFileNotFound indicates an input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates an input is not a valid xlsx or docx package.
var ErrInvalidFormat = errors.New("invalid file format")

// ErrZeroUpdates indicates the run wrote no document row. It is reported as
// a warning, never returned as an error.
var ErrZeroUpdates = errors.New("no document rows were updated")

// SourceReadError represents a workbook that, or a sheet that, could not be
// read. The run continues with whatever was extracted.
type SourceReadError struct {
	Sheet string // empty when the whole workbook is unreadable
	Err   error
}

func (e *SourceReadError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("cannot read workbook: %v", e.Err)
	}
	return fmt.Sprintf("cannot read sheet %q: %v", e.Sheet, e.Err)
}

func (e *SourceReadError) Unwrap() error {
	return e.Err
}

// NewSourceReadError creates a new SourceReadError.
func NewSourceReadError(sheet string, err error) *SourceReadError {
	return &SourceReadError{
		Sheet: sheet,
		Err:   err,
	}
}

// RowError is a document row skipped during injection.
type RowError = injector.RowError

// splitErrors flattens an errors.Join result.
func splitErrors(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
