package dataset

import (
	"fmt"
	"io/fs"
)

// NotFoundError indicates the input path does not exist.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("input not found: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err == nil {
		return fs.ErrNotExist
	}
	return e.Err
}

// FormatError indicates the input is not parseable as delimited tabular text.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("malformed csv: %v", e.Err)
	}
	return fmt.Sprintf("malformed csv %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// MissingColumnError indicates an expected column is absent from the dataset.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column: %s", e.Column)
}
