package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownMode is returned for an output mode other than schema or tables.
	ErrUnknownMode = errors.New("unknown output mode")

	// ErrNoPDFFiles is returned by a batch run over a directory without PDFs.
	ErrNoPDFFiles = errors.New("no PDF files found")
)

// DocumentError is a failure that aborts processing of one document.
type DocumentError struct {
	// File is the document path.
	File string

	// Op is the step that failed ("open", "page", "write", ...).
	Op string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.File, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *DocumentError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches the underlying error.
func (e *DocumentError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

func documentError(file, op string, err error) error {
	if err == nil {
		return nil
	}
	var docErr *DocumentError
	if errors.As(err, &docErr) {
		return err
	}
	return &DocumentError{File: file, Op: op, Err: err}
}
