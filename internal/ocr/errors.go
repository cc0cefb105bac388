package ocr

import (
	"errors"
	"fmt"
)

// Common OCR processing errors
var (
	// ErrOCRFailed is returned when the recognition engine fails to process an image.
	ErrOCRFailed = errors.New("OCR processing failed")

	// ErrEmptyImage is returned when there is no image to recognize.
	ErrEmptyImage = errors.New("image is empty")

	// ErrMissingCredentials is returned when a cloud provider is selected but neither
	// GOOGLE_APPLICATION_CREDENTIALS nor GOOGLE_CREDENTIALS is configured.
	ErrMissingCredentials = errors.New("missing Google Cloud credentials: set GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS environment variable")

	// ErrUnknownProvider is returned by NewEngine for an unsupported provider name.
	ErrUnknownProvider = errors.New("unknown OCR provider")

	// ErrEngineClosed is returned when an engine is used after Close.
	ErrEngineClosed = errors.New("OCR engine is closed")
)

// OCRError wraps errors with additional context about the OCR processing failure.
type OCRError struct {
	// Op is the operation that failed (e.g., "RecognizeImage", "NewVisionEngine").
	Op string

	// Engine is the provider name.
	Engine string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *OCRError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("ocr[%s]: %s failed: %s: %v", e.Engine, e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("ocr[%s]: %s failed: %v", e.Engine, e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *OCRError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *OCRError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// WrapOCRError wraps an error as an OCRError if it isn't already one.
func WrapOCRError(engine, op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var ocrErr *OCRError
	if errors.As(err, &ocrErr) {
		return err
	}

	return &OCRError{
		Op:      op,
		Engine:  engine,
		Err:     err,
		Details: details,
	}
}
