package services

import (
	"context"

	"discountocr/pkg/models"
)

// ExtractionService turns scanned or digital business documents into
// structured data.
type ExtractionService interface {
	// ProcessPDF extracts a discount-scheme PDF and maps it onto the ERP
	// import document.
	ProcessPDF(ctx context.Context, path string) (*models.DiscountSchema, error)

	// ExtractTables extracts a discount-scheme PDF without schema mapping:
	// the flat field record and the normalized table rows.
	ExtractTables(ctx context.Context, path string) (*models.RawExtraction, error)

	// ProcessExcel reads the first sheet of a workbook as records.
	ProcessExcel(ctx context.Context, path string) ([]models.SheetRecord, error)

	// ProcessKTP recognizes an Indonesian ID-card photo.
	ProcessKTP(ctx context.Context, path string) (*models.OCRResult, error)

	// Close releases the OCR engine.
	Close() error
}
