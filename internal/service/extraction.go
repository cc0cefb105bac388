// Package service wires configuration, the OCR engine and the extraction
// packages into a single ExtractionService.
package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"discountocr/internal/config"
	"discountocr/internal/extract"
	"discountocr/internal/ktp"
	"discountocr/internal/logger"
	"discountocr/internal/ocr"
	"discountocr/internal/pdfdoc"
	"discountocr/internal/pipeline"
	"discountocr/internal/spreadsheet"
	"discountocr/pkg/models"
	"discountocr/pkg/services"
)

// Extraction implements services.ExtractionService. It is not safe for
// concurrent use because the OCR engine is shared.
type Extraction struct {
	engine    ocr.Engine
	processor *pipeline.Processor
	ktp       *ktp.Service
	log       zerolog.Logger
}

var _ services.ExtractionService = (*Extraction)(nil)

// New creates the OCR engine selected by cfg and the processors using it.
func New(ctx context.Context, cfg *config.Config) (*Extraction, error) {
	engine, err := ocr.NewEngine(ctx, ocr.EngineOptions{
		Provider:       cfg.OCRProvider,
		TessdataPrefix: cfg.TessdataPrefix,
		DocumentAI: ocr.DocumentAIConfig{
			ProjectID:   cfg.GoogleCloudProject,
			Location:    cfg.GoogleCloudLocation,
			ProcessorID: cfg.DocumentAIProcessorID,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create OCR engine: %w", err)
	}

	ext, err := NewWithEngine(engine, cfg)
	if err != nil {
		_ = engine.Close()
		return nil, err
	}
	return ext, nil
}

// NewWithEngine builds the service around an existing engine, which the
// service then owns.
func NewWithEngine(engine ocr.Engine, cfg *config.Config) (*Extraction, error) {
	fields, err := extract.NewFieldExtractor(extract.Glyphs{
		Checked:   cfg.CheckedGlyphs,
		Unchecked: cfg.UncheckedGlyphs,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid checkbox glyphs: %w", err)
	}

	acquirer := extract.NewAcquirer(engine, cfg.OCRDPI, cfg.OCRLanguage)
	processor, err := pipeline.NewProcessor(pdfdoc.FileOpener{}, acquirer, fields, cfg.OutputMode)
	if err != nil {
		return nil, err
	}

	return &Extraction{
		engine:    engine,
		processor: processor,
		ktp:       ktp.NewService(engine, cfg.KTPLanguages...),
		log:       logger.WithComponent("service"),
	}, nil
}

// Processor returns the PDF processor, for batch runs.
func (e *Extraction) Processor() *pipeline.Processor {
	return e.processor
}

// ProcessPDF implements services.ExtractionService.
func (e *Extraction) ProcessPDF(ctx context.Context, path string) (*models.DiscountSchema, error) {
	result, err := e.processor.ProcessFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return result.Schema(), nil
}

// ExtractTables implements services.ExtractionService.
func (e *Extraction) ExtractTables(ctx context.Context, path string) (*models.RawExtraction, error) {
	result, err := e.processor.ProcessFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return result.Raw(), nil
}

// ProcessExcel implements services.ExtractionService.
func (e *Extraction) ProcessExcel(ctx context.Context, path string) ([]models.SheetRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return spreadsheet.ReadFile(path)
}

// ProcessKTP implements services.ExtractionService.
func (e *Extraction) ProcessKTP(ctx context.Context, path string) (*models.OCRResult, error) {
	return e.ktp.ProcessFile(ctx, path)
}

// Close implements services.ExtractionService.
func (e *Extraction) Close() error {
	if e.engine == nil {
		return nil
	}
	err := e.engine.Close()
	e.engine = nil
	if err != nil {
		e.log.Warn().Err(err).Msg("Failed to close OCR engine")
	}
	return err
}
