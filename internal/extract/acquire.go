// Package extract turns page text and table grids into the flat field
// record, table rows and customer references of a discount scheme.
package extract

import (
	"context"
	"image"
	"strings"

	"github.com/rs/zerolog"

	"discountocr/internal/logger"
	"discountocr/internal/ocr"
)

// DefaultDPI is the rasterization resolution for the OCR fallback.
const DefaultDPI = 300

// TextSource tells where a page's text came from.
type TextSource string

const (
	// SourceNative means the embedded text layer was non-blank.
	SourceNative TextSource = "native"

	// SourceOCR means the page was rasterized and recognized. Text may
	// still be empty when OCRErr is set.
	SourceOCR TextSource = "ocr"

	// SourceNone means the page had no text layer and OCR was disabled.
	SourceNone TextSource = "none"
)

// PageSource is the part of a PDF page text acquisition needs.
type PageSource interface {
	Number() int
	Text() (string, error)
	Render(dpi int) (image.Image, error)
}

// PageText is the acquired text of one page.
type PageText struct {
	Page   int
	Text   string
	Source TextSource

	// NativeErr is set when the text layer could not be read. The page is
	// then treated as having no text layer.
	NativeErr error

	// OCRErr is set when rendering or recognition failed. Text is empty.
	OCRErr error
}

// OCRFailed reports whether OCR was attempted and failed.
func (p PageText) OCRFailed() bool {
	return p.Source == SourceOCR && p.OCRErr != nil
}

// Acquirer reads page text, falling back to OCR for pages whose text layer
// is blank.
type Acquirer struct {
	engine    ocr.Engine
	languages []string
	dpi       int
	log       zerolog.Logger
}

// NewAcquirer creates an Acquirer. A nil engine disables the OCR fallback.
// A non-positive dpi selects DefaultDPI.
func NewAcquirer(engine ocr.Engine, dpi int, languages ...string) *Acquirer {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &Acquirer{
		engine:    engine,
		languages: languages,
		dpi:       dpi,
		log:       logger.WithComponent("acquire"),
	}
}

// Acquire returns the text of page. It never fails: OCR problems are
// recorded on the result and the page yields empty text.
func (a *Acquirer) Acquire(ctx context.Context, page PageSource) PageText {
	result := PageText{Page: page.Number()}

	text, err := page.Text()
	if err != nil {
		a.log.Warn().Err(err).Int("page", result.Page).Msg("Failed to read text layer, treating page as scanned")
		result.NativeErr = err
		text = ""
	}
	if strings.TrimSpace(text) != "" {
		result.Text = text
		result.Source = SourceNative
		return result
	}

	if a.engine == nil {
		result.Source = SourceNone
		return result
	}

	result.Source = SourceOCR
	ocrText, err := a.recognize(ctx, page)
	if err != nil {
		a.log.Warn().Err(err).Int("page", result.Page).Str("engine", a.engine.Name()).Msg("OCR failed, continuing with empty page text")
		result.OCRErr = err
		return result
	}

	a.log.Debug().Int("page", result.Page).Int("chars", len(ocrText)).Msg("Page recognized with OCR")
	result.Text = ocrText
	return result
}

func (a *Acquirer) recognize(ctx context.Context, page PageSource) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	img, err := page.Render(a.dpi)
	if err != nil {
		return "", err
	}
	return a.engine.RecognizeImage(ctx, ocr.PreprocessDocument(img), a.languages)
}
