// Package ocr recognizes text in raster images.
//
// Three engines are available behind the Engine interface:
//   - tesseract: local Tesseract through gosseract (needs libtesseract and the
//     trained data for each requested language)
//   - vision: Google Cloud Vision document text detection
//   - documentai: a Google Document AI OCR processor
//
// Images are preprocessed with one of the fixed filter chains in
// preprocess.go before they reach an engine. Cloud engines honour context
// cancellation; a running tesseract call cannot be interrupted.
package ocr

import (
	"bytes"
	"context"
	"image"
	"image/png"
)

// Engine recognizes text in a single image.
type Engine interface {
	// RecognizeImage returns the text found in img. Languages are Tesseract
	// language codes ("eng", "ind"); cloud engines translate them into hints.
	RecognizeImage(ctx context.Context, img image.Image, languages []string) (string, error)

	// Name returns the provider name used in logs and errors.
	Name() string

	// Close releases any resources held by the engine.
	Close() error
}

// languageHints maps Tesseract codes to the BCP-47 codes used by Google APIs.
var languageHints = map[string]string{
	"eng": "en",
	"ind": "id",
}

func toLanguageHints(languages []string) []string {
	hints := make([]string, 0, len(languages))
	for _, lang := range languages {
		if hint, ok := languageHints[lang]; ok {
			hints = append(hints, hint)
			continue
		}
		hints = append(hints, lang)
	}
	return hints
}

func encodePNG(img image.Image) ([]byte, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
