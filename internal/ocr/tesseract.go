package ocr

import (
	"context"
	"image"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"github.com/rs/zerolog"

	"discountocr/internal/logger"
)

// TesseractEngine runs recognition in-process through libtesseract.
// It is not safe for concurrent use.
type TesseractEngine struct {
	client *gosseract.Client
	log    zerolog.Logger
}

// NewTesseractEngine creates a tesseract client. tessdataPrefix may be empty
// to use the library default.
func NewTesseractEngine(tessdataPrefix string) (*TesseractEngine, error) {
	client := gosseract.NewClient()
	if tessdataPrefix != "" {
		if err := client.SetTessdataPrefix(tessdataPrefix); err != nil {
			_ = client.Close()
			return nil, WrapOCRError(ProviderTesseract, "NewTesseractEngine", err, "invalid tessdata prefix")
		}
	}
	return &TesseractEngine{
		client: client,
		log:    logger.WithComponent("ocr-tesseract"),
	}, nil
}

// Name returns the provider name.
func (t *TesseractEngine) Name() string { return ProviderTesseract }

// RecognizeImage implements Engine. The context is only checked before the
// call starts.
func (t *TesseractEngine) RecognizeImage(ctx context.Context, img image.Image, languages []string) (string, error) {
	const op = "RecognizeImage"

	if t.client == nil {
		return "", WrapOCRError(ProviderTesseract, op, ErrEngineClosed, "")
	}
	if err := ctx.Err(); err != nil {
		return "", WrapOCRError(ProviderTesseract, op, err, "")
	}

	data, err := encodePNG(img)
	if err != nil {
		return "", WrapOCRError(ProviderTesseract, op, err, "failed to encode image")
	}
	if err := t.client.SetLanguage(languages...); err != nil {
		return "", WrapOCRError(ProviderTesseract, op, err, "languages: "+strings.Join(languages, "+"))
	}
	if err := t.client.SetImageFromBytes(data); err != nil {
		return "", WrapOCRError(ProviderTesseract, op, ErrOCRFailed, err.Error())
	}

	text, err := t.client.Text()
	if err != nil {
		return "", WrapOCRError(ProviderTesseract, op, ErrOCRFailed, err.Error())
	}

	t.log.Debug().
		Strs("languages", languages).
		Int("text_length", len(text)).
		Msg("Tesseract recognition completed")
	return text, nil
}

// Close releases the tesseract client.
func (t *TesseractEngine) Close() error {
	if t.client == nil {
		return nil
	}
	err := t.client.Close()
	t.client = nil
	return err
}
