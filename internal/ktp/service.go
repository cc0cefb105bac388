// Package ktp reads Indonesian identity cards (KTP) from photos.
package ktp

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	"discountocr/internal/logger"
	"discountocr/internal/ocr"
	"discountocr/pkg/models"
)

// DefaultLanguages are the recognition models used for ID cards.
var DefaultLanguages = []string{"ind", "eng"}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// IsImageFile reports whether name has a supported image extension.
func IsImageFile(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// Service recognizes ID-card images.
type Service struct {
	engine    ocr.Engine
	languages []string
	log       zerolog.Logger
}

// NewService creates a Service. Without languages DefaultLanguages is used.
func NewService(engine ocr.Engine, languages ...string) *Service {
	if len(languages) == 0 {
		languages = DefaultLanguages
	}
	return &Service{
		engine:    engine,
		languages: languages,
		log:       logger.WithComponent("ktp"),
	}
}

// ProcessFile loads the image at path, honouring EXIF orientation, and
// recognizes it.
func (s *Service) ProcessFile(ctx context.Context, path string) (*models.OCRResult, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", path, err)
	}

	result, err := s.ProcessImage(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.log.Info().Str("file", path).Int("chars", len(result.CleanedText)).Msg("ID card processed")
	return result, nil
}

// ProcessImage sharpens and binarizes img, recognizes it and cleans the text.
func (s *Service) ProcessImage(ctx context.Context, img image.Image) (*models.OCRResult, error) {
	raw, err := s.engine.RecognizeImage(ctx, ocr.PreprocessIDCard(img), s.languages)
	if err != nil {
		return nil, err
	}
	result := &models.OCRResult{RawText: raw}
	result.Clean(Clean)
	return result, nil
}
