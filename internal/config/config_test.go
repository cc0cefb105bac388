package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PDF_INPUT_DIR", "OUTPUT_DIR", "OUTPUT_MODE", "OCR_PROVIDER", "OCR_LANGUAGE",
		"KTP_LANGUAGES", "OCR_DPI", "CHECKED_GLYPHS", "UNCHECKED_GLYPHS", "PROCESS_TIMEOUT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test/", cfg.PDFInputDir)
	assert.Equal(t, "ocr_results/", cfg.OutputDir)
	assert.Equal(t, ModeSchema, cfg.OutputMode)
	assert.Equal(t, ProviderTesseract, cfg.OCRProvider)
	assert.Equal(t, "eng", cfg.OCRLanguage)
	assert.Equal(t, []string{"ind", "eng"}, cfg.KTPLanguages)
	assert.Equal(t, 300, cfg.OCRDPI)
	assert.Equal(t, "☑", cfg.CheckedGlyphs)
	assert.Equal(t, "☐", cfg.UncheckedGlyphs)
	assert.Equal(t, 30*time.Minute, cfg.ProcessTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("OUTPUT_MODE", "TABLES")
	t.Setenv("OCR_DPI", "200")
	t.Setenv("KTP_LANGUAGES", "ind+eng")
	t.Setenv("CHECKED_GLYPHS", "☑✔")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ModeTables, cfg.OutputMode)
	assert.Equal(t, 200, cfg.OCRDPI)
	assert.Equal(t, []string{"ind", "eng"}, cfg.KTPLanguages)
	assert.Equal(t, "☑✔", cfg.CheckedGlyphs)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non_numeric_dpi", key: "OCR_DPI", value: "high"},
		{name: "zero_dpi", key: "OCR_DPI", value: "0"},
		{name: "unknown_mode", key: "OUTPUT_MODE", value: "xml"},
		{name: "unknown_provider", key: "OCR_PROVIDER", value: "easyocr"},
		{name: "documentai_without_processor", key: "OCR_PROVIDER", value: "documentai"},
		{name: "overlapping_glyphs", key: "UNCHECKED_GLYPHS", value: "☑"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GOOGLE_CLOUD_PROJECT", "")
			t.Setenv("DOCUMENT_AI_PROCESSOR_ID", "")
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
