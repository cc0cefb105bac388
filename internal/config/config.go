package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"discountocr/internal/logger"
)

// Output modes select what the PDF pipeline emits per document.
const (
	ModeSchema = "schema" // nested discount-scheme JSON
	ModeTables = "tables" // raw field record plus normalized table rows
)

// OCR providers usable for the scanned-page fallback and the KTP path.
const (
	ProviderTesseract  = "tesseract"
	ProviderVision     = "vision"
	ProviderDocumentAI = "documentai"
)

// ErrInvalidConfig is returned when an environment value cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	// Batch directories
	PDFInputDir string
	OutputDir   string
	OutputMode  string

	// OCR
	OCRProvider    string
	OCRLanguage    string
	KTPLanguages   []string
	OCRDPI         int
	TessdataPrefix string

	// Checkbox glyphs, each a set of runes
	CheckedGlyphs   string
	UncheckedGlyphs string

	ProcessTimeout time.Duration

	// Google Cloud, only read by the vision and documentai providers
	GoogleCloudProject    string
	GoogleCloudLocation   string
	DocumentAIProcessorID string

	// Optional batch report sheet
	GoogleSheetURL string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		PDFInputDir:           getEnv("PDF_INPUT_DIR", "test/"),
		OutputDir:             getEnv("OUTPUT_DIR", "ocr_results/"),
		OutputMode:            strings.ToLower(getEnv("OUTPUT_MODE", ModeSchema)),
		OCRProvider:           strings.ToLower(getEnv("OCR_PROVIDER", ProviderTesseract)),
		OCRLanguage:           getEnv("OCR_LANGUAGE", "eng"),
		KTPLanguages:          splitList(getEnv("KTP_LANGUAGES", "ind,eng")),
		TessdataPrefix:        getEnv("TESSDATA_PREFIX", ""),
		CheckedGlyphs:         getEnv("CHECKED_GLYPHS", "☑"),
		UncheckedGlyphs:       getEnv("UNCHECKED_GLYPHS", "☐"),
		GoogleCloudProject:    getEnv("GOOGLE_CLOUD_PROJECT", ""),
		GoogleCloudLocation:   getEnv("GOOGLE_CLOUD_LOCATION", "us"),
		DocumentAIProcessorID: getEnv("DOCUMENT_AI_PROCESSOR_ID", ""),
		GoogleSheetURL:        getEnv("GOOGLE_SHEET_URL", ""),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogFormat:             getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:         getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:             getEnv("LOG_OUTPUT", "stderr"),
	}

	var err error
	if config.OCRDPI, err = getEnvInt("OCR_DPI", 300); err != nil {
		return nil, err
	}
	timeoutSecs, err := getEnvInt("PROCESS_TIMEOUT", 1800)
	if err != nil {
		return nil, err
	}
	config.ProcessTimeout = time.Duration(timeoutSecs) * time.Second

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate checks value ranges and cross-field requirements. Commands call it
// again after applying flag overrides.
func (c *Config) Validate() error {
	switch c.OutputMode {
	case ModeSchema, ModeTables:
	default:
		return fmt.Errorf("%w: OUTPUT_MODE must be %q or %q, got %q", ErrInvalidConfig, ModeSchema, ModeTables, c.OutputMode)
	}
	switch c.OCRProvider {
	case ProviderTesseract, ProviderVision:
	case ProviderDocumentAI:
		if c.GoogleCloudProject == "" || c.DocumentAIProcessorID == "" {
			return fmt.Errorf("%w: GOOGLE_CLOUD_PROJECT and DOCUMENT_AI_PROCESSOR_ID are required for the documentai provider", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown OCR_PROVIDER %q", ErrInvalidConfig, c.OCRProvider)
	}
	if c.OCRLanguage == "" {
		return fmt.Errorf("%w: OCR_LANGUAGE is required", ErrInvalidConfig)
	}
	if len(c.KTPLanguages) == 0 {
		return fmt.Errorf("%w: KTP_LANGUAGES is required", ErrInvalidConfig)
	}
	if c.OCRDPI <= 0 {
		return fmt.Errorf("%w: OCR_DPI must be positive, got %d", ErrInvalidConfig, c.OCRDPI)
	}
	if c.ProcessTimeout <= 0 {
		return fmt.Errorf("%w: PROCESS_TIMEOUT must be positive", ErrInvalidConfig)
	}
	if c.CheckedGlyphs == "" || c.UncheckedGlyphs == "" {
		return fmt.Errorf("%w: CHECKED_GLYPHS and UNCHECKED_GLYPHS must not be empty", ErrInvalidConfig)
	}
	if strings.ContainsAny(c.CheckedGlyphs, c.UncheckedGlyphs) {
		return fmt.Errorf("%w: checked and unchecked glyph sets overlap", ErrInvalidConfig)
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidConfig, key, raw)
	}
	return value, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == '+' }) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
