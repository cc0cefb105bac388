package ocr

import (
	"context"
	"fmt"
)

// Provider names accepted by NewEngine.
const (
	ProviderTesseract  = "tesseract"
	ProviderVision     = "vision"
	ProviderDocumentAI = "documentai"
)

// EngineOptions selects and configures an engine.
type EngineOptions struct {
	Provider       string
	TessdataPrefix string
	DocumentAI     DocumentAIConfig
}

// NewEngine creates the engine named by opts.Provider.
func NewEngine(ctx context.Context, opts EngineOptions) (Engine, error) {
	switch opts.Provider {
	case ProviderTesseract, "":
		engine, err := NewTesseractEngine(opts.TessdataPrefix)
		if err != nil {
			return nil, err
		}
		return engine, nil
	case ProviderVision:
		engine, err := NewVisionEngine(ctx)
		if err != nil {
			return nil, err
		}
		return engine, nil
	case ProviderDocumentAI:
		engine, err := NewDocumentAIEngine(ctx, opts.DocumentAI)
		if err != nil {
			return nil, err
		}
		return engine, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, opts.Provider)
	}
}
