package ocr

import (
	"context"
	"fmt"
	"image"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"
)

// DocumentAIConfig identifies the Document AI OCR processor.
type DocumentAIConfig struct {
	// ProjectID is the Google Cloud project ID where Document AI is enabled.
	ProjectID string

	// Location is the processing location ("us", "eu").
	Location string

	// ProcessorID is the ID of an OCR (Document OCR) processor.
	ProcessorID string
}

func (c DocumentAIConfig) processorName() string {
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s", c.ProjectID, c.Location, c.ProcessorID)
}

// DocumentAIEngine implements Engine using a Document AI OCR processor.
type DocumentAIEngine struct {
	client *documentai.DocumentProcessorClient
	config DocumentAIConfig
}

// NewDocumentAIEngine creates a processor client for the configured location.
func NewDocumentAIEngine(ctx context.Context, config DocumentAIConfig) (*DocumentAIEngine, error) {
	const op = "NewDocumentAIEngine"

	if config.ProjectID == "" || config.ProcessorID == "" {
		return nil, WrapOCRError(ProviderDocumentAI, op, ErrOCRFailed, "project and processor ID are required")
	}
	if config.Location == "" {
		config.Location = "us"
	}

	clientOptions := credentialOptions()
	if config.Location != "us" {
		endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", config.Location)
		clientOptions = append(clientOptions, option.WithEndpoint(endpoint))
	}

	client, err := documentai.NewDocumentProcessorClient(ctx, clientOptions...)
	if err != nil {
		if len(credentialOptions()) == 0 {
			return nil, WrapOCRError(ProviderDocumentAI, op, ErrMissingCredentials, "no credentials found in environment")
		}
		return nil, WrapOCRError(ProviderDocumentAI, op, err, fmt.Sprintf("failed to create Document AI client for location: %s", config.Location))
	}

	return &DocumentAIEngine{client: client, config: config}, nil
}

// Name returns the provider name.
func (d *DocumentAIEngine) Name() string { return ProviderDocumentAI }

// RecognizeImage implements Engine. Language hints are passed through the
// processor's OCR config.
func (d *DocumentAIEngine) RecognizeImage(ctx context.Context, img image.Image, languages []string) (string, error) {
	const op = "RecognizeImage"

	data, err := encodePNG(img)
	if err != nil {
		return "", WrapOCRError(ProviderDocumentAI, op, err, "failed to encode image")
	}

	req := &documentaipb.ProcessRequest{
		Name: d.config.processorName(),
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  data,
				MimeType: "image/png",
			},
		},
		ProcessOptions: &documentaipb.ProcessOptions{
			OcrConfig: &documentaipb.OcrConfig{
				Hints: &documentaipb.OcrConfig_Hints{
					LanguageHints: toLanguageHints(languages),
				},
			},
		},
	}

	resp, err := d.client.ProcessDocument(ctx, req)
	if err != nil {
		return "", WrapOCRError(ProviderDocumentAI, op, ErrOCRFailed, fmt.Sprintf("processor %s: %v", d.config.ProcessorID, err))
	}
	if resp.GetDocument() == nil {
		return "", nil
	}
	return resp.GetDocument().GetText(), nil
}

// Close closes the underlying Document AI client.
func (d *DocumentAIEngine) Close() error {
	if d.client != nil {
		return d.client.Close()
	}
	return nil
}
