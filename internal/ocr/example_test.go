package ocr_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/disintegration/imaging"

	"discountocr/internal/ocr"
)

// Example recognizes a scanned page with the local tesseract engine.
func Example() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	engine, err := ocr.NewEngine(ctx, ocr.EngineOptions{Provider: ocr.ProviderTesseract})
	if err != nil {
		log.Fatalf("Failed to create OCR engine: %v", err)
	}
	defer engine.Close()

	page, err := imaging.Open("scan.png")
	if err != nil {
		log.Fatalf("Failed to load image: %v", err)
	}

	text, err := engine.RecognizeImage(ctx, ocr.PreprocessDocument(page), []string{"eng"})
	if err != nil {
		log.Fatalf("OCR failed: %v", err)
	}
	fmt.Println(text)
}

// Example_documentAI uses a Document AI OCR processor. Credentials come from
// GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS.
func Example_documentAI() {
	ctx := context.Background()

	engine, err := ocr.NewEngine(ctx, ocr.EngineOptions{
		Provider: ocr.ProviderDocumentAI,
		DocumentAI: ocr.DocumentAIConfig{
			ProjectID:   "my-project",
			Location:    "eu",
			ProcessorID: "abc123",
		},
	})
	if err != nil {
		log.Fatalf("Failed to create OCR engine: %v", err)
	}
	defer engine.Close()

	fmt.Println(engine.Name())
}
