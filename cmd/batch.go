package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"discountocr/internal/logger"
	"discountocr/internal/pipeline"
	"discountocr/internal/sheets"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Extract every discount-scheme PDF in a directory",
	Long: `Process all PDF files directly inside the input directory, one at a time in
name order, and write one JSON file per input (<name>.pdf.json) into the
output directory.

Pages without a text layer are rasterized and recognized with the configured
OCR provider. A file that cannot be read is reported and skipped; the batch
continues with the remaining files.

Environment variables:
  PDF_INPUT_DIR    - Input directory (default: test/)
  OUTPUT_DIR       - Output directory, created if missing (default: ocr_results/)
  OUTPUT_MODE      - schema or tables (default: schema)
  OCR_PROVIDER     - tesseract, vision or documentai (default: tesseract)
  OCR_LANGUAGE     - Tesseract language for scanned pages (default: eng)
  OCR_DPI          - Rasterization resolution (default: 300)
  CHECKED_GLYPHS   - Characters marking a checked box (default: ☑)
  UNCHECKED_GLYPHS - Characters marking an unchecked box (default: ☐)
  PROCESS_TIMEOUT  - Timeout for the whole run in seconds (default: 1800)
  GOOGLE_SHEET_URL - Optional Google Sheet receiving one report row per file`,
	Example: `  # Process test/ into ocr_results/
  discountocr batch

  # Custom directories, raw fields and tables instead of the ERP schema
  discountocr batch --input ./schemes --output ./out --mode tables

  # Recognize scanned pages with Google Cloud Vision
  discountocr batch --ocr-provider vision

  # Also append a report to a Google Sheet
  discountocr batch --sheet-url https://docs.google.com/spreadsheets/d/<id>/edit`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().String("input", "", "Input directory (default: PDF_INPUT_DIR)")
	batchCmd.Flags().String("output", "", "Output directory (default: OUTPUT_DIR)")
	batchCmd.Flags().String("mode", pipeline.ModeSchema, "Output mode: schema or tables (default: OUTPUT_MODE)")
	batchCmd.Flags().String("sheet-url", "", "Google Sheet for the batch report (default: GOOGLE_SHEET_URL)")
	batchCmd.Flags().String("sheet-name", sheets.DefaultSheetName, "Sheet tab for the batch report")
}

func runBatch(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("batch")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	inputDir, _ := cmd.Flags().GetString("input")
	if inputDir == "" {
		inputDir = cfg.PDFInputDir
	}
	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}

	sheetURL, _ := cmd.Flags().GetString("sheet-url")
	if sheetURL == "" {
		sheetURL = cfg.GoogleSheetURL
	}
	sheetName, _ := cmd.Flags().GetString("sheet-name")

	if !isDir(inputDir) {
		return fmt.Errorf("input directory not found: %s", inputDir)
	}

	log.Info().
		Str("input", inputDir).
		Str("output", outputDir).
		Str("mode", cfg.OutputMode).
		Str("provider", cfg.OCRProvider).
		Dur("timeout", cfg.ProcessTimeout).
		Msg("Starting batch processing")

	ctx, cancel := createContextWithTimeout(cfg.ProcessTimeout, log)
	defer cancel()

	ext, err := createExtractionService(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer ext.Close()

	batch := &pipeline.Batch{
		Processor: ext.Processor(),
		OnFile: func(name string) {
			fmt.Printf("Processing PDF: %s\n", name)
		},
		OnResult: func(result pipeline.BatchResult) {
			if result.Error != nil {
				fmt.Printf("  %s - %s (%v)\n", result.Filename, statusLabel(result.Status), result.Error)
				return
			}
			fmt.Printf("  %s - %s\n", result.Filename, statusLabel(result.Status))
		},
	}

	summary, err := batch.Run(ctx, inputDir, outputDir)
	if errors.Is(err, pipeline.ErrNoPDFFiles) {
		fmt.Printf("No PDF files found in %s\n", inputDir)
		return nil
	}
	if summary != nil && len(summary.Results) > 0 {
		printSummary(summary, outputDir)
	}
	if err != nil {
		return handleProcessingError(err, log)
	}

	fmt.Println("PDF processing complete!")

	if sheetURL != "" {
		if err := writeSheetReport(ctx, sheetURL, sheetName, summary); err != nil {
			return err
		}
	}
	if failed := summary.Count(pipeline.StatusError); failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(summary.Results))
	}
	return nil
}

func printSummary(summary *pipeline.Summary, outputDir string) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("                 SUMMARY")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("Output directory: %s\n", outputDir)
	fmt.Printf("Succeeded: %d\n", summary.Count(pipeline.StatusSuccess)+summary.Count(pipeline.StatusWarning))
	if warnings := summary.Count(pipeline.StatusWarning); warnings > 0 {
		fmt.Printf("With OCR failures: %d\n", warnings)
	}
	fmt.Printf("Failed: %d\n", summary.Count(pipeline.StatusError))
	fmt.Printf("Pages recognized with OCR: %d (%d failed)\n", summary.OCRPages(), summary.OCRFailures())
	for _, failed := range summary.Failed() {
		fmt.Printf("  %s: %v\n", failed.Filename, failed.Error)
	}
	fmt.Printf("Duration: %s\n", summary.Duration.Round(time.Millisecond))
	fmt.Println(strings.Repeat("=", 50))
}

func writeSheetReport(ctx context.Context, sheetURL, sheetName string, summary *pipeline.Summary) error {
	fmt.Println("Writing report to Google Sheet...")

	sheetsService, err := sheets.NewSheetsService(ctx, sheetURL)
	if err != nil {
		return fmt.Errorf("failed to create Google Sheets service: %w", err)
	}
	if err := sheetsService.WriteBatchResults(ctx, summary.Results, sheetName); err != nil {
		return fmt.Errorf("failed to write to Google Sheet: %w", err)
	}

	fmt.Printf("Sheet: %s\n", sheetName)
	fmt.Printf("Rows added: %d\n", len(summary.Results))
	return nil
}

// statusLabel returns a marker for a batch status.
func statusLabel(status string) string {
	switch status {
	case pipeline.StatusSuccess:
		return "✅"
	case pipeline.StatusWarning:
		return "⚠️"
	case pipeline.StatusError:
		return "❌"
	default:
		return "❓"
	}
}
