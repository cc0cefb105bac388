package cmd

import (
	"github.com/spf13/cobra"

	"discountocr/internal/logger"
	"discountocr/internal/pipeline"
)

var pdfCmd = &cobra.Command{
	Use:   "pdf [pdf-file]",
	Short: "Extract a single discount-scheme PDF",
	Long: `Process one discount-scheme PDF and print its JSON document.

In schema mode (default) the output is the ERP discount-schema import
document. In tables mode it is the flat field record together with the
normalized price table rows:

  {"metadata": {...}, "tables": [[{"product": ..., "UOM": ..., ...}]]}

The same environment variables as the batch command apply.`,
	Example: `  # Print the discount schema
  discountocr pdf scheme.pdf

  # Save raw fields and tables
  discountocr pdf scheme.pdf --mode tables -o scheme.json`,
	Args: cobra.ExactArgs(1),
	RunE: runPDF,
}

func init() {
	rootCmd.AddCommand(pdfCmd)

	pdfCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	pdfCmd.Flags().String("mode", pipeline.ModeSchema, "Output mode: schema or tables (default: OUTPUT_MODE)")
}

func runPDF(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("pdf")

	pdfPath := args[0]
	outputPath, _ := cmd.Flags().GetString("output")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	fileInfo, err := validatePDFFile(pdfPath, log)
	if err != nil {
		return err
	}

	log.Info().
		Str("file", pdfPath).
		Int64("size", fileInfo.Size()).
		Str("mode", cfg.OutputMode).
		Str("provider", cfg.OCRProvider).
		Msg("Processing PDF")

	ctx, cancel := createContextWithTimeout(cfg.ProcessTimeout, log)
	defer cancel()

	ext, err := createExtractionService(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer ext.Close()

	result, err := ext.Processor().ProcessFile(ctx, pdfPath)
	if err != nil {
		return handleProcessingError(err, log)
	}
	if failures := result.OCRFailures(); failures > 0 {
		log.Warn().Int("pages", failures).Msg("Some pages could not be recognized and were treated as empty")
	}

	data, err := result.JSON()
	if err != nil {
		return handleProcessingError(err, log)
	}
	return writeOutput(data, outputPath, log)
}
