package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"discountocr/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "discountocr",
	Short: "Extract discount schemes from PDF forms into ERP import JSON",
	Long: `discountocr reads discount-scheme PDF forms, recognizes scanned pages with
OCR, extracts the labelled header fields, checkbox groups, customer outlets
and price tables, and writes the nested discount-schema JSON used by the ERP
import.

Auxiliary commands convert Excel workbooks to JSON records and read
Indonesian ID cards (KTP) from photos.

Configuration is read from the environment (and a .env file). See the
help of each command for the variables it uses.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("discountocr executed")

		fmt.Println("discountocr - discount scheme extraction")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Int("timeout", 0, "Processing timeout in seconds (default: PROCESS_TIMEOUT)")
	rootCmd.PersistentFlags().String("ocr-provider", "", "OCR provider: tesseract, vision or documentai (default: OCR_PROVIDER)")
}
