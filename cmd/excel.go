package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"discountocr/internal/logger"
	"discountocr/internal/pipeline"
	"discountocr/internal/schema"
	"discountocr/internal/spreadsheet"
)

var excelCmd = &cobra.Command{
	Use:   "excel [file-or-directory]",
	Short: "Convert Excel workbooks to JSON records",
	Long: `Read the first sheet of an .xlsx workbook and write its rows as a JSON list
of records keyed by the header row. Column order is kept, numeric cells are
written as numbers and empty cells as null.

With a directory, every .xlsx and .xlsm file directly inside it is converted
to <name>.json in the output directory. With a single file, the JSON is
printed unless --output is given.`,
	Example: `  # Print one workbook
  discountocr excel INT_Diskon_Skema/scheme.xlsx

  # Convert a folder
  discountocr excel INT_Diskon_Skema/ --output ocr_results/`,
	Args: cobra.ExactArgs(1),
	RunE: runExcel,
}

func init() {
	rootCmd.AddCommand(excelCmd)

	excelCmd.Flags().String("output", "", "Output directory (default: OUTPUT_DIR for directories, stdout for a file)")
}

func isWorkbook(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return true
	}
	return false
}

func runExcel(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("excel")

	input := args[0]
	outputDir, _ := cmd.Flags().GetString("output")

	if !isDir(input) {
		if _, err := validateInputFile(input, log); err != nil {
			return err
		}
		data, err := convertWorkbook(input)
		if err != nil {
			return err
		}
		outputPath := ""
		if outputDir != "" {
			outputPath = filepath.Join(outputDir, filepath.Base(input)+".json")
		}
		return writeOutput(data, outputPath, log)
	}

	if outputDir == "" {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		outputDir = cfg.OutputDir
	}

	entries, err := os.ReadDir(input)
	if err != nil {
		return fmt.Errorf("failed to list directory: %w", err)
	}

	converted, failed := 0, 0
	for _, entry := range entries {
		if entry.IsDir() || !isWorkbook(entry.Name()) {
			continue
		}
		fmt.Printf("Processing Excel: %s\n", entry.Name())

		data, err := convertWorkbook(filepath.Join(input, entry.Name()))
		if err == nil {
			err = writeOutput(data, filepath.Join(outputDir, entry.Name()+".json"), log)
		}
		if err != nil {
			log.Error().Err(err).Str("file", entry.Name()).Msg("Workbook failed")
			fmt.Printf("  %s - %s (%v)\n", entry.Name(), statusLabel(pipeline.StatusError), err)
			failed++
			continue
		}
		converted++
	}

	fmt.Printf("Excel processing complete! %d converted, %d failed\n", converted, failed)
	if failed > 0 {
		return fmt.Errorf("%d workbooks failed", failed)
	}
	return nil
}

func convertWorkbook(path string) ([]byte, error) {
	records, err := spreadsheet.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return schema.Marshal(records)
}
