package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"discountocr/internal/ktp"
	"discountocr/internal/logger"
	"discountocr/internal/pipeline"
	"discountocr/internal/schema"
)

var ktpCmd = &cobra.Command{
	Use:   "ktp [image-or-directory]",
	Short: "Read Indonesian ID cards (KTP) from photos",
	Long: `Recognize the text of KTP photos. Images are converted to grayscale,
sharpened and binarized before OCR with the Indonesian and English models
(KTP_LANGUAGES). The recognized text is cleaned of symbols and extra
whitespace.

With a directory, every image directly inside it is written to <name>.txt in
the output directory. With a single image the cleaned text is printed unless
--output is given; --json prints raw and cleaned text together.`,
	Example: `  # Print one card
  discountocr ktp KTP_Images/card.jpg

  # Raw and cleaned text as JSON
  discountocr ktp KTP_Images/card.jpg --json

  # Convert a folder
  discountocr ktp KTP_Images/ --output ocr_results/`,
	Args: cobra.ExactArgs(1),
	RunE: runKTP,
}

func init() {
	rootCmd.AddCommand(ktpCmd)

	ktpCmd.Flags().String("output", "", "Output directory (default: OUTPUT_DIR for directories, stdout for a file)")
	ktpCmd.Flags().Bool("json", false, "Print raw and cleaned text as JSON (single image only)")
}

func runKTP(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("ktp")

	input := args[0]
	outputDir, _ := cmd.Flags().GetString("output")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var images []string
	dirMode := isDir(input)
	if dirMode {
		entries, err := os.ReadDir(input)
		if err != nil {
			return fmt.Errorf("failed to list directory: %w", err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && ktp.IsImageFile(entry.Name()) {
				images = append(images, filepath.Join(input, entry.Name()))
			}
		}
		if len(images) == 0 {
			fmt.Printf("No images found in %s\n", input)
			return nil
		}
		if outputDir == "" {
			outputDir = cfg.OutputDir
		}
	} else {
		if _, err := validateInputFile(input, log); err != nil {
			return err
		}
		images = []string{input}
	}

	ctx, cancel := createContextWithTimeout(cfg.ProcessTimeout, log)
	defer cancel()

	ext, err := createExtractionService(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer ext.Close()

	failed := 0
	for _, path := range images {
		if dirMode {
			fmt.Printf("Processing KTP Image: %s\n", filepath.Base(path))
		}

		result, err := ext.ProcessKTP(ctx, path)
		if err != nil {
			if ctx.Err() != nil || !dirMode {
				return handleProcessingError(err, log)
			}
			log.Error().Err(err).Str("file", path).Msg("Image failed")
			fmt.Printf("  %s - %s (%v)\n", filepath.Base(path), statusLabel(pipeline.StatusError), err)
			failed++
			continue
		}

		var data []byte
		if jsonOutput && !dirMode {
			if data, err = schema.Marshal(result); err != nil {
				return err
			}
		} else {
			data = []byte(result.CleanedText)
		}

		outputPath := ""
		if outputDir != "" {
			outputPath = filepath.Join(outputDir, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))+".txt")
			if jsonOutput && !dirMode {
				outputPath = strings.TrimSuffix(outputPath, ".txt") + ".json"
			}
		}
		if err := writeOutput(data, outputPath, log); err != nil {
			return err
		}
	}

	if dirMode {
		fmt.Printf("KTP processing complete! %d processed, %d failed\n", len(images)-failed, failed)
	}
	if failed > 0 {
		return fmt.Errorf("%d images failed", failed)
	}
	return nil
}
