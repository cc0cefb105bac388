package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"discountocr/internal/extract"
)

// Batch statuses.
const (
	StatusSuccess = "success"
	StatusWarning = "warning" // written, but at least one page failed OCR
	StatusError   = "error"
)

// BatchResult is the outcome of one file in a batch run.
type BatchResult struct {
	Filename    string
	Output      string
	Record      extract.FieldRecord
	Customers   int
	Pages       int
	OCRPages    int
	OCRFailures int
	Error       error
	Status      string
}

// Summary is the outcome of a batch run, in processing order.
type Summary struct {
	Results  []BatchResult
	Duration time.Duration
}

// Count returns the number of results with the given status.
func (s *Summary) Count(status string) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

// Failed returns the results that produced no output.
func (s *Summary) Failed() []BatchResult {
	var failed []BatchResult
	for _, r := range s.Results {
		if r.Status == StatusError {
			failed = append(failed, r)
		}
	}
	return failed
}

// OCRPages returns the number of pages across all files that needed OCR.
func (s *Summary) OCRPages() int {
	n := 0
	for _, r := range s.Results {
		n += r.OCRPages
	}
	return n
}

// OCRFailures returns the number of pages across all files whose OCR failed.
func (s *Summary) OCRFailures() int {
	n := 0
	for _, r := range s.Results {
		n += r.OCRFailures
	}
	return n
}

// Batch processes every PDF of a directory, one file at a time.
type Batch struct {
	Processor *Processor

	// OnFile, if set, is called before each file is processed.
	OnFile func(name string)

	// OnResult, if set, is called after each file.
	OnResult func(result BatchResult)
}

// FindPDFFiles lists the PDFs directly inside dir, in name order. The
// extension match is case-insensitive; subdirectories are not searched.
func FindPDFFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		files = append(files, entry.Name())
	}
	return files, nil
}

// OutputName returns the output file name for an input file.
func OutputName(filename string) string {
	return filename + ".json"
}

// Run processes every PDF in inputDir and writes one JSON file per input
// into outputDir, which is created if needed. A failing file is recorded
// and the run continues. Run returns an error only when the directories
// cannot be used or ctx ends; the summary then covers the files handled
// so far.
func (b *Batch) Run(ctx context.Context, inputDir, outputDir string) (*Summary, error) {
	start := time.Now()
	summary := &Summary{}
	log := b.Processor.log.With().Str("input", inputDir).Str("output", outputDir).Logger()

	files, err := FindPDFFiles(inputDir)
	if err != nil {
		return summary, fmt.Errorf("failed to list input directory: %w", err)
	}
	if len(files) == 0 {
		return summary, fmt.Errorf("%w in %s", ErrNoPDFFiles, inputDir)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return summary, fmt.Errorf("failed to create output directory: %w", err)
	}

	log.Info().Int("files", len(files)).Str("mode", b.Processor.Mode()).Msg("Starting batch")

	for _, name := range files {
		if err := ctx.Err(); err != nil {
			summary.Duration = time.Since(start)
			return summary, err
		}
		if b.OnFile != nil {
			b.OnFile(name)
		}

		result := b.processOne(ctx, inputDir, outputDir, name)
		if result.Error != nil {
			log.Error().Err(result.Error).Str("file", name).Msg("Document failed")
		}
		summary.Results = append(summary.Results, result)
		if b.OnResult != nil {
			b.OnResult(result)
		}
	}

	summary.Duration = time.Since(start)
	log.Info().
		Int("total", len(summary.Results)).
		Int("success", summary.Count(StatusSuccess)).
		Int("warnings", summary.Count(StatusWarning)).
		Int("errors", summary.Count(StatusError)).
		Int("ocr_pages", summary.OCRPages()).
		Int("ocr_failures", summary.OCRFailures()).
		Dur("duration", summary.Duration).
		Msg("Batch completed")

	return summary, nil
}

func (b *Batch) processOne(ctx context.Context, inputDir, outputDir, name string) BatchResult {
	result := BatchResult{Filename: name, Status: StatusError}
	path := filepath.Join(inputDir, name)

	doc, err := b.Processor.ProcessFile(ctx, path)
	if err != nil {
		result.Error = err
		return result
	}
	result.Record = doc.Record
	result.Customers = len(doc.Customers)
	result.Pages = len(doc.Pages)
	result.OCRPages = doc.OCRPages()
	result.OCRFailures = doc.OCRFailures()

	data, err := doc.JSON()
	if err != nil {
		result.Error = documentError(path, "encode", err)
		return result
	}

	output := filepath.Join(outputDir, OutputName(name))
	if err := os.WriteFile(output, data, 0o644); err != nil {
		result.Error = documentError(path, "write", err)
		return result
	}

	result.Output = output
	result.Status = StatusSuccess
	if result.OCRFailures > 0 {
		result.Status = StatusWarning
	}
	return result
}
