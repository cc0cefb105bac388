// Package pipeline runs discount-scheme PDFs through text acquisition,
// extraction and schema mapping, one document or a whole directory at a
// time.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"discountocr/internal/extract"
	"discountocr/internal/logger"
	"discountocr/internal/pdfdoc"
	"discountocr/internal/schema"
	"discountocr/pkg/models"
)

// Output modes.
const (
	// ModeSchema writes the ERP discount-scheme document.
	ModeSchema = "schema"

	// ModeTables writes the raw field record and table rows.
	ModeTables = "tables"
)

// Result is everything extracted from one document.
type Result struct {
	File      string
	Mode      string
	Record    extract.FieldRecord
	Customers []models.CustomerRef
	Tables    [][]models.TableRow
	Pages     []extract.PageText
	Duration  time.Duration

	// fieldOrder lists Record's keys in the order they were first found.
	fieldOrder []string
}

// addFields merges fields into the record, remembering new keys in the
// order they appear.
func (r *Result) addFields(fields extract.FieldRecord) {
	if r.Record == nil {
		r.Record = make(extract.FieldRecord)
	}
	for _, k := range fields.Keys() {
		if _, seen := r.Record[k]; !seen {
			r.fieldOrder = append(r.fieldOrder, k)
		}
	}
	r.Record.Merge(fields)
}

// Metadata returns the field record in first-found order. Records built
// without addFields fall back to catalogue order.
func (r *Result) Metadata() models.Metadata {
	keys := r.fieldOrder
	if len(keys) != len(r.Record) {
		keys = r.Record.Keys()
	}
	values := map[string]string(r.Record)
	if values == nil {
		values = map[string]string{}
	}
	return models.Metadata{Keys: keys, Values: values}
}

// OCRPages returns the number of pages that needed OCR.
func (r *Result) OCRPages() int {
	n := 0
	for _, p := range r.Pages {
		if p.Source == extract.SourceOCR {
			n++
		}
	}
	return n
}

// OCRFailures returns the number of pages whose OCR failed.
func (r *Result) OCRFailures() int {
	n := 0
	for _, p := range r.Pages {
		if p.OCRFailed() {
			n++
		}
	}
	return n
}

// Schema maps the result onto the ERP discount-scheme document.
func (r *Result) Schema() *models.DiscountSchema {
	return schema.Map(r.Record, r.Customers)
}

// Raw returns the field record and table rows.
func (r *Result) Raw() *models.RawExtraction {
	tables := r.Tables
	if tables == nil {
		tables = [][]models.TableRow{}
	}
	return &models.RawExtraction{Metadata: r.Metadata(), Tables: tables}
}

// Document returns the output document for the result's mode.
func (r *Result) Document() any {
	if r.Mode == ModeTables {
		return r.Raw()
	}
	return r.Schema()
}

// JSON serializes the output document.
func (r *Result) JSON() ([]byte, error) {
	return schema.Marshal(r.Document())
}

// Processor extracts a single document. It holds no per-document state but
// shares its OCR engine, so calls must not overlap.
type Processor struct {
	opener   pdfdoc.Opener
	acquirer *extract.Acquirer
	fields   *extract.FieldExtractor
	mode     string
	log      zerolog.Logger
}

// NewProcessor creates a Processor writing documents in the given mode.
func NewProcessor(opener pdfdoc.Opener, acquirer *extract.Acquirer, fields *extract.FieldExtractor, mode string) (*Processor, error) {
	switch mode {
	case ModeSchema, ModeTables:
	case "":
		mode = ModeSchema
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	return &Processor{
		opener:   opener,
		acquirer: acquirer,
		fields:   fields,
		mode:     mode,
		log:      logger.WithComponent("pipeline"),
	}, nil
}

// Mode returns the output mode.
func (p *Processor) Mode() string { return p.mode }

// ProcessFile extracts the document at path. Pages are handled in order and
// the context is checked before each one. Failures that abort the document
// are returned as *DocumentError.
func (p *Processor) ProcessFile(ctx context.Context, path string) (*Result, error) {
	start := time.Now()
	log := p.log.With().Str("file", path).Logger()

	doc, err := p.opener.Open(path)
	if err != nil {
		return nil, documentError(path, "open", err)
	}
	defer func() {
		if cerr := doc.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("Failed to close document")
		}
	}()

	result := &Result{
		File:   path,
		Mode:   p.mode,
		Record: make(extract.FieldRecord),
	}

	for n := 1; n <= doc.NumPages(); n++ {
		if err := ctx.Err(); err != nil {
			return nil, documentError(path, "process", err)
		}

		page, err := doc.Page(n)
		if err != nil {
			return nil, documentError(path, fmt.Sprintf("page %d", n), err)
		}

		text := p.acquirer.Acquire(ctx, page)
		result.Pages = append(result.Pages, text)

		result.addFields(p.fields.Extract(text.Text))
		result.Customers = append(result.Customers, extract.ExtractCustomers(text.Text)...)

		grids, err := page.Tables()
		if err != nil {
			log.Warn().Err(err).Int("page", n).Msg("Failed to read tables")
			continue
		}
		if rows := extract.ExtractTableRows(grids); len(rows) > 0 {
			result.Tables = append(result.Tables, rows)
		}
	}

	result.Duration = time.Since(start)
	log.Info().
		Int("pages", len(result.Pages)).
		Int("ocr_pages", result.OCRPages()).
		Int("ocr_failures", result.OCRFailures()).
		Int("fields", len(result.Record)).
		Int("customers", len(result.Customers)).
		Dur("duration", result.Duration).
		Msg("Document processed")

	return result, nil
}
