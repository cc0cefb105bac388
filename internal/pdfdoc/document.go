// Package pdfdoc opens discount-scheme PDFs and exposes their pages.
//
// Native text and table rows come from the positioned glyphs of the
// embedded text layer (ledongthuc/pdf), grouped into lines by baseline.
// Page images for the OCR fallback are rendered with MuPDF (go-fitz), which
// is opened lazily the first time a page is rendered.
// Files are validated with pdfcpu before either reader touches them.
package pdfdoc

import (
	"errors"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
)

// ErrInvalidPDF is returned when a file cannot be parsed as a PDF.
var ErrInvalidPDF = errors.New("invalid or corrupted PDF document")

// ErrDocumentClosed is returned when a page is used after its document was closed.
var ErrDocumentClosed = errors.New("document is closed")

// Page is one page of an open document. Pages are borrowed from their
// Document and must not be used after it is closed.
type Page interface {
	// Number is the 1-based page number.
	Number() int

	// Text returns the page's embedded text layer, empty for scanned pages.
	Text() (string, error)

	// Render rasterizes the page at the given resolution.
	Render(dpi int) (image.Image, error)

	// Tables returns the page's table grids as rows of cell strings. Cells
	// are never empty; blank cells are not represented.
	Tables() ([][][]string, error)
}

// Document is an open PDF.
type Document interface {
	NumPages() int

	// Page returns page n (1-based).
	Page(n int) (Page, error)

	Close() error
}

// Opener opens documents by path.
type Opener interface {
	Open(path string) (Document, error)
}

// FileOpener opens PDFs from the local file system.
type FileOpener struct {
	// SkipValidation disables the pdfcpu pass.
	SkipValidation bool
}

// Open validates and opens the PDF at path.
func (o FileOpener) Open(path string) (Document, error) {
	if !o.SkipValidation {
		if err := Validate(path); err != nil {
			return nil, err
		}
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPDF, path, err)
	}

	return &fileDocument{
		path:   path,
		file:   f,
		reader: reader,
	}, nil
}

type fileDocument struct {
	path   string
	file   *os.File
	reader *pdf.Reader
	raster *fitz.Document
	closed bool
}

func (d *fileDocument) NumPages() int {
	return d.reader.NumPage()
}

func (d *fileDocument) Page(n int) (Page, error) {
	if d.closed {
		return nil, ErrDocumentClosed
	}
	if n < 1 || n > d.reader.NumPage() {
		return nil, fmt.Errorf("invalid page number %d (document has %d pages)", n, d.reader.NumPage())
	}
	return &filePage{doc: d, number: n, page: d.reader.Page(n)}, nil
}

// rasterizer opens the MuPDF handle on first use.
func (d *fileDocument) rasterizer() (*fitz.Document, error) {
	if d.closed {
		return nil, ErrDocumentClosed
	}
	if d.raster == nil {
		doc, err := fitz.New(d.path)
		if err != nil {
			return nil, fmt.Errorf("open renderer: %w", err)
		}
		d.raster = doc
	}
	return d.raster, nil
}

func (d *fileDocument) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	var errs []error
	if d.raster != nil {
		errs = append(errs, d.raster.Close())
		d.raster = nil
	}
	errs = append(errs, d.file.Close())
	return errors.Join(errs...)
}

type filePage struct {
	doc    *fileDocument
	number int
	page   pdf.Page
}

func (p *filePage) Number() int { return p.number }

func (p *filePage) Text() (string, error) {
	if p.doc.closed {
		return "", ErrDocumentClosed
	}
	if p.page.V.IsNull() {
		return "", nil
	}
	lines, err := p.lines()
	if err != nil {
		return "", err
	}
	if len(lines) > 0 {
		return LinesToText(lines), nil
	}

	text, err := p.page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("read page %d text: %w", p.number, err)
	}
	return strings.TrimSpace(text), nil
}

// lines returns the page's positioned glyphs grouped into lines. The
// content interpreter panics on malformed streams.
func (p *filePage) lines() (lines []Line, err error) {
	defer func() {
		if r := recover(); r != nil {
			lines = nil
			err = fmt.Errorf("read page %d content: %v", p.number, r)
		}
	}()
	return GroupLines(p.page.Content().Text), nil
}

func (p *filePage) Render(dpi int) (image.Image, error) {
	raster, err := p.doc.rasterizer()
	if err != nil {
		return nil, err
	}
	img, err := raster.ImageDPI(p.number-1, float64(dpi))
	if err != nil {
		return nil, fmt.Errorf("render page %d at %d dpi: %w", p.number, dpi, err)
	}
	return img, nil
}

func (p *filePage) Tables() ([][][]string, error) {
	if p.doc.closed {
		return nil, ErrDocumentClosed
	}
	if p.page.V.IsNull() {
		return nil, nil
	}
	lines, err := p.lines()
	if err != nil {
		return nil, err
	}
	return LinesToGrids(lines), nil
}
