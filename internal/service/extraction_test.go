package service

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discountocr/internal/config"
	"discountocr/internal/ocr"
	"discountocr/internal/pdfdoc"
	"discountocr/internal/pdfdoc/pdfdoctest"
	"discountocr/internal/pipeline"
)

type fakeEngine struct {
	text   string
	closed bool
}

func (e *fakeEngine) RecognizeImage(context.Context, image.Image, []string) (string, error) {
	return e.text, nil
}
func (e *fakeEngine) Name() string { return "fake" }
func (e *fakeEngine) Close() error {
	e.closed = true
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		OutputMode:      config.ModeSchema,
		OCRLanguage:     "eng",
		KTPLanguages:    []string{"ind", "eng"},
		OCRDPI:          300,
		CheckedGlyphs:   "☑",
		UncheckedGlyphs: "☐",
	}
}

func TestNewWithEngine(t *testing.T) {
	engine := &fakeEngine{text: "NIK : 3201"}
	ext, err := NewWithEngine(engine, testConfig())
	require.NoError(t, err)
	assert.Equal(t, pipeline.ModeSchema, ext.Processor().Mode())

	path := filepath.Join(t.TempDir(), "card.png")
	require.NoError(t, imaging.Save(image.NewGray(image.Rect(0, 0, 8, 8)), path))

	card, err := ext.ProcessKTP(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "NIK 3201", card.CleanedText)

	require.NoError(t, ext.Close())
	assert.True(t, engine.closed)
	assert.NoError(t, ext.Close(), "second close is a no-op")
}

func TestNewWithEngine_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.CheckedGlyphs = ""
	_, err := NewWithEngine(&fakeEngine{}, cfg)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.OutputMode = "csv"
	_, err = NewWithEngine(&fakeEngine{}, cfg)
	assert.ErrorIs(t, err, pipeline.ErrUnknownMode)
}

func TestNew_UnknownProvider(t *testing.T) {
	cfg := testConfig()
	cfg.OCRProvider = "easyocr"

	_, err := New(context.Background(), cfg)
	assert.ErrorIs(t, err, ocr.ErrUnknownProvider)
}

func TestProcessPDF_NativeTextLayer(t *testing.T) {
	engine := &fakeEngine{text: "NOMOR : FROM-OCR"}
	ext, err := NewWithEngine(engine, testConfig())
	require.NoError(t, err)
	defer ext.Close()

	path := pdfdoctest.Write(t, t.TempDir(), "scheme.pdf", pdfdoctest.SchemeContent)

	out, err := ext.ProcessPDF(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, int64(123), out.VendorID)
	require.Len(t, out.Customers, 1)
	assert.Equal(t, int64(4521), out.Customers[0].CBPartnerID)
	require.Len(t, out.Breaks, 1)
	assert.Equal(t, "CP-7", out.Breaks[0].Name, "end-of-line fields stop at the line break")

	raw, err := ext.ExtractTables(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"NOMOR", "DISTRIBUTOR", "REF DOC"}, raw.Metadata.Keys)
	assert.Equal(t, "123 Some Co", raw.Metadata.Get("DISTRIBUTOR"))
	assert.Equal(t, "RD-9", raw.Metadata.Get("REF DOC"))
	require.Len(t, raw.Tables, 1)
	require.Len(t, raw.Tables[0], 1)
	row := raw.Tables[0][0]
	assert.Equal(t, "FLOUR", row.Product)
	assert.Equal(t, "11000", row.RBPDist)
	assert.Nil(t, row.AdditionalDisc)
}

func TestProcessPDF_InvalidFile(t *testing.T) {
	ext, err := NewWithEngine(&fakeEngine{}, testConfig())
	require.NoError(t, err)
	defer ext.Close()

	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0o644))

	_, err = ext.ProcessPDF(context.Background(), path)
	assert.ErrorIs(t, err, pdfdoc.ErrInvalidPDF)

	_, err = ext.ExtractTables(context.Background(), path)
	assert.ErrorIs(t, err, pdfdoc.ErrInvalidPDF)
}

func TestProcessExcel_CancelledContext(t *testing.T) {
	ext, err := NewWithEngine(&fakeEngine{}, testConfig())
	require.NoError(t, err)
	defer ext.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = ext.ProcessExcel(ctx, "unused.xlsx")
	assert.ErrorIs(t, err, context.Canceled)
}
