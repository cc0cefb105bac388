package sheets

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discountocr/internal/extract"
	"discountocr/internal/pipeline"
)

func TestExtractSpreadsheetID(t *testing.T) {
	id, err := extractSpreadsheetID("https://docs.google.com/spreadsheets/d/1AbC-d_9/edit#gid=0")
	require.NoError(t, err)
	assert.Equal(t, "1AbC-d_9", id)

	_, err = extractSpreadsheetID("https://example.com/sheet")
	assert.Error(t, err)
}

func TestResultToRow(t *testing.T) {
	at := time.Date(2025, 3, 6, 9, 30, 0, 0, time.UTC)

	row := resultToRow(pipeline.BatchResult{
		Filename: "a.pdf",
		Output:   "ocr_results/a.pdf.json",
		Record: extract.FieldRecord{
			extract.FieldNomor:       "CP-7",
			extract.FieldDistributor: "123 Some Co",
			extract.FieldPeriodeCP:   "01/03/2025 - 15/03/2025",
		},
		Customers:   2,
		Pages:       3,
		OCRPages:    1,
		OCRFailures: 1,
		Status:      pipeline.StatusWarning,
	}, at)

	assert.Equal(t, BatchRow{
		Filename:    "a.pdf",
		Nomor:       "CP-7",
		Distributor: "123 Some Co",
		VendorID:    123,
		ValidFrom:   "01032025",
		ValidTo:     "15032025",
		Customers:   2,
		Pages:       3,
		OCRPages:    1,
		OCRFailures: 1,
		Output:      "ocr_results/a.pdf.json",
		Status:      pipeline.StatusWarning,
		ProcessedAt: "2025-03-06 09:30:00",
	}, row)

	values := rowToValues(row)
	assert.Len(t, values, len(headers))
	assert.Equal(t, int64(123), values[5])
}

func TestResultToRow_Failure(t *testing.T) {
	row := resultToRow(pipeline.BatchResult{
		Filename: "broken.pdf",
		Status:   pipeline.StatusError,
		Error:    errors.New("invalid or corrupted PDF document"),
	}, time.Now())

	assert.Equal(t, "invalid or corrupted PDF document", row.Error)
	assert.Zero(t, row.VendorID)
	assert.Empty(t, row.ValidFrom)
	assert.Empty(t, row.ValidTo)
}
