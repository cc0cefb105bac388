// Package pdfdoctest builds small single-page PDFs for tests.
package pdfdoctest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// Build returns a one-page Letter PDF whose page content stream is content.
// Resource /F1 is Helvetica with WinAnsiEncoding and no width table.
func Build(content string) []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] " +
			"/Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

// Write stores Build(content) as name inside dir and returns its path.
func Write(tb testing.TB, dir, name, content string) string {
	tb.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, Build(content), 0o644); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
	return path
}

// SchemeContent is a discount-scheme page mixing Td and Tm positioned lines
// with one six-column price row.
const SchemeContent = `BT
/F1 12 Tf
72 700 Td
(NOMOR : CP-7) Tj
0 -20 Td
(DISTRIBUTOR : 123 Some Co) Tj
0 -20 Td
(ID OUTLET : 4521) Tj
ET
BT
/F1 12 Tf
1 0 0 1 72 620 Tm
(REF DOC : RD-9) Tj
ET
BT
/F1 10 Tf
72 580 Td
(FLOUR) Tj
80 0 Td
(BAG) Tj
80 0 Td
(12500) Tj
80 0 Td
(5) Tj
80 0 Td
(2) Tj
80 0 Td
(11000) Tj
ET`
