// Package pdfstest generates small PDF fixtures for tests.
package pdfstest

import (
	"bytes"
	"fmt"
	"testing"

	"codeberg.org/go-pdf/fpdf"

	"github.com/veenu-wootz/qualityinspectionreport-vmerge/pdfs"
)

// Build renders one page per size; each page carries the text "<label> p<n>".
func Build(label string, sizes ...pdfs.PaperSize) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(false)
	pdf.SetFont("Helvetica", "", 14)
	for i, size := range sizes {
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: size.Width, Ht: size.Height})
		pdf.Text(40, 60, fmt.Sprintf("%s p%d", label, i+1))
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Pages returns a PDF with n A4 portrait pages
func Pages(t testing.TB, label string, n int) []byte {
	t.Helper()
	sizes := make([]pdfs.PaperSize, n)
	for i := range sizes {
		sizes[i] = pdfs.A4Size
	}
	return Sized(t, label, sizes...)
}

// Sized returns a PDF with one page per given size
func Sized(t testing.TB, label string, sizes ...pdfs.PaperSize) []byte {
	t.Helper()
	data, err := Build(label, sizes...)
	if err != nil {
		t.Fatalf("pdfstest: building %q: %v", label, err)
	}
	return data
}

// Document is Pages wrapped in a loaded pdfs.Document
func Document(t testing.TB, label string, n int) *pdfs.Document {
	t.Helper()
	doc, err := pdfs.Load(Pages(t, label, n))
	if err != nil {
		t.Fatalf("pdfstest: loading %q: %v", label, err)
	}
	return doc
}
