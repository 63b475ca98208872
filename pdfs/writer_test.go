package pdfs_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veenu-wootz/qualityinspectionreport-vmerge/pdfs"
	"github.com/veenu-wootz/qualityinspectionreport-vmerge/pdfs/pdfstest"
)

func TestWriter_CopiesPagesAtTheirOwnSize(t *testing.T) {
	portrait, err := pdfs.Load(pdfstest.Pages(t, "portrait", 2))
	require.NoError(t, err)
	mixed, err := pdfs.Load(pdfstest.Sized(t, "mixed", pdfs.A4Size.Landscape(), pdfs.LetterSize))
	require.NoError(t, err)

	w := pdfs.NewWriter()
	srcA, err := w.Import(portrait)
	require.NoError(t, err)
	srcB, err := w.Import(mixed)
	require.NoError(t, err)
	assert.NotEqual(t, srcA, srcB)

	size, err := w.AddImportedPage(srcB, 1)
	require.NoError(t, err)
	assert.InDelta(t, pdfs.A4Size.Height, size.Width, 0.5)
	assert.InDelta(t, pdfs.A4Size.Width, size.Height, 0.5)

	_, err = w.AddImportedPage(srcA, 2)
	require.NoError(t, err)
	size, err = w.AddImportedPage(srcB, 2)
	require.NoError(t, err)
	assert.InDelta(t, pdfs.LetterSize.Width, size.Width, 0.5)

	out, err := w.Document()
	require.NoError(t, err)
	assert.Equal(t, 3, out.PageCount)

	reloaded, err := pdfs.Load(out.Bytes)
	require.NoError(t, err)
	assert.Equal(t, 3, reloaded.PageCount)
}

func TestWriter_UnknownPage(t *testing.T) {
	w := pdfs.NewWriter()
	_, err := w.AddImportedPage(0, 1)
	assert.Error(t, err)
}

func TestWriter_ImportGarbageReturnsError(t *testing.T) {
	w := pdfs.NewWriter()
	_, err := w.Import(&pdfs.Document{Bytes: []byte("definitely not a pdf"), PageCount: 1})
	assert.Error(t, err)
}

func TestWriter_ImportEmpty(t *testing.T) {
	w := pdfs.NewWriter()
	_, err := w.Import(nil)
	assert.ErrorIs(t, err, pdfs.ErrEmptyInput)
}

func TestWriter_DrawsText(t *testing.T) {
	w := pdfs.NewWriter(pdfs.WithCompression(false), pdfs.WithTitle("drawing"))
	w.AddBlankPage(pdfs.A4Size)
	w.SetFont("Helvetica", "B", 12)
	w.SetFillColor(pdfs.LightGrey)
	w.FillRect(0, 0, 100, 20)
	w.SetTextColor(pdfs.Black)
	w.CenteredText(0, 100, 14, "Centered")
	w.Cell(10, 40, 200, 20, "Right", "RM", true, "B")
	require.NoError(t, w.Err())

	assert.Greater(t, w.TextWidth("Centered"), 0.0)

	data, err := w.ProduceBytes()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Contains(t, string(data), "(Centered) Tj")
	assert.Contains(t, string(data), "(Right)Tj")
}

func TestWriter_WriteToReportsSize(t *testing.T) {
	w := pdfs.NewWriter()
	w.AddBlankPage(pdfs.LetterSize)
	var buf bytes.Buffer
	n, err := w.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
}
