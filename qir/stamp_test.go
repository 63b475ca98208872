package qir_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veenu-wootz/qualityinspectionreport-vmerge/pdfs"
	"github.com/veenu-wootz/qualityinspectionreport-vmerge/pdfs/pdfstest"
	"github.com/veenu-wootz/qualityinspectionreport-vmerge/qir"
)

func has(doc *pdfs.Document, s string) bool {
	return bytes.Contains(doc.Bytes, []byte(s))
}

func TestStamp_NumbersPages(t *testing.T) {
	doc := pdfstest.Document(t, "cert", 3)

	first := qir.Stamp(doc, 7, "", plainLayout())
	require.True(t, first.Stamped, "%v", first.Err)
	second := qir.Stamp(doc, 20, "", plainLayout())
	require.True(t, second.Stamped, "%v", second.Err)

	assert.Equal(t, 3, first.Document.PageCount)
	assert.Equal(t, 3, second.Document.PageCount)
	assert.NotEqual(t, first.Document.Bytes, second.Document.Bytes)

	for _, n := range []string{"(7) Tj", "(8) Tj", "(9) Tj"} {
		assert.True(t, has(first.Document, n), "missing %s", n)
		assert.False(t, has(second.Document, n), "unexpected %s", n)
	}
	for _, n := range []string{"(20) Tj", "(21) Tj", "(22) Tj"} {
		assert.True(t, has(second.Document, n), "missing %s", n)
	}

	reloaded, err := pdfs.Load(first.Document.Bytes)
	require.NoError(t, err)
	assert.Equal(t, 3, reloaded.PageCount)
}

func TestStamp_HeadingOnFirstPage(t *testing.T) {
	doc := pdfstest.Document(t, "cert", 2)

	out := qir.Stamp(doc, 1, "  Mill TC  ", plainLayout())
	require.True(t, out.Stamped)
	assert.Equal(t, 1, bytes.Count(out.Document.Bytes, []byte("(Mill TC) Tj")))

	out = qir.Stamp(doc, 1, "   ", plainLayout())
	require.True(t, out.Stamped)
	assert.False(t, has(out.Document, "(Mill TC) Tj"))
}

func TestStamp_OddSizedPages(t *testing.T) {
	doc, err := pdfs.Load(pdfstest.Sized(t, "odd",
		pdfs.A3Size.Landscape(),
		pdfs.PaperSize{Width: 200, Height: 300},
		pdfs.LetterSize,
	))
	require.NoError(t, err)

	out := qir.Stamp(doc, 4, "Drawing", plainLayout())
	require.True(t, out.Stamped, "%v", out.Err)
	assert.Equal(t, 3, out.Document.PageCount)
	assert.True(t, has(out.Document, "(6) Tj"))
}

func TestStamp_FooterScalesWithPageWidth(t *testing.T) {
	layout := plainLayout()
	sizes := []pdfs.PaperSize{
		pdfs.A4Size,
		{Width: pdfs.A4Size.Width / 2, Height: 420.94},
		{Width: pdfs.A4Size.Width * 2, Height: pdfs.A4Size.Height},
	}
	doc, err := pdfs.Load(pdfstest.Sized(t, "scaled", sizes...))
	require.NoError(t, err)

	out := qir.Stamp(doc, 1, "", layout)
	require.True(t, out.Stamped, "%v", out.Err)

	tests := []struct {
		page     int
		fontSize float64
		number   string
	}{
		{page: 1, fontSize: layout.FooterFontSize, number: "(1) Tj"},
		{page: 2, fontSize: layout.FooterFontSize / 2, number: "(2) Tj"},
		{page: 3, fontSize: layout.FooterFontSize * 2, number: "(3) Tj"},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("page %d", tc.page), func(t *testing.T) {
			content, err := pdfs.PageContent(out.Document, tc.page)
			require.NoError(t, err)
			assert.Contains(t, string(content), fmt.Sprintf("%.2f Tf", tc.fontSize))
			assert.Contains(t, string(content), tc.number)
		})
	}

	content, err := pdfs.PageContent(out.Document, 2)
	require.NoError(t, err)
	assert.NotContains(t, string(content), fmt.Sprintf("%.2f Tf", layout.FooterFontSize*2))
}

func TestStamp_FallsBackToOriginal(t *testing.T) {
	broken := &pdfs.Document{Bytes: []byte("not a pdf at all"), PageCount: 2}

	out := qir.Stamp(broken, 1, "X", qir.DefaultLayout())
	assert.False(t, out.Stamped)
	assert.Error(t, out.Err)
	assert.Same(t, broken, out.Document)
}

func TestStamp_NilDocument(t *testing.T) {
	out := qir.Stamp(nil, 1, "", qir.DefaultLayout())
	assert.False(t, out.Stamped)
	assert.Error(t, out.Err)
	assert.Nil(t, out.Document)
}
