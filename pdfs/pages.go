package pdfs

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
)

// PageSizes returns the displayed size of every page of doc, in page order.
// Rotated pages report their rotated width and height.
func PageSizes(doc *Document) (sizes []PaperSize, err error) {
	if doc == nil || len(doc.Bytes) == 0 {
		return nil, ErrEmptyInput
	}
	defer func() {
		if rec := recover(); rec != nil {
			sizes, err = nil, fmt.Errorf("pdfs: page sizes: %v", rec)
		}
	}()
	dims, err := api.PageDims(bytes.NewReader(doc.Bytes), parseConf())
	if err != nil {
		return nil, fmt.Errorf("pdfs: page sizes: %w", err)
	}
	sizes = make([]PaperSize, len(dims))
	for i, d := range dims {
		sizes[i] = PaperSize{Width: d.Width, Height: d.Height}
	}
	return sizes, nil
}

// PageContent returns the decoded content stream of the 1-based page.
func PageContent(doc *Document, page int) (content []byte, err error) {
	if doc == nil || len(doc.Bytes) == 0 {
		return nil, ErrEmptyInput
	}
	defer func() {
		if rec := recover(); rec != nil {
			content, err = nil, fmt.Errorf("pdfs: page %d content: %v", page, rec)
		}
	}()
	ctx, err := api.ReadAndValidate(bytes.NewReader(doc.Bytes), parseConf())
	if err != nil {
		return nil, fmt.Errorf("pdfs: page %d content: %w", page, err)
	}
	if page < 1 || page > ctx.PageCount {
		return nil, fmt.Errorf("pdfs: page %d out of range 1..%d", page, ctx.PageCount)
	}
	r, err := pdfcpu.ExtractPageContent(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("pdfs: page %d content: %w", page, err)
	}
	return io.ReadAll(r)
}
