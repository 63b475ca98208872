package pdfs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Concat appends the pages of docs, in argument order, into one new document.
// Pages are copied as they are; nothing is re-rendered.
func Concat(docs ...*Document) (out *Document, err error) {
	if len(docs) == 0 {
		return nil, ErrEmptyInput
	}
	readers := make([]io.ReadSeeker, 0, len(docs))
	want := 0
	for i, d := range docs {
		if d == nil || len(d.Bytes) == 0 {
			return nil, fmt.Errorf("pdfs: concat: document %d: %w", i, ErrEmptyInput)
		}
		readers = append(readers, bytes.NewReader(d.Bytes))
		want += d.PageCount
	}
	if len(readers) == 1 {
		return Load(docs[0].Bytes)
	}

	defer func() {
		if rec := recover(); rec != nil {
			out, err = nil, fmt.Errorf("pdfs: concat: %v", rec)
		}
	}()
	var buf bytes.Buffer
	if err = api.MergeRaw(readers, &buf, false, parseConf()); err != nil {
		return nil, fmt.Errorf("pdfs: concat: %w", err)
	}
	if out, err = Load(buf.Bytes()); err != nil {
		return nil, err
	}
	if out.PageCount != want {
		return nil, fmt.Errorf("pdfs: concat: produced %d pages, want %d", out.PageCount, want)
	}
	return out, nil
}

// Arrange returns a document whose pages are the given 1-based pages of doc,
// in the given order. Every page number may appear at most once.
func Arrange(doc *Document, pages []int) (out *Document, err error) {
	if doc == nil || len(doc.Bytes) == 0 {
		return nil, ErrEmptyInput
	}
	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	selected := make([]string, len(pages))
	seen := make(map[int]bool, len(pages))
	for i, p := range pages {
		if p < 1 || p > doc.PageCount {
			return nil, fmt.Errorf("pdfs: arrange: page %d out of range 1..%d", p, doc.PageCount)
		}
		if seen[p] {
			return nil, fmt.Errorf("pdfs: arrange: page %d listed twice", p)
		}
		seen[p] = true
		selected[i] = strconv.Itoa(p)
	}

	defer func() {
		if rec := recover(); rec != nil {
			out, err = nil, fmt.Errorf("pdfs: arrange: %v", rec)
		}
	}()
	var buf bytes.Buffer
	if err = api.Collect(bytes.NewReader(doc.Bytes), &buf, selected, parseConf()); err != nil {
		return nil, fmt.Errorf("pdfs: arrange: %w", err)
	}
	if out, err = Load(buf.Bytes()); err != nil {
		return nil, err
	}
	if out.PageCount != len(pages) {
		return nil, errors.New("pdfs: arrange: page count changed")
	}
	return out, nil
}
