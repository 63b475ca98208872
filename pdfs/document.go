package pdfs

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var (
	ErrEmptyInput = errors.New("pdfs: empty input")
	ErrNoPages    = errors.New("pdfs: document has no pages")
)

// Document is a parsed PDF held as raw bytes. Treat it as immutable:
// transformations produce a new Document.
type Document struct {
	Bytes     []byte
	PageCount int
}

var configOnce sync.Once

// parseConf returns a relaxed pdfcpu configuration that never touches the
// user config directory.
func parseConf() *model.Configuration {
	configOnce.Do(api.DisableConfigDir)
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Load parses data and counts its pages.
// A document without pages is rejected with ErrNoPages.
func Load(data []byte) (doc *Document, err error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	defer func() {
		if rec := recover(); rec != nil {
			doc, err = nil, fmt.Errorf("pdfs: parse: %v", rec)
		}
	}()
	n, err := api.PageCount(bytes.NewReader(data), parseConf())
	if err != nil {
		return nil, fmt.Errorf("pdfs: parse: %w", err)
	}
	if n <= 0 {
		return nil, ErrNoPages
	}
	return &Document{Bytes: data, PageCount: n}, nil
}
