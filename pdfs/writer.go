package pdfs

import (
	"bytes"
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"

	"github.com/veenu-wootz/qualityinspectionreport-vmerge/rw"
)

const pageBox = "/MediaBox"

type Color struct {
	R, G, B int
}

var (
	Black     = Color{0, 0, 0}
	White     = Color{255, 255, 255}
	LightGrey = Color{235, 235, 235}
	DarkGrey  = Color{64, 64, 64}
)

type importedPage struct {
	tpl  int // gofpdi template id
	size PaperSize
}

// Writer is an append-only PDF writer backed by fpdf.
// Pages are either blank or copies of pages imported from existing documents.
// Units are points, origin at the top-left corner of the current page.
type Writer struct {
	pdf       *fpdf.Fpdf
	importer  *gofpdi.Importer
	templates *TemplateStore[importedPage]
	// gofpdi identifies a source stream by the address of its reader,
	// so every reader stays reachable until the document is written.
	streams   []*io.ReadSeeker
	translate func(string) string
}

type Option func(*Writer)

// WithCompression toggles content stream compression (on by default)
func WithCompression(on bool) Option {
	return func(w *Writer) {
		w.pdf.SetCompression(on)
	}
}

func WithTitle(title string) Option {
	return func(w *Writer) {
		w.pdf.SetTitle(title, true)
	}
}

func NewWriter(opts ...Option) *Writer {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(true)
	pdf.SetCreator("qirmerge", false)
	w := &Writer{
		pdf:       pdf,
		importer:  gofpdi.NewImporter(),
		templates: NewTemplateStore[importedPage](),
		translate: pdf.UnicodeTranslatorFromDescriptor(""), // UTF-8 -> cp1252 for core fonts
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// guard converts panics raised inside the PDF libraries into errors
func guard(op string, fn func()) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pdfs: %s: %v", op, rec)
		}
	}()
	fn()
	return nil
}

func (w *Writer) err() error {
	if w.pdf.Err() {
		return w.pdf.Error()
	}
	return nil
}

// Import registers every page of doc as a template and returns the source id
// to be used with AddImportedPage.
func (w *Writer) Import(doc *Document) (int, error) {
	if doc == nil || len(doc.Bytes) == 0 {
		return -1, ErrEmptyInput
	}
	rs := io.ReadSeeker(bytes.NewReader(doc.Bytes))
	w.streams = append(w.streams, &rs)
	src := len(w.streams) - 1

	tpls := make([]int, doc.PageCount)
	var boxes map[int]map[string]map[string]float64
	err := guard("import", func() {
		for p := 1; p <= doc.PageCount; p++ {
			tpls[p-1] = w.importer.ImportPageFromStream(w.pdf, &rs, p, pageBox)
		}
		boxes = w.importer.GetPageSizes()
	})
	if err != nil {
		return -1, err
	}
	if err = w.err(); err != nil {
		return -1, err
	}
	for p := 1; p <= doc.PageCount; p++ {
		dims := boxes[p][pageBox]
		size := PaperSize{Width: dims["w"], Height: dims["h"]}
		if size.Width <= 0 || size.Height <= 0 {
			return -1, fmt.Errorf("pdfs: page %d has no usable %s", p, pageBox)
		}
		w.templates.Store(PageKey(src, p), importedPage{tpl: tpls[p-1], size: size})
	}
	return src, nil
}

// ImportedPageSize reports the size of a page (1-based) of an imported source
func (w *Writer) ImportedPageSize(src int, page int) (PaperSize, bool) {
	ip, ok := w.templates.Get(PageKey(src, page))
	return ip.size, ok
}

// AddImportedPage appends a page sized like the source page and draws the
// source page onto it unchanged.
func (w *Writer) AddImportedPage(src int, page int) (PaperSize, error) {
	ip, ok := w.templates.Get(PageKey(src, page))
	if !ok {
		return PaperSize{}, fmt.Errorf("pdfs: page %d of source %d was not imported", page, src)
	}
	err := guard("copy page", func() {
		w.pdf.AddPageFormat("P", fpdf.SizeType{Wd: ip.size.Width, Ht: ip.size.Height})
		w.importer.UseImportedTemplate(w.pdf, ip.tpl, 0, 0, ip.size.Width, ip.size.Height)
	})
	if err != nil {
		return PaperSize{}, err
	}
	return ip.size, w.err()
}

func (w *Writer) AddBlankPage(size PaperSize) {
	w.pdf.AddPageFormat("P", fpdf.SizeType{Wd: size.Width, Ht: size.Height})
}

func (w *Writer) SetFont(family string, style string, size float64) {
	w.pdf.SetFont(family, style, size)
}

func (w *Writer) SetFillColor(c Color) {
	w.pdf.SetFillColor(c.R, c.G, c.B)
}

func (w *Writer) SetTextColor(c Color) {
	w.pdf.SetTextColor(c.R, c.G, c.B)
}

func (w *Writer) SetDrawColor(c Color) {
	w.pdf.SetDrawColor(c.R, c.G, c.B)
}

// SetAlpha sets fill and stroke opacity for subsequent drawing. 1 = opaque
func (w *Writer) SetAlpha(alpha float64) {
	w.pdf.SetAlpha(alpha, "Normal")
}

func (w *Writer) FillRect(x float64, y float64, width float64, height float64) {
	w.pdf.Rect(x, y, width, height, "F")
}

func (w *Writer) Line(x1 float64, y1 float64, x2 float64, y2 float64, lineWidth float64) {
	w.pdf.SetLineWidth(lineWidth)
	w.pdf.Line(x1, y1, x2, y2)
}

// Text draws text with its baseline at (x, y)
func (w *Writer) Text(x float64, y float64, text string) {
	w.pdf.Text(x, y, w.translate(text))
}

// CenteredText draws text horizontally centered inside [x, x+width]
func (w *Writer) CenteredText(x float64, width float64, baseline float64, text string) {
	tw := w.TextWidth(text)
	w.Text(x+(width-tw)/2, baseline, text)
}

// TextWidth in points, for the current font
func (w *Writer) TextWidth(text string) float64 {
	return w.pdf.GetStringWidth(w.translate(text))
}

// Cell draws a box at (x, y) with text aligned inside it.
// align uses the fpdf notation e.g. "LM", "RM", "CM". border: "", "1", "B", ...
func (w *Writer) Cell(x float64, y float64, width float64, height float64, text string, align string, fill bool, border string) {
	w.pdf.SetXY(x, y)
	w.pdf.CellFormat(width, height, w.translate(text), border, 0, align, fill, 0, "")
}

func (w *Writer) PageCount() int {
	return w.pdf.PageCount()
}

// Err reports the first error recorded by the underlying writer
func (w *Writer) Err() error {
	return w.err()
}

// WriteTo serializes the document. The writer cannot be used afterwards.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	cw := rw.NewCountWriter(out)
	var outErr error
	err := guard("serialize", func() {
		outErr = w.pdf.Output(cw)
	})
	if err == nil {
		err = outErr
	}
	return cw.BytesWritten(), err
}

func (w *Writer) ProduceBytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Document serializes the writer into a Document
func (w *Writer) Document() (*Document, error) {
	n := w.PageCount()
	data, err := w.ProduceBytes()
	if err != nil {
		return nil, err
	}
	return &Document{Bytes: data, PageCount: n}, nil
}
