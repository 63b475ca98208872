package qir

import (
	"errors"
	"strconv"
	"strings"

	"github.com/veenu-wootz/qualityinspectionreport-vmerge/pdfs"
)

// StampOutcome is the result of Stamp. When Stamped is false, Document is the
// untouched input and Err tells why stamping was skipped.
type StampOutcome struct {
	Document *pdfs.Document
	Stamped  bool
	Err      error
}

// Stamp overlays a footer with the running page number, starting at
// startPage, on every page of doc, and draws heading (if not blank) near the
// top of the first page. Overlays scale with each page's width so they look
// the same on portrait, landscape and odd-sized pages.
// Stamp never fails: on error the original document is handed back.
func Stamp(doc *pdfs.Document, startPage int, heading string, layout Layout) StampOutcome {
	if doc == nil {
		return StampOutcome{Err: errors.New("stamp: no document")}
	}
	out, err := stamp(doc, startPage, strings.TrimSpace(heading), layout)
	if err != nil {
		return StampOutcome{Document: doc, Err: err}
	}
	if out.PageCount != doc.PageCount {
		return StampOutcome{Document: doc, Err: errors.New("stamp: page count changed")}
	}
	return StampOutcome{Document: out, Stamped: true}
}

func stamp(doc *pdfs.Document, startPage int, heading string, layout Layout) (*pdfs.Document, error) {
	w := layout.writer()
	src, err := w.Import(doc)
	if err != nil {
		return nil, err
	}
	for p := 1; p <= doc.PageCount; p++ {
		size, err := w.AddImportedPage(src, p)
		if err != nil {
			return nil, err
		}
		scale := layout.scale(size.Width)
		if p == 1 && heading != "" {
			drawHeading(w, size, scale, heading, layout)
		}
		drawFooter(w, size, scale, startPage+p-1, layout)
	}
	if err = w.Err(); err != nil {
		return nil, err
	}
	return w.Document()
}

func drawFooter(w *pdfs.Writer, size pdfs.PaperSize, scale float64, number int, layout Layout) {
	bandHeight := layout.FooterHeight * scale
	fontSize := layout.FooterFontSize * scale
	top := size.Height - bandHeight

	w.SetAlpha(layout.FooterOpacity)
	w.SetFillColor(pdfs.White)
	w.FillRect(0, top, size.Width, bandHeight)
	w.SetAlpha(1)

	w.SetFont("Helvetica", "", fontSize)
	w.SetTextColor(pdfs.Black)
	w.CenteredText(0, size.Width, baseline(top, bandHeight, fontSize), strconv.Itoa(number))
}

func drawHeading(w *pdfs.Writer, size pdfs.PaperSize, scale float64, heading string, layout Layout) {
	bandHeight := layout.HeadingHeight * scale
	fontSize := layout.HeadingFontSize * scale
	top := layout.HeadingTop * scale

	w.SetFont("Helvetica", "B", fontSize)
	bandWidth := w.TextWidth(heading) + 2*bandHeight // horizontal padding = band height
	if bandWidth > size.Width {
		bandWidth = size.Width
	}
	left := (size.Width - bandWidth) / 2

	w.SetAlpha(layout.HeadingOpacity)
	w.SetFillColor(pdfs.LightGrey)
	w.FillRect(left, top, bandWidth, bandHeight)
	w.SetAlpha(1)

	w.SetTextColor(pdfs.Black)
	w.CenteredText(0, size.Width, baseline(top, bandHeight, fontSize), heading)
}

// baseline that vertically centers a line of the given font size in a band
func baseline(top float64, bandHeight float64, fontSize float64) float64 {
	return top + bandHeight/2 + fontSize*0.35
}
