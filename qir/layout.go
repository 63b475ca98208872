package qir

import "github.com/veenu-wootz/qualityinspectionreport-vmerge/pdfs"

// Layout holds the drawing metrics of the index page and of the stamped
// overlays. Overlay sizes are given for a page of ReferenceWidth and scale
// with the width of each stamped page.
type Layout struct {
	ReferenceWidth float64 // pt

	FooterHeight   float64
	FooterFontSize float64
	FooterOpacity  float64

	HeadingTop      float64 // distance from the top edge
	HeadingHeight   float64
	HeadingFontSize float64
	HeadingOpacity  float64

	IndexPaper pdfs.PaperSize
	Compress   bool
}

func DefaultLayout() Layout {
	return Layout{
		ReferenceWidth:  pdfs.A4Size.Width,
		FooterHeight:    22,
		FooterFontSize:  10,
		FooterOpacity:   0.92,
		HeadingTop:      14,
		HeadingHeight:   24,
		HeadingFontSize: 12,
		HeadingOpacity:  0.75,
		IndexPaper:      pdfs.A4Size,
		Compress:        true,
	}
}

// scale for a page of the given width
func (l Layout) scale(pageWidth float64) float64 {
	if l.ReferenceWidth <= 0 {
		return 1
	}
	return pageWidth / l.ReferenceWidth
}

func (l Layout) writer(opts ...pdfs.Option) *pdfs.Writer {
	return pdfs.NewWriter(append([]pdfs.Option{pdfs.WithCompression(l.Compress)}, opts...)...)
}
