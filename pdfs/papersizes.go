package pdfs

type PaperSize struct {
	Name   string
	Width  float64 // in `pt` (1" = 72pts)
	Height float64 // in `pt`
}

var (
	LetterSize = PaperSize{Name: "Letter", Width: 612, Height: 792}       // 8.5" x 11"
	A4Size     = PaperSize{Name: "A4", Width: 595.28, Height: 841.89}     // 210mm x 297mm
	A3Size     = PaperSize{Name: "A3", Width: 841.89, Height: 1190.55}    // 297mm x 420mm
	LegalSize  = PaperSize{Name: "Legal", Width: 612, Height: 1008}       // 8.5" x 14"
)

// Landscape returns the size rotated so that Width >= Height
func (s PaperSize) Landscape() PaperSize {
	if s.Width >= s.Height {
		return s
	}
	return PaperSize{Name: s.Name, Width: s.Height, Height: s.Width}
}

// Orientation in the fpdf notation: "P" or "L"
func (s PaperSize) Orientation() string {
	if s.Width > s.Height {
		return "L"
	}
	return "P"
}
