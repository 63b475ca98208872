package qir

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/veenu-wootz/qualityinspectionreport-vmerge/pdfs"
)

// PagePlaceholder is printed for sections without an assigned page
const PagePlaceholder = "-"

// Header is the report identification printed above the index table
type Header struct {
	ReportNo string
	PartName string
	Date     string
}

type IndexRow struct {
	Label  string
	Page   int  // 0 = no page assigned
	Header bool // section row, as opposed to an indented sub-row
}

func (r IndexRow) PageText() string {
	if r.Page <= 0 {
		return PagePlaceholder
	}
	return strconv.Itoa(r.Page)
}

// IndexRows lists the table of contents rows of plan in display order
func IndexRows(plan PagePlan) []IndexRow {
	rows := []IndexRow{
		{Label: "Report Header & Part Info", Page: 1, Header: true},
		{Label: "Index", Page: plan.IndexPage(), Header: true},
		{Label: "Part Drawing", Page: partDrawingPage, Header: true},
		{Label: "Inspection", Page: plan.InspectionPage, Header: true},
		{Label: "Dimensional Inspection", Page: plan.InspectionPage},
		{Label: "Visual Inspection", Page: plan.VisualInspectionPage},
	}
	certs := IndexRow{Label: "Tests & Certificates", Header: true}
	if len(plan.Certificates) > 0 {
		certs.Page = plan.Certificates[0].StartPage
	}
	rows = append(rows, certs)
	for _, c := range plan.Certificates {
		rows = append(rows, IndexRow{Label: c.Label, Page: c.StartPage})
	}
	return rows
}

// index page geometry, in pt
const (
	indexMargin     = 50.0
	indexTitleY     = 72.0
	indexInfoTop    = 104.0
	indexInfoLine   = 16.0
	indexTableTop   = 172.0
	indexRowHeight  = 22.0
	indexPageColumn = 70.0
	indexIndent     = 18.0
)

// RenderIndex draws the single index page of plan.
// A table longer than the page simply runs past the bottom edge.
func RenderIndex(plan PagePlan, header Header, layout Layout) (*pdfs.Document, error) {
	doc, err := renderIndex(plan, header, layout)
	if err != nil {
		return nil, &RenderError{Err: err}
	}
	if doc.PageCount != 1 {
		return nil, &RenderError{Err: fmt.Errorf("index rendered as %d pages", doc.PageCount)}
	}
	return doc, nil
}

func renderIndex(plan PagePlan, header Header, layout Layout) (*pdfs.Document, error) {
	paper := layout.IndexPaper
	if paper.Width <= 0 || paper.Height <= 0 {
		paper = pdfs.A4Size
	}
	w := layout.writer(pdfs.WithTitle("Index " + header.ReportNo))
	w.AddBlankPage(paper)

	left := indexMargin
	width := paper.Width - 2*indexMargin

	// title
	w.SetTextColor(pdfs.Black)
	w.SetFont("Helvetica", "", 9)
	w.CenteredText(left, width, indexTitleY-22, "QUALITY INSPECTION REPORT")
	w.SetFont("Helvetica", "B", 18)
	w.CenteredText(left, width, indexTitleY, "INDEX")

	// report block
	info := [][2]string{
		{"Report No", header.ReportNo},
		{"Part Name", header.PartName},
		{"Date", header.Date},
	}
	for i, kv := range info {
		y := indexInfoTop + float64(i)*indexInfoLine
		w.SetFont("Helvetica", "B", 10)
		w.Text(left, y, kv[0]+":")
		w.SetFont("Helvetica", "", 10)
		w.Text(left+70, y, orPlaceholder(kv[1]))
	}

	// caption row
	labelWidth := width - indexPageColumn
	y := indexTableTop
	w.SetFillColor(pdfs.DarkGrey)
	w.SetTextColor(pdfs.White)
	w.SetFont("Helvetica", "B", 10)
	w.Cell(left, y, labelWidth, indexRowHeight, "Section", "LM", true, "")
	w.Cell(left+labelWidth, y, indexPageColumn, indexRowHeight, "Page", "RM", true, "")
	y += indexRowHeight

	w.SetTextColor(pdfs.Black)
	w.SetDrawColor(pdfs.LightGrey)
	for _, row := range IndexRows(plan) {
		if row.Header {
			w.SetFillColor(pdfs.LightGrey)
			w.SetFont("Helvetica", "B", 11)
			w.Cell(left, y, labelWidth, indexRowHeight, row.Label, "LM", true, "")
			w.Cell(left+labelWidth, y, indexPageColumn, indexRowHeight, row.PageText(), "RM", true, "")
		} else {
			w.SetFont("Helvetica", "", 10)
			w.Cell(left+indexIndent, y, labelWidth-indexIndent, indexRowHeight, row.Label, "LM", false, "")
			w.Cell(left+labelWidth, y, indexPageColumn, indexRowHeight, row.PageText(), "RM", false, "")
		}
		y += indexRowHeight
		w.Line(left, y, left+width, y, 0.5)
	}

	if err := w.Err(); err != nil {
		return nil, err
	}
	return w.Document()
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return PagePlaceholder
	}
	return s
}
