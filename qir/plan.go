package qir

import (
	"fmt"
	"strings"
)

const (
	DefaultCertificateLabel = "Certificate"
	DefaultInspectionPage   = 4

	indexPage       = 2
	partDrawingPage = 3
)

// CertInput is what the plan needs to know about a loaded certificate
type CertInput struct {
	Label     string
	PageCount int
}

type CertEntry struct {
	Label     string
	StartPage int
	PageCount int
}

// EndPage is the last final page number occupied by the certificate
func (e CertEntry) EndPage() int {
	return e.StartPage + e.PageCount - 1
}

// PagePlan maps every logical section of the merged report to its final page number.
type PagePlan struct {
	BasePageCount        int
	InspectionPage       int
	VisualInspectionPage int // 0 = unassigned
	Certificates         []CertEntry
}

// ComputePlan lays out the merged document:
// base page 1, the index as page 2, base pages 2..N shifted by one,
// then every certificate contiguously in input order.
// Certificates without pages are left out. inspectionPage is a final page
// number; it may not exceed basePageCount or point at the index page.
func ComputePlan(basePageCount int, inspectionPage int, certs []CertInput) (PagePlan, error) {
	if basePageCount < 1 {
		return PagePlan{}, ErrEmptyBaseDocument
	}
	if inspectionPage < 1 || inspectionPage > basePageCount {
		return PagePlan{}, fmt.Errorf("%w: page %d, base document has %d pages",
			ErrInspectionPageOutOfRange, inspectionPage, basePageCount)
	}
	if inspectionPage == indexPage {
		return PagePlan{}, fmt.Errorf("%w: page %d is the index page", ErrInspectionPageOutOfRange, inspectionPage)
	}

	plan := PagePlan{
		BasePageCount:  basePageCount,
		InspectionPage: inspectionPage,
		Certificates:   make([]CertEntry, 0, len(certs)),
	}
	next := basePageCount + 2
	for _, c := range certs {
		if c.PageCount <= 0 {
			continue
		}
		plan.Certificates = append(plan.Certificates, CertEntry{
			Label:     CertificateLabel(c.Label),
			StartPage: next,
			PageCount: c.PageCount,
		})
		next += c.PageCount
	}
	return plan, nil
}

// CertificateLabel returns label, or the default label when it is blank
func CertificateLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return DefaultCertificateLabel
	}
	return label
}

func (p PagePlan) IndexPage() int {
	return indexPage
}

// FinalPage maps a 1-based base document page to its page in the merged document
func (p PagePlan) FinalPage(basePage int) int {
	if basePage <= 1 {
		return basePage
	}
	return basePage + 1
}

// CertificatePages is the sum of the page counts of all planned certificates
func (p PagePlan) CertificatePages() int {
	n := 0
	for _, c := range p.Certificates {
		n += c.PageCount
	}
	return n
}

func (p PagePlan) TotalPages() int {
	return p.BasePageCount + 1 + p.CertificatePages()
}

// Labels lists the certificate labels of a plan, for summaries
func (p PagePlan) Labels() string {
	labels := make([]string, len(p.Certificates))
	for i, c := range p.Certificates {
		labels[i] = c.Label
	}
	return strings.Join(labels, ", ")
}

// WithVisualInspection assigns the visual inspection page when it falls on a base page.
// Pages outside the base range leave the plan unchanged.
func (p PagePlan) WithVisualInspection(page int) PagePlan {
	if page >= 1 && page <= p.BasePageCount+1 && page != indexPage {
		p.VisualInspectionPage = page
	}
	return p
}
