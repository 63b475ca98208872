package qir

import (
	"errors"
	"fmt"
	"sort"

	"github.com/veenu-wootz/qualityinspectionreport-vmerge/pdfs"
)

// PlacedCertificate is a loaded (and usually stamped) certificate with its plan entry.
// Order is the position of the certificate in the caller's input.
type PlacedCertificate struct {
	Order    int
	Entry    CertEntry
	Document *pdfs.Document
}

// Assemble copies pages into one document in the fixed order:
// base page 1, index, base pages 2..N, then certificates by input order.
// The plan is trusted; a certificate that would not land on its planned
// start page is reported as a CopyError. Every failure here is fatal.
//
// Pages are copied as page objects, never re-imported as templates, so
// stamped certificates keep their structure in the output.
func Assemble(plan PagePlan, base *pdfs.Document, index *pdfs.Document, certs []PlacedCertificate) (*pdfs.Document, error) {
	if base == nil || base.PageCount < 1 {
		return nil, &CopyError{Section: "base", Err: ErrEmptyBaseDocument}
	}
	if index == nil || index.PageCount != 1 {
		return nil, &CopyError{Section: "index", Err: errors.New("index must be exactly one page")}
	}
	if base.PageCount != plan.BasePageCount {
		return nil, &CopyError{Section: "base", Err: fmt.Errorf("plan expects %d pages, document has %d", plan.BasePageCount, base.PageCount)}
	}
	if err := checkSection("base", base); err != nil {
		return nil, err
	}
	if err := checkSection("index", index); err != nil {
		return nil, err
	}

	ordered := make([]PlacedCertificate, len(certs))
	copy(ordered, certs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})

	sections := make([]*pdfs.Document, 0, len(ordered)+2)
	sections = append(sections, base, index)
	next := base.PageCount + 2
	for _, c := range ordered {
		if c.Document == nil || c.Document.PageCount != c.Entry.PageCount {
			return nil, &CopyError{Section: c.Entry.Label, Err: errors.New("document does not match its plan entry")}
		}
		if next != c.Entry.StartPage {
			return nil, &CopyError{Section: c.Entry.Label, Err: fmt.Errorf("planned at page %d, would land on page %d", c.Entry.StartPage, next)}
		}
		if err := checkSection(c.Entry.Label, c.Document); err != nil {
			return nil, err
		}
		sections = append(sections, c.Document)
		next += c.Document.PageCount
	}

	if got, want := next-1, plan.TotalPages(); got != want {
		return nil, &CopyError{Section: "output", Err: fmt.Errorf("assembled %d pages, plan has %d", got, want)}
	}

	joined, err := pdfs.Concat(sections...)
	if err != nil {
		return nil, &CopyError{Section: "output", Err: err}
	}
	out, err := pdfs.Arrange(joined, finalOrder(base.PageCount, joined.PageCount))
	if err != nil {
		return nil, &CopyError{Section: "output", Err: err}
	}
	return out, nil
}

// checkSection makes sure doc parses with the page count it claims
func checkSection(section string, doc *pdfs.Document) error {
	loaded, err := pdfs.Load(doc.Bytes)
	if err != nil {
		return &CopyError{Section: section, Err: err}
	}
	if loaded.PageCount != doc.PageCount {
		return &CopyError{Section: section, Err: fmt.Errorf("document has %d pages, expected %d", loaded.PageCount, doc.PageCount)}
	}
	return nil
}

// finalOrder maps the concatenation base, index, certificates to the merged
// page order. The index is page basePages+1 of the concatenation.
func finalOrder(basePages int, total int) []int {
	order := make([]int, 0, total)
	order = append(order, 1, basePages+1)
	for p := 2; p <= basePages; p++ {
		order = append(order, p)
	}
	for p := basePages + 2; p <= total; p++ {
		order = append(order, p)
	}
	return order
}
