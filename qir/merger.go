package qir

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/veenu-wootz/qualityinspectionreport-vmerge/pdfs"
)

const DefaultMaxConcurrentFetches = 4

// Request is one merge job
type Request struct {
	Header       Header
	Base         Reference
	Certificates []Reference
}

type Config struct {
	InspectionPage       int  // final page number of the inspection section
	VisualInspectionPage int  // 0 = unassigned
	StampHeadings        bool // print each certificate label on its first page
	MaxConcurrentFetches int
	Layout               Layout
}

func DefaultConfig() Config {
	return Config{
		InspectionPage:       DefaultInspectionPage,
		StampHeadings:        true,
		MaxConcurrentFetches: DefaultMaxConcurrentFetches,
		Layout:               DefaultLayout(),
	}
}

// DocumentResolver is satisfied by *Resolver
type DocumentResolver interface {
	Resolve(ctx context.Context, ref Reference) (*pdfs.Document, error)
}

// CertOutcome pairs a certificate input with the result of loading it
type CertOutcome struct {
	Order    int
	Ref      Reference
	Document *pdfs.Document
	Err      error
}

type DroppedCertificate struct {
	Label  string `json:"label"`
	Reason string `json:"reason"`
}

type Result struct {
	Document *pdfs.Document
	Plan     PagePlan
	Dropped  []DroppedCertificate
}

type Merger struct {
	resolver DocumentResolver
	conf     Config
}

func NewMerger(resolver DocumentResolver, conf Config) *Merger {
	if conf.MaxConcurrentFetches <= 0 {
		conf.MaxConcurrentFetches = DefaultMaxConcurrentFetches
	}
	return &Merger{resolver: resolver, conf: conf}
}

// Merge builds the report for req. Certificates that cannot be loaded are
// dropped and listed in Result.Dropped; failures on the base document,
// planning, index rendering or assembly abort the merge.
func (m *Merger) Merge(ctx context.Context, req Request) (*Result, error) {
	trail := trailOf(ctx)

	trail.Infof("loading base document (%s)", req.Base.Kind)
	if req.Base.Blank() {
		return nil, &DecodeError{Err: fmt.Errorf("base document has no %s", req.Base.Kind)}
	}
	base, err := m.resolver.Resolve(ctx, req.Base)
	if err != nil {
		return nil, fmt.Errorf("base document: %w", err)
	}
	trail.Infof("base document has %d pages", base.PageCount)

	outcomes := m.Collect(ctx, req.Certificates)
	survivors, dropped := Partition(outcomes)
	for _, d := range dropped {
		trail.Warnf("certificate %q dropped: %s", d.Label, d.Reason)
	}

	inputs := make([]CertInput, len(survivors))
	for i, s := range survivors {
		inputs[i] = CertInput{Label: s.Ref.Label, PageCount: s.Document.PageCount}
	}
	plan, err := ComputePlan(base.PageCount, m.conf.InspectionPage, inputs)
	if err != nil {
		return nil, err
	}
	plan = plan.WithVisualInspection(m.conf.VisualInspectionPage)
	trail.Infof("planned %d pages, %d certificates", plan.TotalPages(), len(plan.Certificates))

	index, err := RenderIndex(plan, req.Header, m.conf.Layout)
	if err != nil {
		return nil, err
	}

	// survivors and plan entries line up: every survivor has pages
	placed := make([]PlacedCertificate, len(survivors))
	for i, s := range survivors {
		entry := plan.Certificates[i]
		heading := ""
		if m.conf.StampHeadings {
			heading = entry.Label
		}
		stamped := Stamp(s.Document, entry.StartPage, heading, m.conf.Layout)
		if !stamped.Stamped {
			trail.Warnf("certificate %q left unstamped: %v", entry.Label, stamped.Err)
		}
		placed[i] = PlacedCertificate{Order: s.Order, Entry: entry, Document: stamped.Document}
	}

	merged, err := Assemble(plan, base, index, placed)
	if err != nil {
		return nil, err
	}
	trail.Infof("merged document has %d pages", merged.PageCount)

	return &Result{Document: merged, Plan: plan, Dropped: dropped}, nil
}

// Collect loads refs concurrently. The result has one slot per non-blank
// reference in input order; blank references are skipped.
func (m *Merger) Collect(ctx context.Context, refs []Reference) []CertOutcome {
	outcomes := make([]CertOutcome, 0, len(refs))
	for i, ref := range refs {
		if ref.Blank() {
			continue
		}
		outcomes = append(outcomes, CertOutcome{Order: i, Ref: ref})
	}

	g := new(errgroup.Group)
	g.SetLimit(m.conf.MaxConcurrentFetches)
	for i := range outcomes {
		g.Go(func() error {
			o := &outcomes[i]
			o.Document, o.Err = m.resolver.Resolve(ctx, o.Ref)
			return nil // a failed certificate never cancels its siblings
		})
	}
	_ = g.Wait()
	return outcomes
}

// Partition splits outcomes into loaded certificates and dropped ones, both in input order.
// A document with no pages counts as dropped.
func Partition(outcomes []CertOutcome) ([]CertOutcome, []DroppedCertificate) {
	var (
		ok      []CertOutcome
		dropped []DroppedCertificate
	)
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			dropped = append(dropped, DroppedCertificate{Label: CertificateLabel(o.Ref.Label), Reason: o.Err.Error()})
		case o.Document == nil || o.Document.PageCount <= 0:
			dropped = append(dropped, DroppedCertificate{Label: CertificateLabel(o.Ref.Label), Reason: "document has no pages"})
		default:
			ok = append(ok, o)
		}
	}
	return ok, dropped
}
