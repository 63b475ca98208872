package api

import (
	"strings"

	"github.com/veenu-wootz/qualityinspectionreport-vmerge/qir"
)

// MergeRequestBody is the JSON accepted by POST /merge
type MergeRequestBody struct {
	ReportNo     string            `json:"reportNo"`
	PartName     string            `json:"partName"`
	Date         string            `json:"date"`
	QIRSource    SourceBody        `json:"qirSource"`
	Certificates []CertificateBody `json:"certificates"`
}

type SourceBody struct {
	Type  string `json:"type"` // "url" or "base64"
	Value string `json:"value"`
}

type CertificateBody struct {
	Label string `json:"label"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

func (b *MergeRequestBody) ToRequest() qir.Request {
	req := qir.Request{
		Header: qir.Header{
			ReportNo: strings.TrimSpace(b.ReportNo),
			PartName: strings.TrimSpace(b.PartName),
			Date:     strings.TrimSpace(b.Date),
		},
		Base:         qir.Reference{Kind: kind(b.QIRSource.Type), Locator: b.QIRSource.Value, Label: "QIR"},
		Certificates: make([]qir.Reference, len(b.Certificates)),
	}
	for i, c := range b.Certificates {
		req.Certificates[i] = qir.Reference{Kind: kind(c.Type), Locator: c.Value, Label: c.Label}
	}
	return req
}

func kind(t string) qir.Kind {
	return qir.Kind(strings.ToLower(strings.TrimSpace(t)))
}
