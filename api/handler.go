package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/veenu-wootz/qualityinspectionreport-vmerge/audit"
	"github.com/veenu-wootz/qualityinspectionreport-vmerge/qir"
	"github.com/veenu-wootz/qualityinspectionreport-vmerge/requests"
	"github.com/veenu-wootz/qualityinspectionreport-vmerge/responses"
	"github.com/veenu-wootz/qualityinspectionreport-vmerge/sec"
)

const (
	HeaderDropped = "X-Merge-Dropped"

	DefaultRecentLimit = 20
	MaxRecentLimit     = 100
)

// Merger is satisfied by *qir.Merger
type Merger interface {
	Merge(ctx context.Context, req qir.Request) (*qir.Result, error)
}

type Handler struct {
	AppName string
	Version string
	Merger  Merger
	Audit   audit.Store // nil = disabled
	Now     func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// Liveness - GET /
func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	responses.EncodeWriteJSON(w, http.StatusOK, responses.Status{Status: "ok", Service: h.AppName, Version: h.Version})
}

// Merge - POST /merge
func (h *Handler) Merge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	trail, ok := qir.TrailFromContext(ctx)
	if !ok {
		trail = qir.NewTrail("")
		ctx = qir.WithTrail(ctx, trail)
	}

	if !requests.HasBody(r) {
		responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, "request body required")
		return
	}
	var body MergeRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		trail.Warnf("undecodable request body: %v", err)
		responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	trail.Infof("merge requested via %s for report %q with %d certificates", requests.FullURL(r), body.ReportNo, len(body.Certificates))

	started := h.now()
	res, err := h.Merger.Merge(ctx, body.ToRequest())

	rec := audit.Record{
		RequestID:  trail.RequestID,
		At:         started.UTC(),
		Subject:    sec.SubjectFromContext(ctx),
		ReportNo:   body.ReportNo,
		PartName:   body.PartName,
		Date:       body.Date,
		Status:     audit.StatusOK,
		DurationMS: h.now().Sub(started).Milliseconds(),
	}
	if err != nil {
		rec.Status, rec.Error = audit.StatusError, err.Error()
	} else {
		rec.Pages = res.Document.PageCount
		rec.Bytes = int64(len(res.Document.Bytes))
		for _, c := range res.Plan.Certificates {
			rec.Certificates = append(rec.Certificates, c.Label)
		}
		for _, d := range res.Dropped {
			rec.Dropped = append(rec.Dropped, audit.Dropped{Label: d.Label, Reason: d.Reason})
		}
	}
	h.record(ctx, rec)

	if err != nil {
		log.Printf("[ERROR][%s] merge failed (%s): %v", trail.RequestID, failureKind(err), err)
		responses.WriteSimpleErrorJSON(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set(HeaderDropped, strconv.Itoa(len(res.Dropped)))
	n := responses.WritePDFAttachment(w, Filename(body.ReportNo, body.Date), res.Document.Bytes)
	trail.Infof("sent %d pages, %d bytes", res.Document.PageCount, n)
}

// record stores rec without letting audit failures affect the response
func (h *Handler) record(ctx context.Context, rec audit.Record) {
	if h.Audit == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := h.Audit.Record(ctx, rec); err != nil {
		log.Printf("[WARN][%s] audit record not stored: %v", rec.RequestID, err)
	}
}

// RecentMerges - GET /merges/recent?limit=N
func (h *Handler) RecentMerges(w http.ResponseWriter, r *http.Request) {
	limit := DefaultRecentLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, MaxRecentLimit)
	}
	if h.Audit == nil {
		responses.WriteSimpleErrorJSON(w, http.StatusServiceUnavailable, audit.ErrDisabled.Error())
		return
	}
	records, err := h.Audit.Recent(r.Context(), limit)
	switch {
	case errors.Is(err, audit.ErrDisabled):
		responses.WriteSimpleErrorJSON(w, http.StatusServiceUnavailable, err.Error())
	case err != nil:
		log.Printf("[ERROR] reading audit records: %v", err)
		responses.WriteSimpleErrorJSON(w, http.StatusInternalServerError, "audit store unavailable")
	default:
		responses.EncodeWriteJSON(w, http.StatusOK, records)
	}
}

// failureKind names the pipeline stage that failed, for logs
func failureKind(err error) string {
	var (
		fetchErr  *qir.FetchError
		decodeErr *qir.DecodeError
		parseErr  *qir.ParseError
		renderErr *qir.RenderError
		copyErr   *qir.CopyError
	)
	switch {
	case errors.As(err, &fetchErr):
		return "fetch"
	case errors.As(err, &decodeErr):
		return "decode"
	case errors.As(err, &parseErr):
		return "parse"
	case errors.As(err, &renderErr):
		return "render"
	case errors.As(err, &copyErr):
		return "copy"
	default:
		return "plan"
	}
}
