package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/veenu-wootz/qualityinspectionreport-vmerge/qir"
	"github.com/veenu-wootz/qualityinspectionreport-vmerge/responses"
)

const HeaderRequestID = responses.HeaderRequestID

// RequestIDWrapper gives every request a trail, keyed by the caller's
// X-Request-ID when it is a sane token, else by a fresh UUID.
// It satisfies routing.HandlerWrapper.
type RequestIDWrapper struct{}

func (RequestIDWrapper) Wrap(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(HeaderRequestID))
		if len(id) > 64 || sanitize(id) != id || id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		inner.ServeHTTP(w, r.WithContext(qir.WithTrail(r.Context(), qir.NewTrail(id))))
	})
}
