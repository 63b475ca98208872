package api

import (
	"net/http"

	"github.com/veenu-wootz/qualityinspectionreport-vmerge/routing"
)

// Guards are optional wrappers for the protected routes
type Guards struct {
	Auth     routing.HandlerWrapper // /merge and /merges/recent
	Throttle routing.HandlerWrapper // /merge only
}

func (g Guards) list(ws ...routing.HandlerWrapper) []routing.HandlerWrapper {
	out := make([]routing.HandlerWrapper, 0, len(ws))
	for _, w := range ws {
		if w != nil {
			out = append(out, w)
		}
	}
	return out
}

// NewRouter wires the HTTP surface:
//
//	GET  /               liveness
//	POST /merge          merged PDF
//	GET  /merges/recent  audit records, newest first
func NewRouter(h *Handler, guards Guards) http.Handler {
	router := routing.NewBaseRouter()
	router.Use(routing.RecoverWrapper, RequestIDWrapper{})

	router.HandleFunc("GET /{$}", h.Liveness)
	router.HandleFunc("POST /merge", h.Merge, guards.list(guards.Auth, guards.Throttle)...)
	router.Group("/merges/", func(merges *routing.RouteGroup) {
		merges.HandleFunc("GET recent", h.RecentMerges)
	}, guards.list(guards.Auth)...)
	return router
}
