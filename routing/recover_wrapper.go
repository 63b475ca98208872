package routing

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/veenu-wootz/qualityinspectionreport-vmerge/responses"
)

// RecoverWrapper turns a panicking handler into a 500 JSON error
var RecoverWrapper HandlerWrapper = HandlerWrapperFunc(recoverHandler)

func recoverHandler(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Printf("[PANIC] %s %s recovered: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				responses.WriteSimpleErrorJSON(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		inner.ServeHTTP(w, r)
	})
}
