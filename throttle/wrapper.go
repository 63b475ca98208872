package throttle

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/veenu-wootz/qualityinspectionreport-vmerge/requests"
	"github.com/veenu-wootz/qualityinspectionreport-vmerge/responses"
)

// ClientIPWrapper limits requests per client IP using one bucket group of a store.
// It satisfies routing.HandlerWrapper.
type ClientIPWrapper struct {
	Store   *BucketStore[string]
	GroupID string
	Now     func() time.Time // nil = time.Now
}

func (tw *ClientIPWrapper) Wrap(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		now := time.Now
		if tw.Now != nil {
			now = tw.Now
		}
		ip := requests.GetClientIP(r)
		if !tw.Store.Allow(tw.GroupID, ip, now()) {
			log.Printf("[WARN][Throttle] %s %s blocked for %s", r.Method, r.URL.Path, ip)
			if g, ok := tw.Store.GetBucketGroup(tw.GroupID); ok {
				w.Header().Set("Retry-After", strconv.Itoa(int(g.conf.Period.Round(time.Second)/time.Second)))
			}
			responses.WriteSimpleErrorJSON(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		inner.ServeHTTP(w, r)
	})
}
