package routing_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veenu-wootz/qualityinspectionreport-vmerge/routing"
)

// tag appends name to the X-Trace header before and after the inner handler
func tag(name string) routing.HandlerWrapper {
	return routing.HandlerWrapperFunc(func(inner http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Trace", name)
			inner.ServeHTTP(w, r)
		})
	})
}

func ok(w http.ResponseWriter, r *http.Request) {
	_, _ = io.WriteString(w, r.Method+" "+r.URL.Path)
}

func TestBaseRouter_WrapperOrder(t *testing.T) {
	router := routing.NewBaseRouter()
	router.Use(tag("global"))
	router.Group("/api/", func(api *routing.RouteGroup) {
		api.HandleFunc("GET items", ok, tag("route"))
		api.Group("admin/", func(admin *routing.RouteGroup) {
			admin.HandleFunc("POST reset", ok)
		}, tag("admin"))
	}, tag("group"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/items", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "GET /api/items", rec.Body.String())
	assert.Equal(t, []string{"global", "group", "route"}, rec.Header().Values("X-Trace"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/reset", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"global", "group", "admin"}, rec.Header().Values("X-Trace"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/items", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouteGroup_RejectsDoubleSlash(t *testing.T) {
	router := routing.NewBaseRouter()
	assert.Panics(t, func() {
		router.Group("/api/", func(api *routing.RouteGroup) {
			api.HandleFunc("GET /items", ok)
		})
	})
}

func TestRecoverWrapper(t *testing.T) {
	router := routing.NewBaseRouter()
	router.HandleFunc("GET /boom", func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	}, routing.RecoverWrapper)

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `"error"`))
}
