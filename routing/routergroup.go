package routing

import (
	"fmt"
	"net/http"
	"strings"
)

type RouteGroup struct {
	Router          // [Embedded Interface]
	Prefix          string
	HandlerWrappers []HandlerWrapper // Group Handler Wrappers
}

var _ Router = (*RouteGroup)(nil)

// Handle registers "<method> <prefix><subpath>" (or "<prefix><subpath>").
// Group wrappers run outside the route's own wrappers:
//
//	grpWrapper1 ( ... grpWrapperN ( hndWrapper1 ( ... hndWrapperN ( handler ) ) ) )
func (g *RouteGroup) Handle(subpattern string, handler http.Handler, handlerWrappers ...HandlerWrapper) {
	fullPattern := g.Prefix + subpattern
	if method, subpath, ok := strings.Cut(subpattern, " "); ok {
		fullPattern = method + " " + g.Prefix + subpath
	}
	if strings.Contains(fullPattern, "//") {
		panic(fmt.Sprintf("routing: invalid pattern %q", fullPattern))
	}
	g.Router.Handle(fullPattern, wrap(wrap(handler, handlerWrappers), g.HandlerWrappers))
}

func (g *RouteGroup) HandleFunc(subpattern string, handleFunc func(http.ResponseWriter, *http.Request), handlerWrappers ...HandlerWrapper) {
	g.Handle(subpattern, http.HandlerFunc(handleFunc), handlerWrappers...)
}

// Group on *RouteGroup makes a Subgroup
//
//	router.Group("/merges/", func(merges *RouteGroup) {
//	  merges.Handle("GET recent", recentHandler)   // "GET /merges/recent"
//	})
func (g *RouteGroup) Group(subPrefix string, batch func(*RouteGroup), handlerWrappers ...HandlerWrapper) *RouteGroup {
	wrappers := make([]HandlerWrapper, 0, len(g.HandlerWrappers)+len(handlerWrappers))
	wrappers = append(wrappers, g.HandlerWrappers...)
	subg := &RouteGroup{
		Router:          g.Router,
		Prefix:          g.Prefix + subPrefix,
		HandlerWrappers: append(wrappers, handlerWrappers...),
	}
	batch(subg)
	return subg
}
