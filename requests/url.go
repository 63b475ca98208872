package requests

import (
	"net/http"
)

// FullURL rebuilds the URL the client asked for, behind a proxy too
func FullURL(req *http.Request) string {
	scheme := "http"
	if req.TLS != nil {
		scheme = "https"
	} else if proto := req.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + req.Host + req.URL.RequestURI()
}
