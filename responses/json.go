package responses

import (
	"encoding/json"
	"log"
	"net/http"
)

// HeaderRequestID carries the id that ties a response to its log lines
const HeaderRequestID = "X-Request-ID"

// EncodeWriteJSON Encode & Write Payload as JSON Stream to the Response
func EncodeWriteJSON(w http.ResponseWriter, HTTPStatusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(HTTPStatusCode) // Response Header Sent & Frozen
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[ERROR] failed to write JSON Stream to Response: %v", err)
	}
}

// WriteSimpleErrorJSON writes {"error": msg}. The request id already set on
// the response, if any, is echoed in the body.
func WriteSimpleErrorJSON(w http.ResponseWriter, HTTPStatusCode int, msg string) {
	EncodeWriteJSON(w, HTTPStatusCode, ErrorMessage{
		Error:     msg,
		RequestID: w.Header().Get(HeaderRequestID),
	})
}
