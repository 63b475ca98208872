package responses

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/veenu-wootz/qualityinspectionreport-vmerge/rw"
)

// WritePDFAttachment sends PDFBytes as a download named filename.
// Returns the number of bytes that reached the client.
func WritePDFAttachment(w http.ResponseWriter, filename string, PDFBytes []byte) int64 {
	WritePDFResponseHeaders(w, "attachment", filename, len(PDFBytes))
	cw := rw.NewCountWriter(w)
	if _, err := cw.Write(PDFBytes); err != nil {
		log.Printf("[ERROR] writing PDF to response: %v", err)
	}
	return cw.BytesWritten()
}

// WritePDFResponseHeaders write HTTP response headers for PDF response. i.e. headers are frozen
// disposition: "inline" or "attachment"; size < 0 omits Content-Length
func WritePDFResponseHeaders(w http.ResponseWriter, disposition string, filename string, size int) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, filename))
	if size >= 0 {
		w.Header().Set("Content-Length", strconv.Itoa(size))
	}
	w.WriteHeader(http.StatusOK) // Response Header Sent & Frozen
}
