package api

import "strings"

// Filename is the attachment name of a merged report: QIR-<reportNo>-<date>.pdf,
// keeping only ASCII letters, digits, '-', '_' and '.' of both parts.
func Filename(reportNo string, date string) string {
	return "QIR-" + sanitize(reportNo) + "-" + sanitize(date) + ".pdf"
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		}
		return -1
	}, s)
}
