package extract

import (
	"bytes"
	"os"
)

// Raw-bytes inspection of the PDF file, used before and instead of real
// parsing. Password-protected files carry an /Encrypt entry in the
// trailer dictionary; scanning for the token is a best-effort check that
// lets backends refuse such files with a specific message instead of a
// generic parse error.

var (
	pdfHeader    = []byte("%PDF-")
	encryptToken = []byte("/Encrypt")
	pageToken    = []byte("/Type /Page")
	pagesToken   = []byte("/Type /Pages")
)

// isEncrypted reports whether the file looks like a password-protected
// PDF. Errors reading the file are treated as "not encrypted"; the
// backend's real open path will surface them.
func isEncrypted(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return bytes.Contains(data, encryptToken)
}

// sniffPageCount counts page object markers in the raw bytes. Returns 1
// when the file is unreadable or no markers are found.
func sniffPageCount(data []byte) int {
	n := bytes.Count(data, pageToken) - bytes.Count(data, pagesToken)
	if n < 1 {
		return 1
	}
	return n
}

// looksLikePDF checks the magic header.
func looksLikePDF(data []byte) bool {
	return bytes.HasPrefix(data, pdfHeader)
}
