package extract

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/praveena-03/docinsight/internal/document"
)

// Backend is one concrete PDF extraction strategy. Implementations return
// either a normalized result, a result with Error set (a recognized
// refusal, e.g. an encrypted file), or an error. They must not panic, but
// the coordinator recovers if one does.
type Backend interface {
	Name() document.Method
	Extract(path string) (*document.ExtractionResult, error)
}

// Coordinator tries backends in fixed priority order and accepts the
// first result without an error flag. It performs filesystem reads only.
type Coordinator struct {
	backends []Backend
	log      *slog.Logger
}

// NewCoordinator builds the default fallback chain: ledongthuc (richest),
// pdfcpu (metadata-strong), docconv (text only), then the basic
// placeholder backend.
func NewCoordinator(log *slog.Logger) *Coordinator {
	return NewCoordinatorWith(log,
		&LedongthucBackend{},
		&PdfcpuBackend{},
		&DocconvBackend{},
		&BasicBackend{},
	)
}

// NewCoordinatorWith builds a coordinator over an explicit backend chain.
func NewCoordinatorWith(log *slog.Logger, backends ...Backend) *Coordinator {
	if log == nil {
		log = slog.Default()
	}
	return &Coordinator{backends: backends, log: log}
}

// Extract processes a single PDF. It never returns an error: every
// failure mode yields a well-formed result whose Error field is set.
func (c *Coordinator) Extract(path string) *document.ExtractionResult {
	info, err := os.Stat(path)
	if err != nil {
		return document.ErrorResult("File not found")
	}
	if info.Size() == 0 {
		return document.ErrorResult("Empty file")
	}
	f, err := os.Open(path)
	if err != nil {
		return document.ErrorResult("File not readable")
	}
	f.Close()

	for _, b := range c.backends {
		res, err := c.tryBackend(b, path)
		if err != nil {
			c.log.Warn("extraction backend failed", "backend", b.Name(), "path", path, "error", err)
			continue
		}
		if res == nil {
			continue
		}
		if res.Error != "" {
			c.log.Warn("extraction backend refused document", "backend", b.Name(), "path", path, "reason", res.Error)
			continue
		}
		return res
	}

	return document.ErrorResult("All processing methods failed")
}

// tryBackend runs one backend, converting panics into soft failures so a
// misbehaving parser can never take down the chain.
func (c *Coordinator) tryBackend(b Backend, path string) (res *document.ExtractionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("%s: panic: %v", b.Name(), r)
		}
	}()
	return b.Extract(path)
}

// truncate limits s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// splitParagraphs splits page text on blank lines into trimmed,
// non-empty fragments.
func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// collectParagraphs appends up to three meaningful paragraphs from one
// page of text, applying the shared length rules (> 20 chars, capped at
// 500).
func collectParagraphs(dst []document.Paragraph, pageText string, page int) []document.Paragraph {
	count := 0
	for _, p := range splitParagraphs(pageText) {
		if count >= maxParagraphsPerPage {
			break
		}
		if len(p) <= minParagraphLen {
			continue
		}
		dst = append(dst, document.Paragraph{
			Text: truncate(p, maxParagraphLen),
			Page: page,
		})
		count++
	}
	return dst
}

const (
	maxSections          = 10
	maxParagraphsPerPage = 3
	minParagraphLen      = 20
	maxParagraphLen      = 500
	maxSectionTitleLen   = 100
	headerFontSize       = 11.0
)
