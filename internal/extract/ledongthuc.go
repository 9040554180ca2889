package extract

import (
	"fmt"
	"os"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/praveena-03/docinsight/internal/document"
)

// LedongthucBackend is the richest extraction strategy. It reads the
// trailer Info dictionary for metadata, scans text spans for font-size
// based header detection, and pulls plain text per page.
type LedongthucBackend struct{}

func (b *LedongthucBackend) Name() document.Method { return document.MethodLedongthuc }

func (b *LedongthucBackend) Extract(path string) (*document.ExtractionResult, error) {
	if isEncrypted(path) {
		return document.ErrorResult("Password-protected PDF"), nil
	}

	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	meta := b.metadata(reader, path)
	structure := b.structure(reader)
	content := b.content(reader)

	return &document.ExtractionResult{
		Metadata:  meta,
		Structure: structure,
		Content:   content,
		Method:    document.MethodLedongthuc,
	}, nil
}

func (b *LedongthucBackend) metadata(reader *pdflib.Reader, path string) document.Metadata {
	meta := document.Metadata{Pages: reader.NumPage()}
	if fi, err := os.Stat(path); err == nil {
		meta.FileSize = fi.Size()
	}

	info := reader.Trailer().Key("Info")
	if !info.IsNull() {
		meta.Title = info.Key("Title").Text()
		meta.Author = info.Key("Author").Text()
		meta.Subject = info.Key("Subject").Text()
		meta.Creator = info.Key("Creator").Text()
		meta.Producer = info.Key("Producer").Text()
	}
	return meta
}

// structure scans text spans page by page. Consecutive spans on the same
// baseline with the same font size are merged into one candidate line;
// the first candidate per page longer than 5 chars with a font size above
// 11pt is taken as that page's section header.
func (b *LedongthucBackend) structure(reader *pdflib.Reader) document.Structure {
	total := reader.NumPage()
	var sections []document.Section

	for n := 1; n <= total && len(sections) < maxSections; n++ {
		page := reader.Page(n)
		if page.V.IsNull() {
			continue
		}
		if sec, ok := headerForPage(page.Content().Text, n); ok {
			sections = append(sections, sec)
		}
	}

	return document.Structure{Sections: sections, TotalPages: total}
}

func headerForPage(spans []pdflib.Text, page int) (document.Section, bool) {
	var run strings.Builder
	var runSize, runY float64

	flush := func() (document.Section, bool) {
		text := strings.TrimSpace(run.String())
		run.Reset()
		if len(text) > 5 && runSize > headerFontSize {
			return document.Section{
				Title:    truncate(text, maxSectionTitleLen),
				Page:     page,
				FontSize: runSize,
			}, true
		}
		return document.Section{}, false
	}

	for _, span := range spans {
		if run.Len() > 0 && (span.FontSize != runSize || span.Y != runY) {
			if sec, ok := flush(); ok {
				return sec, true
			}
		}
		if run.Len() == 0 {
			runSize = span.FontSize
			runY = span.Y
		}
		run.WriteString(span.S)
	}
	return flush()
}

func (b *LedongthucBackend) content(reader *pdflib.Reader) document.Content {
	var paragraphs []document.Paragraph
	total := reader.NumPage()

	for n := 1; n <= total; n++ {
		page := reader.Page(n)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		paragraphs = collectParagraphs(paragraphs, text, n)
	}

	return document.Content{
		TextContent:     paragraphs,
		TotalParagraphs: len(paragraphs),
	}
}
