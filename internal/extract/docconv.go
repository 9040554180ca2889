package extract

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"code.sajari.com/docconv/v2"

	"github.com/praveena-03/docinsight/internal/document"
)

// DocconvBackend is the weakest real parser in the chain. docconv
// produces a flat text body with form feeds between pages, so sections
// are guessed purely from page presence and metadata comes from whatever
// the converter's Meta map happens to carry.
type DocconvBackend struct{}

func (b *DocconvBackend) Name() document.Method { return document.MethodDocconv }

func (b *DocconvBackend) Extract(path string) (*document.ExtractionResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	res, err := docconv.Convert(f, "application/pdf", false)
	if err != nil {
		return nil, fmt.Errorf("docconv convert: %w", err)
	}
	if res.Error != "" {
		return nil, fmt.Errorf("docconv: %s", res.Error)
	}
	if strings.TrimSpace(res.Body) == "" {
		return nil, errors.New("docconv: no text content")
	}

	pages := strings.Split(res.Body, "\f")

	var sections []document.Section
	var paragraphs []document.Paragraph
	for i, pageText := range pages {
		pageText = strings.TrimSpace(pageText)
		if pageText == "" {
			continue
		}
		if len(sections) < maxSections {
			sections = append(sections, document.Section{
				Title:    fmt.Sprintf("Page %d Content", i+1),
				Page:     i + 1,
				FontSize: 12,
			})
		}
		paragraphs = collectParagraphs(paragraphs, pageText, i+1)
	}

	return &document.ExtractionResult{
		Metadata:  metaFromDocconv(res.Meta, len(pages)),
		Structure: document.Structure{Sections: sections, TotalPages: len(pages)},
		Content:   document.Content{TextContent: paragraphs, TotalParagraphs: len(paragraphs)},
		Method:    document.MethodDocconv,
	}, nil
}

func metaFromDocconv(m map[string]string, pageGuess int) document.Metadata {
	meta := document.Metadata{
		Title:    metaOr(m, "Title", "PDF Document"),
		Author:   metaOr(m, "Author", "Unknown"),
		Subject:  metaOr(m, "Subject", "PDF Content"),
		Creator:  metaOr(m, "Creator", "docconv"),
		Producer: metaOr(m, "Producer", "Unknown"),
		Pages:    pageGuess,
	}
	if v, ok := m["Pages"]; ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			meta.Pages = n
		}
	}
	return meta
}

func metaOr(m map[string]string, key, fallback string) string {
	if v := strings.TrimSpace(m[key]); v != "" {
		return v
	}
	return fallback
}
