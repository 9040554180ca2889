package extract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/praveena-03/docinsight/internal/document"
)

// BasicBackend is the degraded last resort. It does no content parsing:
// it stats the file, sniffs the raw bytes for a best-effort page count,
// and returns a synthetic placeholder naming the file. Because it never
// opens the PDF structure it also "succeeds" on encrypted documents.
type BasicBackend struct{}

func (b *BasicBackend) Name() document.Method { return document.MethodBasic }

func (b *BasicBackend) Extract(path string) (*document.ExtractionResult, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}

	pages := 1
	if data, err := os.ReadFile(path); err == nil && looksLikePDF(data) {
		pages = sniffPageCount(data)
	}

	return &document.ExtractionResult{
		Metadata: document.Metadata{
			Title:    filepath.Base(path),
			Author:   "Unknown",
			Subject:  "PDF Document",
			Creator:  "Unknown",
			Producer: "Unknown",
			Pages:    pages,
			FileSize: fi.Size(),
		},
		Structure: document.Structure{
			Sections: []document.Section{
				{Title: "Document Content", Page: 1, FontSize: 12},
			},
			TotalPages: pages,
		},
		Content: document.Content{
			TextContent: []document.Paragraph{
				{Text: "PDF content could not be extracted", Page: 1},
			},
			TotalParagraphs: 1,
		},
		Method:  document.MethodBasic,
		Warning: "Limited content extraction",
	}, nil
}
