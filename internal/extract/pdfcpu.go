package extract

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/praveena-03/docinsight/internal/document"
)

// PdfcpuBackend is the second strategy in the chain. Its strength is the
// Info dictionary and page count; sections are guessed from the first
// plausible line of each page.
type PdfcpuBackend struct{}

func (b *PdfcpuBackend) Name() document.Method { return document.MethodPdfcpu }

func (b *PdfcpuBackend) Extract(path string) (*document.ExtractionResult, error) {
	if isEncrypted(path) {
		return document.ErrorResult("Password-protected PDF"), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	meta := infoDictMetadata(ctx, path)

	var sections []document.Section
	var paragraphs []document.Paragraph
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		pageText := pageContentText(ctx, pageNr)
		if pageText == "" {
			continue
		}
		if len(sections) < maxSections {
			if sec, ok := firstLineSection(pageText, pageNr); ok {
				sections = append(sections, sec)
			}
		}
		paragraphs = collectParagraphs(paragraphs, pageText, pageNr)
	}

	return &document.ExtractionResult{
		Metadata:  meta,
		Structure: document.Structure{Sections: sections, TotalPages: ctx.PageCount},
		Content:   document.Content{TextContent: paragraphs, TotalParagraphs: len(paragraphs)},
		Method:    document.MethodPdfcpu,
	}, nil
}

// firstLineSection takes the first of the opening five lines whose length
// suggests a heading rather than body text or a stray character.
func firstLineSection(pageText string, page int) (document.Section, bool) {
	lines := strings.Split(pageText, "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) > 10 && len(line) < 100 {
			return document.Section{
				Title:    truncate(line, maxSectionTitleLen),
				Page:     page,
				FontSize: 12,
			}, true
		}
	}
	return document.Section{}, false
}

func infoDictMetadata(ctx *model.Context, path string) document.Metadata {
	meta := document.Metadata{Pages: ctx.PageCount}
	if fi, err := os.Stat(path); err == nil {
		meta.FileSize = fi.Size()
	}
	if ctx.Info == nil {
		return meta
	}
	d, err := ctx.DereferenceDict(*ctx.Info)
	if err != nil || d == nil {
		return meta
	}
	meta.Title = infoString(ctx, d, "Title")
	meta.Author = infoString(ctx, d, "Author")
	meta.Subject = infoString(ctx, d, "Subject")
	meta.Creator = infoString(ctx, d, "Creator")
	meta.Producer = infoString(ctx, d, "Producer")
	return meta
}

func infoString(ctx *model.Context, d types.Dict, key string) string {
	o, found := d.Find(key)
	if !found {
		return ""
	}
	o, err := ctx.Dereference(o)
	if err != nil {
		return ""
	}
	if s, ok := o.(types.StringLiteral); ok {
		return s.Value()
	}
	return ""
}

// pageContentText renders a page's content stream to plain text.
func pageContentText(ctx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return streamToText(data)
}

// pdfStringRe matches PDF string literals: (text here)
var pdfStringRe = regexp.MustCompile(`\(([^)]*)\)`)

// streamToText walks content stream operators and collects text shown by
// Tj, TJ and ' while translating the positioning operators Td/TD/T* into
// whitespace.
func streamToText(data []byte) string {
	var sb strings.Builder

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				sb.WriteString(decodePDFString(m[1]))
			}
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				if s := decodePDFString(m[1]); s != "" {
					sb.WriteByte('\n')
					sb.WriteString(s)
				}
			}
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")):
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}
		case bytes.Equal(line, []byte("T*")):
			sb.WriteByte('\n')
		}
	}

	return normalizeStreamText(sb.String())
}

// decodePDFString resolves the basic PDF escape sequences, including
// octal escapes.
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch c := raw[i]; c {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(c)
		default:
			if c >= '0' && c <= '7' {
				val := int(c - '0')
				for j := 0; j < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; j++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				sb.WriteByte(byte(val))
			} else {
				sb.WriteByte(c)
			}
		}
	}
	return sb.String()
}

// normalizeStreamText drops non-printable runes and collapses horizontal
// whitespace while keeping line breaks, so downstream paragraph and
// first-line heuristics still see page layout.
func normalizeStreamText(text string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range text {
		switch {
		case r == '\n':
			sb.WriteRune('\n')
			prevSpace = false
		case unicode.IsSpace(r):
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
		case unicode.IsPrint(r):
			sb.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(sb.String())
}
