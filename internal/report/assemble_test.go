package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/praveena-03/docinsight/internal/document"
)

func resultWithSections(titles ...string) *document.ExtractionResult {
	res := &document.ExtractionResult{
		Metadata:  document.DefaultMetadata(),
		Structure: document.Structure{TotalPages: 1},
		Content:   document.Content{},
	}
	for i, title := range titles {
		res.Structure.Sections = append(res.Structure.Sections, document.Section{
			Title: title, Page: i + 1, FontSize: 14,
		})
	}
	return res
}

func resultWithText(paragraphs ...string) *document.ExtractionResult {
	res := &document.ExtractionResult{
		Metadata:  document.DefaultMetadata(),
		Structure: document.Structure{TotalPages: 1},
	}
	for i, p := range paragraphs {
		res.Content.TextContent = append(res.Content.TextContent, document.Paragraph{Text: p, Page: i + 1})
	}
	res.Content.TotalParagraphs = len(res.Content.TextContent)
	return res
}

func TestAssembleSingleHelloWorld(t *testing.T) {
	// A one-page document whose only text ("Hello world.") was too short
	// to survive paragraph collection reaches the assembler with empty
	// content: exactly one "Document Content" section is synthesized and
	// the analysis falls back to the metadata sentence.
	res := resultWithText()

	rep := AssembleSingle("hello.pdf", res, nil)

	if len(rep.ExtractedSections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(rep.ExtractedSections))
	}
	sec := rep.ExtractedSections[0]
	if sec.SectionTitle != "Document Content" || sec.ImportanceRank != 1 || sec.PageNumber != 1 {
		t.Fatalf("unexpected synthesized section: %+v", sec)
	}
	if len(rep.SubsectionAnalysis) != 1 {
		t.Fatalf("expected metadata fallback analysis, got %d entries", len(rep.SubsectionAnalysis))
	}
	if !strings.Contains(rep.SubsectionAnalysis[0].RefinedText, "PDF Document") {
		t.Fatalf("expected metadata-based text, got %q", rep.SubsectionAnalysis[0].RefinedText)
	}
}

func TestAssembleSingleCapsAndRanks(t *testing.T) {
	titles := make([]string, 8)
	for i := range titles {
		titles[i] = fmt.Sprintf("Heading %d", i+1)
	}
	rep := AssembleSingle("doc.pdf", resultWithSections(titles...), nil)

	if len(rep.ExtractedSections) != 5 {
		t.Fatalf("expected cap at 5 sections, got %d", len(rep.ExtractedSections))
	}
	for i, sec := range rep.ExtractedSections {
		if sec.ImportanceRank != i+1 {
			t.Fatalf("rank gap at index %d: %+v", i, rep.ExtractedSections)
		}
	}
}

func TestAssembleSingleSkipsBlankTitlesWithoutRankGaps(t *testing.T) {
	rep := AssembleSingle("doc.pdf", resultWithSections("First", "  ", "Third"), nil)
	if len(rep.ExtractedSections) != 2 {
		t.Fatalf("expected blank title skipped, got %d sections", len(rep.ExtractedSections))
	}
	if rep.ExtractedSections[0].ImportanceRank != 1 || rep.ExtractedSections[1].ImportanceRank != 2 {
		t.Fatalf("ranks must stay gapless: %+v", rep.ExtractedSections)
	}
}

func TestAssembleSingleIdempotentExceptTimestamp(t *testing.T) {
	res := resultWithText(
		"The travel destination offers many coastal activities for every kind of visitor to enjoy.",
	)
	first := AssembleSingle("travel_guide.pdf", res, nil)
	second := AssembleSingle("travel_guide.pdf", res, nil)

	first.Metadata.ProcessingTimestamp = ""
	second.Metadata.ProcessingTimestamp = ""
	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Fatalf("assembly not idempotent:\n%s\n%s", a, b)
	}
}

func TestAssembleSinglePersonaConfigBypassesDetection(t *testing.T) {
	res := resultWithText("The travel destination offers beaches, hotels and attractions for tourists everywhere.")
	rep := AssembleSingle("doc.pdf", res, &PersonaConfig{PersonaType: "Legal Professional"})
	if rep.Metadata.Persona != "Legal Professional" {
		t.Fatalf("expected configured persona kept, got %q", rep.Metadata.Persona)
	}
	if rep.Metadata.JobToBeDone != "Review and analyze legal documents and contracts." {
		t.Fatalf("unexpected job: %q", rep.Metadata.JobToBeDone)
	}
}

func TestAssembleCollectionCapsAtFive(t *testing.T) {
	var results []DocumentResult
	for i := 0; i < 6; i++ {
		results = append(results, DocumentResult{
			Filename: fmt.Sprintf("doc%d.pdf", i),
			Result:   resultWithSections("Alpha heading", "Beta heading", "Gamma heading"),
		})
	}
	rep := AssembleCollection(results, nil)

	if len(rep.ExtractedSections) != 5 {
		t.Fatalf("expected 5 sections total, got %d", len(rep.ExtractedSections))
	}
	for i, sec := range rep.ExtractedSections {
		if sec.ImportanceRank != i+1 {
			t.Fatalf("rank gap at %d: %+v", i, rep.ExtractedSections)
		}
	}
	// Two per document: docs 0 and 1 contribute two each, doc 2 one.
	if rep.ExtractedSections[0].Document != "doc0.pdf" || rep.ExtractedSections[2].Document != "doc1.pdf" {
		t.Fatalf("expected supply order preserved: %+v", rep.ExtractedSections)
	}
	if len(rep.Metadata.InputDocuments) != 6 {
		t.Fatalf("all processed docs belong in metadata, got %v", rep.Metadata.InputDocuments)
	}
}

func TestAssembleCollectionSkipsFailedDocuments(t *testing.T) {
	results := []DocumentResult{
		{Filename: "bad.pdf", Err: "context canceled"},
		{Filename: "good.pdf", Result: resultWithSections("Only heading")},
	}
	rep := AssembleCollection(results, nil)

	if len(rep.Metadata.InputDocuments) != 1 || rep.Metadata.InputDocuments[0] != "good.pdf" {
		t.Fatalf("failed doc must not appear in metadata: %v", rep.Metadata.InputDocuments)
	}
	if len(rep.ExtractedSections) != 1 {
		t.Fatalf("expected one section from the surviving doc, got %d", len(rep.ExtractedSections))
	}
}

func TestAssembleCollectionPrefersTravelContent(t *testing.T) {
	plain := "A perfectly ordinary paragraph about nothing in particular that runs well past fifty characters."
	travel := "The coastal towns offer diving, sailing and long beach afternoons that every visitor remembers fondly."
	results := []DocumentResult{{
		Filename: "travel_guide.pdf",
		Result:   resultWithText(plain, travel),
	}}
	rep := AssembleCollection(results, nil)

	if len(rep.SubsectionAnalysis) == 0 {
		t.Fatalf("expected at least one analysis")
	}
	if !strings.Contains(strings.ToLower(rep.SubsectionAnalysis[0].RefinedText), "coastal") {
		t.Fatalf("expected travel-keyword paragraph preferred, got %q", rep.SubsectionAnalysis[0].RefinedText)
	}
}

func TestAssembleCollectionEnhancesSynthesizedSections(t *testing.T) {
	// No document carries structure sections, so the titles come from
	// leading paragraph sentences and must still pass through the same
	// enhancement rules as structure-derived ones.
	results := []DocumentResult{{
		Filename: "travel_guide.pdf",
		Result:   resultWithText("The coastal towns and beaches offer wonderful experiences for every visitor. More follows."),
	}}
	rep := AssembleCollection(results, nil)

	if len(rep.ExtractedSections) != 1 {
		t.Fatalf("expected one synthesized section, got %d", len(rep.ExtractedSections))
	}
	sec := rep.ExtractedSections[0]
	if sec.SectionTitle != "Coastal activities" {
		t.Fatalf("synthesized title must be enhanced, got %q", sec.SectionTitle)
	}
	if sec.ImportanceRank != 1 || sec.Document != "travel_guide.pdf" {
		t.Fatalf("unexpected section: %+v", sec)
	}
}

func TestAssembleCollectionPersonaMajority(t *testing.T) {
	travelDoc := func(name string) DocumentResult {
		return DocumentResult{
			Filename: name,
			Result:   resultWithText("Travel destination hotel restaurant attraction tourism vacation adventure cuisine."),
			Persona:  "travel_planner",
		}
	}
	results := []DocumentResult{
		travelDoc("a.pdf"),
		travelDoc("b.pdf"),
		{
			Filename: "c.pdf",
			Result:   resultWithText("Legal contract clause jurisdiction compliance regulation attorney court agreement."),
			Persona:  "legal_professional",
		},
	}
	rep := AssembleCollection(results, nil)
	if rep.Metadata.Persona != "Travel Planner" {
		t.Fatalf("expected majority persona, got %q", rep.Metadata.Persona)
	}
}

func TestAssembleErrorShape(t *testing.T) {
	rep := AssembleError("broken.pdf", "All processing methods failed")
	if rep.Metadata.Error != "All processing methods failed" {
		t.Fatalf("expected error in metadata, got %q", rep.Metadata.Error)
	}
	if rep.Metadata.Persona != "General" || rep.Metadata.JobToBeDone != "Document analysis" {
		t.Fatalf("unexpected error metadata: %+v", rep.Metadata)
	}
	if len(rep.ExtractedSections) != 0 || len(rep.SubsectionAnalysis) != 0 {
		t.Fatalf("error report must carry empty lists")
	}
}

func TestRefineText(t *testing.T) {
	in := "  Multiple   spaces\tand\nnewlines plus odd©☃glyphs in here  "
	got := RefineText(in)
	if strings.Contains(got, "  ") || strings.Contains(got, "\n") {
		t.Fatalf("whitespace not collapsed: %q", got)
	}
	if strings.ContainsRune(got, '☃') {
		t.Fatalf("artifact glyph survived: %q", got)
	}

	if got := RefineText("short"); got != "" {
		t.Fatalf("sub-20-char fragment must be discarded, got %q", got)
	}
	if got := RefineText(""); got != "" {
		t.Fatalf("empty input must stay empty")
	}

	long := strings.Repeat("a", 600)
	if got := RefineText(long); len(got) != 503 || !strings.HasSuffix(got, "...") {
		t.Fatalf("expected 500-char cap with ellipsis, got %d chars", len(RefineText(long)))
	}
}

func TestRefineTextKeepsAccentedLetters(t *testing.T) {
	in := "Café menus along the Côte d'Azur offer crème brûlée and rosé wine."
	if got := RefineText(in); got != in {
		t.Fatalf("accented letters must survive refinement, got %q", got)
	}
}

func TestRefineTextTruncationIsRuneSafe(t *testing.T) {
	long := strings.Repeat("é", 600)
	got := RefineText(long)
	if !utf8.ValidString(got) {
		t.Fatalf("truncation split a rune: %q", got)
	}
	if utf8.RuneCountInString(got) != 503 || !strings.HasSuffix(got, "...") {
		t.Fatalf("expected 500 runes plus ellipsis, got %d runes", utf8.RuneCountInString(got))
	}
}

func TestDetectDisplayPersona(t *testing.T) {
	content := document.Content{TextContent: []document.Paragraph{
		{Text: "Plan the trip: destination, hotel, restaurant, attractions, beach and coastal culture.", Page: 1},
	}}
	if got := DetectDisplayPersona(content, nil); got != "Travel Planner" {
		t.Fatalf("expected Travel Planner, got %q", got)
	}

	empty := document.Content{}
	if got := DetectDisplayPersona(empty, nil); got != GeneralUser {
		t.Fatalf("expected General User fallback, got %q", got)
	}

	if got := DetectDisplayPersona(empty, &PersonaConfig{PersonaType: "Researcher"}); got != "Researcher" {
		t.Fatalf("expected config bypass, got %q", got)
	}
	if got := DetectDisplayPersona(content, &PersonaConfig{PersonaType: "auto"}); got != "Travel Planner" {
		t.Fatalf("auto must still detect, got %q", got)
	}
}

func TestFormatPersonaName(t *testing.T) {
	cases := map[string]string{
		"business_analyst": "Business Analyst",
		"general":          "General",
		"Travel Planner":   "Travel Planner",
	}
	for in, want := range cases {
		if got := FormatPersonaName(in); got != want {
			t.Errorf("FormatPersonaName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestJobFor(t *testing.T) {
	if got := JobFor("Travel Planner"); got != "Plan trips and create travel itineraries for clients." {
		t.Fatalf("unexpected job: %q", got)
	}
	if got := JobFor("travel_planner"); got != genericJob {
		t.Fatalf("engine slugs fall back to the generic job, got %q", got)
	}
}
