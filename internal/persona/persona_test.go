package persona

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/praveena-03/docinsight/internal/document"
)

func blocks(texts ...string) []document.Paragraph {
	out := make([]document.Paragraph, 0, len(texts))
	for i, t := range texts {
		out = append(out, document.Paragraph{Text: t, Page: i + 1})
	}
	return out
}

func TestDetectTravelPlanner(t *testing.T) {
	got := Detect(blocks(
		"Plan your vacation to this beautiful destination.",
		"The hotel and restaurant scene makes tourism thrive here.",
	))
	if got != "travel_planner" {
		t.Fatalf("expected travel_planner, got %q", got)
	}
}

func TestDetectGeneralOnNoMatches(t *testing.T) {
	if got := Detect(blocks("xyzzy plugh quux")); got != General {
		t.Fatalf("expected general, got %q", got)
	}
	if got := Detect(nil); got != General {
		t.Fatalf("expected general for empty input, got %q", got)
	}
}

func TestDetectTieKeepsFirstCategory(t *testing.T) {
	// One researcher keyword and one student keyword score 1 each; the
	// earlier category wins.
	got := Detect(blocks("the hypothesis and the lecture"))
	if got != "researcher" {
		t.Fatalf("expected researcher on tie, got %q", got)
	}
}

func TestDetectIsDeterministic(t *testing.T) {
	in := blocks("business market strategy analysis report financial revenue")
	first := Detect(in)
	for i := 0; i < 20; i++ {
		if got := Detect(in); got != first {
			t.Fatalf("detection not deterministic: %q then %q", first, got)
		}
	}
}

func TestAnalyzeAutoDetects(t *testing.T) {
	a := Analyze(blocks("This research study presents findings and a methodology."), Auto)
	if a.PersonaType != "researcher" {
		t.Fatalf("expected researcher, got %q", a.PersonaType)
	}
	if a.FocusArea != "academic and research content" {
		t.Fatalf("unexpected focus area: %q", a.FocusArea)
	}
	if a.RelevanceScore < 0 || a.RelevanceScore > 100 {
		t.Fatalf("relevance out of range: %f", a.RelevanceScore)
	}
}

func TestAnalyzeExplicitPersona(t *testing.T) {
	a := Analyze(blocks("travel to the destination, stay at a hotel"), "legal_professional")
	if a.PersonaType != "legal_professional" {
		t.Fatalf("expected requested persona kept, got %q", a.PersonaType)
	}
	if a.FocusArea != "legal documents and contracts" {
		t.Fatalf("unexpected focus area: %q", a.FocusArea)
	}
	if a.RelevanceScore != 0 {
		t.Fatalf("expected zero relevance for unrelated text, got %f", a.RelevanceScore)
	}
}

func TestAnalyzeGeneralHasNoCategoryFields(t *testing.T) {
	a := Analyze(blocks("xyzzy plugh quux"), Auto)
	if a.PersonaType != General {
		t.Fatalf("expected general, got %q", a.PersonaType)
	}
	if a.KeywordMatches != nil || a.FocusArea != "" || len(a.Recommendations) != 0 {
		t.Fatalf("general persona should carry no category fields: %+v", a)
	}
}

func TestRelevanceScoreCapAndRounding(t *testing.T) {
	// 3 hits over 2 words would be 15000 before the cap.
	if got := relevanceScore(map[string]int{"travel": 3}, 2); got != 100 {
		t.Fatalf("expected cap at 100, got %f", got)
	}
	// 1 hit over 300 words is 33.333..., rounded to 33.33.
	if got := relevanceScore(map[string]int{"travel": 1}, 300); got != 33.33 {
		t.Fatalf("expected 33.33, got %f", got)
	}
	if got := relevanceScore(nil, 0); got != 0 {
		t.Fatalf("expected 0 for empty text, got %f", got)
	}
}

func TestKeyThemes(t *testing.T) {
	text := "mountain mountain mountain valley valley river river river river tiny a b"
	themes := keyThemes(text)
	if len(themes) != 3 {
		t.Fatalf("expected 3 themes (short words excluded), got %v", themes)
	}
	if themes[0] != "river" || themes[1] != "mountain" || themes[2] != "valley" {
		t.Fatalf("unexpected theme order: %v", themes)
	}
}

func TestKeyThemesCapsAtFive(t *testing.T) {
	words := []string{"alpha1", "bravo1", "charlie", "deltas", "echoes", "foxtrot"}
	themes := keyThemes(strings.Join(words, " "))
	if len(themes) != 5 {
		t.Fatalf("expected top-5 cap, got %d: %v", len(themes), themes)
	}
	// Equal counts keep first-seen order.
	for i, w := range words[:5] {
		if themes[i] != w {
			t.Fatalf("expected stable order, got %v", themes)
		}
	}
}

func TestKeyThemesKeepsAccentedWords(t *testing.T) {
	text := "montaña montaña montaña camino camino pueblo"
	themes := keyThemes(text)
	if len(themes) != 3 {
		t.Fatalf("expected 3 themes, got %v", themes)
	}
	if themes[0] != "montaña" || themes[1] != "camino" || themes[2] != "pueblo" {
		t.Fatalf("accented words must stay whole, got %v", themes)
	}
}

func TestComplexityLevels(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{95, "Very Easy"},
		{85, "Easy"},
		{75, "Fairly Easy"},
		{65, "Standard"},
		{55, "Fairly Difficult"},
		{40, "Difficult"},
		{10, "Very Difficult"},
	}
	for _, tc := range cases {
		if got := complexityLevel(tc.score); got != tc.want {
			t.Errorf("complexityLevel(%f) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestSummarizeKeepsThreeSentences(t *testing.T) {
	text := "One. Two. Three. Four. Five."
	got := summarize(text)
	if got != "One. Two. Three." {
		t.Fatalf("unexpected summary: %q", got)
	}
}

func TestSummarizeTruncatesLongSingleSentence(t *testing.T) {
	text := strings.Repeat("word ", 60) // no periods, > 200 chars
	got := summarize(text)
	if len(got) != 203 || !strings.HasSuffix(got, "...") {
		t.Fatalf("expected 200-char truncation with ellipsis, got %d chars", len(got))
	}
}

func TestSummarizeTruncationIsRuneSafe(t *testing.T) {
	text := strings.Repeat("ü", 250) // no periods
	got := summarize(text)
	if !utf8.ValidString(got) {
		t.Fatalf("truncation split a rune: %q", got)
	}
	if utf8.RuneCountInString(got) != 203 || !strings.HasSuffix(got, "...") {
		t.Fatalf("expected 200 runes plus ellipsis, got %d runes", utf8.RuneCountInString(got))
	}
}

func TestFleschReadingEaseRange(t *testing.T) {
	easy := fleschReadingEase("The cat sat. The dog ran. It was fun.")
	hard := fleschReadingEase("Multidimensional organizational heterogeneity necessitates comprehensive institutionalization.")
	if easy <= hard {
		t.Fatalf("expected easy text to score higher: easy=%f hard=%f", easy, hard)
	}
	if got := fleschReadingEase(""); got != 0 {
		t.Fatalf("expected 0 for empty text, got %f", got)
	}
}
