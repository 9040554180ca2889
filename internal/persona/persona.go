package persona

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/praveena-03/docinsight/internal/document"
)

// Category is one reader-role profile. Categories is an ordered slice,
// not a map: score ties resolve to the first enumerated category, and
// that order is part of the observable behavior.
type Category struct {
	Type     string
	Keywords []string
	Focus    string
}

// General is returned when no category scores above zero.
const General = "general"

// Auto asks Analyze to detect the persona itself.
const Auto = "auto"

var Categories = []Category{
	{
		Type:     "researcher",
		Keywords: []string{"research", "study", "analysis", "methodology", "findings", "conclusion", "data", "results", "hypothesis", "experiment"},
		Focus:    "academic and research content",
	},
	{
		Type:     "student",
		Keywords: []string{"learning", "education", "course", "assignment", "study", "academic", "university", "college", "textbook", "lecture"},
		Focus:    "educational content and learning materials",
	},
	{
		Type:     "business_analyst",
		Keywords: []string{"business", "market", "strategy", "analysis", "report", "financial", "performance", "metrics", "revenue", "profit"},
		Focus:    "business and financial analysis",
	},
	{
		Type:     "technical_writer",
		Keywords: []string{"technical", "documentation", "manual", "guide", "procedure", "specification", "api", "code", "system", "implementation"},
		Focus:    "technical documentation and manuals",
	},
	{
		Type:     "legal_professional",
		Keywords: []string{"legal", "law", "contract", "agreement", "clause", "jurisdiction", "compliance", "regulation", "attorney", "court"},
		Focus:    "legal documents and contracts",
	},
	{
		Type:     "medical_professional",
		Keywords: []string{"medical", "health", "patient", "treatment", "diagnosis", "clinical", "medicine", "healthcare", "symptoms", "therapy"},
		Focus:    "medical and healthcare content",
	},
	{
		Type:     "travel_planner",
		Keywords: []string{"travel", "tourism", "vacation", "destination", "hotel", "restaurant", "attraction", "culture", "cuisine", "adventure"},
		Focus:    "travel and tourism content",
	},
}

// Analysis is the persona-flavored view of one document's text.
type Analysis struct {
	PersonaType      string         `json:"persona_type"`
	TextLength       int            `json:"text_length"`
	WordCount        int            `json:"word_count"`
	ReadabilityScore float64        `json:"readability_score"`
	ComplexityLevel  string         `json:"complexity_level"`
	KeyThemes        []string       `json:"key_themes"`
	ContentSummary   string         `json:"content_summary"`
	KeywordMatches   map[string]int `json:"keyword_matches,omitempty"`
	RelevanceScore   float64        `json:"relevance_score"`
	FocusArea        string         `json:"focus_area,omitempty"`
	Recommendations  []string       `json:"recommendations,omitempty"`
}

// Detect scores every category by substring occurrence count over the
// concatenated text and returns the strictly highest scorer. A tie keeps
// the earlier category; an all-zero score returns "general".
func Detect(blocks []document.Paragraph) string {
	if len(blocks) == 0 {
		return General
	}
	full := strings.ToLower(joinText(blocks))

	best := General
	bestScore := 0
	for _, c := range Categories {
		score := 0
		for _, kw := range c.Keywords {
			score += strings.Count(full, kw)
		}
		if score > bestScore {
			bestScore = score
			best = c.Type
		}
	}
	return best
}

// Analyze produces the full persona analysis for the given text blocks.
// personaType may be a category slug, "general", or "auto" to detect.
func Analyze(blocks []document.Paragraph, personaType string) Analysis {
	if personaType == Auto || personaType == "" {
		personaType = Detect(blocks)
	}
	full := joinText(blocks)

	a := Analysis{
		PersonaType:      personaType,
		TextLength:       len(full),
		WordCount:        len(strings.Fields(full)),
		ReadabilityScore: fleschReadingEase(full),
		KeyThemes:        keyThemes(full),
		ContentSummary:   summarize(full),
	}
	a.ComplexityLevel = complexityLevel(a.ReadabilityScore)

	if c, ok := category(personaType); ok {
		a.KeywordMatches = keywordMatches(full, c.Keywords)
		a.RelevanceScore = relevanceScore(a.KeywordMatches, a.WordCount)
		a.FocusArea = c.Focus
		a.Recommendations = recommendations(personaType, a.RelevanceScore)
	}
	return a
}

func category(personaType string) (Category, bool) {
	for _, c := range Categories {
		if c.Type == personaType {
			return c, true
		}
	}
	return Category{}, false
}

func joinText(blocks []document.Paragraph) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, b.Text)
	}
	return strings.Join(parts, " ")
}

// complexityLevel buckets a reading-ease score into seven labels.
func complexityLevel(score float64) string {
	switch {
	case score >= 90:
		return "Very Easy"
	case score >= 80:
		return "Easy"
	case score >= 70:
		return "Fairly Easy"
	case score >= 60:
		return "Standard"
	case score >= 50:
		return "Fairly Difficult"
	case score >= 30:
		return "Difficult"
	default:
		return "Very Difficult"
	}
}

// Unicode letter/digit runs rather than \w, which is ASCII-only in Go
// and would split accented words apart.
var wordRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// keyThemes returns the five most frequent words longer than four
// characters. The sort is stable, so equal frequencies keep first-seen
// order.
func keyThemes(text string) []string {
	words := wordRe.FindAllString(strings.ToLower(text), -1)

	freq := make(map[string]int)
	var order []string
	for _, w := range words {
		if utf8.RuneCountInString(w) <= 4 {
			continue
		}
		if freq[w] == 0 {
			order = append(order, w)
		}
		freq[w]++
	}

	stableSortByCountDesc(order, freq)
	if len(order) > 5 {
		order = order[:5]
	}
	return order
}

func stableSortByCountDesc(words []string, freq map[string]int) {
	// Insertion sort keeps equal-count words in first-seen order.
	for i := 1; i < len(words); i++ {
		for j := i; j > 0 && freq[words[j]] > freq[words[j-1]]; j-- {
			words[j], words[j-1] = words[j-1], words[j]
		}
	}
}

// summarize keeps the first three sentences, or truncates to 200 chars
// when the text has too few sentences to summarize that way.
func summarize(text string) string {
	sentences := strings.Split(text, ".")
	if len(sentences) > 3 {
		return strings.Join(sentences[:3], ".") + "."
	}
	if r := []rune(text); len(r) > 200 {
		return string(r[:200]) + "..."
	}
	return text
}

// keywordMatches counts whole-word occurrences per keyword, omitting
// keywords with no hits.
func keywordMatches(text string, keywords []string) map[string]int {
	lower := strings.ToLower(text)
	matches := make(map[string]int)
	for _, kw := range keywords {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
		if n := len(re.FindAllString(lower, -1)); n > 0 {
			matches[kw] = n
		}
	}
	return matches
}

// relevanceScore maps keyword density into [0, 100], rounded to two
// decimals.
func relevanceScore(matches map[string]int, wordCount int) float64 {
	if wordCount == 0 {
		return 0
	}
	total := 0
	for _, n := range matches {
		total += n
	}
	score := math.Min(100, float64(total)/float64(wordCount)*10000)
	return math.Round(score*100) / 100
}

func recommendations(personaType string, relevance float64) []string {
	var recs []string
	if relevance < 30 {
		recs = append(recs, "Content may not be highly relevant for this persona")
	} else if relevance > 70 {
		recs = append(recs, "Content is highly relevant for this persona")
	}

	switch personaType {
	case "researcher":
		recs = append(recs, "Look for methodology and findings sections")
	case "student":
		recs = append(recs, "Focus on educational content and examples")
	case "business_analyst":
		recs = append(recs, "Identify business metrics and strategic insights")
	case "travel_planner":
		recs = append(recs, "Focus on destinations, activities, and practical travel information")
	}
	return recs
}
