package report

import (
	"strings"
	"unicode"

	"github.com/praveena-03/docinsight/internal/document"
)

// The assembler's persona vocabulary is deliberately separate from the
// engine's category table in internal/persona: different keyword lists,
// title-case display names, and presence counting (one point per keyword
// found) instead of occurrence counting. The two evolved independently
// and both are load-bearing for the output format.

type displayCategory struct {
	name     string
	keywords []string
}

var displayCategories = []displayCategory{
	{"Technical Writer", []string{
		"acrobat", "pdf", "form", "fill", "sign", "export", "edit", "share", "convert", "create",
		"signature", "e-signature", "document", "tool", "feature", "option", "select", "choose",
		"interactive", "field", "text field", "checkbox", "radio button", "recipient", "email",
	}},
	{"HR Professional", []string{
		"onboarding", "compliance", "form", "fillable", "signature", "document", "employee",
		"hr", "human resources", "professional", "business", "workflow", "process", "approval",
	}},
	{"Travel Planner", []string{
		"travel", "tourism", "destination", "vacation", "holiday", "trip", "visit", "tourist",
		"activities", "attractions", "cuisine", "culture", "hotel", "restaurant", "beach", "coastal",
	}},
	{"Business Analyst", []string{
		"business", "corporate", "financial", "report", "analysis", "strategy", "management",
		"market", "sales", "profit", "revenue", "investment", "budget", "planning",
	}},
	{"Researcher", []string{
		"research", "study", "academic", "thesis", "paper", "methodology", "findings", "analysis",
		"literature", "review", "conclusion", "discussion", "data", "experiment", "survey",
	}},
	{"Legal Professional", []string{
		"legal", "law", "contract", "agreement", "terms", "conditions", "rights", "obligations",
		"liability", "compliance", "regulatory", "clause", "signature", "document",
	}},
	{"Medical Professional", []string{
		"medical", "health", "clinical", "patient", "diagnosis", "treatment", "symptoms",
		"medication", "therapy", "doctor", "hospital", "care", "wellness",
	}},
}

// GeneralUser is the display-persona fallback.
const GeneralUser = "General User"

// DetectDisplayPersona classifies content into one of the seven display
// categories by counting how many of each category's keywords appear at
// least once. Ties keep the earlier category. A configured persona other
// than "auto" bypasses detection.
func DetectDisplayPersona(content document.Content, cfg *PersonaConfig) string {
	if cfg != nil && cfg.PersonaType != "" && cfg.PersonaType != "auto" {
		return cfg.PersonaType
	}

	var sb strings.Builder
	for _, block := range content.TextContent {
		sb.WriteString(block.Text)
		sb.WriteByte(' ')
	}
	textLower := strings.ToLower(sb.String())

	best := GeneralUser
	bestCount := 0
	for _, c := range displayCategories {
		count := 0
		for _, kw := range c.keywords {
			if strings.Contains(textLower, kw) {
				count++
			}
		}
		if count > bestCount {
			bestCount = count
			best = c.name
		}
	}
	return best
}

// jobDescriptions maps the final display persona to its job statement.
var jobDescriptions = map[string]string{
	"Technical Writer":     "Create technical documentation and user guides for software applications and tools.",
	"HR Professional":      "Create and manage fillable forms for onboarding and compliance.",
	"Travel Planner":       "Plan trips and create travel itineraries for clients.",
	"Business Analyst":     "Analyze business documents and provide strategic insights.",
	"Researcher":           "Conduct comprehensive research and analysis of academic documents.",
	"Legal Professional":   "Review and analyze legal documents and contracts.",
	"Medical Professional": "Analyze medical documents and patient information.",
	"General User":         "Process and analyze various types of documents for general use.",
}

const genericJob = "Process and analyze documents for professional use."

// JobFor looks up the job statement for a persona, falling back to the
// generic description for anything unrecognized (engine slugs included).
func JobFor(persona string) string {
	if job, ok := jobDescriptions[persona]; ok {
		return job
	}
	return genericJob
}

// FormatPersonaName turns a persona slug or display name into title
// case: "business_analyst" becomes "Business Analyst".
func FormatPersonaName(persona string) string {
	words := strings.Fields(strings.ReplaceAll(persona, "_", " "))
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		if len(r) > 0 {
			r[0] = unicode.ToUpper(r[0])
		}
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
