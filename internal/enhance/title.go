// Package enhance rewrites raw extracted titles and paragraphs into
// short, human-sounding strings using cascading keyword rule tables.
// Every chain is ordered and first-match-wins; reordering entries
// changes observable output.
package enhance

import (
	"path/filepath"
	"strings"
)

// genericTitleWords disqualify a short title from being kept as-is.
var genericTitleWords = []string{
	"introduction", "overview", "guide", "manual", "section", "chapter", "page", "welcome",
}

// titleRule maps title keywords to a canned short label.
type titleRule struct {
	keywords []string
	label    string
}

// domain is one filename bucket with its title rule chain.
type domain struct {
	docKeywords []string
	titleRules  []titleRule
}

// actionVerbs drive the technical bucket's verb+object extraction.
var actionVerbs = []string{
	"create", "convert", "export", "edit", "fill", "sign", "share", "request", "generate",
}

var technicalDomain = domain{
	docKeywords: []string{"acrobat", "pdf", "technical", "learn"},
	titleRules: []titleRule{
		{[]string{"fill and sign"}, "Fill and sign PDF forms"},
		{[]string{"e-signature", "signature"}, "Send document for signatures"},
		{[]string{"export"}, "Export PDF content"},
		{[]string{"edit"}, "Edit PDF content"},
		{[]string{"share"}, "Share PDF documents"},
		{[]string{"create", "convert"}, "Create and convert PDFs"},
		{[]string{"generative ai"}, "Use generative AI features"},
		{[]string{"form"}, "Change flat forms to fillable"},
		{[]string{"multiple"}, "Create multiple PDFs"},
		{[]string{"clipboard"}, "Convert clipboard content"},
	},
}

// titleDomains is the ordered bucket chain checked after the technical
// bucket. "Coastal activities" deliberately precedes "Activities" so
// coastal headings keep their specific label.
var titleDomains = []domain{
	{
		docKeywords: []string{"travel", "tourism", "destination", "vacation"},
		titleRules: []titleRule{
			{[]string{"coastal", "beach", "sea"}, "Coastal activities"},
			{[]string{"activities", "things", "attractions"}, "Activities"},
			{[]string{"tips", "advice", "planning"}, "Travel tips"},
			{[]string{"cuisine", "food", "dining"}, "Cuisine"},
			{[]string{"culture", "tradition", "heritage"}, "Culture"},
			{[]string{"city", "cities", "urban"}, "Cities"},
			{[]string{"nightlife", "entertainment"}, "Nightlife"},
			{[]string{"history", "historical"}, "History"},
		},
	},
	{
		docKeywords: []string{"business", "corporate", "financial", "report"},
		titleRules: []titleRule{
			{[]string{"analysis", "overview", "summary"}, "Analysis"},
			{[]string{"strategy", "planning", "management"}, "Strategy"},
			{[]string{"financial", "finance", "budget"}, "Financial"},
			{[]string{"market", "marketing", "sales"}, "Marketing"},
		},
	},
	{
		docKeywords: []string{"research", "study", "academic", "thesis", "paper"},
		titleRules: []titleRule{
			{[]string{"methodology", "methods"}, "Methodology"},
			{[]string{"results", "findings", "analysis"}, "Results"},
			{[]string{"literature", "review", "background"}, "Literature review"},
			{[]string{"conclusion", "discussion"}, "Discussion"},
		},
	},
	{
		docKeywords: []string{"legal", "law", "contract", "agreement"},
		titleRules: []titleRule{
			{[]string{"terms", "conditions", "clauses"}, "Terms"},
			{[]string{"rights", "obligations", "liability"}, "Rights"},
			{[]string{"compliance", "regulatory"}, "Compliance"},
		},
	},
	{
		docKeywords: []string{"medical", "health", "clinical", "patient"},
		titleRules: []titleRule{
			{[]string{"diagnosis", "assessment", "evaluation"}, "Diagnosis"},
			{[]string{"treatment", "therapy", "intervention"}, "Treatment"},
			{[]string{"symptoms", "signs", "manifestation"}, "Symptoms"},
			{[]string{"medication", "drug", "prescription"}, "Medication"},
		},
	},
}

// Title rewrites a raw section heading into a concise label. Same
// inputs always yield the same output.
func Title(documentName, rawTitle string) string {
	title := strings.TrimSpace(rawTitle)

	if len(title) <= 30 && !containsAny(strings.ToLower(title), genericTitleWords) {
		return title
	}

	docLower := docKey(documentName)
	titleLower := strings.ToLower(title)

	if containsAny(docLower, technicalDomain.docKeywords) {
		if label, ok := actionPhrase(title, titleLower); ok {
			return label
		}
		if label, ok := matchTitleRules(titleLower, technicalDomain.titleRules); ok {
			return label
		}
	} else {
		for _, d := range titleDomains {
			if !containsAny(docLower, d.docKeywords) {
				continue
			}
			if label, ok := matchTitleRules(titleLower, d.titleRules); ok {
				return label
			}
			break
		}
	}

	if len(title) > 30 {
		first := strings.TrimSpace(strings.SplitN(title, ".", 2)[0])
		if len(first) <= 30 {
			return first
		}
		words := strings.Fields(first)
		if len(words) > 3 {
			words = words[:3]
		}
		return strings.Join(words, " ")
	}
	return truncate(title, 30)
}

// actionPhrase extracts "verb object" from a technical title containing
// an action verb, keeping the original word forms.
func actionPhrase(title, titleLower string) (string, bool) {
	if !containsAny(titleLower, actionVerbs) {
		return "", false
	}
	words := strings.Fields(title)
	if len(words) < 2 {
		return "", false
	}
	for i, w := range words {
		if !containsAny(strings.ToLower(w), actionVerbs) {
			continue
		}
		if i+1 < len(words) {
			return w + " " + words[i+1], true
		}
		return w, true
	}
	return "", false
}

func matchTitleRules(titleLower string, rules []titleRule) (string, bool) {
	for _, r := range rules {
		if containsAny(titleLower, r.keywords) {
			return r.label, true
		}
	}
	return "", false
}

// docKey lowercases the document name with its extension stripped, so
// the technical bucket's literal "pdf" keyword only matches names that
// actually mention it.
func docKey(documentName string) string {
	return strings.ToLower(strings.TrimSuffix(documentName, filepath.Ext(documentName)))
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
