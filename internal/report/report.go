// Package report assembles extraction and persona results into the
// fixed output schema and persists it. Field order in the structs below
// is the wire order; do not reorder.
package report

// Metadata is the report header block.
type Metadata struct {
	InputDocuments      []string `json:"input_documents"`
	Persona             string   `json:"persona"`
	JobToBeDone         string   `json:"job_to_be_done"`
	ProcessingTimestamp string   `json:"processing_timestamp"`
	Error               string   `json:"error,omitempty"`
}

// SectionEntry is one ranked, enhanced section heading.
type SectionEntry struct {
	Document       string `json:"document"`
	SectionTitle   string `json:"section_title"`
	ImportanceRank int    `json:"importance_rank"`
	PageNumber     int    `json:"page_number"`
}

// AnalysisEntry is one refined paragraph excerpt.
type AnalysisEntry struct {
	Document    string `json:"document"`
	RefinedText string `json:"refined_text"`
	PageNumber  int    `json:"page_number"`
}

// Report is the final artifact. It is created once per request and never
// mutated afterwards.
type Report struct {
	Metadata           Metadata        `json:"metadata"`
	ExtractedSections  []SectionEntry  `json:"extracted_sections"`
	SubsectionAnalysis []AnalysisEntry `json:"subsection_analysis"`
}

// PersonaConfig is the optional caller-supplied persona hint.
type PersonaConfig struct {
	PersonaType string `json:"persona_type"`
}
