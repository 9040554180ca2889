package document

// Method identifies which extraction backend produced a result.
type Method string

const (
	MethodLedongthuc Method = "ledongthuc"
	MethodPdfcpu     Method = "pdfcpu"
	MethodDocconv    Method = "docconv"
	MethodBasic      Method = "basic"
	MethodError      Method = "error"
)

// Metadata holds document-level metadata. String fields may be empty but
// are never absent; defaults are substituted when a backend cannot supply
// a field.
type Metadata struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Subject  string `json:"subject"`
	Creator  string `json:"creator"`
	Producer string `json:"producer"`
	Pages    int    `json:"pages"`
	FileSize int64  `json:"file_size"`
}

// Section is a heuristically identified heading. FontSize is the signal
// that flagged it as a header (> 11pt) and carries no formal guarantee.
type Section struct {
	Title    string  `json:"title"`
	Page     int     `json:"page"`
	FontSize float64 `json:"font_size"`
}

// Structure approximates the heading layout of a document.
type Structure struct {
	Sections   []Section `json:"sections"`
	TotalPages int       `json:"total_pages"`
}

// Paragraph is one cleaned text fragment with its source page.
type Paragraph struct {
	Text string `json:"text"`
	Page int    `json:"page"`
}

// Content holds the extracted paragraph fragments of a document.
type Content struct {
	TextContent     []Paragraph `json:"text_content"`
	TotalParagraphs int         `json:"total_paragraphs"`
}

// ExtractionResult is the normalized output shape shared by all backends.
// It is immutable after creation and owned by the caller for the rest of
// the pipeline.
type ExtractionResult struct {
	Metadata  Metadata  `json:"metadata"`
	Structure Structure `json:"structure"`
	Content   Content   `json:"content"`
	Method    Method    `json:"processing_method"`
	Warning   string    `json:"warning,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// DefaultMetadata is the substitute metadata used when extraction fails
// entirely or a backend cannot read the Info dictionary.
func DefaultMetadata() Metadata {
	return Metadata{
		Title:    "PDF Document",
		Author:   "Unknown",
		Subject:  "PDF Content",
		Creator:  "PDF Processor",
		Producer: "Unknown",
		Pages:    1,
		FileSize: 0,
	}
}

// ErrorResult builds the standardized failure result. Structure and
// content are empty, never nil maps or missing fields.
func ErrorResult(msg string) *ExtractionResult {
	return &ExtractionResult{
		Metadata:  DefaultMetadata(),
		Structure: Structure{Sections: []Section{}, TotalPages: 1},
		Content:   Content{TextContent: []Paragraph{}, TotalParagraphs: 0},
		Method:    MethodError,
		Error:     msg,
	}
}
