package domain

// SearchResult is one hit of the structured doctrinal search.
type SearchResult struct {
	Document  string `json:"document"`
	Reference string `json:"reference"`
	Summary   string `json:"summary"`
}

// SearchResponse is the structured search payload.
// Both slices are non-nil, possibly empty.
type SearchResponse struct {
	Results      []SearchResult `json:"results"`
	RelatedTerms []string       `json:"relatedTerms"`
}

// CrossReference is a standard that cites a given Bible verse.
type CrossReference struct {
	Document  string `json:"document"`
	Reference string `json:"reference"`
	Context   string `json:"context"`
}

// GroundingSource is a web page the generation backend cited.
type GroundingSource struct {
	URI   string `json:"uri"`
	Title string `json:"title,omitempty"`
}

// RefKind tells scripture citations from confession citations.
type RefKind string

const (
	RefScripture  RefKind = "scripture"
	RefConfession RefKind = "confession"
)

// Passage is generated text for a request, with its provenance.
type Passage struct {
	Reference string            `json:"reference"`
	Text      string            `json:"text"`
	Sources   []GroundingSource `json:"sources,omitempty"`
	// Version is the translation title asked for, scripture only.
	Version string `json:"version,omitempty"`
	// Attempts counts the generation requests made, zero when served from cache.
	Attempts int `json:"attempts"`
	// Degraded is set when Text is a fixed fallback message.
	Degraded bool `json:"degraded,omitempty"`
}
