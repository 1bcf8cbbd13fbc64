// Package sundry defines the wire types shared between the HTTP client and
// its callers.
package sundry

// Confidence is the backend-reported certainty level of a returned answer.
// The documented values are below; the backend's word is taken as-is and
// never validated against them.
type Confidence string

const (
	ConfidenceCertain    Confidence = "certain"
	ConfidenceOptimistic Confidence = "optimistic"
	ConfidenceTentative  Confidence = "tentative"
	ConfidenceDoubtful   Confidence = "doubtful"
)

// ContextQuery is the input for a context lookup. Query must be non-empty.
type ContextQuery struct {
	Query string `json:"query"`
}

// ContextResponse is the backend's answer to a context query. All fields are
// relayed verbatim to the caller.
type ContextResponse struct {
	Confidence  Confidence `json:"confidence"`
	Data        string     `json:"data"`
	UserMessage string     `json:"user_message,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// SourcesResponse lists the data domains the user has connected. Each source
// name maps to an ordered list of capability descriptions.
type SourcesResponse struct {
	Sources map[string][]string `json:"sources"`
}
