// Package envelope provides a standardized response wrapper for all MCP
// tool responses. Every tool response carries the same envelope with
// metadata about routing confidence, provenance, warnings, and suggested
// next calls.
package envelope

// ConfidenceTier represents the quality tier of a routing decision.
type ConfidenceTier string

const (
	// TierHigh indicates routing backed by strong keyword evidence.
	TierHigh ConfidenceTier = "high"
	// TierMedium indicates weak or tied evidence.
	TierMedium ConfidenceTier = "medium"
	// TierLow indicates fallback or unresolved routing.
	TierLow ConfidenceTier = "low"
)

// Confidence describes routing quality.
type Confidence struct {
	Score   float64        `json:"score"` // 0.0 - 1.0
	Tier    ConfidenceTier `json:"tier"`
	Reasons []string       `json:"reasons,omitempty"` // score markers, capped
}

// Provenance records which sources produced a response.
type Provenance struct {
	Sources     []string `json:"sources,omitempty"`
	OperationID string   `json:"operationId,omitempty"`
}

// Meta holds response metadata.
type Meta struct {
	Confidence *Confidence `json:"confidence,omitempty"`
	Provenance *Provenance `json:"provenance,omitempty"`
}

// SuggestedCall represents a recommended follow-up tool call.
type SuggestedCall struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params,omitempty"`
	Reason string                 `json:"reason,omitempty"`
}

// Warning represents a non-fatal issue.
type Warning struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// Response is the standard envelope for all MCP tool responses.
type Response struct {
	SchemaVersion      string          `json:"schemaVersion"`
	Data               interface{}     `json:"data"`
	Meta               *Meta           `json:"meta,omitempty"`
	Warnings           []Warning       `json:"warnings,omitempty"`
	Error              *string         `json:"error,omitempty"`
	SuggestedNextCalls []SuggestedCall `json:"suggestedNextCalls,omitempty"`
}

// CurrentSchemaVersion is the current envelope schema version.
const CurrentSchemaVersion = "1.0"

// ScoreToTier maps a 0-1 confidence score onto a tier.
func ScoreToTier(score float64) ConfidenceTier {
	switch {
	case score >= 0.8:
		return TierHigh
	case score >= 0.5:
		return TierMedium
	default:
		return TierLow
	}
}
