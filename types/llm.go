// Package types holds the wire-level contracts shared between the session
// core and its external collaborators.
package types

// GeneratedItem is one candidate action item as proposed by the generation
// collaborator, before domain defaults and rank scoring are applied.
type GeneratedItem struct {
	Title      string   `json:"title"`
	Why        string   `json:"why"`
	SourceRefs []string `json:"source_refs"`
	ImpactHint *float64 `json:"impactHint,omitempty"`
}

// Confidence grades a feasibility check.
type Confidence string

const (
	ConfidenceRockSolid Confidence = "rock_solid"
	ConfidencePartial   Confidence = "partial"
	ConfidenceNotReady  Confidence = "not_ready"
)

// FeasibilityReport is the do-it-for-me collaborator's answer for one item.
type FeasibilityReport struct {
	Confidence       Confidence `json:"confidence"`
	EstCompletionPct int        `json:"est_completion_pct"`
	RemainingSteps   []string   `json:"remaining_steps"`
}
