// Package llm implements the generation, coach, and feasibility
// collaborators on top of CloudWeGo Eino chat models.
package llm

import (
	"context"

	"github.com/impactlist/impactlist/models"
	"github.com/impactlist/impactlist/types"
)

// Provider defines the external collaborators the plan session depends on.
type Provider interface {
	// GenerateActionItems extracts candidate action items from raw source
	// text. An empty slice is a valid, meaningful result. customPrompt, when
	// non-empty, replaces the default system prompt (the retry-after-empty
	// path). The returned items are already deduplicated.
	GenerateActionItems(ctx context.Context, sourceText, customPrompt string) ([]types.GeneratedItem, error)

	// GetCoachResponse answers one coach turn for the given item. history is
	// the item's thread including the just-appended user turn. A reply
	// lacking a message string or a done_when array is reported as an error,
	// never returned as a payload.
	GetCoachResponse(ctx context.Context, item models.ActionItem, userText string, history []models.CoachMessage) (models.CoachPayload, error)

	// GetFeasibility estimates how far along an item is and what remains.
	GetFeasibility(ctx context.Context, item models.ActionItem) (types.FeasibilityReport, error)
}
