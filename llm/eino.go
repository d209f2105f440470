package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/impactlist/impactlist/models"
	"github.com/impactlist/impactlist/prompts"
	"github.com/impactlist/impactlist/types"
)

// EinoProvider implements Provider on top of an Eino chat model.
type EinoProvider struct {
	cfg  Config
	chat model.BaseChatModel
}

// NewEinoProvider creates the chat model for the configured backend.
func NewEinoProvider(ctx context.Context, cfg Config) (*EinoProvider, error) {
	chat, err := NewChatModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create chat model: %w", err)
	}
	return &EinoProvider{cfg: cfg, chat: chat}, nil
}

// newEinoProviderWithModel is the injectable constructor used by tests.
func newEinoProviderWithModel(cfg Config, chat model.BaseChatModel) *EinoProvider {
	return &EinoProvider{cfg: cfg, chat: chat}
}

// GenerateActionItems asks the model for candidate items, parses the JSON
// array out of the reply, normalizes missing slices, and merges
// near-duplicates before returning.
func (p *EinoProvider) GenerateActionItems(ctx context.Context, sourceText, customPrompt string) ([]types.GeneratedItem, error) {
	system := strings.TrimSpace(customPrompt)
	if system == "" {
		var err error
		system, err = prompts.GetPrompt(prompts.KeyGenerateItems, p.cfg.TemplatesDir)
		if err != nil {
			return nil, fmt.Errorf("load generation prompt: %w", err)
		}
	}

	user := fmt.Sprintf("Analyze the following content and generate the action item list.\n\nContent: \"\"\"%s\"\"\"", sourceText)
	resp, err := p.chat.Generate(ctx, []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(user),
	})
	if err != nil {
		return nil, fmt.Errorf("generate action items: %w", err)
	}

	items, err := ExtractAndParseJSON[[]types.GeneratedItem](resp.Content)
	if err != nil {
		return nil, fmt.Errorf("parse generated items: %w", err)
	}
	for i := range items {
		if items[i].SourceRefs == nil {
			items[i].SourceRefs = []string{}
		}
	}
	return MergeNearDuplicates(items), nil
}

// GetCoachResponse runs one coach turn. The item's title, rationale, and
// source refs are folded into the system prompt; the thread history is
// replayed as alternating user/assistant messages.
func (p *EinoProvider) GetCoachResponse(ctx context.Context, item models.ActionItem, userText string, history []models.CoachMessage) (models.CoachPayload, error) {
	system, err := prompts.GetPrompt(prompts.KeyCoach, p.cfg.TemplatesDir)
	if err != nil {
		return models.CoachPayload{}, fmt.Errorf("load coach prompt: %w", err)
	}
	system += fmt.Sprintf("\n\nThe user is working on the action item titled %q with the rationale %q. The original source context for this item is %q.",
		item.Title, item.Why, strings.Join(item.SourceRefs, " | "))

	messages := make([]*schema.Message, 0, len(history)+2)
	messages = append(messages, schema.SystemMessage(system))
	for _, msg := range history {
		if msg.Sender == models.SenderUser {
			messages = append(messages, schema.UserMessage(msg.DisplayText()))
		} else {
			messages = append(messages, schema.AssistantMessage(msg.DisplayText(), nil))
		}
	}
	// History already carries the current user turn when the caller follows
	// the append-then-ask order; tolerate callers that do not.
	if len(history) == 0 || history[len(history)-1].Sender != models.SenderUser {
		messages = append(messages, schema.UserMessage(userText))
	}

	resp, err := p.chat.Generate(ctx, messages)
	if err != nil {
		return models.CoachPayload{}, fmt.Errorf("coach response: %w", err)
	}

	payload, err := ExtractAndParseJSON[models.CoachPayload](resp.Content)
	if err != nil {
		return models.CoachPayload{}, fmt.Errorf("parse coach payload: %w", err)
	}
	if err := validateCoachPayload(payload); err != nil {
		return models.CoachPayload{}, err
	}
	return payload, nil
}

// validateCoachPayload rejects structurally invalid replies: a payload
// without a message string or a done_when array is a failed turn.
func validateCoachPayload(p models.CoachPayload) error {
	if strings.TrimSpace(p.Message) == "" {
		return fmt.Errorf("invalid coach payload: missing message")
	}
	if p.DoneWhen == nil {
		return fmt.Errorf("invalid coach payload: missing done_when")
	}
	return nil
}

// GetFeasibility is the do-it-for-me placeholder: a deterministic estimate
// from the item's triage state and coach thread rather than a model call.
func (p *EinoProvider) GetFeasibility(ctx context.Context, item models.ActionItem) (types.FeasibilityReport, error) {
	report := types.FeasibilityReport{
		Confidence:     types.ConfidenceNotReady,
		RemainingSteps: []string{},
	}
	for _, msg := range item.CoachHistory {
		if msg.Payload != nil && len(msg.Payload.DoneWhen) > 0 {
			report.Confidence = types.ConfidencePartial
			report.EstCompletionPct = 25
			report.RemainingSteps = append([]string(nil), msg.Payload.DoneWhen...)
		}
	}
	if item.Status == models.StatusNow && report.Confidence == types.ConfidencePartial {
		report.EstCompletionPct = 50
	}
	return report, nil
}
