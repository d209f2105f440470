package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/impactlist/impactlist/models"
)

// mockChatModel implements model.BaseChatModel for testing.
type mockChatModel struct {
	response *schema.Message
	err      error
	gotInput []*schema.Message
}

func (m *mockChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.gotInput = input
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *mockChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, nil
}

func assistantReply(content string) *schema.Message {
	return &schema.Message{Role: schema.Assistant, Content: content}
}

func TestGenerateActionItems(t *testing.T) {
	mock := &mockChatModel{response: assistantReply("```json\n" +
		`[{"title":"Book the venue","why":"no room, no event","source_refs":["para 1"],"impactHint":1.3},
		  {"title":"Book the venue","why":"pick a date first","source_refs":["para 2"]}]` + "\n```")}
	p := newEinoProviderWithModel(Config{}, mock)

	items, err := p.GenerateActionItems(context.Background(), "raw meeting notes", "")
	if err != nil {
		t.Fatalf("GenerateActionItems: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len = %d, want the near-duplicates merged", len(items))
	}
	if items[0].ImpactHint == nil || *items[0].ImpactHint != 1.3 {
		t.Errorf("impact hint lost in merge: %+v", items[0])
	}
	if len(mock.gotInput) != 2 {
		t.Fatalf("messages = %d, want system + user", len(mock.gotInput))
	}
	if !strings.Contains(mock.gotInput[1].Content, "raw meeting notes") {
		t.Error("source text missing from the user message")
	}
}

func TestGenerateActionItemsCustomPrompt(t *testing.T) {
	mock := &mockChatModel{response: assistantReply(`[]`)}
	p := newEinoProviderWithModel(Config{}, mock)

	if _, err := p.GenerateActionItems(context.Background(), "notes", "only extract budget items"); err != nil {
		t.Fatalf("GenerateActionItems: %v", err)
	}
	if mock.gotInput[0].Content != "only extract budget items" {
		t.Errorf("system prompt = %q, want the custom prompt verbatim", mock.gotInput[0].Content)
	}
}

func TestGenerateActionItemsModelError(t *testing.T) {
	mock := &mockChatModel{err: errors.New("rate limited")}
	p := newEinoProviderWithModel(Config{}, mock)

	if _, err := p.GenerateActionItems(context.Background(), "notes", ""); err == nil {
		t.Error("model failure should propagate")
	}
}

func TestGenerateActionItemsUnparseableReply(t *testing.T) {
	mock := &mockChatModel{response: assistantReply("Sorry, I cannot help with that.")}
	p := newEinoProviderWithModel(Config{}, mock)

	if _, err := p.GenerateActionItems(context.Background(), "notes", ""); err == nil {
		t.Error("non-JSON reply should be an error")
	}
}

func TestGetCoachResponse(t *testing.T) {
	mock := &mockChatModel{response: assistantReply(
		`{"message":"Start with the contract.","first_moves":["call them"],"check_prereqs":[],"risks":[],"done_when":["contract signed"]}`)}
	p := newEinoProviderWithModel(Config{}, mock)

	item := models.NewActionItem("Book the venue", "no room, no event", []string{"para 1"}, nil)
	history := []models.CoachMessage{
		models.NewUserMessage("where do I start?"),
		models.NewAIMessage(models.CoachPayload{Message: "with the venue", DoneWhen: []string{}}),
		models.NewUserMessage("and then?"),
	}

	payload, err := p.GetCoachResponse(context.Background(), item, "and then?", history)
	if err != nil {
		t.Fatalf("GetCoachResponse: %v", err)
	}
	if payload.Message != "Start with the contract." || len(payload.DoneWhen) != 1 {
		t.Errorf("payload = %+v", payload)
	}

	// system + three replayed history turns; the trailing user turn is
	// already in the history.
	if len(mock.gotInput) != 4 {
		t.Fatalf("messages = %d, want 4", len(mock.gotInput))
	}
	if !strings.Contains(mock.gotInput[0].Content, "Book the venue") {
		t.Error("item context missing from system prompt")
	}
	if mock.gotInput[3].Role != schema.User || mock.gotInput[3].Content != "and then?" {
		t.Errorf("last message = %+v, want the current user turn", mock.gotInput[3])
	}
}

func TestGetCoachResponseRejectsInvalidPayload(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"missing message", `{"message":"","first_moves":[],"check_prereqs":[],"risks":[],"done_when":[]}`},
		{"missing done_when", `{"message":"hi","first_moves":[],"check_prereqs":[],"risks":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockChatModel{response: assistantReply(tt.reply)}
			p := newEinoProviderWithModel(Config{}, mock)
			item := models.NewActionItem("t", "w", nil, nil)
			if _, err := p.GetCoachResponse(context.Background(), item, "q", nil); err == nil {
				t.Error("structurally invalid payload should be rejected")
			}
		})
	}
}

func TestGetFeasibility(t *testing.T) {
	p := newEinoProviderWithModel(Config{}, &mockChatModel{})

	item := models.NewActionItem("t", "w", nil, nil)
	report, err := p.GetFeasibility(context.Background(), item)
	if err != nil {
		t.Fatalf("GetFeasibility: %v", err)
	}
	if report.Confidence != "not_ready" {
		t.Errorf("fresh item confidence = %s, want not_ready", report.Confidence)
	}

	item.CoachHistory = append(item.CoachHistory, models.NewAIMessage(models.CoachPayload{
		Message:  "plan",
		DoneWhen: []string{"contract signed"},
	}))
	report, _ = p.GetFeasibility(context.Background(), item)
	if report.Confidence != "partial" || report.EstCompletionPct != 25 {
		t.Errorf("coached item report = %+v", report)
	}

	item.Status = models.StatusNow
	report, _ = p.GetFeasibility(context.Background(), item)
	if report.EstCompletionPct != 50 {
		t.Errorf("Now-column coached item pct = %d, want 50", report.EstCompletionPct)
	}
}
