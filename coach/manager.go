// Package coach sequences the per-item coaching conversation: one user turn
// in, exactly one AI turn out, success or not.
package coach

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/impactlist/impactlist/models"
)

// PlanAccess is the narrow view of the plan session the manager mutates
// through. Appends land in the item's coachHistory and reach the store.
type PlanAccess interface {
	Item(id string) (models.ActionItem, bool)
	AppendCoachMessage(id string, msg models.CoachMessage) error
}

// Responder produces the AI half of a coach turn. llm.Provider satisfies it.
type Responder interface {
	GetCoachResponse(ctx context.Context, item models.ActionItem, userText string, history []models.CoachMessage) (models.CoachPayload, error)
}

// Manager appends coach turns to items. Calls for the same item are
// serialized so two overlapping questions cannot interleave their replies;
// calls for different items proceed independently.
type Manager struct {
	responder Responder
	logger    *slog.Logger

	mu        sync.Mutex
	itemLocks map[string]*sync.Mutex
}

// NewManager creates a coach thread manager.
func NewManager(responder Responder, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		responder: responder,
		logger:    logger,
		itemLocks: make(map[string]*sync.Mutex),
	}
}

func (m *Manager) lockFor(itemID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.itemLocks[itemID]
	if !ok {
		lock = &sync.Mutex{}
		m.itemLocks[itemID] = lock
	}
	return lock
}

// SendMessage appends the user turn synchronously, asks the responder, and
// appends exactly one AI entry: the structured payload on success, or a
// synthesized error payload carrying the failure text on any error. The
// user's turn is never lost, so a responder failure is not returned as an
// error — it lives in the thread.
func (m *Manager) SendMessage(ctx context.Context, plan PlanAccess, itemID, userText string) error {
	lock := m.lockFor(itemID)
	lock.Lock()
	defer lock.Unlock()

	item, ok := plan.Item(itemID)
	if !ok {
		return fmt.Errorf("action item %q not found", itemID)
	}

	userMsg := models.NewUserMessage(userText)
	if err := plan.AppendCoachMessage(itemID, userMsg); err != nil {
		return fmt.Errorf("append user turn: %w", err)
	}
	history := append(item.CoachHistory, userMsg)

	payload, err := m.responder.GetCoachResponse(ctx, item, userText, history)
	if err != nil {
		m.logger.Warn("coach turn failed", "item", itemID, "error", err)
		return plan.AppendCoachMessage(itemID, models.NewAIErrorMessage(err))
	}
	return plan.AppendCoachMessage(itemID, models.NewAIMessage(payload))
}
