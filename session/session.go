// Package session owns the live plan: every mutation routes through here and
// through the debounced store binding, so meta.updated_at stays honest and
// persistence is scheduled.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/impactlist/impactlist/coach"
	"github.com/impactlist/impactlist/llm"
	"github.com/impactlist/impactlist/models"
	"github.com/impactlist/impactlist/store"
	"github.com/impactlist/impactlist/types"
)

// ErrGenerationInFlight is returned when Generate is called while a previous
// generation has not resolved yet.
var ErrGenerationInFlight = types.NewPlanError(types.CodeGenerationFailed, "a generation is already in progress", nil)

// Session is the single owner of the live plan and its snapshot history.
// Construct one explicitly and inject it wherever operations are needed;
// there is no package-level instance.
type Session struct {
	plan      *store.Binding[models.Plan]
	snapshots *store.Binding[[]models.PlanSnapshot]
	provider  llm.Provider
	coach     *coach.Manager
	logger    *slog.Logger

	mu           sync.Mutex
	generating   bool
	lastErr      *types.PlanError
	genFailed    bool
	activeItemID string
}

// New wires a session over the given bindings and collaborator. provider may
// be nil for sessions that only triage and never generate or coach; the
// corresponding operations then fail cleanly. Both bindings are loaded here.
func New(plan *store.Binding[models.Plan], snapshots *store.Binding[[]models.PlanSnapshot], provider llm.Provider, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		plan:      plan,
		snapshots: snapshots,
		provider:  provider,
		logger:    logger,
	}
	s.coach = coach.NewManager(provider, logger)
	plan.Load(models.NewEmptyPlan())
	snapshots.Load([]models.PlanSnapshot{})
	return s
}

// Plan returns a deep copy of the live plan. Callers never share mutable
// state with the session.
func (s *Session) Plan() models.Plan {
	return s.plan.Get().Clone()
}

// Err returns the last recoverable failure surfaced by an operation, or nil.
func (s *Session) Err() *types.PlanError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// GenerationFailed reports whether the last generation attempt failed or
// came back empty, which enables the prompt-override retry path.
func (s *Session) GenerationFailed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.genFailed
}

// Totals recomputes the per-column aggregates from the current items.
func (s *Session) Totals() map[models.Status]models.ColumnTotals {
	return models.ComputeTotals(s.plan.Get().ActionItems)
}

// commitLocked stamps updated_at and hands the plan to the store. Callers
// hold s.mu.
func (s *Session) commitLocked(p models.Plan) {
	p.Meta.UpdatedAt = time.Now().UTC()
	s.plan.Set(p)
}

// Generate runs the extraction collaborator over sourceText and replaces the
// whole plan with the result. An empty result is recoverable: the error state
// and failed flag are set so the caller can offer a prompt override, but
// sourceText and eventName are still committed with no items. A collaborator
// error leaves the existing plan untouched. Overlapping calls are rejected
// with ErrGenerationInFlight.
func (s *Session) Generate(ctx context.Context, sourceText, eventName, customPrompt string) error {
	if s.provider == nil {
		return types.NewPlanError(types.CodeGenerationFailed, "no generation collaborator configured", nil)
	}

	s.mu.Lock()
	if s.generating {
		s.mu.Unlock()
		return ErrGenerationInFlight
	}
	s.generating = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.generating = false
		s.mu.Unlock()
	}()

	generated, err := s.provider.GenerateActionItems(ctx, sourceText, customPrompt)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.lastErr = types.NewPlanError(types.CodeGenerationFailed, "failed to generate action items from the provided text", err)
		s.genFailed = true
		return s.lastErr
	}

	now := time.Now().UTC()
	next := models.Plan{
		Meta:        models.PlanMeta{Version: models.MetaVersion, CreatedAt: now, UpdatedAt: now},
		EventName:   eventName,
		SourceText:  sourceText,
		ActionItems: make([]models.ActionItem, 0, len(generated)),
	}
	for _, g := range generated {
		next.ActionItems = append(next.ActionItems, models.NewActionItem(g.Title, g.Why, g.SourceRefs, g.ImpactHint))
	}
	s.plan.Set(next)

	if len(generated) == 0 {
		s.lastErr = types.NewPlanError(types.CodeGenerationEmpty, "no action items could be generated from the provided text", nil)
		s.genFailed = true
		return s.lastErr
	}

	s.lastErr = nil
	s.genFailed = false
	return nil
}

// UpdateItem replaces the action item with the matching id. An unknown id is
// a logged no-op: the plan is untouched and no timestamp moves.
func (s *Session) UpdateItem(updated models.ActionItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateItemLocked(updated)
}

func (s *Session) updateItemLocked(updated models.ActionItem) error {
	p := s.plan.Get()
	for i, item := range p.ActionItems {
		if item.ID == updated.ID {
			// Copy the slice before writing: the one returned by Get backs
			// the value a pending autosave may be serializing.
			items := make([]models.ActionItem, len(p.ActionItems))
			copy(items, p.ActionItems)
			items[i] = updated
			p.ActionItems = items
			s.commitLocked(p)
			return nil
		}
	}
	s.logger.Debug("update for unknown action item ignored", "id", updated.ID)
	return nil
}

// MoveItem sets the item's triage column. A missing item or an unchanged
// status is a no-op with no updated_at bump.
func (s *Session) MoveItem(itemID string, newStatus models.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.plan.Get().Item(itemID)
	if !ok || item.Status == newStatus {
		return nil
	}
	item.Status = newStatus
	return s.updateItemLocked(item)
}

// Clear replaces the plan with a fresh empty one and resets all error,
// failed-generation, and selection state.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plan.Set(models.NewEmptyPlan())
	s.lastErr = nil
	s.genFailed = false
	s.activeItemID = ""
}

// SetActiveItem records which item the coach panel is focused on.
func (s *Session) SetActiveItem(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeItemID = itemID
}

// ActiveItem returns the focused item, if any.
func (s *Session) ActiveItem() (models.ActionItem, bool) {
	s.mu.Lock()
	id := s.activeItemID
	s.mu.Unlock()
	if id == "" {
		return models.ActionItem{}, false
	}
	return s.plan.Get().Item(id)
}

// SaveSnapshot appends a deep-copied save point of the current plan. An
// empty or whitespace label is a no-op (the cancelled-dialog path).
func (s *Session) SaveSnapshot(label string) {
	if isBlank(label) {
		return
	}
	// Second precision: the timestamp is the snapshot's identity and must
	// round-trip through its RFC3339 rendering.
	snap := models.PlanSnapshot{
		Label:     label,
		Timestamp: time.Now().UTC().Truncate(time.Second),
		Plan:      s.plan.Get().Clone(),
	}
	s.snapshots.Update(func(prev []models.PlanSnapshot) []models.PlanSnapshot {
		return append(prev, snap)
	})
}

// Snapshots returns the saved snapshots, oldest first.
func (s *Session) Snapshots() []models.PlanSnapshot {
	return append([]models.PlanSnapshot(nil), s.snapshots.Get()...)
}

// LoadSnapshot replaces the live plan with a copy of the snapshot identified
// by its timestamp. An unknown timestamp leaves the live plan unchanged.
func (s *Session) LoadSnapshot(ts time.Time) {
	for _, snap := range s.snapshots.Get() {
		if snap.Timestamp.Equal(ts) {
			s.mu.Lock()
			s.commitLocked(snap.Plan.Clone())
			s.mu.Unlock()
			return
		}
	}
}

// SendCoachMessage runs one coach exchange for the given item. The user's
// turn always lands in the thread; a collaborator failure is recorded as an
// in-thread AI error entry, not returned.
func (s *Session) SendCoachMessage(ctx context.Context, itemID, userText string) error {
	if s.provider == nil {
		return types.NewPlanError(types.CodeCoachFailed, "no coach collaborator configured", nil)
	}
	return s.coach.SendMessage(ctx, planAccess{s}, itemID, userText)
}

// Feasibility asks the do-it-for-me collaborator about one item.
func (s *Session) Feasibility(ctx context.Context, itemID string) (types.FeasibilityReport, error) {
	if s.provider == nil {
		return types.FeasibilityReport{}, types.NewPlanError(types.CodeCoachFailed, "no feasibility collaborator configured", nil)
	}
	item, ok := s.plan.Get().Item(itemID)
	if !ok {
		return types.FeasibilityReport{}, fmt.Errorf("action item %q not found", itemID)
	}
	return s.provider.GetFeasibility(ctx, item)
}

// Flush forces any pending debounced writes out now. The CLI calls this
// before exiting; the bindings themselves never flush on Close.
func (s *Session) Flush() {
	s.plan.Flush()
	s.snapshots.Flush()
}

// Close cancels pending writes without flushing them.
func (s *Session) Close() error {
	if err := s.plan.Close(); err != nil {
		return err
	}
	return s.snapshots.Close()
}

// planAccess adapts the session to the coach manager's mutation interface.
type planAccess struct{ s *Session }

func (a planAccess) Item(id string) (models.ActionItem, bool) {
	return a.s.plan.Get().Item(id)
}

func (a planAccess) AppendCoachMessage(id string, msg models.CoachMessage) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	item, ok := a.s.plan.Get().Item(id)
	if !ok {
		return fmt.Errorf("action item %q not found", id)
	}
	item.CoachHistory = append(item.CoachHistory, msg)
	return a.s.updateItemLocked(item)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
