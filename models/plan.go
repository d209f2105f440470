package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Status is the triage column an action item lives in.
type Status string

const (
	StatusNow   Status = "Now"
	StatusNext  Status = "Next"
	StatusLater Status = "Later"
	StatusSkip  Status = "Skip"
)

// Control records who executes an action item.
type Control string

const (
	ControlMine       Control = "Mine"
	ControlThirdParty Control = "3rd-party"
)

// Effort is a coarse size estimate for an action item.
type Effort string

const (
	EffortLow    Effort = "L"
	EffortMedium Effort = "M"
	EffortHigh   Effort = "H"
)

// MetaVersion is the durable plan format version.
const MetaVersion = "v1"

// DefaultEventName labels a plan before the user names it.
const DefaultEventName = "My Action Plan"

// Fallbacks applied when generation omits a required field.
const (
	fallbackTitle = "Untitled"
	fallbackWhy   = "No rationale provided."
)

// PlanMeta carries format version and mutation timestamps for a plan.
// UpdatedAt is refreshed on every mutation that reaches the store.
type PlanMeta struct {
	Version   string    `json:"version" validate:"required"`
	CreatedAt time.Time `json:"created_at" validate:"required"`
	UpdatedAt time.Time `json:"updated_at" validate:"required"`
}

// ActionItem is one triaged, actionable unit derived from source text.
// ID is generated at creation and immutable. RankScore is computed once at
// creation and deliberately never recomputed when control or effort change.
type ActionItem struct {
	ID           string         `json:"id" validate:"required"`
	Title        string         `json:"title" validate:"required"`
	Why          string         `json:"why" validate:"required"`
	SourceRefs   []string       `json:"source_refs"`
	Status       Status         `json:"status" validate:"required,oneof=Now Next Later Skip"`
	Control      Control        `json:"control" validate:"required,oneof=Mine 3rd-party"`
	Effort       Effort         `json:"effort" validate:"required,oneof=L M H"`
	Cost         int            `json:"cost" validate:"min=0"`
	ImpactHint   *float64       `json:"impactHint,omitempty" validate:"omitempty,min=1,max=1.5"`
	RankScore    *float64       `json:"rankScore,omitempty"`
	CoachHistory []CoachMessage `json:"coachHistory"`
}

// Plan is the root aggregate: one event's triaged action items plus the
// source text they were generated from.
type Plan struct {
	Meta        PlanMeta     `json:"meta"`
	EventName   string       `json:"eventName" validate:"required"`
	SourceText  string       `json:"sourceText"`
	ActionItems []ActionItem `json:"actionItems" validate:"dive"`
}

// PlanSnapshot is a named, deep-copied save point of a whole plan.
// Timestamp doubles as the snapshot's identity key.
type PlanSnapshot struct {
	Label     string    `json:"label" validate:"required"`
	Timestamp time.Time `json:"timestamp" validate:"required"`
	Plan      Plan      `json:"plan"`
}

// NewEmptyPlan returns a plan with fresh timestamps and no action items.
func NewEmptyPlan() Plan {
	now := time.Now().UTC()
	return Plan{
		Meta: PlanMeta{
			Version:   MetaVersion,
			CreatedAt: now,
			UpdatedAt: now,
		},
		EventName:   DefaultEventName,
		SourceText:  "",
		ActionItems: []ActionItem{},
	}
}

// NewActionItem builds an action item from generation output. Control and
// effort start at their defaults (Mine, Medium) regardless of anything
// generation proposed, and the rank score is frozen from those defaults plus
// the impact hint. Title and why fall back to placeholders when empty.
func NewActionItem(title, why string, sourceRefs []string, impactHint *float64) ActionItem {
	if strings.TrimSpace(title) == "" {
		title = fallbackTitle
	}
	if strings.TrimSpace(why) == "" {
		why = fallbackWhy
	}
	if sourceRefs == nil {
		sourceRefs = []string{}
	}
	score := RankScore(ControlMine, EffortMedium, impactHint)
	return ActionItem{
		ID:           uuid.NewString(),
		Title:        title,
		Why:          why,
		SourceRefs:   sourceRefs,
		Status:       StatusLater,
		Control:      ControlMine,
		Effort:       EffortMedium,
		Cost:         0,
		ImpactHint:   impactHint,
		RankScore:    &score,
		CoachHistory: []CoachMessage{},
	}
}

// Clone returns a deep, independent copy of the plan. Mutating the original
// afterwards must never be observable through the copy.
func (p Plan) Clone() Plan {
	out := p
	out.ActionItems = make([]ActionItem, len(p.ActionItems))
	for i, item := range p.ActionItems {
		out.ActionItems[i] = item.Clone()
	}
	return out
}

// Clone returns a deep copy of the action item.
func (a ActionItem) Clone() ActionItem {
	out := a
	out.SourceRefs = append([]string(nil), a.SourceRefs...)
	if a.ImpactHint != nil {
		v := *a.ImpactHint
		out.ImpactHint = &v
	}
	if a.RankScore != nil {
		v := *a.RankScore
		out.RankScore = &v
	}
	out.CoachHistory = make([]CoachMessage, len(a.CoachHistory))
	for i, msg := range a.CoachHistory {
		out.CoachHistory[i] = msg.Clone()
	}
	return out
}

// Item returns the action item with the given id, if present.
func (p Plan) Item(id string) (ActionItem, bool) {
	for _, item := range p.ActionItems {
		if item.ID == id {
			return item, true
		}
	}
	return ActionItem{}, false
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, fmt.Sprintf("Validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
	}
	return nil
}
