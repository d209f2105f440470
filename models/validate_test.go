package models

import (
	"strings"
	"testing"
)

func TestApplyImportDefaults(t *testing.T) {
	p := Plan{
		EventName: "Offsite",
		ActionItems: []ActionItem{
			{ID: "x", Title: "t", Why: "w", Status: StatusNow, Control: ControlMine, Effort: EffortLow},
		},
	}

	ApplyImportDefaults(&p)

	if p.Meta.Version != MetaVersion {
		t.Errorf("missing meta should default to %s, got %q", MetaVersion, p.Meta.Version)
	}
	if p.Meta.CreatedAt.IsZero() || p.Meta.UpdatedAt.IsZero() {
		t.Error("missing meta timestamps should be filled")
	}
	if p.ActionItems[0].SourceRefs == nil || p.ActionItems[0].CoachHistory == nil {
		t.Error("nil item slices should be normalized to empty")
	}
}

func TestApplyImportDefaultsKeepsExistingMeta(t *testing.T) {
	p := NewEmptyPlan()
	created := p.Meta.CreatedAt

	ApplyImportDefaults(&p)

	if !p.Meta.CreatedAt.Equal(created) {
		t.Error("a present meta block must be kept as-is")
	}
}

func TestValidateImportedPlanAccepts(t *testing.T) {
	p := NewEmptyPlan()
	p.ActionItems = append(p.ActionItems, NewActionItem("Book venue", "need a room", nil, nil))

	result := ValidateImportedPlan(p)
	if !result.Valid {
		t.Errorf("valid plan rejected: %s", result.ErrorSummary())
	}
	if result.ErrorSummary() != "" {
		t.Errorf("valid result should have empty summary, got %q", result.ErrorSummary())
	}
}

func TestValidateImportedPlanRejectsBadEnums(t *testing.T) {
	p := NewEmptyPlan()
	item := NewActionItem("a", "b", nil, nil)
	item.Status = "Someday"
	item.Effort = "XL"
	p.ActionItems = append(p.ActionItems, item)

	result := ValidateImportedPlan(p)
	if result.Valid {
		t.Fatal("illegal enum values should fail validation")
	}
	summary := result.ErrorSummary()
	if !strings.Contains(summary, "must be one of") {
		t.Errorf("summary should explain the enum rule, got %q", summary)
	}
}

func TestValidateImportedPlanRejectsDuplicateIDs(t *testing.T) {
	p := NewEmptyPlan()
	item := NewActionItem("a", "b", nil, nil)
	dup := item.Clone()
	dup.Title = "different title, same id"
	p.ActionItems = append(p.ActionItems, item, dup)

	result := ValidateImportedPlan(p)
	if result.Valid {
		t.Fatal("duplicate ids should fail validation")
	}
	if !strings.Contains(result.ErrorSummary(), "duplicate action item id") {
		t.Errorf("summary = %q", result.ErrorSummary())
	}
}

func TestValidateImportedPlanRejectsEmptyEventName(t *testing.T) {
	p := NewEmptyPlan()
	p.EventName = ""

	if result := ValidateImportedPlan(p); result.Valid {
		t.Error("empty event name should fail validation")
	}
}
