package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/impactlist/impactlist/models"
	"github.com/impactlist/impactlist/types"
)

func TestExportFilename(t *testing.T) {
	now := time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC)
	tests := []struct {
		event string
		want  string
	}{
		{"Launch Party", "Launch_Party_2026-09-01.json"},
		{"My Action Plan", "My_Action_Plan_2026-09-01.json"},
		{"one  two\tthree", "one_two_three_2026-09-01.json"},
		{"single", "single_2026-09-01.json"},
	}
	for _, tt := range tests {
		if got := ExportFilename(tt.event, now); got != tt.want {
			t.Errorf("ExportFilename(%q) = %q, want %q", tt.event, got, tt.want)
		}
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	provider := &fakeProvider{items: []types.GeneratedItem{
		{Title: "Book the venue", Why: "no room, no event", SourceRefs: []string{"para 1"}},
	}}
	src := newTestSession(t, provider)
	if err := src.Generate(context.Background(), "notes", "Launch Party", ""); err != nil {
		t.Fatal(err)
	}
	id := src.Plan().ActionItems[0].ID
	if err := src.SendCoachMessage(context.Background(), id, "how?"); err != nil {
		t.Fatal(err)
	}

	data, filename, err := src.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if filename == "" || filename[len(filename)-5:] != ".json" {
		t.Errorf("filename = %q", filename)
	}

	dst := newTestSession(t, nil)
	if err := dst.Import(data); err != nil {
		t.Fatalf("Import: %v", err)
	}

	got := dst.Plan()
	want := src.Plan()
	if got.EventName != want.EventName || got.SourceText != want.SourceText {
		t.Errorf("header lost: %q/%q", got.EventName, got.SourceText)
	}
	if len(got.ActionItems) != 1 || got.ActionItems[0].ID != id {
		t.Fatalf("items lost: %+v", got.ActionItems)
	}
	if len(got.ActionItems[0].CoachHistory) != len(want.ActionItems[0].CoachHistory) {
		t.Error("coach thread lost in round-trip")
	}
	// Import takes the document as-is: updated_at is not bumped.
	if !got.Meta.UpdatedAt.Equal(want.Meta.UpdatedAt) {
		t.Error("import must not bump updated_at")
	}
}

func TestImportRejectsMissingEventName(t *testing.T) {
	sess := newTestSession(t, nil)

	err := sess.Import([]byte(`{"actionItems":[]}`))
	var planErr *types.PlanError
	if !errors.As(err, &planErr) || planErr.Code != types.CodeImportInvalid {
		t.Errorf("err = %v, want %s", err, types.CodeImportInvalid)
	}
}

func TestImportRejectsWrongActionItemsType(t *testing.T) {
	sess := newTestSession(t, nil)

	err := sess.Import([]byte(`{"eventName":"E","actionItems":{"oops":"object"}}`))
	var planErr *types.PlanError
	if !errors.As(err, &planErr) || planErr.Code != types.CodeImportInvalid {
		t.Errorf("err = %v, want %s", err, types.CodeImportInvalid)
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	sess := newTestSession(t, nil)
	if err := sess.Import([]byte("not json at all")); err == nil {
		t.Error("garbage bytes should be rejected")
	}
}

func TestImportInvalidDocumentLeavesPlanUntouched(t *testing.T) {
	provider := &fakeProvider{items: []types.GeneratedItem{{Title: "keep", Why: "w"}}}
	sess := newTestSession(t, provider)
	if err := sess.Generate(context.Background(), "n", "Existing", ""); err != nil {
		t.Fatal(err)
	}

	bad := []byte(`{"eventName":"E","actionItems":[{"id":"x","title":"a","why":"w","status":"Someday","control":"Mine","effort":"M"}]}`)
	if err := sess.Import(bad); err == nil {
		t.Fatal("illegal status should fail validation")
	}
	if p := sess.Plan(); p.EventName != "Existing" || len(p.ActionItems) != 1 {
		t.Errorf("failed import must not touch the plan: %+v", p)
	}
}

func TestImportAppliesDefaults(t *testing.T) {
	sess := newTestSession(t, nil)

	doc := []byte(`{"eventName":"Minimal","actionItems":[{"id":"x","title":"a","why":"w","status":"Now","control":"Mine","effort":"L"}]}`)
	if err := sess.Import(doc); err != nil {
		t.Fatalf("Import: %v", err)
	}

	p := sess.Plan()
	if p.Meta.Version != models.MetaVersion || p.Meta.CreatedAt.IsZero() {
		t.Errorf("missing meta should default to a fresh one: %+v", p.Meta)
	}
	item := p.ActionItems[0]
	if item.SourceRefs == nil || item.CoachHistory == nil {
		t.Error("nil item slices should be normalized")
	}
	if p.SourceText != "" {
		t.Errorf("missing sourceText should default empty, got %q", p.SourceText)
	}
}

func TestExportIsValidIndentedJSON(t *testing.T) {
	sess := newTestSession(t, nil)
	data, _, err := sess.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("export is not JSON: %v", err)
	}
	for _, key := range []string{"meta", "eventName", "sourceText", "actionItems"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("export missing %q", key)
		}
	}
}
