package session

import (
	"encoding/json"
	"regexp"
	"time"

	"github.com/impactlist/impactlist/models"
	"github.com/impactlist/impactlist/types"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// ExportFilename builds the conventional export name:
// event name with whitespace collapsed to underscores, then the ISO date.
func ExportFilename(eventName string, now time.Time) string {
	return whitespaceRun.ReplaceAllString(eventName, "_") + "_" + now.UTC().Format("2006-01-02") + ".json"
}

// Export serializes the current plan for the I/O collaborator to write out,
// returning the bytes and the conventional filename.
func (s *Session) Export() ([]byte, string, error) {
	p := s.plan.Get()
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, "", types.NewPlanError(types.CodeStorageWriteFailed, "failed to serialize plan for export", err)
	}
	return data, ExportFilename(p.EventName, time.Now()), nil
}

// importProbe checks the shape of the document before the full decode: the
// two structurally required fields must be present and correctly typed.
type importProbe struct {
	EventName   *string          `json:"eventName"`
	ActionItems *json.RawMessage `json:"actionItems"`
}

// Import parses raw bytes into a candidate plan, validates it, and accepts
// it wholesale — no meta.updated_at bump, the imported plan is taken as-is
// (with defaults filled for a missing meta block or nil slices). Any failure
// is an ImportInvalid and leaves the current plan untouched.
func (s *Session) Import(raw []byte) error {
	var probe importProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return types.NewPlanError(types.CodeImportInvalid, "plan file is not valid JSON", err)
	}
	if probe.EventName == nil || *probe.EventName == "" {
		return types.NewPlanError(types.CodeImportInvalid, "plan file has no eventName", nil)
	}
	if probe.ActionItems == nil || len(*probe.ActionItems) == 0 || (*probe.ActionItems)[0] != '[' {
		return types.NewPlanError(types.CodeImportInvalid, "plan file has no actionItems array", nil)
	}

	var p models.Plan
	if err := json.Unmarshal(raw, &p); err != nil {
		return types.NewPlanError(types.CodeImportInvalid, "plan file does not match the plan format", err)
	}
	models.ApplyImportDefaults(&p)
	if result := models.ValidateImportedPlan(p); !result.Valid {
		return types.NewPlanError(types.CodeImportInvalid, result.ErrorSummary(), nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.plan.Set(p)
	s.lastErr = nil
	s.genFailed = false
	s.activeItemID = ""
	return nil
}
