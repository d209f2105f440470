// Import validation: imported plan documents are checked against the schema
// with a typed result instead of a bare ok/illegal boolean.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ValidationError describes one schema violation in an imported plan.
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidationResult is the outcome of validating an imported plan document.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ErrorSummary joins all violation messages into a single user-facing string.
func (r ValidationResult) ErrorSummary() string {
	if r.Valid {
		return ""
	}
	var parts []string
	for _, e := range r.Errors {
		parts = append(parts, e.Message)
	}
	return strings.Join(parts, "; ")
}

// ApplyImportDefaults fills the fields an imported document may legitimately
// omit: a missing meta block becomes a fresh v1 meta, nil slices become empty
// ones. A meta block that is present is taken as-is.
func ApplyImportDefaults(p *Plan) {
	now := time.Now().UTC()
	if p.Meta.Version == "" {
		p.Meta.Version = MetaVersion
	}
	if p.Meta.CreatedAt.IsZero() {
		p.Meta.CreatedAt = now
	}
	if p.Meta.UpdatedAt.IsZero() {
		p.Meta.UpdatedAt = now
	}
	if p.ActionItems == nil {
		p.ActionItems = []ActionItem{}
	}
	for i := range p.ActionItems {
		if p.ActionItems[i].SourceRefs == nil {
			p.ActionItems[i].SourceRefs = []string{}
		}
		if p.ActionItems[i].CoachHistory == nil {
			p.ActionItems[i].CoachHistory = []CoachMessage{}
		}
	}
}

// ValidateImportedPlan checks a defaulted plan document: the struct tags
// (non-empty event name, legal enum values, non-negative costs) plus the
// unique-id invariant across action items.
func ValidateImportedPlan(p Plan) ValidationResult {
	result := ValidationResult{Valid: true}

	if err := validate.Struct(p); err != nil {
		result.Valid = false
		for _, e := range err.(validator.ValidationErrors) {
			result.Errors = append(result.Errors, ValidationError{
				Field:   e.StructNamespace(),
				Tag:     e.Tag(),
				Message: formatImportError(e),
			})
		}
	}

	seen := make(map[string]bool, len(p.ActionItems))
	for _, item := range p.ActionItems {
		if item.ID == "" {
			continue // already reported by the required tag
		}
		if seen[item.ID] {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   "actionItems",
				Tag:     "unique",
				Message: fmt.Sprintf("duplicate action item id %q", item.ID),
			})
		}
		seen[item.ID] = true
	}

	return result
}

func formatImportError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.StructNamespace())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", e.StructNamespace(), e.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", e.StructNamespace(), e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", e.StructNamespace(), e.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", e.StructNamespace(), e.Tag())
	}
}
