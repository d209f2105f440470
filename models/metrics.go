package models

import "math"

// EffortWeight maps an effort level onto the weight used by rank scores and
// column totals: Low=1, Medium=2, High=3.
func EffortWeight(e Effort) int {
	switch e {
	case EffortLow:
		return 1
	case EffortHigh:
		return 3
	default:
		return 2
	}
}

// ControlWeight is 1.0 for items the user executes themselves, 0.5 otherwise.
func ControlWeight(c Control) float64 {
	if c == ControlMine {
		return 1.0
	}
	return 0.5
}

// RankScore computes the priority heuristic
// (controlWeight * impact) / effortWeight, rounded to two decimals. A nil
// impact hint counts as 1.0. Callers compute this once at item creation; the
// score is not maintained across later edits.
func RankScore(c Control, e Effort, impactHint *float64) float64 {
	impact := 1.0
	if impactHint != nil {
		impact = *impactHint
	}
	raw := ControlWeight(c) * impact / float64(EffortWeight(e))
	return math.Round(raw*100) / 100
}

// ColumnTotals aggregates one triage column.
type ColumnTotals struct {
	Count  int `json:"count"`
	Cost   int `json:"cost"`
	Effort int `json:"effort"`
}

// ComputeTotals sums count, cost, and effort weight per column for the Now,
// Next, and Later columns. Skip items are excluded entirely. The result is a
// pure function of the items; it is recomputed on every read, never persisted.
func ComputeTotals(items []ActionItem) map[Status]ColumnTotals {
	totals := map[Status]ColumnTotals{
		StatusNow:   {},
		StatusNext:  {},
		StatusLater: {},
	}
	for _, item := range items {
		col, ok := totals[item.Status]
		if !ok {
			continue
		}
		col.Count++
		col.Cost += item.Cost
		col.Effort += EffortWeight(item.Effort)
		totals[item.Status] = col
	}
	return totals
}
