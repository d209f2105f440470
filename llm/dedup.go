package llm

import (
	"strings"

	"github.com/impactlist/impactlist/types"
)

// defaultSimilarityThreshold is the Jaccard word-overlap above which two
// generated items are treated as the same action.
const defaultSimilarityThreshold = 0.82

// MergeNearDuplicates collapses near-duplicate generated items before they
// reach the session. When two items are similar, the shorter title wins, the
// source refs are unioned, and the rationales are joined with a semicolon.
// Order of first appearance is preserved.
func MergeNearDuplicates(items []types.GeneratedItem) []types.GeneratedItem {
	if len(items) < 2 {
		return items
	}

	merged := make([]types.GeneratedItem, 0, len(items))
	for _, candidate := range items {
		matched := false
		for i := range merged {
			if !areSimilar(merged[i], candidate) {
				continue
			}
			merged[i] = mergeItems(merged[i], candidate)
			matched = true
			break
		}
		if !matched {
			merged = append(merged, candidate)
		}
	}
	return merged
}

func areSimilar(a, b types.GeneratedItem) bool {
	if jaccardSimilarity(a.Title, b.Title) >= defaultSimilarityThreshold {
		return true
	}
	return jaccardSimilarity(a.Title+" "+a.Why, b.Title+" "+b.Why) >= defaultSimilarityThreshold
}

func mergeItems(kept, dup types.GeneratedItem) types.GeneratedItem {
	if len(dup.Title) < len(kept.Title) {
		kept.Title = dup.Title
	}
	kept.SourceRefs = unionRefs(kept.SourceRefs, dup.SourceRefs)
	if dup.Why != "" && dup.Why != kept.Why {
		if kept.Why == "" {
			kept.Why = dup.Why
		} else {
			kept.Why = kept.Why + "; " + dup.Why
		}
	}
	// The higher impact hint survives the merge.
	if dup.ImpactHint != nil && (kept.ImpactHint == nil || *dup.ImpactHint > *kept.ImpactHint) {
		kept.ImpactHint = dup.ImpactHint
	}
	return kept
}

// unionRefs combines two ref lists, removing duplicates, first list first.
func unionRefs(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, ref := range a {
		if !seen[ref] {
			seen[ref] = true
			out = append(out, ref)
		}
	}
	for _, ref := range b {
		if !seen[ref] {
			seen[ref] = true
			out = append(out, ref)
		}
	}
	return out
}

// jaccardSimilarity is word-set overlap over word-set union, case folded.
func jaccardSimilarity(a, b string) float64 {
	wordsA := tokenize(a)
	wordsB := tokenize(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	intersection := 0
	for w := range wordsA {
		if wordsB[w] {
			intersection++
		}
	}
	union := len(wordsA) + len(wordsB) - intersection
	return float64(intersection) / float64(union)
}

func tokenize(s string) map[string]bool {
	out := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		w = strings.Trim(w, ".,;:!?\"'()[]")
		if w != "" {
			out[w] = true
		}
	}
	return out
}
