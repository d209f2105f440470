package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// trailingCommaRegex fixes trailing commas before a closing brace/bracket, a
// common LLM output error.
var trailingCommaRegex = regexp.MustCompile(`,\s*([}\]])`)

// ExtractAndParseJSON extracts JSON from LLM responses and unmarshals it.
// Markdown fences and trailing prose are ignored; a trailing-comma repair is
// attempted before giving up.
func ExtractAndParseJSON[T any](response string) (T, error) {
	var result T

	cleaned := stripFences(response)
	idx := strings.IndexAny(cleaned, "{[")
	if idx == -1 {
		return result, fmt.Errorf("no JSON start ({ or [) found in response")
	}
	jsonPart := cleaned[idx:]

	// Decoder parses a single JSON value and ignores anything after it.
	decoder := json.NewDecoder(strings.NewReader(jsonPart))
	if err := decoder.Decode(&result); err == nil {
		return result, nil
	}

	repaired := trailingCommaRegex.ReplaceAllString(jsonPart, "$1")
	decoder = json.NewDecoder(strings.NewReader(repaired))
	if err := decoder.Decode(&result); err != nil {
		return result, fmt.Errorf("failed to parse JSON from response: %w", err)
	}
	return result, nil
}

// stripFences removes markdown code fences around the response body.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
