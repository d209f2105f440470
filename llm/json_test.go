package llm

import (
	"testing"

	"github.com/impactlist/impactlist/types"
)

func TestExtractAndParseJSONPlainArray(t *testing.T) {
	response := `[{"title":"Book venue","why":"need a room","source_refs":["para 1"]}]`

	items, err := ExtractAndParseJSON[[]types.GeneratedItem](response)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Book venue" {
		t.Errorf("items = %+v", items)
	}
}

func TestExtractAndParseJSONFencedWithProse(t *testing.T) {
	response := "Here is your plan:\n```json\n[{\"title\":\"Book venue\",\"why\":\"w\",\"source_refs\":[]}]\n```\nLet me know if you need more."

	items, err := ExtractAndParseJSON[[]types.GeneratedItem](response)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("items = %+v", items)
	}
}

func TestExtractAndParseJSONRepairsTrailingComma(t *testing.T) {
	response := `{"message":"start here","first_moves":["a","b",],"check_prereqs":[],"risks":[],"done_when":["done",]}`

	type payload struct {
		Message    string   `json:"message"`
		FirstMoves []string `json:"first_moves"`
		DoneWhen   []string `json:"done_when"`
	}
	got, err := ExtractAndParseJSON[payload](response)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Message != "start here" || len(got.FirstMoves) != 2 || len(got.DoneWhen) != 1 {
		t.Errorf("got %+v", got)
	}
}

func TestExtractAndParseJSONIgnoresTrailingText(t *testing.T) {
	response := `{"message":"hi","first_moves":[],"check_prereqs":[],"risks":[],"done_when":[]} Hope that helps!`

	type payload struct {
		Message string `json:"message"`
	}
	got, err := ExtractAndParseJSON[payload](response)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Message != "hi" {
		t.Errorf("got %+v", got)
	}
}

func TestExtractAndParseJSONNoJSON(t *testing.T) {
	if _, err := ExtractAndParseJSON[[]types.GeneratedItem]("I could not produce a plan, sorry."); err == nil {
		t.Error("prose without JSON should fail")
	}
}
