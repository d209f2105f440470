package prompts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetPromptDefaults(t *testing.T) {
	got, err := GetPrompt(KeyGenerateItems, "")
	if err != nil {
		t.Fatalf("GetPrompt: %v", err)
	}
	if got != GenerateItemsSystemPrompt {
		t.Error("empty templates dir should return the built-in prompt")
	}

	got, err = GetPrompt(KeyCoach, "")
	if err != nil {
		t.Fatalf("GetPrompt: %v", err)
	}
	if !strings.Contains(got, "done_when") {
		t.Error("coach prompt should describe the structured reply fields")
	}
}

func TestGetPromptFileOverride(t *testing.T) {
	dir := t.TempDir()
	custom := "You are a terse planning assistant."
	if err := os.WriteFile(filepath.Join(dir, "generate_items_prompt.txt"), []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := GetPrompt(KeyGenerateItems, dir)
	if err != nil {
		t.Fatalf("GetPrompt: %v", err)
	}
	if got != custom {
		t.Errorf("GetPrompt = %q, want the file override", got)
	}

	// A key whose file is absent still falls back to the default.
	got, err = GetPrompt(KeyCoach, dir)
	if err != nil {
		t.Fatalf("GetPrompt: %v", err)
	}
	if got != CoachSystemPrompt {
		t.Error("missing override file should fall back to the default")
	}
}

func TestGetPromptUnknownKey(t *testing.T) {
	if _, err := GetPrompt(PromptKey("Nope"), ""); err == nil {
		t.Error("unknown key should be an error")
	}
}
