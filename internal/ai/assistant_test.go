package ai

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFallbackAudit(t *testing.T) {
	audit := FallbackAudit([]string{"Go", "TypeScript", "Rust", "Python"})

	if !audit.Fallback {
		t.Fatal("expected the fallback lineage flag")
	}
	if audit.DetectedRole != FallbackRole {
		t.Fatalf("unexpected role: %s", audit.DetectedRole)
	}
	if len(audit.UsedStack) != 3 {
		t.Fatalf("used stack must be capped at 3 languages, got %v", audit.UsedStack)
	}
	if len(audit.MissingStack) != 1 || audit.MissingStack[0] != FallbackMissingStack {
		t.Fatalf("unexpected missing stack: %v", audit.MissingStack)
	}
	if audit.Persona == "" || audit.Pitch == "" {
		t.Fatal("persona and pitch placeholders must be populated")
	}
}

func TestFallbackAuditNoLanguages(t *testing.T) {
	audit := FallbackAudit(nil)

	if audit.UsedStack == nil || len(audit.UsedStack) != 0 {
		t.Fatalf("expected an empty (non-nil) used stack, got %#v", audit.UsedStack)
	}
}

func TestAuditJSONShape(t *testing.T) {
	data, err := json.Marshal(FallbackAudit([]string{"Go"}))
	if err != nil {
		t.Fatalf("marshal audit: %v", err)
	}

	body := string(data)
	for _, key := range []string{"detected_role", "used_stack", "missing_stack", "persona", "pitch", "skill_rating"} {
		if !strings.Contains(body, `"`+key+`"`) {
			t.Fatalf("serialized audit is missing %q: %s", key, body)
		}
	}

	// Lineage and the optional gap-analysis fields stay off the wire.
	for _, key := range []string{"Fallback", "match_percentage", "critical_gaps", "missing_project_idea"} {
		if strings.Contains(body, key) {
			t.Fatalf("serialized audit unexpectedly contains %q: %s", key, body)
		}
	}
}
