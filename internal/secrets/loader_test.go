package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("  s3cr3t\n"), 0o600); err != nil {
		t.Fatalf("write secret file: %v", err)
	}

	secret, err := Load(Source{Name: "github token", File: path, Value: "ignored"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "s3cr3t" {
		t.Fatalf("expected trimmed file value, got %q", secret)
	}
}

func TestLoadInlineValue(t *testing.T) {
	secret, err := Load(Source{Name: "gemini api key", Value: " inline-key "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "inline-key" {
		t.Fatalf("expected trimmed inline value, got %q", secret)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(Source{Name: "github token"}); err == nil {
		t.Fatal("expected an error when nothing is configured")
	}

	empty := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(empty, []byte("  \n"), 0o600); err != nil {
		t.Fatalf("write empty file: %v", err)
	}
	if _, err := Load(Source{Name: "github token", File: empty}); err == nil {
		t.Fatal("expected an error for an empty secret file")
	}

	if _, err := Load(Source{Name: "github token", File: filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Fatal("expected an error for a missing secret file")
	}
}
