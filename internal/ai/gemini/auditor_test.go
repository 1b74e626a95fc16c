package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Vikasjoshi008/github-skill-analyzer/internal/ai"
)

type stubGenerator struct {
	response   string
	err        error
	lastSystem string
	lastPrompt string
}

func (s *stubGenerator) GenerateJSON(_ context.Context, system, prompt string) (string, error) {
	s.lastSystem = system
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func sampleRequest() *ai.Request {
	return &ai.Request{
		Handle:       "octocat",
		Bio:          "I build things",
		TopLanguages: []string{"Go", "TypeScript"},
		Repos: []ai.RepoEvidence{
			{Name: "service", Description: "an http service", Language: "Go", Topics: []string{"api"}, Size: 100},
		},
	}
}

func TestAuditorAudit(t *testing.T) {
	stub := &stubGenerator{response: `{
		"detected_role": "Backend Developer",
		"used_stack": ["Go", "Docker"],
		"missing_stack": ["Kubernetes"],
		"persona": "Pragmatic systems developer.",
		"pitch": "Solid Go engineer with production experience.",
		"skill_rating": 7.5
	}`}
	auditor := NewAuditor(stub, zap.NewNop(), 0)

	audit, err := auditor.Audit(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if audit.DetectedRole != "Backend Developer" {
		t.Fatalf("unexpected role: %s", audit.DetectedRole)
	}
	if len(audit.UsedStack) != 2 || audit.UsedStack[0] != "Go" {
		t.Fatalf("unexpected used stack: %v", audit.UsedStack)
	}
	if audit.SkillRating != 7.5 {
		t.Fatalf("unexpected skill rating: %v", audit.SkillRating)
	}
	if audit.MatchPercentage != nil {
		t.Fatalf("match percentage should be absent without a job description")
	}
	if audit.Fallback {
		t.Fatal("a parsed audit must not carry the fallback lineage")
	}

	if stub.lastSystem == "" {
		t.Fatal("expected a system instruction to be sent")
	}
	for _, fragment := range []string{"octocat", "I build things", "Go, TypeScript", `"service"`, "none"} {
		if !strings.Contains(stub.lastPrompt, fragment) {
			t.Fatalf("prompt is missing %q:\n%s", fragment, stub.lastPrompt)
		}
	}
}

func TestAuditorIncludesJobDescription(t *testing.T) {
	stub := &stubGenerator{response: `{
		"detected_role": "Backend Developer",
		"used_stack": ["Go"],
		"missing_stack": ["Terraform"],
		"persona": "p",
		"pitch": "p",
		"skill_rating": 6,
		"match_percentage": 72,
		"critical_gaps": "No infrastructure-as-code exposure.",
		"missing_project_idea": ["Provision a cluster with Terraform", "Build a CI pipeline"]
	}`}
	auditor := NewAuditor(stub, zap.NewNop(), 0)

	req := sampleRequest()
	req.JobDescription = "Senior platform engineer, Terraform required"

	audit, err := auditor.Audit(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(stub.lastPrompt, "Terraform required") {
		t.Fatalf("job description missing from prompt:\n%s", stub.lastPrompt)
	}

	if audit.MatchPercentage == nil || *audit.MatchPercentage != 72 {
		t.Fatalf("unexpected match percentage: %v", audit.MatchPercentage)
	}
	if audit.CriticalGaps == "" {
		t.Fatal("expected critical gaps to be populated")
	}
	if len(audit.MissingProjectIdea) != 2 {
		t.Fatalf("expected two project briefs, got %v", audit.MissingProjectIdea)
	}
}

func TestAuditorTolerantParsing(t *testing.T) {
	// Fenced output and string-typed numbers still parse.
	stub := &stubGenerator{response: "```json\n" + `{
		"detected_role": "Frontend Developer",
		"used_stack": "React, TypeScript",
		"missing_stack": [],
		"persona": "p",
		"pitch": "p",
		"skill_rating": "8"
	}` + "\n```"}
	auditor := NewAuditor(stub, zap.NewNop(), 0)

	audit, err := auditor.Audit(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if audit.SkillRating != 8 {
		t.Fatalf("unexpected skill rating: %v", audit.SkillRating)
	}
	if len(audit.UsedStack) != 2 || audit.UsedStack[1] != "TypeScript" {
		t.Fatalf("unexpected used stack: %v", audit.UsedStack)
	}
}

func TestAuditorMalformedResponse(t *testing.T) {
	stub := &stubGenerator{response: "I cannot produce JSON today."}
	auditor := NewAuditor(stub, zap.NewNop(), 0)

	if _, err := auditor.Audit(context.Background(), sampleRequest()); err == nil {
		t.Fatal("expected a parse error for a non-JSON response")
	}
}

func TestAuditorGeneratorError(t *testing.T) {
	stub := &stubGenerator{err: errors.New("deadline exceeded")}
	auditor := NewAuditor(stub, zap.NewNop(), 0)

	if _, err := auditor.Audit(context.Background(), sampleRequest()); err == nil {
		t.Fatal("expected the generator error to propagate to the caller")
	}
}

func TestAuditorNilRequest(t *testing.T) {
	auditor := NewAuditor(&stubGenerator{}, zap.NewNop(), 0)

	if _, err := auditor.Audit(context.Background(), nil); err == nil {
		t.Fatal("expected an error for a nil request")
	}
}
