package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/Vikasjoshi008/github-skill-analyzer/internal/ai"
	"github.com/Vikasjoshi008/github-skill-analyzer/internal/logger"
	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateJSON(ctx context.Context, system, prompt string) (string, error)
}

// Auditor turns a profile evidence package into a qualitative audit via
// a single Gemini call. It never retries.
type Auditor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

const systemInstruction = `You are a technical recruiter's assistant reviewing a GitHub profile.
Based only on the provided evidence, respond with a single JSON object with these keys:
"detected_role" (string, the developer role the evidence suggests),
"used_stack" (array of strings, technologies visibly used),
"missing_stack" (array of strings, adjacent technologies notably absent),
"persona" (string, one sentence describing the developer),
"pitch" (string, a short recruiter pitch),
"skill_rating" (number between 0 and 10).
If a job description is provided, also include:
"match_percentage" (number between 0 and 100),
"critical_gaps" (string, the most important gaps versus the job description),
"missing_project_idea" (array of exactly two strings, project briefs that would close the gaps).
Return only the JSON object, no commentary.`

func NewAuditor(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Auditor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Auditor{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Audit builds the prompt from the evidence package, performs one model
// call and parses the response. Callers are expected to substitute their
// own fallback when an error is returned.
func (a *Auditor) Audit(ctx context.Context, req *ai.Request) (*ai.Audit, error) {
	if req == nil {
		return nil, fmt.Errorf("audit request is required")
	}

	reposJSON, err := json.MarshalIndent(req.Repos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal evidence payload: %w", err)
	}

	prompt := buildPrompt(req, string(reposJSON))

	a.logger.Debug("gemini audit request",
		zap.String("handle", req.Handle),
		zap.Int("evidence_repos", len(req.Repos)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateJSON(ctx, systemInstruction, prompt)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("gemini audit response",
		zap.String("handle", req.Handle),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, a.maxLogLen)),
	)

	return parseAudit(raw)
}

func buildPrompt(req *ai.Request, reposJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Username: {{HANDLE}}\nBio: {{BIO}}\nLanguages: {{TOP_LANGUAGES}}\nRepositories:\n{{REPOS_JSON}}\nJob description: {{JOB_DESCRIPTION}}\n\nJSON Response:"
	}

	bio := strings.TrimSpace(req.Bio)
	if bio == "" {
		bio = "none"
	}

	langs := strings.Join(req.TopLanguages, ", ")
	if langs == "" {
		langs = "none detected"
	}

	job := strings.TrimSpace(req.JobDescription)
	if job == "" {
		job = "none"
	}

	prompt := strings.ReplaceAll(template, "{{HANDLE}}", req.Handle)
	prompt = strings.ReplaceAll(prompt, "{{BIO}}", bio)
	prompt = strings.ReplaceAll(prompt, "{{TOP_LANGUAGES}}", langs)
	prompt = strings.ReplaceAll(prompt, "{{REPOS_JSON}}", reposJSON)
	prompt = strings.ReplaceAll(prompt, "{{JOB_DESCRIPTION}}", job)

	return prompt
}

func parseAudit(raw string) (*ai.Audit, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	audit := &ai.Audit{
		DetectedRole: coerceString(data["detected_role"]),
		UsedStack:    coerceStringSlice(data["used_stack"]),
		MissingStack: coerceStringSlice(data["missing_stack"]),
		Persona:      coerceString(data["persona"]),
		Pitch:        coerceString(data["pitch"]),
	}

	if rating := coerceFloat(data["skill_rating"]); !math.IsNaN(rating) {
		audit.SkillRating = rating
	}

	if _, ok := data["match_percentage"]; ok {
		if pct := coerceFloat(data["match_percentage"]); !math.IsNaN(pct) {
			audit.MatchPercentage = &pct
		}
	}

	audit.CriticalGaps = coerceString(data["critical_gaps"])
	audit.MissingProjectIdea = coerceStringSlice(data["missing_project_idea"])

	return audit, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}

func coerceStringSlice(v any) []string {
	switch val := v.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := coerceString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return val
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return nil
		}
		parts := strings.Split(trimmed, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	default:
		return nil
	}
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}
