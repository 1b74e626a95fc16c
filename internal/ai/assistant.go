package ai

import "context"

const (
	// FallbackRole labels an audit produced without a model call.
	FallbackRole = "Software Developer"
	// FallbackMissingStack is the sentinel for an unavailable gap analysis.
	FallbackMissingStack = "Unable to analyze"

	fallbackPersona = "A developer with a public code portfolio."
	fallbackPitch   = "Check out the repositories for a closer look at this developer's work."
)

// RepoEvidence is one projected repository included in the audit prompt.
type RepoEvidence struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Language    string   `json:"language,omitempty"`
	Topics      []string `json:"topics,omitempty"`
	Size        int      `json:"size"`
}

// Request is the evidence package for one audit call.
type Request struct {
	Handle         string
	Bio            string
	TopLanguages   []string
	Repos          []RepoEvidence
	JobDescription string
}

// Audit is the qualitative assessment of a profile. The same shape is
// used whether it came from the model or from the deterministic
// fallback; Fallback records the lineage.
type Audit struct {
	DetectedRole       string   `json:"detected_role"`
	UsedStack          []string `json:"used_stack"`
	MissingStack       []string `json:"missing_stack"`
	Persona            string   `json:"persona"`
	Pitch              string   `json:"pitch"`
	SkillRating        float64  `json:"skill_rating"`
	MatchPercentage    *float64 `json:"match_percentage,omitempty"`
	CriticalGaps       string   `json:"critical_gaps,omitempty"`
	MissingProjectIdea []string `json:"missing_project_idea,omitempty"`

	Fallback bool `json:"-"`
}

// Auditor produces an Audit from the evidence package. Implementations
// make at most one model call per request.
type Auditor interface {
	Audit(ctx context.Context, req *Request) (*Audit, error)
}

// FallbackAudit builds the deterministic substitute used when the model
// call fails or returns something unparsable. The used stack is seeded
// from the top languages so the record stays informative.
func FallbackAudit(topLanguages []string) *Audit {
	used := topLanguages
	if len(used) > 3 {
		used = used[:3]
	}
	if used == nil {
		used = []string{}
	}

	return &Audit{
		DetectedRole: FallbackRole,
		UsedStack:    used,
		MissingStack: []string{FallbackMissingStack},
		Persona:      fallbackPersona,
		Pitch:        fallbackPitch,
		Fallback:     true,
	}
}
