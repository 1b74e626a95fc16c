package analyzer

import (
	"github.com/Vikasjoshi008/github-skill-analyzer/internal/ai"
	"github.com/Vikasjoshi008/github-skill-analyzer/internal/githubapi"
)

// buildEvidence projects at most max repositories into the compact
// records embedded in the model prompt. The listing arrives newest-first
// from upstream, so a prefix keeps the snapshot current while bounding
// the prompt size. The source slice is never mutated.
func buildEvidence(repos []githubapi.Repository, max int) []ai.RepoEvidence {
	if len(repos) > max {
		repos = repos[:max]
	}

	evidence := make([]ai.RepoEvidence, 0, len(repos))
	for _, r := range repos {
		evidence = append(evidence, ai.RepoEvidence{
			Name:        r.Name,
			Description: r.Description,
			Language:    r.Language,
			Topics:      r.Topics,
			Size:        r.Size,
		})
	}

	return evidence
}
