package analyzer

import (
	"github.com/Vikasjoshi008/github-skill-analyzer/internal/ai"
	"github.com/Vikasjoshi008/github-skill-analyzer/internal/githubapi"
	"github.com/Vikasjoshi008/github-skill-analyzer/internal/stats"
)

// Result is the assembled record returned to clients.
type Result struct {
	Profile    ProfileSummary        `json:"profile"`
	Stats      StatsSummary          `json:"stats"`
	Languages  []stats.LanguageCount `json:"languages"`
	AIAnalysis *ai.Audit             `json:"aiAnalysis"`
}

// ProfileSummary is the subset of profile fields exposed to clients.
// Follower/following breakdown beyond followers and the timestamps are
// deliberately omitted from the public contract.
type ProfileSummary struct {
	Username    string `json:"username"`
	Name        string `json:"name"`
	Avatar      string `json:"avatar"`
	Bio         string `json:"bio"`
	Followers   int    `json:"followers"`
	PublicRepos int    `json:"public_repos"`
}

type StatsSummary struct {
	TotalStars int `json:"total_stars"`
	TotalForks int `json:"total_forks"`
	SkillScore int `json:"skill_score"`
}

func assemble(profile *githubapi.Profile, agg *stats.Aggregate, score int, languages []stats.LanguageCount, audit *ai.Audit) *Result {
	name := profile.Name
	if name == "" {
		name = profile.Login
	}

	if languages == nil {
		languages = []stats.LanguageCount{}
	}

	return &Result{
		Profile: ProfileSummary{
			Username:    profile.Login,
			Name:        name,
			Avatar:      profile.AvatarURL,
			Bio:         profile.Bio,
			Followers:   profile.Followers,
			PublicRepos: profile.PublicRepos,
		},
		Stats: StatsSummary{
			TotalStars: agg.TotalStars,
			TotalForks: agg.TotalForks,
			SkillScore: score,
		},
		Languages:  languages,
		AIAnalysis: audit,
	}
}
