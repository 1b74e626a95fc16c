package stats

import (
	"sort"

	"github.com/Vikasjoshi008/github-skill-analyzer/internal/githubapi"
)

// Aggregate holds the totals reduced from one repository listing.
type Aggregate struct {
	TotalStars       int
	TotalForks       int
	SubstantiveRepos int
	languageCounts   map[string]int
	languageOrder    []string
}

// LanguageCount is one entry of the language distribution.
type LanguageCount struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// Weights are the scoring constants. Product iterations shipped both
// (2,2) and (5,2), so they stay configurable rather than baked in.
type Weights struct {
	Star int `mapstructure:"star-weight"`
	Repo int `mapstructure:"repo-weight"`
}

// DefaultWeights returns the (2,2) scoring pair.
func DefaultWeights() Weights {
	return Weights{Star: 2, Repo: 2}
}

const maxScore = 100

// New reduces the repository listing in a single pass: star and fork
// totals, the substantive repository count (non-zero size, not a fork)
// and per-language occurrence counts. The input order is preserved for
// tie-breaking in Languages.
func New(repos []githubapi.Repository) *Aggregate {
	agg := &Aggregate{languageCounts: make(map[string]int)}

	for _, r := range repos {
		agg.TotalStars += r.Stars
		agg.TotalForks += r.Forks

		if r.Size > 0 && !r.Fork {
			agg.SubstantiveRepos++
		}

		if r.Language == "" {
			continue
		}
		if _, seen := agg.languageCounts[r.Language]; !seen {
			agg.languageOrder = append(agg.languageOrder, r.Language)
		}
		agg.languageCounts[r.Language]++
	}

	return agg
}

// Languages returns the distribution ordered by descending count, ties
// resolved by first occurrence in the repository listing.
func (a *Aggregate) Languages() []LanguageCount {
	langs := make([]LanguageCount, 0, len(a.languageOrder))
	for _, name := range a.languageOrder {
		langs = append(langs, LanguageCount{Language: name, Count: a.languageCounts[name]})
	}

	sort.SliceStable(langs, func(i, j int) bool {
		return langs[i].Count > langs[j].Count
	})

	return langs
}

// TopLanguages returns up to n language names from the sorted distribution.
func (a *Aggregate) TopLanguages(n int) []string {
	langs := a.Languages()
	if len(langs) > n {
		langs = langs[:n]
	}
	names := make([]string, 0, len(langs))
	for _, l := range langs {
		names = append(names, l.Language)
	}
	return names
}

// Score maps the aggregate to the bounded skill score. The cap at 100 is
// mandatory; the floor at 0 guards against negative upstream counts.
func (a *Aggregate) Score(w Weights) int {
	score := a.TotalStars*w.Star + a.SubstantiveRepos*w.Repo
	if score > maxScore {
		return maxScore
	}
	if score < 0 {
		return 0
	}
	return score
}
