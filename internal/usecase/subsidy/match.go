package subsidy

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"subsidy-finder/internal/domain/entity"
)

// maxMatchResults caps how many scored records a match returns.
const maxMatchResults = 20

// MatchProfile describes the applicant looking for subsidies.
type MatchProfile struct {
	BusinessType string   // free text describing the line of business
	Prefecture   string   // where the applicant operates
	TargetType   string   // what kind of entity the applicant is
	Keywords     []string // free-text interests
}

// ParseKeywords splits a comma-separated keyword list, trimming whitespace
// and dropping empty entries.
func ParseKeywords(raw string) []string {
	parts := strings.Split(raw, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if kw := strings.TrimSpace(p); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

// ScoredSubsidy pairs a subsidy with its match score.
type ScoredSubsidy struct {
	Subsidy *entity.Subsidy
	Score   int
}

// Match scores every stored subsidy against the profile and returns the top
// matches, best first. Records scoring zero are excluded; ties keep store
// order.
func (s *Service) Match(ctx context.Context, profile MatchProfile) ([]ScoredSubsidy, error) {
	subsidies, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("match subsidies: %w", err)
	}

	scored := make([]ScoredSubsidy, 0, len(subsidies))
	for _, subsidy := range subsidies {
		score := scoreSubsidy(subsidy, profile)
		if score == 0 {
			continue
		}
		scored = append(scored, ScoredSubsidy{Subsidy: subsidy, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > maxMatchResults {
		scored = scored[:maxMatchResults]
	}
	return scored, nil
}

// scoreSubsidy computes the weighted match score:
//
//	都道府県が交付団体名に含まれる  +3
//	対象種別が対象条件に含まれる    +5
//	業種が説明文に含まれる          +3
//	キーワードごと: タイトル一致 +2 / 説明文のみ +1 / keywords欄のみ +1
//
// Keyword hits are mutually exclusive per keyword; the first matching field
// wins.
func scoreSubsidy(subsidy *entity.Subsidy, profile MatchProfile) int {
	score := 0

	if profile.Prefecture != "" && strings.Contains(subsidy.Organization, profile.Prefecture) {
		score += 3
	}
	if profile.TargetType != "" && strings.Contains(subsidy.Target, profile.TargetType) {
		score += 5
	}
	if profile.BusinessType != "" && strings.Contains(subsidy.Description, profile.BusinessType) {
		score += 3
	}

	for _, kw := range profile.Keywords {
		switch {
		case strings.Contains(subsidy.Title, kw):
			score += 2
		case strings.Contains(subsidy.Description, kw):
			score++
		case strings.Contains(subsidy.Keywords, kw):
			score++
		}
	}

	return score
}
