// Package subsidy provides HTTP handlers for subsidy query endpoints.
// It includes handlers for listing, detail, search, profile matching, and
// store statistics.
package subsidy

import (
	"time"

	"subsidy-finder/internal/domain/entity"
)

// DTO represents the JSON structure for subsidy data transfer.
// Application dates are serialized as ISO-8601 calendar dates; is_active is
// derived from the application window at serialization time.
type DTO struct {
	ID               int64     `json:"id" example:"1"`
	Title            string    `json:"title" example:"小規模事業者持続化補助金"`
	Description      string    `json:"description" example:"販路開拓の取り組みを支援します"`
	Organization     string    `json:"organization" example:"国"`
	Target           string    `json:"target" example:"小規模事業者"`
	Amount           string    `json:"amount" example:"上限50万円、補助率2/3"`
	ApplicationStart *string   `json:"application_start" example:"2026-04-01"`
	ApplicationEnd   *string   `json:"application_end" example:"2026-09-30"`
	URL              string    `json:"url" example:"https://example.go.jp/subsidies/1"`
	Keywords         string    `json:"keywords" example:"販路開拓,持続化"`
	Source           string    `json:"source" example:"api-sourced"`
	IsActive         bool      `json:"is_active" example:"true"`
	CreatedAt        time.Time `json:"created_at" example:"2026-04-01T09:00:00Z"`
	UpdatedAt        time.Time `json:"updated_at" example:"2026-04-01T09:00:00Z"`
}

// ScoredDTO is a DTO plus the relevance score assigned by profile matching.
type ScoredDTO struct {
	DTO
	Score int `json:"score" example:"8"`
}

func toDTO(e *entity.Subsidy, now time.Time) DTO {
	return DTO{
		ID:               e.ID,
		Title:            e.Title,
		Description:      e.Description,
		Organization:     e.Organization,
		Target:           e.Target,
		Amount:           e.Amount,
		ApplicationStart: formatDate(e.ApplicationStart),
		ApplicationEnd:   formatDate(e.ApplicationEnd),
		URL:              e.URL,
		Keywords:         e.Keywords,
		Source:           e.Source,
		IsActive:         e.IsActive(now),
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func toDTOs(list []*entity.Subsidy, now time.Time) []DTO {
	out := make([]DTO, 0, len(list))
	for _, e := range list {
		out = append(out, toDTO(e, now))
	}
	return out
}

// formatDate renders a calendar date; nil stays nil so JSON emits null.
func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
