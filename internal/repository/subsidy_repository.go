package repository

import (
	"context"
	"time"

	"subsidy-finder/internal/domain/entity"
)

// SubsidySearchFilters contains optional filters for subsidy search.
// Zero-valued fields are not applied; supplied filters combine as a
// conjunction.
type SubsidySearchFilters struct {
	Keyword      string // substring of title, description, or keywords (case-sensitive)
	Organization string // exact match on the issuing body
	Target       string // substring of the eligible-applicant text
	ActiveOnly   bool   // only records whose application window is still open
}

type SubsidyRepository interface {
	List(ctx context.Context) ([]*entity.Subsidy, error)
	// ListPaginated retrieves subsidies ordered by updated_at DESC using
	// LIMIT/OFFSET.
	ListPaginated(ctx context.Context, offset, limit int) ([]*entity.Subsidy, error)
	// Count returns the total number of stored subsidies, used for
	// pagination metadata and stats.
	Count(ctx context.Context) (int64, error)
	Get(ctx context.Context, id int64) (*entity.Subsidy, error)
	// FindBySourceURL performs the natural-key point lookup used by
	// reconciliation. Returns (nil, nil) when no record holds the key.
	FindBySourceURL(ctx context.Context, source, url string) (*entity.Subsidy, error)
	// Search returns subsidies satisfying all supplied filters. The today
	// argument anchors the ActiveOnly cutoff; callers pass the current
	// calendar date (entity.DateOf), not a raw clock reading, because the
	// store compares it against a DATE column.
	Search(ctx context.Context, filters SubsidySearchFilters, today time.Time) ([]*entity.Subsidy, error)
	// Create inserts a new record and assigns the generated ID to s.
	Create(ctx context.Context, s *entity.Subsidy) error
	Update(ctx context.Context, s *entity.Subsidy) error
	// CountActive counts records whose application_end is null or >= today.
	CountActive(ctx context.Context, today time.Time) (int64, error)
	// CountByOrganization returns record counts grouped by exact organization value.
	CountByOrganization(ctx context.Context) (map[string]int64, error)
}
