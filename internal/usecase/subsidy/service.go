package subsidy

import (
	"context"
	"fmt"
	"time"

	"subsidy-finder/internal/common/pagination"
	"subsidy-finder/internal/domain/entity"
	"subsidy-finder/internal/repository"
)

// Service provides subsidy query use cases.
// It handles business logic for read operations and delegates persistence to
// the repository.
type Service struct {
	Repo repository.SubsidyRepository
}

// NewService creates a subsidy query Service.
func NewService(repo repository.SubsidyRepository) *Service {
	return &Service{Repo: repo}
}

// PaginatedResult represents one page of subsidies with pagination metadata.
type PaginatedResult struct {
	Data       []*entity.Subsidy
	Pagination pagination.Metadata
}

// List retrieves all subsidies from the repository.
func (s *Service) List(ctx context.Context) ([]*entity.Subsidy, error) {
	subsidies, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subsidies: %w", err)
	}
	return subsidies, nil
}

// ListPaginated retrieves one page of subsidies ordered by recency.
func (s *Service) ListPaginated(ctx context.Context, params pagination.Params) (*PaginatedResult, error) {
	total, err := s.Repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count subsidies: %w", err)
	}

	subsidies, err := s.Repo.ListPaginated(ctx, params.Offset(), params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list subsidies paginated: %w", err)
	}

	return &PaginatedResult{
		Data:       subsidies,
		Pagination: pagination.NewMetadata(params, total),
	}, nil
}

// Get retrieves a single subsidy by its ID.
// Returns ErrInvalidSubsidyID if the ID is not positive.
// Returns ErrSubsidyNotFound if no record exists.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Subsidy, error) {
	if id <= 0 {
		return nil, ErrInvalidSubsidyID
	}

	subsidy, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get subsidy: %w", err)
	}
	if subsidy == nil {
		return nil, ErrSubsidyNotFound
	}
	return subsidy, nil
}

// Search finds subsidies satisfying every supplied filter. The keyword
// filter matches as a case-sensitive substring against title, description,
// or keywords; organization matches exactly; target matches as a substring.
func (s *Service) Search(ctx context.Context, filters repository.SubsidySearchFilters) ([]*entity.Subsidy, error) {
	subsidies, err := s.Repo.Search(ctx, filters, entity.DateOf(time.Now()))
	if err != nil {
		return nil, fmt.Errorf("search subsidies: %w", err)
	}
	return subsidies, nil
}

// Stats holds store-level aggregate counts.
type Stats struct {
	TotalCount    int64
	ActiveCount   int64
	Organizations map[string]int64
}

// GetStats returns the total count, the count of records still open for
// applications, and per-organization counts.
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	total, err := s.Repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count subsidies: %w", err)
	}

	active, err := s.Repo.CountActive(ctx, entity.DateOf(time.Now()))
	if err != nil {
		return nil, fmt.Errorf("count active subsidies: %w", err)
	}

	orgs, err := s.Repo.CountByOrganization(ctx)
	if err != nil {
		return nil, fmt.Errorf("count subsidies by organization: %w", err)
	}

	return &Stats{
		TotalCount:    total,
		ActiveCount:   active,
		Organizations: orgs,
	}, nil
}
