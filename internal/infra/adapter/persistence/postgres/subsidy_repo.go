// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"subsidy-finder/internal/domain/entity"
	"subsidy-finder/internal/repository"
)

const subsidyColumns = `id, title, description, organization, target, amount,
application_start, application_end, url, keywords, source, created_at, updated_at`

type SubsidyRepo struct {
	db           *sql.DB
	queryBuilder *SubsidyQueryBuilder
}

func NewSubsidyRepo(db *sql.DB) repository.SubsidyRepository {
	return &SubsidyRepo{
		db:           db,
		queryBuilder: NewSubsidyQueryBuilder(),
	}
}

// scanSubsidy scans one row into an entity, converting the nullable date
// columns into pointers.
func scanSubsidy(scanner interface{ Scan(...any) error }) (*entity.Subsidy, error) {
	var s entity.Subsidy
	var start, end sql.NullTime
	if err := scanner.Scan(&s.ID, &s.Title, &s.Description, &s.Organization,
		&s.Target, &s.Amount, &start, &end,
		&s.URL, &s.Keywords, &s.Source, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if start.Valid {
		t := start.Time
		s.ApplicationStart = &t
	}
	if end.Valid {
		t := end.Time
		s.ApplicationEnd = &t
	}
	return &s, nil
}

func (repo *SubsidyRepo) collect(rows *sql.Rows, capHint int) ([]*entity.Subsidy, error) {
	defer func() { _ = rows.Close() }()

	subsidies := make([]*entity.Subsidy, 0, capHint)
	for rows.Next() {
		s, err := scanSubsidy(rows)
		if err != nil {
			return nil, fmt.Errorf("Scan: %w", err)
		}
		subsidies = append(subsidies, s)
	}
	return subsidies, rows.Err()
}

func (repo *SubsidyRepo) List(ctx context.Context) ([]*entity.Subsidy, error) {
	query := `
SELECT ` + subsidyColumns + `
FROM subsidies
ORDER BY updated_at DESC, id`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return repo.collect(rows, 100)
}

func (repo *SubsidyRepo) ListPaginated(ctx context.Context, offset, limit int) ([]*entity.Subsidy, error) {
	query := `
SELECT ` + subsidyColumns + `
FROM subsidies
ORDER BY updated_at DESC, id
LIMIT $1 OFFSET $2`
	rows, err := repo.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ListPaginated: %w", err)
	}
	return repo.collect(rows, limit)
}

func (repo *SubsidyRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM subsidies`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

func (repo *SubsidyRepo) Get(ctx context.Context, id int64) (*entity.Subsidy, error) {
	query := `
SELECT ` + subsidyColumns + `
FROM subsidies
WHERE id = $1
LIMIT 1`
	s, err := scanSubsidy(repo.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return s, nil
}

// FindBySourceURL is the natural-key lookup used by reconciliation.
// The UNIQUE(source, url) constraint guarantees at most one row.
func (repo *SubsidyRepo) FindBySourceURL(ctx context.Context, source, url string) (*entity.Subsidy, error) {
	query := `
SELECT ` + subsidyColumns + `
FROM subsidies
WHERE source = $1 AND url = $2
LIMIT 1`
	s, err := scanSubsidy(repo.db.QueryRowContext(ctx, query, source, url))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindBySourceURL: %w", err)
	}
	return s, nil
}

func (repo *SubsidyRepo) Search(ctx context.Context, filters repository.SubsidySearchFilters, today time.Time) ([]*entity.Subsidy, error) {
	whereClause, args := repo.queryBuilder.BuildWhereClause(filters, today)

	query := `
SELECT ` + subsidyColumns + `
FROM subsidies ` + whereClause + `
ORDER BY updated_at DESC, id`

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("Search: %w", err)
	}
	return repo.collect(rows, 100)
}

func (repo *SubsidyRepo) Create(ctx context.Context, s *entity.Subsidy) error {
	const query = `
INSERT INTO subsidies
       (title, description, organization, target, amount,
        application_start, application_end, url, keywords, source,
        created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		s.Title, s.Description, s.Organization, s.Target, s.Amount,
		nullableDate(s.ApplicationStart), nullableDate(s.ApplicationEnd),
		s.URL, s.Keywords, s.Source, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *SubsidyRepo) Update(ctx context.Context, s *entity.Subsidy) error {
	const query = `
UPDATE subsidies SET
       title             = $1,
       description       = $2,
       organization      = $3,
       target            = $4,
       amount            = $5,
       application_start = $6,
       application_end   = $7,
       url               = $8,
       keywords          = $9,
       source            = $10,
       updated_at        = $11
WHERE id = $12`
	res, err := repo.db.ExecContext(ctx, query,
		s.Title, s.Description, s.Organization, s.Target, s.Amount,
		nullableDate(s.ApplicationStart), nullableDate(s.ApplicationEnd),
		s.URL, s.Keywords, s.Source, s.UpdatedAt, s.ID,
	)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Update: no rows affected")
	}
	return nil
}

func (repo *SubsidyRepo) CountActive(ctx context.Context, today time.Time) (int64, error) {
	const query = `
SELECT COUNT(*) FROM subsidies
WHERE application_end IS NULL OR application_end >= $1`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query, today).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountActive: %w", err)
	}
	return count, nil
}

func (repo *SubsidyRepo) CountByOrganization(ctx context.Context) (map[string]int64, error) {
	const query = `
SELECT organization, COUNT(*) FROM subsidies
GROUP BY organization`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("CountByOrganization: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int64)
	for rows.Next() {
		var org string
		var n int64
		if err := rows.Scan(&org, &n); err != nil {
			return nil, fmt.Errorf("CountByOrganization: Scan: %w", err)
		}
		counts[org] = n
	}
	return counts, rows.Err()
}

// nullableDate maps a nil date pointer to SQL NULL.
func nullableDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
