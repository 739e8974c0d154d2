package postgres

import (
	"fmt"
	"strings"
	"time"

	"subsidy-finder/internal/repository"
)

// SubsidyQueryBuilder builds WHERE clauses for subsidy search in PostgreSQL.
// The same clause serves COUNT and SELECT queries. It uses numbered
// placeholders ($1, $2, ...) and plain LIKE: keyword search is case-sensitive
// by contract, matching how the upstream service behaved.
type SubsidyQueryBuilder struct{}

// NewSubsidyQueryBuilder creates a new query builder instance.
func NewSubsidyQueryBuilder() *SubsidyQueryBuilder {
	return &SubsidyQueryBuilder{}
}

// BuildWhereClause builds the WHERE clause and arguments for subsidy search.
// Only the filters actually supplied contribute conditions; all conditions
// are joined with AND. Returns an empty clause when no filter is set.
func (qb *SubsidyQueryBuilder) BuildWhereClause(filters repository.SubsidySearchFilters, today time.Time) (clause string, args []interface{}) {
	var conditions []string
	paramIndex := 1

	if filters.Keyword != "" {
		pattern := "%" + escapeLike(filters.Keyword) + "%"
		conditions = append(conditions, fmt.Sprintf(
			"(title LIKE $%d OR description LIKE $%d OR keywords LIKE $%d)",
			paramIndex, paramIndex, paramIndex))
		args = append(args, pattern)
		paramIndex++
	}

	if filters.Organization != "" {
		conditions = append(conditions, fmt.Sprintf("organization = $%d", paramIndex))
		args = append(args, filters.Organization)
		paramIndex++
	}

	if filters.Target != "" {
		conditions = append(conditions, fmt.Sprintf("target LIKE $%d", paramIndex))
		args = append(args, "%"+escapeLike(filters.Target)+"%")
		paramIndex++
	}

	if filters.ActiveOnly {
		conditions = append(conditions, fmt.Sprintf(
			"(application_end IS NULL OR application_end >= $%d)", paramIndex))
		args = append(args, today)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// escapeLike escapes the LIKE metacharacters in user-supplied search text so
// that "%" and "_" match literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
