package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"subsidy-finder/internal/repository"
)

func TestBuildWhereClause_Empty(t *testing.T) {
	qb := NewSubsidyQueryBuilder()
	clause, args := qb.BuildWhereClause(repository.SubsidySearchFilters{}, time.Now())
	assert.Empty(t, clause)
	assert.Empty(t, args)
}

func TestBuildWhereClause_AllFilters(t *testing.T) {
	qb := NewSubsidyQueryBuilder()
	today := time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC)

	clause, args := qb.BuildWhereClause(repository.SubsidySearchFilters{
		Keyword:      "IT導入",
		Organization: "国",
		Target:       "中小企業",
		ActiveOnly:   true,
	}, today)

	assert.Equal(t,
		"WHERE (title LIKE $1 OR description LIKE $1 OR keywords LIKE $1) "+
			"AND organization = $2 AND target LIKE $3 "+
			"AND (application_end IS NULL OR application_end >= $4)",
		clause)
	assert.Equal(t, []interface{}{"%IT導入%", "国", "%中小企業%", today}, args)
}

func TestBuildWhereClause_SingleFilter(t *testing.T) {
	qb := NewSubsidyQueryBuilder()

	clause, args := qb.BuildWhereClause(repository.SubsidySearchFilters{
		Organization: "東京都",
	}, time.Now())

	assert.Equal(t, "WHERE organization = $1", clause)
	assert.Equal(t, []interface{}{"東京都"}, args)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%補助`, escapeLike("100%補助"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c\\d`, escapeLike(`c\d`))
}
