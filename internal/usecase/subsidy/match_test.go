package subsidy

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subsidy-finder/internal/domain/entity"
)

func TestScoreSubsidy(t *testing.T) {
	record := &entity.Subsidy{
		Title:        "創業支援補助金",
		Description:  "飲食業の新規開業を支援します",
		Organization: "東京都中小企業振興公社",
		Target:       "中小企業・小規模事業者",
		Keywords:     "開業,店舗",
	}

	tests := []struct {
		name    string
		profile MatchProfile
		want    int
	}{
		{
			name:    "no criteria scores zero",
			profile: MatchProfile{},
			want:    0,
		},
		{
			name:    "prefecture in organization",
			profile: MatchProfile{Prefecture: "東京都"},
			want:    3,
		},
		{
			name:    "target type in target",
			profile: MatchProfile{TargetType: "小規模"},
			want:    5,
		},
		{
			name:    "business type in description",
			profile: MatchProfile{BusinessType: "飲食"},
			want:    3,
		},
		{
			name:    "keyword in title scores 2",
			profile: MatchProfile{Keywords: []string{"創業"}},
			want:    2,
		},
		{
			name:    "keyword only in description scores 1",
			profile: MatchProfile{Keywords: []string{"開業を支援"}},
			want:    1,
		},
		{
			name:    "keyword only in keywords field scores 1",
			profile: MatchProfile{Keywords: []string{"店舗"}},
			want:    1,
		},
		{
			name:    "keyword nowhere scores 0",
			profile: MatchProfile{Keywords: []string{"宇宙"}},
			want:    0,
		},
		{
			// タイトル一致したキーワードは説明文やkeywords欄では再加点されない
			name:    "keyword hit is first-match-only",
			profile: MatchProfile{Keywords: []string{"開業"}},
			want:    1,
		},
		{
			name: "all criteria accumulate",
			profile: MatchProfile{
				BusinessType: "飲食",
				Prefecture:   "東京都",
				TargetType:   "中小企業",
				Keywords:     []string{"創業", "店舗"},
			},
			want: 3 + 5 + 3 + 2 + 1,
		},
		{
			name:    "unmatched prefecture adds nothing",
			profile: MatchProfile{Prefecture: "大阪府", TargetType: "中小企業"},
			want:    5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scoreSubsidy(record, tt.profile))
		})
	}
}

func TestMatch_ExcludesZeroScores(t *testing.T) {
	repo := &fakeRepo{subsidies: []*entity.Subsidy{
		{ID: 1, Title: "創業補助金", Organization: "国"},
		{ID: 2, Title: "無関係な補助金", Organization: "国"},
	}}
	svc := NewService(repo)

	matches, err := svc.Match(context.Background(), MatchProfile{Keywords: []string{"創業"}})
	require.NoError(t, err)

	require.Len(t, matches, 1)
	assert.Equal(t, int64(1), matches[0].Subsidy.ID)
	assert.Equal(t, 2, matches[0].Score)
}

func TestMatch_SortsByScoreDescending(t *testing.T) {
	repo := &fakeRepo{subsidies: []*entity.Subsidy{
		{ID: 1, Description: "創業を支援", Organization: "国"},       // +1
		{ID: 2, Title: "創業補助金", Organization: "東京都"},          // +2+3
		{ID: 3, Title: "創業助成金", Organization: "国"},             // +2
	}}
	svc := NewService(repo)

	matches, err := svc.Match(context.Background(), MatchProfile{
		Prefecture: "東京都",
		Keywords:   []string{"創業"},
	})
	require.NoError(t, err)

	require.Len(t, matches, 3)
	assert.Equal(t, int64(2), matches[0].Subsidy.ID)
	assert.Equal(t, 5, matches[0].Score)
	assert.Equal(t, int64(3), matches[1].Subsidy.ID)
	assert.Equal(t, int64(1), matches[2].Subsidy.ID)
}

func TestMatch_TiesKeepStoreOrder(t *testing.T) {
	repo := &fakeRepo{subsidies: []*entity.Subsidy{
		{ID: 10, Title: "創業A"},
		{ID: 20, Title: "創業B"},
		{ID: 30, Title: "創業C"},
	}}
	svc := NewService(repo)

	matches, err := svc.Match(context.Background(), MatchProfile{Keywords: []string{"創業"}})
	require.NoError(t, err)

	require.Len(t, matches, 3)
	assert.Equal(t, int64(10), matches[0].Subsidy.ID)
	assert.Equal(t, int64(20), matches[1].Subsidy.ID)
	assert.Equal(t, int64(30), matches[2].Subsidy.ID)
}

func TestMatch_TruncatesToTop20(t *testing.T) {
	records := make([]*entity.Subsidy, 0, 25)
	for i := 0; i < 25; i++ {
		records = append(records, &entity.Subsidy{
			ID:    int64(i + 1),
			Title: fmt.Sprintf("創業補助金 %d", i+1),
		})
	}
	svc := NewService(&fakeRepo{subsidies: records})

	matches, err := svc.Match(context.Background(), MatchProfile{Keywords: []string{"創業"}})
	require.NoError(t, err)

	require.Len(t, matches, 20)
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Score, matches[i].Score)
	}
}

func TestParseKeywords(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"創業,IT,製造", []string{"創業", "IT", "製造"}},
		{" 創業 , IT ", []string{"創業", "IT"}},
		{"創業,,IT", []string{"創業", "IT"}},
		{"", nil},
		{" , ", nil},
	}

	for _, tt := range tests {
		got := ParseKeywords(tt.raw)
		if tt.want == nil {
			assert.Empty(t, got, tt.raw)
			continue
		}
		assert.Equal(t, tt.want, got, tt.raw)
	}
}
