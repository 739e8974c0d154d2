package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"subsidy-finder/internal/domain/entity"
)

// demoDataset is the fixed fallback dataset loaded when ingestion leaves the
// store empty. Titles carry a「サンプル」marker so the records are never
// mistaken for real listings.
func demoDataset() []*entity.Subsidy {
	end2099 := time.Date(2099, 12, 31, 0, 0, 0, 0, time.UTC)
	endPast := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	return []*entity.Subsidy{
		{
			Title:          "（サンプル）小規模事業者持続化補助金",
			Description:    "小規模事業者の販路開拓や生産性向上の取り組みを支援します。",
			Organization:   "国",
			Target:         "小規模事業者",
			Amount:         "最大200万円",
			ApplicationEnd: &end2099,
			URL:            "https://example.com/sample/jizokuka",
			Keywords:       "販路開拓,持続化,小規模",
			Source:         entity.SourceAPI,
		},
		{
			Title:          "（サンプル）ものづくり・商業・サービス補助金",
			Description:    "革新的な製品・サービス開発または生産プロセス改善のための設備投資を支援します。",
			Organization:   "国",
			Target:         "中小企業",
			Amount:         "最大1250万円",
			ApplicationEnd: &end2099,
			URL:            "https://example.com/sample/monozukuri",
			Keywords:       "設備投資,製造,開発",
			Source:         entity.SourceAPI,
		},
		{
			Title:          "（サンプル）IT導入補助金",
			Description:    "業務効率化やDX推進のためのITツール導入費用を補助します。",
			Organization:   "国",
			Target:         "中小企業・小規模事業者",
			Amount:         "最大450万円",
			ApplicationEnd: &end2099,
			URL:            "https://example.com/sample/it-dounyuu",
			Keywords:       "IT,DX,業務効率化",
			Source:         entity.SourceAPI,
		},
		{
			Title:        "（サンプル）創業助成事業",
			Description:  "都内で創業予定または創業から間もない中小企業者へ経費の一部を助成します。",
			Organization: "東京都",
			Target:       "中小企業等",
			Amount:       "最大300万円",
			URL:          "https://example.com/sample/sogyo-josei",
			Keywords:     "創業,スタートアップ",
			Source:       entity.SourceScraped,
		},
		{
			Title:          "（サンプル）事業承継・引継ぎ補助金",
			Description:    "事業承継やM&Aを契機とした経営革新の取り組みを支援します。募集は終了しています。",
			Organization:   "国",
			Target:         "中小企業",
			Amount:         "最大600万円",
			ApplicationEnd: &endPast,
			URL:            "https://example.com/sample/shoukei",
			Keywords:       "事業承継,M&A",
			Source:         entity.SourceAPI,
		},
	}
}

// Seed loads the demo dataset through the reconciler, so repeated seeding
// refreshes the same five rows instead of duplicating them. Returns the
// number of newly inserted rows.
func (s *Service) Seed(ctx context.Context) (int, error) {
	inserted := 0
	for _, record := range demoDataset() {
		result, err := s.reconciler.Upsert(ctx, record)
		if err != nil {
			return inserted, fmt.Errorf("Seed: %w", err)
		}
		if result.Inserted {
			inserted++
		}
	}

	slog.Info("demo dataset seeded", slog.Int("inserted", inserted))
	return inserted, nil
}
