package subsidy

import (
	"net/http"
	"time"

	"subsidy-finder/internal/handler/http/respond"
	subUC "subsidy-finder/internal/usecase/subsidy"
)

type MatchHandler struct{ Svc *subUC.Service }

// ServeHTTP 補助金マッチング
// @Summary      事業者プロフィールに合う補助金の提案
// @Description  業種・所在地・事業者区分・関心キーワードからスコアリングし、上位の補助金を返します
// @Tags         subsidies
// @Produce      json
// @Param        business_type query string false "業種（例: 製造業）"
// @Param        prefecture    query string false "都道府県（例: 東京都）"
// @Param        target_type   query string false "事業者区分（例: 中小企業）"
// @Param        keywords      query string false "関心キーワード（カンマ区切り）"
// @Success      200 {array} ScoredDTO "スコア降順のマッチング結果"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /subsidies/match [get]
func (h MatchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	profile := subUC.MatchProfile{
		BusinessType: q.Get("business_type"),
		Prefecture:   q.Get("prefecture"),
		TargetType:   q.Get("target_type"),
		Keywords:     subUC.ParseKeywords(q.Get("keywords")),
	}

	scored, err := h.Svc.Match(r.Context(), profile)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	now := time.Now()
	out := make([]ScoredDTO, 0, len(scored))
	for _, s := range scored {
		out = append(out, ScoredDTO{
			DTO:   toDTO(s.Subsidy, now),
			Score: s.Score,
		})
	}

	respond.JSON(w, http.StatusOK, out)
}
