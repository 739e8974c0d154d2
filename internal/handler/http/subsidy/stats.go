package subsidy

import (
	"net/http"

	"subsidy-finder/internal/handler/http/respond"
	subUC "subsidy-finder/internal/usecase/subsidy"
)

type StatsHandler struct{ Svc *subUC.Service }

// StatsDTO represents the JSON structure for store-level statistics.
type StatsDTO struct {
	TotalCount    int64            `json:"total_count" example:"128"`
	ActiveCount   int64            `json:"active_count" example:"73"`
	Organizations map[string]int64 `json:"organizations"`
}

// ServeHTTP 補助金統計取得
// @Summary      補助金統計取得
// @Description  登録件数・募集中件数・実施機関別件数を返します
// @Tags         subsidies
// @Produce      json
// @Success      200 {object} StatsDTO "統計情報"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /subsidies/stats [get]
func (h StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Svc.GetStats(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, StatsDTO{
		TotalCount:    stats.TotalCount,
		ActiveCount:   stats.ActiveCount,
		Organizations: stats.Organizations,
	})
}
