package subsidy

import (
	"net/http"
	"strconv"
	"time"

	"subsidy-finder/internal/handler/http/respond"
	"subsidy-finder/internal/repository"
	subUC "subsidy-finder/internal/usecase/subsidy"
)

type SearchHandler struct{ Svc *subUC.Service }

// ServeHTTP 補助金検索
// @Summary      補助金検索
// @Description  キーワード・実施機関・対象者で補助金を絞り込みます（AND条件）
// @Tags         subsidies
// @Produce      json
// @Param        keyword      query string false "タイトル・概要・キーワードの部分一致"
// @Param        organization query string false "実施機関の完全一致"
// @Param        target       query string false "対象者の部分一致"
// @Param        active_only  query bool   false "募集中のもののみ" default(false)
// @Success      200 {array} DTO "検索結果"
// @Failure      400 {string} string "Bad request"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /subsidies/search [get]
func (h SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := repository.SubsidySearchFilters{
		Keyword:      q.Get("keyword"),
		Organization: q.Get("organization"),
		Target:       q.Get("target"),
	}

	// active_only は bool として解釈できる値のみ受け付ける
	if raw := q.Get("active_only"); raw != "" {
		activeOnly, err := strconv.ParseBool(raw)
		if err != nil {
			respond.SafeError(w, http.StatusBadRequest,
				respond.NewAppError(http.StatusBadRequest,
					"invalid active_only: must be true or false", err))
			return
		}
		filters.ActiveOnly = activeOnly
	}

	list, err := h.Svc.Search(r.Context(), filters)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTOs(list, time.Now()))
}
