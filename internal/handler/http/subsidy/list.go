package subsidy

import (
	"log/slog"
	"net/http"
	"time"

	"subsidy-finder/internal/common/pagination"
	"subsidy-finder/internal/handler/http/requestid"
	"subsidy-finder/internal/handler/http/respond"
	"subsidy-finder/internal/observability/logging"
	subUC "subsidy-finder/internal/usecase/subsidy"
)

type ListHandler struct {
	Svc           *subUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP 補助金一覧取得
// @Summary      補助金一覧取得（ページネーション対応）
// @Description  登録されている補助金を取得します。ページネーションパラメータを指定して、ページ単位で取得できます。
// @Tags         subsidies
// @Produce      json
// @Param        page   query    int  false  "ページ番号 (1-based)" default(1) minimum(1)
// @Param        limit  query    int  false  "1ページあたりの件数" default(20) minimum(1) maximum(100)
// @Success      200 {object} pagination.Response[DTO] "ページネーション付き補助金一覧"
// @Failure      400 {string} string "Invalid query parameters"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /subsidies [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		logger.Warn("Invalid pagination parameters",
			"error", err.Error(),
			"request_id", reqID)
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.Svc.ListPaginated(ctx, params)
	if err != nil {
		logger.Error("Failed to list subsidies",
			"error", err.Error(),
			"page", params.Page,
			"limit", params.Limit,
			"request_id", reqID)
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	dtos := toDTOs(result.Data, time.Now())
	response := pagination.NewResponse(dtos, result.Pagination)

	logger.Info("Paginated subsidy list response",
		"page", params.Page,
		"limit", params.Limit,
		"returned_count", len(dtos),
		"duration_ms", time.Since(startTime).Milliseconds(),
		"request_id", reqID)

	respond.JSON(w, http.StatusOK, response)
}
