package subsidy

import (
	"errors"
	"net/http"
	"time"

	"subsidy-finder/internal/handler/http/pathutil"
	"subsidy-finder/internal/handler/http/respond"
	subUC "subsidy-finder/internal/usecase/subsidy"
)

type GetHandler struct{ Svc *subUC.Service }

// ServeHTTP 補助金詳細取得
// @Summary      補助金詳細取得
// @Description  指定されたIDの補助金を取得します
// @Tags         subsidies
// @Produce      json
// @Param        id path int true "補助金ID"
// @Success      200 {object} DTO "補助金詳細"
// @Failure      400 {string} string "Bad request - invalid subsidy ID"
// @Failure      404 {string} string "Not found - subsidy not found"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /subsidies/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/subsidies/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	record, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, subUC.ErrInvalidSubsidyID) {
			code = http.StatusBadRequest
		} else if errors.Is(err, subUC.ErrSubsidyNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(record, time.Now()))
}
