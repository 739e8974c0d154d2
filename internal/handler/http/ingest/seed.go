package ingest

import (
	"net/http"

	"subsidy-finder/internal/handler/http/respond"
)

// SeedResultDTO reports how many demo records were inserted.
type SeedResultDTO struct {
	Inserted int `json:"inserted" example:"5"`
}

type SeedHandler struct{ Svc Service }

// ServeHTTP デモデータ投入
// @Summary      デモデータの投入
// @Description  動作確認用の固定データセットを投入します。既に存在するレコードは上書きされるため、何度呼んでも安全です。
// @Tags         ingest
// @Produce      json
// @Success      200 {object} SeedResultDTO "投入結果"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /ingest/seed [post]
func (h SeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	inserted, err := h.Svc.Seed(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, SeedResultDTO{Inserted: inserted})
}
