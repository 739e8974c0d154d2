// Package ingest provides HTTP handlers for triggering data ingestion:
// a full refresh across every source and an explicit demo-data seed.
package ingest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"subsidy-finder/internal/handler/http/respond"
	"subsidy-finder/internal/observability/logging"
	ingUC "subsidy-finder/internal/usecase/ingest"
)

// Service is the ingestion surface the handlers depend on.
type Service interface {
	RunAll(ctx context.Context) (*ingUC.RunStats, error)
	Seed(ctx context.Context) (int, error)
}

// SourceStatsDTO reports per-source ingestion counters.
type SourceStatsDTO struct {
	Fetched  int  `json:"fetched" example:"42"`
	Inserted int  `json:"inserted" example:"30"`
	Updated  int  `json:"updated" example:"12"`
	Failed   bool `json:"failed" example:"false"`
}

// RunResultDTO reports the outcome of one ingestion run.
type RunResultDTO struct {
	Sources    map[string]SourceStatsDTO `json:"sources"`
	Fetched    int                       `json:"fetched" example:"55"`
	Inserted   int                       `json:"inserted" example:"40"`
	Updated    int                       `json:"updated" example:"15"`
	Seeded     bool                      `json:"seeded" example:"false"`
	DurationMS int64                     `json:"duration_ms" example:"1830"`
}

type RunHandler struct {
	Svc    Service
	Logger *slog.Logger
}

// ServeHTTP 取り込み実行
// @Summary      全ソースからの取り込み実行
// @Description  jGrants APIと東京都のスクレイピングを実行し、結果をストアに反映します。実行中に再度呼ばれた場合は409を返します。
// @Tags         ingest
// @Produce      json
// @Success      200 {object} RunResultDTO "取り込み結果"
// @Failure      409 {string} string "Conflict - 取り込み処理が実行中"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /ingest/run [post]
func (h RunHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	stats, err := h.Svc.RunAll(ctx)
	if err != nil {
		if errors.Is(err, ingUC.ErrIngestInProgress) {
			respond.SafeError(w, http.StatusConflict,
				respond.NewAppError(http.StatusConflict, "取り込み処理が実行中です", err))
			return
		}
		logger.Error("Ingestion run failed", "error", err.Error())
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	out := RunResultDTO{
		Sources:    make(map[string]SourceStatsDTO, len(stats.Sources)),
		Fetched:    stats.Fetched,
		Inserted:   stats.Inserted,
		Updated:    stats.Updated,
		Seeded:     stats.Seeded,
		DurationMS: stats.Duration.Milliseconds(),
	}
	for name, src := range stats.Sources {
		out.Sources[name] = SourceStatsDTO{
			Fetched:  src.Fetched,
			Inserted: src.Inserted,
			Updated:  src.Updated,
			Failed:   src.Failed,
		}
	}

	respond.JSON(w, http.StatusOK, out)
}
