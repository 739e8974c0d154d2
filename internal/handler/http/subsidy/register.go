package subsidy

import (
	"log/slog"
	"net/http"

	"subsidy-finder/internal/common/pagination"
	subUC "subsidy-finder/internal/usecase/subsidy"
)

// Register registers all subsidy-related HTTP handlers with the given mux.
// Fixed paths (search, match, stats) must be registered before the
// "/subsidies/" prefix so ServeMux does not treat them as detail lookups.
func Register(mux *http.ServeMux, svc *subUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET /subsidies", ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("GET /subsidies/search", SearchHandler{svc})
	mux.Handle("GET /subsidies/match", MatchHandler{svc})
	mux.Handle("GET /subsidies/stats", StatsHandler{svc})
	mux.Handle("GET /subsidies/", GetHandler{svc})
}
