package ingest

import (
	"log/slog"
	"net/http"
)

// Register registers the ingestion trigger endpoints with the given mux.
// Both endpoints mutate the store, so they only accept POST.
func Register(mux *http.ServeMux, svc Service, logger *slog.Logger) {
	mux.Handle("POST /ingest/run", RunHandler{Svc: svc, Logger: logger})
	mux.Handle("POST /ingest/seed", SeedHandler{Svc: svc})
}
