package ingest_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subsidy-finder/internal/handler/http/ingest"
	ingUC "subsidy-finder/internal/usecase/ingest"
)

/* ───────── モック実装 ───────── */

type stubService struct {
	stats    *ingUC.RunStats
	runErr   error
	seeded   int
	seedErr  error
	runCalls int
}

func (s *stubService) RunAll(_ context.Context) (*ingUC.RunStats, error) {
	s.runCalls++
	return s.stats, s.runErr
}

func (s *stubService) Seed(_ context.Context) (int, error) {
	return s.seeded, s.seedErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/* ───────── RunHandler ───────── */

func TestRunHandler_Success(t *testing.T) {
	stub := &stubService{
		stats: &ingUC.RunStats{
			Sources: map[string]*ingUC.SourceStats{
				"jgrants": {Fetched: 40, Inserted: 30, Updated: 10},
				"tokyo":   {Failed: true},
			},
			Fetched:  40,
			Inserted: 30,
			Updated:  10,
			Duration: 1830 * time.Millisecond,
		},
	}
	h := ingest.RunHandler{Svc: stub, Logger: discardLogger()}

	req := httptest.NewRequest(http.MethodPost, "/ingest/run", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var out ingest.RunResultDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Equal(t, 40, out.Fetched)
	assert.Equal(t, 30, out.Inserted)
	assert.Equal(t, int64(1830), out.DurationMS)
	assert.False(t, out.Seeded)
	require.Contains(t, out.Sources, "tokyo")
	assert.True(t, out.Sources["tokyo"].Failed)
	assert.Equal(t, 40, out.Sources["jgrants"].Fetched)
}

func TestRunHandler_ConflictWhenInProgress(t *testing.T) {
	stub := &stubService{runErr: ingUC.ErrIngestInProgress}
	h := ingest.RunHandler{Svc: stub, Logger: discardLogger()}

	req := httptest.NewRequest(http.MethodPost, "/ingest/run", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "取り込み処理が実行中です", body["error"])
}

func TestRunHandler_InternalError(t *testing.T) {
	stub := &stubService{runErr: errors.New("db down")}
	h := ingest.RunHandler{Svc: stub, Logger: discardLogger()}

	req := httptest.NewRequest(http.MethodPost, "/ingest/run", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "internal server error", body["error"])
}

/* ───────── SeedHandler ───────── */

func TestSeedHandler_Success(t *testing.T) {
	h := ingest.SeedHandler{Svc: &stubService{seeded: 5}}

	req := httptest.NewRequest(http.MethodPost, "/ingest/seed", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var out ingest.SeedResultDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Equal(t, 5, out.Inserted)
}

func TestSeedHandler_Error(t *testing.T) {
	h := ingest.SeedHandler{Svc: &stubService{seedErr: errors.New("db down")}}

	req := httptest.NewRequest(http.MethodPost, "/ingest/seed", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

/* ───────── Register ───────── */

func TestRegister_OnlyPostAllowed(t *testing.T) {
	stub := &stubService{stats: &ingUC.RunStats{Sources: map[string]*ingUC.SourceStats{}}}
	mux := http.NewServeMux()
	ingest.Register(mux, stub, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/ingest/run", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/ingest/run", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, stub.runCalls)
}
