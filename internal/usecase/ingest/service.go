package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"subsidy-finder/internal/domain/entity"
	"subsidy-finder/internal/infra/source"
	"subsidy-finder/internal/observability/metrics"
	"subsidy-finder/internal/repository"
)

// Service orchestrates ingestion runs across all configured source adapters.
// Runs are serialized: a run requested while another is executing is rejected
// with ErrIngestInProgress rather than queued.
type Service struct {
	Repo       repository.SubsidyRepository
	Adapters   []source.Adapter
	reconciler Reconciler

	mu sync.Mutex // guards against overlapping runs
}

// NewService creates an ingest Service over the given adapters.
func NewService(repo repository.SubsidyRepository, adapters []source.Adapter) *Service {
	return &Service{
		Repo:       repo,
		Adapters:   adapters,
		reconciler: Reconciler{Repo: repo},
	}
}

// SourceStats holds per-source counts for one run.
type SourceStats struct {
	Fetched  int
	Inserted int
	Updated  int
	Failed   bool
}

// RunStats summarizes one ingestion run.
type RunStats struct {
	Sources  map[string]*SourceStats
	Fetched  int
	Inserted int
	Updated  int
	Seeded   bool
	Duration time.Duration
}

// RunAll fetches every source concurrently, reconciles the results, and
// seeds the demo dataset when the store ends up empty. A failing source is
// logged and counted but never aborts the other sources; RunAll errors only
// when every source fails and nothing was reconciled.
func (s *Service) RunAll(ctx context.Context) (*RunStats, error) {
	if !s.mu.TryLock() {
		return nil, ErrIngestInProgress
	}
	defer s.mu.Unlock()

	logger := slog.Default()
	start := time.Now()
	stats := &RunStats{Sources: make(map[string]*SourceStats, len(s.Adapters))}

	fetched := make([][]*entity.Subsidy, len(s.Adapters))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, adapter := range s.Adapters {
		i, adapter := i, adapter
		stats.Sources[adapter.Name()] = &SourceStats{}

		eg.Go(func() error {
			fetchStart := time.Now()
			records, err := adapter.Fetch(egCtx)
			metrics.RecordSourceFetch(adapter.Name(), time.Since(fetchStart))
			if err != nil {
				// 1ソースの失敗で他ソースを止めない
				logger.Warn("source fetch failed",
					slog.String("source", adapter.Name()),
					slog.Any("error", err))
				metrics.RecordSourceFetchError(adapter.Name(), "fetch_failed")
				stats.Sources[adapter.Name()].Failed = true
				return nil
			}
			fetched[i] = records
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return stats, fmt.Errorf("RunAll: %w", err)
	}

	failedSources := 0
	for i, adapter := range s.Adapters {
		srcStats := stats.Sources[adapter.Name()]
		if srcStats.Failed {
			failedSources++
			continue
		}
		srcStats.Fetched = len(fetched[i])
		stats.Fetched += srcStats.Fetched
		metrics.RecordSubsidiesFetched(adapter.Name(), srcStats.Fetched)

		if err := s.reconcileSource(ctx, adapter.Name(), fetched[i], srcStats); err != nil {
			logger.Warn("source reconciliation failed",
				slog.String("source", adapter.Name()),
				slog.Any("error", err))
			metrics.RecordSourceFetchError(adapter.Name(), "reconcile_failed")
			srcStats.Failed = true
			failedSources++
			continue
		}
		stats.Inserted += srcStats.Inserted
		stats.Updated += srcStats.Updated
		metrics.RecordReconciled(adapter.Name(), srcStats.Inserted, srcStats.Updated)
	}

	// 全ソース失敗でもシード処理は行う（ストアを空のまま残さない）
	if err := s.seedIfEmpty(ctx, stats); err != nil {
		return stats, fmt.Errorf("RunAll: %w", err)
	}

	s.updateGauges(ctx)

	stats.Duration = time.Since(start)
	result := "success"
	switch {
	case len(s.Adapters) > 0 && failedSources == len(s.Adapters):
		result = "failure"
	case failedSources > 0:
		result = "partial"
	}
	metrics.RecordIngestRun(result, stats.Duration)

	logger.Info("ingestion run completed",
		slog.Int("sources", len(s.Adapters)),
		slog.Int("failed_sources", failedSources),
		slog.Int("fetched", stats.Fetched),
		slog.Int("inserted", stats.Inserted),
		slog.Int("updated", stats.Updated),
		slog.Bool("seeded", stats.Seeded),
		slog.Duration("duration", stats.Duration),
	)
	return stats, nil
}

// reconcileSource upserts one source's records sequentially. Order within a
// source does not matter for correctness, but serial writes keep the natural
// key race window closed without relying on the database constraint.
func (s *Service) reconcileSource(ctx context.Context, name string, records []*entity.Subsidy, srcStats *SourceStats) error {
	logger := slog.Default()
	for _, record := range records {
		result, err := s.reconciler.Upsert(ctx, record)
		if err != nil {
			// 単一レコードの不備はスキップして続行
			logger.Warn("record reconciliation failed, skipping",
				slog.String("source", name),
				slog.String("url", record.URL),
				slog.Any("error", err))
			continue
		}
		if result.Inserted {
			srcStats.Inserted++
		}
		if result.Updated {
			srcStats.Updated++
		}
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return nil
}

// seedIfEmpty loads the demo dataset when the store holds no records at all.
// This keeps a fresh deployment browsable before the sources come online.
func (s *Service) seedIfEmpty(ctx context.Context, stats *RunStats) error {
	total, err := s.Repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count subsidies: %w", err)
	}
	if total > 0 {
		return nil
	}

	inserted, err := s.Seed(ctx)
	if err != nil {
		return fmt.Errorf("seed demo dataset: %w", err)
	}
	stats.Seeded = true
	stats.Inserted += inserted
	return nil
}

// updateGauges refreshes the store-level gauges. Failures only cost metric
// freshness, so they are logged at debug and otherwise ignored.
func (s *Service) updateGauges(ctx context.Context) {
	if total, err := s.Repo.Count(ctx); err == nil {
		metrics.UpdateSubsidiesTotal(total)
	} else {
		slog.Debug("failed to refresh subsidies_total gauge", slog.Any("error", err))
	}
	if active, err := s.Repo.CountActive(ctx, entity.DateOf(time.Now())); err == nil {
		metrics.UpdateSubsidiesActive(active)
	} else {
		slog.Debug("failed to refresh subsidies_active gauge", slog.Any("error", err))
	}
}
