package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/robfig/cron/v3"

	"subsidy-finder/internal/handler/http/respond"
	pgRepo "subsidy-finder/internal/infra/adapter/persistence/postgres"
	"subsidy-finder/internal/infra/db"
	"subsidy-finder/internal/infra/source"
	workerPkg "subsidy-finder/internal/infra/worker"
	"subsidy-finder/internal/observability/logging"
	"subsidy-finder/internal/pkg/config"
	ingUC "subsidy-finder/internal/usecase/ingest"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	workerMetrics := workerPkg.NewWorkerMetrics()
	workerConfig := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("ingest_timeout", workerConfig.IngestTimeout),
		slog.Int("health_port", workerConfig.HealthPort))

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	svc := setupIngestService(logger, database)

	startCronWorker(ctx, logger, svc, workerConfig, workerMetrics, healthServer)
}

// initDatabase opens the connection pool and waits until the api binary's
// migrations have created the schema.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	waitForMigrations(logger, database)
	return database
}

func waitForMigrations(logger *slog.Logger, db *sql.DB) {
	const probe = "SELECT 1 FROM subsidies LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := db.Exec(probe); err == nil {
			return
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", i+1))
		time.Sleep(3 * time.Second)
	}
	logger.Error("migrations did not complete in time")
	os.Exit(1)
}

// setupIngestService wires the repository and source adapters into the
// ingestion service.
func setupIngestService(logger *slog.Logger, database *sql.DB) *ingUC.Service {
	cfgMetrics := config.NewConfigMetrics("worker-sources")
	appCfg := config.LoadAppConfig(logger, cfgMetrics)

	client := &http.Client{Timeout: 30 * time.Second}
	adapters := []source.Adapter{
		source.NewJGrantsAdapter(client, appCfg.JGrantsAPIURL),
		source.NewTokyoAdapter(client, appCfg.TokyoSubsidyURL),
	}

	return ingUC.NewService(pgRepo.NewSubsidyRepo(database), adapters)
}

// startCronWorker schedules periodic ingestion runs and blocks until a
// termination signal arrives.
func startCronWorker(
	ctx context.Context,
	logger *slog.Logger,
	svc *ingUC.Service,
	cfg *workerPkg.WorkerConfig,
	metrics *workerPkg.WorkerMetrics,
	healthServer *workerPkg.HealthServer,
) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	if _, err := c.AddFunc(cfg.CronSchedule, func() {
		runIngestJob(ctx, logger, svc, cfg, metrics)
	}); err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker started",
		slog.String("schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down worker...")

	healthServer.SetReady(false)
	stopCtx := c.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(cfg.IngestTimeout):
		logger.Warn("running job did not finish before shutdown deadline")
	}
	logger.Info("worker stopped")
}

// runIngestJob executes a single ingestion run with timeout and metrics.
func runIngestJob(ctx context.Context, logger *slog.Logger, svc *ingUC.Service, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics) {
	startTime := time.Now()
	logger.Info("scheduled ingestion started")

	runCtx, cancel := context.WithTimeout(ctx, cfg.IngestTimeout)
	defer cancel()

	stats, err := svc.RunAll(runCtx)
	metrics.RecordJobDuration(time.Since(startTime).Seconds())
	if err != nil {
		// 機密情報をマスクしてログ出力
		logger.Error("scheduled ingestion failed", slog.String("error", respond.SanitizeError(err)))
		metrics.RecordJobRun("failure")
		return
	}

	result := "success"
	failed := 0
	for _, src := range stats.Sources {
		if src.Failed {
			failed++
		}
	}
	switch {
	case failed == len(stats.Sources) && failed > 0:
		result = "failure"
	case failed > 0:
		result = "partial"
	}
	metrics.RecordJobRun(result)
	metrics.RecordRecordsProcessed(stats.Inserted + stats.Updated)
	if result != "failure" {
		metrics.RecordLastSuccess()
	}

	logger.Info("scheduled ingestion completed",
		slog.String("result", result),
		slog.Int("fetched", stats.Fetched),
		slog.Int("inserted", stats.Inserted),
		slog.Int("updated", stats.Updated),
		slog.Bool("seeded", stats.Seeded),
		slog.Duration("duration", stats.Duration),
	)
}
