package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"subsidy-finder/internal/common/pagination"
	pgRepo "subsidy-finder/internal/infra/adapter/persistence/postgres"
	"subsidy-finder/internal/infra/db"
	"subsidy-finder/internal/infra/source"
	"subsidy-finder/internal/observability/logging"
	"subsidy-finder/internal/observability/tracing"
	"subsidy-finder/internal/pkg/config"

	ingUC "subsidy-finder/internal/usecase/ingest"
	subUC "subsidy-finder/internal/usecase/subsidy"

	hhttp "subsidy-finder/internal/handler/http"
	hingest "subsidy-finder/internal/handler/http/ingest"
	"subsidy-finder/internal/handler/http/middleware"
	"subsidy-finder/internal/handler/http/requestid"
	hsubsidy "subsidy-finder/internal/handler/http/subsidy"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg := config.LoadAppConfig(logger, config.NewConfigMetrics("api"))

	shutdownTracing := tracing.Setup(cfg.TracingEnabled)
	defer shutdownTracing()

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	repo := pgRepo.NewSubsidyRepo(database)
	subsidySvc := subUC.NewService(repo)
	ingestSvc := ingUC.NewService(repo, buildAdapters(cfg))

	handler := setupHandler(logger, database, cfg, subsidySvc, ingestSvc)

	runServer(logger, handler, cfg, ingestSvc)
}

// initDatabase opens the connection pool and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// buildAdapters creates one adapter per upstream source, sharing an HTTP
// client so connection reuse works across runs.
func buildAdapters(cfg *config.AppConfig) []source.Adapter {
	client := &http.Client{Timeout: 30 * time.Second}
	return []source.Adapter{
		source.NewJGrantsAdapter(client, cfg.JGrantsAPIURL),
		source.NewTokyoAdapter(client, cfg.TokyoSubsidyURL),
	}
}

// setupHandler registers all routes and wraps them in the middleware chain.
func setupHandler(
	logger *slog.Logger,
	database *sql.DB,
	cfg *config.AppConfig,
	subsidySvc *subUC.Service,
	ingestSvc *ingUC.Service,
) http.Handler {
	mux := http.NewServeMux()

	hsubsidy.Register(mux, subsidySvc, pagination.LoadFromEnv(), logger)
	hingest.Register(mux, ingestSvc, logger)

	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	mux.Handle("/health", &hhttp.HealthHandler{DB: database, Version: version})
	mux.Handle("/ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())

	corsConfig, err := middleware.LoadCORSConfig()
	if err != nil {
		logger.Error("failed to load CORS configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("CORS enabled",
		slog.Any("allowed_origins", corsConfig.AllowedOrigins),
		slog.Any("allowed_methods", corsConfig.AllowedMethods))

	// レート制限: 1分間に120リクエストまで（IP単位）
	rateLimiter := hhttp.NewRateLimiter(120, time.Minute)

	// 取り込み実行は数十秒かかり得るので、リクエストタイムアウトは
	// 全エンドポイント共通で cfg.RequestTimeout に揃える
	var handler http.Handler = mux
	handler = hhttp.MetricsMiddleware(handler)
	handler = hhttp.Timeout(cfg.RequestTimeout)(handler)
	handler = rateLimiter.Limit(handler)
	handler = hhttp.InputValidation()(handler)
	handler = hhttp.Logging(logger)(handler)
	handler = hhttp.Recover(logger)(handler)
	handler = tracing.Middleware(handler)
	handler = requestid.Middleware(handler)
	handler = middleware.CORS(corsConfig)(handler)

	return handler
}

// runServer starts the HTTP server, optionally kicks off an initial
// ingestion in the background, and handles graceful shutdown.
func runServer(logger *slog.Logger, handler http.Handler, cfg *config.AppConfig, ingestSvc *ingUC.Service) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	if cfg.IngestOnStartup {
		// 起動直後から検索できるよう初回取り込みを裏で回す。
		// 失敗してもサービス自体は立ち上げる
		go func() {
			ingestCtx, ingestCancel := context.WithTimeout(ctx, 10*time.Minute)
			defer ingestCancel()

			if _, err := ingestSvc.RunAll(ingestCtx); err != nil {
				logger.Error("startup ingestion failed", slog.Any("error", err))
			}
		}()
	}

	go func() {
		logger.Info("server starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
