package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/ml-registry/model-registry/pkg/config"
	"github.com/ml-registry/model-registry/pkg/jobs"
	"github.com/ml-registry/model-registry/pkg/logging"
	"github.com/ml-registry/model-registry/pkg/metrics"
	api "github.com/ml-registry/model-registry/pkg/registry"
	"github.com/ml-registry/model-registry/pkg/registry/database"
	"github.com/ml-registry/model-registry/pkg/registry/handler"
	"github.com/ml-registry/model-registry/pkg/registry/repositories"
	"github.com/ml-registry/model-registry/pkg/registry/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Debug)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, database.Options{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		Logger:          logging.GormLogger(logger, cfg.Debug),
	})
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	modelRepo := repositories.NewModelRepository(db)
	modelService := services.NewModelService(modelRepo, logger)
	versionService := services.NewVersionService(modelRepo, logger)
	statsService := services.NewStatsService(repositories.NewStatsRepository(db))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	if _, err := jobs.ScheduleStatsRefresh(ctx, cfg.StatsRefresh, statsService, m, logger); err != nil {
		return err
	}

	router := api.NewRouter(api.RouterConfig{
		AppName:     cfg.AppName,
		Version:     cfg.AppVersion,
		APIPrefix:   cfg.APIV1Prefix,
		CORSOrigins: cfg.CORSOrigins,
		AuthEnabled: cfg.AuthEnabled,
		Logger:      logger.Named("http"),
		Metrics:     m,
		Gatherer:    reg,
	}, api.Controllers{
		Models:     handler.NewModelsAPIController(modelService, versionService),
		Statistics: handler.NewStatisticsController(statsService),
		System:     handler.NewSystemController(cfg.AppName, cfg.AppVersion, cfg.APIV1Prefix),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server is running", zap.String("addr", cfg.HTTPAddr), zap.String("version", cfg.AppVersion))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
