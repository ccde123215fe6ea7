package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/viant/afs"

	"github.com/qagen/qagen/internal/config"
	"github.com/qagen/qagen/internal/domain/credential"
	"github.com/qagen/qagen/internal/domain/patient"
	"github.com/qagen/qagen/internal/domain/scenario"
	"github.com/qagen/qagen/internal/platform/db"
	"github.com/qagen/qagen/internal/platform/metrics"
	"github.com/qagen/qagen/internal/platform/middleware"
)

const (
	version         = "0.1.0"
	credentialRealm = "GetCernerCredentials"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

type serverDeps struct {
	pool    *pgxpool.Pool
	metrics *metrics.Metrics
	fs      afs.Service
}

func newServer(cfg *config.Config, logger zerolog.Logger, deps serverDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger, "/health", "/health/db", "/metrics"))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  cfg.CORSOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost},
		AllowHeaders:  []string{echo.HeaderAuthorization, echo.HeaderContentType, middleware.RequestIDHeader},
		ExposeHeaders: []string{echo.HeaderContentDisposition},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})
	e.GET("/health/db", db.HealthHandler(deps.pool))
	e.GET("/metrics", echo.WrapHandler(deps.metrics.Handler()))

	api := e.Group("/api", middleware.BodyLimit(cfg.BodyLimit), middleware.RequestTimeout(cfg.RequestTimeout))
	v1 := api.Group("/v1")

	scenarioSvc := scenario.NewService(deps.metrics, logger)
	scenario.NewHandler(scenarioSvc).RegisterRoutes(v1)

	patientSvc := patient.NewService(
		addressSource(cfg, deps.fs),
		randomFactory(cfg.RandomSeed),
		cfg.MaxBatchCount,
		deps.metrics,
		logger,
	)
	patient.NewHandler(patientSvc).RegisterRoutes(v1)

	var repo credential.CredentialRepository
	if deps.pool != nil {
		repo = credential.NewCredentialRepoPG(deps.pool)
	}
	rl := middleware.RateLimitConfig{RequestsPerSecond: cfg.RateLimitRPS, BurstSize: cfg.RateLimitBurst}
	credential.NewHandler(credential.NewService(repo, logger), logger).RegisterRoutes(api, v1,
		middleware.RateLimit(rl),
		middleware.BasicAuth(cfg.BasicAuthUser, cfg.BasicAuthPass, credentialRealm),
	)

	return e
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Env)
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()
	var pool *pgxpool.Pool
	if cfg.HasDatabase() {
		pool, err = db.NewPool(ctx, cfg.DatabaseURL, db.PoolConfig{MaxConns: cfg.DBMaxConns, MinConns: cfg.DBMinConns})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		logger.Info().Msg("connected to database")
	} else {
		logger.Warn().Msg("DATABASE_URL not set, credential lookups will fail")
	}
	if cfg.BasicAuthUser == "" {
		logger.Warn().Msg("BASIC_AUTH_USER not set, credential routes reject every request")
	}

	e := newServer(cfg, logger, serverDeps{pool: pool, metrics: metrics.New(), fs: afs.New()})

	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("address_source", cfg.AddressSource).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
