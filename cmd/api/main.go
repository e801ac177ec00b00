package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carecompass.healthdata.org/hospitaldb"
	"carecompass.healthdata.org/internal/app"
	"carecompass.healthdata.org/internal/appconf"
	"carecompass.healthdata.org/internal/hospitals"
	"carecompass.healthdata.org/internal/logging"
	"carecompass.healthdata.org/internal/restapi"
	"carecompass.healthdata.org/internal/webui"
)

func main() {
	var cfg appconf.Config
	var envFlag string

	flag.IntVar(&cfg.Port, "port", 4000, "API server port")
	flag.StringVar(&envFlag, "env", "development", "Environment (development|test|production)")
	flag.StringVar(&cfg.DataSource, "data-source", "./testdata/encounters.csv", "URL or local path for the hospital encounters CSV")
	flag.StringVar(&cfg.DBPath, "db-path", "carecompass.db", "Path to the SQLite database file")
	flag.StringVar(&cfg.StaticDir, "static-dir", "./web/static", "Directory holding the client bundle and CSV asset")
	flag.StringVar(&cfg.JWTSecret, "jwt-secret", "", "Secret for signing session tokens")
	flag.IntVar(&cfg.RateLimit, "rate-limit", 100, "Requests per second per client (negative disables limiting)")
	flag.IntVar(&cfg.MaxCompare, "max-compare", 5, "Maximum hospitals in one comparison (3-10)")
	flag.Float64Var(&cfg.DefaultLat, "default-lat", 28.6139, "Default latitude for distance search")
	flag.Float64Var(&cfg.DefaultLon, "default-lon", 77.2090, "Default longitude for distance search")
	flag.Float64Var(&cfg.RankWeights.Rating, "rank-rating-weight", 0.4, "Recommended sort weight for rating")
	flag.Float64Var(&cfg.RankWeights.Volume, "rank-volume-weight", 0.4, "Recommended sort weight for case volume")
	flag.Float64Var(&cfg.RankWeights.Distance, "rank-distance-weight", 0.2, "Recommended sort weight for distance")
	flag.Parse()

	cfg.Env = appconf.EnvFlagToEnvironment(envFlag)

	logger := logging.NewStructuredLogger(os.Stdout, slog.LevelInfo)

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.JWTSecret == "" {
		logger.Error("a JWT secret is required; set -jwt-secret or JWT_SECRET")
		os.Exit(1)
	}

	db, err := hospitaldb.NewClient(hospitaldb.NewConfig(cfg.DBPath, cfg.Env, cfg.Env != appconf.Production), logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer logging.SafeCloseWithLogging(db, logger, "database")

	dataManager, err := hospitals.InitManager(hospitals.Config{
		DataSource: cfg.DataSource,
		DBPath:     cfg.DBPath,
		Env:        cfg.Env,
		Verbose:    cfg.Env != appconf.Production,
	}, db, logger)
	if err != nil {
		logger.Error("failed to load encounters dataset", "error", err)
		os.Exit(1)
	}
	defer dataManager.Shutdown()

	application := &app.Application{
		Config:      cfg,
		Logger:      logger,
		DataManager: dataManager,
		DB:          db,
	}

	api := restapi.NewRestAPI(application)

	mux := http.NewServeMux()
	api.SetRoutes(mux)
	webui.SetWebUIRoutes(mux, cfg.StaticDir)

	var handler http.Handler = mux
	handler = restapi.CompressionMiddleware(handler)
	handler = restapi.NewRequestLoggingMiddleware(logger)(handler)
	handler = api.WithSecurityHeaders(handler)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownErr := make(chan error)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		shutdownErr <- srv.Shutdown(ctx)
	}()

	logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env.String())

	err = srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		logger.Error(err.Error())
		os.Exit(1)
	}

	if err := <-shutdownErr; err != nil {
		logger.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
