package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/vizboard/vizboard/config"
	"github.com/vizboard/vizboard/consts"
	"github.com/vizboard/vizboard/db"
	"github.com/vizboard/vizboard/health"
	"github.com/vizboard/vizboard/logger"
	"github.com/vizboard/vizboard/metrics"
	"github.com/vizboard/vizboard/middleware"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Error loading config", "error", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	if err := run(cfg); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(cfg.Store.DataFolder, consts.DirPermissions); err != nil {
		return err
	}
	dbConn, err := db.OpenDB(cfg.Store.DBPath())
	if err != nil {
		return err
	}
	defer dbConn.Close()
	slog.Info("Connected to database", "path", cfg.Store.DBPath())

	m := metrics.New()
	syncer := &datasetSyncer{db: dbConn, path: cfg.Store.DatasetPath(), metrics: m}
	syncer.Run(ctx)
	if n, err := db.CountRecords(ctx, dbConn); err == nil {
		m.StoredRecords.Set(float64(n))
		slog.Info("Serving records", "count", n)
	}

	tasks, err := startTasks(ctx, cfg, dbConn, syncer)
	if err != nil {
		return err
	}
	defer tasks.Stop()

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		ReadHeaderTimeout: consts.ReadHeaderTimeout,
		Handler:           newRouter(cfg.Server, dbConn, m),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting record source", "addr", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newRouter(cfg config.ServerConfig, dbConn *sql.DB, m *metrics.Metrics) http.Handler {
	checker := health.NewChecker(consts.HealthTimeout).Add("store", health.Store(dbConn))

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics(m))

	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.CORSOrigins
	r.Use(middleware.CORS(cors))

	registerDevRoutes(r)

	r.Get("/", helloHandler())
	r.Get("/healthz", checker.Handler())
	r.Handle("/metrics", m.Handler())

	limiter := httprate.NewRateLimiter(cfg.RateLimit, cfg.RateWindow, httprate.WithKeyByIP())
	r.With(limiter.Handler).Get(consts.RecordsPath, recordsHandler(dbConn))

	return r
}
