package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vizboard/vizboard/config"
	"github.com/vizboard/vizboard/consts"
	"github.com/vizboard/vizboard/health"
	"github.com/vizboard/vizboard/logger"
	"github.com/vizboard/vizboard/metrics"
	"github.com/vizboard/vizboard/middleware"
	"github.com/vizboard/vizboard/source"
	"github.com/vizboard/vizboard/view"
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
		slog.Error("Dashboard stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	httpSource := source.NewHTTPSource(cfg.Dashboard.SourceURL, m)
	httpSource.Client.Timeout = cfg.Dashboard.FetchTimeout
	d := &dashboard{
		board:   view.NewBoard(),
		source:  source.NewShared(httpSource, m),
		metrics: m,
		log:     logger.WithComponent("dashboard"),
	}

	// Views start loading right away and the page shows "Loading..." until
	// the first fetch settles.
	go d.load(ctx)

	server := &http.Server{
		Addr:              ":" + cfg.Dashboard.Port,
		ReadHeaderTimeout: consts.ReadHeaderTimeout,
		Handler:           d.router(),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting dashboard", "addr", server.Addr, "source", cfg.Dashboard.SourceURL)
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), consts.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

type dashboard struct {
	board   *view.Board
	source  *source.Shared
	metrics *metrics.Metrics
	log     *slog.Logger
}

func (d *dashboard) load(ctx context.Context) {
	if err := d.board.Load(ctx, d.source); err != nil {
		d.log.Error("Error loading records", "error", err)
		return
	}
	d.log.Info("Records loaded")
}

func (d *dashboard) router() http.Handler {
	checker := health.NewChecker(consts.HealthTimeout).Add("views", health.Views(d.board))

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics(d.metrics))

	r.Get("/", d.pageHandler())
	// Changes the selected view state; see chartHandler.
	r.Get("/charts/{kind}", d.chartHandler())
	r.Get("/api/charts", d.apiHandler())
	r.Post("/reload", d.reloadHandler())
	r.Get("/healthz", checker.Handler())
	r.Handle("/metrics", d.metrics.Handler())
	return r
}
