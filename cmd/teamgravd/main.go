package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/teamgrav/teamgrav/internal/advice"
	"github.com/teamgrav/teamgrav/internal/api"
	"github.com/teamgrav/teamgrav/internal/config"
	"github.com/teamgrav/teamgrav/internal/store"
	"github.com/teamgrav/teamgrav/internal/ws"
)

func main() {
	configPath := flag.String("config", "", "path to config file (empty: built-in defaults)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	slog.Info("teamgravd starting", "config", *configPath)

	cfg := config.Defaults()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			slog.Error("failed to load config", "err", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	slog.Info("config loaded",
		"http_port", cfg.Server.HTTPPort,
		"kappa", cfg.Engine.Kappa,
		"epsilon", cfg.Engine.Epsilon,
		"advice_rules", len(cfg.Advice.Rules),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Snapshot store with background TTL eviction.
	st := store.New(cfg.Server.SnapshotTTL)
	go st.Run(ctx)

	// Advice engine: evaluates rules on every incoming evaluation.
	adviceEngine := advice.New(cfg.Advice)

	// Hot reload swaps the active config pointer; in-flight requests keep
	// the version they started with.
	var current atomic.Pointer[config.Config]
	current.Store(cfg)
	if *configPath != "" {
		go func() {
			if err := config.Watch(ctx, *configPath, func(updated *config.Config) {
				current.Store(updated)
				slog.Info("config hot-reloaded",
					"kappa", updated.Engine.Kappa,
					"epsilon", updated.Engine.Epsilon,
				)
			}); err != nil {
				slog.Error("config watcher stopped", "err", err)
			}
		}()
	}

	// WebSocket hub broadcasting live snapshots to dashboard clients.
	hub := ws.New(st, cfg.Server.StreamTick)
	go hub.Run(ctx)

	httpMux := http.NewServeMux()
	httpMux.Handle("/api/", api.New(st, adviceEngine, current.Load))
	httpMux.Handle("/ws/stream", hub)
	httpMux.Handle("/metrics", promhttp.Handler())

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler: httpMux,
	}
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", "err", err)
		}
	}()

	<-ctx.Done()
	slog.Info("teamgravd shutting down")
	httpSrv.Shutdown(context.Background()) //nolint:errcheck
}
