// Package main starts the HTTP server behind the alignment taxonomy explorer.
// It wires the document store, metrics, and API routes from environment
// configuration, then serves until interrupted.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alignscope/core/cmd/api/middleware"
	"github.com/alignscope/core/internal/config"
	"github.com/alignscope/core/internal/handlers"
	"github.com/alignscope/core/internal/observability"
	"github.com/alignscope/core/internal/store"
)

func main() {
	cfg := config.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(log)

	st := store.New(cfg.StoreConfig(), log)

	if cfg.CacheEnabled {
		cache, err := store.NewDocumentCache(cfg.CacheSize)
		if err != nil {
			log.Error("cannot build document cache", "error", err)
			os.Exit(1)
		}
		st.WithCache(cache)
		log.Info("document cache enabled", "size", cfg.CacheSize)

		if cfg.WatchEnabled {
			watcher, err := store.NewWatcher(cache, log,
				filepath.Dir(cfg.RootFile), cfg.ComponentsDir, cfg.SubcomponentsDir)
			if err != nil {
				log.Warn("file watcher unavailable, cache entries expire by validation only", "error", err)
			} else {
				defer watcher.Close()
			}
		}
	}

	metrics := observability.New(prometheus.DefaultRegisterer)

	gin.SetMode(gin.ReleaseMode)
	router := newRouter(log, st, metrics, promhttp.Handler(), cfg.CORSAllowedOrigin)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server listening", "addr", srv.Addr, "data_dir", cfg.DataDir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped unexpectedly", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", "error", err)
	}
}

// newRouter assembles the middleware chain and the full route table. The
// metrics exposition endpoint sits outside /api so CORS never applies to it.
func newRouter(log *slog.Logger, st *store.Store, m *observability.Metrics, metricsHandler http.Handler, corsOrigin string) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.AccessLog(log),
		middleware.Metrics(m),
		middleware.Recovery(log),
	)

	handlers.SetupRoutes(router, st, m, middleware.Cors(corsOrigin))
	router.GET("/metrics", gin.WrapH(metricsHandler))

	return router
}
