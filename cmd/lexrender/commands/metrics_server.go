package commands

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/lexrender/internal/logfields"
	"git.home.luguber.info/inful/lexrender/internal/metrics"
)

const metricsShutdownTimeout = 5 * time.Second

// startMetricsServer serves /metrics on addr until stopped.
func startMetricsServer(addr string, reg *prom.Registry, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server error", logfields.Error(err))
		}
	}()
	logger.Info("Serving metrics", slog.String("addr", addr))
	return srv
}

func stopMetricsServer(srv *http.Server, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("Failed to stop metrics server", logfields.Error(err))
	}
}
