package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"country-explorer/internal/infra/apiclient"
	"country-explorer/internal/repository"
)

// HealthResponse represents a simple health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

// UpstreamHealthResponse reports the circuit breaker of every remote service.
type UpstreamHealthResponse struct {
	Healthy   bool             `json:"healthy"`
	Upstreams []UpstreamStatus `json:"upstreams"`
}

// UpstreamStatus is the breaker state of one remote service.
type UpstreamStatus struct {
	Name               string `json:"name"`
	CircuitBreakerOpen bool   `json:"circuit_breaker_open"`
}

// upstream is a dependency guarded by a circuit breaker: an apiclient.Client
// or the postgres favorites repository.
type upstream interface {
	Service() string
	CircuitOpen() bool
}

// healthUpstreams lists the remote clients plus the favorites backend when it
// has a breaker of its own.
func healthUpstreams(clients []*apiclient.Client, slots repository.SlotStore) []upstream {
	upstreams := make([]upstream, 0, len(clients)+1)
	for _, c := range clients {
		upstreams = append(upstreams, c)
	}
	if u, ok := slots.(upstream); ok {
		upstreams = append(upstreams, u)
	}
	return upstreams
}

// startMetricsServer serves Prometheus metrics and health probes on port
// until ctx is done.
//
// Endpoints:
//   - GET /metrics - Prometheus metrics
//   - GET /health - liveness, always 200
//   - GET /health/upstreams - 503 while any dependency's breaker is open
func startMetricsServer(ctx context.Context, logger *slog.Logger, port int, upstreams []upstream) *http.Server {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      newMetricsMux(upstreams),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("metrics server starting", slog.Int("port", port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server error", slog.Any("error", err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown error", slog.Any("error", err))
		} else {
			logger.Info("metrics server stopped")
		}
	}()

	return server
}

func newMetricsMux(upstreams []upstream) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/health/upstreams", upstreamHealthHandler(upstreams))
	return mux
}

// healthHandler handles GET /health requests (liveness probe).
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(HealthResponse{Status: "healthy"})
}

func upstreamHealthHandler(upstreams []upstream) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := UpstreamHealthResponse{
			Healthy:   true,
			Upstreams: make([]UpstreamStatus, 0, len(upstreams)),
		}
		for _, u := range upstreams {
			open := u.CircuitOpen()
			resp.Upstreams = append(resp.Upstreams, UpstreamStatus{Name: u.Service(), CircuitBreakerOpen: open})
			if open {
				resp.Healthy = false
			}
		}

		statusCode := http.StatusOK
		if !resp.Healthy {
			statusCode = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
