package discord

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// OpsServer serves health and metrics endpoints for the bot process.
type OpsServer struct {
	server *http.Server
	svc    *Services
}

// NewOpsServer creates the operational HTTP server.
func NewOpsServer(port string, svc *Services) *OpsServer {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	srv := &OpsServer{
		server: &http.Server{
			Addr:    ":" + port,
			Handler: r,
		},
		svc: svc,
	}

	r.Get("/healthz", srv.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	return srv
}

// Start starts the server in the background.
func (s *OpsServer) Start() {
	go func() {
		slog.Info("Starting ops HTTP server", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Ops HTTP server failed", "error", err)
		}
	}()
}

// Stop shuts the server down gracefully.
func (s *OpsServer) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		slog.Error("Ops HTTP server shutdown failed", "error", err)
	}
}

type healthResponse struct {
	Status      string `json:"status"`
	CachedItems int    `json:"cached_items"`
}

func (s *OpsServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthResponse{
		Status:      "ok",
		CachedItems: s.svc.Cache.Len(),
	})
}
