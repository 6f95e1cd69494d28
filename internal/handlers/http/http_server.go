package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/hadefuwa/osrs-wilderness/internal/app/dto"
	"github.com/hadefuwa/osrs-wilderness/internal/domain/useCases"
	"github.com/hadefuwa/osrs-wilderness/web"
)

// Server represents an HTTP server with all routes configured
type Server struct {
	statsService useCases.DeathStatsService
	broadcaster  useCases.Broadcaster
	rebuildCh    chan<- *dto.RebuildRequest
	mux          *http.ServeMux
	server       *http.Server
}

// NewServer creates a new HTTP server with configured routes
func NewServer(addr string, statsService useCases.DeathStatsService, broadcaster useCases.Broadcaster, rebuildCh chan<- *dto.RebuildRequest) *Server {
	mux := http.NewServeMux()

	server := &Server{
		statsService: statsService,
		broadcaster:  broadcaster,
		rebuildCh:    rebuildCh,
		mux:          mux,
		server: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	server.registerRoutes()

	return server
}

// registerRoutes configures all HTTP routes
func (s *Server) registerRoutes() {
	// API endpoints consumed by the dashboard
	s.mux.HandleFunc("/api/stats", s.handleStats)
	s.mux.HandleFunc("/api/records", s.handleRecords)
	s.mux.HandleFunc("/api/hotspots", s.handleHotspots)
	s.mux.HandleFunc("/api/regenerate", s.handleRegenerate)

	// Health check endpoint
	s.mux.HandleFunc("/health", s.handleHealth)

	// WebSocket endpoint
	s.mux.HandleFunc("/ws", s.broadcaster.Handler())

	// Embedded dashboard assets
	s.mux.Handle("/", http.FileServer(http.FS(web.Static())))
}

// Handler exposes the route table, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// handleStats serves the aggregate statistics snapshot.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.statsService.GetStatistics(r.Context())
	if err != nil {
		http.Error(w, "failed to get stats", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, dto.FromStats(stats))
}

// handleRecords serves the full record list for point plotting.
func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	dataset, err := s.statsService.GetDataset(r.Context())
	if err != nil {
		http.Error(w, "failed to get records", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, dto.FromDataset(dataset))
}

// handleHotspots serves the static hotspot table.
func (s *Server) handleHotspots(w http.ResponseWriter, r *http.Request) {
	hotspots, err := s.statsService.GetHotspots(r.Context())
	if err != nil {
		http.Error(w, "failed to get hotspots", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, dto.FromHotspots(hotspots))
}

// regenerateRequest is the optional POST body for /api/regenerate.
// Seed 0 means time-derived; count 0 keeps the current record count.
type regenerateRequest struct {
	Seed  int64 `json:"seed"`
	Count int   `json:"count"`
}

// handleRegenerate enqueues a dataset rebuild on the processor and
// waits for the result, so the response already reflects the new
// dataset.
func (s *Server) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req regenerateRequest
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}

	if req.Count == 0 {
		dataset, err := s.statsService.GetDataset(r.Context())
		if err != nil {
			http.Error(w, "failed to get current dataset", http.StatusInternalServerError)
			return
		}
		req.Count = len(dataset.Records)
	}
	if req.Count < 0 {
		http.Error(w, "count must be non-negative", http.StatusBadRequest)
		return
	}

	reply := make(chan dto.RebuildResult, 1)
	select {
	case s.rebuildCh <- &dto.RebuildRequest{Seed: req.Seed, Count: req.Count, Reply: reply}:
	default:
		http.Error(w, "rebuild queue is full", http.StatusServiceUnavailable)
		return
	}

	select {
	case <-r.Context().Done():
		http.Error(w, "request cancelled", http.StatusRequestTimeout)
		return
	case result := <-reply:
		if result.Err != nil {
			http.Error(w, "rebuild failed", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"seed":  result.Dataset.Seed,
			"stats": dto.FromStats(result.Dataset.Stats),
		})
	}
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// Start begins listening for HTTP requests
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
