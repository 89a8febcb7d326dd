// Package server exposes the live simulation over HTTP for the
// dashboard frontend.
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	"github.com/monxcode/GeoSense-Udaipur/internal/geo"
	"github.com/monxcode/GeoSense-Udaipur/internal/metrics"
	"github.com/monxcode/GeoSense-Udaipur/internal/models"
	"github.com/monxcode/GeoSense-Udaipur/internal/simulator"
)

const (
	defaultSafeRouteLimit = 5
	shutdownTimeout       = 5 * time.Second
)

// Server wraps one Simulator behind an HTTP API. The simulator is not
// goroutine safe, so the background ticker and the manual tick
// endpoint take the write lock and every read handler works on a
// snapshot taken under the read lock.
type Server struct {
	config *models.Config
	sim    *simulator.Simulator
	output simulator.OutputDestination

	mu sync.RWMutex
}

// New wires a server around an already loaded simulator. The caller
// keeps ownership of the output destination and closes it after Run
// returns.
func New(config *models.Config, sim *simulator.Simulator, output simulator.OutputDestination) *Server {
	return &Server{config: config, sim: sim, output: output}
}

// Handler builds the API routes with CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/roads", methodGuard(http.MethodGet, s.handleRoads))
	mux.HandleFunc("/api/roads/geojson", methodGuard(http.MethodGet, s.handleRoadsGeoJSON))
	mux.HandleFunc("/api/kpis", methodGuard(http.MethodGet, s.handleKPIs))
	mux.HandleFunc("/api/status", methodGuard(http.MethodGet, s.handleStatus))
	mux.HandleFunc("/api/safe-routes", methodGuard(http.MethodGet, s.handleSafeRoutes))
	mux.HandleFunc("/api/hotspots", methodGuard(http.MethodGet, s.handleHotspots))
	mux.HandleFunc("/api/tick", methodGuard(http.MethodPost, s.handleTick))
	mux.HandleFunc("/healthz", methodGuard(http.MethodGet, s.handleHealthz))

	c := cors.New(cors.Options{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})
	return c.Handler(mux)
}

// Run serves the API and drives the background ticker until the
// context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	addr := s.config.HTTPAddr
	if addr == "" {
		addr = ":8080"
	}
	interval := s.config.TickInterval
	if interval <= 0 {
		interval = 3 * time.Second
	}

	if err := s.sim.EmitSnapshot(s.output); err != nil {
		log.Printf("Failed to write initial snapshot: %v", err)
	}

	httpServer := &http.Server{Addr: addr, Handler: s.Handler()}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Dashboard API listening on %s, tick every %s", addr, interval)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if tick, err := s.tick(); err != nil {
					log.Printf("Tick %d: %v", tick, err)
				}
			}
		}
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *Server) snapshot() []models.RoadRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sim.Snapshot()
}

// tick advances the simulation one step. A sink write failure does not
// undo the step, so the new tick count is reported either way.
func (s *Server) tick() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.sim.Tick(s.output)
	return s.sim.TickCount, err
}

type statusResponse struct {
	City         string    `json:"city"`
	RoadCount    int       `json:"roadCount"`
	Tick         int64     `json:"tick"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Trend        string    `json:"trend"`
	SafetyStatus string    `json:"safetyStatus"`
}

func (s *Server) status() statusResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	kpis := s.sim.KPIs()
	return statusResponse{
		City:         s.config.CityName,
		RoadCount:    len(s.sim.Roads),
		Tick:         s.sim.TickCount,
		UpdatedAt:    s.sim.CurrentTime,
		Trend:        string(metrics.TrendLabel(kpis.AvgCongestion)),
		SafetyStatus: string(metrics.SafetyStatusLabel(kpis.TotalAccidents)),
	}
}

func (s *Server) handleRoads(w http.ResponseWriter, r *http.Request) {
	band, err := metrics.ParseBand(r.URL.Query().Get("band"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	roads := metrics.FilterByBand(s.snapshot(), band)
	roads = metrics.FilterByName(roads, r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, roads)
}

func (s *Server) handleRoadsGeoJSON(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, geo.RoadFeatureCollection(s.snapshot()))
}

func (s *Server) handleKPIs(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	kpis := s.sim.KPIs()
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, kpis)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.status())
}

func (s *Server) handleSafeRoutes(w http.ResponseWriter, r *http.Request) {
	limit := defaultSafeRouteLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "limit must be an integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}
	writeJSON(w, http.StatusOK, metrics.TopSafeRoutes(s.snapshot(), limit))
}

func (s *Server) handleHotspots(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, metrics.AccidentHotspots(s.snapshot()))
}

// handleTick advances one step for the dashboard's refresh button. A
// failing sink is logged but the advanced state is still reported.
func (s *Server) handleTick(w http.ResponseWriter, r *http.Request) {
	if tick, err := s.tick(); err != nil {
		log.Printf("Manual tick %d: %v", tick, err)
	}
	writeJSON(w, http.StatusOK, s.status())
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func methodGuard(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
