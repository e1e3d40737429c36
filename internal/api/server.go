package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/govlayer/backend/internal/config"
	"github.com/govlayer/backend/internal/graph"
	"github.com/govlayer/backend/internal/pipeline"
	"github.com/govlayer/backend/internal/store"
	"github.com/govlayer/backend/internal/tenant"
	"github.com/govlayer/backend/internal/websocket"
)

// Server exposes the decision pipeline via REST/JSON plus SSE and
// WebSocket streams.
type Server struct {
	cfgs     *config.Manager
	registry *tenant.Registry
	records  *store.Store
	graphs   *graph.Store
	pipe     *pipeline.Pipeline
	streamer *websocket.Streamer
}

func NewServer(
	cfgs *config.Manager,
	registry *tenant.Registry,
	records *store.Store,
	graphs *graph.Store,
	pipe *pipeline.Pipeline,
	streamer *websocket.Streamer,
) *Server {
	return &Server{
		cfgs:     cfgs,
		registry: registry,
		records:  records,
		graphs:   graphs,
		pipe:     pipe,
		streamer: streamer,
	}
}

// Router builds the HTTP routing table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	// CORS middleware
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if req.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, req)
		})
	})

	r.HandleFunc("/", s.handleRoot).Methods("GET")
	r.HandleFunc("/health", s.handleHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	r.HandleFunc("/v1/decisions", s.handleSubmit).Methods("POST")
	r.HandleFunc("/v1/decisions/{id}", s.handleGetDecision).Methods("GET")
	r.HandleFunc("/v1/decisions/{id}/stream", s.handleStream).Methods("GET")

	r.HandleFunc("/v1/companies", s.handleCompanies).Methods("GET")
	r.HandleFunc("/v1/companies/{id}", s.handleCompany).Methods("GET")
	r.HandleFunc("/v1/fixtures", s.handleFixtures).Methods("GET")

	r.HandleFunc("/v1/events/ws", s.streamer.HandleWebSocket)

	return r
}

// Start serves HTTP on the configured port and blocks.
func (s *Server) Start() error {
	global := s.cfgs.Get("")
	addr := ":" + global.Server.Port
	slog.Info("api server listening", "addr", addr, "env", global.Server.Env)
	return http.ListenAndServe(addr, s.Router())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("response encoding failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg, detail string) {
	writeJSON(w, status, map[string]string{"error": msg, "detail": detail})
}

func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
