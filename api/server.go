package api

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gridgames/arena/game/engine"
	"github.com/gridgames/arena/game/service"
	"github.com/gridgames/arena/internal/log"
	"github.com/gridgames/arena/store"
	"github.com/gridgames/arena/transport/websocket"
)

var logger = log.WithComponent("api")

// Server represents the REST API server
type Server struct {
	service service.MatchService
	hub     *websocket.Hub
	archive *store.Store
	router  *mux.Router
}

// NewServer creates a new API server. The archive is optional; archive
// routes respond 503 when it is nil.
func NewServer(matchService service.MatchService, hub *websocket.Hub, archive *store.Store) *Server {
	s := &Server{
		service: matchService,
		hub:     hub,
		archive: archive,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.Use(requestLogging)

	// API routes with clean REST patterns
	api := s.router.PathPrefix("/api").Subrouter()

	// Match management
	api.HandleFunc("/matches", s.handleCreateMatch).Methods("POST")
	api.HandleFunc("/matches", s.handleListMatches).Methods("GET")
	api.HandleFunc("/matches/{id}", s.handleGetMatch).Methods("GET")
	api.HandleFunc("/matches/{id}", s.handleDeleteMatch).Methods("DELETE")

	// Game operations
	api.HandleFunc("/matches/{id}/state", s.handleGetMatchState).Methods("GET")
	api.HandleFunc("/matches/{id}/moves", s.handlePlace).Methods("POST")
	api.HandleFunc("/matches/{id}/replay", s.handleReplay).Methods("POST")
	api.HandleFunc("/matches/{id}/reset", s.handleReset).Methods("POST")
	api.HandleFunc("/matches/{id}/history", s.handleGetHistory).Methods("GET")
	api.HandleFunc("/matches/{id}/scores", s.handleScoreboard).Methods("GET")

	// Configuration
	api.HandleFunc("/configs", s.handleListConfigs).Methods("GET")
	api.HandleFunc("/configs", s.handleCreateConfig).Methods("POST")
	api.HandleFunc("/configs/{name}", s.handleGetConfig).Methods("GET")

	// Archive
	api.HandleFunc("/archive/recent", s.handleArchiveRecent).Methods("GET")
	api.HandleFunc("/archive/matches/{id}", s.handleArchiveMatch).Methods("GET")
	api.HandleFunc("/archive/leaderboard", s.handleLeaderboard).Methods("GET")
	api.HandleFunc("/archive/rulesets", s.handleRulesetStats).Methods("GET")

	// Operational endpoints
	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	s.router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// requestLogging emits one structured log line per request
func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Hijack keeps the websocket upgrade working behind the logging middleware
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return hj.Hijack()
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// Match Handlers

func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConfigID   string `json:"config_id,omitempty"`
		ConfigName string `json:"config_name,omitempty"` // Deprecated, use config_id
	}

	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	// Support both parameter names, but prefer config_id
	configID := req.ConfigID
	if configID == "" && req.ConfigName != "" {
		configID = req.ConfigName
	}

	match, err := s.service.CreateMatch(r.Context(), configID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, match)
}

func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := s.service.ListMatches(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Parse query parameters
	query := r.URL.Query()
	sortBy := query.Get("sort")    // "created", "accessed" (default)
	order := query.Get("order")    // "asc", "desc" (default: "desc")
	limitStr := query.Get("limit") // number of matches to return

	// Set defaults
	if sortBy == "" {
		sortBy = "accessed"
	}
	if order == "" {
		order = "desc"
	}

	// Sort matches
	sort.Slice(matches, func(i, j int) bool {
		var ti, tj time.Time
		if sortBy == "created" {
			ti, tj = matches[i].CreatedAt, matches[j].CreatedAt
		} else { // "accessed"
			ti, tj = matches[i].LastAccessedAt, matches[j].LastAccessedAt
		}

		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj) // desc
	})

	// Apply limit if specified
	limit := len(matches)
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(matches) {
			limit = l
		}
	}
	matches = matches[:limit]

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(matches),
		"matches": matches,
		"sort":    sortBy,
		"order":   order,
	})
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["id"]

	match, err := s.service.GetMatch(r.Context(), matchID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, match)
}

func (s *Server) handleDeleteMatch(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["id"]

	err := s.service.DeleteMatch(r.Context(), matchID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Match %s deleted", matchID),
	})
}

// Game Operation Handlers

func (s *Server) handleGetMatchState(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["id"]

	state, err := s.service.GetMatchState(r.Context(), matchID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, state)
}

// placeRequest accepts either a parsed row/col pair or the "row,col"
// string form players type
type placeRequest struct {
	Symbol   string `json:"symbol"`
	Row      *int   `json:"row,omitempty"`
	Col      *int   `json:"col,omitempty"`
	Position string `json:"position,omitempty"`
	Reset    bool   `json:"reset,omitempty"`
}

func (req *placeRequest) position() (engine.Position, error) {
	if req.Position != "" {
		return engine.ParsePosition(req.Position)
	}
	if req.Row == nil || req.Col == nil {
		return engine.Position{}, &engine.PlaceError{
			Reason:  engine.ReasonBadFormat,
			Message: "Provide either row and col fields or a position formatted as row,col",
		}
	}
	return engine.Position{Row: *req.Row, Col: *req.Col}, nil
}

func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["id"]

	var req placeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pos, err := req.position()
	if err != nil {
		pe := err.(*engine.PlaceError)
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":  pe.Message,
			"reason": pe.Reason,
		})
		return
	}

	result, err := s.service.Place(r.Context(), matchID, req.Symbol, pos, req.Reset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if result.Step != nil {
		logger.Info().
			Str("match_id", matchID).
			Str("symbol", req.Symbol).
			Int("row", pos.Row).
			Int("col", pos.Col).
			Int("score", result.Step.ScoreAfter).
			Bool("finished", result.Step.Finished).
			Msg("tile placed")
	} else {
		logger.Info().
			Str("match_id", matchID).
			Str("symbol", req.Symbol).
			Int("row", pos.Row).
			Int("col", pos.Col).
			Str("reason", result.Reason).
			Msg("placement rejected")
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleReplay(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["id"]

	var req struct {
		Moves []service.ReplayMove `json:"moves"`
		Reset bool                 `json:"reset,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.Replay(r.Context(), matchID, req.Moves, req.Reset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info().
		Str("match_id", matchID).
		Int("executed", result.MovesExecuted).
		Int("requested", result.RequestedMoves).
		Str("stop", result.StopReasonCode).
		Msg("replay finished")

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["id"]

	state, err := s.service.Reset(r.Context(), matchID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Match reset successfully",
		"state":   state,
	})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["id"]

	// Parse query parameters
	opts := service.HistoryOptions{
		Page:  1,
		Limit: 20,
		Order: "desc",
	}

	query := r.URL.Query()
	if pageStr := query.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			opts.Page = p
		}
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			opts.Limit = l
		}
	}

	if order := query.Get("order"); order == "asc" || order == "desc" {
		opts.Order = order
	}

	history, err := s.service.GetMoveHistory(r.Context(), matchID, opts)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, history)
}

func (s *Server) handleScoreboard(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["id"]

	board, err := s.service.Scoreboard(r.Context(), matchID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, board)
}

// Configuration Handlers

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.service.ListConfigs(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, configs)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	configName := vars["name"]

	// Remove .json extension if present
	configName = strings.TrimSuffix(configName, ".json")

	config, err := s.service.LoadConfig(r.Context(), configName)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, config)
}

func (s *Server) handleCreateConfig(w http.ResponseWriter, r *http.Request) {
	// Decode directly into engine.GameConfig which has the correct structure
	var gameConfig engine.GameConfig

	if err := json.NewDecoder(r.Body).Decode(&gameConfig); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Validate required fields
	if gameConfig.Name == "" {
		respondError(w, http.StatusBadRequest, "Config name is required")
		return
	}

	// Save configuration
	if err := s.service.SaveConfig(r.Context(), gameConfig.Name, &gameConfig); err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save config: %v", err))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Configuration saved successfully",
		"config_id": gameConfig.Name,
	})
}

// Archive Handlers

func (s *Server) handleArchiveRecent(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		respondError(w, http.StatusServiceUnavailable, "Archive is not configured")
		return
	}

	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	matches, err := s.archive.ListRecent(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(matches),
		"matches": matches,
	})
}

func (s *Server) handleArchiveMatch(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		respondError(w, http.StatusServiceUnavailable, "Archive is not configured")
		return
	}

	vars := mux.Vars(r)
	match, err := s.archive.GetMatch(r.Context(), vars["id"])
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, match)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		respondError(w, http.StatusServiceUnavailable, "Archive is not configured")
		return
	}

	entries, err := s.archive.Leaderboard(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(entries),
		"players": entries,
	})
}

func (s *Server) handleRulesetStats(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		respondError(w, http.StatusServiceUnavailable, "Archive is not configured")
		return
	}

	stats, err := s.archive.RulesetStats(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(stats),
		"rulesets": stats,
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	matchID := r.URL.Query().Get("match")
	if matchID == "" {
		http.Error(w, "match parameter required", http.StatusBadRequest)
		return
	}

	// Verify match exists
	_, err := s.service.GetMatch(context.Background(), matchID)
	if err != nil {
		http.Error(w, "Invalid match", http.StatusNotFound)
		return
	}

	// Upgrade to WebSocket
	s.hub.ServeWS(w, r, matchID)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
