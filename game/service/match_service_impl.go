package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gridgames/arena/game/engine"
	"github.com/gridgames/arena/internal/log"
	"github.com/gridgames/arena/internal/metrics"
)

var logger = log.WithComponent("service")

// matchServiceImpl implements the MatchService interface
type matchServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	archiver Archiver
	notifier Notifier
	mu       sync.RWMutex
}

// NewMatchService creates a new match service instance. The archiver and
// notifier are optional; pass nil to run without an archive or live feed.
func NewMatchService(sessions SessionManager, configs ConfigManager, archiver Archiver, notifier Notifier) MatchService {
	return &matchServiceImpl{
		sessions: sessions,
		configs:  configs,
		archiver: archiver,
		notifier: notifier,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *matchServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateMatch creates a new match session
func (s *matchServiceImpl) CreateMatch(ctx context.Context, configName string) (*MatchInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Load configuration
	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	metrics.MatchesCreated.WithLabelValues(config.Ruleset).Inc()
	logger.Info().
		Str("match_id", session.ID).
		Str("ruleset", config.Ruleset).
		Msg("match created")

	// Determine the config identifier to return - prefer the input configName if provided,
	// otherwise look up the config_id by display name
	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return &MatchInfo{
		ID:             session.ID,
		ConfigName:     configID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		MatchState:     session.Engine.GetState(),
		GameConfig:     session.Config,
	}, nil
}

// GetMatch retrieves match information
func (s *matchServiceImpl) GetMatch(ctx context.Context, matchID string) (*MatchInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(matchID)

	return &MatchInfo{
		ID:             session.ID,
		ConfigName:     s.getConfigID(session.Config.Name),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		MatchState:     session.Engine.GetState(),
		GameConfig:     session.Config,
	}, nil
}

// ListMatches returns all active matches
func (s *matchServiceImpl) ListMatches(ctx context.Context) ([]*MatchInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*MatchInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &MatchInfo{
			ID:             sess.ID,
			ConfigName:     s.getConfigID(sess.Config.Name),
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			MatchState:     sess.Engine.GetState(),
			GameConfig:     sess.Config,
		})
	}

	return result, nil
}

// DeleteMatch removes a match
func (s *matchServiceImpl) DeleteMatch(ctx context.Context, matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(matchID)
}

// Place executes a single tile placement for a match. The acting seat is
// resolved from its symbol. A rejected placement is not an error: the
// result carries success=false plus the rejection reason and feedback.
func (s *matchServiceImpl) Place(ctx context.Context, matchID, symbol string, pos engine.Position, reset bool) (*PlaceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(matchID)

	events := []GameEvent{}

	if reset {
		sess.Engine.Reset()
		events = append(events, GameEvent{
			Type:      "reset",
			Message:   "Match reset to an empty board",
			Timestamp: time.Now(),
		})
	}

	state := sess.Engine.GetState()
	wasOver := sess.Engine.IsOver()

	seat, ok := state.SeatBySymbol(symbol)
	if !ok {
		metrics.PlacementsTotal.WithLabelValues(engine.ReasonBadSymbol).Inc()
		return &PlaceResult{
			Success:        false,
			MatchState:     state,
			Message:        fmt.Sprintf("No seat plays symbol '%s' in this match.", symbol),
			Reason:         engine.ReasonBadSymbol,
			Events:         events,
			LegalMoveCount: state.Board.OpenCount(),
		}, nil
	}

	placeErr := sess.Engine.Place(seat, pos)
	state = sess.Engine.GetState()

	result := &PlaceResult{
		Success:    placeErr == nil,
		MatchState: state,
		Message:    state.Message,
		Events:     events,
	}

	if placeErr != nil {
		var pe *engine.PlaceError
		if !errors.As(placeErr, &pe) {
			return nil, placeErr
		}

		metrics.PlacementsTotal.WithLabelValues(pe.Reason).Inc()
		result.Message = pe.Message
		result.Reason = pe.Reason
		result.Attempted = s.buildAttemptInfo(state, pos, pe.Reason)
	} else {
		metrics.PlacementsTotal.WithLabelValues("ok").Inc()
		result.Events = append(result.Events, s.extractPlacementEvents(state, seat, pos)...)
		result.Step = &StepInfo{
			Idx:        1,
			Seat:       seat,
			Symbol:     symbol,
			Pos:        pos,
			ScoreAfter: state.Scores[seat-1],
			Finished:   state.Status == engine.StatusFinished,
			Outcome:    state.Outcome,
		}
	}

	// Decision aids for the next player
	result.LegalMoveCount = state.Board.OpenCount()
	result.PossibleMoves = sess.Engine.LegalMoves()
	result.RenderedBoard = sess.Engine.Render()

	if !wasOver && sess.Engine.IsOver() {
		s.recordFinish(ctx, sess)
	}
	if s.notifier != nil && (placeErr == nil || reset) {
		s.notifier.BroadcastToMatch(matchID, state)
	}

	// Auto-save session after placement
	if err := s.sessions.Save(matchID); err != nil {
		logger.Warn().Err(err).Str("match_id", matchID).Msg("failed to persist match after placement")
	}

	return result, nil
}

// Replay re-applies a recorded move sequence in order. It stops at the
// first rejected placement and reports how far it got.
func (s *matchServiceImpl) Replay(ctx context.Context, matchID string, moves []ReplayMove, reset bool) (*ReplayResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(matchID)

	result := &ReplayResult{
		RequestedMoves: len(moves),
		Events:         make([]GameEvent, 0),
		Success:        true,
	}

	if reset {
		sess.Engine.Reset()
		result.Events = append(result.Events, GameEvent{
			Type:      "reset",
			Message:   "Match reset to an empty board",
			Timestamp: time.Now(),
		})
	}

	state := sess.Engine.GetState()
	wasOver := sess.Engine.IsOver()
	result.StartOpenCells = state.Board.OpenCount()
	result.ScoresBefore = append([]int(nil), state.Scores...)

	// Limit moves to prevent abuse
	if len(moves) > engine.MaxReplayMoves {
		result.Truncated = true
		result.Limit = engine.MaxReplayMoves
		moves = moves[:engine.MaxReplayMoves]
	}

	for i, move := range moves {
		if sess.Engine.IsOver() {
			result.StoppedReason = "match is over"
			result.StopReasonCode = engine.ReasonMatchOver
			result.StoppedOnMove = result.MovesExecuted + 1
			break
		}

		seat, ok := state.SeatBySymbol(move.Symbol)
		if !ok {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("move %d: no seat plays symbol '%s'", i+1, move.Symbol)
			result.StopReasonCode = engine.ReasonBadSymbol
			result.StoppedOnMove = i + 1
			break
		}

		if placeErr := sess.Engine.Place(seat, move.Pos); placeErr != nil {
			var pe *engine.PlaceError
			if !errors.As(placeErr, &pe) {
				return nil, placeErr
			}

			result.Success = false
			result.StoppedReason = fmt.Sprintf("move %d rejected: %s", i+1, pe.Message)
			result.StopReasonCode = pe.Reason
			result.StoppedOnMove = i + 1
			result.Attempted = s.buildAttemptInfo(sess.Engine.GetState(), move.Pos, pe.Reason)
			break
		}

		result.MovesExecuted++
		state = sess.Engine.GetState()

		result.Events = append(result.Events, s.extractPlacementEvents(state, seat, move.Pos)...)
		result.Steps = append(result.Steps, StepInfo{
			Idx:        i + 1,
			Seat:       seat,
			Symbol:     move.Symbol,
			Pos:        move.Pos,
			ScoreAfter: state.Scores[seat-1],
			Finished:   state.Status == engine.StatusFinished,
			Outcome:    state.Outcome,
		})
	}

	state = sess.Engine.GetState()
	result.MatchState = state
	result.EndOpenCells = state.Board.OpenCount()
	result.ScoresAfter = append([]int(nil), state.Scores...)
	result.Finished = state.Status == engine.StatusFinished
	result.Outcome = state.Outcome
	result.Winner = state.Winner
	result.Message = state.Message
	result.PossibleMoves = sess.Engine.LegalMoves()
	result.RenderedBoard = sess.Engine.Render()

	if !wasOver && sess.Engine.IsOver() {
		s.recordFinish(ctx, sess)
	}
	if s.notifier != nil && (result.MovesExecuted > 0 || reset) {
		s.notifier.BroadcastToMatch(matchID, state)
	}

	// Auto-save session after replay
	if err := s.sessions.Save(matchID); err != nil {
		logger.Warn().Err(err).Str("match_id", matchID).Msg("failed to persist match after replay")
	}

	return result, nil
}

// Reset clears the board and restarts the match. The cumulative move
// history survives; only the current segment is cleared.
func (s *matchServiceImpl) Reset(ctx context.Context, matchID string) (*engine.MatchState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(matchID)
	state := sess.Engine.Reset()

	if s.notifier != nil {
		s.notifier.BroadcastToMatch(matchID, state)
	}

	// Auto-save session after reset
	if err := s.sessions.Save(matchID); err != nil {
		logger.Warn().Err(err).Str("match_id", matchID).Msg("failed to persist match after reset")
	}

	return state, nil
}

// GetMatchState retrieves the current match state
func (s *matchServiceImpl) GetMatchState(ctx context.Context, matchID string) (*engine.MatchState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(matchID)
	return sess.Engine.GetState(), nil
}

// GetMoveHistory returns paginated move history
func (s *matchServiceImpl) GetMoveHistory(ctx context.Context, matchID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	// Calculate pagination
	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	// Get the slice of moves
	var moves []engine.MoveHistoryEntry
	if opts.Order == "desc" {
		// Reverse order (most recent first)
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else {
		// Normal chronological order
		if start < total {
			moves = history[start:end]
		}
	}

	// Ensure moves is not nil
	if moves == nil {
		moves = []engine.MoveHistoryEntry{}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// Scoreboard reports the standing of every seat in a match
func (s *matchServiceImpl) Scoreboard(ctx context.Context, matchID string) (*ScoreboardResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}

	state := sess.Engine.GetState()
	result := &ScoreboardResult{
		MatchID: sess.ID,
		Ruleset: state.Ruleset,
		Status:  state.Status,
		Outcome: state.Outcome,
		Winner:  state.Winner,
	}

	for i, seat := range state.Seats {
		seatNum := i + 1
		result.Rows = append(result.Rows, ScoreboardRow{
			Seat:     seatNum,
			Name:     seat.Name,
			Symbol:   seat.Symbol,
			Score:    state.Scores[i],
			Tiles:    state.Board.CountOwned(seatNum),
			OnMove:   state.Status == engine.StatusInProgress && state.Turn == seatNum,
			IsWinner: state.Winner == seatNum,
		})
	}

	return result, nil
}

// ListConfigs returns available game configurations
func (s *matchServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *matchServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *matchServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// extractPlacementEvents generates events from an accepted placement
func (s *matchServiceImpl) extractPlacementEvents(state *engine.MatchState, seat int, pos engine.Position) []GameEvent {
	events := []GameEvent{
		{
			Type:      "placement",
			Message:   fmt.Sprintf("Player %s placed a tile at (%d,%d)", state.Seats[seat-1].Name, pos.Row, pos.Col),
			Timestamp: time.Now(),
			Position:  pos,
			Seat:      seat,
		},
	}

	if state.Status == engine.StatusFinished {
		eventType := "draw"
		if state.Outcome == engine.OutcomeWin {
			eventType = "victory"
		}
		events = append(events, GameEvent{
			Type:      eventType,
			Message:   state.Message,
			Timestamp: time.Now(),
			Seat:      state.Winner,
		})
	}

	return events
}

// buildAttemptInfo details the target cell of a rejected placement
func (s *matchServiceImpl) buildAttemptInfo(state *engine.MatchState, pos engine.Position, reason string) *AttemptInfo {
	info := &AttemptInfo{
		Pos:      pos,
		InBounds: state.Board.InBounds(pos),
		Reason:   reason,
	}

	if info.InBounds {
		if owner := state.Board.Owner(pos); owner != 0 {
			info.Owner = owner
			info.Symbol = state.Seats[owner-1].Symbol
		}
	}

	return info
}

// recordFinish archives a match that just reached a terminal state and
// updates the finish metrics. Archive failures are logged, not returned;
// the placement that ended the match already succeeded.
func (s *matchServiceImpl) recordFinish(ctx context.Context, sess *Session) {
	state := sess.Engine.GetState()

	metrics.MatchesFinished.WithLabelValues(string(state.Outcome)).Inc()
	metrics.MatchDuration.Observe(time.Since(sess.CreatedAt).Seconds())

	logger.Info().
		Str("match_id", sess.ID).
		Str("outcome", string(state.Outcome)).
		Int("winner", state.Winner).
		Ints("scores", state.Scores).
		Msg("match finished")

	if s.archiver == nil {
		return
	}

	record := &ArchiveRecord{
		MatchID:    sess.ID,
		ConfigName: sess.Config.Name,
		Ruleset:    state.Ruleset,
		Rows:       state.Board.Rows,
		Cols:       state.Board.Cols,
		Seats:      state.Seats,
		Outcome:    state.Outcome,
		Winner:     state.Winner,
		Scores:     append([]int(nil), state.Scores...),
		Moves:      append([]engine.MoveHistoryEntry(nil), state.CurrentMoves...),
		StartedAt:  sess.CreatedAt,
		FinishedAt: time.Now(),
	}

	if err := s.archiver.ArchiveMatch(ctx, record); err != nil {
		metrics.ArchiveFailures.Inc()
		logger.Error().Err(err).Str("match_id", sess.ID).Msg("failed to archive finished match")
	}
}
