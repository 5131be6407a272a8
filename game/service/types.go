package service

import (
	"time"

	"github.com/gridgames/arena/game/engine"
)

// MatchInfo provides information about a match session
type MatchInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	MatchState     *engine.MatchState `json:"match_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// PlaceResult contains the result of a placement operation
type PlaceResult struct {
	Success    bool               `json:"success"`
	MatchState *engine.MatchState `json:"match_state"`
	Message    string             `json:"message"`
	Reason     string             `json:"reason,omitempty"` // rejection code when success is false
	Events     []GameEvent        `json:"events,omitempty"`
	Step       *StepInfo          `json:"step,omitempty"`
	Attempted  *AttemptInfo       `json:"attempted_to,omitempty"`

	// Decision aids for the next player
	LegalMoveCount int               `json:"legal_move_count"`
	PossibleMoves  []engine.Position `json:"possible_moves,omitempty"`
	RenderedBoard  string            `json:"rendered_board,omitempty"`
}

// ReplayMove is one recorded placement to re-apply during a replay
type ReplayMove struct {
	Symbol string          `json:"symbol"`
	Pos    engine.Position `json:"pos"`
}

// ReplayResult contains the result of replaying a move sequence
type ReplayResult struct {
	// Summary
	MovesExecuted  int                `json:"moves_executed"`
	RequestedMoves int                `json:"requested_moves"`
	Success        bool               `json:"success"`
	MatchState     *engine.MatchState `json:"match_state"`
	Events         []GameEvent        `json:"events"`
	StoppedReason  string             `json:"stopped_reason,omitempty"`   // Human-readable reason
	StopReasonCode string             `json:"stop_reason_code,omitempty"` // Machine-friendly code: out_of_bounds|occupied|not_your_turn|bad_symbol|match_over
	StoppedOnMove  int                `json:"stopped_on_move,omitempty"`  // 1-based index of the move that caused the stop
	Truncated      bool               `json:"truncated,omitempty"`
	Limit          int                `json:"limit,omitempty"`

	// Start/end snapshot
	StartOpenCells int   `json:"start_open_cells"`
	EndOpenCells   int   `json:"end_open_cells"`
	ScoresBefore   []int `json:"scores_before"`
	ScoresAfter    []int `json:"scores_after"`

	// Per-step compact trace (only for this call)
	Steps []StepInfo `json:"steps,omitempty"`

	// Failure diagnostics
	Attempted *AttemptInfo `json:"attempted_to,omitempty"`

	// Final status aids
	Finished      bool              `json:"finished"`
	Outcome       engine.Outcome    `json:"outcome,omitempty"`
	Winner        int               `json:"winner,omitempty"`
	Message       string            `json:"message,omitempty"`
	PossibleMoves []engine.Position `json:"possible_moves,omitempty"`
	RenderedBoard string            `json:"rendered_board,omitempty"`
}

// StepInfo is a compact record for each accepted placement in a call
type StepInfo struct {
	Idx        int             `json:"idx"`
	Seat       int             `json:"seat"`
	Symbol     string          `json:"symbol"`
	Pos        engine.Position `json:"pos"`
	ScoreAfter int             `json:"score_after"` // acting seat's score after the placement
	Finished   bool            `json:"finished,omitempty"`
	Outcome    engine.Outcome  `json:"outcome,omitempty"`
}

// AttemptInfo details a rejected placement target
type AttemptInfo struct {
	Pos      engine.Position `json:"pos"`
	InBounds bool            `json:"in_bounds"`
	Owner    int             `json:"owner,omitempty"`  // occupying seat for occupied rejections
	Symbol   string          `json:"symbol,omitempty"` // occupying seat's symbol
	Reason   string          `json:"reason"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string          `json:"type"` // "placement", "reset", "victory", "draw"
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Position  engine.Position `json:"position,omitempty"`
	Seat      int             `json:"seat,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// ScoreboardResult reports the standing of every seat in a match
type ScoreboardResult struct {
	MatchID string          `json:"match_id"`
	Ruleset string          `json:"ruleset"`
	Status  engine.Status   `json:"status"`
	Outcome engine.Outcome  `json:"outcome,omitempty"`
	Winner  int             `json:"winner,omitempty"`
	Rows    []ScoreboardRow `json:"rows"`
}

// ScoreboardRow is one seat's line on the scoreboard
type ScoreboardRow struct {
	Seat     int    `json:"seat"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Score    int    `json:"score"`
	Tiles    int    `json:"tiles"`
	OnMove   bool   `json:"on_move"`
	IsWinner bool   `json:"is_winner"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for match creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
	Ruleset     string `json:"ruleset"`
	WinLength   int    `json:"win_length,omitempty"`
	Seats       int    `json:"seats"`
}

// ArchiveRecord captures a finished match for the archive store
type ArchiveRecord struct {
	MatchID    string                    `json:"match_id"`
	ConfigName string                    `json:"config_name"`
	Ruleset    string                    `json:"ruleset"`
	Rows       int                       `json:"rows"`
	Cols       int                       `json:"cols"`
	Seats      []engine.Seat             `json:"seats"`
	Outcome    engine.Outcome            `json:"outcome"`
	Winner     int                       `json:"winner"`
	Scores     []int                     `json:"scores"`
	Moves      []engine.MoveHistoryEntry `json:"moves"`
	StartedAt  time.Time                 `json:"started_at"`
	FinishedAt time.Time                 `json:"finished_at"`
}
