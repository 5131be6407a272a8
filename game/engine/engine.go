package engine

import "fmt"

// Engine provides the main interface for match operations
type Engine interface {
	// Match state management
	GetState() *MatchState
	SetState(state *MatchState) error
	Reset() *MatchState
	IsOver() bool
	Outcome() Outcome
	Winner() int
	Scores() []int
	Turn() int

	// Placement operations
	Place(seat int, pos Position) error
	CanPlace(pos Position) bool
	LegalMoves() []Position

	// Configuration
	GetConfig() *GameConfig
	SetConfig(config *GameConfig) error

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry

	// Views
	Render() string
	Describe() string
}

// GameEngine implements the Engine interface
type GameEngine struct {
	state  *MatchState
	config *GameConfig
	rules  Rules
}

// NewEngine creates a new game engine with the provided configuration
func NewEngine(config *GameConfig) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	rules, err := GetRules(config.Ruleset)
	if err != nil {
		return nil, err
	}

	engine := &GameEngine{
		config: config,
		rules:  rules,
		state:  InitMatchStateFromConfig(config),
	}

	return engine, nil
}

// NewEngineWithDefaults creates a new game engine with the built-in
// default configuration
func NewEngineWithDefaults() *GameEngine {
	config := DefaultConfig()
	rules, _ := GetRules(config.Ruleset)
	return &GameEngine{
		config: config,
		rules:  rules,
		state:  InitMatchStateFromConfig(config),
	}
}

// GetState returns the current match state
func (e *GameEngine) GetState() *MatchState {
	return e.state
}

// SetState sets the match state (used for persistence loading)
func (e *GameEngine) SetState(state *MatchState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	e.state = state
	return nil
}

// Reset returns the match to an empty board. Cumulative history and move
// totals survive the reset; only the current segment is cleared.
func (e *GameEngine) Reset() *MatchState {
	prevHistory := e.state.MoveHistory
	prevTotal := e.state.TotalMoves

	e.state = InitMatchStateFromConfig(e.config)

	e.state.MoveHistory = prevHistory
	e.state.TotalMoves = prevTotal
	e.state.CurrentMoves = []MoveHistoryEntry{}
	e.state.CurrentMovesCount = 0

	return e.state
}

// IsOver returns whether the match has finished
func (e *GameEngine) IsOver() bool {
	return e.state.Status == StatusFinished
}

// Outcome returns how the match ended, or OutcomeNone while in progress
func (e *GameEngine) Outcome() Outcome {
	return e.state.Outcome
}

// Winner returns the 1-based seat number of the winner, or 0 when the
// match is unfinished or drawn
func (e *GameEngine) Winner() int {
	return e.state.Winner
}

// Scores returns the current per-seat scores, index 0 holding seat 1
func (e *GameEngine) Scores() []int {
	return e.state.Scores
}

// Turn returns the 1-based seat number whose move it is
func (e *GameEngine) Turn() int {
	return e.state.Turn
}

// Place attempts to place a tile for the given seat at the position
func (e *GameEngine) Place(seat int, pos Position) error {
	return e.state.PlaceTile(seat, pos, e.config, e.rules)
}

// CanPlace checks whether a tile could legally go at the position for the
// seat currently on move
func (e *GameEngine) CanPlace(pos Position) bool {
	if e.state.Status == StatusFinished {
		return false
	}
	return e.state.Board.InBounds(pos) && e.state.Board.Owner(pos) == 0
}

// LegalMoves returns every open position in row-major order, or nil once
// the match is over
func (e *GameEngine) LegalMoves() []Position {
	if e.state.Status == StatusFinished {
		return nil
	}
	return e.state.Board.OpenPositions()
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// SetConfig sets a new game configuration and resets the match
func (e *GameEngine) SetConfig(config *GameConfig) error {
	if err := ValidateGameConfig(config); err != nil {
		return err
	}

	rules, err := GetRules(config.Ruleset)
	if err != nil {
		return err
	}

	e.config = config
	e.rules = rules
	e.state = InitMatchStateFromConfig(config)
	return nil
}

// GetMoveHistory returns the complete move history
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return e.state.MoveHistory
}

// GetLastMove returns the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.state.MoveHistory) == 0 {
		return nil
	}
	return &e.state.MoveHistory[len(e.state.MoveHistory)-1]
}

// Render returns the board drawn as an ASCII grid
func (e *GameEngine) Render() string {
	return RenderBoard(&e.state.Board, e.state.Seats)
}

// Describe returns the ruleset's objective summary for this configuration
func (e *GameEngine) Describe() string {
	return e.rules.Describe(e.config)
}
