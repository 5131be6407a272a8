package engine

import (
	"errors"
	"testing"
)

func createTestConfig() *GameConfig {
	config := &GameConfig{
		Name:        "Engine Test Config",
		Description: "Configuration for engine integration tests",
		Rows:        3,
		Cols:        3,
		Ruleset:     "connected",
		Seats: []Seat{
			{Name: "alice", Symbol: "*"},
			{Name: "bob", Symbol: "o"},
		},
	}
	config.Messages.Welcome = "Starting game."
	config.Messages.TurnPrompt = "Player %s's turn."
	config.Messages.Victory = "Player %s wins with a largest component of %d tiles!"
	config.Messages.Draw = "Game ended in a draw at %d tiles apiece."
	config.Messages.MatchOver = "The match is already over."
	config.Messages.NotYourTurn = "It is not player %s's turn."
	return config
}

// placeAll plays a scripted sequence of positions, alternating seats from 1
func placeAll(t *testing.T, e *GameEngine, positions []Position) {
	t.Helper()
	for i, pos := range positions {
		seat := i%len(e.GetState().Seats) + 1
		if err := e.Place(seat, pos); err != nil {
			t.Fatalf("Move %d: failed to place seat %d at (%d,%d): %v", i+1, seat, pos.Row, pos.Col, err)
		}
	}
}

func TestNewEngine(t *testing.T) {
	config := createTestConfig()
	engine, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create new engine: %v", err)
	}

	if engine == nil {
		t.Fatal("Expected engine to be non-nil")
	}

	// Test initial state
	state := engine.GetState()
	if state.Turn != 1 {
		t.Errorf("Expected seat 1 to open the match, got turn %d", state.Turn)
	}
	if state.Status != StatusInProgress {
		t.Errorf("Expected status %s, got %s", StatusInProgress, state.Status)
	}
	if engine.IsOver() {
		t.Error("Expected match not to be over initially")
	}
	if state.Board.OpenCount() != 9 {
		t.Errorf("Expected 9 open cells on a 3x3 board, got %d", state.Board.OpenCount())
	}
	if len(state.Scores) != 2 || state.Scores[0] != 0 || state.Scores[1] != 0 {
		t.Errorf("Expected zeroed scores for both seats, got %v", state.Scores)
	}
	if state.Message != config.Messages.Welcome {
		t.Errorf("Expected welcome message '%s', got '%s'", config.Messages.Welcome, state.Message)
	}
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	config := createTestConfig()
	config.Name = "" // Make config invalid

	_, err := NewEngine(config)
	if err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestNewEngineWithDefaults(t *testing.T) {
	engine := NewEngineWithDefaults()
	if engine == nil {
		t.Fatal("Expected engine to be non-nil")
	}

	// Should carry the built-in 5x5 duel
	config := engine.GetConfig()
	if config.Rows != 5 || config.Cols != 5 {
		t.Errorf("Expected 5x5 default board, got %dx%d", config.Rows, config.Cols)
	}
	if config.Ruleset != "connected" {
		t.Errorf("Expected default ruleset 'connected', got '%s'", config.Ruleset)
	}
	if len(config.Seats) != 2 {
		t.Errorf("Expected 2 default seats, got %d", len(config.Seats))
	}
	if config.Seats[0].Symbol != "*" || config.Seats[1].Symbol != "o" {
		t.Errorf("Expected default symbols '*' and 'o', got '%s' and '%s'",
			config.Seats[0].Symbol, config.Seats[1].Symbol)
	}
}

func TestEngine_BasicPlacement(t *testing.T) {
	config := createTestConfig()
	engine, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	pos := Position{Row: 0, Col: 1}
	if err := engine.Place(1, pos); err != nil {
		t.Fatalf("Expected placement to succeed: %v", err)
	}

	state := engine.GetState()
	if owner := state.Board.Owner(pos); owner != 1 {
		t.Errorf("Expected cell (0,1) owned by seat 1, got %d", owner)
	}
	if state.Turn != 2 {
		t.Errorf("Expected turn to pass to seat 2, got %d", state.Turn)
	}
	if state.Scores[0] != 1 {
		t.Errorf("Expected seat 1 score 1 after first tile, got %d", state.Scores[0])
	}

	// Test move history
	history := engine.GetMoveHistory()
	if len(history) != 1 {
		t.Errorf("Expected 1 move in history, got %d", len(history))
	}

	lastMove := engine.GetLastMove()
	if lastMove == nil {
		t.Fatal("Expected last move to be non-nil")
	}
	if lastMove.Seat != 1 || lastMove.Position != pos {
		t.Errorf("Expected last move seat 1 at (0,1), got seat %d at (%d,%d)",
			lastMove.Seat, lastMove.Position.Row, lastMove.Position.Col)
	}
	if lastMove.Symbol != "*" {
		t.Errorf("Expected last move symbol '*', got '%s'", lastMove.Symbol)
	}
	if lastMove.MoveNumber != 1 {
		t.Errorf("Expected move number 1, got %d", lastMove.MoveNumber)
	}
}

func TestEngine_TurnEnforcement(t *testing.T) {
	config := createTestConfig()
	engine, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	// Seat 2 may not open the match
	err = engine.Place(2, Position{Row: 0, Col: 0})
	var placeErr *PlaceError
	if !errors.As(err, &placeErr) {
		t.Fatalf("Expected *PlaceError, got %v", err)
	}
	if placeErr.Reason != ReasonNotYourTurn {
		t.Errorf("Expected reason %s, got %s", ReasonNotYourTurn, placeErr.Reason)
	}
	if placeErr.Message != "It is not player bob's turn." {
		t.Errorf("Unexpected feedback message: %s", placeErr.Message)
	}

	// The board must be untouched after a rejection
	if engine.GetState().Board.OpenCount() != 9 {
		t.Error("Expected rejected placement to leave the board untouched")
	}
	if engine.GetState().TotalMoves != 0 {
		t.Error("Expected rejected placement to stay out of history")
	}

	// Alternation works across both seats
	placeAll(t, engine, []Position{{Row: 0, Col: 0}, {Row: 1, Col: 1}})
	if engine.Turn() != 1 {
		t.Errorf("Expected turn back at seat 1 after one full round, got %d", engine.Turn())
	}
}

func TestEngine_PlacementErrors(t *testing.T) {
	config := createTestConfig()
	engine, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	tests := []struct {
		name       string
		seat       int
		pos        Position
		wantReason string
	}{
		{"row below board", 1, Position{Row: -1, Col: 0}, ReasonOutOfBounds},
		{"row past board", 1, Position{Row: 3, Col: 0}, ReasonOutOfBounds},
		{"col past board", 1, Position{Row: 0, Col: 7}, ReasonOutOfBounds},
		{"unknown seat", 5, Position{Row: 0, Col: 0}, ReasonBadSymbol},
		{"wrong seat", 2, Position{Row: 0, Col: 0}, ReasonNotYourTurn},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := engine.Place(test.seat, test.pos)
			var placeErr *PlaceError
			if !errors.As(err, &placeErr) {
				t.Fatalf("Expected *PlaceError, got %v", err)
			}
			if placeErr.Reason != test.wantReason {
				t.Errorf("Expected reason %s, got %s", test.wantReason, placeErr.Reason)
			}
		})
	}

	// Occupied cells name the holder in the feedback
	if err := engine.Place(1, Position{Row: 1, Col: 1}); err != nil {
		t.Fatalf("Setup placement failed: %v", err)
	}
	err = engine.Place(2, Position{Row: 1, Col: 1})
	var placeErr *PlaceError
	if !errors.As(err, &placeErr) {
		t.Fatalf("Expected *PlaceError, got %v", err)
	}
	if placeErr.Reason != ReasonOccupied {
		t.Errorf("Expected reason %s, got %s", ReasonOccupied, placeErr.Reason)
	}
	if placeErr.Message != "Cell is already owned by player alice." {
		t.Errorf("Unexpected occupied feedback: %s", placeErr.Message)
	}
}

func TestEngine_OutOfBoundsFeedback(t *testing.T) {
	config := createTestConfig()
	engine, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	err = engine.Place(1, Position{Row: 4, Col: 9})
	var placeErr *PlaceError
	if !errors.As(err, &placeErr) {
		t.Fatalf("Expected *PlaceError, got %v", err)
	}
	want := "Invalid position (4, 9) for board with dimensions (3, 3)"
	if placeErr.Message != want {
		t.Errorf("Expected feedback '%s', got '%s'", want, placeErr.Message)
	}
}

func TestEngine_LegalMoves(t *testing.T) {
	config := createTestConfig()
	engine, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	moves := engine.LegalMoves()
	if len(moves) != 9 {
		t.Errorf("Expected 9 legal moves on an empty 3x3 board, got %d", len(moves))
	}

	// Listed in row-major order
	if moves[0] != (Position{Row: 0, Col: 0}) || moves[1] != (Position{Row: 0, Col: 1}) {
		t.Errorf("Expected row-major ordering, got %v then %v", moves[0], moves[1])
	}
	if moves[8] != (Position{Row: 2, Col: 2}) {
		t.Errorf("Expected last legal move at (2,2), got %v", moves[8])
	}

	if err := engine.Place(1, Position{Row: 0, Col: 0}); err != nil {
		t.Fatalf("Placement failed: %v", err)
	}
	moves = engine.LegalMoves()
	if len(moves) != 8 {
		t.Errorf("Expected 8 legal moves after one placement, got %d", len(moves))
	}
	for _, pos := range moves {
		if pos == (Position{Row: 0, Col: 0}) {
			t.Error("Expected taken cell to drop out of legal moves")
		}
	}

	if !engine.CanPlace(Position{Row: 2, Col: 2}) {
		t.Error("Expected open cell to be placeable")
	}
	if engine.CanPlace(Position{Row: 0, Col: 0}) {
		t.Error("Expected taken cell not to be placeable")
	}
	if engine.CanPlace(Position{Row: 9, Col: 0}) {
		t.Error("Expected out-of-bounds cell not to be placeable")
	}
}

func TestEngine_FullGame_Win(t *testing.T) {
	config := createTestConfig()
	engine, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	// alice takes the top rows, bob the bottom:
	//   ***
	//   **o
	//   ooo
	placeAll(t, engine, []Position{
		{Row: 0, Col: 0}, {Row: 2, Col: 2},
		{Row: 0, Col: 1}, {Row: 2, Col: 1},
		{Row: 0, Col: 2}, {Row: 2, Col: 0},
		{Row: 1, Col: 0}, {Row: 1, Col: 2},
		{Row: 1, Col: 1},
	})

	if !engine.IsOver() {
		t.Fatal("Expected match to finish once the board is full")
	}
	if engine.Outcome() != OutcomeWin {
		t.Errorf("Expected outcome %s, got %s", OutcomeWin, engine.Outcome())
	}
	if engine.Winner() != 1 {
		t.Errorf("Expected seat 1 to win, got seat %d", engine.Winner())
	}

	scores := engine.Scores()
	if scores[0] != 5 || scores[1] != 4 {
		t.Errorf("Expected scores [5 4], got %v", scores)
	}

	state := engine.GetState()
	want := "Player alice wins with a largest component of 5 tiles!"
	if state.Message != want {
		t.Errorf("Expected message '%s', got '%s'", want, state.Message)
	}
	if engine.LegalMoves() != nil {
		t.Error("Expected no legal moves after the match ended")
	}
}

func TestEngine_FullGame_Draw(t *testing.T) {
	config := createTestConfig()
	engine, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	// Checkered fill where both largest components end at 2:
	//   *o*
	//   *o*
	//   o*o
	placeAll(t, engine, []Position{
		{Row: 0, Col: 0}, {Row: 0, Col: 1},
		{Row: 0, Col: 2}, {Row: 1, Col: 1},
		{Row: 1, Col: 0}, {Row: 2, Col: 0},
		{Row: 1, Col: 2}, {Row: 2, Col: 2},
		{Row: 2, Col: 1},
	})

	if !engine.IsOver() {
		t.Fatal("Expected match to finish once the board is full")
	}
	if engine.Outcome() != OutcomeDraw {
		t.Errorf("Expected outcome %s, got %s", OutcomeDraw, engine.Outcome())
	}
	if engine.Winner() != 0 {
		t.Errorf("Expected no winner on a draw, got seat %d", engine.Winner())
	}

	state := engine.GetState()
	want := "Game ended in a draw at 2 tiles apiece."
	if state.Message != want {
		t.Errorf("Expected message '%s', got '%s'", want, state.Message)
	}
}

func TestEngine_MatchOver(t *testing.T) {
	config := createTestConfig()
	engine, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	engine.GetState().Status = StatusFinished

	err = engine.Place(1, Position{Row: 0, Col: 0})
	var placeErr *PlaceError
	if !errors.As(err, &placeErr) {
		t.Fatalf("Expected *PlaceError, got %v", err)
	}
	if placeErr.Reason != ReasonMatchOver {
		t.Errorf("Expected reason %s, got %s", ReasonMatchOver, placeErr.Reason)
	}
	if placeErr.Message != config.Messages.MatchOver {
		t.Errorf("Expected configured match-over message, got '%s'", placeErr.Message)
	}
}

func TestEngine_Reset(t *testing.T) {
	config := createTestConfig()
	engine, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	// Make some moves to change state
	placeAll(t, engine, []Position{{Row: 0, Col: 0}, {Row: 1, Col: 1}})

	if len(engine.GetMoveHistory()) != 2 {
		t.Error("Expected move history before reset")
	}

	// Reset and verify state restored
	newState := engine.Reset()
	if newState == nil {
		t.Fatal("Expected reset to return match state")
	}
	if newState.Board.OpenCount() != 9 {
		t.Errorf("Expected empty board after reset, got %d open cells", newState.Board.OpenCount())
	}
	if newState.Turn != 1 {
		t.Errorf("Expected turn back at seat 1 after reset, got %d", newState.Turn)
	}
	if newState.Status != StatusInProgress {
		t.Errorf("Expected status %s after reset, got %s", StatusInProgress, newState.Status)
	}
	// Move history is cumulative across resets, but current segment is cleared
	if len(engine.GetMoveHistory()) != 2 {
		t.Errorf("Expected cumulative move history retained after reset, got %d moves", len(engine.GetMoveHistory()))
	}
	if newState.TotalMoves != 2 {
		t.Errorf("Expected total moves retained after reset, got %d", newState.TotalMoves)
	}
	if len(newState.CurrentMoves) != 0 || newState.CurrentMovesCount != 0 {
		t.Errorf("Expected current moves cleared after reset, got len=%d count=%d", len(newState.CurrentMoves), newState.CurrentMovesCount)
	}

	// Move numbers keep counting up after a reset
	if err := engine.Place(1, Position{Row: 2, Col: 2}); err != nil {
		t.Fatalf("Placement after reset failed: %v", err)
	}
	if last := engine.GetLastMove(); last.MoveNumber != 3 {
		t.Errorf("Expected move number 3 after reset, got %d", last.MoveNumber)
	}
}

func TestEngine_ConfigManagement(t *testing.T) {
	config := createTestConfig()
	engine, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	// Test getting config
	retrievedConfig := engine.GetConfig()
	if retrievedConfig.Name != config.Name {
		t.Errorf("Expected config name '%s', got '%s'", config.Name, retrievedConfig.Name)
	}

	// Test setting new config
	newConfig := createTestConfig()
	newConfig.Name = "New Config"
	newConfig.Rows = 4
	newConfig.Cols = 6

	err = engine.SetConfig(newConfig)
	if err != nil {
		t.Errorf("Failed to set new config: %v", err)
	}

	if engine.GetConfig().Name != newConfig.Name {
		t.Errorf("Expected new config name '%s', got '%s'", newConfig.Name, engine.GetConfig().Name)
	}
	state := engine.GetState()
	if state.Board.Rows != 4 || state.Board.Cols != 6 {
		t.Errorf("Expected 4x6 board after config change, got %dx%d", state.Board.Rows, state.Board.Cols)
	}

	// Test setting invalid config
	invalidConfig := createTestConfig()
	invalidConfig.Name = ""
	err = engine.SetConfig(invalidConfig)
	if err == nil {
		t.Error("Expected error when setting invalid config")
	}
}

func TestEngine_ThreeSeats(t *testing.T) {
	config := createTestConfig()
	config.Seats = append(config.Seats, Seat{Name: "carol", Symbol: "x"})
	engine, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	placeAll(t, engine, []Position{
		{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2},
	})
	if engine.Turn() != 1 {
		t.Errorf("Expected turn to cycle back to seat 1, got %d", engine.Turn())
	}

	history := engine.GetMoveHistory()
	if history[2].Seat != 3 || history[2].Symbol != "x" {
		t.Errorf("Expected third move by seat 3 with symbol 'x', got seat %d symbol '%s'",
			history[2].Seat, history[2].Symbol)
	}
}

func TestEngine_StateConsistency(t *testing.T) {
	config := createTestConfig()
	engine, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	// Test that engine methods are consistent with direct state access
	state := engine.GetState()

	if engine.Turn() != state.Turn {
		t.Error("Turn() inconsistent with state.Turn")
	}
	if engine.IsOver() != (state.Status == StatusFinished) {
		t.Error("IsOver() inconsistent with state.Status")
	}
	if engine.Winner() != state.Winner {
		t.Error("Winner() inconsistent with state.Winner")
	}

	// Test that placements through engine update state consistently
	if err := engine.Place(1, Position{Row: 1, Col: 1}); err != nil {
		t.Fatalf("Placement failed: %v", err)
	}
	newState := engine.GetState()

	if len(engine.GetMoveHistory()) != len(newState.MoveHistory) {
		t.Error("GetMoveHistory() inconsistent with state.MoveHistory")
	}
	if engine.Scores()[0] != newState.Scores[0] {
		t.Error("Scores inconsistent after placement")
	}
}

func TestEngine_SetState(t *testing.T) {
	config := createTestConfig()
	engine, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	if err := engine.SetState(nil); err == nil {
		t.Error("Expected error when setting nil state")
	}

	other := InitMatchStateFromConfig(config)
	other.Turn = 2
	if err := engine.SetState(other); err != nil {
		t.Errorf("Failed to set state: %v", err)
	}
	if engine.Turn() != 2 {
		t.Errorf("Expected restored turn 2, got %d", engine.Turn())
	}
}
