package engine

import "testing"

func inarowTestConfig() *GameConfig {
	config := createTestConfig()
	config.Ruleset = "inarow"
	config.WinLength = 3
	return config
}

func TestInARowRules_Registered(t *testing.T) {
	rules, err := GetRules("inarow")
	if err != nil {
		t.Fatalf("Expected inarow ruleset registered: %v", err)
	}
	if rules.Name() != "inarow" {
		t.Errorf("Expected name 'inarow', got '%s'", rules.Name())
	}
}

func TestInARowRules_ValidateConfig(t *testing.T) {
	tests := []struct {
		name      string
		winLength int
		rows      int
		cols      int
		wantErr   bool
	}{
		{"valid", 3, 3, 3, false},
		{"full side", 5, 5, 5, false},
		{"fits longer side only", 4, 3, 4, false},
		{"too short", 2, 3, 3, true},
		{"missing", 0, 3, 3, true},
		{"longer than both sides", 4, 3, 3, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := inarowTestConfig()
			config.Rows = test.rows
			config.Cols = test.cols
			config.WinLength = test.winLength

			err := (InARowRules{}).ValidateConfig(config)
			if test.wantErr && err == nil {
				t.Error("Expected validation error")
			}
			if !test.wantErr && err != nil {
				t.Errorf("Expected config to validate: %v", err)
			}
		})
	}
}

func TestInARowRules_WinDirections(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		last Position
	}{
		{
			"horizontal",
			[]string{"111", "2..", ".2."},
			Position{Row: 0, Col: 2},
		},
		{
			"vertical",
			[]string{"1.2", "1.2", "1.."},
			Position{Row: 2, Col: 0},
		},
		{
			"diagonal",
			[]string{"12.", ".12", "..1"},
			Position{Row: 2, Col: 2},
		},
		{
			"anti diagonal",
			[]string{".21", "212", "1.."},
			Position{Row: 2, Col: 0},
		},
		{
			"line completed in the middle",
			[]string{"111", "2.2", "..."},
			Position{Row: 0, Col: 1},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := inarowTestConfig()
			board := buildBoard(test.rows)

			verdict := InARowRules{}.Evaluate(&board, config, test.last)
			if !verdict.Finished {
				t.Fatal("Expected a completed line to finish the match")
			}
			if verdict.Outcome != OutcomeWin {
				t.Errorf("Expected outcome %s, got %s", OutcomeWin, verdict.Outcome)
			}
			if verdict.Winner != 1 {
				t.Errorf("Expected seat 1 to win, got %d", verdict.Winner)
			}
		})
	}
}

func TestInARowRules_MidMatch(t *testing.T) {
	config := inarowTestConfig()
	board := buildBoard([]string{
		"11.",
		"2..",
		"..2",
	})

	verdict := InARowRules{}.Evaluate(&board, config, Position{Row: 0, Col: 1})
	if verdict.Finished {
		t.Error("Expected match to continue without a completed line")
	}
	if verdict.Scores[0] != 2 || verdict.Scores[1] != 1 {
		t.Errorf("Expected longest runs [2 1], got %v", verdict.Scores)
	}
}

func TestInARowRules_DrawOnFullBoard(t *testing.T) {
	config := inarowTestConfig()
	// Full board, no three in a row for either seat
	board := buildBoard([]string{
		"112",
		"221",
		"112",
	})

	verdict := InARowRules{}.Evaluate(&board, config, Position{Row: 2, Col: 1})
	if !verdict.Finished {
		t.Fatal("Expected full board to finish the match")
	}
	if verdict.Outcome != OutcomeDraw {
		t.Errorf("Expected outcome %s, got %s", OutcomeDraw, verdict.Outcome)
	}
	if verdict.Winner != 0 {
		t.Errorf("Expected no winner on a draw, got %d", verdict.Winner)
	}
}

func TestInARowRules_FullGameThroughEngine(t *testing.T) {
	config := inarowTestConfig()
	engine, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	// alice completes the top row on her third move
	placeAll(t, engine, []Position{
		{Row: 0, Col: 0}, {Row: 1, Col: 0},
		{Row: 0, Col: 1}, {Row: 1, Col: 1},
		{Row: 0, Col: 2},
	})

	if !engine.IsOver() {
		t.Fatal("Expected match to finish on a completed line")
	}
	if engine.Outcome() != OutcomeWin || engine.Winner() != 1 {
		t.Errorf("Expected seat 1 win, got outcome %s winner %d", engine.Outcome(), engine.Winner())
	}
	// The board is not full; the line alone ended the match
	if engine.GetState().Board.Full() {
		t.Error("Expected open cells to remain after an early win")
	}
}

func TestInARowRules_LongerBoard(t *testing.T) {
	config := inarowTestConfig()
	config.Rows = 4
	config.Cols = 7
	config.WinLength = 4

	board := NewBoard(4, 7)
	for col := 2; col < 6; col++ {
		board.Cells[1][col].Owner = 2
	}

	verdict := InARowRules{}.Evaluate(&board, config, Position{Row: 1, Col: 4})
	if !verdict.Finished || verdict.Winner != 2 {
		t.Errorf("Expected seat 2 to win with four in a row, got finished=%v winner=%d",
			verdict.Finished, verdict.Winner)
	}
}
