package engine

import "fmt"

// InARowRules finishes the match as soon as a seat lines up win_length
// tiles horizontally, vertically, or diagonally. A full board with no
// such line is a draw.
type InARowRules struct{}

func init() {
	RegisterRules(InARowRules{})
}

// Name returns the registry key for this ruleset
func (InARowRules) Name() string {
	return "inarow"
}

// Describe returns the objective summary shown to players
func (InARowRules) Describe(config *GameConfig) string {
	return fmt.Sprintf(
		"Line up %d of your tiles in a row on a %dx%d grid. "+
			"Horizontal, vertical, and diagonal lines all count. "+
			"The first player to complete a line wins; a full board with no line is a draw.",
		config.WinLength, config.Rows, config.Cols)
}

// ValidateConfig checks that win_length is set and achievable on the board
func (InARowRules) ValidateConfig(config *GameConfig) error {
	longestSide := config.Rows
	if config.Cols > longestSide {
		longestSide = config.Cols
	}
	if config.WinLength < MinWinLength || config.WinLength > longestSide {
		return fmt.Errorf("config validation: win_length must be between %d and %d for a %dx%d grid, got %d",
			MinWinLength, longestSide, config.Rows, config.Cols, config.WinLength)
	}
	return nil
}

// Evaluate checks for a completed line through the last placement. Scores
// report each seat's longest run so progress is visible mid-match.
func (InARowRules) Evaluate(board *Board, config *GameConfig, last Position) Verdict {
	scores := make([]int, len(config.Seats))
	for seat := 1; seat <= len(config.Seats); seat++ {
		scores[seat-1] = board.LongestRun(seat)
	}

	seat := board.Owner(last)
	if seat != 0 && board.RunThrough(last, seat) >= config.WinLength {
		return Verdict{Finished: true, Outcome: OutcomeWin, Winner: seat, Scores: scores}
	}

	if board.Full() {
		return Verdict{Finished: true, Outcome: OutcomeDraw, Scores: scores}
	}
	return Verdict{Scores: scores}
}
