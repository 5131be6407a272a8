package engine

import "fmt"

// ConnectedRules plays until the board is full and awards the win to the
// seat holding the largest connected component of tiles.
type ConnectedRules struct{}

func init() {
	RegisterRules(ConnectedRules{})
}

// Name returns the registry key for this ruleset
func (ConnectedRules) Name() string {
	return "connected"
}

// Describe returns the objective summary shown to players
func (ConnectedRules) Describe(config *GameConfig) string {
	return fmt.Sprintf(
		"Form the largest connected component of tiles on a %dx%d grid. "+
			"Two tiles are connected when a path of orthogonally adjacent tiles of the same symbol joins them; "+
			"tiles diagonal to each other are not connected. "+
			"The game ends when all cells are taken, and the player with the largest component wins. "+
			"Equal largest components end in a draw.",
		config.Rows, config.Cols)
}

// ValidateConfig checks ruleset-specific configuration fields. The
// connected ruleset has none.
func (ConnectedRules) ValidateConfig(config *GameConfig) error {
	return nil
}

// Evaluate scores every seat by its largest component and finishes the
// match once the board is full. The winner must hold a strictly larger
// component than every other seat; ties are draws.
func (ConnectedRules) Evaluate(board *Board, config *GameConfig, last Position) Verdict {
	scores := make([]int, len(config.Seats))
	for seat := 1; seat <= len(config.Seats); seat++ {
		scores[seat-1] = board.LargestComponent(seat)
	}

	if !board.Full() {
		return Verdict{Scores: scores}
	}

	best, winner := -1, 0
	tied := false
	for i, score := range scores {
		switch {
		case score > best:
			best = score
			winner = i + 1
			tied = false
		case score == best:
			tied = true
		}
	}

	if tied {
		return Verdict{Finished: true, Outcome: OutcomeDraw, Scores: scores}
	}
	return Verdict{Finished: true, Outcome: OutcomeWin, Winner: winner, Scores: scores}
}
