// Package agent provides match-playing players: a terminal-driven human,
// scripted baselines, and an LLM-backed player, plus the runner that
// drives them through a match.
package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/gridgames/arena/game/engine"
)

// MaxProposalRetries bounds how many rejected proposals an automated
// agent gets before its match is abandoned.
const MaxProposalRetries = 3

// View is everything an agent may consult when proposing a move
type View struct {
	State      *engine.MatchState
	Rendered   string            // ASCII board, same rendering players see
	LegalMoves []engine.Position // open cells in row-major order
	Seat       int               // acting seat, 1-based
	Symbol     string            // acting seat's symbol
	Feedback   string            // rejection feedback from the previous proposal, if any
}

// Agent proposes moves for one seat in a match
type Agent interface {
	Name() string
	ProposeMove(ctx context.Context, view *View) (engine.Position, error)
}

// buildGameContext describes the match to an LLM agent. It mirrors the
// briefing a human player would get: grid size, symbols, and what wins.
func buildGameContext(view *View) string {
	state := view.State
	var sb strings.Builder

	fmt.Fprintf(&sb, "You are playing a %d player game on a %dx%d grid. The game is turn based and you will be prompted when it's your turn. You will be provided the current state of the game board when prompted.\n",
		len(state.Seats), state.Board.Rows, state.Board.Cols)
	sb.WriteString("* Empty cells will be represented by whitespace\n")
	fmt.Fprintf(&sb, "* Cells you own will contain a %q character\n", view.Symbol)
	for i, seat := range state.Seats {
		if i+1 != view.Seat {
			fmt.Fprintf(&sb, "* Cells owned by player %s will contain a %q character\n", seat.Name, seat.Symbol)
		}
	}

	switch state.Ruleset {
	case "inarow":
		fmt.Fprintf(&sb, "* The first player to own %d cells in a row, column or diagonal wins\n", state.WinLength)
	default:
		sb.WriteString("* The objective is to form the largest connected component. Two cells are connected to each other if there is a path of cells of the same symbol connecting the two cells. Cells diagonal to each other are not connected.\n")
		sb.WriteString("* The game ends when all cells are taken\n")
	}

	return sb.String()
}

// buildPlayPrompt is the per-turn prompt listing the board and open positions
func buildPlayPrompt(view *View) string {
	var sb strings.Builder

	sb.WriteString("It's your turn. The current board is:\n")
	sb.WriteString(view.Rendered)
	sb.WriteString("\nThe current open positions are:\n")
	sb.WriteString(engine.FormatPositions(view.LegalMoves))
	sb.WriteString("\nPlease enter a position formatted as `row,col` where row and column indexing starts at zero.\n")
	sb.WriteString("Here's an example: 0,3 is the cell located at row 0 and column 3.\n")
	sb.WriteString("Please enter your move BUT ONLY INPUT THE POSITION, NO EXTRA FORMATTING: ")

	return sb.String()
}
