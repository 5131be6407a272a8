package agent

import (
	"context"
	"fmt"

	"github.com/gridgames/arena/game/engine"
)

// Greedy plays one ply of lookahead. Under component scoring it takes
// the cell that grows its largest component the most; under in-a-row
// rules it wins when it can, blocks an opponent's winning cell, then
// extends its own longest run. Ties go to the first cell in row-major
// order, which keeps its play deterministic.
type Greedy struct {
	name string
}

func NewGreedy(name string) *Greedy {
	return &Greedy{name: name}
}

func (g *Greedy) Name() string {
	return g.name
}

func (g *Greedy) ProposeMove(ctx context.Context, view *View) (engine.Position, error) {
	if len(view.LegalMoves) == 0 {
		return engine.Position{}, fmt.Errorf("no open positions left")
	}

	if view.State.Ruleset == "inarow" {
		return g.proposeInARow(view), nil
	}
	return g.proposeConnected(view), nil
}

func (g *Greedy) proposeConnected(view *View) engine.Position {
	best := view.LegalMoves[0]
	bestSize := -1

	for _, pos := range view.LegalMoves {
		board := cloneBoard(&view.State.Board)
		board.Cells[pos.Row][pos.Col].Owner = view.Seat
		if size := board.LargestComponent(view.Seat); size > bestSize {
			bestSize = size
			best = pos
		}
	}

	return best
}

func (g *Greedy) proposeInARow(view *View) engine.Position {
	winLength := view.State.WinLength

	// Win if a single placement completes a run
	for _, pos := range view.LegalMoves {
		if runAfter(&view.State.Board, pos, view.Seat) >= winLength {
			return pos
		}
	}

	// Block the first opponent cell that would win
	for _, pos := range view.LegalMoves {
		for seat := 1; seat <= len(view.State.Seats); seat++ {
			if seat == view.Seat {
				continue
			}
			if runAfter(&view.State.Board, pos, seat) >= winLength {
				return pos
			}
		}
	}

	// Otherwise extend the longest own run
	best := view.LegalMoves[0]
	bestRun := -1
	for _, pos := range view.LegalMoves {
		if run := runAfter(&view.State.Board, pos, view.Seat); run > bestRun {
			bestRun = run
			best = pos
		}
	}

	return best
}

// runAfter is the longest run through pos if the seat were to take it
func runAfter(b *engine.Board, pos engine.Position, seat int) int {
	board := cloneBoard(b)
	board.Cells[pos.Row][pos.Col].Owner = seat
	return board.RunThrough(pos, seat)
}

func cloneBoard(b *engine.Board) engine.Board {
	clone := engine.NewBoard(b.Rows, b.Cols)
	for r := range b.Cells {
		copy(clone.Cells[r], b.Cells[r])
	}
	return clone
}
