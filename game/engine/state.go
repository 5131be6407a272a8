package engine

import (
	"fmt"
	"time"
)

// PlaceTile attempts to place a tile for the given seat. On success the
// board is updated, the move recorded, the rules evaluated, and the turn
// advanced. On failure the state is left untouched and a *PlaceError
// carries the player-facing feedback.
func (ms *MatchState) PlaceTile(seat int, pos Position, config *GameConfig, rules Rules) error {
	if ms.Status == StatusFinished {
		msg := "The match is already over."
		if config.Messages.MatchOver != "" {
			msg = config.Messages.MatchOver
		}
		return &PlaceError{Reason: ReasonMatchOver, Message: msg}
	}

	if seat < 1 || seat > len(ms.Seats) {
		return &PlaceError{
			Reason:  ReasonBadSymbol,
			Message: fmt.Sprintf("No seat %d in this match.", seat),
		}
	}

	if seat != ms.Turn {
		msg := fmt.Sprintf("It is not player %s's turn.", ms.Seats[seat-1].Name)
		if config.Messages.NotYourTurn != "" {
			msg = fmt.Sprintf(config.Messages.NotYourTurn, ms.Seats[seat-1].Name)
		}
		return &PlaceError{Reason: ReasonNotYourTurn, Message: msg}
	}

	if !ms.Board.InBounds(pos) {
		return &PlaceError{
			Reason: ReasonOutOfBounds,
			Message: fmt.Sprintf("Invalid position (%d, %d) for board with dimensions (%d, %d)",
				pos.Row, pos.Col, ms.Board.Rows, ms.Board.Cols),
		}
	}

	if owner := ms.Board.Owner(pos); owner != 0 {
		return &PlaceError{
			Reason:  ReasonOccupied,
			Message: fmt.Sprintf("Cell is already owned by player %s.", ms.Seats[owner-1].Name),
		}
	}

	// Tiles never move or flip once placed
	ms.Board.Cells[pos.Row][pos.Col].Owner = seat
	ms.AddMoveToHistory(seat, pos)

	verdict := rules.Evaluate(&ms.Board, config, pos)
	ms.Scores = verdict.Scores

	if verdict.Finished {
		ms.Status = StatusFinished
		ms.Outcome = verdict.Outcome
		ms.Winner = verdict.Winner
		ms.Message = ms.finishMessage(config, verdict)
		return nil
	}

	ms.Turn = ms.Turn%len(ms.Seats) + 1
	next := ms.Seats[ms.Turn-1]
	if config.Messages.TurnPrompt != "" {
		ms.Message = fmt.Sprintf(config.Messages.TurnPrompt, next.Name)
	} else {
		ms.Message = fmt.Sprintf("Player %s's turn.", next.Name)
	}
	return nil
}

// finishMessage builds the terminal message for a finished match
func (ms *MatchState) finishMessage(config *GameConfig, verdict Verdict) string {
	if verdict.Outcome == OutcomeWin {
		winner := ms.Seats[verdict.Winner-1]
		score := verdict.Scores[verdict.Winner-1]
		if config.Messages.Victory != "" {
			return fmt.Sprintf(config.Messages.Victory, winner.Name, score)
		}
		return fmt.Sprintf("Player %s wins with a score of %d!", winner.Name, score)
	}

	best := 0
	for _, score := range verdict.Scores {
		if score > best {
			best = score
		}
	}
	if config.Messages.Draw != "" {
		return fmt.Sprintf(config.Messages.Draw, best)
	}
	return fmt.Sprintf("Draw at %d tiles apiece.", best)
}

// SeatBySymbol resolves a seat symbol to its 1-based seat number
func (ms *MatchState) SeatBySymbol(symbol string) (int, bool) {
	for i, seat := range ms.Seats {
		if seat.Symbol == symbol {
			return i + 1, true
		}
	}
	return 0, false
}

// AddMoveToHistory records an accepted placement in the match history
func (ms *MatchState) AddMoveToHistory(seat int, pos Position) {
	entry := MoveHistoryEntry{
		Seat:       seat,
		Symbol:     ms.Seats[seat-1].Symbol,
		Position:   pos,
		Timestamp:  time.Now().Unix(),
		MoveNumber: ms.TotalMoves + 1,
	}
	// Append to cumulative history (never cleared by reset) and increment total
	ms.MoveHistory = append(ms.MoveHistory, entry)
	ms.TotalMoves++

	// Append to current segment history and increment its counter
	ms.CurrentMoves = append(ms.CurrentMoves, entry)
	ms.CurrentMovesCount++
}
