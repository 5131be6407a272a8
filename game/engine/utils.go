package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePosition parses a move entered as "row,col" with 0-based indexes.
// Whitespace around either number is tolerated. Failures return a
// *PlaceError whose message is suitable as feedback for the player.
func ParsePosition(input string) (Position, error) {
	parts := strings.Split(strings.TrimSpace(input), ",")
	if len(parts) != 2 {
		return Position{}, &PlaceError{
			Reason:  ReasonBadFormat,
			Message: fmt.Sprintf("Could not parse %q: expected a position formatted as row,col", input),
		}
	}

	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Position{}, &PlaceError{
			Reason:  ReasonBadFormat,
			Message: fmt.Sprintf("Could not parse row %q as a number", parts[0]),
		}
	}

	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Position{}, &PlaceError{
			Reason:  ReasonBadFormat,
			Message: fmt.Sprintf("Could not parse column %q as a number", parts[1]),
		}
	}

	return Position{Row: row, Col: col}, nil
}

// FormatPositions renders positions as "(row,col)" pairs separated by
// commas, the format used in prompts and open-position listings
func FormatPositions(positions []Position) string {
	if len(positions) == 0 {
		return "(none)"
	}

	var sb strings.Builder
	for i, pos := range positions {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "(%d,%d)", pos.Row, pos.Col)
	}
	return sb.String()
}

// NextSeat returns the seat number that moves after the given one
func NextSeat(seat, seats int) int {
	return seat%seats + 1
}

// SymbolForSeat returns the display symbol for a 1-based seat number,
// falling back to whitespace for empty or unknown seats
func SymbolForSeat(seats []Seat, seat int) string {
	if seat < 1 || seat > len(seats) {
		return " "
	}
	return seats[seat-1].Symbol
}
