package engine

import "strings"

// RenderBoard draws the board as an ASCII grid, one character per cell.
// Empty cells render as whitespace, taken cells as the owning seat's
// symbol:
//
//	+-+-+-+
//	|*| |o|
//	| |*| |
//	|o| | |
//	+-+-+-+
func RenderBoard(board *Board, seats []Seat) string {
	border := strings.Repeat("+-", board.Cols) + "+"

	var sb strings.Builder
	sb.WriteString(border)
	sb.WriteByte('\n')
	for row := 0; row < board.Rows; row++ {
		for col := 0; col < board.Cols; col++ {
			sb.WriteByte('|')
			owner := board.Cells[row][col].Owner
			if owner == 0 || owner > len(seats) {
				sb.WriteByte(' ')
			} else {
				sb.WriteString(seats[owner-1].Symbol)
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	return sb.String()
}
