package engine

import "testing"

// buildBoard fills a board from rows of seat digits, '.' marking empty cells
func buildBoard(rows []string) Board {
	board := NewBoard(len(rows), len(rows[0]))
	for r, row := range rows {
		for c, ch := range row {
			if ch != '.' {
				board.Cells[r][c].Owner = int(ch - '0')
			}
		}
	}
	return board
}

func TestNewBoard(t *testing.T) {
	board := NewBoard(3, 4)

	if board.Rows != 3 || board.Cols != 4 {
		t.Errorf("Expected 3x4 board, got %dx%d", board.Rows, board.Cols)
	}
	if len(board.Cells) != 3 {
		t.Fatalf("Expected 3 cell rows, got %d", len(board.Cells))
	}
	for r, row := range board.Cells {
		if len(row) != 4 {
			t.Fatalf("Expected row %d to have 4 cells, got %d", r, len(row))
		}
		for c, cell := range row {
			if cell.Owner != 0 {
				t.Errorf("Expected cell (%d,%d) empty, got owner %d", r, c, cell.Owner)
			}
		}
	}
	if !board.InBounds(Position{Row: 2, Col: 3}) {
		t.Error("Expected bottom-right corner in bounds")
	}
	if board.Full() {
		t.Error("Expected new board not to be full")
	}
}

func TestBoard_InBounds(t *testing.T) {
	board := NewBoard(3, 4)

	tests := []struct {
		name string
		pos  Position
		want bool
	}{
		{"origin", Position{Row: 0, Col: 0}, true},
		{"last cell", Position{Row: 2, Col: 3}, true},
		{"negative row", Position{Row: -1, Col: 0}, false},
		{"negative col", Position{Row: 0, Col: -1}, false},
		{"row past end", Position{Row: 3, Col: 0}, false},
		{"col past end", Position{Row: 0, Col: 4}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := board.InBounds(test.pos); got != test.want {
				t.Errorf("InBounds(%v) = %v, want %v", test.pos, got, test.want)
			}
		})
	}
}

func TestBoard_Neighbors(t *testing.T) {
	board := NewBoard(3, 3)

	tests := []struct {
		name  string
		pos   Position
		count int
	}{
		{"corner", Position{Row: 0, Col: 0}, 2},
		{"edge", Position{Row: 0, Col: 1}, 3},
		{"center", Position{Row: 1, Col: 1}, 4},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			neighbors := board.Neighbors(test.pos)
			if len(neighbors) != test.count {
				t.Errorf("Expected %d neighbors of %v, got %d: %v", test.count, test.pos, len(neighbors), neighbors)
			}
		})
	}

	// Diagonals are never neighbors
	for _, n := range board.Neighbors(Position{Row: 0, Col: 0}) {
		if n == (Position{Row: 1, Col: 1}) {
			t.Error("Expected diagonal cell (1,1) not to neighbor (0,0)")
		}
	}
}

func TestBoard_OpenPositions(t *testing.T) {
	board := buildBoard([]string{
		"1.2",
		"...",
		".1.",
	})

	open := board.OpenPositions()
	if len(open) != 6 {
		t.Fatalf("Expected 6 open positions, got %d", len(open))
	}

	// Row-major order
	want := []Position{
		{Row: 0, Col: 1},
		{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2},
		{Row: 2, Col: 0}, {Row: 2, Col: 2},
	}
	for i, pos := range want {
		if open[i] != pos {
			t.Errorf("Expected open position %d at %v, got %v", i, pos, open[i])
		}
	}

	if board.OpenCount() != 6 {
		t.Errorf("Expected open count 6, got %d", board.OpenCount())
	}
	if board.CountOwned(1) != 2 {
		t.Errorf("Expected seat 1 to own 2 cells, got %d", board.CountOwned(1))
	}
}

func TestBoard_Full(t *testing.T) {
	board := buildBoard([]string{
		"12",
		"21",
	})
	if !board.Full() {
		t.Error("Expected fully taken board to report full")
	}

	board.Cells[1][1].Owner = 0
	if board.Full() {
		t.Error("Expected board with an open cell not to report full")
	}
}

func TestBoard_LargestComponent(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		seat int
		want int
	}{
		{
			"empty board",
			[]string{"...", "...", "..."},
			1, 0,
		},
		{
			"single tile",
			[]string{"...", ".1.", "..."},
			1, 1,
		},
		{
			"diagonal tiles are separate components",
			[]string{"1..", ".1.", "..1"},
			1, 1,
		},
		{
			"l shape",
			[]string{"1..", "1..", "11."},
			1, 4,
		},
		{
			"two components picks the larger",
			[]string{"11.", "...", ".11"},
			1, 2,
		},
		{
			"snake across rows",
			[]string{"111", "..1", "111"},
			1, 7,
		},
		{
			"other seat ignored",
			[]string{"122", "122", "..2"},
			1, 2,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			board := buildBoard(test.rows)
			if got := board.LargestComponent(test.seat); got != test.want {
				t.Errorf("LargestComponent(%d) = %d, want %d", test.seat, got, test.want)
			}
		})
	}
}

func TestBoard_LargestComponent_EmptySeat(t *testing.T) {
	board := buildBoard([]string{"11", "11"})
	if got := board.LargestComponent(0); got != 0 {
		t.Errorf("Expected seat 0 to score 0, got %d", got)
	}
	if got := board.LargestComponent(2); got != 0 {
		t.Errorf("Expected absent seat to score 0, got %d", got)
	}
}

func TestBoard_ComponentAt(t *testing.T) {
	board := buildBoard([]string{
		"11.",
		".12",
		"..2",
	})

	component := board.ComponentAt(Position{Row: 0, Col: 0})
	if len(component) != 3 {
		t.Errorf("Expected component of 3 at (0,0), got %d: %v", len(component), component)
	}

	component = board.ComponentAt(Position{Row: 2, Col: 2})
	if len(component) != 2 {
		t.Errorf("Expected component of 2 at (2,2), got %d: %v", len(component), component)
	}

	if component := board.ComponentAt(Position{Row: 2, Col: 0}); component != nil {
		t.Errorf("Expected nil component for empty cell, got %v", component)
	}
	if component := board.ComponentAt(Position{Row: 9, Col: 9}); component != nil {
		t.Errorf("Expected nil component off the board, got %v", component)
	}
}

func TestBoard_LongestRun(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		seat int
		want int
	}{
		{
			"horizontal",
			[]string{"111.", "....", "....", "...."},
			1, 3,
		},
		{
			"vertical",
			[]string{"1...", "1...", "1...", "1..."},
			1, 4,
		},
		{
			"diagonal",
			[]string{"1...", ".1..", "..1.", "...."},
			1, 3,
		},
		{
			"anti diagonal",
			[]string{"...1", "..1.", ".1..", "...."},
			1, 3,
		},
		{
			"broken line",
			[]string{"11.1", "....", "....", "...."},
			1, 2,
		},
		{
			"empty seat",
			[]string{"....", "....", "....", "...."},
			1, 0,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			board := buildBoard(test.rows)
			if got := board.LongestRun(test.seat); got != test.want {
				t.Errorf("LongestRun(%d) = %d, want %d", test.seat, got, test.want)
			}
		})
	}
}

func TestBoard_RunThrough(t *testing.T) {
	board := buildBoard([]string{
		".1..",
		".1..",
		".11.",
		"....",
	})

	// The vertical line through the middle tile counts all three cells
	if got := board.RunThrough(Position{Row: 1, Col: 1}, 1); got != 3 {
		t.Errorf("Expected run of 3 through (1,1), got %d", got)
	}

	// Horizontal pair through the bottom-right tile
	if got := board.RunThrough(Position{Row: 2, Col: 2}, 1); got != 2 {
		t.Errorf("Expected run of 2 through (2,2), got %d", got)
	}

	// Empty cell has no run
	if got := board.RunThrough(Position{Row: 3, Col: 3}, 1); got != 0 {
		t.Errorf("Expected run of 0 through an empty cell, got %d", got)
	}
}

func TestBoard_Owner(t *testing.T) {
	board := buildBoard([]string{
		"1.",
		".2",
	})

	if got := board.Owner(Position{Row: 0, Col: 0}); got != 1 {
		t.Errorf("Expected owner 1 at (0,0), got %d", got)
	}
	if got := board.Owner(Position{Row: 1, Col: 1}); got != 2 {
		t.Errorf("Expected owner 2 at (1,1), got %d", got)
	}
	if got := board.Owner(Position{Row: 0, Col: 1}); got != 0 {
		t.Errorf("Expected empty cell at (0,1), got owner %d", got)
	}
	// Out-of-bounds reads as empty rather than panicking
	if got := board.Owner(Position{Row: -1, Col: 5}); got != 0 {
		t.Errorf("Expected out-of-bounds owner 0, got %d", got)
	}
}
