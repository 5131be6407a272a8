package engine

// NewBoard creates an empty board with the given dimensions
func NewBoard(rows, cols int) Board {
	cells := make([][]Cell, rows)
	for i := range cells {
		cells[i] = make([]Cell, cols)
	}
	return Board{Rows: rows, Cols: cols, Cells: cells}
}

// InBounds reports whether the position lies on the board
func (b *Board) InBounds(pos Position) bool {
	if pos.Row < 0 || pos.Row >= b.Rows {
		return false
	}
	if pos.Col < 0 || pos.Col >= b.Cols {
		return false
	}
	return true
}

// Owner returns the 1-based seat number occupying the cell, or 0 when the
// cell is empty. Out-of-bounds positions read as empty.
func (b *Board) Owner(pos Position) int {
	if !b.InBounds(pos) {
		return 0
	}
	return b.Cells[pos.Row][pos.Col].Owner
}

// Full reports whether every cell on the board is taken
func (b *Board) Full() bool {
	for _, row := range b.Cells {
		for _, cell := range row {
			if cell.Owner == 0 {
				return false
			}
		}
	}
	return true
}

// OpenPositions returns every empty cell in row-major order
func (b *Board) OpenPositions() []Position {
	var open []Position
	for row := 0; row < b.Rows; row++ {
		for col := 0; col < b.Cols; col++ {
			if b.Cells[row][col].Owner == 0 {
				open = append(open, Position{Row: row, Col: col})
			}
		}
	}
	return open
}

// OpenCount returns the number of empty cells remaining
func (b *Board) OpenCount() int {
	count := 0
	for _, row := range b.Cells {
		for _, cell := range row {
			if cell.Owner == 0 {
				count++
			}
		}
	}
	return count
}

// CountOwned returns the total number of cells held by the given seat
func (b *Board) CountOwned(seat int) int {
	count := 0
	for _, row := range b.Cells {
		for _, cell := range row {
			if cell.Owner == seat {
				count++
			}
		}
	}
	return count
}

// Neighbors returns the in-bounds cells orthogonally adjacent to pos.
// Cells diagonal to each other are not neighbors.
func (b *Board) Neighbors(pos Position) []Position {
	deltas := [4]Position{
		{Row: -1, Col: 0},
		{Row: 1, Col: 0},
		{Row: 0, Col: -1},
		{Row: 0, Col: 1},
	}

	neighbors := make([]Position, 0, 4)
	for _, d := range deltas {
		next := Position{Row: pos.Row + d.Row, Col: pos.Col + d.Col}
		if b.InBounds(next) {
			neighbors = append(neighbors, next)
		}
	}
	return neighbors
}

// LargestComponent returns the size of the largest group of cells held by
// the given seat that are connected through orthogonal adjacency.
func (b *Board) LargestComponent(seat int) int {
	if seat == 0 {
		return 0
	}

	visited := make([]bool, b.Rows*b.Cols)
	largest := 0

	for row := 0; row < b.Rows; row++ {
		for col := 0; col < b.Cols; col++ {
			idx := row*b.Cols + col
			if visited[idx] || b.Cells[row][col].Owner != seat {
				continue
			}

			// Iterative flood fill over the component rooted here
			size := 0
			stack := []Position{{Row: row, Col: col}}
			visited[idx] = true
			for len(stack) > 0 {
				pos := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				size++

				for _, next := range b.Neighbors(pos) {
					nextIdx := next.Row*b.Cols + next.Col
					if !visited[nextIdx] && b.Cells[next.Row][next.Col].Owner == seat {
						visited[nextIdx] = true
						stack = append(stack, next)
					}
				}
			}

			if size > largest {
				largest = size
			}
		}
	}

	return largest
}

// ComponentAt returns the positions of the connected component containing
// pos, or nil when the cell is empty or off the board.
func (b *Board) ComponentAt(pos Position) []Position {
	seat := b.Owner(pos)
	if seat == 0 {
		return nil
	}

	visited := make(map[Position]bool)
	component := []Position{}
	stack := []Position{pos}
	visited[pos] = true

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		component = append(component, current)

		for _, next := range b.Neighbors(current) {
			if !visited[next] && b.Cells[next.Row][next.Col].Owner == seat {
				visited[next] = true
				stack = append(stack, next)
			}
		}
	}

	return component
}

// LongestRun returns the longest straight line of cells held by the given
// seat, counting horizontal, vertical, and both diagonal directions.
func (b *Board) LongestRun(seat int) int {
	if seat == 0 {
		return 0
	}

	directions := [4]Position{
		{Row: 0, Col: 1},
		{Row: 1, Col: 0},
		{Row: 1, Col: 1},
		{Row: 1, Col: -1},
	}

	longest := 0
	for row := 0; row < b.Rows; row++ {
		for col := 0; col < b.Cols; col++ {
			if b.Cells[row][col].Owner != seat {
				continue
			}
			for _, d := range directions {
				// Only count runs from their first cell
				prev := Position{Row: row - d.Row, Col: col - d.Col}
				if b.Owner(prev) == seat {
					continue
				}
				run := 0
				pos := Position{Row: row, Col: col}
				for b.InBounds(pos) && b.Cells[pos.Row][pos.Col].Owner == seat {
					run++
					pos.Row += d.Row
					pos.Col += d.Col
				}
				if run > longest {
					longest = run
				}
			}
		}
	}

	return longest
}

// RunThrough returns the length of the longest line of the seat's cells
// passing through pos in any of the four scan directions.
func (b *Board) RunThrough(pos Position, seat int) int {
	if b.Owner(pos) != seat || seat == 0 {
		return 0
	}

	directions := [4]Position{
		{Row: 0, Col: 1},
		{Row: 1, Col: 0},
		{Row: 1, Col: 1},
		{Row: 1, Col: -1},
	}

	longest := 0
	for _, d := range directions {
		run := 1
		run += b.countRun(pos, seat, d.Row, d.Col)
		run += b.countRun(pos, seat, -d.Row, -d.Col)
		if run > longest {
			longest = run
		}
	}
	return longest
}

// countRun counts consecutive cells of the seat starting one step from pos
// in the given direction
func (b *Board) countRun(pos Position, seat, dRow, dCol int) int {
	count := 0
	next := Position{Row: pos.Row + dRow, Col: pos.Col + dCol}
	for b.InBounds(next) && b.Cells[next.Row][next.Col].Owner == seat {
		count++
		next.Row += dRow
		next.Col += dCol
	}
	return count
}
