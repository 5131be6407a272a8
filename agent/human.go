package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/gridgames/arena/game/engine"
)

// Human reads moves from a terminal. Each turn it prints the board and
// the open positions, then parses one "row,col" line.
type Human struct {
	name   string
	reader *bufio.Reader
	out    io.Writer
}

// NewHuman creates a terminal-driven player reading from in and
// prompting on out
func NewHuman(name string, in io.Reader, out io.Writer) *Human {
	return &Human{
		name:   name,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (h *Human) Name() string {
	return h.name
}

func (h *Human) ProposeMove(ctx context.Context, view *View) (engine.Position, error) {
	if view.Feedback != "" {
		fmt.Fprintf(h.out, "%s\n", view.Feedback)
	}
	fmt.Fprintf(h.out, "%s\nOpen positions: %s\n", view.Rendered, engine.FormatPositions(view.LegalMoves))
	fmt.Fprintf(h.out, "Enter row-column move (row,col): ")

	line, err := h.reader.ReadString('\n')
	if err != nil && line == "" {
		return engine.Position{}, fmt.Errorf("failed to read move: %w", err)
	}

	return engine.ParsePosition(line)
}
