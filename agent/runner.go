package agent

import (
	"context"
	"fmt"
	"io"

	"github.com/gridgames/arena/game/engine"
	"github.com/gridgames/arena/game/service"
	"github.com/gridgames/arena/internal/metrics"
)

// Runner drives a match to completion by asking each seat's agent for
// moves and submitting them through the match service. Rejected
// proposals are fed back to the agent; an agent that burns through its
// retries forfeits the run.
type Runner struct {
	svc    service.MatchService
	agents map[int]Agent
	out    io.Writer
}

// NewRunner creates a runner writing its play-by-play to out
func NewRunner(svc service.MatchService, out io.Writer) *Runner {
	return &Runner{
		svc:    svc,
		agents: make(map[int]Agent),
		out:    out,
	}
}

// Seat assigns an agent to a 1-based seat number
func (r *Runner) Seat(seat int, agent Agent) {
	r.agents[seat] = agent
}

// Run plays the match until it finishes and returns the final state
func (r *Runner) Run(ctx context.Context, matchID string) (*engine.MatchState, error) {
	state, err := r.svc.GetMatchState(ctx, matchID)
	if err != nil {
		return nil, err
	}

	for seat := range state.Seats {
		if _, ok := r.agents[seat+1]; !ok {
			return nil, fmt.Errorf("no agent assigned to seat %d (%s)", seat+1, state.Seats[seat].Name)
		}
	}

	fmt.Fprintf(r.out, "Starting match %s.\n", matchID)

	for state.Status == engine.StatusInProgress {
		if err := ctx.Err(); err != nil {
			return state, err
		}

		seat := state.Turn
		agent := r.agents[seat]
		fmt.Fprintf(r.out, "\nPlayer %s's turn.\n", state.Seats[seat-1].Name)

		state, err = r.takeTurn(ctx, matchID, seat, agent, state)
		if err != nil {
			return state, err
		}
	}

	fmt.Fprintf(r.out, "\nMatch ended.\n%s\n%s\n", engine.RenderBoard(&state.Board, state.Seats), state.Message)

	return state, nil
}

func (r *Runner) takeTurn(ctx context.Context, matchID string, seat int, agent Agent, state *engine.MatchState) (*engine.MatchState, error) {
	symbol := state.Seats[seat-1].Symbol
	feedback := ""

	for retries := 0; ; retries++ {
		if retries > MaxProposalRetries {
			return state, fmt.Errorf("agent %s exceeded %d retries in match %s", agent.Name(), MaxProposalRetries, matchID)
		}
		if retries > 0 {
			metrics.AgentRetries.WithLabelValues(agent.Name()).Inc()
		}

		view := &View{
			State:      state,
			Rendered:   engine.RenderBoard(&state.Board, state.Seats),
			LegalMoves: state.Board.OpenPositions(),
			Seat:       seat,
			Symbol:     symbol,
			Feedback:   feedback,
		}

		pos, err := agent.ProposeMove(ctx, view)
		if err != nil {
			if pe, ok := err.(*engine.PlaceError); ok {
				// Unparseable proposal, ask again with feedback
				feedback = pe.Message
				continue
			}
			return state, fmt.Errorf("agent %s failed to propose a move: %w", agent.Name(), err)
		}

		result, err := r.svc.Place(ctx, matchID, symbol, pos, false)
		if err != nil {
			return state, err
		}
		if !result.Success {
			feedback = result.Message
			continue
		}

		return result.MatchState, nil
	}
}
