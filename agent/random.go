package agent

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/gridgames/arena/game/engine"
)

// Random picks a uniformly random open cell. It is the weakest baseline
// opponent and useful for smoke-testing agents.
type Random struct {
	name string
	rng  *rand.Rand
}

// NewRandom creates a random player. The rng is injected so matches can
// be made reproducible in tests.
func NewRandom(name string, rng *rand.Rand) *Random {
	return &Random{name: name, rng: rng}
}

func (r *Random) Name() string {
	return r.name
}

func (r *Random) ProposeMove(ctx context.Context, view *View) (engine.Position, error) {
	if len(view.LegalMoves) == 0 {
		return engine.Position{}, fmt.Errorf("no open positions left")
	}
	return view.LegalMoves[r.rng.Intn(len(view.LegalMoves))], nil
}
