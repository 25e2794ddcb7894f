// Package battle is the two-player harness on top of package engine: it
// steps two Game instances in lockstep on the same tick and routes each
// side's outgoing attack into the other's garbage queue.
package battle

import (
	"github.com/foldedge/tetricore/internal/engine"
)

// Match is a pair of boards being played against each other. Stepping is
// synchronous and single-threaded by design: the two instances must stay
// bit-for-bit deterministic with each other, which concurrent stepping
// would put at risk for no real gain (both Update calls are CPU-bound and
// cheap).
type Match struct {
	A, B *engine.Game
}

// NewMatch starts a fresh match with two independently-queued boards.
func NewMatch(config engine.Config, pieceRngA, pieceRngB engine.Rand) *Match {
	return &Match{
		A: engine.New(config, pieceRngA),
		B: engine.New(config, pieceRngB),
	}
}

// Step advances both sides by one tick and routes any attack either side
// sent into the other's garbage queue, returning each side's events.
func (m *Match) Step(
	inputA, inputB engine.Controller,
	pieceRngA, garbageRngA, pieceRngB, garbageRngB engine.Rand,
) (eventsA, eventsB []engine.Event) {
	eventsA = m.A.Update(inputA, pieceRngA, garbageRngA)
	eventsB = m.B.Update(inputB, pieceRngB, garbageRngB)
	routeAttack(eventsA, m.B)
	routeAttack(eventsB, m.A)
	return eventsA, eventsB
}

func routeAttack(events []engine.Event, peer *engine.Game) {
	for _, e := range events {
		if sent, ok := e.(engine.GarbageSent); ok && sent.Amount > 0 {
			peer.AddGarbage(uint32(sent.Amount))
		}
	}
}

// Over reports whether either side has topped out.
func (m *Match) Over() bool {
	return m.A.GameOver() || m.B.GameOver()
}
