package engine

import "github.com/foldedge/tetricore/internal/board"

// stateKind is the discriminant for Game's four-state lifecycle (spec.md
// §4.2): SpawnDelay, Falling, LineClearDelay and GameOver modeled as a tag
// plus the fields each state actually needs, rather than a class hierarchy
// (spec.md §9).
type stateKind uint8

const (
	stateSpawnDelay stateKind = iota
	stateLineClearDelay
	stateFalling
	stateGameOver
)

// fallingState holds everything live only while stateKind == stateFalling:
// the active piece, the 15-move-rule's low-water mark, the move counter
// the rule compares against, the gravity sub-cell accumulator, the lock
// delay countdown and the soft-drop cadence counter.
type fallingState struct {
	piece             board.FallingPiece
	lowestY           int
	rotationMoveCount uint32
	gravity           int
	lockDelay         uint32
	softDropDelay     uint32
}

// newFallingState builds the fallingState a freshly spawned or
// freshly-unheld piece starts in.
func newFallingState(p board.FallingPiece, gravity int) fallingState {
	return fallingState{
		piece:             p,
		lowestY:           p.MinY(),
		rotationMoveCount: 0,
		gravity:           gravity,
		lockDelay:         initialLockDelay,
		softDropDelay:     0,
	}
}
