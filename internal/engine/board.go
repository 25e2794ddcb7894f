package engine

import "github.com/foldedge/tetricore/internal/board"

// Board is the collaborator contract the simulation depends on, satisfied
// implicitly by *board.Board. Keeping it as an interface here (rather than
// importing the concrete type directly into Game) lets the data-model
// backend be swapped without touching engine logic (spec.md §6).
type Board interface {
	GenerateNextPiece(rng Rand) board.Kind
	AddNextPiece(k board.Kind)
	AdvanceQueue() (board.Kind, bool)
	NextQueueLen() int
	Hold(k board.Kind) (board.Kind, bool)
	Spawn(k board.Kind) (board.FallingPiece, bool)
	OnStack(p board.FallingPiece) bool
	Shift(p board.FallingPiece, dx, dy int) (board.FallingPiece, bool)
	SonicDrop(p board.FallingPiece) board.FallingPiece
	CW(p board.FallingPiece) (board.FallingPiece, bool)
	CCW(p board.FallingPiece) (board.FallingPiece, bool)
	LockPiece(p board.FallingPiece) board.LockResult
	AddGarbage(col int) bool
	CellColor(x, y int) board.Color
	HeldKind() (board.Kind, bool)
}
