package engine

import "github.com/foldedge/tetricore/internal/board"

// Event is the sealed vocabulary of everything a single Update call can
// emit, per spec.md §3/§4.6/§6. The concrete type of an Event is its
// variant identity; a serializer must preserve that identity and each
// struct's field order for replay/debug use (see internal/replay).
type Event interface {
	isEvent()
}

// PieceSpawned reports that a new piece became active, and which piece was
// just appended to the tail of the visible next queue.
type PieceSpawned struct {
	NewInQueue board.Kind
}

// SpawnDelayStart is emitted exactly once, on the first frame of a
// SpawnDelay interval.
type SpawnDelayStart struct{}

// PieceMoved reports a successful left/right shift, or one cell of
// soft-drop descent (which is followed by SoftDropped).
type PieceMoved struct{}

// PieceRotated reports a successful rotation that was not a T-spin.
type PieceRotated struct{}

// PieceTSpined reports a successful rotation classified as a T-spin (mini
// or full — see the locked piece's TSpin field once it locks).
type PieceTSpined struct{}

// PieceHeld reports that kind was sent to the hold slot.
type PieceHeld struct {
	Kind board.Kind
}

// StackTouched is emitted the first tick the active piece becomes on-stack.
type StackTouched struct{}

// SoftDropped reports a soft-drop-driven cell of descent.
type SoftDropped struct{}

// PieceFalling carries the active piece and its sonic-dropped ghost,
// recomputed every tick the piece is active.
type PieceFalling struct {
	Piece, Ghost board.FallingPiece
}

// EndOfLineClearDelay is emitted the tick a LineClearDelay interval ends.
type EndOfLineClearDelay struct{}

// PiecePlaced reports a lock: the piece as locked, the board's verdict, and
// — for a hard drop only — the distance dropped.
type PiecePlaced struct {
	Piece              board.FallingPiece
	Locked             board.LockResult
	HardDropDistance   *int
}

// GarbageSent reports that amount rows of attack were sent to the
// opponent (netted against anything we owed first).
type GarbageSent struct {
	Amount int
}

// GarbageAdded reports the columns (in insertion order) of garbage rows
// injected this settle.
type GarbageAdded struct {
	Columns []int
}

// GameOver is emitted on the tick the game becomes terminal, and on every
// tick thereafter.
type GameOver struct{}

func (PieceSpawned) isEvent()       {}
func (SpawnDelayStart) isEvent()    {}
func (PieceMoved) isEvent()         {}
func (PieceRotated) isEvent()       {}
func (PieceTSpined) isEvent()       {}
func (PieceHeld) isEvent()          {}
func (StackTouched) isEvent()       {}
func (SoftDropped) isEvent()        {}
func (PieceFalling) isEvent()       {}
func (EndOfLineClearDelay) isEvent() {}
func (PiecePlaced) isEvent()        {}
func (GarbageSent) isEvent()        {}
func (GarbageAdded) isEvent()       {}
func (GameOver) isEvent()           {}
