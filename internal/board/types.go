// Package board implements the Board and FallingPiece collaborators the
// simulation engine (package engine) depends on but does not itself define:
// the playfield, piece spawn/queue mechanics, hold slot, rotation/collision,
// sonic-drop, lock-and-clear, garbage insertion and spin classification.
package board

import "fmt"

// Kind identifies one of the seven tetromino shapes.
type Kind uint8

const (
	I Kind = iota
	O
	T
	S
	Z
	J
	L
)

// NumKinds is the number of distinct tetromino kinds, i.e. the bag size used
// by GenerateNextPiece's randomizer.
const NumKinds = 7

func (k Kind) String() string {
	switch k {
	case I:
		return "I"
	case O:
		return "O"
	case T:
		return "T"
	case S:
		return "S"
	case Z:
		return "Z"
	case J:
		return "J"
	case L:
		return "L"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Color identifies the color a locked or falling cell renders with. 0 is
// reserved for an empty cell.
type Color uint8

const (
	ColorNone Color = iota
	ColorI
	ColorO
	ColorT
	ColorS
	ColorZ
	ColorJ
	ColorL
	ColorGarbage
)

// Color returns the cell color a piece of this kind locks with.
func (k Kind) Color() Color {
	return Color(k) + 1
}

// Rotation is one of the four SRS orientations: 0 (spawn), 1 (CW/"R"),
// 2 ("2"), 3 (CCW/"L").
type Rotation uint8

// CW returns the next rotation state clockwise.
func (r Rotation) CW() Rotation { return (r + 1) % 4 }

// CCW returns the next rotation state counter-clockwise.
func (r Rotation) CCW() Rotation { return (r + 3) % 4 }

// TSpinStatus classifies a rotation's spin result, per spec.
type TSpinStatus uint8

const (
	TSpinNone TSpinStatus = iota
	TSpinMini
	TSpinFull
)

func (t TSpinStatus) String() string {
	switch t {
	case TSpinMini:
		return "mini"
	case TSpinFull:
		return "full"
	default:
		return "none"
	}
}

// Point is a board-relative cell coordinate. Y increases upward; Y=0 is the
// floor row.
type Point struct {
	X, Y int
}

// FallingPiece is the copy-semantics value record for an active piece: its
// kind, rotation state and board position. It carries no pointer to the
// Board it lives on — every operation that needs collision information goes
// through a Board method, keeping FallingPiece a plain data record (per
// spec.md §9: "copied on mutation to simplify the snapshot, mutate,
// commit-or-lock pattern").
type FallingPiece struct {
	Kind     Kind
	Rotation Rotation
	// X, Y is the board position of the bottom-left cell of the piece's
	// bounding box (box origin: local column 0, bottom local row), with
	// local rows numbered top-down and Y increasing upward — see cellsFor.
	X, Y int
	// TSpin is set by Board.CW/Board.CCW to classify the rotation that
	// produced this orientation. It is None for every kind but T and for
	// any move that isn't a successful rotation.
	TSpin TSpinStatus
}

// Cells returns the four board cells this piece currently occupies.
func (p FallingPiece) Cells() [4]Point {
	return cellsFor(p.Kind, p.Rotation, p.X, p.Y)
}

// MinY returns the lowest Y reached by any of the piece's cells.
func (p FallingPiece) MinY() int {
	cells := p.Cells()
	min := cells[0].Y
	for _, c := range cells[1:] {
		if c.Y < min {
			min = c.Y
		}
	}
	return min
}

// Rand is the minimal randomness source required by GenerateNextPiece and
// garbage sampling; satisfied directly by *math/rand/v2.Rand. The engine
// re-exports this type (engine.Rand) so callers never import package board
// merely to supply randomness.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// LockResult reports the outcome of locking a piece, per spec.md §6.
type LockResult struct {
	LockedOut    bool
	ClearedLines []int
	GarbageSent  int
}
