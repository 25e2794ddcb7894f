// Package hash computes a compact fingerprint of a running game, letting
// two instances that should stay in lockstep detect the tick they diverged
// on without diffing the whole board every frame.
package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/foldedge/tetricore/internal/board"
	"github.com/foldedge/tetricore/internal/engine"
)

// State hashes everything that can observably differ between two games
// that should otherwise be in lockstep: the visible board cells, the
// active piece, the hold slot, and the garbage owed. It deliberately
// leaves out the as-yet-undrawn next queue, since that is fully
// determined by the piece RNG stream the two instances already share.
func State(g *engine.Game) uint64 {
	h := xxhash.New()
	var buf [8]byte

	writeUint64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	writeByte := func(b byte) {
		h.Write([]byte{b})
	}

	b := g.Board()
	for y := 0; y < board.VisibleHeight; y++ {
		for x := 0; x < board.Width; x++ {
			writeByte(byte(b.CellColor(x, y)))
		}
	}

	if piece, ok := g.ActivePiece(); ok {
		writeByte(1)
		writeByte(byte(piece.Kind))
		writeByte(byte(piece.Rotation))
		writeByte(byte(piece.TSpin))
		writeUint64(uint64(int64(piece.X)))
		writeUint64(uint64(int64(piece.Y)))
	} else {
		writeByte(0)
	}

	if held, ok := b.HeldKind(); ok {
		writeByte(1)
		writeByte(byte(held))
	} else {
		writeByte(0)
	}

	writeUint64(uint64(g.GarbageQueue()))
	if g.GameOver() {
		writeByte(1)
	} else {
		writeByte(0)
	}

	return h.Sum64()
}
