package engine

import "github.com/foldedge/tetricore/internal/board"

// Rand is the randomness source the engine threads through to the board
// collaborator for piece generation and garbage column sampling. It is
// satisfied directly by *math/rand/v2.Rand. Per spec.md §5/§9, the piece
// RNG and the garbage RNG are two independent streams passed in separately
// on every Update call — never merge them into one source, or
// replay-equivalence between two engine instances breaks.
type Rand = board.Rand
