package board

const (
	// Width is the playfield width in columns.
	Width = 10
	// VisibleHeight is the number of rows shown to a player/renderer.
	VisibleHeight = 20
	// Height is the total row count, including the buffer rows above
	// VisibleHeight needed for spawn headroom and rotation kicks.
	Height = 24
)

// row is one playfield row: a 10-bit occupancy mask plus a parallel color
// per column, mirroring the original implementation's Board<ColoredRow>.
type row struct {
	occ    uint16
	colors [Width]Color
}

func (r row) full() bool {
	return r.occ == 1<<Width-1
}

func (r row) empty() bool {
	return r.occ == 0
}

func (r *row) set(col int, c Color) {
	r.occ |= 1 << uint(col)
	r.colors[col] = c
}

func (r row) occupied(col int) bool {
	return r.occ&(1<<uint(col)) != 0
}

// Board is a 10-wide Tetris-style playfield: row storage, the next-piece
// queue, the hold slot, piece spawn/collision/rotation/sonic-drop, and
// garbage-row insertion. It is the sole Board collaborator the engine
// depends on (see engine.Board).
type Board struct {
	rows [Height]row
	next []Kind
	bag  []Kind
	hold *Kind
}

// New returns an empty 10-wide playfield with an empty queue and hold slot.
func New() *Board {
	return &Board{}
}

func (b *Board) fits(cells [4]Point) bool {
	for _, c := range cells {
		if c.X < 0 || c.X >= Width || c.Y < 0 {
			return false
		}
		if c.Y >= Height {
			continue // above the allocated buffer is always open
		}
		if b.rows[c.Y].occupied(c.X) {
			return false
		}
	}
	return true
}

func (b *Board) cellBlocked(x, y int) bool {
	if x < 0 || x >= Width || y < 0 {
		return true
	}
	if y >= Height {
		return false
	}
	return b.rows[y].occupied(x)
}

// --- queue / hold ---

// GenerateNextPiece draws the next piece from a 7-bag randomizer, refilling
// and shuffling the bag with rng when it runs dry.
func (b *Board) GenerateNextPiece(rng Rand) Kind {
	if len(b.bag) == 0 {
		b.bag = []Kind{I, O, T, S, Z, J, L}
		for i := len(b.bag) - 1; i > 0; i-- {
			j := rng.IntN(i + 1)
			b.bag[i], b.bag[j] = b.bag[j], b.bag[i]
		}
	}
	k := b.bag[len(b.bag)-1]
	b.bag = b.bag[:len(b.bag)-1]
	return k
}

// AddNextPiece appends a piece to the back of the visible next queue.
func (b *Board) AddNextPiece(k Kind) {
	b.next = append(b.next, k)
}

// AdvanceQueue pops and returns the piece at the front of the next queue.
func (b *Board) AdvanceQueue() (Kind, bool) {
	if len(b.next) == 0 {
		return 0, false
	}
	k := b.next[0]
	b.next = b.next[1:]
	return k, true
}

// NextQueueLen reports how many pieces are currently visible in the queue.
func (b *Board) NextQueueLen() int {
	return len(b.next)
}

// Hold swaps k into the hold slot and returns the piece that was
// previously held, if any.
func (b *Board) Hold(k Kind) (Kind, bool) {
	if b.hold == nil {
		h := k
		b.hold = &h
		return 0, false
	}
	prev := *b.hold
	*b.hold = k
	return prev, true
}

// HeldKind reports the kind currently in the hold slot, if any.
func (b *Board) HeldKind() (Kind, bool) {
	if b.hold == nil {
		return 0, false
	}
	return *b.hold, true
}

// --- piece placement ---

const spawnX = 3

// spawnY places a piece so its box sits just above VisibleHeight.
func spawnY() int { return VisibleHeight }

// Spawn creates a FallingPiece of kind k at the standard spawn position. It
// reports false (a block-out) if the spawn cells are already occupied.
func (b *Board) Spawn(k Kind) (FallingPiece, bool) {
	p := FallingPiece{Kind: k, Rotation: 0, X: spawnX, Y: spawnY()}
	if !b.fits(p.Cells()) {
		return FallingPiece{}, false
	}
	return p, true
}

// OnStack reports whether p cannot move down by one cell without colliding.
func (b *Board) OnStack(p FallingPiece) bool {
	cells := p.Cells()
	for _, c := range cells {
		if b.cellBlocked(c.X, c.Y-1) {
			return true
		}
	}
	return false
}

// Shift attempts to translate p by (dx, dy); on success it returns the
// updated piece and true, leaving TSpin cleared (only rotation can set it).
func (b *Board) Shift(p FallingPiece, dx, dy int) (FallingPiece, bool) {
	np := p
	np.X += dx
	np.Y += dy
	np.TSpin = TSpinNone
	if !b.fits(np.Cells()) {
		return p, false
	}
	return np, true
}

// SonicDrop translates p down until it is on-stack. The board contract
// guarantees this terminates and never collides.
func (b *Board) SonicDrop(p FallingPiece) FallingPiece {
	for !b.OnStack(p) {
		np, ok := b.Shift(p, 0, -1)
		if !ok {
			break
		}
		p = np
	}
	return p
}

// CW attempts a clockwise rotation of p, trying each SRS kick test in
// order and returning the first that fits. T-spin status is classified on
// success.
func (b *Board) CW(p FallingPiece) (FallingPiece, bool) {
	return b.rotate(p, p.Rotation.CW())
}

// CCW attempts a counter-clockwise rotation of p.
func (b *Board) CCW(p FallingPiece) (FallingPiece, bool) {
	return b.rotate(p, p.Rotation.CCW())
}

func (b *Board) rotate(p FallingPiece, to Rotation) (FallingPiece, bool) {
	kicks, hasKicks := kicksFor(p.Kind, p.Rotation, to)
	if !hasKicks {
		// O: rotation never changes the footprint; it always succeeds.
		np := p
		np.Rotation = to
		np.TSpin = TSpinNone
		return np, true
	}
	for i, k := range kicks {
		np := p
		np.Rotation = to
		np.X = p.X + k.DX
		np.Y = p.Y + k.DY
		if b.fits(np.Cells()) {
			np.TSpin = b.classifyTSpin(np, i)
			return np, true
		}
	}
	return p, false
}

// classifyTSpin applies the standard 3-corner T-spin rule: the T piece's
// last successful move must have been this rotation (guaranteed by the
// caller), and at least 3 of its 4 bounding-box corners must be occupied
// or out of bounds. kickIndex is the 0-based index of the kick test that
// succeeded; the final ("fifth") test upgrades a Mini to a Full T-spin,
// covering the T-Spin Triple setup.
func (b *Board) classifyTSpin(p FallingPiece, kickIndex int) TSpinStatus {
	if p.Kind != T {
		return TSpinNone
	}
	size := boxSize(p.Kind)
	toBoard := func(c localCell) (int, int) {
		return p.X + c.Col, p.Y + (size - 1 - c.Row)
	}
	countBlocked := func(corners [2]localCell) int {
		n := 0
		for _, c := range corners {
			x, y := toBoard(c)
			if b.cellBlocked(x, y) {
				n++
			}
		}
		return n
	}
	front := countBlocked(tSpinFrontCorners[p.Rotation])
	back := countBlocked(tSpinBackCorners[p.Rotation])
	switch {
	case front+back < 3:
		return TSpinNone
	case front == 2:
		return TSpinFull
	case front == 1 && back == 2:
		if kickIndex == len(jlstzKicks[rotationPair{0, 1}])-1 {
			return TSpinFull
		}
		return TSpinMini
	default:
		return TSpinNone
	}
}

// attackSent maps (lines cleared, tspin) to the number of garbage rows
// sent, following the common guideline-derived scoring used by most
// versus-mode implementations.
func attackSent(lines int, t TSpinStatus) int {
	if lines == 0 {
		return 0
	}
	switch t {
	case TSpinFull:
		table := [...]int{0, 2, 4, 6}
		return table[min(lines, 3)]
	case TSpinMini:
		table := [...]int{0, 1, 2}
		return table[min(lines, 2)]
	default:
		table := [...]int{0, 0, 1, 2, 4}
		return table[min(lines, 4)]
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// LockPiece writes p's cells into the board, clears any full rows, and
// reports the outcome.
func (b *Board) LockPiece(p FallingPiece) LockResult {
	minY := p.MinY()
	color := p.Kind.Color()
	for _, c := range p.Cells() {
		if c.Y >= 0 && c.Y < Height {
			b.rows[c.Y].set(c.X, color)
		}
	}

	var cleared []int
	for y := 0; y < Height; y++ {
		if b.rows[y].full() {
			cleared = append(cleared, y)
		}
	}
	for i := len(cleared) - 1; i >= 0; i-- {
		y := cleared[i]
		copy(b.rows[y:], b.rows[y+1:])
		b.rows[Height-1] = row{}
	}

	return LockResult{
		LockedOut:    minY >= VisibleHeight,
		ClearedLines: cleared,
		GarbageSent:  attackSent(len(cleared), p.TSpin),
	}
}

// AddGarbage inserts a garbage row with a single hole at col at the bottom
// of the board, shifting all rows up by one. It reports true if a filled
// cell was pushed above the top of the board (a top-out).
func (b *Board) AddGarbage(col int) bool {
	overflow := !b.rows[Height-1].empty()
	for y := Height - 1; y > 0; y-- {
		b.rows[y] = b.rows[y-1]
	}
	var r row
	for x := 0; x < Width; x++ {
		if x != col {
			r.set(x, ColorGarbage)
		}
	}
	b.rows[0] = r
	return overflow
}

// CellColor returns the color at (x, y), or ColorNone if empty or out of
// range. It is intended for renderers/debuggers, not engine logic.
func (b *Board) CellColor(x, y int) Color {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return ColorNone
	}
	if !b.rows[y].occupied(x) {
		return ColorNone
	}
	return b.rows[y].colors[x]
}
