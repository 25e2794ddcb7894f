package engine

import (
	"fmt"
	"testing"

	"github.com/foldedge/tetricore/internal/board"
)

type scriptRand struct {
	ints   []int
	floats []float64
}

func (s *scriptRand) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v >= n {
		v = n - 1
	}
	return v
}

func (s *scriptRand) Float64() float64 {
	if len(s.floats) == 0 {
		return 1
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

// spyBoard wraps a real *board.Board, delegating everything, but lets a
// test force the outcome of a rotation's T-spin classification or a lock's
// result — the geometry a literal T-Spin Triple or a block-out needs is
// awkward to construct through the board's move-only public surface, and
// the engine's job here is only to react correctly to what the board
// collaborator reports (see DESIGN.md on Board as a swappable collaborator).
type spyBoard struct {
	*board.Board
	forceTSpin       board.TSpinStatus
	forceClearedLines []int
	forceLockedOut    bool
}

func (s *spyBoard) CW(p board.FallingPiece) (board.FallingPiece, bool) {
	np, ok := s.Board.CW(p)
	if ok && s.forceTSpin != board.TSpinNone {
		np.TSpin = s.forceTSpin
	}
	return np, ok
}

func (s *spyBoard) LockPiece(p board.FallingPiece) board.LockResult {
	r := s.Board.LockPiece(p)
	if s.forceClearedLines != nil {
		r.ClearedLines = s.forceClearedLines
		r.GarbageSent = len(s.forceClearedLines)
	}
	if s.forceLockedOut {
		r.LockedOut = true
	}
	return r
}

func noController() Controller { return Controller{} }

// unboundedBoard is a minimal Board fake with no walls or floor: every
// shift succeeds and nothing is ever on-stack. It isolates the DAS/ARR
// input-conditioning cadence (S1) from playfield collision, which a real
// 10-wide board would otherwise confound within a few frames of holding a
// direction.
type unboundedBoard struct {
	piece board.FallingPiece
}

func (u *unboundedBoard) GenerateNextPiece(rng Rand) board.Kind { return board.T }
func (u *unboundedBoard) AddNextPiece(k board.Kind)             {}
func (u *unboundedBoard) AdvanceQueue() (board.Kind, bool)      { return board.T, true }
func (u *unboundedBoard) NextQueueLen() int                     { return 0 }
func (u *unboundedBoard) Hold(k board.Kind) (board.Kind, bool)  { return 0, false }
func (u *unboundedBoard) Spawn(k board.Kind) (board.FallingPiece, bool) {
	return u.piece, true
}
func (u *unboundedBoard) OnStack(p board.FallingPiece) bool { return false }
func (u *unboundedBoard) Shift(p board.FallingPiece, dx, dy int) (board.FallingPiece, bool) {
	np := p
	np.X += dx
	np.Y += dy
	return np, true
}
func (u *unboundedBoard) SonicDrop(p board.FallingPiece) board.FallingPiece { return p }
func (u *unboundedBoard) CW(p board.FallingPiece) (board.FallingPiece, bool) {
	return p, false
}
func (u *unboundedBoard) CCW(p board.FallingPiece) (board.FallingPiece, bool) {
	return p, false
}
func (u *unboundedBoard) LockPiece(p board.FallingPiece) board.LockResult { return board.LockResult{} }
func (u *unboundedBoard) AddGarbage(col int) bool                        { return false }
func (u *unboundedBoard) CellColor(x, y int) board.Color                 { return board.ColorNone }
func (u *unboundedBoard) HeldKind() (board.Kind, bool)                   { return 0, false }

func TestDeterminismWithIdenticalInputAndSeeds(t *testing.T) {
	cfg := DefaultConfig()
	run := func() string {
		pieceRng := &scriptRand{ints: []int{0, 1, 2, 3, 4, 5, 6, 0, 1, 2, 3, 4, 5, 6}}
		garbageRng := &scriptRand{ints: []int{3, 5}, floats: []float64{0.9, 0.9}}
		g := New(cfg, pieceRng)
		var out []Event
		for i := 0; i < 20; i++ {
			c := Controller{}
			if i%4 == 0 {
				c.Left = true
			}
			if i%7 == 0 {
				c.RotateCW = true
			}
			out = append(out, g.Update(c, pieceRng, garbageRng)...)
		}
		return fmt.Sprintf("%#v", out)
	}
	if run() != run() {
		t.Fatal("expected identical controller scripts and seeds to produce identical event sequences")
	}
}

func TestHoldIsConsumedAtMostOncePerPiece(t *testing.T) {
	cfg := DefaultConfig()
	pieceRng := &scriptRand{ints: []int{0, 1, 2, 3, 4, 5, 6}}
	g := New(cfg, pieceRng)
	g.Update(Controller{}, pieceRng, pieceRng) // spawn tick

	events := g.Update(Controller{Hold: true}, pieceRng, pieceRng)
	if !containsPieceHeld(events) {
		t.Fatal("expected the first hold press to emit PieceHeld")
	}

	g.Update(Controller{}, pieceRng, pieceRng) // release
	events = g.Update(Controller{Hold: true}, pieceRng, pieceRng)
	if containsPieceHeld(events) {
		t.Fatal("expected a second hold press before any lock to be a no-op")
	}
}

func containsPieceHeld(events []Event) bool {
	for _, e := range events {
		if _, ok := e.(PieceHeld); ok {
			return true
		}
	}
	return false
}

func TestLockDelayResetsOnSuccessfulShift(t *testing.T) {
	cfg := DefaultConfig()
	b := board.New()
	spawned, _ := b.Spawn(board.T)
	dropped := b.SonicDrop(spawned)
	g := &Game{
		board:  b,
		config: cfg,
		state:  stateFalling,
		falling: fallingState{
			piece:     dropped,
			lowestY:   dropped.MinY(),
			lockDelay: 1,
		},
	}
	events := g.Update(Controller{Left: true}, &scriptRand{}, &scriptRand{})
	for _, e := range events {
		if _, ok := e.(PiecePlaced); ok {
			t.Fatal("expected the shift to reset lock delay, not force a lock this tick")
		}
	}
	// The shift resets lock delay to cfg.LockDelay, and since the piece is
	// still on-stack afterwards, the same tick's on-stack handling ticks
	// it down by one more.
	if want := cfg.LockDelay - 1; g.falling.lockDelay != want {
		t.Fatalf("expected lock delay reset to %d, got %d", want, g.falling.lockDelay)
	}
}

func TestMoveLockRuleForcesLockAtThreshold(t *testing.T) {
	cfg := DefaultConfig()
	b := board.New()
	spawned, _ := b.Spawn(board.O)
	dropped := b.SonicDrop(spawned)
	g := &Game{
		board:  b,
		config: cfg,
		state:  stateFalling,
		falling: fallingState{
			piece:             dropped,
			lowestY:           dropped.MinY(),
			rotationMoveCount: cfg.MoveLockRule - 1,
			lockDelay:         cfg.LockDelay,
		},
	}
	events := g.Update(Controller{Right: true}, &scriptRand{}, &scriptRand{})
	found := false
	for _, e := range events {
		if _, ok := e.(PiecePlaced); ok {
			found = true
		}
	}
	if !found {
		t.Fatal("expected reaching the move-lock threshold to force a lock")
	}
}

func TestQueueLengthStaysConstantAcrossSpawns(t *testing.T) {
	cfg := DefaultConfig()
	pieceRng := &scriptRand{ints: []int{0, 1, 2, 3, 4, 5, 6, 0, 1, 2, 3, 4, 5, 6, 0, 1, 2, 3, 4, 5, 6}}
	g := New(cfg, pieceRng)
	// Hard drop is a rising edge, so press it every other tick: each press
	// locks the piece and the following tick spawns the next one.
	for i := 0; i < 10; i++ {
		g.Update(Controller{HardDrop: i%2 == 1}, pieceRng, pieceRng)
		if n := g.board.NextQueueLen(); n != cfg.NextQueueSize {
			t.Fatalf("tick %d: expected next queue length %d, got %d", i, cfg.NextQueueSize, n)
		}
	}
}

func TestSpawnDelayStartFiresOnFirstCountdownTick(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpawnDelay = 5
	g := &Game{
		board:      board.New(),
		config:     cfg,
		state:      stateSpawnDelay,
		spawnDelay: cfg.SpawnDelay,
	}
	events := g.Update(noController(), &scriptRand{}, &scriptRand{})
	if len(events) != 1 {
		t.Fatalf("expected exactly one event, got %v", events)
	}
	if _, ok := events[0].(SpawnDelayStart); !ok {
		t.Fatalf("expected SpawnDelayStart, got %#v", events[0])
	}
}

func TestGameOverIsTerminal(t *testing.T) {
	g := &Game{board: board.New(), config: DefaultConfig(), state: stateGameOver}
	for i := 0; i < 3; i++ {
		events := g.Update(noController(), &scriptRand{}, &scriptRand{})
		if len(events) != 1 {
			t.Fatalf("tick %d: expected exactly one event, got %v", i, events)
		}
		if _, ok := events[0].(GameOver); !ok {
			t.Fatalf("tick %d: expected GameOver, got %#v", i, events[0])
		}
	}
}

// S1: holding left continuously with das=10, arr=2 must produce exactly
// floor((30-10)/2)+1 = 11 PieceMoved events over 30 frames, never two on
// consecutive frames during the initial 10-frame charge.
func TestDASDoubleShiftPrevention(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpawnDelay = 0
	cfg.DelayedAutoShift = 10
	cfg.AutoRepeatRate = 2
	ub := &unboundedBoard{piece: board.FallingPiece{Kind: board.T, X: 100, Y: 100}}
	g := &Game{board: ub, config: cfg, state: stateSpawnDelay}
	g.Update(noController(), &scriptRand{}, &scriptRand{}) // spawn

	moved := 0
	for i := 0; i < 30; i++ {
		events := g.Update(Controller{Left: true}, &scriptRand{}, &scriptRand{})
		for _, e := range events {
			if _, ok := e.(PieceMoved); ok {
				moved++
			}
		}
	}
	if moved != 11 {
		t.Fatalf("expected 11 PieceMoved events, got %d", moved)
	}
}

// S2: a rotation the board classifies as a T-spin emits PieceTSpined, and
// locking with a board that reports a 3-line clear surfaces that in
// LockResult.
func TestTSpinClassificationAndClear(t *testing.T) {
	cfg := DefaultConfig()
	b := board.New()
	spawned, _ := b.Spawn(board.T)
	sb := &spyBoard{Board: b, forceTSpin: board.TSpinFull, forceClearedLines: []int{0, 1, 2}}
	g := &Game{
		board:  sb,
		config: cfg,
		state:  stateFalling,
		falling: fallingState{
			piece:   spawned,
			lowestY: spawned.MinY(),
		},
	}
	events := g.Update(Controller{RotateCW: true}, &scriptRand{}, &scriptRand{})
	if !containsPieceTSpined(events) {
		t.Fatalf("expected PieceTSpined, got %#v", events)
	}

	events = g.Update(Controller{HardDrop: true}, &scriptRand{}, &scriptRand{})
	placed, ok := findPiecePlaced(events)
	if !ok {
		t.Fatalf("expected PiecePlaced, got %#v", events)
	}
	if len(placed.Locked.ClearedLines) != 3 {
		t.Fatalf("expected 3 cleared lines, got %d", len(placed.Locked.ClearedLines))
	}
}

func containsPieceTSpined(events []Event) bool {
	for _, e := range events {
		if _, ok := e.(PieceTSpined); ok {
			return true
		}
	}
	return false
}

func findPiecePlaced(events []Event) (PiecePlaced, bool) {
	for _, e := range events {
		if p, ok := e.(PiecePlaced); ok {
			return p, true
		}
	}
	return PiecePlaced{}, false
}

// S3: a hard drop locks with HardDropDistance set to the distance fallen.
func TestHardDropReportsDistance(t *testing.T) {
	cfg := DefaultConfig()
	pieceRng := &scriptRand{ints: []int{0, 1, 2, 3, 4, 5, 6}}
	g := New(cfg, pieceRng)
	g.Update(Controller{}, pieceRng, pieceRng) // spawn

	events := g.Update(Controller{HardDrop: true}, pieceRng, pieceRng)
	placed, ok := findPiecePlaced(events)
	if !ok {
		t.Fatalf("expected PiecePlaced, got %#v", events)
	}
	if placed.HardDropDistance == nil || *placed.HardDropDistance <= 0 {
		t.Fatalf("expected a positive hard drop distance, got %v", placed.HardDropDistance)
	}
}

// S4: settling an outgoing attack (6) larger than the queued garbage (4),
// as a non-clearing lock does, cancels the queue entirely and sends only
// the remainder.
func TestGarbageCancellationNetsAgainstQueue(t *testing.T) {
	g := &Game{
		board:        board.New(),
		config:       DefaultConfig(),
		garbageQueue: 4,
		attacking:    6,
	}
	events := g.dealGarbage(nil, &scriptRand{})
	if g.garbageQueue != 0 {
		t.Fatalf("expected garbage queue fully cancelled, got %d", g.garbageQueue)
	}
	var sent *GarbageSent
	for _, e := range events {
		if _, ok := e.(GarbageAdded); ok {
			t.Fatal("did not expect GarbageAdded when the attack fully cancels the queue")
		}
		if s, ok := e.(GarbageSent); ok {
			sent = &s
		}
	}
	if sent == nil || sent.Amount != 2 {
		t.Fatalf("expected GarbageSent(2), got %#v", sent)
	}
}

// S5: a line-clear delay's end is followed, same tick, by the queued
// garbage being added.
func TestEndOfLineClearDelayGatesGarbage(t *testing.T) {
	g := &Game{
		board:          board.New(),
		config:         DefaultConfig(),
		state:          stateLineClearDelay,
		lineClearDelay: 0,
		garbageQueue:   4,
	}
	events := g.Update(noController(), &scriptRand{}, &scriptRand{ints: []int{0, 1, 2, 3}, floats: []float64{0.9, 0.9, 0.9, 0.9}})
	if len(events) < 2 {
		t.Fatalf("expected at least 2 events, got %#v", events)
	}
	if _, ok := events[0].(EndOfLineClearDelay); !ok {
		t.Fatalf("expected EndOfLineClearDelay first, got %#v", events[0])
	}
	added, ok := events[1].(GarbageAdded)
	if !ok {
		t.Fatalf("expected GarbageAdded immediately after, got %#v", events[1])
	}
	if len(added.Columns) != 4 {
		t.Fatalf("expected 4 garbage rows added, got %d", len(added.Columns))
	}
	if g.garbageQueue != 0 {
		t.Fatalf("expected garbage queue drained, got %d", g.garbageQueue)
	}
}

// S6: a lock-out emits PiecePlaced then GameOver, and every tick
// thereafter emits only GameOver.
func TestLockOutEndsTheGame(t *testing.T) {
	b := board.New()
	spawned, _ := b.Spawn(board.O)
	sb := &spyBoard{Board: b, forceLockedOut: true}
	g := &Game{
		board:  sb,
		config: DefaultConfig(),
		state:  stateFalling,
		falling: fallingState{
			piece:   spawned,
			lowestY: spawned.MinY(),
		},
	}
	events := g.Update(Controller{HardDrop: true}, &scriptRand{}, &scriptRand{})
	if len(events) != 2 {
		t.Fatalf("expected exactly 2 events, got %#v", events)
	}
	if _, ok := events[0].(PiecePlaced); !ok {
		t.Fatalf("expected PiecePlaced first, got %#v", events[0])
	}
	if _, ok := events[1].(GameOver); !ok {
		t.Fatalf("expected GameOver second, got %#v", events[1])
	}

	for i := 0; i < 3; i++ {
		events = g.Update(noController(), &scriptRand{}, &scriptRand{})
		if len(events) != 1 {
			t.Fatalf("tick %d: expected exactly one event, got %v", i, events)
		}
		if _, ok := events[0].(GameOver); !ok {
			t.Fatalf("tick %d: expected only GameOver, got %#v", i, events[0])
		}
	}
}
