package engine

import "github.com/foldedge/tetricore/internal/board"

// Game is the whole simulation: the board collaborator, timing config, the
// current lifecycle state and whatever that state needs live. A single
// Update call advances it by exactly one tick and returns the events that
// tick produced, in emission order.
type Game struct {
	board Board
	config Config

	state          stateKind
	spawnDelay     uint32
	lineClearDelay uint32
	falling        fallingState

	didHold bool
	prev    Controller
	used    Controller

	dasCounter   uint32
	garbageQueue uint32
	attacking    uint32
}

// New constructs a Game on a fresh board, queuing config.NextQueueSize
// pieces and starting in the initial spawn delay.
func New(config Config, pieceRng Rand) *Game {
	b := board.New()
	for i := 0; i < config.NextQueueSize; i++ {
		b.AddNextPiece(b.GenerateNextPiece(pieceRng))
	}
	return &Game{
		board:      b,
		config:     config,
		state:      stateSpawnDelay,
		spawnDelay: config.SpawnDelay,
		dasCounter: config.DelayedAutoShift,
	}
}

// Board exposes the live board for rendering/inspection by the outer
// harness. Callers should treat it as read-only; mutating it outside of
// Update breaks the simulation's determinism guarantees.
func (g *Game) Board() Board {
	return g.board
}

// GarbageQueue reports the number of garbage rows currently owed to this
// board but not yet inserted.
func (g *Game) GarbageQueue() uint32 {
	return g.garbageQueue
}

// GameOver reports whether the game has reached its terminal state.
func (g *Game) GameOver() bool {
	return g.state == stateGameOver
}

// ActivePiece returns the currently falling piece, if the game is in the
// Falling state.
func (g *Game) ActivePiece() (board.FallingPiece, bool) {
	if g.state != stateFalling {
		return board.FallingPiece{}, false
	}
	return g.falling.piece, true
}

// AddGarbage queues n rows of garbage to be reconciled against this game's
// own outgoing attack on its next settle (see dealGarbage); it is how an
// opponent's GarbageSent event is routed into this Game by the outer
// harness (see internal/battle).
func (g *Game) AddGarbage(n uint32) {
	g.garbageQueue += n
}

// Update advances the game by one tick given this tick's raw controller
// sample and the two independent randomness streams, and returns the
// events produced, in order.
func (g *Game) Update(current Controller, pieceRng, garbageRng Rand) []Event {
	g.conditionInput(current)

	switch g.state {
	case stateSpawnDelay:
		return g.updateSpawnDelay(pieceRng)
	case stateLineClearDelay:
		return g.updateLineClearDelay(garbageRng)
	case stateGameOver:
		return []Event{GameOver{}}
	default:
		return g.updateFalling(garbageRng)
	}
}

func (g *Game) updateSpawnDelay(pieceRng Rand) []Event {
	if g.spawnDelay == 0 {
		nextPiece, _ := g.board.AdvanceQueue()
		newPiece := g.board.GenerateNextPiece(pieceRng)
		g.board.AddNextPiece(newPiece)
		if spawned, ok := g.board.Spawn(nextPiece); ok {
			g.falling = newFallingState(spawned, g.config.Gravity)
			g.state = stateFalling
			ghost := g.board.SonicDrop(spawned)
			return []Event{
				PieceSpawned{NewInQueue: newPiece},
				PieceFalling{Piece: spawned, Ghost: ghost},
			}
		}
		g.state = stateGameOver
		return []Event{GameOver{}}
	}
	g.spawnDelay--
	if g.spawnDelay+1 == g.config.SpawnDelay {
		return []Event{SpawnDelayStart{}}
	}
	return nil
}

func (g *Game) updateLineClearDelay(garbageRng Rand) []Event {
	if g.lineClearDelay == 0 {
		g.state = stateSpawnDelay
		g.spawnDelay = g.config.SpawnDelay
		events := []Event{EndOfLineClearDelay{}}
		return g.dealGarbage(events, garbageRng)
	}
	g.lineClearDelay--
	return nil
}

func (g *Game) updateFalling(garbageRng Rand) []Event {
	events := []Event{}
	wasOnStack := g.board.OnStack(g.falling.piece)

	// Hold: at most once per piece. If a piece was already held it is
	// swapped in immediately; on the first hold (empty slot) the game
	// enters a normal spawn delay and the next queued piece spawns after it.
	if !g.didHold && g.used.Hold {
		g.didHold = true
		events = append(events, PieceHeld{Kind: g.falling.piece.Kind})
		prevHeld, had := g.board.Hold(g.falling.piece.Kind)
		if had {
			if spawned, ok := g.board.Spawn(prevHeld); ok {
				g.falling = newFallingState(spawned, g.config.Gravity)
				ghost := g.board.SonicDrop(spawned)
				events = append(events, PieceFalling{Piece: spawned, Ghost: ghost})
			} else {
				g.state = stateGameOver
				events = append(events, GameOver{})
			}
		} else {
			g.state = stateSpawnDelay
			g.spawnDelay = g.config.SpawnDelay
		}
		return events
	}

	// Rotate.
	if g.used.RotateCW {
		if np, ok := g.board.CW(g.falling.piece); ok {
			g.falling.piece = np
			g.used.RotateCW = false
			g.falling.rotationMoveCount++
			g.falling.lockDelay = g.config.LockDelay
			if np.TSpin != board.TSpinNone {
				events = append(events, PieceTSpined{})
			} else {
				events = append(events, PieceRotated{})
			}
		}
	}
	if g.used.RotateCCW {
		if np, ok := g.board.CCW(g.falling.piece); ok {
			g.falling.piece = np
			g.used.RotateCCW = false
			g.falling.rotationMoveCount++
			g.falling.lockDelay = g.config.LockDelay
			if np.TSpin != board.TSpinNone {
				events = append(events, PieceTSpined{})
			} else {
				events = append(events, PieceRotated{})
			}
		}
	}

	// Shift.
	if g.used.Left {
		if np, ok := g.board.Shift(g.falling.piece, -1, 0); ok {
			g.falling.piece = np
			g.used.Left = false
			g.falling.rotationMoveCount++
			g.falling.lockDelay = g.config.LockDelay
			events = append(events, PieceMoved{})
		}
	}
	if g.used.Right {
		if np, ok := g.board.Shift(g.falling.piece, 1, 0); ok {
			g.falling.piece = np
			g.used.Right = false
			g.falling.rotationMoveCount++
			g.falling.lockDelay = g.config.LockDelay
			events = append(events, PieceMoved{})
		}
	}

	// 15-move lock rule: reset the move count whenever the piece reaches
	// a new low it has never been at before.
	lowY := g.falling.piece.MinY()
	if lowY < g.falling.lowestY {
		g.falling.rotationMoveCount = 0
		g.falling.lowestY = lowY
	}

	if g.falling.rotationMoveCount >= g.config.MoveLockRule {
		dropped := g.board.SonicDrop(g.falling.piece)
		// The rule doesn't apply if the piece can still fall to a lower y
		// than it has ever reached before.
		if dropped.MinY() >= g.falling.lowestY {
			f := g.falling
			f.piece = dropped
			g.lock(f, &events, garbageRng, nil)
			return events
		}
	}

	// Hard drop.
	if g.used.HardDrop {
		startY := g.falling.piece.Y
		dropped := g.board.SonicDrop(g.falling.piece)
		distance := startY - dropped.Y
		f := g.falling
		f.piece = dropped
		g.lock(f, &events, garbageRng, &distance)
		return events
	}

	if g.board.OnStack(g.falling.piece) {
		if !wasOnStack {
			events = append(events, StackTouched{})
		}
		g.falling.lockDelay--
		g.falling.gravity = g.config.Gravity
		if g.falling.lockDelay == 0 {
			f := g.falling
			g.lock(f, &events, garbageRng, nil)
			return events
		}
	} else {
		g.falling.lockDelay = g.config.LockDelay
		g.falling.gravity -= 100
		for g.falling.gravity < 0 {
			g.falling.gravity += g.config.Gravity
			g.falling.piece, _ = g.board.Shift(g.falling.piece, 0, -1)
		}

		if g.board.OnStack(g.falling.piece) {
			events = append(events, StackTouched{})
		} else if g.config.Gravity > int(g.config.SoftDropSpeed)*100 {
			if g.used.SoftDrop {
				if g.falling.softDropDelay == 0 {
					g.falling.piece, _ = g.board.Shift(g.falling.piece, 0, -1)
					g.falling.softDropDelay = g.config.SoftDropSpeed
					g.falling.gravity = g.config.Gravity
					events = append(events, PieceMoved{})
					if g.board.OnStack(g.falling.piece) {
						events = append(events, StackTouched{})
					}
					events = append(events, SoftDropped{})
				} else {
					g.falling.softDropDelay--
				}
			} else {
				g.falling.softDropDelay = 0
			}
		}
	}

	ghost := g.board.SonicDrop(g.falling.piece)
	events = append(events, PieceFalling{Piece: g.falling.piece, Ghost: ghost})
	return events
}

// lock is C4: it commits f's piece to the board, emits PiecePlaced, and
// dispatches the next state from the lock's verdict.
func (g *Game) lock(f fallingState, events *[]Event, garbageRng Rand, dist *int) {
	g.didHold = false
	locked := g.board.LockPiece(f.piece)

	*events = append(*events, PiecePlaced{
		Piece:            f.piece,
		Locked:           locked,
		HardDropDistance: dist,
	})

	switch {
	case locked.LockedOut:
		g.state = stateGameOver
		*events = append(*events, GameOver{})
	case len(locked.ClearedLines) == 0:
		g.state = stateSpawnDelay
		g.spawnDelay = g.config.SpawnDelay
		*events = g.dealGarbage(*events, garbageRng)
	default:
		g.attacking += uint32(locked.GarbageSent)
		g.state = stateLineClearDelay
		g.lineClearDelay = g.config.LineClearDelay
	}
}

// dealGarbage is C5: it nets this settle's outgoing attack against the
// garbage this board is owed, then inserts whatever garbage remains owed
// (up to config.MaxGarbageAdd rows), sampling a column per row with a 1/3
// chance to resample to a new column.
func (g *Game) dealGarbage(events []Event, rng Rand) []Event {
	if g.attacking > g.garbageQueue {
		g.attacking -= g.garbageQueue
		g.garbageQueue = 0
	} else {
		g.garbageQueue -= g.attacking
		g.attacking = 0
	}

	if g.garbageQueue > 0 {
		dead := false
		col := rng.IntN(board.Width)
		var columns []int
		n := g.garbageQueue
		if g.config.MaxGarbageAdd < n {
			n = g.config.MaxGarbageAdd
		}
		for i := uint32(0); i < n; i++ {
			if rng.Float64() < 1.0/3.0 {
				col = rng.IntN(board.Width)
			}
			columns = append(columns, col)
			if g.board.AddGarbage(col) {
				dead = true
			}
		}
		g.garbageQueue -= n
		events = append(events, GarbageAdded{Columns: columns})
		if dead {
			events = append(events, GameOver{})
			g.state = stateGameOver
		}
	} else if g.attacking > 0 {
		events = append(events, GarbageSent{Amount: int(g.attacking)})
		g.attacking = 0
	}
	return events
}
