package engine

// Config is an immutable set of timing and feature parameters for a Game.
// All timing fields are frame counts or integer sub-cell units — never
// floating point, or the event sequence would diverge across platforms
// (spec.md §9).
type Config struct {
	// SpawnDelay is the number of frames between a lock (or the end of a
	// line-clear delay) and the next piece's spawn.
	SpawnDelay uint32
	// LineClearDelay is the number of frames held after a clearing lock
	// before SpawnDelay begins counting down.
	LineClearDelay uint32
	// DelayedAutoShift is the initial DAS charge, in frames, before
	// auto-repeat begins.
	DelayedAutoShift uint32
	// AutoRepeatRate is the number of frames between auto-repeated shifts
	// once DAS has charged.
	AutoRepeatRate uint32
	// Gravity is the time the falling piece takes to descend one cell, in
	// 1/100 frame per cell, applied through an integer accumulator: each
	// frame the accumulator loses 100, and each time it goes negative it
	// gains Gravity and the piece drops one cell. Larger values fall slower.
	Gravity int
	// SoftDropSpeed is the number of frames per cell during a soft drop.
	// It only takes effect when natural gravity is slower than this rate.
	SoftDropSpeed uint32
	// LockDelay is the number of frames a piece may rest on-stack before
	// it locks automatically; a successful rotate or shift resets the
	// counter back to this value.
	LockDelay uint32
	// MoveLockRule is the number of rotations/shifts allowed after first
	// touching the stack before a lock is forced (the classical "15-move"
	// rule).
	MoveLockRule uint32
	// NextQueueSize is the number of visible next pieces.
	NextQueueSize int
	// MaxGarbageAdd bounds how many garbage rows are injected in a single
	// settle.
	MaxGarbageAdd uint32
}

// initialLockDelay is the lock delay a freshly spawned or post-hold piece
// starts with — 30 frames, regardless of Config.LockDelay. This matches
// the original implementation exactly (see SPEC_FULL.md §5 and the
// open-question note in spec.md §9): it is preserved verbatim rather than
// "fixed" to use Config.LockDelay, since the spec explicitly calls this out
// as possibly-intentional, possibly-buggy behavior to keep rather than
// silently change.
const initialLockDelay = 30

// DefaultConfig returns the classical guideline-ish timing values used by
// cmd/tetricore-demo and cmd/tetricore-battle when no overrides are given.
func DefaultConfig() Config {
	return Config{
		SpawnDelay:       0,
		LineClearDelay:   35,
		DelayedAutoShift: 10,
		AutoRepeatRate:   2,
		Gravity:          3333,
		SoftDropSpeed:    1,
		LockDelay:        30,
		MoveLockRule:     15,
		NextQueueSize:    5,
		MaxGarbageAdd:    8,
	}
}
