package engine

// Controller is a single frame's worth of raw button state sampled from
// whatever input device the caller owns.
type Controller struct {
	Left, Right          bool
	RotateCW, RotateCCW  bool
	SoftDrop             bool
	Hold                 bool
	HardDrop             bool
}

// updateIntent implements the consumable edge-triggered intent rule
// (spec.md §4.1): an intent is cleared the instant its button is released,
// set the instant its button transitions low-to-high, and otherwise left
// alone — so a tick that consumes the intent (by clearing *used directly)
// is not immediately re-armed by a button that is still simply being held.
func updateIntent(used *bool, prev, current bool) {
	if !current {
		*used = false
	} else if !prev {
		*used = true
	}
}

// conditionInput is C1: it derives this tick's consumable `used` intents
// from the raw `current` sample and the previous tick's raw sample, and
// runs the DAS/ARR state machine over left/right.
func (g *Game) conditionInput(current Controller) {
	updateIntent(&g.used.Left, g.prev.Left, current.Left)
	updateIntent(&g.used.Right, g.prev.Right, current.Right)
	updateIntent(&g.used.RotateCW, g.prev.RotateCW, current.RotateCW)
	updateIntent(&g.used.RotateCCW, g.prev.RotateCCW, current.RotateCCW)
	updateIntent(&g.used.SoftDrop, g.prev.SoftDrop, current.SoftDrop)
	updateIntent(&g.used.Hold, g.prev.Hold, current.Hold)

	// hard_drop is a pure rising edge.
	g.used.HardDrop = !g.prev.HardDrop && current.HardDrop
	// soft_drop passes through level-held, overriding the edge-triggered
	// assignment just above — this duplication is intentional, see
	// SPEC_FULL.md §5.
	g.used.SoftDrop = current.SoftDrop

	switched := current.Left != g.prev.Left && current.Right != g.prev.Right
	if current.Left != current.Right && !switched {
		if g.used.Left || g.used.Right {
			// While movement is buffered, never let the time until the
			// next shift fall below the auto-repeat rate — otherwise a
			// piece could shift twice in rapid succession right after
			// spawning if a direction was held through the spawn.
			if g.dasCounter > g.config.AutoRepeatRate {
				g.dasCounter--
			}
		} else if g.dasCounter == 0 {
			g.dasCounter = g.config.AutoRepeatRate
			g.used.Left = current.Left
			g.used.Right = current.Right
		} else {
			g.dasCounter--
		}
	} else {
		// No direction held, both held, or a simultaneous direction swap:
		// reset DAS and re-apply any fresh button-down edge.
		g.dasCounter = g.config.DelayedAutoShift
		g.used.Left = false
		g.used.Right = false
		if current.Left && !g.prev.Left {
			g.used.Left = true
		} else if current.Right && !g.prev.Right {
			g.used.Right = true
		}
	}

	g.prev = current
}
