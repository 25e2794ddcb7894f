package battle

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/foldedge/tetricore/internal/replay"
)

// VerifyReplays loads two recorded logs concurrently (the I/O-bound part —
// each is an independent disk-backed BadgerDB scan) and compares them
// tick by tick. It returns the first tick at which the recorded events
// diverge, or ok=true if both logs hold the same number of ticks and every
// tick matches exactly. If every shared tick matches but one log is longer,
// it reports ok=false with the first tick past the end of the shorter log.
func VerifyReplays(ctx context.Context, a, b *replay.Log) (mismatchTick uint64, ok bool, err error) {
	group, _ := errgroup.WithContext(ctx)

	var ticksA, ticksB map[uint64]replay.Tick
	group.Go(func() error {
		ticksA = map[uint64]replay.Tick{}
		return a.ForEach(func(tick uint64, rec replay.Tick) error {
			ticksA[tick] = rec
			return nil
		})
	})
	group.Go(func() error {
		ticksB = map[uint64]replay.Tick{}
		return b.ForEach(func(tick uint64, rec replay.Tick) error {
			ticksB[tick] = rec
			return nil
		})
	})
	if err := group.Wait(); err != nil {
		return 0, false, fmt.Errorf("battle: loading replay logs: %w", err)
	}

	shared := len(ticksA)
	if len(ticksB) < shared {
		shared = len(ticksB)
	}
	for t := uint64(0); t < uint64(shared); t++ {
		if fmt.Sprintf("%#v", ticksA[t].Events) != fmt.Sprintf("%#v", ticksB[t].Events) {
			return t, false, nil
		}
	}
	if len(ticksA) != len(ticksB) {
		return uint64(shared), false, nil
	}
	return 0, true, nil
}
