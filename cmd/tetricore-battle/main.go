// Command tetricore-battle runs two engine.Game instances against each
// other headlessly for a fixed number of ticks, recording both replay
// logs to disk, or verifies two previously recorded logs against each
// other.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/foldedge/tetricore/internal/battle"
	"github.com/foldedge/tetricore/internal/engine"
	"github.com/foldedge/tetricore/internal/replay"
)

var (
	ticks     = flag.Int("ticks", 1800, "number of ticks to simulate")
	outDir    = flag.String("out", "./replays", "directory to write replay logs under")
	verifyDir = flag.String("verify", "", "if set, verify the replay logs a and b under this directory instead of simulating")
)

func main() {
	flag.Parse()

	if *verifyDir != "" {
		if err := runVerify(*verifyDir); err != nil {
			log.Fatal(err)
		}
		return
	}
	if err := runMatch(*outDir, *ticks); err != nil {
		log.Fatal(err)
	}
}

func runMatch(dir string, numTicks int) error {
	logA, err := replay.Open(dir + "/a")
	if err != nil {
		return fmt.Errorf("open replay log a: %w", err)
	}
	defer logA.Close()

	logB, err := replay.Open(dir + "/b")
	if err != nil {
		return fmt.Errorf("open replay log b: %w", err)
	}
	defer logB.Close()

	cfg := engine.DefaultConfig()
	pieceRngA := rand.New(rand.NewPCG(1, 1))
	garbageRngA := rand.New(rand.NewPCG(2, 2))
	pieceRngB := rand.New(rand.NewPCG(3, 3))
	garbageRngB := rand.New(rand.NewPCG(4, 4))

	m := battle.NewMatch(cfg, pieceRngA, pieceRngB)
	noInput := engine.Controller{}

	for tick := 0; tick < numTicks && !m.Over(); tick++ {
		eventsA, eventsB := m.Step(noInput, noInput, pieceRngA, garbageRngA, pieceRngB, garbageRngB)
		if err := logA.Record(uint64(tick), noInput, eventsA); err != nil {
			return fmt.Errorf("record tick %d side a: %w", tick, err)
		}
		if err := logB.Record(uint64(tick), noInput, eventsB); err != nil {
			return fmt.Errorf("record tick %d side b: %w", tick, err)
		}
	}

	log.Printf("simulated match recorded to %s", dir)
	return nil
}

func runVerify(dir string) error {
	logA, err := replay.Open(dir + "/a")
	if err != nil {
		return fmt.Errorf("open replay log a: %w", err)
	}
	defer logA.Close()

	logB, err := replay.Open(dir + "/b")
	if err != nil {
		return fmt.Errorf("open replay log b: %w", err)
	}
	defer logB.Close()

	tick, ok, err := battle.VerifyReplays(context.Background(), logA, logB)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	if !ok {
		log.Fatalf("replays diverge at tick %d", tick)
	}
	log.Print("replays match")
	return nil
}
