// Package replay persists a game's per-tick inputs and emitted events to
// an embedded BadgerDB store, so a run can be played back frame-for-frame
// or diffed against a peer's log (see internal/battle).
package replay

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/foldedge/tetricore/internal/engine"
)

func init() {
	gob.Register(engine.PieceSpawned{})
	gob.Register(engine.SpawnDelayStart{})
	gob.Register(engine.PieceMoved{})
	gob.Register(engine.PieceRotated{})
	gob.Register(engine.PieceTSpined{})
	gob.Register(engine.PieceHeld{})
	gob.Register(engine.StackTouched{})
	gob.Register(engine.SoftDropped{})
	gob.Register(engine.PieceFalling{})
	gob.Register(engine.EndOfLineClearDelay{})
	gob.Register(engine.PiecePlaced{})
	gob.Register(engine.GarbageSent{})
	gob.Register(engine.GarbageAdded{})
	gob.Register(engine.GameOver{})
}

const tickKeyPrefix = "tick:"

func tickKey(tick uint64) []byte {
	key := make([]byte, len(tickKeyPrefix)+8)
	copy(key, tickKeyPrefix)
	binary.BigEndian.PutUint64(key[len(tickKeyPrefix):], tick)
	return key
}

// Tick is one frame's recorded input and the events it produced.
type Tick struct {
	Input  engine.Controller
	Events []engine.Event
}

// Log is a BadgerDB-backed append-only log of Ticks, keyed by tick number
// so a reader can seek directly to any frame.
type Log struct {
	db *badger.DB
}

// Open opens (creating if necessary) a replay log rooted at dir.
func Open(dir string) (*Log, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("replay: open %s: %w", dir, err)
	}
	return &Log{db: db}, nil
}

// Close closes the underlying database.
func (l *Log) Close() error {
	if l.db == nil {
		return nil
	}
	return l.db.Close()
}

// Record appends tick's input and events at the given tick number.
func (l *Log) Record(tick uint64, input engine.Controller, events []engine.Event) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(Tick{Input: input, Events: events}); err != nil {
		return fmt.Errorf("replay: encode tick %d: %w", tick, err)
	}
	return l.db.Update(func(txn *badger.Txn) error {
		return txn.Set(tickKey(tick), buf.Bytes())
	})
}

// Read returns the recorded input and events for tick.
func (l *Log) Read(tick uint64) (Tick, error) {
	var rec Tick
	err := l.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(tickKey(tick))
		if err != nil {
			return fmt.Errorf("replay: tick %d: %w", tick, err)
		}
		return item.Value(func(val []byte) error {
			return gob.NewDecoder(bytes.NewReader(val)).Decode(&rec)
		})
	})
	return rec, err
}

// ForEach walks every recorded tick in order, stopping at the first error
// fn returns.
func (l *Log) ForEach(fn func(tick uint64, rec Tick) error) error {
	return l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(tickKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(tickKeyPrefix)); it.ValidForPrefix([]byte(tickKeyPrefix)); it.Next() {
			item := it.Item()
			tick := binary.BigEndian.Uint64(item.Key()[len(tickKeyPrefix):])
			var rec Tick
			if err := item.Value(func(val []byte) error {
				return gob.NewDecoder(bytes.NewReader(val)).Decode(&rec)
			}); err != nil {
				return fmt.Errorf("replay: decode tick %d: %w", tick, err)
			}
			if err := fn(tick, rec); err != nil {
				return err
			}
		}
		return nil
	})
}
