package journal

/*
 * Licensed under LGPL-3.0.
 *
 * You can get a copy of the LGPL-3.0 License at
 *
 * https://www.gnu.org/licenses/lgpl-3.0.en.html
 *
 * @wcgcyx - https://github.com/wcgcyx
 */

import (
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/wcgcyx/journaldb/backing"
	itypes "github.com/wcgcyx/journaldb/types"
)

// journalImpl implements Journal.
type journalImpl struct {
	opts  Opts
	store backing.BackingStore

	// Change log and the per key index into it
	changes *changeLog
	index   keyIndex

	// Keys resolved by the ongoing commit
	committedThisRound map[common.Hash]bool

	// Cache reads kept by the ongoing restore, newest first
	keptInCache []itypes.Change

	metrics *journalMetrics
}

// NewJournal creates a new Journal in front of given backing store.
func NewJournal(store backing.BackingStore, opts Opts) (Journal, error) {
	if store == nil {
		return nil, fmt.Errorf("nil backing store provided")
	}
	metrics, err := newJournalMetrics(opts.Registerer)
	if err != nil {
		return nil, err
	}
	changes := newChangeLog(opts.InitialCapacity)
	opts.InitialCapacity = changes.initialCapacity
	return &journalImpl{
		opts:               opts,
		store:              store,
		changes:            changes,
		index:              make(keyIndex),
		committedThisRound: make(map[common.Hash]bool),
		keptInCache:        make([]itypes.Change, 0),
		metrics:            metrics,
	}, nil
}

// Read reads the most recent value of given key.
// The second return value indicates whether the key is present.
func (j *journalImpl) Read(key common.Hash) (val []byte, ok bool, err error) {
	j.metrics.reads.Inc()
	if pos, found := j.index.peek(key); found {
		j.metrics.cacheHits.Inc()
		change := j.changes.at(pos)
		if !change.Exists() {
			return nil, false, nil
		}
		return itypes.CopyValue(change.Value), true, nil
	}

	j.metrics.backingLookups.Inc()
	val, ok, err = j.store.Get(key)
	if err != nil {
		return nil, false, fmt.Errorf("fail to read %v from backing store: %w", key, err)
	}
	change := itypes.Change{Key: key, Kind: itypes.CacheRead}
	if ok {
		change.Value = itypes.CopyValue(val)
	}
	j.push(change)
	return val, ok, nil
}

// Write writes the value for given key.
func (j *journalImpl) Write(key common.Hash, value []byte) {
	j.metrics.writes.Inc()
	j.push(itypes.Change{Key: key, Value: itypes.CopyValue(value), Kind: itypes.Write})
}

// Delete deletes given key.
func (j *journalImpl) Delete(key common.Hash) {
	j.metrics.deletes.Inc()
	j.push(itypes.Change{Key: key, Kind: itypes.Delete})
}

// push appends a change to the log and records it in the index.
func (j *journalImpl) push(change itypes.Change) {
	pos := j.changes.append(change)
	j.index.push(change.Key, pos)
}

// TakeSnapshot returns a snapshot of the current position.
func (j *journalImpl) TakeSnapshot() Snapshot {
	return Snapshot(j.changes.position())
}

// Restore reverts all changes made after given snapshot.
// It panics if the snapshot is ahead of the current position.
func (j *journalImpl) Restore(snapshot Snapshot) {
	current := j.changes.position()
	if snapshot < EmptySnapshot || int(snapshot) > current {
		log.Panicf("invalid snapshot %v, current position %v", snapshot, current)
	}
	log.Debugf("Restoring snapshot %v from position %v", snapshot, current)
	j.metrics.restores.Inc()

	for pos := current; pos > int(snapshot); pos-- {
		change := j.changes.at(pos)
		// A cache read that is the only pending change of its key carries no mutation,
		// it can survive the restore as a cache of the backing store.
		if j.opts.PreserveCacheReads && change.Kind == itypes.CacheRead && j.index.count(change.Key) == 1 {
			j.index.pop(change.Key, pos)
			j.keptInCache = append(j.keptInCache, change)
			continue
		}
		j.index.pop(change.Key, pos)
	}
	j.changes.truncate(int(snapshot))

	// Re-append kept reads oldest first.
	for i := len(j.keptInCache) - 1; i >= 0; i-- {
		j.push(j.keptInCache[i])
	}
	if len(j.keptInCache) > 0 {
		log.Debugf("Kept %v cache reads after restoring snapshot %v", len(j.keptInCache), snapshot)
		j.metrics.preservedReads.Add(float64(len(j.keptInCache)))
	}
	clear(j.keptInCache)
	j.keptInCache = j.keptInCache[:0]
}

// Commit applies the latest pending change of every key to the backing store
// and clears the journal.
func (j *journalImpl) Commit() error {
	current := j.changes.position()
	if current == int(EmptySnapshot) {
		return nil
	}
	log.Debugf("Committing changes up to position %v", current)

	txn, err := j.store.NewTransaction()
	if err != nil {
		return fmt.Errorf("fail to start transaction: %w", err)
	}
	defer txn.Discard()
	defer clear(j.committedThisRound)

	for pos := current; pos >= 0; pos-- {
		change := j.changes.at(pos)
		if j.committedThisRound[change.Key] {
			// Superseded by a newer change.
			continue
		}
		j.committedThisRound[change.Key] = true
		top, ok := j.index.peek(change.Key)
		if !ok || top != pos {
			log.Panicf("inconsistent index for %v: top position %v, expect %v", change.Key, top, pos)
		}

		switch change.Kind {
		case itypes.CacheRead:
		case itypes.Write:
			err = txn.Set(change.Key, change.Value)
			if err != nil {
				return fmt.Errorf("fail to set %v: %w", change.Key, err)
			}
		case itypes.Delete:
			log.Debugf("Delete %v", change.Key)
			err = txn.Remove(change.Key)
			if err != nil {
				return fmt.Errorf("fail to remove %v: %w", change.Key, err)
			}
		default:
			log.Panicf("unknown change kind %v at position %v", change.Kind, pos)
		}
	}

	err = txn.Commit()
	if err != nil {
		return fmt.Errorf("fail to commit transaction: %w", err)
	}
	j.metrics.commits.Inc()
	j.metrics.committedKeys.Add(float64(len(j.committedThisRound)))
	log.Debugf("Committed %v keys from %v changes", len(j.committedThisRound), current+1)

	j.changes.reset()
	j.index.reset()
	return nil
}

// Print prints every committed entry, one line per entry.
func (j *journalImpl) Print(output func(string), decode Decoder) error {
	if decode == nil {
		decode = func(value []byte) (string, error) {
			return hex.EncodeToString(value), nil
		}
	}
	return j.store.Iterate(func(key common.Hash, value []byte) bool {
		display, err := decode(value)
		if err != nil {
			display = fmt.Sprintf("<undecodable 0x%x: %v>", value, err)
		}
		output(fmt.Sprintf("%v : %v", itypes.ShortKey(key), display))
		return true
	})
}

// Position gets the current position.
func (j *journalImpl) Position() Snapshot {
	return Snapshot(j.changes.position())
}

// Pending gets the number of keys with pending changes.
func (j *journalImpl) Pending() int {
	return len(j.index)
}
