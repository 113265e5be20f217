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
	"github.com/ethereum/go-ethereum/common"
	logging "github.com/ipfs/go-log"
)

// Logger
var log = logging.Logger("journal")

// Snapshot identifies a rollback point, it is the position of the last change when taken.
type Snapshot int

// EmptySnapshot is the position of a journal without pending changes.
const EmptySnapshot Snapshot = -1

// Decoder turns a committed value into its display form.
type Decoder func(value []byte) (string, error)

// Journal is a transactional key-value journal in front of a backing store.
// It is not safe for concurrent use.
type Journal interface {
	// Read reads the most recent value of given key.
	// The second return value indicates whether the key is present.
	Read(key common.Hash) ([]byte, bool, error)

	// Write writes the value for given key.
	Write(key common.Hash, value []byte)

	// Delete deletes given key.
	Delete(key common.Hash)

	// TakeSnapshot returns a snapshot of the current position.
	TakeSnapshot() Snapshot

	// Restore reverts all changes made after given snapshot.
	// It panics if the snapshot is ahead of the current position.
	Restore(snapshot Snapshot)

	// Commit applies the latest pending change of every key to the backing store
	// and clears the journal.
	Commit() error

	// Print prints every committed entry, one line per entry.
	Print(output func(string), decode Decoder) error

	// Position gets the current position.
	Position() Snapshot

	// Pending gets the number of keys with pending changes.
	Pending() int
}
