package backing

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
)

// BackingStore is the committed key-value store fronted by the journal.
type BackingStore interface {
	// Get gets the value for given key.
	// The second return value indicates whether the key is present.
	Get(key common.Hash) ([]byte, bool, error)

	// Contains checks if given key is present.
	Contains(key common.Hash) (bool, error)

	// Set sets the value for given key.
	Set(key common.Hash, value []byte) error

	// Remove removes given key if present.
	Remove(key common.Hash) error

	// NewTransaction creates a new transaction to write.
	NewTransaction() (Transaction, error)

	// Iterate calls fn for every stored entry in key order, until fn returns false.
	Iterate(fn func(key common.Hash, value []byte) bool) error

	// GetCommitSeq gets the number of transactions committed to the store.
	GetCommitSeq() (uint64, error)

	// Shutdown safely shuts the store down.
	Shutdown()
}

type Transaction interface {
	// Set sets the value for given key.
	Set(key common.Hash, value []byte) error

	// Remove removes given key if present.
	Remove(key common.Hash) error

	// Commit commits all changes.
	Commit() error

	// Discard discards all changes.
	Discard()
}
