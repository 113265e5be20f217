package worldstate

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
	"github.com/holiman/uint256"
	logging "github.com/ipfs/go-log"
)

// Logger
var log = logging.Logger("worldstate")

// MutableWorldState is the account balance and contract storage view of a journal.
type MutableWorldState interface {
	// GetBalance retrieves the balance from the given address or 0 if not found.
	GetBalance(addr common.Address) (*uint256.Int, error)

	// SetBalance sets the balance for the given address.
	SetBalance(addr common.Address, amt *uint256.Int)

	// AddBalance adds amount to the account associated with addr.
	AddBalance(addr common.Address, amt *uint256.Int) error

	// SubBalance subtracts amount from the account associated with addr.
	SubBalance(addr common.Address, amt *uint256.Int) error

	// GetState retrieves a value from the given account's storage.
	GetState(addr common.Address, slot common.Hash) (common.Hash, error)

	// SetState sets the value associated with the specific slot.
	SetState(addr common.Address, slot common.Hash, val common.Hash)

	// Snapshot returns an identifier for the current revision of the state.
	Snapshot() int

	// RevertToSnapshot reverts all state changes made since the given revision.
	RevertToSnapshot(revision int)

	// Commit flushes all state changes to the backing store.
	Commit() error
}
