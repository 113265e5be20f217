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
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/wcgcyx/journaldb/journal"
)

// mutableStateImpl implements MutableWorldState.
type mutableStateImpl struct {
	j journal.Journal
}

// NewMutableWorldState creates a new mutable world state on top of given journal.
func NewMutableWorldState(j journal.Journal) (MutableWorldState, error) {
	if j == nil {
		return nil, fmt.Errorf("nil journal provided")
	}
	return &mutableStateImpl{j: j}, nil
}

// GetBalance retrieves the balance from the given address or 0 if not found.
func (s *mutableStateImpl) GetBalance(addr common.Address) (*uint256.Int, error) {
	enc, ok, err := s.j.Read(balanceKey(addr))
	if err != nil {
		return nil, err
	}
	if !ok {
		return uint256.NewInt(0), nil
	}
	balance, err := decodeBalance(enc)
	if err != nil {
		return nil, fmt.Errorf("fail to decode balance of %v: %w", addr, err)
	}
	return balance, nil
}

// SetBalance sets the balance for the given address.
// A zero balance is removed from the state.
func (s *mutableStateImpl) SetBalance(addr common.Address, amt *uint256.Int) {
	if amt.IsZero() {
		s.j.Delete(balanceKey(addr))
		return
	}
	enc, err := encodeBalance(amt)
	if err != nil {
		log.Panicf("fail to encode balance %v: %v", amt, err)
	}
	s.j.Write(balanceKey(addr), enc)
}

// AddBalance adds amount to the account associated with addr.
func (s *mutableStateImpl) AddBalance(addr common.Address, amt *uint256.Int) error {
	original, err := s.GetBalance(addr)
	if err != nil {
		return err
	}
	new, overflow := uint256.NewInt(0).AddOverflow(original, amt)
	if overflow {
		return fmt.Errorf("balance overflow for %v", addr)
	}
	s.SetBalance(addr, new)
	return nil
}

// SubBalance subtracts amount from the account associated with addr.
// The balance does not go below zero.
func (s *mutableStateImpl) SubBalance(addr common.Address, amt *uint256.Int) error {
	original, err := s.GetBalance(addr)
	if err != nil {
		return err
	}
	new, underflow := uint256.NewInt(0).SubOverflow(original, amt)
	if underflow {
		log.Warnf("Balance of %v is %v, smaller than %v", addr, original, amt)
		new.Clear()
	}
	s.SetBalance(addr, new)
	return nil
}

// GetState retrieves a value from the given account's storage.
func (s *mutableStateImpl) GetState(addr common.Address, slot common.Hash) (common.Hash, error) {
	enc, ok, err := s.j.Read(storageKey(addr, slot))
	if err != nil {
		return common.Hash{}, err
	}
	if !ok {
		return common.Hash{}, nil
	}
	val, err := decodeStorage(enc)
	if err != nil {
		return common.Hash{}, fmt.Errorf("fail to decode slot %v of %v: %w", slot, addr, err)
	}
	return val, nil
}

// SetState sets the value associated with the specific slot.
// A zero value is removed from the state.
func (s *mutableStateImpl) SetState(addr common.Address, slot common.Hash, val common.Hash) {
	if val == (common.Hash{}) {
		s.j.Delete(storageKey(addr, slot))
		return
	}
	enc, err := encodeStorage(val)
	if err != nil {
		log.Panicf("fail to encode storage value %v: %v", val, err)
	}
	s.j.Write(storageKey(addr, slot), enc)
}

// Snapshot returns an identifier for the current revision of the state.
func (s *mutableStateImpl) Snapshot() int {
	return int(s.j.TakeSnapshot())
}

// RevertToSnapshot reverts all state changes made since the given revision.
func (s *mutableStateImpl) RevertToSnapshot(revision int) {
	s.j.Restore(journal.Snapshot(revision))
}

// Commit flushes all state changes to the backing store.
func (s *mutableStateImpl) Commit() error {
	return s.j.Commit()
}
