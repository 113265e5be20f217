package types

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
)

// ChangeKind is the kind of a journaled change.
type ChangeKind uint8

const (
	// Write sets the value of a key.
	Write ChangeKind = iota

	// Delete removes a key.
	Delete

	// CacheRead records a value read from the backing store.
	CacheRead
)

// String returns the name of the change kind.
func (k ChangeKind) String() string {
	switch k {
	case Write:
		return "write"
	case Delete:
		return "delete"
	case CacheRead:
		return "cache-read"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// Change is used to represent a single entry in the change log.
type Change struct {
	// The key this change touches
	Key common.Hash

	// The value of the key after this change.
	// Nil means the key is absent: always for Delete, and for a
	// CacheRead of a key missing from the backing store.
	Value []byte

	// The kind of this change
	Kind ChangeKind
}

// Exists checks if the key is present after this change.
func (c Change) Exists() bool {
	return c.Kind != Delete && c.Value != nil
}
