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
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcgcyx/journaldb/backing"
	"github.com/wcgcyx/journaldb/journal"
	"github.com/wcgcyx/journaldb/trienode"
)

var (
	testAddr1 = common.HexToAddress("0x0000000000000000000000000000000000000001")
	testAddr2 = common.HexToAddress("0x0000000000000000000000000000000000000002")
	testSlot  = common.HexToHash("0x01")
)

func newTestState(t *testing.T) (MutableWorldState, backing.BackingStore) {
	store, err := backing.NewMemoryBacking(context.Background(), backing.Opts{})
	require.Nil(t, err)
	t.Cleanup(store.Shutdown)
	j, err := journal.NewJournal(store, journal.Opts{})
	require.Nil(t, err)
	s, err := NewMutableWorldState(j)
	require.Nil(t, err)
	return s, store
}

func TestNewMutableWorldState(t *testing.T) {
	_, err := NewMutableWorldState(nil)
	assert.NotNil(t, err)
}

func TestBalance(t *testing.T) {
	s, _ := newTestState(t)

	balance, err := s.GetBalance(testAddr1)
	assert.Nil(t, err)
	assert.True(t, balance.IsZero())

	assert.Nil(t, s.AddBalance(testAddr1, uint256.NewInt(100)))
	assert.Nil(t, s.SubBalance(testAddr1, uint256.NewInt(30)))
	balance, err = s.GetBalance(testAddr1)
	assert.Nil(t, err)
	assert.Equal(t, uint64(70), balance.Uint64())

	// Clamped at zero
	assert.Nil(t, s.SubBalance(testAddr1, uint256.NewInt(100)))
	balance, err = s.GetBalance(testAddr1)
	assert.Nil(t, err)
	assert.True(t, balance.IsZero())

	max := new(uint256.Int).SetAllOne()
	s.SetBalance(testAddr2, max)
	assert.NotNil(t, s.AddBalance(testAddr2, uint256.NewInt(1)))
	balance, err = s.GetBalance(testAddr2)
	assert.Nil(t, err)
	assert.Equal(t, max, balance)
}

func TestStorage(t *testing.T) {
	s, _ := newTestState(t)

	val, err := s.GetState(testAddr1, testSlot)
	assert.Nil(t, err)
	assert.Equal(t, common.Hash{}, val)

	s.SetState(testAddr1, testSlot, common.HexToHash("0x2a"))
	val, err = s.GetState(testAddr1, testSlot)
	assert.Nil(t, err)
	assert.Equal(t, common.HexToHash("0x2a"), val)

	// Slots are per account
	val, err = s.GetState(testAddr2, testSlot)
	assert.Nil(t, err)
	assert.Equal(t, common.Hash{}, val)

	s.SetState(testAddr1, testSlot, common.Hash{})
	val, err = s.GetState(testAddr1, testSlot)
	assert.Nil(t, err)
	assert.Equal(t, common.Hash{}, val)
}

func TestRevertAndCommit(t *testing.T) {
	s, store := newTestState(t)

	s.SetBalance(testAddr1, uint256.NewInt(10))
	s.SetState(testAddr1, testSlot, common.HexToHash("0x01"))
	rev := s.Snapshot()
	assert.Nil(t, s.AddBalance(testAddr1, uint256.NewInt(5)))
	s.SetState(testAddr1, testSlot, common.HexToHash("0x02"))
	s.RevertToSnapshot(rev)

	balance, err := s.GetBalance(testAddr1)
	assert.Nil(t, err)
	assert.Equal(t, uint64(10), balance.Uint64())
	val, err := s.GetState(testAddr1, testSlot)
	assert.Nil(t, err)
	assert.Equal(t, common.HexToHash("0x01"), val)

	assert.Nil(t, s.Commit())
	enc, ok, err := store.Get(storageKey(testAddr1, testSlot))
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte{0x01}, enc)
	display, err := trienode.Describe(enc)
	assert.Nil(t, err)
	assert.Equal(t, "value(0x01)", display)

	enc, ok, err = store.Get(balanceKey(testAddr1))
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte{0x0a}, enc)
}

func TestStorageCodec(t *testing.T) {
	val := common.HexToHash("0x1234")
	enc, err := encodeStorage(val)
	assert.Nil(t, err)
	assert.Equal(t, []byte{0x82, 0x12, 0x34}, enc)

	_, err = decodeStorage([]byte{0xc0})
	assert.NotNil(t, err)
	_, err = decodeBalance([]byte{0xc0})
	assert.NotNil(t, err)
}
