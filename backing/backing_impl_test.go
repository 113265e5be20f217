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
	"context"
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ipfs/go-datastore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testDS = "./test-ds"
)

var (
	testKey1 = common.HexToHash("0x11")
	testKey2 = common.HexToHash("0x22")
	testKey3 = common.HexToHash("0x33")
)

func TestMain(m *testing.M) {
	os.RemoveAll(testDS)
	os.Mkdir(testDS, os.ModePerm)
	code := m.Run()
	os.RemoveAll(testDS)
	os.Exit(code)
}

func testOpts() Opts {
	return Opts{
		Path:         testDS,
		CacheSize:    16,
		GCPeriod:     time.Minute,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	}
}

func TestNewDatastoreBacking(t *testing.T) {
	defer os.RemoveAll(testDS)

	ctx := context.Background()

	// Empty path should fail
	_, err := NewDatastoreBacking(ctx, Opts{
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	assert.NotNil(t, err)

	store, err := NewDatastoreBacking(ctx, testOpts())
	require.Nil(t, err)
	require.NotNil(t, store)

	seq, err := store.GetCommitSeq()
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), seq)

	txn, err := store.NewTransaction()
	require.Nil(t, err)
	assert.Nil(t, txn.Set(testKey1, []byte{1}))
	assert.Nil(t, txn.Commit())
	store.Shutdown()

	// Open existing should keep data
	store, err = NewDatastoreBacking(ctx, testOpts())
	require.Nil(t, err)
	defer store.Shutdown()

	seq, err = store.GetCommitSeq()
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), seq)

	val, ok, err := store.Get(testKey1)
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte{1}, val)
}

func TestMemoryBackingGetSetRemove(t *testing.T) {
	for _, cacheSize := range []int{0, 16} {
		opts := testOpts()
		opts.CacheSize = cacheSize
		store, err := NewMemoryBacking(context.Background(), opts)
		require.Nil(t, err)

		// Absent key is not an error
		val, ok, err := store.Get(testKey1)
		assert.Nil(t, err)
		assert.False(t, ok)
		assert.Nil(t, val)
		exists, err := store.Contains(testKey1)
		assert.Nil(t, err)
		assert.False(t, exists)

		// Set after a cached miss must be visible
		assert.Nil(t, store.Set(testKey1, []byte{1, 2}))
		val, ok, err = store.Get(testKey1)
		assert.Nil(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte{1, 2}, val)
		exists, err = store.Contains(testKey1)
		assert.Nil(t, err)
		assert.True(t, exists)

		// Returned values must not alias stored ones
		val[0] = 9
		val, _, err = store.Get(testKey1)
		assert.Nil(t, err)
		assert.Equal(t, []byte{1, 2}, val)

		// Empty value is present
		assert.Nil(t, store.Set(testKey2, []byte{}))
		val, ok, err = store.Get(testKey2)
		assert.Nil(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte{}, val)

		assert.Nil(t, store.Remove(testKey1))
		_, ok, err = store.Get(testKey1)
		assert.Nil(t, err)
		assert.False(t, ok)

		// Removing an absent key is fine
		assert.Nil(t, store.Remove(testKey3))

		store.Shutdown()
	}
}

func TestTransactionCommit(t *testing.T) {
	store, err := NewMemoryBacking(context.Background(), testOpts())
	require.Nil(t, err)
	defer store.Shutdown()

	assert.Nil(t, store.Set(testKey2, []byte{2}))

	txn, err := store.NewTransaction()
	require.Nil(t, err)
	assert.Nil(t, txn.Set(testKey1, []byte{1}))
	assert.Nil(t, txn.Remove(testKey2))
	// Absent key, skipped
	assert.Nil(t, txn.Remove(testKey3))

	// Nothing visible before commit
	_, ok, err := store.Get(testKey1)
	assert.Nil(t, err)
	assert.False(t, ok)
	_, ok, err = store.Get(testKey2)
	assert.Nil(t, err)
	assert.True(t, ok)

	assert.Nil(t, txn.Commit())
	txn.Discard()

	val, ok, err := store.Get(testKey1)
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte{1}, val)
	_, ok, err = store.Get(testKey2)
	assert.Nil(t, err)
	assert.False(t, ok)

	seq, err := store.GetCommitSeq()
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), seq)

	meta, err := store.(*backingStoreImpl).getCommitMeta()
	assert.Nil(t, err)
	assert.Equal(t, commitMeta{seq: 1, applied: 1, removed: 1}, meta)

	// Finished transaction cannot be reused
	assert.NotNil(t, txn.Set(testKey3, []byte{3}))
	assert.NotNil(t, txn.Remove(testKey1))
	assert.NotNil(t, txn.Commit())
}

func TestTransactionSetThenRemove(t *testing.T) {
	store, err := NewMemoryBacking(context.Background(), testOpts())
	require.Nil(t, err)
	defer store.Shutdown()

	txn, err := store.NewTransaction()
	require.Nil(t, err)
	assert.Nil(t, txn.Set(testKey1, []byte{1}))
	// Present in this transaction although not committed yet
	assert.Nil(t, txn.Remove(testKey1))
	assert.Nil(t, txn.Commit())

	_, ok, err := store.Get(testKey1)
	assert.Nil(t, err)
	assert.False(t, ok)

	meta, err := store.(*backingStoreImpl).getCommitMeta()
	assert.Nil(t, err)
	assert.Equal(t, commitMeta{seq: 1, applied: 1, removed: 1}, meta)
}

func TestTransactionDiscard(t *testing.T) {
	store, err := NewMemoryBacking(context.Background(), testOpts())
	require.Nil(t, err)
	defer store.Shutdown()

	txn, err := store.NewTransaction()
	require.Nil(t, err)
	assert.Nil(t, txn.Set(testKey1, []byte{1}))
	txn.Discard()
	assert.NotNil(t, txn.Commit())

	_, ok, err := store.Get(testKey1)
	assert.Nil(t, err)
	assert.False(t, ok)

	seq, err := store.GetCommitSeq()
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), seq)
}

func TestIterate(t *testing.T) {
	store, err := NewMemoryBacking(context.Background(), testOpts())
	require.Nil(t, err)
	defer store.Shutdown()

	assert.Nil(t, store.Set(testKey3, []byte{3}))
	assert.Nil(t, store.Set(testKey1, []byte{1}))
	assert.Nil(t, store.Set(testKey2, []byte{2}))

	// Metadata must not show up as an entry
	txn, err := store.NewTransaction()
	require.Nil(t, err)
	assert.Nil(t, txn.Commit())

	keys := make([]common.Hash, 0)
	vals := make([][]byte, 0)
	err = store.Iterate(func(key common.Hash, value []byte) bool {
		keys = append(keys, key)
		vals = append(vals, value)
		return true
	})
	assert.Nil(t, err)
	assert.Equal(t, []common.Hash{testKey1, testKey2, testKey3}, keys)
	assert.Equal(t, [][]byte{{1}, {2}, {3}}, vals)

	// Early stop
	count := 0
	err = store.Iterate(func(key common.Hash, value []byte) bool {
		count++
		return false
	})
	assert.Nil(t, err)
	assert.Equal(t, 1, count)
}

func TestSplitValueKey(t *testing.T) {
	key, err := splitValueKey(getValueKey(testKey1).String())
	assert.Nil(t, err)
	assert.Equal(t, testKey1, key)

	_, err = splitValueKey(getMetaKey().String())
	assert.NotNil(t, err)
	_, err = splitValueKey("/v/zz")
	assert.NotNil(t, err)
	_, err = splitValueKey("/v/1234")
	assert.NotNil(t, err)
}

func TestCommitMetaCodec(t *testing.T) {
	original := commitMeta{seq: 300, applied: 1 << 40, removed: 7}
	decoded, err := decodeCommitMeta(encodeCommitMeta(original))
	assert.Nil(t, err)
	assert.Equal(t, original, decoded)

	_, err = decodeCommitMeta([]byte{})
	assert.NotNil(t, err)
}

func TestNewDatastoreBackingCorruptMeta(t *testing.T) {
	defer os.RemoveAll(testDS)

	ctx := context.Background()
	store, err := NewDatastoreBacking(ctx, testOpts())
	require.Nil(t, err)
	impl := store.(*backingStoreImpl)
	assert.Nil(t, impl.ds.Put(ctx, getMetaKey(), []byte{}))
	store.Shutdown()

	_, err = NewDatastoreBacking(ctx, testOpts())
	require.NotNil(t, err)
	// The datastore is released on failure, so reopening fails the same way
	_, err2 := NewDatastoreBacking(ctx, testOpts())
	require.NotNil(t, err2)
	assert.Equal(t, err.Error(), err2.Error())
}

func TestIterateOutlastsReadTimeout(t *testing.T) {
	defer os.RemoveAll(testDS)

	opts := testOpts()
	opts.ReadTimeout = 50 * time.Millisecond
	store, err := NewDatastoreBacking(context.Background(), opts)
	require.Nil(t, err)
	defer store.Shutdown()

	for _, key := range []common.Hash{testKey1, testKey2, testKey3} {
		assert.Nil(t, store.Set(key, []byte{1}))
	}
	count := 0
	err = store.Iterate(func(key common.Hash, value []byte) bool {
		count++
		time.Sleep(40 * time.Millisecond)
		return true
	})
	assert.Nil(t, err)
	assert.Equal(t, 3, count)
}

type testBatch struct {
	datastore.Batch
	cancelled int
}

func (b *testBatch) Cancel() error {
	b.cancelled++
	return nil
}

func TestTransactionDiscardCancelsBatch(t *testing.T) {
	store, err := NewMemoryBacking(context.Background(), testOpts())
	require.Nil(t, err)
	defer store.Shutdown()
	impl := store.(*backingStoreImpl)

	batch, err := impl.ds.Batch(context.Background())
	require.Nil(t, err)
	tb := &testBatch{Batch: batch}
	txn := &transactionImpl{s: impl, batch: tb, touched: make(map[common.Hash]cachedValue)}
	assert.Nil(t, txn.Set(testKey1, []byte{1}))
	txn.Discard()
	assert.Equal(t, 1, tb.cancelled)
	// Discard twice releases once
	txn.Discard()
	assert.Equal(t, 1, tb.cancelled)

	// Committed batch is not cancelled
	tb = &testBatch{Batch: batch}
	txn = &transactionImpl{s: impl, batch: tb, touched: make(map[common.Hash]cachedValue)}
	assert.Nil(t, txn.Set(testKey1, []byte{1}))
	assert.Nil(t, txn.Commit())
	txn.Discard()
	assert.Equal(t, 0, tb.cancelled)
}
