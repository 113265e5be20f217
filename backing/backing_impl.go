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
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v2/options"
	"github.com/ethereum/go-ethereum/common"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/query"
	dssync "github.com/ipfs/go-datastore/sync"
	badgerds "github.com/ipfs/go-ds-badger2"
	logging "github.com/ipfs/go-log"
	itypes "github.com/wcgcyx/journaldb/types"
)

// Logger
var log = logging.Logger("backing")

const (
	defaultIOTimeout = 5 * time.Second
)

// backingStoreImpl implements BackingStore on top of a batching datastore.
type backingStoreImpl struct {
	ctx  context.Context
	opts Opts
	ds   datastore.Batching

	// Set only when the datastore is badger, used for GC
	bds *badgerds.Datastore

	// Cache to speed up lookups
	cache *lru.Cache[common.Hash, cachedValue]

	// Process related
	routineCtx context.Context
	cancel     context.CancelFunc
	exitLoop   chan bool
}

// cachedValue is a cached lookup result, including misses.
type cachedValue struct {
	value  []byte
	exists bool
}

// NewDatastoreBacking creates a new BackingStore persisted in a badger datastore.
func NewDatastoreBacking(ctx context.Context, opts Opts) (BackingStore, error) {
	dsopts := badgerds.DefaultOptions
	dsopts.SyncWrites = false
	dsopts.Truncate = true
	// Use max table size of 256MiB
	dsopts.Options.MaxTableSize = 256 << 20
	// Use memory map for value log
	dsopts.Options.ValueLogLoadingMode = options.MemoryMap
	if opts.Path == "" {
		return nil, fmt.Errorf("empty path provided")
	}
	ds, err := badgerds.NewDatastore(opts.Path, &dsopts)
	if err != nil {
		return nil, err
	}
	res, err := newBackingStore(ctx, opts, ds, ds)
	if err != nil {
		ds.Close()
		return nil, err
	}
	seq, err := res.GetCommitSeq()
	if err != nil {
		res.cancel()
		ds.Close()
		return nil, err
	}
	if seq > 0 {
		log.Infof("Existing ds detected at %v with %v commits", opts.Path, seq)
	}
	go res.gcRoutine()
	return res, nil
}

// NewMemoryBacking creates a new BackingStore kept in memory.
func NewMemoryBacking(ctx context.Context, opts Opts) (BackingStore, error) {
	ds := dssync.MutexWrap(datastore.NewMapDatastore())
	res, err := newBackingStore(ctx, opts, ds, nil)
	if err != nil {
		ds.Close()
		return nil, err
	}
	go res.gcRoutine()
	return res, nil
}

// newBackingStore creates the store over given datastore.
func newBackingStore(ctx context.Context, opts Opts, ds datastore.Batching, bds *badgerds.Datastore) (*backingStoreImpl, error) {
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = defaultIOTimeout
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = defaultIOTimeout
	}
	var cache *lru.Cache[common.Hash, cachedValue]
	if opts.CacheSize > 0 {
		var err error
		cache, err = lru.New[common.Hash, cachedValue](opts.CacheSize)
		if err != nil {
			return nil, err
		}
	}
	routineCtx, cancel := context.WithCancel(context.Background())
	return &backingStoreImpl{
		ctx:        ctx,
		opts:       opts,
		ds:         ds,
		bds:        bds,
		cache:      cache,
		routineCtx: routineCtx,
		cancel:     cancel,
		exitLoop:   make(chan bool),
	}, nil
}

// Get gets the value for given key.
// The second return value indicates whether the key is present.
func (s *backingStoreImpl) Get(key common.Hash) ([]byte, bool, error) {
	if cached, ok := s.cacheGet(key); ok {
		if !cached.exists {
			return nil, false, nil
		}
		return itypes.CopyValue(cached.value), true, nil
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.opts.ReadTimeout)
	defer cancel()

	val, err := s.ds.Get(ctx, getValueKey(key))
	if err != nil {
		if !errors.Is(err, datastore.ErrNotFound) {
			return nil, false, err
		}
		log.Debugf("Get value empty for %v", key)
		s.cacheAdd(key, nil, false)
		return nil, false, nil
	}

	log.Debugf("Get value non-empty for %v", key)
	s.cacheAdd(key, val, true)
	return itypes.CopyValue(val), true, nil
}

// Contains checks if given key is present.
func (s *backingStoreImpl) Contains(key common.Hash) (bool, error) {
	if cached, ok := s.cacheGet(key); ok {
		return cached.exists, nil
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.opts.ReadTimeout)
	defer cancel()

	return s.ds.Has(ctx, getValueKey(key))
}

// Set sets the value for given key.
func (s *backingStoreImpl) Set(key common.Hash, value []byte) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.opts.WriteTimeout)
	defer cancel()

	value = itypes.CopyValue(value)
	err := s.ds.Put(ctx, getValueKey(key), value)
	if err != nil {
		return err
	}
	s.cacheAdd(key, value, true)
	return nil
}

// Remove removes given key if present.
func (s *backingStoreImpl) Remove(key common.Hash) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.opts.WriteTimeout)
	defer cancel()

	err := s.ds.Delete(ctx, getValueKey(key))
	if err != nil {
		return err
	}
	s.cacheAdd(key, nil, false)
	return nil
}

// Iterate calls fn for every stored entry in key order, until fn returns false.
// The scan is bounded by the store context only, as it can outlast the read timeout.
func (s *backingStoreImpl) Iterate(fn func(key common.Hash, value []byte) bool) error {
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	results, err := s.ds.Query(ctx, query.Query{
		Prefix: valuePrefix,
		Orders: []query.Order{query.OrderByKey{}},
	})
	if err != nil {
		return err
	}
	defer results.Close()

	for res := range results.Next() {
		if res.Error != nil {
			return res.Error
		}
		key, err := splitValueKey(res.Key)
		if err != nil {
			return err
		}
		if !fn(key, res.Value) {
			return nil
		}
	}
	return nil
}

// GetCommitSeq gets the number of transactions committed to the store.
func (s *backingStoreImpl) GetCommitSeq() (uint64, error) {
	meta, err := s.getCommitMeta()
	if err != nil {
		return 0, err
	}
	return meta.seq, nil
}

// getCommitMeta gets the commit metadata, zero if nothing has been committed.
func (s *backingStoreImpl) getCommitMeta() (commitMeta, error) {
	ctx, cancel := context.WithTimeout(s.ctx, s.opts.ReadTimeout)
	defer cancel()

	val, err := s.ds.Get(ctx, getMetaKey())
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return commitMeta{}, nil
		}
		return commitMeta{}, err
	}
	return decodeCommitMeta(val)
}

// Shutdown safely shuts the store down.
func (s *backingStoreImpl) Shutdown() {
	log.Infof("Close backing store...")
	s.cancel()
	<-s.exitLoop
	err := s.ds.Close()
	if err != nil {
		log.Errorf("Fail to close backing store: %v", err.Error())
		return
	}
	log.Infof("Backing store closed successfully.")
}

func (s *backingStoreImpl) cacheGet(key common.Hash) (cachedValue, bool) {
	if s.cache == nil {
		return cachedValue{}, false
	}
	return s.cache.Get(key)
}

func (s *backingStoreImpl) cacheAdd(key common.Hash, value []byte, exists bool) {
	if s.cache == nil {
		return
	}
	s.cache.Add(key, cachedValue{value: value, exists: exists})
}
