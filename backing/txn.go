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
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ipfs/go-datastore"
	itypes "github.com/wcgcyx/journaldb/types"
)

// transactionImpl implements Transaction.
// Writes are buffered in a datastore batch and become visible on Commit.
type transactionImpl struct {
	s     *backingStoreImpl
	batch datastore.Batch

	// Keys written in this transaction
	touched map[common.Hash]cachedValue
	applied uint64
	removed uint64

	// Finished flag
	finished bool
}

// NewTransaction creates a new transaction to write.
func (s *backingStoreImpl) NewTransaction() (Transaction, error) {
	ctx, cancel := context.WithTimeout(s.ctx, s.opts.WriteTimeout)
	defer cancel()

	batch, err := s.ds.Batch(ctx)
	if err != nil {
		return nil, err
	}
	return &transactionImpl{
		s:       s,
		batch:   batch,
		touched: make(map[common.Hash]cachedValue),
	}, nil
}

// Set sets the value for given key.
func (t *transactionImpl) Set(key common.Hash, value []byte) error {
	if t.finished {
		return fmt.Errorf("transaction already finished")
	}
	ctx, cancel := context.WithTimeout(t.s.ctx, t.s.opts.WriteTimeout)
	defer cancel()

	value = itypes.CopyValue(value)
	err := t.batch.Put(ctx, getValueKey(key), value)
	if err != nil {
		return err
	}
	t.touched[key] = cachedValue{value: value, exists: true}
	t.applied++
	return nil
}

// Remove removes given key if present.
func (t *transactionImpl) Remove(key common.Hash) error {
	if t.finished {
		return fmt.Errorf("transaction already finished")
	}
	var exists bool
	if touched, ok := t.touched[key]; ok {
		exists = touched.exists
	} else {
		var err error
		exists, err = t.s.Contains(key)
		if err != nil {
			return err
		}
	}
	if !exists {
		log.Debugf("Skip removing absent key %v", key)
		return nil
	}

	ctx, cancel := context.WithTimeout(t.s.ctx, t.s.opts.WriteTimeout)
	defer cancel()

	err := t.batch.Delete(ctx, getValueKey(key))
	if err != nil {
		return err
	}
	t.touched[key] = cachedValue{exists: false}
	t.removed++
	return nil
}

// Commit commits all changes.
func (t *transactionImpl) Commit() error {
	if t.finished {
		return fmt.Errorf("transaction already finished")
	}
	meta, err := t.s.getCommitMeta()
	if err != nil {
		return err
	}
	meta.seq++
	meta.applied += t.applied
	meta.removed += t.removed

	ctx, cancel := context.WithTimeout(t.s.ctx, t.s.opts.WriteTimeout)
	defer cancel()

	err = t.batch.Put(ctx, getMetaKey(), encodeCommitMeta(meta))
	if err != nil {
		return err
	}
	err = t.batch.Commit(ctx)
	if err != nil {
		return err
	}
	t.finished = true
	for key, val := range t.touched {
		t.s.cacheAdd(key, val.value, val.exists)
	}
	log.Debugf("Committed transaction %v: %v set, %v removed", meta.seq, t.applied, t.removed)
	return nil
}

// batchCanceller is a batch holding resources until committed or cancelled.
type batchCanceller interface {
	Cancel() error
}

// Discard discards all changes.
// It does nothing after a successful commit.
func (t *transactionImpl) Discard() {
	if t.finished {
		return
	}
	t.finished = true
	t.touched = nil
	if c, ok := t.batch.(batchCanceller); ok {
		err := c.Cancel()
		if err != nil {
			log.Warnf("Fail to cancel batch: %v", err.Error())
		}
	}
}
