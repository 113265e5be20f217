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
	"fmt"
	"maps"
	"math/big"
	"math/rand"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

type checkpoint struct {
	snap  Snapshot
	state map[common.Hash][]byte
}

func TestRandomOperations(t *testing.T) {
	for _, preserve := range []bool{false, true} {
		t.Run(fmt.Sprintf("preserve=%v", preserve), func(t *testing.T) {
			rnd := rand.New(rand.NewSource(42))
			store := newTestBacking(t)
			keys := make([]common.Hash, 6)
			state := make(map[common.Hash][]byte)
			for i := range keys {
				keys[i] = common.BigToHash(big.NewInt(int64(i + 1)))
				if i%2 == 0 {
					val := []byte{byte(i)}
					assert.Nil(t, store.Set(keys[i], val))
					state[keys[i]] = val
				}
			}
			j := newTestJournal(t, store, preserve)

			checkpoints := make([]checkpoint, 0)
			for round := 0; round < 2000; round++ {
				key := keys[rnd.Intn(len(keys))]
				switch op := rnd.Intn(20); {
				case op < 6:
					val := []byte{byte(rnd.Intn(256)), byte(round)}
					j.Write(key, val)
					state[key] = val
				case op < 9:
					j.Delete(key)
					delete(state, key)
				case op < 14:
					assertRead(t, j, key, state[key])
				case op < 17:
					checkpoints = append(checkpoints, checkpoint{snap: j.TakeSnapshot(), state: maps.Clone(state)})
				case op < 19:
					if len(checkpoints) == 0 {
						continue
					}
					i := rnd.Intn(len(checkpoints))
					j.Restore(checkpoints[i].snap)
					state = maps.Clone(checkpoints[i].state)
					// Restored checkpoint stays valid, later ones do not.
					checkpoints = checkpoints[:i+1]
				default:
					assert.Nil(t, j.Commit())
					checkpoints = checkpoints[:0]
					for _, key := range keys {
						assertBacking(t, store, key, state[key])
					}
				}
				assert.LessOrEqual(t, j.Pending(), len(keys))
			}

			for _, key := range keys {
				assertRead(t, j, key, state[key])
			}
			assert.Nil(t, j.Commit())
			for _, key := range keys {
				assertBacking(t, store, key, state[key])
			}
		})
	}
}
