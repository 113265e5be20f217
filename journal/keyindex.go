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
)

// keyIndex maps a key to the positions of its pending changes, newest on top.
// A key is present iff it has at least one pending change.
type keyIndex map[common.Hash][]int

// push pushes a position on the stack of given key.
func (idx keyIndex) push(key common.Hash, pos int) {
	idx[key] = append(idx[key], pos)
}

// peek gets the top position of given key.
func (idx keyIndex) peek(key common.Hash) (int, bool) {
	stack, ok := idx[key]
	if !ok {
		return 0, false
	}
	return stack[len(stack)-1], true
}

// count gets the number of pending changes of given key.
func (idx keyIndex) count(key common.Hash) int {
	return len(idx[key])
}

// pop pops the top position of given key, it panics if the top is not the expected position.
// The key is removed once its stack is empty.
func (idx keyIndex) pop(key common.Hash, expected int) {
	stack, ok := idx[key]
	if !ok {
		log.Panicf("no pending change for %v, expect position %v", key, expected)
	}
	top := stack[len(stack)-1]
	if top != expected {
		log.Panicf("inconsistent index for %v: top position %v, expect %v", key, top, expected)
	}
	if len(stack) == 1 {
		delete(idx, key)
		return
	}
	idx[key] = stack[:len(stack)-1]
}

// reset removes all keys.
func (idx keyIndex) reset() {
	clear(idx)
}
