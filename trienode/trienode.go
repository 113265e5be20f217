package trienode

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
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
)

const (
	branchSize = 17
	shortSize  = 2
)

// Describe decodes an RLP encoded Merkle Patricia trie node into a short display form.
// Values that are not an RLP list are shown as a raw value.
func Describe(enc []byte) (string, error) {
	kind, content, rest, err := rlp.Split(enc)
	if err != nil {
		return "", err
	}
	if len(rest) > 0 {
		return "", fmt.Errorf("%v trailing bytes after node", len(rest))
	}
	if kind != rlp.List {
		return fmt.Sprintf("value(0x%x)", content), nil
	}
	count, err := rlp.CountValues(content)
	if err != nil {
		return "", err
	}
	switch count {
	case branchSize:
		return describeBranch(content)
	case shortSize:
		return describeShort(content)
	default:
		return "", fmt.Errorf("invalid number of list elements: %v", count)
	}
}

// describeBranch describes a branch node of 16 children and a value.
func describeBranch(elems []byte) (string, error) {
	children := 0
	for i := 0; i < branchSize-1; i++ {
		kind, content, rest, err := rlp.Split(elems)
		if err != nil {
			return "", fmt.Errorf("invalid child %v: %w", i, err)
		}
		if kind == rlp.List || len(content) > 0 {
			children++
		}
		elems = rest
	}
	val, _, err := rlp.SplitString(elems)
	if err != nil {
		return "", fmt.Errorf("invalid value: %w", err)
	}
	if len(val) == 0 {
		return fmt.Sprintf("branch(children=%v)", children), nil
	}
	return fmt.Sprintf("branch(children=%v, value=0x%x)", children, val), nil
}

// describeShort describes a leaf or an extension node.
func describeShort(elems []byte) (string, error) {
	compact, rest, err := rlp.SplitString(elems)
	if err != nil {
		return "", fmt.Errorf("invalid key: %w", err)
	}
	if len(compact) == 0 {
		return "", fmt.Errorf("empty compact key")
	}
	path, leaf, err := compactToPath(compact)
	if err != nil {
		return "", err
	}
	kind, content, _, err := rlp.Split(rest)
	if err != nil {
		return "", fmt.Errorf("invalid value: %w", err)
	}
	if leaf {
		return fmt.Sprintf("leaf(path=%v, value=0x%x)", path, content), nil
	}
	if kind == rlp.List {
		return fmt.Sprintf("extension(path=%v, child=embedded)", path), nil
	}
	return fmt.Sprintf("extension(path=%v, child=0x%x)", path, content), nil
}

// compactToPath decodes a hex-prefix encoded key into its nibble path.
// The flag nibble is 0/1 for an even/odd extension and 2/3 for an even/odd leaf.
func compactToPath(compact []byte) (string, bool, error) {
	flag := compact[0] >> 4
	if flag > 3 {
		return "", false, fmt.Errorf("invalid compact key flag %v", flag)
	}
	nibbles := hex.EncodeToString(compact)
	if flag&1 == 1 {
		nibbles = nibbles[1:]
	} else {
		nibbles = nibbles[2:]
	}
	return nibbles, flag&2 == 2, nil
}
