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
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// CopyValue creates a copy of given value.
// The copy is never nil, so an empty value stays distinguishable from an absent one.
func CopyValue(val []byte) []byte {
	res := make([]byte, len(val))
	copy(res, val)
	return res
}

// ParseKey parses a key given as text.
// A 0x-prefixed 32-byte hex string is taken as is, anything else is hashed with Keccak-256.
func ParseKey(str string) common.Hash {
	if strings.HasPrefix(str, "0x") && len(str) == 2+2*common.HashLength {
		if bs, err := hexutil.Decode(str); err == nil {
			return common.BytesToHash(bs)
		}
	}
	return crypto.Keccak256Hash([]byte(str))
}

// ParseValue parses a hex encoded value, with or without 0x prefix.
func ParseValue(str string) ([]byte, error) {
	val, err := hex.DecodeString(strings.TrimPrefix(str, "0x"))
	if err != nil {
		return nil, err
	}
	return CopyValue(val), nil
}

// ShortKey gets the first six hex digits of the key.
func ShortKey(key common.Hash) string {
	return key.Hex()[2:8]
}
