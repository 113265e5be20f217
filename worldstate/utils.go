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
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
)

// balanceKey gets the journal key of the balance of given address.
func balanceKey(addr common.Address) common.Hash {
	return crypto.Keccak256Hash(addr.Bytes())
}

// storageKey gets the journal key of given storage slot.
func storageKey(addr common.Address, slot common.Hash) common.Hash {
	return crypto.Keccak256Hash(addr.Bytes(), slot.Bytes())
}

// encodeBalance encodes a balance as RLP.
func encodeBalance(amt *uint256.Int) ([]byte, error) {
	return rlp.EncodeToBytes(amt)
}

// decodeBalance decodes an RLP encoded balance.
func decodeBalance(enc []byte) (*uint256.Int, error) {
	amt := new(uint256.Int)
	err := rlp.DecodeBytes(enc, amt)
	if err != nil {
		return nil, err
	}
	return amt, nil
}

// encodeStorage encodes a storage value the way a storage trie does,
// as an RLP string with leading zeros trimmed.
func encodeStorage(val common.Hash) ([]byte, error) {
	return rlp.EncodeToBytes(common.TrimLeftZeroes(val[:]))
}

// decodeStorage decodes an RLP encoded storage value.
func decodeStorage(enc []byte) (common.Hash, error) {
	content, _, err := rlp.SplitString(enc)
	if err != nil {
		return common.Hash{}, err
	}
	return common.BytesToHash(content), nil
}
