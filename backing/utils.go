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
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ipfs/go-datastore"
)

const (
	metaKey   = "m"
	valueKey  = "v"
	separator = "/"
)

// valuePrefix is the query prefix covering all stored values.
var valuePrefix = separator + valueKey

// getMetaKey gets the datastore key for the commit metadata.
func getMetaKey() datastore.Key {
	return datastore.NewKey(metaKey)
}

// getValueKey gets the datastore key for value with given key.
// Hex keeps the datastore key order equal to the byte order of the hash.
func getValueKey(key common.Hash) datastore.Key {
	return datastore.NewKey(valueKey + separator + hex.EncodeToString(key.Bytes()))
}

// splitValueKey splits the datastore key to get the key.
func splitValueKey(dsKey string) (common.Hash, error) {
	temp := strings.Split(strings.TrimPrefix(dsKey, separator), separator)
	if len(temp) != 2 || temp[0] != valueKey {
		return common.Hash{}, fmt.Errorf("invalid value key %v", dsKey)
	}
	data, err := hex.DecodeString(temp[1])
	if err != nil {
		return common.Hash{}, err
	}
	if len(data) != common.HashLength {
		return common.Hash{}, fmt.Errorf("invalid key length %v in %v", len(data), dsKey)
	}
	return common.BytesToHash(data), nil
}

// encodeCommitMeta encodes the commit metadata.
func encodeCommitMeta(v commitMeta) []byte {
	size := sizeCommitMeta(v)
	bs := make([]byte, size)
	marshalCommitMeta(v, bs)
	return bs
}

// decodeCommitMeta decodes the commit metadata.
func decodeCommitMeta(bs []byte) (commitMeta, error) {
	v, _, err := unmarshalCommitMeta(bs)
	return v, err
}
