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
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
)

func TestChangeKindString(t *testing.T) {
	assert.Equal(t, "write", Write.String())
	assert.Equal(t, "delete", Delete.String())
	assert.Equal(t, "cache-read", CacheRead.String())
	assert.Equal(t, "unknown(9)", ChangeKind(9).String())
}

func TestChangeExists(t *testing.T) {
	assert.True(t, Change{Kind: Write, Value: []byte{}}.Exists())
	assert.True(t, Change{Kind: CacheRead, Value: []byte{1}}.Exists())
	assert.False(t, Change{Kind: CacheRead}.Exists())
	assert.False(t, Change{Kind: Delete, Value: []byte{1}}.Exists())
}

func TestCopyValue(t *testing.T) {
	original := []byte{1, 2, 3}
	copied := CopyValue(original)
	assert.Equal(t, original, copied)
	copied[0] = 9
	assert.Equal(t, byte(1), original[0])

	empty := CopyValue(nil)
	assert.NotNil(t, empty)
	assert.Equal(t, 0, len(empty))
}

func TestParseKey(t *testing.T) {
	hexKey := "0xf48be2fbf5a8e6b02b456703b044fe0f3d3bdb45f6bd317c42278955edb27b55"
	assert.Equal(t, common.HexToHash(hexKey), ParseKey(hexKey))
	assert.Equal(t, crypto.Keccak256Hash([]byte("a")), ParseKey("a"))
	// Not a valid hex string of the right size, so it is hashed.
	assert.Equal(t, crypto.Keccak256Hash([]byte("0x12")), ParseKey("0x12"))
}

func TestParseValue(t *testing.T) {
	val, err := ParseValue("0x0102")
	assert.Nil(t, err)
	assert.Equal(t, []byte{1, 2}, val)
	val, err = ParseValue("0102")
	assert.Nil(t, err)
	assert.Equal(t, []byte{1, 2}, val)
	val, err = ParseValue("")
	assert.Nil(t, err)
	assert.Equal(t, []byte{}, val)
	_, err = ParseValue("0x012")
	assert.NotNil(t, err)
	_, err = ParseValue("zz")
	assert.NotNil(t, err)
}

func TestShortKey(t *testing.T) {
	key := common.HexToHash("0xf48be2fbf5a8e6b02b456703b044fe0f3d3bdb45f6bd317c42278955edb27b55")
	assert.Equal(t, "f48be2", ShortKey(key))
}
