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
	"github.com/mus-format/mus-go/varint"
)

// commitMeta is used to track the transactions committed to the store.
type commitMeta struct {
	// Number of committed transactions
	seq uint64

	// Total number of keys set by committed transactions
	applied uint64

	// Total number of keys removed by committed transactions
	removed uint64
}

// marshalCommitMeta implements the mus.Marshaller interface.
func marshalCommitMeta(v commitMeta, bs []byte) (n int) {
	n = varint.MarshalUint64(v.seq, bs)
	n += varint.MarshalUint64(v.applied, bs[n:])
	n += varint.MarshalUint64(v.removed, bs[n:])
	return
}

// unmarshalCommitMeta implements the mus.Unmarshaller interface.
func unmarshalCommitMeta(bs []byte) (v commitMeta, n int, err error) {
	v.seq, n, err = varint.UnmarshalUint64(bs)
	if err != nil {
		return
	}
	var n1 int
	v.applied, n1, err = varint.UnmarshalUint64(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.removed, n1, err = varint.UnmarshalUint64(bs[n:])
	n += n1
	return
}

// sizeCommitMeta implements the mus.Sizer interface.
func sizeCommitMeta(v commitMeta) (size int) {
	size = varint.SizeUint64(v.seq)
	size += varint.SizeUint64(v.applied)
	size += varint.SizeUint64(v.removed)
	return
}
