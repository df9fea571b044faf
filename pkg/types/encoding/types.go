// Copyright 2022 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package encoding

import (
	"encoding"
	"errors"
	"io"
)

var ErrNotEnoughData = errors.New("not enough data")
var ErrOverflow = errors.New("overflow")
var ErrFieldsOutOfOrder = errors.New("fields are out of order")
var ErrInvalidFieldNumber = errors.New("field number is invalid")

// MaxFieldNumber is the largest field number supported by the encoding.
const MaxFieldNumber = 32

// MaxBytesLength bounds the length prefix of a byte field so a corrupt prefix
// cannot trigger an unbounded allocation.
const MaxBytesLength = 1 << 24

type Error struct {
	E error
}

func (e Error) Error() string { return e.E.Error() }
func (e Error) Unwrap() error { return e.E }

type BinaryValue interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	CopyAsInterface() interface{}
	UnmarshalBinaryFrom(io.Reader) error
}

// BytesCopy returns a copy of the slice, or nil if it is empty.
func BytesCopy(v []byte) []byte {
	if len(v) == 0 {
		return nil
	}
	u := make([]byte, len(v))
	copy(u, v)
	return u
}
