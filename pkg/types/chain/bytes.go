// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package chain

import (
	"bytes"
	"crypto/sha256"
	"io"

	"gitlab.com/accumulatenetwork/vmstate/pkg/errors"
	"gitlab.com/accumulatenetwork/vmstate/pkg/types/encoding"
)

// BytesValue is an opaque byte blob, such as a generic key/value record, a
// block index entry, or a dynamic property.
type BytesValue struct {
	Data []byte
}

// Code is the bytecode of a deployed contract.
type Code struct {
	Data []byte
}

// NewBytesValue wraps the data without copying it.
func NewBytesValue(data []byte) *BytesValue { return &BytesValue{Data: data} }

// NewCode wraps the data without copying it.
func NewCode(data []byte) *Code { return &Code{Data: data} }

// Uint64 interprets the blob as a big-endian integer, as dynamic properties
// are stored.
func (v *BytesValue) Uint64() (uint64, error) {
	if len(v.Data) > 8 {
		return 0, errors.EncodingError.WithFormat("%d bytes is too long for a uint64", len(v.Data))
	}
	var u uint64
	for _, b := range v.Data {
		u = u<<8 | uint64(b)
	}
	return u, nil
}

func (v *BytesValue) Copy() *BytesValue {
	return &BytesValue{Data: encoding.BytesCopy(v.Data)}
}

func (v *BytesValue) CopyAsInterface() interface{} { return v.Copy() }

func (v *BytesValue) Equal(u *BytesValue) bool {
	switch {
	case v == u:
		return true
	case v == nil || u == nil:
		return false
	}
	return bytes.Equal(v.Data, u.Data)
}

func (v *BytesValue) MarshalBinary() ([]byte, error) {
	return encoding.BytesCopy(v.Data), nil
}

func (v *BytesValue) UnmarshalBinary(data []byte) error {
	v.Data = encoding.BytesCopy(data)
	return nil
}

func (v *BytesValue) UnmarshalBinaryFrom(rd io.Reader) error {
	data, err := io.ReadAll(rd)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	v.Data = data
	return nil
}

// Hash returns the SHA-256 hash of the code.
func (v *Code) Hash() [32]byte {
	return sha256.Sum256(v.Data)
}

func (v *Code) Copy() *Code {
	return &Code{Data: encoding.BytesCopy(v.Data)}
}

func (v *Code) CopyAsInterface() interface{} { return v.Copy() }

func (v *Code) Equal(u *Code) bool {
	switch {
	case v == u:
		return true
	case v == nil || u == nil:
		return false
	}
	return bytes.Equal(v.Data, u.Data)
}

func (v *Code) MarshalBinary() ([]byte, error) {
	return encoding.BytesCopy(v.Data), nil
}

func (v *Code) UnmarshalBinary(data []byte) error {
	v.Data = encoding.BytesCopy(data)
	return nil
}

func (v *Code) UnmarshalBinaryFrom(rd io.Reader) error {
	data, err := io.ReadAll(rd)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	v.Data = data
	return nil
}
