// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package chain defines the chain-state shapes cached by the VM state
// repository, along with their binary encoding.
package chain

import (
	"bytes"
	"io"

	"gitlab.com/accumulatenetwork/vmstate/pkg/errors"
	"gitlab.com/accumulatenetwork/vmstate/pkg/types/encoding"
)

type fieldsValue interface {
	writeFields(*encoding.Writer)
	readFields(*encoding.Reader)
}

func marshal(v fieldsValue, fieldNames []string) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := encoding.NewWriter(buf)
	v.writeFields(w)
	_, _, err := w.Reset(fieldNames)
	if err != nil {
		return nil, errors.EncodingError.WithFormat("encode %T: %w", v, err)
	}
	return buf.Bytes(), nil
}

func unmarshalFrom(rd io.Reader, v fieldsValue, fieldNames []string) error {
	r := encoding.NewReader(rd)
	v.readFields(r)
	err := r.Reset(fieldNames)
	if err != nil {
		return errors.EncodingError.WithFormat("decode %T: %w", v, err)
	}
	return nil
}

func unmarshal(data []byte, v fieldsValue, fieldNames []string) error {
	return unmarshalFrom(bytes.NewReader(data), v, fieldNames)
}

// readList reads a repeated value field.
func readList[T any, PT interface {
	*T
	UnmarshalBinary([]byte) error
}](r *encoding.Reader, n uint) []PT {
	var list []PT
	for {
		var v PT = new(T)
		if !r.ReadValue(n, v.UnmarshalBinary) {
			return list
		}
		list = append(list, v)
	}
}

// readBytesList reads a repeated byte field.
func readBytesList(r *encoding.Reader, n uint) [][]byte {
	var list [][]byte
	for {
		b, ok := r.ReadBytes(n)
		if !ok {
			return list
		}
		list = append(list, b)
	}
}

func copyBytesList(v [][]byte) [][]byte {
	if v == nil {
		return nil
	}
	u := make([][]byte, len(v))
	for i, b := range v {
		u[i] = encoding.BytesCopy(b)
	}
	return u
}

func equalBytesList(a, b [][]byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !bytes.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func copyList[T interface{ Copy() T }](v []T) []T {
	if v == nil {
		return nil
	}
	u := make([]T, len(v))
	for i, x := range v {
		u[i] = x.Copy()
	}
	return u
}

func equalList[T interface{ Equal(T) bool }](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func equalHash(a, b *[32]byte) bool {
	switch {
	case a == b:
		return true
	case a == nil || b == nil:
		return false
	}
	return *a == *b
}

func copyHash(v *[32]byte) *[32]byte {
	if v == nil {
		return nil
	}
	u := *v
	return &u
}
