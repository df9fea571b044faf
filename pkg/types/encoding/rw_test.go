// Copyright 2023 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package encoding_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	. "gitlab.com/accumulatenetwork/vmstate/pkg/types/encoding"
)

func pipe() (*bytes.Buffer, *Writer) {
	buf := new(bytes.Buffer)
	return buf, NewWriter(buf)
}

func TestRoundTripFields(t *testing.T) {
	buf, w := pipe()
	hash := [32]byte{1, 2, 3}
	w.WriteUint(1, 77)
	w.WriteInt(2, -5)
	w.WriteBool(3, true)
	w.WriteBytes(4, []byte{0xDE, 0xAD})
	w.WriteString(5, "foo")
	w.WriteHash(6, &hash)
	_, _, err := w.Reset(nil)
	require.NoError(t, err)

	r := NewReader(bytes.NewReader(buf.Bytes()))
	u, ok := r.ReadUint(1)
	require.True(t, ok)
	require.Equal(t, uint64(77), u)
	i, ok := r.ReadInt(2)
	require.True(t, ok)
	require.Equal(t, int64(-5), i)
	b, ok := r.ReadBool(3)
	require.True(t, ok)
	require.True(t, b)
	d, ok := r.ReadBytes(4)
	require.True(t, ok)
	require.Equal(t, []byte{0xDE, 0xAD}, d)
	s, ok := r.ReadString(5)
	require.True(t, ok)
	require.Equal(t, "foo", s)
	h, ok := r.ReadHash(6)
	require.True(t, ok)
	require.Equal(t, hash, *h)
	require.NoError(t, r.Reset(nil))
}

func TestAbsentFieldIsSkipped(t *testing.T) {
	buf, w := pipe()
	w.WriteUint(2, 3)
	_, _, err := w.Reset(nil)
	require.NoError(t, err)

	r := NewReader(bytes.NewReader(buf.Bytes()))
	_, ok := r.ReadUint(1)
	require.False(t, ok)
	v, ok := r.ReadUint(2)
	require.True(t, ok)
	require.Equal(t, uint64(3), v)
	require.NoError(t, r.Reset(nil))
}

func TestWriterRejectsOutOfOrder(t *testing.T) {
	_, w := pipe()
	w.WriteUint(2, 1)
	w.WriteUint(1, 1)
	_, _, err := w.Reset([]string{"One", "Two"})
	require.ErrorIs(t, err, ErrFieldsOutOfOrder)

	// Reset clears the error
	w.WriteUint(1, 1)
	_, _, err = w.Reset(nil)
	require.NoError(t, err)
}

func TestReaderRejectsLeftovers(t *testing.T) {
	buf, w := pipe()
	w.WriteUint(1, 1)
	w.WriteUint(2, 2)
	_, _, err := w.Reset(nil)
	require.NoError(t, err)

	r := NewReader(bytes.NewReader(buf.Bytes()))
	_, ok := r.ReadUint(1)
	require.True(t, ok)
	require.Error(t, r.Reset([]string{"One"}))
}

func TestReaderRejectsGarbage(t *testing.T) {
	cases := map[string][]byte{
		"Invalid field":   {0xFF, 0x01},
		"Truncated bytes": {0x01, 0x05, 0x01},
		"Huge length":     {0x01, 0xFF, 0xFF, 0xFF, 0xFF, 0x0F},
		"Bad bool":        {0x01, 0x07},
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			r := NewReader(bytes.NewReader(data))
			if name == "Bad bool" {
				r.ReadBool(1)
			} else {
				r.ReadBytes(1)
			}
			err := r.Reset(nil)
			require.Error(t, err)
			require.ErrorAs(t, err, new(Error))
		})
	}
}

func TestBytesCopy(t *testing.T) {
	require.Nil(t, BytesCopy(nil))
	require.Nil(t, BytesCopy([]byte{}))

	a := []byte{1, 2, 3}
	b := BytesCopy(a)
	require.Equal(t, a, b)
	b[0] = 9
	require.Equal(t, byte(1), a[0])
}

func TestRepeatedField(t *testing.T) {
	buf, w := pipe()
	w.WriteUint(1, 9)
	for _, s := range []string{"a", "b", "c"} {
		w.WriteString(2, s)
	}
	w.WriteUint(3, 4)
	_, _, err := w.Reset(nil)
	require.NoError(t, err)

	r := NewReader(bytes.NewReader(buf.Bytes()))
	_, ok := r.ReadUint(1)
	require.True(t, ok)
	var got []string
	for {
		s, ok := r.ReadString(2)
		if !ok {
			break
		}
		got = append(got, s)
	}
	require.Equal(t, []string{"a", "b", "c"}, got)
	v, ok := r.ReadUint(3)
	require.True(t, ok)
	require.Equal(t, uint64(4), v)
	require.NoError(t, r.Reset(nil))
}
