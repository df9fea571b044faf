// Copyright 2022 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package encoding

import (
	"encoding"
	"encoding/binary"
	"fmt"
	"io"
)

// Writer writes numbered fields. Fields must be written in increasing order. A
// repeated field is written by writing the same field number again.
// The first error is latched and returned by Reset.
type Writer struct {
	w       io.Writer
	last    uint
	written int
	err     error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) didWrite(n int, err error, format string, args ...interface{}) {
	w.written += n
	if err == nil || w.err != nil {
		return
	}
	w.err = Error{fmt.Errorf(format+": %w", append(args, err)...)}
}

func (w *Writer) writeField(field uint) bool {
	if w.err != nil {
		return false
	}

	if field < 1 || field > MaxFieldNumber {
		w.err = Error{fmt.Errorf("field %d: %w", field, ErrInvalidFieldNumber)}
		return false
	}

	if field < w.last {
		w.err = Error{fmt.Errorf("field %d after field %d: %w", field, w.last, ErrFieldsOutOfOrder)}
		return false
	}

	w.last = field
	n, err := w.w.Write([]byte{byte(field)})
	w.didWrite(n, err, "field %d", field)
	return w.err == nil
}

func (w *Writer) writeRaw(field uint, b []byte) {
	n, err := w.w.Write(b)
	w.didWrite(n, err, "field %d", field)
}

func (w *Writer) WriteUint(n uint, v uint64) {
	if !w.writeField(n) {
		return
	}
	w.writeRaw(n, binary.AppendUvarint(nil, v))
}

func (w *Writer) WriteInt(n uint, v int64) {
	if !w.writeField(n) {
		return
	}
	w.writeRaw(n, binary.AppendVarint(nil, v))
}

func (w *Writer) WriteBool(n uint, v bool) {
	if !w.writeField(n) {
		return
	}
	if v {
		w.writeRaw(n, []byte{1})
	} else {
		w.writeRaw(n, []byte{0})
	}
}

func (w *Writer) WriteBytes(n uint, v []byte) {
	if !w.writeField(n) {
		return
	}
	w.writeRaw(n, binary.AppendUvarint(nil, uint64(len(v))))
	w.writeRaw(n, v)
}

func (w *Writer) WriteString(n uint, v string) {
	w.WriteBytes(n, []byte(v))
}

func (w *Writer) WriteHash(n uint, v *[32]byte) {
	if !w.writeField(n) {
		return
	}
	w.writeRaw(n, v[:])
}

// WriteValue marshals the value and writes it as a length-prefixed field.
func (w *Writer) WriteValue(n uint, v encoding.BinaryMarshaler) {
	if w.err != nil {
		return
	}
	b, err := v.MarshalBinary()
	if err != nil {
		w.err = Error{fmt.Errorf("field %d: %w", n, err)}
		return
	}
	w.WriteBytes(n, b)
}

// Reset returns the last field written, the number of bytes written, and the
// first error encountered. The writer is then ready for the next object.
func (w *Writer) Reset(fieldNames []string) (lastField uint, written int, err error) {
	lastField, written, err = w.last, w.written, w.err
	if err != nil && lastField > 0 && int(lastField) <= len(fieldNames) {
		err = Error{fmt.Errorf("%s: %w", fieldNames[lastField-1], err)}
	}
	w.last, w.written, w.err = 0, 0, nil
	return lastField, written, err
}
