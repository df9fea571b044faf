// Copyright 2022 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package encoding

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Reader reads numbered fields written by [Writer]. Absent fields are
// skipped. A repeated field is read by reading the same number until the read
// reports false. A field number that is out of order, or data left over after the
// caller stops reading, is an error. The first error is latched and returned
// by Reset.
type Reader struct {
	r    *bufio.Reader
	last uint
	err  error
}

func NewReader(r io.Reader) *Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return &Reader{r: br}
	}
	return &Reader{r: bufio.NewReader(r)}
}

func (r *Reader) didRead(field uint, err error, format string, args ...interface{}) {
	if err == nil || r.err != nil {
		return
	}
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	r.err = Error{fmt.Errorf("field %d: "+format+": %w", append(append([]interface{}{field}, args...), err)...)}
}

func (r *Reader) readField(field uint) bool {
	if r.err != nil {
		return false
	}

	if field < r.last {
		r.err = Error{fmt.Errorf("field %d after field %d: %w", field, r.last, ErrFieldsOutOfOrder)}
		return false
	}

	b, err := r.r.Peek(1)
	switch {
	case errors.Is(err, io.EOF):
		return false
	case err != nil:
		r.didRead(field, err, "peek")
		return false
	}

	got := uint(b[0])
	if got < 1 || got > MaxFieldNumber {
		r.err = Error{fmt.Errorf("field %d: %w", got, ErrInvalidFieldNumber)}
		return false
	}
	if got != field {
		// A lower number means the caller skipped a field that is present
		if got < field {
			r.err = Error{fmt.Errorf("unexpected field %d: %w", got, ErrFieldsOutOfOrder)}
		}
		return false
	}

	_, _ = r.r.ReadByte()
	r.last = field
	return true
}

func (r *Reader) ReadUint(n uint) (uint64, bool) {
	if !r.readField(n) {
		return 0, false
	}
	v, err := binary.ReadUvarint(r.r)
	r.didRead(n, err, "decode uvarint")
	return v, r.err == nil
}

func (r *Reader) ReadInt(n uint) (int64, bool) {
	if !r.readField(n) {
		return 0, false
	}
	v, err := binary.ReadVarint(r.r)
	r.didRead(n, err, "decode varint")
	return v, r.err == nil
}

func (r *Reader) ReadBool(n uint) (bool, bool) {
	if !r.readField(n) {
		return false, false
	}
	b, err := r.r.ReadByte()
	r.didRead(n, err, "decode bool")
	if r.err != nil {
		return false, false
	}
	switch b {
	case 0:
		return false, true
	case 1:
		return true, true
	default:
		r.err = Error{fmt.Errorf("field %d: %d is not a valid boolean", n, b)}
		return false, false
	}
}

func (r *Reader) ReadBytes(n uint) ([]byte, bool) {
	if !r.readField(n) {
		return nil, false
	}
	l, err := binary.ReadUvarint(r.r)
	r.didRead(n, err, "decode length")
	if r.err != nil {
		return nil, false
	}
	if l > MaxBytesLength {
		r.err = Error{fmt.Errorf("field %d: length %d: %w", n, l, ErrOverflow)}
		return nil, false
	}
	v := make([]byte, l)
	_, err = io.ReadFull(r.r, v)
	r.didRead(n, err, "decode bytes")
	return v, r.err == nil
}

func (r *Reader) ReadString(n uint) (string, bool) {
	b, ok := r.ReadBytes(n)
	return string(b), ok
}

func (r *Reader) ReadHash(n uint) (*[32]byte, bool) {
	if !r.readField(n) {
		return nil, false
	}
	v := new([32]byte)
	_, err := io.ReadFull(r.r, v[:])
	r.didRead(n, err, "decode hash")
	return v, r.err == nil
}

// ReadValue reads a length-prefixed field and passes it to the unmarshaller.
func (r *Reader) ReadValue(n uint, unmarshal func([]byte) error) bool {
	b, ok := r.ReadBytes(n)
	if !ok {
		return false
	}
	r.didRead(n, unmarshal(b), "decode value")
	return r.err == nil
}

// ReadAll returns any data that has not been read.
func (r *Reader) ReadAll() ([]byte, error) {
	return io.ReadAll(r.r)
}

// Reset returns the first error encountered, or an error if data remains that
// no field read consumed. The reader is then ready for the next object.
func (r *Reader) Reset(fieldNames []string) error {
	err := r.err
	if err == nil {
		b, perr := r.r.Peek(1)
		if perr == nil {
			err = Error{fmt.Errorf("unexpected field %d: %w", b[0], ErrFieldsOutOfOrder)}
		} else if !errors.Is(perr, io.EOF) {
			err = Error{perr}
		}
	}
	if err != nil && r.last > 0 && int(r.last) <= len(fieldNames) {
		err = Error{fmt.Errorf("after %s: %w", fieldNames[r.last-1], err)}
	}
	r.last, r.err = 0, nil
	return err
}
