// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package repository

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"reflect"

	"gitlab.com/accumulatenetwork/vmstate/pkg/types/chain"
	"gitlab.com/accumulatenetwork/vmstate/pkg/types/encoding"
)

// Object is a native value held by an entry in place of serialized bytes,
// such as freshly deployed contract metadata.
type Object interface {
	encoding.BinaryValue
}

// payload is either bytesPayload or objectPayload. A nil payload is an empty
// entry.
type payload interface {
	isPayload()
}

type bytesPayload []byte

type objectPayload struct {
	Object
}

func (bytesPayload) isPayload()  {}
func (objectPayload) isPayload() {}

// Entry is a unit of cached chain state: raw bytes or a native object, plus a
// lifecycle tag. The payload is immutable once the entry is built; only the
// tag changes. An Entry is not safe for concurrent use.
type Entry struct {
	tag     *Tag
	payload payload
}

// Factory builds entries. LegacyMultiSign must be the current value of the
// legacy multisign flag; when set, empty entries are tagged TagUnknown
// instead of being left unset.
type Factory struct {
	LegacyMultiSign bool
}

func (f Factory) emptyTag() *Tag {
	if f.LegacyMultiSign {
		return NewTag(TagUnknown)
	}
	return nil
}

// FromBytes returns an entry holding a copy of the data and a new tag with
// the given code. If the data is empty the entry is empty.
func (f Factory) FromBytes(data []byte, code TagCode) *Entry {
	e := new(Entry)
	if len(data) == 0 {
		e.tag = f.emptyTag()
		return e
	}

	e.payload = bytesPayload(bytes.Clone(data))
	e.tag = NewTag(code)
	return e
}

// FromBytesTag returns an entry holding a copy of the data and a copy of the
// tag. If the data is empty, the tag argument is ignored and the entry gets
// the same tag as any other empty entry. Callers that need a tag on an empty
// entry must use SetTag.
func (f Factory) FromBytesTag(data []byte, tag *Tag) *Entry {
	e := new(Entry)
	if len(data) == 0 {
		e.tag = f.emptyTag()
		return e
	}

	e.payload = bytesPayload(bytes.Clone(data))
	e.tag = tag.Copy()
	return e
}

// FromObject returns an entry holding the object (not a copy) and a new tag
// with the given code. If the object is nil the entry is empty.
func (f Factory) FromObject(obj Object, code TagCode) *Entry {
	e := new(Entry)
	if isNil(obj) {
		e.tag = f.emptyTag()
		return e
	}

	e.payload = objectPayload{obj}
	e.tag = NewTag(code)
	return e
}

// Bytes returns a normal entry holding a copy of the data.
func (f Factory) Bytes(data []byte) *Entry {
	return f.FromBytes(data, TagNormal)
}

// Contract returns a normal entry holding the contract metadata.
func (f Factory) Contract(sc *chain.SmartContract) *Entry {
	if sc == nil {
		return f.FromObject(nil, TagNormal)
	}
	return f.FromObject(sc, TagNormal)
}

func isNil(obj Object) bool {
	if obj == nil {
		return true
	}
	v := reflect.ValueOf(obj)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// Copy returns a copy of the entry with its own bytes and tag. The object, if
// any, is shared.
func (e *Entry) Copy() *Entry {
	u := new(Entry)
	u.tag = e.tag.Copy()
	switch p := e.payload.(type) {
	case bytesPayload:
		u.payload = bytesPayload(bytes.Clone(p))
	case objectPayload:
		u.payload = p
	}
	return u
}

// Any returns the serialized payload, or nil if the entry does not hold
// bytes. The caller must not modify the returned slice.
func (e *Entry) Any() []byte {
	b, _ := e.payload.(bytesPayload)
	return b
}

// Object returns the native payload, or nil if the entry does not hold an
// object.
func (e *Entry) Object() Object {
	o, ok := e.payload.(objectPayload)
	if !ok {
		return nil
	}
	return o.Object
}

// IsEmpty returns true if the entry holds neither bytes nor an object.
func (e *Entry) IsEmpty() bool {
	return e.payload == nil
}

// Tag returns the entry's tag, which may be nil.
func (e *Entry) Tag() *Tag { return e.tag }

// SetTag replaces the entry's tag.
func (e *Entry) SetTag(tag *Tag) { e.tag = tag }

// AddTag adds the tag's flags to the entry's tag. If the entry's tag is
// unset it becomes a copy of the argument.
func (e *Entry) AddTag(tag *Tag) {
	if e.tag == nil {
		e.tag = tag.Copy()
		return
	}
	e.tag.Union(tag)
}

// AddTagCode adds the flags to the entry's tag. If the entry's tag is unset
// it becomes a new tag with the code.
func (e *Entry) AddTagCode(code TagCode) {
	if e.tag == nil {
		e.tag = NewTag(code)
		return
	}
	e.tag.UnionCode(code)
}

// Equal returns true if the entries have equal tags and payloads. Objects are
// equal if they are the same value or marshal to the same bytes.
func (e *Entry) Equal(u *Entry) bool {
	switch {
	case e == u:
		return true
	case e == nil || u == nil:
		return false
	}

	if !e.tag.Equal(u.tag) {
		return false
	}

	switch p := e.payload.(type) {
	case nil:
		return u.payload == nil
	case bytesPayload:
		q, ok := u.payload.(bytesPayload)
		return ok && bytes.Equal(p, q)
	case objectPayload:
		q, ok := u.payload.(objectPayload)
		return ok && objectsEqual(p.Object, q.Object)
	}
	return false
}

func objectsEqual(a, b Object) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if reflect.TypeOf(a).Comparable() && any(a) == any(b) {
		return true
	}

	x, err := a.MarshalBinary()
	if err != nil {
		return false
	}
	y, err := b.MarshalBinary()
	if err != nil {
		return false
	}
	return bytes.Equal(x, y)
}

// Hash returns a hash of the tag and payload. Entries that are Equal have the
// same hash.
func (e *Entry) Hash() [32]byte {
	h := sha256.New()

	var buf [5]byte
	if e.tag != nil {
		buf[0] = 1
		binary.BigEndian.PutUint32(buf[1:], uint32(e.tag.code))
	}
	_, _ = h.Write(buf[:])

	switch p := e.payload.(type) {
	case bytesPayload:
		_, _ = h.Write([]byte{1})
		_, _ = h.Write(p)
	case objectPayload:
		_, _ = h.Write([]byte{2})
		_, _ = fmt.Fprintf(h, "%T", p.Object)
		b, err := p.MarshalBinary()
		if err == nil {
			_, _ = h.Write(b)
		}
	default:
		_, _ = h.Write([]byte{0})
	}

	var sum [32]byte
	h.Sum(sum[:0])
	return sum
}

func (e *Entry) String() string {
	switch p := e.payload.(type) {
	case bytesPayload:
		return fmt.Sprintf("{%v, %d bytes}", e.tag, len(p))
	case objectPayload:
		return fmt.Sprintf("{%v, %T}", e.tag, p.Object)
	default:
		return fmt.Sprintf("{%v, empty}", e.tag)
	}
}
