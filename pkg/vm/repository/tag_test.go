// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package repository

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/vmstate/pkg/errors"
)

func TestTagUnionIdempotent(t *testing.T) {
	f := fuzz.New()
	for i := 0; i < 1000; i++ {
		var a, x TagCode
		f.Fuzz(&a)
		f.Fuzz(&x)

		once := NewTag(a)
		once.Union(NewTag(x))

		twice := NewTag(a)
		twice.Union(NewTag(x))
		twice.Union(NewTag(x))

		require.True(t, once.Equal(twice), "%v ∪ %v", a, x)
	}
}

func TestTagUnionCommutative(t *testing.T) {
	f := fuzz.New()
	for i := 0; i < 1000; i++ {
		var s, a, b TagCode
		f.Fuzz(&s)
		f.Fuzz(&a)
		f.Fuzz(&b)

		ab := NewTag(s)
		ab.Union(NewTag(a))
		ab.Union(NewTag(b))

		ba := NewTag(s)
		ba.UnionCode(b)
		ba.UnionCode(a)

		require.True(t, ab.Equal(ba), "%v ∪ %v ∪ %v", s, a, b)
	}
}

func TestTagUnionNil(t *testing.T) {
	tag := NewTag(TagDirty)
	tag.Union(nil)
	require.Equal(t, TagDirty, tag.Code())
}

func TestUnionUnsetTag(t *testing.T) {
	var tag *Tag
	require.Panics(t, func() { tag.Union(NewTag(TagDirty)) })
	require.Panics(t, func() { tag.UnionCode(TagDirty) })

	// Entries install a tag instead
	e := modern.FromBytes(nil, TagNormal)
	require.Nil(t, e.Tag())
	add := NewTag(TagDirty)
	e.AddTag(add)
	require.Equal(t, TagDirty, e.Tag().Code())
	add.UnionCode(TagDelete)
	require.False(t, e.Tag().IsDelete(), "AddTag must copy the tag")

	e = modern.FromBytes(nil, TagNormal)
	e.AddTagCode(TagCreate)
	require.Equal(t, TagCreate, e.Tag().Code())
}

func TestUnsetTag(t *testing.T) {
	var tag *Tag
	require.Equal(t, TagNormal, tag.Code())
	require.True(t, tag.IsNormal())
	require.False(t, tag.ShouldCommit())
	require.True(t, tag.Valid())
	require.Nil(t, tag.Copy())
	require.Equal(t, "unset", tag.String())
	require.True(t, tag.Equal(nil))
	require.False(t, tag.Equal(NewTag(TagNormal)))
}

func TestTagPredicates(t *testing.T) {
	tag := NewTag(TagDirty | TagCreate)
	require.True(t, tag.IsDirty())
	require.True(t, tag.IsCreate())
	require.False(t, tag.IsDelete())
	require.False(t, tag.IsUnknown())
	require.False(t, tag.IsNormal())
	require.True(t, tag.ShouldCommit())

	require.False(t, NewTag(TagUnknown).ShouldCommit())
	require.False(t, NewTag(1<<10).Valid())
}

func TestTagCopyIsIndependent(t *testing.T) {
	tag := NewTag(TagNormal)
	cp := tag.Copy()
	cp.UnionCode(TagDelete)
	require.True(t, tag.IsNormal())
	require.True(t, cp.IsDelete())
}

func TestTagCodeString(t *testing.T) {
	cases := map[TagCode]string{
		TagNormal:              "normal",
		TagDirty:               "dirty",
		TagDirty | TagCreate:   "dirty|create",
		TagDelete | TagUnknown: "delete|unknown",
		TagDirty | 1<<8:        "dirty|0x100",
	}
	for code, str := range cases {
		require.Equal(t, str, code.String())
	}
}

func TestParseTagCode(t *testing.T) {
	f := fuzz.New()
	for i := 0; i < 100; i++ {
		var c TagCode
		f.Fuzz(&c)
		c &= tagKnownBits

		d, err := ParseTagCode(c.String())
		require.NoError(t, err)
		require.Equal(t, c, d)
	}

	_, err := ParseTagCode("dirty|bogus")
	require.ErrorIs(t, err, errors.BadRequest)
}
