// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package repository

import (
	"fmt"
	"strings"

	"gitlab.com/accumulatenetwork/vmstate/pkg/errors"
)

// TagCode is a set of lifecycle flags.
type TagCode uint32

const (
	// TagNormal marks an entry that matches storage.
	TagNormal TagCode = 0

	// TagDirty marks an entry that has changed since it was loaded.
	TagDirty TagCode = 1 << 0

	// TagCreate marks an entry that was created and is not in storage.
	TagCreate TagCode = 1 << 1

	// TagDelete marks an entry that has been deleted.
	TagDelete TagCode = 1 << 2

	// TagUnknown marks an empty entry built with the legacy multisign flag.
	TagUnknown TagCode = 1 << 31
)

const tagKnownBits = TagDirty | TagCreate | TagDelete | TagUnknown

var tagNames = []struct {
	code TagCode
	name string
}{
	{TagDirty, "dirty"},
	{TagCreate, "create"},
	{TagDelete, "delete"},
	{TagUnknown, "unknown"},
}

// Tag describes the lifecycle status of an entry. Tags are mutated in place
// by Union, so a tag must never be shared between entries. A nil *Tag means
// the status is unset.
type Tag struct {
	code TagCode
}

// NewTag returns a tag with the given code. The code is not validated.
func NewTag(code TagCode) *Tag {
	return &Tag{code: code}
}

// Code returns the tag's flags. An unset tag reports TagNormal.
func (t *Tag) Code() TagCode {
	if t == nil {
		return TagNormal
	}
	return t.code
}

// Copy returns an independent copy of the tag.
func (t *Tag) Copy() *Tag {
	if t == nil {
		return nil
	}
	u := *t
	return &u
}

// Union adds the other tag's flags to the receiver. The receiver must not be
// nil; use [Entry.AddTag] to add flags to an entry whose tag is unset.
func (t *Tag) Union(u *Tag) {
	if u == nil {
		return
	}
	t.code |= u.code
}

// UnionCode adds the flags to the receiver. The receiver must not be nil.
func (t *Tag) UnionCode(code TagCode) {
	t.code |= code
}

// Equal returns true if both tags are unset or have the same flags.
func (t *Tag) Equal(u *Tag) bool {
	switch {
	case t == u:
		return true
	case t == nil || u == nil:
		return false
	}
	return t.code == u.code
}

func (t *Tag) IsNormal() bool  { return t.Code() == TagNormal }
func (t *Tag) IsDirty() bool   { return t.Code()&TagDirty != 0 }
func (t *Tag) IsCreate() bool  { return t.Code()&TagCreate != 0 }
func (t *Tag) IsDelete() bool  { return t.Code()&TagDelete != 0 }
func (t *Tag) IsUnknown() bool { return t.Code()&TagUnknown != 0 }

// ShouldCommit returns true if the entry must be written back to storage.
func (t *Tag) ShouldCommit() bool {
	return t.Code()&(TagDirty|TagCreate|TagDelete) != 0
}

// Valid returns true if no flags outside the known set are set.
func (t *Tag) Valid() bool {
	return t.Code()&^tagKnownBits == 0
}

func (t *Tag) String() string {
	if t == nil {
		return "unset"
	}
	return t.code.String()
}

func (c TagCode) String() string {
	if c == TagNormal {
		return "normal"
	}

	var parts []string
	for _, n := range tagNames {
		if c&n.code != 0 {
			parts = append(parts, n.name)
		}
	}
	if extra := c &^ tagKnownBits; extra != 0 {
		parts = append(parts, fmt.Sprintf("%#x", uint32(extra)))
	}
	return strings.Join(parts, "|")
}

// ParseTagCode parses the output of TagCode.String.
func ParseTagCode(s string) (TagCode, error) {
	if s == "normal" || s == "" {
		return TagNormal, nil
	}

	var c TagCode
outer:
	for _, part := range strings.Split(s, "|") {
		for _, n := range tagNames {
			if strings.EqualFold(part, n.name) {
				c |= n.code
				continue outer
			}
		}
		return 0, errors.BadRequest.WithFormat("unknown tag flag %q", part)
	}
	return c, nil
}
