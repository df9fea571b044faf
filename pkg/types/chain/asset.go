// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package chain

import (
	"bytes"
	"io"

	"gitlab.com/accumulatenetwork/vmstate/pkg/types/encoding"
)

// AssetIssue describes an issued token.
type AssetIssue struct {
	ID           string
	OwnerAddress []byte
	Name         string
	Abbr         string
	TotalSupply  int64
	Precision    uint64
	StartTime    int64
	EndTime      int64
	Description  string
	URL          string
}

var fieldNames_AssetIssue = []string{
	1:  "ID",
	2:  "OwnerAddress",
	3:  "Name",
	4:  "Abbr",
	5:  "TotalSupply",
	6:  "Precision",
	7:  "StartTime",
	8:  "EndTime",
	9:  "Description",
	10: "URL",
}[1:]

func UnmarshalAssetIssue(data []byte) (*AssetIssue, error) {
	v := new(AssetIssue)
	err := v.UnmarshalBinary(data)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (v *AssetIssue) Copy() *AssetIssue {
	u := *v
	u.OwnerAddress = encoding.BytesCopy(v.OwnerAddress)
	return &u
}

func (v *AssetIssue) CopyAsInterface() interface{} { return v.Copy() }

func (v *AssetIssue) Equal(u *AssetIssue) bool {
	switch {
	case v == u:
		return true
	case v == nil || u == nil:
		return false
	}
	return v.ID == u.ID &&
		bytes.Equal(v.OwnerAddress, u.OwnerAddress) &&
		v.Name == u.Name &&
		v.Abbr == u.Abbr &&
		v.TotalSupply == u.TotalSupply &&
		v.Precision == u.Precision &&
		v.StartTime == u.StartTime &&
		v.EndTime == u.EndTime &&
		v.Description == u.Description &&
		v.URL == u.URL
}

func (v *AssetIssue) writeFields(w *encoding.Writer) {
	if v.ID != "" {
		w.WriteString(1, v.ID)
	}
	if len(v.OwnerAddress) > 0 {
		w.WriteBytes(2, v.OwnerAddress)
	}
	if v.Name != "" {
		w.WriteString(3, v.Name)
	}
	if v.Abbr != "" {
		w.WriteString(4, v.Abbr)
	}
	if v.TotalSupply != 0 {
		w.WriteInt(5, v.TotalSupply)
	}
	if v.Precision != 0 {
		w.WriteUint(6, v.Precision)
	}
	if v.StartTime != 0 {
		w.WriteInt(7, v.StartTime)
	}
	if v.EndTime != 0 {
		w.WriteInt(8, v.EndTime)
	}
	if v.Description != "" {
		w.WriteString(9, v.Description)
	}
	if v.URL != "" {
		w.WriteString(10, v.URL)
	}
}

func (v *AssetIssue) readFields(r *encoding.Reader) {
	if x, ok := r.ReadString(1); ok {
		v.ID = x
	}
	if x, ok := r.ReadBytes(2); ok {
		v.OwnerAddress = x
	}
	if x, ok := r.ReadString(3); ok {
		v.Name = x
	}
	if x, ok := r.ReadString(4); ok {
		v.Abbr = x
	}
	if x, ok := r.ReadInt(5); ok {
		v.TotalSupply = x
	}
	if x, ok := r.ReadUint(6); ok {
		v.Precision = x
	}
	if x, ok := r.ReadInt(7); ok {
		v.StartTime = x
	}
	if x, ok := r.ReadInt(8); ok {
		v.EndTime = x
	}
	if x, ok := r.ReadString(9); ok {
		v.Description = x
	}
	if x, ok := r.ReadString(10); ok {
		v.URL = x
	}
}

func (v *AssetIssue) MarshalBinary() ([]byte, error) {
	return marshal(v, fieldNames_AssetIssue)
}

func (v *AssetIssue) UnmarshalBinary(data []byte) error {
	return unmarshal(data, v, fieldNames_AssetIssue)
}

func (v *AssetIssue) UnmarshalBinaryFrom(rd io.Reader) error {
	return unmarshalFrom(rd, v, fieldNames_AssetIssue)
}
