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

// Account is the state of an account.
type Account struct {
	Type                AccountType
	Address             []byte
	Name                string
	Balance             uint64
	CreateTime          int64
	LatestOperationTime int64
	Votes               []*Vote
}

// Vote is a number of votes cast for a witness.
type Vote struct {
	Address []byte
	Count   uint64
}

var fieldNames_Account = []string{
	1: "Type",
	2: "Address",
	3: "Name",
	4: "Balance",
	5: "CreateTime",
	6: "LatestOperationTime",
	7: "Votes",
}[1:]

var fieldNames_Vote = []string{
	1: "Address",
	2: "Count",
}[1:]

// UnmarshalAccount decodes an account.
func UnmarshalAccount(data []byte) (*Account, error) {
	v := new(Account)
	err := v.UnmarshalBinary(data)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Account) Copy() *Account {
	u := new(Account)
	u.Type = v.Type
	u.Address = encoding.BytesCopy(v.Address)
	u.Name = v.Name
	u.Balance = v.Balance
	u.CreateTime = v.CreateTime
	u.LatestOperationTime = v.LatestOperationTime
	u.Votes = copyList(v.Votes)
	return u
}

func (v *Account) CopyAsInterface() interface{} { return v.Copy() }

func (v *Account) Equal(u *Account) bool {
	switch {
	case v == u:
		return true
	case v == nil || u == nil:
		return false
	}
	return v.Type == u.Type &&
		bytes.Equal(v.Address, u.Address) &&
		v.Name == u.Name &&
		v.Balance == u.Balance &&
		v.CreateTime == u.CreateTime &&
		v.LatestOperationTime == u.LatestOperationTime &&
		equalList(v.Votes, u.Votes)
}

func (v *Account) writeFields(w *encoding.Writer) {
	if v.Type != 0 {
		w.WriteUint(1, uint64(v.Type))
	}
	if len(v.Address) > 0 {
		w.WriteBytes(2, v.Address)
	}
	if v.Name != "" {
		w.WriteString(3, v.Name)
	}
	if v.Balance != 0 {
		w.WriteUint(4, v.Balance)
	}
	if v.CreateTime != 0 {
		w.WriteInt(5, v.CreateTime)
	}
	if v.LatestOperationTime != 0 {
		w.WriteInt(6, v.LatestOperationTime)
	}
	for _, vote := range v.Votes {
		w.WriteValue(7, vote)
	}
}

func (v *Account) readFields(r *encoding.Reader) {
	if x, ok := r.ReadUint(1); ok {
		v.Type = AccountType(x)
	}
	if x, ok := r.ReadBytes(2); ok {
		v.Address = x
	}
	if x, ok := r.ReadString(3); ok {
		v.Name = x
	}
	if x, ok := r.ReadUint(4); ok {
		v.Balance = x
	}
	if x, ok := r.ReadInt(5); ok {
		v.CreateTime = x
	}
	if x, ok := r.ReadInt(6); ok {
		v.LatestOperationTime = x
	}
	v.Votes = readList[Vote](r, 7)
}

func (v *Account) MarshalBinary() ([]byte, error) { return marshal(v, fieldNames_Account) }

func (v *Account) UnmarshalBinary(data []byte) error {
	return unmarshal(data, v, fieldNames_Account)
}

func (v *Account) UnmarshalBinaryFrom(rd io.Reader) error {
	return unmarshalFrom(rd, v, fieldNames_Account)
}

func (v *Vote) Copy() *Vote {
	u := new(Vote)
	u.Address = encoding.BytesCopy(v.Address)
	u.Count = v.Count
	return u
}

func (v *Vote) CopyAsInterface() interface{} { return v.Copy() }

func (v *Vote) Equal(u *Vote) bool {
	switch {
	case v == u:
		return true
	case v == nil || u == nil:
		return false
	}
	return bytes.Equal(v.Address, u.Address) && v.Count == u.Count
}

func (v *Vote) writeFields(w *encoding.Writer) {
	if len(v.Address) > 0 {
		w.WriteBytes(1, v.Address)
	}
	if v.Count != 0 {
		w.WriteUint(2, v.Count)
	}
}

func (v *Vote) readFields(r *encoding.Reader) {
	if x, ok := r.ReadBytes(1); ok {
		v.Address = x
	}
	if x, ok := r.ReadUint(2); ok {
		v.Count = x
	}
}

func (v *Vote) MarshalBinary() ([]byte, error) { return marshal(v, fieldNames_Vote) }

func (v *Vote) UnmarshalBinary(data []byte) error {
	return unmarshal(data, v, fieldNames_Vote)
}

func (v *Vote) UnmarshalBinaryFrom(rd io.Reader) error {
	return unmarshalFrom(rd, v, fieldNames_Vote)
}
