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

// Proposal is a governance proposal to change network parameters.
type Proposal struct {
	ID              uint64
	ProposerAddress []byte
	Parameters      []*ProposalParameter
	ExpirationTime  int64
	CreateTime      int64
	Approvals       [][]byte
	State           ProposalState
}

// ProposalParameter is a proposed value for a network parameter.
type ProposalParameter struct {
	Key   uint64
	Value int64
}

var fieldNames_Proposal = []string{
	1: "ID",
	2: "ProposerAddress",
	3: "Parameters",
	4: "ExpirationTime",
	5: "CreateTime",
	6: "Approvals",
	7: "State",
}[1:]

var fieldNames_ProposalParameter = []string{
	1: "Key",
	2: "Value",
}[1:]

func UnmarshalProposal(data []byte) (*Proposal, error) {
	v := new(Proposal)
	err := v.UnmarshalBinary(data)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// HasApproval returns true if the address has approved the proposal.
func (v *Proposal) HasApproval(address []byte) bool {
	for _, a := range v.Approvals {
		if bytes.Equal(a, address) {
			return true
		}
	}
	return false
}

// Parameter returns the proposed value for the given key.
func (v *Proposal) Parameter(key uint64) (int64, bool) {
	for _, p := range v.Parameters {
		if p.Key == key {
			return p.Value, true
		}
	}
	return 0, false
}

func (v *Proposal) Copy() *Proposal {
	u := new(Proposal)
	u.ID = v.ID
	u.ProposerAddress = encoding.BytesCopy(v.ProposerAddress)
	u.Parameters = copyList(v.Parameters)
	u.ExpirationTime = v.ExpirationTime
	u.CreateTime = v.CreateTime
	u.Approvals = copyBytesList(v.Approvals)
	u.State = v.State
	return u
}

func (v *Proposal) CopyAsInterface() interface{} { return v.Copy() }

func (v *Proposal) Equal(u *Proposal) bool {
	switch {
	case v == u:
		return true
	case v == nil || u == nil:
		return false
	}
	return v.ID == u.ID &&
		bytes.Equal(v.ProposerAddress, u.ProposerAddress) &&
		equalList(v.Parameters, u.Parameters) &&
		v.ExpirationTime == u.ExpirationTime &&
		v.CreateTime == u.CreateTime &&
		equalBytesList(v.Approvals, u.Approvals) &&
		v.State == u.State
}

func (v *Proposal) writeFields(w *encoding.Writer) {
	if v.ID != 0 {
		w.WriteUint(1, v.ID)
	}
	if len(v.ProposerAddress) > 0 {
		w.WriteBytes(2, v.ProposerAddress)
	}
	for _, p := range v.Parameters {
		w.WriteValue(3, p)
	}
	if v.ExpirationTime != 0 {
		w.WriteInt(4, v.ExpirationTime)
	}
	if v.CreateTime != 0 {
		w.WriteInt(5, v.CreateTime)
	}
	for _, a := range v.Approvals {
		w.WriteBytes(6, a)
	}
	if v.State != 0 {
		w.WriteUint(7, uint64(v.State))
	}
}

func (v *Proposal) readFields(r *encoding.Reader) {
	if x, ok := r.ReadUint(1); ok {
		v.ID = x
	}
	if x, ok := r.ReadBytes(2); ok {
		v.ProposerAddress = x
	}
	v.Parameters = readList[ProposalParameter](r, 3)
	if x, ok := r.ReadInt(4); ok {
		v.ExpirationTime = x
	}
	if x, ok := r.ReadInt(5); ok {
		v.CreateTime = x
	}
	v.Approvals = readBytesList(r, 6)
	if x, ok := r.ReadUint(7); ok {
		v.State = ProposalState(x)
	}
}

func (v *Proposal) MarshalBinary() ([]byte, error) { return marshal(v, fieldNames_Proposal) }

func (v *Proposal) UnmarshalBinary(data []byte) error {
	return unmarshal(data, v, fieldNames_Proposal)
}

func (v *Proposal) UnmarshalBinaryFrom(rd io.Reader) error {
	return unmarshalFrom(rd, v, fieldNames_Proposal)
}

func (v *ProposalParameter) Copy() *ProposalParameter {
	u := *v
	return &u
}

func (v *ProposalParameter) CopyAsInterface() interface{} { return v.Copy() }

func (v *ProposalParameter) Equal(u *ProposalParameter) bool {
	switch {
	case v == u:
		return true
	case v == nil || u == nil:
		return false
	}
	return v.Key == u.Key && v.Value == u.Value
}

func (v *ProposalParameter) writeFields(w *encoding.Writer) {
	w.WriteUint(1, v.Key)
	if v.Value != 0 {
		w.WriteInt(2, v.Value)
	}
}

func (v *ProposalParameter) readFields(r *encoding.Reader) {
	if x, ok := r.ReadUint(1); ok {
		v.Key = x
	}
	if x, ok := r.ReadInt(2); ok {
		v.Value = x
	}
}

func (v *ProposalParameter) MarshalBinary() ([]byte, error) {
	return marshal(v, fieldNames_ProposalParameter)
}

func (v *ProposalParameter) UnmarshalBinary(data []byte) error {
	return unmarshal(data, v, fieldNames_ProposalParameter)
}

func (v *ProposalParameter) UnmarshalBinaryFrom(rd io.Reader) error {
	return unmarshalFrom(rd, v, fieldNames_ProposalParameter)
}
