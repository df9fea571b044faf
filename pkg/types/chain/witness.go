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

// Witness is a block producer candidate.
type Witness struct {
	Address        []byte
	URL            string
	VoteCount      int64
	TotalProduced  uint64
	TotalMissed    uint64
	LatestBlockNum uint64
	IsJobs         bool
}

// Votes records the votes an account had at the start of the maintenance
// period and the votes it has cast since.
type Votes struct {
	Address  []byte
	OldVotes []*Vote
	NewVotes []*Vote
}

var fieldNames_Witness = []string{
	1: "Address",
	2: "URL",
	3: "VoteCount",
	4: "TotalProduced",
	5: "TotalMissed",
	6: "LatestBlockNum",
	7: "IsJobs",
}[1:]

var fieldNames_Votes = []string{
	1: "Address",
	2: "OldVotes",
	3: "NewVotes",
}[1:]

func UnmarshalWitness(data []byte) (*Witness, error) {
	v := new(Witness)
	err := v.UnmarshalBinary(data)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func UnmarshalVotes(data []byte) (*Votes, error) {
	v := new(Votes)
	err := v.UnmarshalBinary(data)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Witness) Copy() *Witness {
	u := *v
	u.Address = encoding.BytesCopy(v.Address)
	return &u
}

func (v *Witness) CopyAsInterface() interface{} { return v.Copy() }

func (v *Witness) Equal(u *Witness) bool {
	switch {
	case v == u:
		return true
	case v == nil || u == nil:
		return false
	}
	return bytes.Equal(v.Address, u.Address) &&
		v.URL == u.URL &&
		v.VoteCount == u.VoteCount &&
		v.TotalProduced == u.TotalProduced &&
		v.TotalMissed == u.TotalMissed &&
		v.LatestBlockNum == u.LatestBlockNum &&
		v.IsJobs == u.IsJobs
}

func (v *Witness) writeFields(w *encoding.Writer) {
	if len(v.Address) > 0 {
		w.WriteBytes(1, v.Address)
	}
	if v.URL != "" {
		w.WriteString(2, v.URL)
	}
	if v.VoteCount != 0 {
		w.WriteInt(3, v.VoteCount)
	}
	if v.TotalProduced != 0 {
		w.WriteUint(4, v.TotalProduced)
	}
	if v.TotalMissed != 0 {
		w.WriteUint(5, v.TotalMissed)
	}
	if v.LatestBlockNum != 0 {
		w.WriteUint(6, v.LatestBlockNum)
	}
	if v.IsJobs {
		w.WriteBool(7, v.IsJobs)
	}
}

func (v *Witness) readFields(r *encoding.Reader) {
	if x, ok := r.ReadBytes(1); ok {
		v.Address = x
	}
	if x, ok := r.ReadString(2); ok {
		v.URL = x
	}
	if x, ok := r.ReadInt(3); ok {
		v.VoteCount = x
	}
	if x, ok := r.ReadUint(4); ok {
		v.TotalProduced = x
	}
	if x, ok := r.ReadUint(5); ok {
		v.TotalMissed = x
	}
	if x, ok := r.ReadUint(6); ok {
		v.LatestBlockNum = x
	}
	if x, ok := r.ReadBool(7); ok {
		v.IsJobs = x
	}
}

func (v *Witness) MarshalBinary() ([]byte, error) { return marshal(v, fieldNames_Witness) }

func (v *Witness) UnmarshalBinary(data []byte) error {
	return unmarshal(data, v, fieldNames_Witness)
}

func (v *Witness) UnmarshalBinaryFrom(rd io.Reader) error {
	return unmarshalFrom(rd, v, fieldNames_Witness)
}

func (v *Votes) Copy() *Votes {
	u := new(Votes)
	u.Address = encoding.BytesCopy(v.Address)
	u.OldVotes = copyList(v.OldVotes)
	u.NewVotes = copyList(v.NewVotes)
	return u
}

func (v *Votes) CopyAsInterface() interface{} { return v.Copy() }

func (v *Votes) Equal(u *Votes) bool {
	switch {
	case v == u:
		return true
	case v == nil || u == nil:
		return false
	}
	return bytes.Equal(v.Address, u.Address) &&
		equalList(v.OldVotes, u.OldVotes) &&
		equalList(v.NewVotes, u.NewVotes)
}

func (v *Votes) writeFields(w *encoding.Writer) {
	if len(v.Address) > 0 {
		w.WriteBytes(1, v.Address)
	}
	for _, vote := range v.OldVotes {
		w.WriteValue(2, vote)
	}
	for _, vote := range v.NewVotes {
		w.WriteValue(3, vote)
	}
}

func (v *Votes) readFields(r *encoding.Reader) {
	if x, ok := r.ReadBytes(1); ok {
		v.Address = x
	}
	v.OldVotes = readList[Vote](r, 2)
	v.NewVotes = readList[Vote](r, 3)
}

func (v *Votes) MarshalBinary() ([]byte, error) { return marshal(v, fieldNames_Votes) }

func (v *Votes) UnmarshalBinary(data []byte) error {
	return unmarshal(data, v, fieldNames_Votes)
}

func (v *Votes) UnmarshalBinaryFrom(rd io.Reader) error {
	return unmarshalFrom(rd, v, fieldNames_Votes)
}
