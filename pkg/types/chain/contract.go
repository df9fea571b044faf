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

// SmartContract is the metadata of a deployed smart contract.
type SmartContract struct {
	OriginAddress              []byte
	ContractAddress            []byte
	ABI                        string
	Bytecode                   []byte
	CallValue                  int64
	ConsumeUserResourcePercent int64
	Name                       string
	OriginEnergyLimit          int64
	CodeHash                   []byte
	TxnHash                    []byte
}

var fieldNames_SmartContract = []string{
	1:  "OriginAddress",
	2:  "ContractAddress",
	3:  "ABI",
	4:  "Bytecode",
	5:  "CallValue",
	6:  "ConsumeUserResourcePercent",
	7:  "Name",
	8:  "OriginEnergyLimit",
	9:  "CodeHash",
	10: "TxnHash",
}[1:]

func UnmarshalSmartContract(data []byte) (*SmartContract, error) {
	v := new(SmartContract)
	err := v.UnmarshalBinary(data)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (v *SmartContract) Copy() *SmartContract {
	u := *v
	u.OriginAddress = encoding.BytesCopy(v.OriginAddress)
	u.ContractAddress = encoding.BytesCopy(v.ContractAddress)
	u.Bytecode = encoding.BytesCopy(v.Bytecode)
	u.CodeHash = encoding.BytesCopy(v.CodeHash)
	u.TxnHash = encoding.BytesCopy(v.TxnHash)
	return &u
}

func (v *SmartContract) CopyAsInterface() interface{} { return v.Copy() }

func (v *SmartContract) Equal(u *SmartContract) bool {
	switch {
	case v == u:
		return true
	case v == nil || u == nil:
		return false
	}
	return bytes.Equal(v.OriginAddress, u.OriginAddress) &&
		bytes.Equal(v.ContractAddress, u.ContractAddress) &&
		v.ABI == u.ABI &&
		bytes.Equal(v.Bytecode, u.Bytecode) &&
		v.CallValue == u.CallValue &&
		v.ConsumeUserResourcePercent == u.ConsumeUserResourcePercent &&
		v.Name == u.Name &&
		v.OriginEnergyLimit == u.OriginEnergyLimit &&
		bytes.Equal(v.CodeHash, u.CodeHash) &&
		bytes.Equal(v.TxnHash, u.TxnHash)
}

func (v *SmartContract) writeFields(w *encoding.Writer) {
	if len(v.OriginAddress) > 0 {
		w.WriteBytes(1, v.OriginAddress)
	}
	if len(v.ContractAddress) > 0 {
		w.WriteBytes(2, v.ContractAddress)
	}
	if v.ABI != "" {
		w.WriteString(3, v.ABI)
	}
	if len(v.Bytecode) > 0 {
		w.WriteBytes(4, v.Bytecode)
	}
	if v.CallValue != 0 {
		w.WriteInt(5, v.CallValue)
	}
	if v.ConsumeUserResourcePercent != 0 {
		w.WriteInt(6, v.ConsumeUserResourcePercent)
	}
	if v.Name != "" {
		w.WriteString(7, v.Name)
	}
	if v.OriginEnergyLimit != 0 {
		w.WriteInt(8, v.OriginEnergyLimit)
	}
	if len(v.CodeHash) > 0 {
		w.WriteBytes(9, v.CodeHash)
	}
	if len(v.TxnHash) > 0 {
		w.WriteBytes(10, v.TxnHash)
	}
}

func (v *SmartContract) readFields(r *encoding.Reader) {
	if x, ok := r.ReadBytes(1); ok {
		v.OriginAddress = x
	}
	if x, ok := r.ReadBytes(2); ok {
		v.ContractAddress = x
	}
	if x, ok := r.ReadString(3); ok {
		v.ABI = x
	}
	if x, ok := r.ReadBytes(4); ok {
		v.Bytecode = x
	}
	if x, ok := r.ReadInt(5); ok {
		v.CallValue = x
	}
	if x, ok := r.ReadInt(6); ok {
		v.ConsumeUserResourcePercent = x
	}
	if x, ok := r.ReadString(7); ok {
		v.Name = x
	}
	if x, ok := r.ReadInt(8); ok {
		v.OriginEnergyLimit = x
	}
	if x, ok := r.ReadBytes(9); ok {
		v.CodeHash = x
	}
	if x, ok := r.ReadBytes(10); ok {
		v.TxnHash = x
	}
}

func (v *SmartContract) MarshalBinary() ([]byte, error) {
	return marshal(v, fieldNames_SmartContract)
}

func (v *SmartContract) UnmarshalBinary(data []byte) error {
	return unmarshal(data, v, fieldNames_SmartContract)
}

func (v *SmartContract) UnmarshalBinaryFrom(rd io.Reader) error {
	return unmarshalFrom(rd, v, fieldNames_SmartContract)
}

// Contract is a read view over a smart contract's metadata. It shares the
// underlying [SmartContract].
type Contract struct {
	instance *SmartContract
}

// DefaultOriginEnergyLimit is the origin energy limit reported for contracts
// that do not set one.
const DefaultOriginEnergyLimit = 10_000_000

// NewContract returns a view over the contract.
func NewContract(sc *SmartContract) *Contract {
	return &Contract{instance: sc}
}

// Instance returns the underlying contract metadata.
func (c *Contract) Instance() *SmartContract { return c.instance }

func (c *Contract) OriginAddress() []byte   { return c.instance.OriginAddress }
func (c *Contract) ContractAddress() []byte { return c.instance.ContractAddress }
func (c *Contract) CodeHash() []byte        { return c.instance.CodeHash }

// ConsumeUserResourcePercent returns the percentage of resources charged to
// the caller, clamped to [0, 100].
func (c *Contract) ConsumeUserResourcePercent() int64 {
	p := c.instance.ConsumeUserResourcePercent
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// OriginEnergyLimit returns the origin energy limit, or
// DefaultOriginEnergyLimit if it is not set.
func (c *Contract) OriginEnergyLimit() int64 {
	if c.instance.OriginEnergyLimit <= 0 {
		return DefaultOriginEnergyLimit
	}
	return c.instance.OriginEnergyLimit
}

func (c *Contract) Equal(d *Contract) bool {
	switch {
	case c == d:
		return true
	case c == nil || d == nil:
		return false
	}
	return c.instance.Equal(d.instance)
}

func (c *Contract) MarshalBinary() ([]byte, error) { return c.instance.MarshalBinary() }
