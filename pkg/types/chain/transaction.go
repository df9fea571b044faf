// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package chain

import (
	"bytes"
	"crypto/sha256"
	"io"

	"gitlab.com/accumulatenetwork/vmstate/pkg/errors"
	"gitlab.com/accumulatenetwork/vmstate/pkg/types/encoding"
)

// Transaction is a signed transaction. Everything except the signatures is
// the raw data covered by the transaction ID.
type Transaction struct {
	RefBlockBytes []byte
	RefBlockHash  []byte
	Expiration    int64
	Timestamp     int64
	ContractType  ContractType
	Parameter     []byte
	FeeLimit      uint64
	Signatures    [][]byte
}

var fieldNames_Transaction = []string{
	1: "RefBlockBytes",
	2: "RefBlockHash",
	3: "Expiration",
	4: "Timestamp",
	5: "ContractType",
	6: "Parameter",
	7: "FeeLimit",
	8: "Signatures",
}[1:]

// UnmarshalTransaction decodes and validates a transaction. It fails if the
// data is malformed or the transaction does not invoke a known contract.
func UnmarshalTransaction(data []byte) (*Transaction, error) {
	v := new(Transaction)
	err := v.UnmarshalBinary(data)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Validate checks the transaction is well formed.
func (v *Transaction) Validate() error {
	if !v.ContractType.Valid() {
		return errors.BadRequest.WithFormat("invalid contract type %v", v.ContractType)
	}
	return nil
}

// ID returns the SHA-256 hash of the raw data.
func (v *Transaction) ID() ([32]byte, error) {
	raw := v.Copy()
	raw.Signatures = nil
	b, err := raw.MarshalBinary()
	if err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(b), nil
}

func (v *Transaction) Copy() *Transaction {
	u := new(Transaction)
	u.RefBlockBytes = encoding.BytesCopy(v.RefBlockBytes)
	u.RefBlockHash = encoding.BytesCopy(v.RefBlockHash)
	u.Expiration = v.Expiration
	u.Timestamp = v.Timestamp
	u.ContractType = v.ContractType
	u.Parameter = encoding.BytesCopy(v.Parameter)
	u.FeeLimit = v.FeeLimit
	u.Signatures = copyBytesList(v.Signatures)
	return u
}

func (v *Transaction) CopyAsInterface() interface{} { return v.Copy() }

func (v *Transaction) Equal(u *Transaction) bool {
	switch {
	case v == u:
		return true
	case v == nil || u == nil:
		return false
	}
	return bytes.Equal(v.RefBlockBytes, u.RefBlockBytes) &&
		bytes.Equal(v.RefBlockHash, u.RefBlockHash) &&
		v.Expiration == u.Expiration &&
		v.Timestamp == u.Timestamp &&
		v.ContractType == u.ContractType &&
		bytes.Equal(v.Parameter, u.Parameter) &&
		v.FeeLimit == u.FeeLimit &&
		equalBytesList(v.Signatures, u.Signatures)
}

func (v *Transaction) writeFields(w *encoding.Writer) {
	if len(v.RefBlockBytes) > 0 {
		w.WriteBytes(1, v.RefBlockBytes)
	}
	if len(v.RefBlockHash) > 0 {
		w.WriteBytes(2, v.RefBlockHash)
	}
	if v.Expiration != 0 {
		w.WriteInt(3, v.Expiration)
	}
	if v.Timestamp != 0 {
		w.WriteInt(4, v.Timestamp)
	}
	w.WriteUint(5, uint64(v.ContractType))
	if len(v.Parameter) > 0 {
		w.WriteBytes(6, v.Parameter)
	}
	if v.FeeLimit != 0 {
		w.WriteUint(7, v.FeeLimit)
	}
	for _, sig := range v.Signatures {
		w.WriteBytes(8, sig)
	}
}

func (v *Transaction) readFields(r *encoding.Reader) {
	if x, ok := r.ReadBytes(1); ok {
		v.RefBlockBytes = x
	}
	if x, ok := r.ReadBytes(2); ok {
		v.RefBlockHash = x
	}
	if x, ok := r.ReadInt(3); ok {
		v.Expiration = x
	}
	if x, ok := r.ReadInt(4); ok {
		v.Timestamp = x
	}
	if x, ok := r.ReadUint(5); ok {
		v.ContractType = ContractType(x)
	}
	if x, ok := r.ReadBytes(6); ok {
		v.Parameter = x
	}
	if x, ok := r.ReadUint(7); ok {
		v.FeeLimit = x
	}
	v.Signatures = readBytesList(r, 8)
}

func (v *Transaction) MarshalBinary() ([]byte, error) {
	return marshal(v, fieldNames_Transaction)
}

func (v *Transaction) UnmarshalBinary(data []byte) error {
	return v.UnmarshalBinaryFrom(bytes.NewReader(data))
}

func (v *Transaction) UnmarshalBinaryFrom(rd io.Reader) error {
	err := unmarshalFrom(rd, v, fieldNames_Transaction)
	if err != nil {
		return err
	}
	err = v.Validate()
	if err != nil {
		return errors.EncodingError.WithFormat("decode transaction: %w", err)
	}
	return nil
}
