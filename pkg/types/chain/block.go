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

// Block is a block header plus its transactions.
type Block struct {
	Number           uint64
	Timestamp        int64
	ParentHash       *[32]byte
	WitnessAddress   []byte
	TxTrieRoot       *[32]byte
	WitnessSignature []byte
	Transactions     []*Transaction
}

var fieldNames_Block = []string{
	1: "Number",
	2: "Timestamp",
	3: "ParentHash",
	4: "WitnessAddress",
	5: "TxTrieRoot",
	6: "WitnessSignature",
	7: "Transactions",
}[1:]

// UnmarshalBlock decodes and validates a block. It fails if the data is
// malformed, the parent hash is missing, or any transaction is invalid.
func UnmarshalBlock(data []byte) (*Block, error) {
	v := new(Block)
	err := v.UnmarshalBinary(data)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Validate checks the block is well formed.
func (v *Block) Validate() error {
	if v.ParentHash == nil {
		return errors.BadRequest.With("missing parent hash")
	}
	for i, txn := range v.Transactions {
		err := txn.Validate()
		if err != nil {
			return errors.BadRequest.WithFormat("transaction %d: %w", i, err)
		}
	}
	return nil
}

// Hash returns the SHA-256 hash of the block header, excluding the witness
// signature.
func (v *Block) Hash() ([32]byte, error) {
	header := new(Block)
	header.Number = v.Number
	header.Timestamp = v.Timestamp
	header.ParentHash = v.ParentHash
	header.WitnessAddress = v.WitnessAddress
	header.TxTrieRoot = v.TxTrieRoot
	b, err := header.MarshalBinary()
	if err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(b), nil
}

func (v *Block) Copy() *Block {
	u := new(Block)
	u.Number = v.Number
	u.Timestamp = v.Timestamp
	u.ParentHash = copyHash(v.ParentHash)
	u.WitnessAddress = encoding.BytesCopy(v.WitnessAddress)
	u.TxTrieRoot = copyHash(v.TxTrieRoot)
	u.WitnessSignature = encoding.BytesCopy(v.WitnessSignature)
	u.Transactions = copyList(v.Transactions)
	return u
}

func (v *Block) CopyAsInterface() interface{} { return v.Copy() }

func (v *Block) Equal(u *Block) bool {
	switch {
	case v == u:
		return true
	case v == nil || u == nil:
		return false
	}
	return v.Number == u.Number &&
		v.Timestamp == u.Timestamp &&
		equalHash(v.ParentHash, u.ParentHash) &&
		bytes.Equal(v.WitnessAddress, u.WitnessAddress) &&
		equalHash(v.TxTrieRoot, u.TxTrieRoot) &&
		bytes.Equal(v.WitnessSignature, u.WitnessSignature) &&
		equalList(v.Transactions, u.Transactions)
}

func (v *Block) writeFields(w *encoding.Writer) {
	if v.Number != 0 {
		w.WriteUint(1, v.Number)
	}
	if v.Timestamp != 0 {
		w.WriteInt(2, v.Timestamp)
	}
	if v.ParentHash != nil {
		w.WriteHash(3, v.ParentHash)
	}
	if len(v.WitnessAddress) > 0 {
		w.WriteBytes(4, v.WitnessAddress)
	}
	if v.TxTrieRoot != nil {
		w.WriteHash(5, v.TxTrieRoot)
	}
	if len(v.WitnessSignature) > 0 {
		w.WriteBytes(6, v.WitnessSignature)
	}
	for _, txn := range v.Transactions {
		w.WriteValue(7, txn)
	}
}

func (v *Block) readFields(r *encoding.Reader) {
	if x, ok := r.ReadUint(1); ok {
		v.Number = x
	}
	if x, ok := r.ReadInt(2); ok {
		v.Timestamp = x
	}
	if x, ok := r.ReadHash(3); ok {
		v.ParentHash = x
	}
	if x, ok := r.ReadBytes(4); ok {
		v.WitnessAddress = x
	}
	if x, ok := r.ReadHash(5); ok {
		v.TxTrieRoot = x
	}
	if x, ok := r.ReadBytes(6); ok {
		v.WitnessSignature = x
	}
	v.Transactions = readList[Transaction](r, 7)
}

func (v *Block) MarshalBinary() ([]byte, error) { return marshal(v, fieldNames_Block) }

func (v *Block) UnmarshalBinary(data []byte) error {
	return v.UnmarshalBinaryFrom(bytes.NewReader(data))
}

func (v *Block) UnmarshalBinaryFrom(rd io.Reader) error {
	err := unmarshalFrom(rd, v, fieldNames_Block)
	if err != nil {
		return err
	}
	err = v.Validate()
	if err != nil {
		return errors.EncodingError.WithFormat("decode block: %w", err)
	}
	return nil
}
