// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package repository

import (
	"bytes"

	"gitlab.com/accumulatenetwork/vmstate/pkg/errors"
	"gitlab.com/accumulatenetwork/vmstate/pkg/types/chain"
)

// Shape is a chain-state format an entry can be decoded as.
type Shape string

const (
	ShapeAccount           Shape = "account"
	ShapeBytes             Shape = "bytes"
	ShapeTransaction       Shape = "transaction"
	ShapeBlock             Shape = "block"
	ShapeWitness           Shape = "witness"
	ShapeVotes             Shape = "votes"
	ShapeBlockIndex        Shape = "blockIndex"
	ShapeCode              Shape = "code"
	ShapeContract          Shape = "contract"
	ShapeAssetIssue        Shape = "assetIssue"
	ShapeProposal          Shape = "proposal"
	ShapeDynamicProperties Shape = "dynamicProperties"
)

// Decoder decodes a shape from bytes.
type Decoder[T any] func([]byte) (T, error)

func decodeBytes(data []byte) (*chain.BytesValue, error) {
	return chain.NewBytesValue(bytes.Clone(data)), nil
}

func decodeCode(data []byte) (*chain.Code, error) {
	return chain.NewCode(bytes.Clone(data)), nil
}

// Decode decodes the entry's bytes. Decode is not memoized; every call decodes
// the bytes again. It returns NotFound if the entry has no bytes and
// EncodingError if the decoder rejects them.
func Decode[T any](e *Entry, dec Decoder[T]) (T, error) {
	var z T
	data := e.Any()
	if len(data) == 0 {
		return z, errors.NotFound.With("entry has no data")
	}

	v, err := dec(data)
	if err != nil {
		return z, errors.EncodingError.Wrap(err)
	}
	return v, nil
}

// DecodeObject returns the entry's object as a T. It returns NotFound if the
// entry has no object and WrongType if the object is not a T.
func DecodeObject[T any](e *Entry) (T, error) {
	var z T
	obj := e.Object()
	if obj == nil {
		return z, errors.NotFound.With("entry has no object")
	}

	v, ok := obj.(T)
	if !ok {
		return z, errors.WrongType.WithFormat("want %T, got %T", z, obj)
	}
	return v, nil
}

// DecodeShape decodes the entry as the named shape.
func DecodeShape(e *Entry, shape Shape) (any, error) {
	switch shape {
	case ShapeAccount:
		return Decode(e, chain.UnmarshalAccount)
	case ShapeBytes, ShapeBlockIndex, ShapeDynamicProperties:
		return Decode(e, decodeBytes)
	case ShapeTransaction:
		return Decode(e, chain.UnmarshalTransaction)
	case ShapeBlock:
		return Decode(e, chain.UnmarshalBlock)
	case ShapeWitness:
		return Decode(e, chain.UnmarshalWitness)
	case ShapeVotes:
		return Decode(e, chain.UnmarshalVotes)
	case ShapeCode:
		return Decode(e, decodeCode)
	case ShapeAssetIssue:
		return Decode(e, chain.UnmarshalAssetIssue)
	case ShapeProposal:
		return Decode(e, chain.UnmarshalProposal)
	case ShapeContract:
		sc, err := DecodeObject[*chain.SmartContract](e)
		if err == nil {
			return chain.NewContract(sc), nil
		}
		if !errors.Is(err, errors.NotFound) {
			return nil, err
		}
		// Fall back to contract metadata that was read from storage
		sc, err = Decode(e, chain.UnmarshalSmartContract)
		if err != nil {
			return nil, err
		}
		return chain.NewContract(sc), nil
	}
	return nil, errors.BadRequest.WithFormat("unknown shape %q", shape)
}

// view decodes the entry, collapsing absent and undecodable data into nil.
func view[T any](e *Entry, shape Shape, dec Decoder[*T]) *T {
	v, err := Decode(e, dec)
	if err != nil {
		if !errors.Is(err, errors.NotFound) {
			mDecodeFailures.WithLabelValues(string(shape)).Inc()
		}
		return nil
	}
	return v
}

// Account decodes the entry as an account, or returns nil.
func (e *Entry) Account() *chain.Account {
	return view(e, ShapeAccount, chain.UnmarshalAccount)
}

// Bytes returns a copy of the entry's bytes as a generic blob, or nil.
func (e *Entry) Bytes() *chain.BytesValue {
	return view(e, ShapeBytes, decodeBytes)
}

// Transaction decodes the entry as a transaction. It returns nil if the entry
// is empty or the bytes are not a valid transaction.
func (e *Entry) Transaction() *chain.Transaction {
	return view(e, ShapeTransaction, chain.UnmarshalTransaction)
}

// Block decodes the entry as a block. It returns nil if the entry is empty or
// the bytes are not a valid block.
func (e *Entry) Block() *chain.Block {
	return view(e, ShapeBlock, chain.UnmarshalBlock)
}

func (e *Entry) Witness() *chain.Witness {
	return view(e, ShapeWitness, chain.UnmarshalWitness)
}

func (e *Entry) Votes() *chain.Votes {
	return view(e, ShapeVotes, chain.UnmarshalVotes)
}

// BlockIndex returns the entry's bytes as a block index record, or nil.
func (e *Entry) BlockIndex() *chain.BytesValue {
	return view(e, ShapeBlockIndex, decodeBytes)
}

func (e *Entry) Code() *chain.Code {
	return view(e, ShapeCode, decodeCode)
}

// Contract returns a view over the entry's contract metadata object, or nil
// if the entry holds no object. Contract panics if the entry holds an object
// that is not a [chain.SmartContract].
func (e *Entry) Contract() *chain.Contract {
	sc, err := DecodeObject[*chain.SmartContract](e)
	switch {
	case err == nil:
		return chain.NewContract(sc)
	case errors.Is(err, errors.NotFound):
		return nil
	default:
		panic(err)
	}
}

func (e *Entry) AssetIssue() *chain.AssetIssue {
	return view(e, ShapeAssetIssue, chain.UnmarshalAssetIssue)
}

func (e *Entry) Proposal() *chain.Proposal {
	return view(e, ShapeProposal, chain.UnmarshalProposal)
}

// DynamicProperties returns the entry's bytes as a dynamic property value, or
// nil.
func (e *Entry) DynamicProperties() *chain.BytesValue {
	return view(e, ShapeDynamicProperties, decodeBytes)
}
