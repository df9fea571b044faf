// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package chain_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/vmstate/pkg/errors"
	. "gitlab.com/accumulatenetwork/vmstate/pkg/types/chain"
)

func TestAccountWithVotes(t *testing.T) {
	acct := &Account{
		Type:    AccountTypeContract,
		Address: []byte{0x41, 1, 2, 3},
		Name:    "alice",
		Balance: 1_000_000,
		Votes: []*Vote{
			{Address: []byte{0x41, 9}, Count: 5},
			{Address: []byte{0x41, 8}, Count: 7},
		},
	}
	b, err := acct.MarshalBinary()
	require.NoError(t, err)

	got, err := UnmarshalAccount(b)
	require.NoError(t, err)
	require.True(t, acct.Equal(got))

	// Copies are deep
	c := got.Copy()
	c.Votes[0].Count++
	require.False(t, c.Equal(got))
}

func TestTransactionRejectsUnknownContract(t *testing.T) {
	txn := &Transaction{Parameter: []byte{1}}
	b, err := txn.MarshalBinary()
	require.NoError(t, err)

	_, err = UnmarshalTransaction(b)
	require.ErrorIs(t, err, errors.EncodingError)

	txn.ContractType = ContractTypeTransfer
	b, err = txn.MarshalBinary()
	require.NoError(t, err)
	got, err := UnmarshalTransaction(b)
	require.NoError(t, err)
	require.True(t, txn.Equal(got))
}

func TestTransactionRejectsGarbage(t *testing.T) {
	_, err := UnmarshalTransaction([]byte("not a transaction"))
	require.Error(t, err)
	require.Equal(t, errors.EncodingError, errors.Code(err))
}

func TestTransactionIDIgnoresSignatures(t *testing.T) {
	txn := &Transaction{ContractType: ContractTypeTriggerSmartContract, Parameter: []byte{1, 2}}
	id1, err := txn.ID()
	require.NoError(t, err)

	txn.Signatures = [][]byte{{0xAA}}
	id2, err := txn.ID()
	require.NoError(t, err)
	require.Equal(t, id1, id2)
	require.Len(t, txn.Signatures, 1)
}

func TestBlock(t *testing.T) {
	parent := [32]byte{1}
	blk := &Block{
		Number:     10,
		ParentHash: &parent,
		Transactions: []*Transaction{
			{ContractType: ContractTypeTransfer, Parameter: []byte{1}},
		},
	}
	b, err := blk.MarshalBinary()
	require.NoError(t, err)
	got, err := UnmarshalBlock(b)
	require.NoError(t, err)
	require.True(t, blk.Equal(got))

	t.Run("Missing parent", func(t *testing.T) {
		blk := blk.Copy()
		blk.ParentHash = nil
		b, err := blk.MarshalBinary()
		require.NoError(t, err)
		_, err = UnmarshalBlock(b)
		require.ErrorIs(t, err, errors.EncodingError)
	})

	t.Run("Invalid transaction", func(t *testing.T) {
		blk := blk.Copy()
		blk.Transactions[0].ContractType = ContractTypeUnknown
		b, err := blk.MarshalBinary()
		require.NoError(t, err)
		_, err = UnmarshalBlock(b)
		require.Error(t, err)
	})
}

func TestContractView(t *testing.T) {
	sc := &SmartContract{Name: "token", ConsumeUserResourcePercent: 150}
	c := NewContract(sc)
	require.Same(t, sc, c.Instance())
	require.Equal(t, int64(100), c.ConsumeUserResourcePercent())
	require.Equal(t, int64(DefaultOriginEnergyLimit), c.OriginEnergyLimit())

	sc.ConsumeUserResourcePercent = -3
	require.Equal(t, int64(0), c.ConsumeUserResourcePercent())

	b, err := c.MarshalBinary()
	require.NoError(t, err)
	got, err := UnmarshalSmartContract(b)
	require.NoError(t, err)
	require.True(t, NewContract(got).Equal(c))
}

func TestProposal(t *testing.T) {
	p := &Proposal{
		ID:         3,
		Parameters: []*ProposalParameter{{Key: 0, Value: 5}, {Key: 9, Value: -1}},
		Approvals:  [][]byte{{1}, {2}},
		State:      ProposalStateApproved,
	}
	b, err := p.MarshalBinary()
	require.NoError(t, err)
	got, err := UnmarshalProposal(b)
	require.NoError(t, err)
	require.True(t, p.Equal(got))

	v, ok := got.Parameter(9)
	require.True(t, ok)
	require.Equal(t, int64(-1), v)
	v, ok = got.Parameter(0)
	require.True(t, ok)
	require.Equal(t, int64(5), v)
	require.True(t, got.HasApproval([]byte{2}))
	require.False(t, got.HasApproval([]byte{3}))
}

func TestBytesValueUint64(t *testing.T) {
	v, err := NewBytesValue([]byte{0x01, 0x00}).Uint64()
	require.NoError(t, err)
	require.Equal(t, uint64(256), v)

	_, err = NewBytesValue(make([]byte, 9)).Uint64()
	require.Error(t, err)
}
