// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package chain

import "fmt"

// AccountType is the type of an account.
type AccountType uint64

const (
	AccountTypeNormal AccountType = iota
	AccountTypeAssetIssue
	AccountTypeContract
)

// ContractType is the type of the contract a transaction invokes.
type ContractType uint64

const (
	// ContractTypeUnknown is never valid on the wire.
	ContractTypeUnknown ContractType = iota
	ContractTypeTransfer
	ContractTypeTransferAsset
	ContractTypeVoteWitness
	ContractTypeWitnessCreate
	ContractTypeAssetIssue
	ContractTypeProposalCreate
	ContractTypeProposalApprove
	ContractTypeCreateSmartContract
	ContractTypeTriggerSmartContract
)

// ProposalState is the state of a governance proposal.
type ProposalState uint64

const (
	ProposalStatePending ProposalState = iota
	ProposalStateDisapproved
	ProposalStateApproved
	ProposalStateCanceled
)

var accountTypeNames = [...]string{"normal", "assetIssue", "contract"}

var contractTypeNames = [...]string{
	"unknown", "transfer", "transferAsset", "voteWitness", "witnessCreate",
	"assetIssue", "proposalCreate", "proposalApprove", "createSmartContract",
	"triggerSmartContract",
}

var proposalStateNames = [...]string{"pending", "disapproved", "approved", "canceled"}

func (v AccountType) Valid() bool { return int(v) < len(accountTypeNames) }

func (v AccountType) String() string {
	if v.Valid() {
		return accountTypeNames[v]
	}
	return fmt.Sprintf("AccountType:%d", uint64(v))
}

// Valid returns true if the type is known and is not ContractTypeUnknown.
func (v ContractType) Valid() bool {
	return v != ContractTypeUnknown && int(v) < len(contractTypeNames)
}

func (v ContractType) String() string {
	if int(v) < len(contractTypeNames) {
		return contractTypeNames[v]
	}
	return fmt.Sprintf("ContractType:%d", uint64(v))
}

func (v ProposalState) Valid() bool { return int(v) < len(proposalStateNames) }

func (v ProposalState) String() string {
	if v.Valid() {
		return proposalStateNames[v]
	}
	return fmt.Sprintf("ProposalState:%d", uint64(v))
}
