// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ledgermodel

import (
	lcommon "github.com/blinklabs-io/gouroboros/ledger/common"
)

// GovActionID identifies a governance action by the transaction that
// proposed it plus the action's index within that transaction.
type GovActionID struct {
	TxHash lcommon.Blake2b256
	Index  uint32
}

// GovActionKind enumerates the governance action payload shapes the
// engine stores; it does not interpret payloads beyond what bootstrap and
// enactment bookkeeping require.
type GovActionKind uint8

const (
	GovActionParameterChange GovActionKind = iota
	GovActionHardForkInitiation
	GovActionTreasuryWithdrawals
	GovActionNoConfidence
	GovActionUpdateCommittee
	GovActionNewConstitution
	GovActionInfoAction
)

// GovActionPayload is the decoded body of a governance action.
type GovActionPayload struct {
	Kind            GovActionKind
	ParameterUpdate *lcommon.ProtocolParameterUpdate
	NewMembers      map[lcommon.Blake2b224]uint64
	Withdrawals     map[StakeAddress]uint64
	ConstitutionURL string
}

// GovernanceProposal is a single proposal on the books, per spec.md §3.
type GovernanceProposal struct {
	Deposit       uint64
	RewardAccount StakeAddress
	ActionID      GovActionID
	Payload       GovActionPayload
	Anchor        *lcommon.GovAnchor
}

// DRepRegistration is the per-DRep record held by the DRep registry.
type DRepRegistration struct {
	Credential lcommon.Blake2b224
	Expiry     uint64
	Anchor     *lcommon.GovAnchor
	Deposit    uint64
	Delegators map[StakeAddress]bool
}

// CommitteeMember mirrors the committee bookkeeping the teacher already
// models in its mock ledger state (ledger/governance.go): cold/hot
// credentials plus resignation.
type CommitteeMember struct {
	ColdCredential lcommon.Credential
	HotCredential  lcommon.Credential
	ExpiryEpoch    uint64
	Resigned       bool
	ResignAnchor   *lcommon.GovAnchor
}

// Constitution is the current constitution anchor plus an optional
// guardrail script policy hash.
type Constitution struct {
	Anchor     lcommon.GovAnchor
	PolicyHash *lcommon.Blake2b224
}
