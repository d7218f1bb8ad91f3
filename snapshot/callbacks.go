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

// Package snapshot implements the single-pass streaming decoder for the
// ledger-state bootstrap file (spec.md §4.1): a tuple
// [epoch, prev_block_counts, cur_block_counts, new_epoch_state,
// pool_distr, stake_distr], with new_epoch_state itself a tuple of
// [account_state, ledger_state, pparams_current, pparams_prev,
// snapshots, non_myopic].
package snapshot

import (
	lcommon "github.com/blinklabs-io/gouroboros/ledger/common"
	"github.com/input-output-hk/acropolis-sub000/ledgermodel"
)

// GovernanceState is the bulk payload handed to Callbacks.OnGovernanceState:
// current proposals, enacted/expired ids, committee and constitution, per
// spec.md §4.1 step 6. The decoder skips the pulsing DRep state item, so
// PulsingDRepState is always nil in the payload it delivers.
type GovernanceState struct {
	Proposals        []ledgermodel.GovernanceProposal
	EnactedIDs       []ledgermodel.GovActionID
	ExpiredIDs       []ledgermodel.GovActionID
	Committee        []ledgermodel.CommitteeMember
	Constitution     *ledgermodel.Constitution
	PulsingDRepState *ledgermodel.PulsingRewardState
}

// AccountsState is the bulk payload handed to Callbacks.OnAccounts: the
// treasury and reserves read in step 3, with utxo_state's deposits and
// donations from step 5 already applied, and the unified delegation map
// read as part of cert_state in step 4.
type AccountsState struct {
	Pots        ledgermodel.Pots
	DRepRegs    []ledgermodel.DRepRegistration
	Delegations map[ledgermodel.StakeAddress]delegationEntry
}

// delegationEntry mirrors cert_state's unified delegation map value shape:
// stake credential -> {rewards_and_deposit?, pointers, pool?, drep?}.
type delegationEntry struct {
	DepositLovelace uint64
	HasDeposit      bool
	Pool            *lcommon.PoolKeyHash
	DRep            *ledgermodel.DRepChoice
}

// PoolsState is the bulk payload handed to Callbacks.OnPools.
type PoolsState struct {
	Registrations []ledgermodel.PoolRegistration
	Retirements   ledgermodel.PoolRetirementSchedule
}

// Callbacks receives the decoded pieces in the order spec.md §4.1
// describes. Every field is a plain function, never returning an error:
// the codec's own failures surface solely through Bootstrap's return
// value, as a ledgermodel.DecodeError.
type Callbacks struct {
	OnUTXO            func(ledgermodel.UtxoEntry)
	OnPools           func(PoolsState)
	OnDReps           func([]ledgermodel.DRepRegistration)
	OnAccounts        func(AccountsState)
	OnGovernanceState func(GovernanceState)
	OnSnapshots       func(ledgermodel.EpochSnapshots)
	OnMetadata        func(epoch uint64, feesCumulative uint64)
	OnComplete        func()
}

func (cb Callbacks) utxo(e ledgermodel.UtxoEntry) {
	if cb.OnUTXO != nil {
		cb.OnUTXO(e)
	}
}

func (cb Callbacks) pools(p PoolsState) {
	if cb.OnPools != nil {
		cb.OnPools(p)
	}
}

func (cb Callbacks) dreps(d []ledgermodel.DRepRegistration) {
	if cb.OnDReps != nil {
		cb.OnDReps(d)
	}
}

func (cb Callbacks) accounts(a AccountsState) {
	if cb.OnAccounts != nil {
		cb.OnAccounts(a)
	}
}

func (cb Callbacks) governanceState(g GovernanceState) {
	if cb.OnGovernanceState != nil {
		cb.OnGovernanceState(g)
	}
}

func (cb Callbacks) snapshots(s ledgermodel.EpochSnapshots) {
	if cb.OnSnapshots != nil {
		cb.OnSnapshots(s)
	}
}

func (cb Callbacks) metadata(epoch, fees uint64) {
	if cb.OnMetadata != nil {
		cb.OnMetadata(epoch, fees)
	}
}

func (cb Callbacks) complete() {
	if cb.OnComplete != nil {
		cb.OnComplete()
	}
}
