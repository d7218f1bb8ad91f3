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

// StakeAddress identifies a delegation target: a network tag plus either a
// key-hash or script-hash credential.
type StakeAddress struct {
	Network    uint8
	Credential lcommon.Credential
}

// DRepChoiceKind enumerates the variants a stake address can delegate its
// vote to.
type DRepChoiceKind uint8

const (
	DRepChoiceKey DRepChoiceKind = iota
	DRepChoiceScript
	DRepChoiceAbstain
	DRepChoiceNoConfidence
)

// DRepChoice mirrors the CDDL `drep` choice: a credential for Key/Script,
// or one of the two sentinel values.
type DRepChoice struct {
	Kind       DRepChoiceKind
	Credential lcommon.Blake2b224
}

// IsSentinel reports whether this choice is Abstain or NoConfidence (no
// credential attached).
func (d DRepChoice) IsSentinel() bool {
	return d.Kind == DRepChoiceAbstain || d.Kind == DRepChoiceNoConfidence
}

// StakeAddressRecord is the per-address value held by the stake-address
// map. See spec.md §3 for the invariants that bind Registered to the
// deposit accounting in Pots.
type StakeAddressRecord struct {
	Registered     bool
	UtxoValue      uint64
	Rewards        uint64
	DelegatedPool  *lcommon.PoolKeyHash
	DelegatedDRep  *DRepChoice
	DepositLovelace uint64
}

// Clone returns a value copy suitable for a reader snapshot; the record
// has no nested mutable state beyond the two pointer fields, which are
// replaced (not shared) so a concurrent write to the original cannot be
// observed through the clone.
func (r *StakeAddressRecord) Clone() *StakeAddressRecord {
	if r == nil {
		return nil
	}
	out := *r
	if r.DelegatedPool != nil {
		p := *r.DelegatedPool
		out.DelegatedPool = &p
	}
	if r.DelegatedDRep != nil {
		d := *r.DelegatedDRep
		out.DelegatedDRep = &d
	}
	return &out
}

// RegistrationChangeKind distinguishes the two events the rewards
// computation needs to replicate the early-Shelley deregistration timing
// quirk (spec.md §4.3, "Background rewards computation").
type RegistrationChangeKind uint8

const (
	RegistrationChangeRegister RegistrationChangeKind = iota
	RegistrationChangeDeregister
)

// RegistrationChangeEvent records one registration/deregistration as it
// happens, so epoch boundaries can replay the set of addresses that
// toggled state across the mark/set/current-epoch window.
type RegistrationChangeEvent struct {
	Address StakeAddress
	Kind    RegistrationChangeKind
	Epoch   uint64
	Slot    uint64
}
