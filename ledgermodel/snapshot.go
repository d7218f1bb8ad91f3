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

// PoolSnapshotEntry is one pool's row inside an EpochSnapshot: its
// registration as of the snapshot, delegator list, blocks minted in the
// epoch the snapshot captures, and reward account.
type PoolSnapshotEntry struct {
	Registration  *lcommon.PoolRegistrationCertificate
	Delegators    int
	BlocksMinted  uint64
	RewardAccount StakeAddress
}

// EpochSnapshot is one of the three rolling reward snapshots (mark/set/go)
// described in spec.md §3 and §4.3.
type EpochSnapshot struct {
	Epoch                  uint64
	Pools                  map[lcommon.PoolKeyHash]PoolSnapshotEntry
	Pots                   Pots
	TotalNonOBFTBlocks     uint64
	RegistrationChanges    []RegistrationChangeEvent
	StakeByAddress         map[StakeAddress]uint64
	RewardsByAddress       map[StakeAddress]uint64
	DelegationByAddress    map[StakeAddress]lcommon.PoolKeyHash
}

// ActiveStakeTotal sums UTXO-attributed stake over every address recorded
// in this snapshot, for the §8 SPDD conservation check.
func (s *EpochSnapshot) ActiveStakeTotal() uint64 {
	var total uint64
	for _, v := range s.StakeByAddress {
		total += v
	}
	return total
}

// Clone returns a deep-enough copy for a reader that must not observe a
// subsequent push cycling mark/set/go.
func (s *EpochSnapshot) Clone() *EpochSnapshot {
	if s == nil {
		return nil
	}
	out := &EpochSnapshot{
		Epoch:              s.Epoch,
		Pots:               s.Pots,
		TotalNonOBFTBlocks:  s.TotalNonOBFTBlocks,
		Pools:               make(map[lcommon.PoolKeyHash]PoolSnapshotEntry, len(s.Pools)),
		StakeByAddress:      make(map[StakeAddress]uint64, len(s.StakeByAddress)),
		RewardsByAddress:    make(map[StakeAddress]uint64, len(s.RewardsByAddress)),
		DelegationByAddress: make(map[StakeAddress]lcommon.PoolKeyHash, len(s.DelegationByAddress)),
	}
	for k, v := range s.Pools {
		out.Pools[k] = v
	}
	for k, v := range s.StakeByAddress {
		out.StakeByAddress[k] = v
	}
	for k, v := range s.RewardsByAddress {
		out.RewardsByAddress[k] = v
	}
	for k, v := range s.DelegationByAddress {
		out.DelegationByAddress[k] = v
	}
	out.RegistrationChanges = append(
		[]RegistrationChangeEvent(nil), s.RegistrationChanges...,
	)
	return out
}

// EpochSnapshots holds the linked mark/set/go triple plus the cycling
// logic spec.md §3 requires at an epoch boundary: "go := set; set := mark;
// mark := new".
type EpochSnapshots struct {
	Mark *EpochSnapshot
	Set  *EpochSnapshot
	Go   *EpochSnapshot
}

// Push installs a newly captured snapshot as mark, cycling the older two
// back.
func (e *EpochSnapshots) Push(next *EpochSnapshot) {
	e.Go = e.Set
	e.Set = e.Mark
	e.Mark = next
}

// PulsingRewardState is the mid-computation snapshot of the pulsing
// reward update (spec.md §4.1 item 8; SPEC_FULL.md §3 supplement).
type PulsingRewardState struct {
	Epoch       uint64
	Complete    bool
	DeltaTreasury int64
	DeltaReserves int64
	DeltaFees     int64
	PerCredential map[lcommon.Blake2b224]uint64
}

// NonMyopicMemberRewards models the snapshot's non_myopic item. The
// snapshot decoder skips that item, so no code populates or reads this
// type (SPEC_FULL.md §3 supplement).
type NonMyopicMemberRewards struct {
	Estimates map[lcommon.PoolKeyHash]uint64
}
