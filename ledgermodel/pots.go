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

// Pots holds the three accounting reservoirs tracked by the engine.
// Unlike lcommon.AdaPots (Reserves/Treasury/Rewards), the engine also
// tracks Deposits directly, since §3's core invariant binds stake and
// pool deposits to this pot.
type Pots struct {
	Reserves uint64
	Treasury uint64
	Deposits uint64
}

// ToAdaPots projects onto the gouroboros AdaPots shape, which carries
// only Reserves/Treasury/Rewards; the accounts reward computation does
// not call it.
// The "Rewards" field there is the residual rewards pot mid-calculation,
// not this engine's Deposits, so it is supplied separately.
func (p Pots) ToAdaPots(rewardsPot uint64) lcommon.AdaPots {
	return lcommon.AdaPots{
		Reserves: p.Reserves,
		Treasury: p.Treasury,
		Rewards:  rewardsPot,
	}
}

// ApplyDelta applies a signed delta to one of the three pots. A negative
// delta that would underflow the pot is rejected and the pot left
// unchanged, per spec.md §4.3 "Per-block pot deltas".
func (p *Pots) ApplyDelta(pot PotKind, delta int64) error {
	target := p.field(pot)
	if delta < 0 {
		dec := uint64(-delta)
		if dec > *target {
			return ErrUnderflow
		}
		*target -= dec
		return nil
	}
	inc := uint64(delta)
	if *target > ^uint64(0)-inc {
		return ErrOverflow
	}
	*target += inc
	return nil
}

func (p *Pots) field(pot PotKind) *uint64 {
	switch pot {
	case PotReserves:
		return &p.Reserves
	case PotTreasury:
		return &p.Treasury
	default:
		return &p.Deposits
	}
}

// PotKind identifies one of the three pots for ApplyDelta.
type PotKind uint8

const (
	PotReserves PotKind = iota
	PotTreasury
	PotDeposits
)

// MaxLovelaceSupply is the fixed maximum ADA supply, expressed in
// lovelace (45 billion ADA), used by the §8 conservation invariant.
const MaxLovelaceSupply uint64 = 45_000_000_000_000_000

// ByronReservesAdjustment derives the one-off reserves correction applied
// at the Byron→Shelley boundary from the pre-Shelley accounting, instead
// of hard-coding the literal the original source patches in (spec.md §9,
// first open question). byronUtxoTotal is the sum of UTXO value plus fees
// collected under Byron; shelleyInitialReserves is the reserves figure
// the Shelley genesis declares.
func ByronReservesAdjustment(byronUtxoTotal, shelleyInitialReserves uint64) int64 {
	expected := MaxLovelaceSupply - byronUtxoTotal
	if expected >= shelleyInitialReserves {
		return int64(expected - shelleyInitialReserves)
	}
	return -int64(shelleyInitialReserves - expected)
}
