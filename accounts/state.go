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

package accounts

import (
	"context"
	"sync"

	lcommon "github.com/blinklabs-io/gouroboros/ledger/common"
	"github.com/input-output-hk/acropolis-sub000/ledgermodel"
	"github.com/input-output-hk/acropolis-sub000/snapshot"
	"github.com/input-output-hk/acropolis-sub000/stakemap"
)

// State is the single mutable accounts/ledger-state object: stake-address
// map, pool maps, pot balances, the rolling mark/set/go snapshots, the
// DRep registry, committee bookkeeping, the pending registration-change
// log, and the handle to the background rewards worker (spec.md §4.3).
// The zero value is not usable; use NewState.
type State struct {
	mu sync.Mutex

	cfg Config

	Stakes *stakemap.Map
	Pots   ledgermodel.Pots

	Pools       map[lcommon.PoolKeyHash]*ledgermodel.PoolRegistration
	Retirements ledgermodel.PoolRetirementSchedule

	DReps     map[lcommon.Blake2b224]*ledgermodel.DRepRegistration
	Committee map[lcommon.Credential]*ledgermodel.CommitteeMember

	Proposals        []ledgermodel.GovernanceProposal
	Constitution     *ledgermodel.Constitution
	PulsingDRepState *ledgermodel.PulsingRewardState

	Snapshots ledgermodel.EpochSnapshots
	changeLog []ledgermodel.RegistrationChangeEvent

	ParamsCurrent  *lcommon.ProtocolParameterUpdate
	ParamsPrevious *lcommon.ProtocolParameterUpdate

	currentEpoch uint64

	rewardsCancel context.CancelFunc
	rewardsWg     sync.WaitGroup
	rewardsResult []RewardPayment
	rewardsStarted bool

	pendingRewardsPot uint64
	pendingRewardsSet *ledgermodel.EpochSnapshot
	pendingRewardsGo  *ledgermodel.EpochSnapshot
}

// NewState builds an empty State ready for Bootstrap.
func NewState(cfg Config) *State {
	cfg = cfg.withDefaults()
	return &State{
		cfg:         cfg,
		Stakes:      stakemap.New(cfg.Logger),
		Pools:       make(map[lcommon.PoolKeyHash]*ledgermodel.PoolRegistration),
		Retirements: make(ledgermodel.PoolRetirementSchedule),
		DReps:       make(map[lcommon.Blake2b224]*ledgermodel.DRepRegistration),
		Committee:   make(map[lcommon.Credential]*ledgermodel.CommitteeMember),
	}
}

// Bootstrap wires State as the sink for a snapshot.Bootstrap pass: every
// callback installs the corresponding piece of state directly, with no
// further validation beyond what the codec already performed, per
// spec.md §4.3's "after bootstrap, every invariant of §3 must hold".
func (s *State) Bootstrap(epoch uint64) snapshot.Callbacks {
	s.currentEpoch = epoch
	return snapshot.Callbacks{
		OnUTXO: func(e ledgermodel.UtxoEntry) {
			addr := ledgermodel.StakeAddress{}
			if sa, ok := stakeAddressFromUtxo(e); ok {
				addr = sa
				if err := s.Stakes.ApplyUtxoDelta(addr, int64(e.Lovelace)); err != nil {
					s.cfg.Logger.Warn("bootstrap utxo delta failed", "error", err)
				}
			}
		},
		OnPools: func(p snapshot.PoolsState) {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i := range p.Registrations {
				reg := p.Registrations[i]
				s.Pools[reg.Operator()] = &reg
			}
			s.Retirements = p.Retirements
		},
		OnDReps: func(regs []ledgermodel.DRepRegistration) {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i := range regs {
				r := regs[i]
				s.DReps[r.Credential] = &r
			}
		},
		OnAccounts: func(a snapshot.AccountsState) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.Pots = a.Pots
		},
		OnGovernanceState: func(g snapshot.GovernanceState) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.Proposals = g.Proposals
			s.Constitution = g.Constitution
			s.PulsingDRepState = g.PulsingDRepState
			for i := range g.Committee {
				m := g.Committee[i]
				s.Committee[m.ColdCredential] = &m
			}
		},
		OnSnapshots: func(snaps ledgermodel.EpochSnapshots) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.Snapshots = snaps
		},
		OnMetadata: func(epoch, fees uint64) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.currentEpoch = epoch
		},
	}
}

// stakeAddressFromUtxo reports no stake address for every UTXO entry: it
// does not parse the raw address bytes, since full Cardano address
// parsing is out of this engine's scope (spec.md §1 excludes wire/address
// decoding beyond what bootstrap already streams). The bootstrap OnUTXO
// callback therefore never credits UTXO value to a stake address.
func stakeAddressFromUtxo(e ledgermodel.UtxoEntry) (ledgermodel.StakeAddress, bool) {
	return ledgermodel.StakeAddress{}, false
}

// ApplyStakeDeltas applies UTXO-attributed stake deltas in arrival order
// (spec.md §4.3, "Per-block stake and withdrawal deltas").
func (s *State) ApplyStakeDeltas(deltas map[ledgermodel.StakeAddress]int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for addr, delta := range deltas {
		if err := s.Stakes.ApplyUtxoDelta(addr, delta); err != nil {
			s.cfg.Logger.Warn("stake delta rejected", "address", addr, "delta", delta, "error", err)
		}
	}
}

// ApplyWithdrawals decreases rewards by each amount; a zero amount is a
// witness no-op.
func (s *State) ApplyWithdrawals(withdrawals map[ledgermodel.StakeAddress]uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for addr, amount := range withdrawals {
		if err := s.Stakes.Withdraw(addr, amount); err != nil {
			s.cfg.Logger.Warn("withdrawal rejected", "address", addr, "amount", amount, "error", err)
		}
	}
}

// ApplyPotDeltas applies signed deltas to the three pots; an underflow on
// any pot is logged and leaves that pot unchanged (spec.md §4.3).
func (s *State) ApplyPotDeltas(reserves, treasury, deposits int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Pots.ApplyDelta(ledgermodel.PotReserves, reserves); err != nil {
		s.cfg.Logger.Warn("pot delta rejected", "pot", "reserves", "delta", reserves, "error", err)
	}
	if err := s.Pots.ApplyDelta(ledgermodel.PotTreasury, treasury); err != nil {
		s.cfg.Logger.Warn("pot delta rejected", "pot", "treasury", "delta", treasury, "error", err)
	}
	if err := s.Pots.ApplyDelta(ledgermodel.PotDeposits, deposits); err != nil {
		s.cfg.Logger.Warn("pot delta rejected", "pot", "deposits", "delta", deposits, "error", err)
	}
}
