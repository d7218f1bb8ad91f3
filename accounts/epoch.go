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

	lcommon "github.com/blinklabs-io/gouroboros/ledger/common"
	"github.com/input-output-hk/acropolis-sub000/ledgermodel"
)

// EnterEpoch runs the six-step epoch-boundary sequence spec.md §4.3
// describes for the N -> N+1 transition. totalFeesPrevious and
// perPoolBlockCounts describe the epoch just ending (N); the returned
// payments are the byproduct of retirement refunds (step 6), surfaced to
// downstream consumers immediately — the bulk of an epoch's rewards
// arrive later, asynchronously, once runRewardsWorker completes.
func (s *State) EnterEpoch(newEpoch, totalFeesPrevious uint64, perPoolBlockCounts map[lcommon.PoolKeyHash]uint64) []RewardPayment {
	s.mu.Lock()

	// Step 1: monetary change, reserves -> rewards pot -> treasury cut.
	// The residual pool-rewards pot is held (not yet debited from
	// reserves) until the background worker reports how much of it was
	// actually paid to still-registered accounts; see rewards.go. The
	// treasury cut itself leaves reserves here, in the same step it
	// lands in treasury, so the §8 conservation invariant holds at this
	// boundary rather than only once rewards are eventually paid out.
	_, treasuryCut, poolRewardsPot := s.monetaryExpansion()
	if err := s.Pots.ApplyDelta(ledgermodel.PotTreasury, int64(treasuryCut)); err != nil {
		s.cfg.Logger.Error("treasury cut overflowed", "error", err)
	}
	if err := s.Pots.ApplyDelta(ledgermodel.PotReserves, -int64(treasuryCut)); err != nil {
		s.cfg.Logger.Error("treasury cut underflowed reserves", "error", err)
	}

	// Step 2: push a new mark snapshot, cycling go := set; set := mark.
	newMark := s.captureSnapshot(newEpoch-1, totalFeesPrevious, perPoolBlockCounts)
	prevSet := s.Snapshots.Set
	prevGo := s.Snapshots.Go
	s.Snapshots.Push(newMark)

	// Step 3: pay pool-retirement refunds scheduled for the epoch just
	// entered.
	var payments []RewardPayment
	for pool, retireEpoch := range s.Retirements {
		if retireEpoch != newEpoch {
			continue
		}
		reg, stillRegistered := s.Pools[pool]
		var refundTo ledgermodel.StakeAddress
		var toTreasury bool
		if stillRegistered {
			refundTo = reg.RewardAccount()
		} else {
			toTreasury = true
		}
		depositRefund := s.poolDeposit(pool)
		if toTreasury {
			if err := s.Pots.ApplyDelta(ledgermodel.PotTreasury, int64(depositRefund)); err != nil {
				s.cfg.Logger.Error("retirement refund to treasury overflowed", "pool", pool, "error", err)
			}
		} else if err := s.Stakes.AddReward(refundTo, depositRefund); err != nil {
			s.cfg.Logger.Warn("retirement refund credit failed", "pool", pool, "error", err)
		} else {
			payments = append(payments, RewardPayment{Account: refundTo, Amount: depositRefund, Kind: RewardPoolRefund, Pool: pool})
		}
		if err := s.Pots.ApplyDelta(ledgermodel.PotDeposits, -int64(depositRefund)); err != nil {
			s.cfg.Logger.Error("retirement deposit refund underflowed pot", "pool", pool, "error", err)
		}
	}

	// Step 4: launch the background rewards computation for epoch N-1.
	// Its gate (stability window) and cancellation are driven by
	// NotifyBlock/Rollback, not started here directly.
	s.pendingRewardsPot = poolRewardsPot
	s.pendingRewardsSet = prevSet
	s.pendingRewardsGo = prevGo
	s.rewardsStarted = false

	// Step 5: finalise retirements at the just-entered epoch.
	for pool, retireEpoch := range s.Retirements {
		if retireEpoch != newEpoch {
			continue
		}
		delete(s.Pools, pool)
		delete(s.Retirements, pool)
		s.Stakes.RemoveAllDelegationsTo(pool)
	}

	s.currentEpoch = newEpoch
	s.changeLog = nil

	s.mu.Unlock()

	// Step 6.
	return payments
}

func (s *State) poolDeposit(pool lcommon.PoolKeyHash) uint64 {
	// Pool deposits are tracked in aggregate within pots.deposits, not
	// per-pool (spec.md §3 keeps only the aggregate); the engine uses the
	// network's fixed pool-deposit amount as configured, matching the
	// same amount every registration certificate paid.
	return s.cfg.PoolDeposit
}

func (s *State) captureSnapshot(epoch, fees uint64, perPoolBlockCounts map[lcommon.PoolKeyHash]uint64) *ledgermodel.EpochSnapshot {
	snap := &ledgermodel.EpochSnapshot{
		Epoch:               epoch,
		Pools:               make(map[lcommon.PoolKeyHash]ledgermodel.PoolSnapshotEntry, len(s.Pools)),
		Pots:                s.Pots,
		StakeByAddress:      make(map[ledgermodel.StakeAddress]uint64),
		RewardsByAddress:    make(map[ledgermodel.StakeAddress]uint64),
		DelegationByAddress: make(map[ledgermodel.StakeAddress]lcommon.PoolKeyHash),
		RegistrationChanges: append([]ledgermodel.RegistrationChangeEvent(nil), s.changeLog...),
	}
	for pool, reg := range s.Pools {
		var total uint64
		for _, count := range perPoolBlockCounts {
			total += count
		}
		snap.TotalNonOBFTBlocks = total
		snap.Pools[pool] = ledgermodel.PoolSnapshotEntry{
			Registration:  reg.Cert,
			BlocksMinted:  perPoolBlockCounts[pool],
			RewardAccount: reg.RewardAccount(),
		}
	}
	for addr, rec := range s.Stakes.Clone() {
		if !rec.Registered {
			continue
		}
		snap.StakeByAddress[addr] = rec.UtxoValue
		snap.RewardsByAddress[addr] = rec.Rewards
		if rec.DelegatedPool != nil {
			snap.DelegationByAddress[addr] = *rec.DelegatedPool
		}
	}
	return snap
}

// NotifyBlock advances the engine's view of block-slot progress within
// the current epoch. Once epochSlot exceeds the configured stability
// window and a rewards computation is pending, the background worker is
// launched (spec.md §4.3, "Start condition").
func (s *State) NotifyBlock(epochSlot uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rewardsStarted || s.pendingRewardsSet == nil {
		return
	}
	if epochSlot <= s.cfg.StabilityWindowSlots {
		return
	}
	s.rewardsStarted = true
	ctx, cancel := context.WithCancel(context.Background())
	s.rewardsCancel = cancel
	s.rewardsWg.Add(1)
	go s.runRewardsWorker(ctx, s.pendingRewardsPot, s.pendingRewardsSet, s.pendingRewardsGo)
}

// Rollback cancels any in-flight rewards computation and blocks until it
// has exited, per spec.md §5's drain requirement, so the state never
// observes a result computed against a snapshot from a chain that no
// longer exists.
func (s *State) Rollback() {
	s.mu.Lock()
	cancel := s.rewardsCancel
	started := s.rewardsStarted
	s.mu.Unlock()

	if started && cancel != nil {
		cancel()
	}
	s.rewardsWg.Wait()

	s.mu.Lock()
	s.rewardsStarted = false
	s.rewardsCancel = nil
	s.mu.Unlock()
}

// HandleParameters compares newParams against the currently held
// parameters and, when different, shifts current to previous before
// installing new (spec.md §4.3, "Protocol parameter updates").
func (s *State) HandleParameters(newParams *lcommon.ProtocolParameterUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if paramsEqual(s.ParamsCurrent, newParams) {
		return
	}
	s.ParamsPrevious = s.ParamsCurrent
	s.ParamsCurrent = newParams
}

func paramsEqual(a, b *lcommon.ProtocolParameterUpdate) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
