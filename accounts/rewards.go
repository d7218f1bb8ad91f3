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
	"math/big"

	lcommon "github.com/blinklabs-io/gouroboros/ledger/common"
	"github.com/input-output-hk/acropolis-sub000/ledgermodel"
)

// RewardKind distinguishes the three payment categories spec.md §4.3's
// background rewards computation can emit.
type RewardKind uint8

const (
	RewardLeader RewardKind = iota
	RewardMember
	RewardPoolRefund
)

// RewardPayment is one entry of the {account, amount, kind, pool} tuple
// the background rewards computation returns.
type RewardPayment struct {
	Account ledgermodel.StakeAddress
	Amount  uint64
	Kind    RewardKind
	Pool    lcommon.PoolKeyHash
}

// monetaryExpansion computes R = rho*reserves, the treasury cut tau*R, and
// the residual pool-rewards pot (1-tau)*R, per spec.md §4.3 step 1: "first
// reserves->rewards pot, then tau cut, then pool distribution", using
// math/big.Rat throughout so no intermediate is rounded before the final
// lovelace conversion. Decentralisation's performance scaling (eta) is
// fixed at 1: this engine only bootstraps Conway-era-or-later snapshots
// (snapshot.minSupportedEraEpoch), and the decentralisation parameter is
// always zero from Shelley's final phase onward, which collapses eta to 1
// in the published formula.
func (s *State) monetaryExpansion() (rewardsPotTotal, treasuryCut, poolRewardsPot uint64) {
	reserves := new(big.Rat).SetUint64(s.Pots.Reserves)
	r := new(big.Rat).Mul(reserves, s.cfg.MonetaryExpansionRho)
	rFloor := ratFloorUint64(r)

	rInt := new(big.Rat).SetUint64(rFloor)
	tCut := new(big.Rat).Mul(rInt, s.cfg.TreasuryGrowthTau)
	tCutFloor := ratFloorUint64(tCut)

	return rFloor, tCutFloor, rFloor - tCutFloor
}

func ratFloorUint64(r *big.Rat) uint64 {
	q := new(big.Int).Quo(r.Num(), r.Denom())
	return q.Uint64()
}

// poolRewardSplit holds one pool's computed reward before the
// leader/member division.
type poolRewardSplit struct {
	pool        lcommon.PoolKeyHash
	total       uint64
	cost        uint64
	margin      *big.Rat
	sigmaStake  uint64
	ownerStake  uint64
	delegators  map[ledgermodel.StakeAddress]uint64
	rewardAcct  ledgermodel.StakeAddress
}

// computePoolRewards derives each registered pool's total reward for the
// epoch, following the saturation-adjusted Shelley formula: pools are
// capped at the z0 = 1/k saturation threshold for both their own relative
// stake and their relative pledge, then scaled by apparent performance
// (blocks actually minted against blocks expected, from the "go"
// snapshot's block-count window — spec.md §4.3: "set used for the reward
// formula inputs, go as the performance window").
func (s *State) computePoolRewards(poolRewardsPot uint64, set, goSnap *ledgermodel.EpochSnapshot) []poolRewardSplit {
	if set == nil || goSnap == nil || poolRewardsPot == 0 {
		return nil
	}
	totalActive := set.ActiveStakeTotal()
	if totalActive == 0 {
		return nil
	}
	totalActiveR := new(big.Rat).SetUint64(totalActive)
	z0 := new(big.Rat).SetFrac64(1, int64(s.cfg.OptimalPoolCount))
	potR := new(big.Rat).SetUint64(poolRewardsPot)
	onePlusA0 := new(big.Rat).Add(big.NewRat(1, 1), s.cfg.PledgeInfluenceA0)

	perPoolStake := make(map[lcommon.PoolKeyHash]uint64)
	perPoolDelegators := make(map[lcommon.PoolKeyHash]map[ledgermodel.StakeAddress]uint64)
	for addr, pool := range set.DelegationByAddress {
		stake := set.StakeByAddress[addr]
		perPoolStake[pool] += stake
		if perPoolDelegators[pool] == nil {
			perPoolDelegators[pool] = make(map[ledgermodel.StakeAddress]uint64)
		}
		perPoolDelegators[pool][addr] = stake
	}

	var out []poolRewardSplit
	for poolHash, entry := range set.Pools {
		sigma := perPoolStake[poolHash]
		if sigma == 0 || entry.Registration == nil {
			continue
		}
		pledge := entry.Registration.Pledge

		sigmaR := new(big.Rat).SetUint64(sigma)
		sigmaRel := new(big.Rat).Quo(sigmaR, totalActiveR)
		if sigmaRel.Cmp(z0) > 0 {
			sigmaRel = z0
		}
		pledgeR := new(big.Rat).SetUint64(pledge)
		pledgeRel := new(big.Rat).Quo(pledgeR, totalActiveR)
		if pledgeRel.Cmp(z0) > 0 {
			pledgeRel = z0
		}

		// sigma' + s'*a0*(sigma' - s'*(z0-sigma')/z0)/z0
		diff := new(big.Rat).Sub(z0, sigmaRel)
		inner := new(big.Rat).Mul(pledgeRel, diff)
		inner.Quo(inner, z0)
		inner.Sub(sigmaRel, inner)
		inner.Mul(inner, s.cfg.PledgeInfluenceA0)
		inner.Mul(inner, pledgeRel)
		inner.Quo(inner, z0)
		bracket := new(big.Rat).Add(sigmaRel, inner)

		optimalReward := new(big.Rat).Mul(potR, bracket)
		optimalReward.Quo(optimalReward, onePlusA0)

		blocksMinted := goSnap.Pools[poolHash].BlocksMinted
		expected := new(big.Rat).Mul(new(big.Rat).SetUint64(goSnap.TotalNonOBFTBlocks), sigmaRel)
		performance := big.NewRat(0, 1)
		if expected.Sign() > 0 {
			performance = new(big.Rat).Quo(new(big.Rat).SetUint64(blocksMinted), expected)
		}
		poolReward := new(big.Rat).Mul(optimalReward, performance)
		total := ratFloorUint64(poolReward)
		if total == 0 {
			continue
		}

		var ownerStake uint64
		for _, owner := range entry.Registration.PoolOwners {
			ownerAddr := ledgermodel.StakeAddress{
				Credential: lcommon.Credential{
					CredType:   lcommon.CredentialTypeAddrKeyHash,
					Credential: owner,
				},
			}
			ownerStake += perPoolDelegators[poolHash][ownerAddr]
		}
		margin := big.NewRat(0, 1)
		if entry.Registration.Margin.Rat != nil {
			margin = entry.Registration.Margin.Rat
		}

		out = append(out, poolRewardSplit{
			pool:       poolHash,
			total:      total,
			cost:       entry.Registration.Cost,
			margin:     margin,
			sigmaStake: sigma,
			ownerStake: ownerStake,
			delegators: perPoolDelegators[poolHash],
			rewardAcct: entry.RewardAccount,
		})
	}
	return out
}

// splitLeaderMember divides one pool's total reward between its leader
// (reward account) and its delegators, after the fixed cost and margin.
func splitLeaderMember(p poolRewardSplit) []RewardPayment {
	if p.total <= p.cost {
		return []RewardPayment{{Account: p.rewardAcct, Amount: p.total, Kind: RewardLeader, Pool: p.pool}}
	}
	afterCost := new(big.Rat).SetUint64(p.total - p.cost)
	sigmaR := new(big.Rat).SetUint64(p.sigmaStake)
	ownerFrac := big.NewRat(0, 1)
	if p.sigmaStake > 0 {
		ownerFrac = new(big.Rat).Quo(new(big.Rat).SetUint64(p.ownerStake), sigmaR)
	}
	oneMinusMargin := new(big.Rat).Sub(big.NewRat(1, 1), p.margin)
	leaderFrac := new(big.Rat).Mul(oneMinusMargin, ownerFrac)
	leaderFrac.Add(leaderFrac, p.margin)
	leaderExtra := ratFloorUint64(new(big.Rat).Mul(afterCost, leaderFrac))

	payments := []RewardPayment{
		{Account: p.rewardAcct, Amount: p.cost + leaderExtra, Kind: RewardLeader, Pool: p.pool},
	}
	remaining := p.total - p.cost - leaderExtra
	if remaining == 0 || p.sigmaStake == 0 {
		return payments
	}
	remainingR := new(big.Rat).SetUint64(remaining)
	for addr, stake := range p.delegators {
		if stake == 0 {
			continue
		}
		share := new(big.Rat).Mul(remainingR, new(big.Rat).SetUint64(stake))
		share.Quo(share, sigmaR)
		amt := ratFloorUint64(share)
		if amt == 0 {
			continue
		}
		payments = append(payments, RewardPayment{Account: addr, Amount: amt, Kind: RewardMember, Pool: p.pool})
	}
	return payments
}

// runRewardsWorker is the cancellable background task spec.md §4.3
// describes: it computes payments from the set/go snapshot pair and the
// pool-rewards pot captured at the epoch boundary, then hands the result
// back to State.applyRewardResultLocked for synchronous application. ctx is
// cancelled by Rollback if the chain rolls back past the epoch's starting
// slot before this completes.
func (s *State) runRewardsWorker(ctx context.Context, poolRewardsPot uint64, set, goSnap *ledgermodel.EpochSnapshot) {
	defer s.rewardsWg.Done()

	splits := s.computePoolRewards(poolRewardsPot, set, goSnap)
	var payments []RewardPayment
	for _, p := range splits {
		select {
		case <-ctx.Done():
			return
		default:
		}
		payments = append(payments, splitLeaderMember(p)...)
	}

	select {
	case <-ctx.Done():
		return
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyRewardResultLocked(payments)
}

// applyRewardResultLocked credits each payment to its account's rewards,
// redirecting payments for accounts that have since deregistered to
// treasury instead (spec.md §4.3), and debits reserves by the total
// actually credited to still-registered accounts.
func (s *State) applyRewardResultLocked(payments []RewardPayment) {
	var paidToRegistered uint64
	var redirectedToTreasury uint64
	var kept []RewardPayment
	for _, p := range payments {
		rec := s.Stakes.Get(p.Account)
		if rec == nil || !rec.Registered {
			redirectedToTreasury += p.Amount
			continue
		}
		if err := s.Stakes.AddReward(p.Account, p.Amount); err != nil {
			s.cfg.Logger.Warn("reward credit overflowed", "address", p.Account, "error", err)
			continue
		}
		paidToRegistered += p.Amount
		kept = append(kept, p)
	}
	if err := s.Pots.ApplyDelta(ledgermodel.PotReserves, -int64(paidToRegistered)); err != nil {
		s.cfg.Logger.Error("reward payout exceeded reserves", "amount", paidToRegistered, "error", err)
	}
	if redirectedToTreasury > 0 {
		if err := s.Pots.ApplyDelta(ledgermodel.PotTreasury, int64(redirectedToTreasury)); err != nil {
			s.cfg.Logger.Error("treasury redirect overflowed", "amount", redirectedToTreasury, "error", err)
		}
	}
	s.rewardsResult = kept
}
