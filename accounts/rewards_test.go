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
	"math/big"
	"testing"

	lcommon "github.com/blinklabs-io/gouroboros/ledger/common"
	"github.com/input-output-hk/acropolis-sub000/ledgermodel"
)

func TestMonetaryExpansionAppliesRhoThenTau(t *testing.T) {
	s := newTestState()
	s.Pots.Reserves = 1_000_000
	s.cfg.MonetaryExpansionRho = big.NewRat(3, 1000)
	s.cfg.TreasuryGrowthTau = big.NewRat(2, 10)

	_, treasuryCut, poolRewardsPot := s.monetaryExpansion()

	// R = floor(1_000_000 * 3/1000) = 3000
	// treasuryCut = floor(3000 * 2/10) = 600
	// poolRewardsPot = 3000 - 600 = 2400
	if treasuryCut != 600 {
		t.Fatalf("expected treasury cut 600, got %d", treasuryCut)
	}
	if poolRewardsPot != 2400 {
		t.Fatalf("expected pool rewards pot 2400, got %d", poolRewardsPot)
	}
}

func TestComputePoolRewardsNilSnapshotsYieldNothing(t *testing.T) {
	s := newTestState()
	if out := s.computePoolRewards(1000, nil, nil); out != nil {
		t.Fatalf("expected nil result with no snapshots, got %+v", out)
	}
}

func TestComputePoolRewardsSingleSaturatedPool(t *testing.T) {
	s := newTestState()
	addr := sampleAddr(1)
	pool := samplePool(1)
	cert := &lcommon.PoolRegistrationCertificate{Operator: pool, Cost: 340_000_000}
	set := seedOnePoolSnapshot(pool, cert, addr, 1_000_000, 5, 10)
	goSnap := seedOnePoolSnapshot(pool, cert, addr, 1_000_000, 5, 10)

	out := s.computePoolRewards(2_400_000_000, set, goSnap)
	if len(out) != 1 {
		t.Fatalf("expected one pool's reward split, got %d", len(out))
	}
	split := out[0]
	if split.pool != pool {
		t.Fatalf("unexpected pool in split: %+v", split)
	}
	if split.total == 0 {
		t.Fatalf("expected a nonzero total reward")
	}
	if split.sigmaStake != 1_000_000 {
		t.Fatalf("expected sigmaStake 1000000, got %d", split.sigmaStake)
	}
}

func TestComputePoolRewardsSkipsPoolsWithNoDelegatedStake(t *testing.T) {
	s := newTestState()
	addr := sampleAddr(1)
	pool := samplePool(1)
	otherPool := samplePool(2)
	cert := &lcommon.PoolRegistrationCertificate{Operator: pool}
	set := seedOnePoolSnapshot(pool, cert, addr, 1_000_000, 5, 10)
	// Register a second pool with no delegators at all.
	set.Pools[otherPool] = ledgermodel.PoolSnapshotEntry{
		Registration: &lcommon.PoolRegistrationCertificate{Operator: otherPool},
	}
	goSnap := seedOnePoolSnapshot(pool, cert, addr, 1_000_000, 5, 10)

	out := s.computePoolRewards(2_400_000_000, set, goSnap)
	if len(out) != 1 {
		t.Fatalf("expected the undelegated pool to be skipped, got %d entries", len(out))
	}
}

func TestSplitLeaderMemberCostExceedsTotal(t *testing.T) {
	addr := sampleAddr(3)
	p := poolRewardSplit{
		pool:       samplePool(3),
		total:      100,
		cost:       500,
		margin:     big.NewRat(0, 1),
		sigmaStake: 1000,
		rewardAcct: addr,
		delegators: map[ledgermodel.StakeAddress]uint64{addr: 1000},
	}
	payments := splitLeaderMember(p)
	if len(payments) != 1 {
		t.Fatalf("expected a single payment capped at the total when cost exceeds it, got %+v", payments)
	}
	if payments[0].Amount != 100 || payments[0].Kind != RewardLeader {
		t.Fatalf("expected the whole reward paid to the leader, got %+v", payments[0])
	}
}

func TestSplitLeaderMemberMarginAndProRataMembers(t *testing.T) {
	leaderAddr := sampleAddr(4)
	memberAddr := sampleAddr(5)
	p := poolRewardSplit{
		pool:       samplePool(4),
		total:      1_000,
		cost:       100,
		margin:     big.NewRat(1, 10),
		sigmaStake: 1_000_000,
		ownerStake: 0,
		rewardAcct: leaderAddr,
		delegators: map[ledgermodel.StakeAddress]uint64{memberAddr: 1_000_000},
	}
	payments := splitLeaderMember(p)
	if len(payments) != 2 {
		t.Fatalf("expected a leader payment and a member payment, got %+v", payments)
	}
	var leaderAmt, memberAmt uint64
	for _, pay := range payments {
		switch pay.Kind {
		case RewardLeader:
			leaderAmt = pay.Amount
		case RewardMember:
			memberAmt = pay.Amount
		}
	}
	// afterCost = 900; leaderFrac = margin (0.1) since ownerFrac is 0 here;
	// leaderExtra = floor(900*0.1) = 90; leader total = cost + leaderExtra = 190.
	if leaderAmt != 190 {
		t.Fatalf("expected leader amount 190, got %d", leaderAmt)
	}
	// remaining = 1000 - 100 - 90 = 810, all to the sole delegator.
	if memberAmt != 810 {
		t.Fatalf("expected member amount 810, got %d", memberAmt)
	}
}

func TestSplitLeaderMemberSkipsZeroAmountMembers(t *testing.T) {
	leaderAddr := sampleAddr(6)
	dustAddr := sampleAddr(7)
	p := poolRewardSplit{
		pool:       samplePool(6),
		total:      11,
		cost:       10,
		margin:     big.NewRat(0, 1),
		sigmaStake: 1_000_000,
		rewardAcct: leaderAddr,
		delegators: map[ledgermodel.StakeAddress]uint64{dustAddr: 1},
	}
	payments := splitLeaderMember(p)
	if len(payments) != 1 {
		t.Fatalf("expected only the leader payment when the member share floors to zero, got %+v", payments)
	}
}
