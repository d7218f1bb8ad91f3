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
	"testing"

	lcommon "github.com/blinklabs-io/gouroboros/ledger/common"
	"github.com/input-output-hk/acropolis-sub000/ledgermodel"
)

func sampleAddr(b byte) ledgermodel.StakeAddress {
	raw := make([]byte, 28)
	for i := range raw {
		raw[i] = b
	}
	return ledgermodel.StakeAddress{Credential: lcommon.Credential{Credential: lcommon.NewBlake2b224(raw)}}
}

func samplePool(b byte) lcommon.PoolKeyHash {
	raw := make([]byte, 28)
	for i := range raw {
		raw[i] = b
	}
	return lcommon.NewBlake2b224(raw)
}

func newTestState() *State {
	cfg := DefaultConfig()
	s := NewState(cfg)
	s.Pots = ledgermodel.Pots{Reserves: 1_000_000, Treasury: 500, Deposits: 0}
	return s
}

func TestRegisterDepositsIntoPot(t *testing.T) {
	s := newTestState()
	addr := sampleAddr(1)

	s.ApplyCertificates(10, 100, []Certificate{
		{Kind: CertStakeRegistration, Address: addr, Deposit: 2_000_000},
	})

	if s.Pots.Deposits != 2_000_000 {
		t.Fatalf("expected deposits 2000000, got %d", s.Pots.Deposits)
	}
	rec := s.Stakes.Get(addr)
	if rec == nil || !rec.Registered {
		t.Fatalf("expected address to be registered")
	}
}

func TestDeregisterRefundsDeposit(t *testing.T) {
	s := newTestState()
	addr := sampleAddr(2)
	s.ApplyCertificates(10, 100, []Certificate{
		{Kind: CertStakeRegistration, Address: addr, Deposit: 2_000_000},
		{Kind: CertStakeDeregistration, Address: addr},
	})
	if s.Pots.Deposits != 0 {
		t.Fatalf("expected deposits refunded to 0, got %d", s.Pots.Deposits)
	}
	if s.Stakes.Get(addr).Registered {
		t.Fatalf("expected address to be deregistered")
	}
}

func TestStakeDelegationRequiresRegistration(t *testing.T) {
	s := newTestState()
	addr := sampleAddr(3)
	pool := samplePool(9)
	// Not registered yet: delegation is rejected, logged, skipped.
	s.ApplyCertificates(10, 100, []Certificate{
		{Kind: CertStakeDelegation, Address: addr, Pool: pool},
	})
	if rec := s.Stakes.Get(addr); rec != nil && rec.DelegatedPool != nil {
		t.Fatalf("expected no delegation to be recorded for an unregistered address")
	}
}

func TestRegistrationAndStakeDelegationCombined(t *testing.T) {
	s := newTestState()
	addr := sampleAddr(4)
	pool := samplePool(5)
	s.ApplyCertificates(10, 100, []Certificate{
		{Kind: CertRegistrationAndStakeDelegation, Address: addr, Pool: pool, Deposit: 2_000_000},
	})
	rec := s.Stakes.Get(addr)
	if rec == nil || !rec.Registered || rec.DelegatedPool == nil || *rec.DelegatedPool != pool {
		t.Fatalf("expected address registered and delegated to pool, got %+v", rec)
	}
}

func TestPoolRegistrationThenRetirementSchedule(t *testing.T) {
	s := newTestState()
	cert := &lcommon.PoolRegistrationCertificate{Operator: samplePool(1), Cost: 340_000_000}
	reg := &ledgermodel.PoolRegistration{Cert: cert}
	s.ApplyCertificates(10, 100, []Certificate{
		{Kind: CertPoolRegistration, PoolCert: reg},
		{Kind: CertPoolRetirement, RetirementPool: cert.Operator, RetirementEpoch: 20},
	})
	if _, ok := s.Pools[cert.Operator]; !ok {
		t.Fatalf("expected pool to be registered")
	}
	if epoch, ok := s.Retirements[cert.Operator]; !ok || epoch != 20 {
		t.Fatalf("expected retirement scheduled at epoch 20, got %d ok=%v", epoch, ok)
	}
}

func TestMIRFromReservesToStakeAccounts(t *testing.T) {
	s := newTestState()
	addr := sampleAddr(6)
	s.ApplyCertificates(10, 100, []Certificate{
		{Kind: CertStakeRegistration, Address: addr, Deposit: 2_000_000},
	})
	s.ApplyCertificates(10, 101, []Certificate{
		{Kind: CertMIR, MIRPot: MIRFromReserves, MIRTarget: MIRToStakeAccounts,
			MIRAmounts: map[StakeAddressRef]int64{addr: 1_000}},
	})
	rec := s.Stakes.Get(addr)
	if rec.Rewards != 1_000 {
		t.Fatalf("expected rewards 1000, got %d", rec.Rewards)
	}
	if s.Pots.Reserves != 1_000_000-1_000 {
		t.Fatalf("expected reserves decreased by 1000, got %d", s.Pots.Reserves)
	}
}

func TestMIRNegativeEntryPaysValueBackToReserves(t *testing.T) {
	s := newTestState()
	s.Pots.Reserves = 100
	addr := sampleAddr(7)
	s.ApplyCertificates(10, 100, []Certificate{
		{Kind: CertMIR, MIRPot: MIRFromReserves, MIRTarget: MIRToStakeAccounts,
			MIRAmounts: map[StakeAddressRef]int64{addr: 47}},
	})
	s.ApplyCertificates(10, 101, []Certificate{
		{Kind: CertMIR, MIRPot: MIRFromReserves, MIRTarget: MIRToStakeAccounts,
			MIRAmounts: map[StakeAddressRef]int64{addr: -5}},
	})

	rec := s.Stakes.Get(addr)
	if rec.Rewards != 42 {
		t.Fatalf("expected rewards 42, got %d", rec.Rewards)
	}
	if s.Pots.Reserves != 58 {
		t.Fatalf("expected reserves 58, got %d", s.Pots.Reserves)
	}
}

func TestApplyPotDeltasUnderflowLeavesPotUnchanged(t *testing.T) {
	s := newTestState()
	s.ApplyPotDeltas(-2_000_000, 0, 0)
	if s.Pots.Reserves != 1_000_000 {
		t.Fatalf("expected reserves unchanged on underflow, got %d", s.Pots.Reserves)
	}
}

func TestApplyWithdrawalsZeroIsWitnessNoOp(t *testing.T) {
	s := newTestState()
	addr := sampleAddr(7)
	s.ApplyCertificates(10, 100, []Certificate{
		{Kind: CertStakeRegistration, Address: addr, Deposit: 2_000_000},
	})
	s.ApplyWithdrawals(map[ledgermodel.StakeAddress]uint64{addr: 0})
	if s.Stakes.Get(addr).Rewards != 0 {
		t.Fatalf("expected no change from a zero-amount withdrawal")
	}
}
