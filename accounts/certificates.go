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
	"fmt"

	lcommon "github.com/blinklabs-io/gouroboros/ledger/common"
	"github.com/input-output-hk/acropolis-sub000/ledgermodel"
)

// CertKind enumerates the certificate variants spec.md §4.3 lists under
// "Per-block certificates". The engine consumes certificates already
// decoded into this shape; decoding the wire certificate union is the
// concern of whatever feeds blocks to the engine, out of scope here.
type CertKind uint8

const (
	CertStakeRegistration CertKind = iota
	CertStakeDeregistration
	CertStakeDelegation
	CertVoteDelegation
	CertStakeAndVoteDelegation
	CertRegistrationAndStakeDelegation
	CertRegistrationAndVoteDelegation
	CertRegistrationAndStakeAndVoteDelegation
	CertPoolRegistration
	CertPoolRetirement
	CertDRepRegistration
	CertDRepUpdate
	CertDRepDeregistration
	CertMIR
	CertCommitteeHotKeyAuth
	CertCommitteeColdResign
)

// MIRPot identifies the source pot a Move-Instantaneous-Reward certificate
// draws from.
type MIRPot uint8

const (
	MIRFromReserves MIRPot = iota
	MIRFromTreasury
)

// MIRTarget distinguishes a MIR paying into stake accounts from one moving
// value to the other pot.
type MIRTarget uint8

const (
	MIRToStakeAccounts MIRTarget = iota
	MIRToOtherPot
)

// Certificate is the engine's own decoded-certificate shape. Only the
// fields relevant to Kind are populated; callers are expected to populate
// exactly the subset a given Kind needs (Apply ignores the rest).
type Certificate struct {
	Kind CertKind

	Address StakeAddressRef
	Deposit uint64 // explicit deposit/refund amount accompanying (de)registration

	Pool lcommon.PoolKeyHash
	DRep ledgermodel.DRepChoice

	PoolCert       *ledgermodel.PoolRegistration
	RetirementPool lcommon.PoolKeyHash
	RetirementEpoch uint64

	DRepCred lcommon.Blake2b224
	DRepReg  ledgermodel.DRepRegistration

	MIRPot      MIRPot
	MIRTarget   MIRTarget
	MIRAmounts  map[StakeAddressRef]int64
	MIROtherAmt int64

	ColdCredential lcommon.Credential
	HotCredential  lcommon.Credential
	ResignAnchor   *lcommon.GovAnchor
}

// StakeAddressRef is the stable id a certificate references; an alias
// kept local to this package's call sites for readability.
type StakeAddressRef = ledgermodel.StakeAddress

// ApplyCertificates applies a batch in order, per spec.md §4.3. Certificate
// application errors are logged and that certificate's effect is skipped;
// processing continues with the remainder of the batch, since a single
// malformed certificate in a block must not abort the whole block.
func (s *State) ApplyCertificates(epoch, slot uint64, certs []Certificate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range certs {
		if err := s.applyOne(epoch, slot, c); err != nil {
			s.cfg.Logger.Warn("certificate application failed",
				"kind", c.Kind, "address", c.Address, "error", err)
		}
	}
}

func (s *State) applyOne(epoch, slot uint64, c Certificate) error {
	switch c.Kind {
	case CertStakeRegistration:
		return s.register(epoch, slot, c.Address, c.Deposit)
	case CertStakeDeregistration:
		return s.deregister(epoch, slot, c.Address)
	case CertStakeDelegation:
		return s.delegateStake(c.Address, c.Pool)
	case CertVoteDelegation:
		return s.delegateVote(c.Address, c.DRep)
	case CertStakeAndVoteDelegation:
		if err := s.delegateStake(c.Address, c.Pool); err != nil {
			return err
		}
		return s.delegateVote(c.Address, c.DRep)
	case CertRegistrationAndStakeDelegation:
		if err := s.register(epoch, slot, c.Address, c.Deposit); err != nil {
			return err
		}
		return s.delegateStake(c.Address, c.Pool)
	case CertRegistrationAndVoteDelegation:
		if err := s.register(epoch, slot, c.Address, c.Deposit); err != nil {
			return err
		}
		return s.delegateVote(c.Address, c.DRep)
	case CertRegistrationAndStakeAndVoteDelegation:
		if err := s.register(epoch, slot, c.Address, c.Deposit); err != nil {
			return err
		}
		if err := s.delegateStake(c.Address, c.Pool); err != nil {
			return err
		}
		return s.delegateVote(c.Address, c.DRep)
	case CertPoolRegistration:
		return s.registerPool(c.PoolCert)
	case CertPoolRetirement:
		return s.schedulePoolRetirement(c.RetirementPool, c.RetirementEpoch)
	case CertDRepRegistration:
		return s.registerDRep(c.DRepCred, c.DRepReg)
	case CertDRepUpdate:
		return s.updateDRep(c.DRepCred, c.DRepReg)
	case CertDRepDeregistration:
		return s.deregisterDRep(c.DRepCred)
	case CertMIR:
		return s.applyMIR(c)
	case CertCommitteeHotKeyAuth:
		return s.authCommitteeHotKey(c.ColdCredential, c.HotCredential)
	case CertCommitteeColdResign:
		return s.resignCommitteeCold(c.ColdCredential, c.ResignAnchor)
	default:
		return fmt.Errorf("accounts: unknown certificate kind %d", c.Kind)
	}
}

func (s *State) register(epoch, slot uint64, addr StakeAddressRef, deposit uint64) error {
	added, ok := s.Stakes.Register(addr, deposit)
	if !ok {
		return fmt.Errorf("accounts: %v already registered", addr)
	}
	if err := s.Pots.ApplyDelta(ledgermodel.PotDeposits, int64(added)); err != nil {
		return err
	}
	s.recordRegistrationChange(addr, ledgermodel.RegistrationChangeRegister, epoch, slot)
	return nil
}

func (s *State) deregister(epoch, slot uint64, addr StakeAddressRef) error {
	refund, ok := s.Stakes.Deregister(addr)
	if !ok {
		return fmt.Errorf("accounts: %v not registered", addr)
	}
	if err := s.Pots.ApplyDelta(ledgermodel.PotDeposits, -int64(refund)); err != nil {
		return err
	}
	s.recordRegistrationChange(addr, ledgermodel.RegistrationChangeDeregister, epoch, slot)
	return nil
}

func (s *State) delegateStake(addr StakeAddressRef, pool lcommon.PoolKeyHash) error {
	if !s.Stakes.RecordStakeDelegation(addr, pool) {
		return fmt.Errorf("accounts: stake delegation rejected for %v", addr)
	}
	return nil
}

func (s *State) delegateVote(addr StakeAddressRef, drep ledgermodel.DRepChoice) error {
	if !s.Stakes.RecordDRepDelegation(addr, drep) {
		return fmt.Errorf("accounts: vote delegation rejected for %v", addr)
	}
	return nil
}

func (s *State) registerPool(reg *ledgermodel.PoolRegistration) error {
	if reg == nil || reg.Cert == nil {
		return fmt.Errorf("accounts: nil pool registration")
	}
	op := reg.Operator()
	s.Pools[op] = reg
	// A fresh registration cancels any pending retirement for the same
	// operator, per the real protocol's registration-overwrite behaviour.
	delete(s.Retirements, op)
	return nil
}

func (s *State) schedulePoolRetirement(pool lcommon.PoolKeyHash, epoch uint64) error {
	if _, ok := s.Pools[pool]; !ok {
		return fmt.Errorf("accounts: retirement for unknown pool %x", pool)
	}
	s.Retirements[pool] = epoch
	return nil
}

func (s *State) registerDRep(cred lcommon.Blake2b224, reg ledgermodel.DRepRegistration) error {
	if _, exists := s.DReps[cred]; exists {
		return fmt.Errorf("accounts: drep %x already registered", cred)
	}
	reg.Credential = cred
	s.DReps[cred] = &reg
	if err := s.Pots.ApplyDelta(ledgermodel.PotDeposits, int64(reg.Deposit)); err != nil {
		return err
	}
	return nil
}

func (s *State) updateDRep(cred lcommon.Blake2b224, reg ledgermodel.DRepRegistration) error {
	existing, ok := s.DReps[cred]
	if !ok {
		return fmt.Errorf("accounts: update for unregistered drep %x", cred)
	}
	existing.Anchor = reg.Anchor
	existing.Expiry = reg.Expiry
	return nil
}

func (s *State) deregisterDRep(cred lcommon.Blake2b224) error {
	existing, ok := s.DReps[cred]
	if !ok {
		return fmt.Errorf("accounts: deregistration for unregistered drep %x", cred)
	}
	delete(s.DReps, cred)
	return s.Pots.ApplyDelta(ledgermodel.PotDeposits, -int64(existing.Deposit))
}

func (s *State) applyMIR(c Certificate) error {
	var pot ledgermodel.PotKind
	switch c.MIRPot {
	case MIRFromReserves:
		pot = ledgermodel.PotReserves
	case MIRFromTreasury:
		pot = ledgermodel.PotTreasury
	}

	switch c.MIRTarget {
	case MIRToOtherPot:
		other := ledgermodel.PotTreasury
		if pot == ledgermodel.PotTreasury {
			other = ledgermodel.PotReserves
		}
		if err := s.Pots.ApplyDelta(pot, -c.MIROtherAmt); err != nil {
			return err
		}
		return s.Pots.ApplyDelta(other, c.MIROtherAmt)
	default:
		var total int64
		for addr, amount := range c.MIRAmounts {
			switch {
			case amount > 0:
				if err := s.Stakes.AddReward(addr, uint64(amount)); err != nil {
					s.cfg.Logger.Warn("MIR credit failed", "address", addr, "error", err)
					continue
				}
				total += amount
			case amount < 0:
				if err := s.Stakes.SubtractReward(addr, uint64(-amount)); err != nil {
					s.cfg.Logger.Warn("MIR debit failed", "address", addr, "error", err)
					continue
				}
				total += amount
			}
		}
		return s.Pots.ApplyDelta(pot, -total)
	}
}

func (s *State) authCommitteeHotKey(cold, hot lcommon.Credential) error {
	member, ok := s.Committee[cold]
	if !ok {
		member = &ledgermodel.CommitteeMember{ColdCredential: cold}
		s.Committee[cold] = member
	}
	member.HotCredential = hot
	return nil
}

func (s *State) resignCommitteeCold(cold lcommon.Credential, anchor *lcommon.GovAnchor) error {
	member, ok := s.Committee[cold]
	if !ok {
		return fmt.Errorf("accounts: resignation from unknown committee member")
	}
	member.Resigned = true
	member.ResignAnchor = anchor
	return nil
}

func (s *State) recordRegistrationChange(addr StakeAddressRef, kind ledgermodel.RegistrationChangeKind, epoch, slot uint64) {
	s.changeLog = append(s.changeLog, ledgermodel.RegistrationChangeEvent{
		Address: addr,
		Kind:    kind,
		Epoch:   epoch,
		Slot:    slot,
	})
}
