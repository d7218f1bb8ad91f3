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
	lcommon "github.com/blinklabs-io/gouroboros/ledger/common"
	"github.com/input-output-hk/acropolis-sub000/ledgermodel"
)

// Pool returns a copy of pool's registration, and whether it is known.
func (s *State) Pool(pool lcommon.PoolKeyHash) (ledgermodel.PoolRegistration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, ok := s.Pools[pool]
	if !ok {
		return ledgermodel.PoolRegistration{}, false
	}
	return *reg, true
}

// ListPools returns every currently-registered pool's key hash.
func (s *State) ListPools() []lcommon.PoolKeyHash {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]lcommon.PoolKeyHash, 0, len(s.Pools))
	for k := range s.Pools {
		out = append(out, k)
	}
	return out
}

// RetirementEpoch returns the epoch at which pool is scheduled to
// retire, if any.
func (s *State) RetirementEpoch(pool lcommon.PoolKeyHash) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	epoch, ok := s.Retirements[pool]
	return epoch, ok
}

// DRep returns a copy of cred's registration, and whether it is known.
func (s *State) DRep(cred lcommon.Blake2b224) (ledgermodel.DRepRegistration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, ok := s.DReps[cred]
	if !ok {
		return ledgermodel.DRepRegistration{}, false
	}
	return *reg, true
}

// ListDReps returns every currently-registered DRep's credential.
func (s *State) ListDReps() []lcommon.Blake2b224 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]lcommon.Blake2b224, 0, len(s.DReps))
	for k := range s.DReps {
		out = append(out, k)
	}
	return out
}

// StakeAddress returns a copy of addr's record, and whether it is
// known. Only an address the stake map has never seen (a nil Stakes.Get
// result) reports false; a deregistered address keeps its record.
func (s *State) StakeAddress(addr ledgermodel.StakeAddress) (ledgermodel.StakeAddressRecord, bool) {
	rec := s.Stakes.Get(addr)
	if rec == nil {
		return ledgermodel.StakeAddressRecord{}, false
	}
	return *rec.Clone(), true
}

// PotBalances returns a copy of the current reserves/treasury/deposits
// pots.
func (s *State) PotBalances() ledgermodel.Pots {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Pots
}

// GovernanceProposals returns a copy of the current governance proposal list.
func (s *State) GovernanceProposals() []ledgermodel.GovernanceProposal {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ledgermodel.GovernanceProposal, len(s.Proposals))
	copy(out, s.Proposals)
	return out
}

// GovernanceConstitution returns the current constitution, if one has been set.
func (s *State) GovernanceConstitution() (ledgermodel.Constitution, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Constitution == nil {
		return ledgermodel.Constitution{}, false
	}
	return *s.Constitution, true
}

// CommitteeMember returns a copy of cold's committee membership record.
func (s *State) CommitteeMember(cold lcommon.Credential) (ledgermodel.CommitteeMember, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.Committee[cold]
	if !ok {
		return ledgermodel.CommitteeMember{}, false
	}
	return *m, true
}

// CurrentEpoch returns the epoch most recently entered via EnterEpoch
// (or set by Bootstrap).
func (s *State) CurrentEpoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentEpoch
}
