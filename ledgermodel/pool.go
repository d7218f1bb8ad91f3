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

// PoolRegistration wraps the gouroboros pool-registration certificate with
// the engine's own view of which stake addresses own it. Owners are
// referenced by stable StakeAddress id, never by live pointer, per
// spec.md §9.
type PoolRegistration struct {
	Cert   *lcommon.PoolRegistrationCertificate
	Owners []StakeAddress
}

// Operator returns the pool's operator key hash.
func (p *PoolRegistration) Operator() lcommon.PoolKeyHash {
	if p.Cert == nil {
		return lcommon.PoolKeyHash{}
	}
	return p.Cert.Operator
}

// RewardAccount wraps the certificate's raw reward-account key hash as a
// StakeAddress, the stable id the rest of the engine addresses accounts
// by. The certificate itself carries no network tag, so Network is left
// zero-valued here.
func (p *PoolRegistration) RewardAccount() StakeAddress {
	if p.Cert == nil {
		return StakeAddress{}
	}
	return StakeAddress{
		Credential: lcommon.Credential{
			CredType:   lcommon.CredentialTypeAddrKeyHash,
			Credential: p.Cert.RewardAccount,
		},
	}
}

// PoolRetirementSchedule maps a pool operator to the epoch at which its
// retirement takes effect.
type PoolRetirementSchedule map[lcommon.PoolKeyHash]uint64

// PoolDistributionEntry is one row of the Stake-Pool Delegation
// Distribution (spec.md §4.2).
type PoolDistributionEntry struct {
	Active                uint64
	Live                  uint64
	ActiveDelegatorsCount uint64
}

// DRepDistribution is the result of the DRep Delegation Distribution
// (spec.md §4.2).
type DRepDistribution struct {
	Abstain      uint64
	NoConfidence uint64
	PerDRep      map[lcommon.Blake2b224]uint64
}
