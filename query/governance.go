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

package query

import (
	lcommon "github.com/blinklabs-io/gouroboros/ledger/common"
	"github.com/input-output-hk/acropolis-sub000/ledgermodel"
)

// GovernanceQueries is the read surface over DReps, proposals, the
// constitution and the constitutional committee (spec.md §6's
// governance query group), implemented directly by accounts.State.
type GovernanceQueries interface {
	DRep(cred lcommon.Blake2b224) (ledgermodel.DRepRegistration, bool)
	ListDReps() []lcommon.Blake2b224
	GovernanceProposals() []ledgermodel.GovernanceProposal
	GovernanceConstitution() (ledgermodel.Constitution, bool)
	CommitteeMember(cold lcommon.Credential) (ledgermodel.CommitteeMember, bool)
}

// DRepInfo resolves cred's registration, translating an unregistered
// DRep to NotFound.
func DRepInfo(q GovernanceQueries, cred lcommon.Blake2b224) (ledgermodel.DRepRegistration, error) {
	reg, ok := q.DRep(cred)
	if !ok {
		return ledgermodel.DRepRegistration{}, NotFound
	}
	return reg, nil
}

// Constitution resolves the current constitution, translating an unset
// constitution to NotFound.
func Constitution(q GovernanceQueries) (ledgermodel.Constitution, error) {
	c, ok := q.GovernanceConstitution()
	if !ok {
		return ledgermodel.Constitution{}, NotFound
	}
	return c, nil
}
