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

// PoolQueries is the read surface over registered stake pools (spec.md
// §6's pool query group), implemented directly by accounts.State.
type PoolQueries interface {
	Pool(pool lcommon.PoolKeyHash) (ledgermodel.PoolRegistration, bool)
	ListPools() []lcommon.PoolKeyHash
	RetirementEpoch(pool lcommon.PoolKeyHash) (uint64, bool)
}

// PoolInfo resolves pool's registration, translating an unknown pool to
// NotFound.
func PoolInfo(q PoolQueries, pool lcommon.PoolKeyHash) (ledgermodel.PoolRegistration, error) {
	reg, ok := q.Pool(pool)
	if !ok {
		return ledgermodel.PoolRegistration{}, NotFound
	}
	return reg, nil
}

// PoolRetirement resolves pool's scheduled retirement epoch, translating
// an unscheduled pool to NotFound.
func PoolRetirement(q PoolQueries, pool lcommon.PoolKeyHash) (uint64, error) {
	epoch, ok := q.RetirementEpoch(pool)
	if !ok {
		return 0, NotFound
	}
	return epoch, nil
}
