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
	"github.com/input-output-hk/acropolis-sub000/ledgermodel"
)

// AccountQueries is the read surface over stake-address state and the
// pots (spec.md §6's accounts query group), implemented directly by
// accounts.State.
type AccountQueries interface {
	StakeAddress(addr ledgermodel.StakeAddress) (ledgermodel.StakeAddressRecord, bool)
	PotBalances() ledgermodel.Pots
	CurrentEpoch() uint64
}

// StakeAddressInfo resolves addr's record, translating an address the
// state does not know to NotFound.
func StakeAddressInfo(q AccountQueries, addr ledgermodel.StakeAddress) (ledgermodel.StakeAddressRecord, error) {
	rec, ok := q.StakeAddress(addr)
	if !ok {
		return ledgermodel.StakeAddressRecord{}, NotFound
	}
	return rec, nil
}
