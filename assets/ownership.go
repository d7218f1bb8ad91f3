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

package assets

import (
	"github.com/input-output-hk/acropolis-sub000/ledgermodel"
)

// ApplySend subtracts amount of asset id from addr's balance, saturating
// at zero and removing the entry entirely once it reaches zero (spec.md
// §4.4, "on a Shelley address sending units of an asset"). A no-op when
// address ownership is disabled or the asset is unknown.
func (r *Registry) ApplySend(id ledgermodel.AssetID, addr Address, amount uint64) {
	if !r.cfg.TrackAddressOwnership || amount == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	st := r.stateByID(id)
	if st == nil || st.owners == nil {
		return
	}
	bal, ok := st.owners[addr]
	if !ok {
		return
	}
	if amount >= bal {
		delete(st.owners, addr)
		return
	}
	st.owners[addr] = bal - amount
}

// ApplyReceive adds amount of asset id to addr's balance, saturating at
// the uint64 max (spec.md §4.4, "on receiving, add (saturating add)").
func (r *Registry) ApplyReceive(id ledgermodel.AssetID, addr Address, amount uint64) {
	if !r.cfg.TrackAddressOwnership || amount == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	st := r.stateByID(id)
	if st == nil {
		return
	}
	if st.owners == nil {
		st.owners = make(map[Address]uint64)
	}
	bal := st.owners[addr]
	if bal > ^uint64(0)-amount {
		st.owners[addr] = ^uint64(0)
		return
	}
	st.owners[addr] = bal + amount
}
