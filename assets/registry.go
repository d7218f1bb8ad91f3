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
	"sync"

	lcommon "github.com/blinklabs-io/gouroboros/ledger/common"
	"github.com/input-output-hk/acropolis-sub000/ledgermodel"
)

// Address identifies a Shelley address as an opaque byte string. Full
// address parsing (network tag, payment/staking credential split) is out
// of this engine's scope, mirroring accounts.stakeAddressFromUtxo; the
// registry only needs addresses as stable, comparable ownership keys.
type Address struct {
	Raw string
}

// assetState is the registry's internal per-asset record: the public
// ledgermodel.AssetRecord plus the optional storage classes layered on
// top of it.
type assetState struct {
	record  ledgermodel.AssetRecord
	history []ledgermodel.MintEvent
	owners  map[Address]uint64
	txs     []lcommon.Blake2b256
	refNFT  *ledgermodel.AssetID // never assigned; resolveCIP68Locked finds the reference NFT by name
}

// Registry is the native-asset index. The zero value is not usable; use
// NewRegistry.
type Registry struct {
	mu sync.Mutex

	cfg Config

	byKey       map[ledgermodel.PolicyName]ledgermodel.AssetID
	assets      []*assetState
	policyIndex map[lcommon.Blake2b224][]ledgermodel.AssetID
}

// NewRegistry builds an empty registry under cfg.
func NewRegistry(cfg Config) *Registry {
	return &Registry{
		cfg:         cfg,
		byKey:       make(map[ledgermodel.PolicyName]ledgermodel.AssetID),
		policyIndex: make(map[lcommon.Blake2b224][]ledgermodel.AssetID),
	}
}

// intern returns the AssetID for key, creating a fresh one (with an empty
// record) if key has not been seen before. created reports whether this
// call allocated a new id.
func (r *Registry) intern(key ledgermodel.PolicyName) (id ledgermodel.AssetID, created bool) {
	if id, ok := r.byKey[key]; ok {
		return id, false
	}
	id = ledgermodel.AssetID(len(r.assets))
	r.byKey[key] = id
	r.assets = append(r.assets, &assetState{
		record: ledgermodel.AssetRecord{ID: id, PolicyName: key},
	})
	if r.cfg.TrackPolicyIndex {
		r.policyIndex[key.Policy] = append(r.policyIndex[key.Policy], id)
	}
	return id, true
}

// lookup returns the interned AssetID for key without creating one.
func (r *Registry) lookup(key ledgermodel.PolicyName) (ledgermodel.AssetID, bool) {
	id, ok := r.byKey[key]
	return id, ok
}

func (r *Registry) stateByID(id ledgermodel.AssetID) *assetState {
	if id < 0 || int(id) >= len(r.assets) {
		return nil
	}
	return r.assets[id]
}
