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
	lcommon "github.com/blinklabs-io/gouroboros/ledger/common"
	"github.com/input-output-hk/acropolis-sub000/ledgermodel"
)

// ListAssets returns every interned asset's current supply.
func (r *Registry) ListAssets() []ledgermodel.AssetRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ledgermodel.AssetRecord, 0, len(r.assets))
	for _, st := range r.assets {
		out = append(out, st.record)
	}
	return out
}

// AssetInfo returns id's supply, initial mint tx, mint/burn count and
// metadata. A reference NFT's own query strips its CIP-68 metadata
// (spec.md §4.4); a user token's query resolves it via its reference
// NFT.
func (r *Registry) AssetInfo(id ledgermodel.AssetID) (ledgermodel.AssetRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st := r.stateByID(id)
	if st == nil {
		return ledgermodel.AssetRecord{}, ErrAssetNotFound
	}
	out := st.record
	if hasPrefix(st.record.PolicyName.Name, cip67RefPrefix) {
		out.Metadata.CIP68 = nil
		return out, nil
	}
	cip68, err := r.resolveCIP68Locked(st)
	if err != nil {
		out.Metadata.CIP68 = nil
		return out, nil
	}
	out.Metadata.CIP68 = cip68
	return out, nil
}

// History returns id's mint/burn event log, or a StorageDisabledError if
// history tracking was not enabled.
func (r *Registry) History(id ledgermodel.AssetID) ([]ledgermodel.MintEvent, error) {
	if !r.cfg.TrackMintHistory {
		return nil, &ledgermodel.StorageDisabledError{Feature: "mint history"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	st := r.stateByID(id)
	if st == nil {
		return nil, ErrAssetNotFound
	}
	out := make([]ledgermodel.MintEvent, len(st.history))
	copy(out, st.history)
	return out, nil
}

// Holders returns id's address -> balance map, or a StorageDisabledError
// if address-ownership tracking was not enabled.
func (r *Registry) Holders(id ledgermodel.AssetID) (map[Address]uint64, error) {
	if !r.cfg.TrackAddressOwnership {
		return nil, &ledgermodel.StorageDisabledError{Feature: "address ownership"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	st := r.stateByID(id)
	if st == nil {
		return nil, ErrAssetNotFound
	}
	out := make(map[Address]uint64, len(st.owners))
	for k, v := range st.owners {
		out[k] = v
	}
	return out, nil
}

// Transactions returns id's retained transaction touchpoints, or a
// StorageDisabledError if the transaction-list policy is Off.
func (r *Registry) Transactions(id ledgermodel.AssetID) ([]lcommon.Blake2b256, error) {
	if r.cfg.TxList.Off {
		return nil, &ledgermodel.StorageDisabledError{Feature: "transaction list"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	st := r.stateByID(id)
	if st == nil {
		return nil, ErrAssetNotFound
	}
	out := make([]lcommon.Blake2b256, len(st.txs))
	copy(out, st.txs)
	return out, nil
}

// AssetsByPolicy returns every asset id interned under policy, or a
// StorageDisabledError if the policy index was not enabled.
func (r *Registry) AssetsByPolicy(policy lcommon.Blake2b224) ([]ledgermodel.AssetID, error) {
	if !r.cfg.TrackPolicyIndex {
		return nil, &ledgermodel.StorageDisabledError{Feature: "policy index"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := r.policyIndex[policy]
	out := make([]ledgermodel.AssetID, len(ids))
	copy(out, ids)
	return out, nil
}
