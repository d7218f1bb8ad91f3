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

// ApplyCIP68 records the inline datum carried by a reference-NFT
// transaction output. Only asset names whose first four bytes equal the
// CIP-67 reference label are eligible; any other asset name is a no-op
// here (a user token's output carries no datum of its own, per spec.md
// §4.4). datum.Version defaults to 1 when the caller left it unset.
func (r *Registry) ApplyCIP68(key ledgermodel.PolicyName, datum ledgermodel.CIP68Datum) error {
	if !r.cfg.TrackMetadata {
		return nil
	}
	if !hasPrefix(key.Name, cip67RefPrefix) {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	id, known := r.lookup(key)
	if !known {
		return ErrAssetNotFound
	}
	if datum.Version == 0 {
		datum.Version = 1
	}
	st := r.stateByID(id)
	st.record.Metadata.CIP68 = &datum
	return nil
}

// referenceKeyFor returns the PolicyName of the reference NFT that a
// user-token asset name resolves to, and whether name carries one of the
// three recognised CIP-67 user-token prefixes.
func referenceKeyFor(key ledgermodel.PolicyName) (ledgermodel.PolicyName, bool) {
	for _, prefix := range cip67UserPrefixes {
		if hasPrefix(key.Name, prefix) {
			return ledgermodel.PolicyName{
				Policy: key.Policy,
				Name:   substitutePrefix(key.Name, cip67RefPrefix),
			}, true
		}
	}
	return ledgermodel.PolicyName{}, false
}

// resolveCIP68Locked returns the CIP-68 metadata that a query for id should
// report: nil for an asset with no CIP-68 involvement, the reference
// NFT's own datum (for a direct query on the reference NFT itself, the
// caller is expected to have already stripped this per spec.md's "a
// reference NFT reports its own record but with the metadata stripped"),
// or the reference NFT's datum resolved via prefix substitution for a
// user token. Called with r.mu held.
func (r *Registry) resolveCIP68Locked(st *assetState) (*ledgermodel.CIP68Datum, error) {
	if st.record.Metadata.CIP68 != nil {
		return st.record.Metadata.CIP68, nil
	}
	refKey, isUserToken := referenceKeyFor(st.record.PolicyName)
	if !isUserToken {
		return nil, nil
	}
	refID, known := r.lookup(refKey)
	if !known {
		return nil, ErrNoReferenceNFT
	}
	refSt := r.stateByID(refID)
	if refSt == nil || refSt.record.Metadata.CIP68 == nil {
		return nil, ErrNoReferenceNFT
	}
	return refSt.record.Metadata.CIP68, nil
}
