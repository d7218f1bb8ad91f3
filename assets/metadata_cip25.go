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
	"encoding/hex"

	lcommon "github.com/blinklabs-io/gouroboros/ledger/common"
	"github.com/input-output-hk/acropolis-sub000/ledgermodel"
)

// ApplyCIP25 parses a policy-keyed metadata map from a decoded
// transaction-metadata label-721 blob (already CBOR-decoded by the
// caller into a generic map[string]any, as gouroboros' cbor package
// decodes an indefinite map of text keys into). A top-level "version"
// key of "2.0" selects CIP-25 v2; any other value (including its
// absence) selects v1. Unknown assets are silently ignored, malformed
// entries skipped without error, per spec.md §4.4.
func (r *Registry) ApplyCIP25(raw map[string]any) {
	if !r.cfg.TrackMetadata {
		return
	}
	version := "1.0"
	if v, ok := raw["version"].(string); ok && v == "2.0" {
		version = "2.0"
	}
	label721, ok := raw["721"].(map[string]any)
	if !ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for policyHex, perPolicy := range label721 {
		policyBytes, err := hex.DecodeString(policyHex)
		if err != nil || len(policyBytes) != 28 {
			continue
		}
		policy := lcommon.NewBlake2b224(policyBytes)
		assetMap, ok := perPolicy.(map[string]any)
		if !ok {
			continue
		}
		for assetName, meta := range assetMap {
			metaMap, ok := meta.(map[string]any)
			if !ok {
				continue
			}
			key := ledgermodel.PolicyName{Policy: policy, Name: assetName}
			id, known := r.lookup(key)
			if !known {
				continue
			}
			st := r.stateByID(id)
			st.record.Metadata.CIP25 = &ledgermodel.CIP25Metadata{Version: version, Raw: metaMap}
		}
	}
}
