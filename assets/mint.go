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

// ApplyMint applies one mint/burn delta for the asset identified by key,
// witnessed by txHash. A positive amount mints; a negative amount burns.
// The first event ever observed for a previously unknown asset must be a
// mint (spec.md §4.4); a burn exceeding current supply fails and leaves
// the asset unchanged. Every successful event appends to the mint/burn
// history when enabled and increments MintBurnCount regardless.
func (r *Registry) ApplyMint(key ledgermodel.PolicyName, txHash lcommon.Blake2b256, amount int64) (ledgermodel.AssetID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, known := r.lookup(key)
	if !known {
		if amount < 0 {
			return 0, ErrUnknownAssetBurn
		}
		id, _ = r.intern(key)
		st := r.stateByID(id)
		st.record.Supply = uint64(amount)
		st.record.InitialMintTx = txHash
		st.record.MintBurnCount = 1
		if r.cfg.TrackMintHistory {
			st.history = append(st.history, ledgermodel.MintEvent{TxHash: txHash, Amount: amount, Burn: false})
		}
		r.recordTouchpointLocked(st, txHash)
		return id, nil
	}

	st := r.stateByID(id)
	if amount < 0 {
		burn := uint64(-amount)
		if burn > st.record.Supply {
			return id, ErrBurnExceedsSupply
		}
		st.record.Supply -= burn
	} else {
		st.record.Supply += uint64(amount)
	}
	st.record.MintBurnCount++
	if r.cfg.TrackMintHistory {
		st.history = append(st.history, ledgermodel.MintEvent{TxHash: txHash, Amount: amount, Burn: amount < 0})
	}
	r.recordTouchpointLocked(st, txHash)
	return id, nil
}

// recordTouchpointLocked appends txHash to st's transaction list if it is
// not already the most recently recorded touchpoint for this asset,
// honouring the configured retention policy. Called with r.mu held.
func (r *Registry) recordTouchpointLocked(st *assetState, txHash lcommon.Blake2b256) {
	if r.cfg.TxList.Off {
		return
	}
	if len(st.txs) > 0 && st.txs[len(st.txs)-1] == txHash {
		return
	}
	st.txs = append(st.txs, txHash)
	if truncateTo, ok := r.cfg.TxList.Keep(len(st.txs)); ok && truncateTo < len(st.txs) {
		st.txs = st.txs[len(st.txs)-truncateTo:]
	}
}

// RecordTransaction registers txHash as a touchpoint for every asset in
// ids, deduplicating within this single call so one transaction
// referencing the same asset more than once only appends one entry
// (spec.md §4.4's transaction-touchpoint contract).
func (r *Registry) RecordTransaction(txHash lcommon.Blake2b256, ids []ledgermodel.AssetID) {
	if r.cfg.TxList.Off || len(ids) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[ledgermodel.AssetID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if st := r.stateByID(id); st != nil {
			r.recordTouchpointLocked(st, txHash)
		}
	}
}
