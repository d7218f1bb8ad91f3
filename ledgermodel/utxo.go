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

// MultiAssetBundle maps an interned asset id to the quantity held by a
// single UTXO entry or address balance.
type MultiAssetBundle map[AssetID]uint64

// UtxoEntry is the value the snapshot codec streams to its on_utxo
// callback and assets-index address tracking consumes: never materialised
// into a persistent store by this engine (spec.md §3 "external UTXO
// store").
type UtxoEntry struct {
	TxHash    lcommon.Blake2b256
	Index     uint32
	Address   []byte
	Lovelace  uint64
	Assets    MultiAssetBundle
	Datum     *lcommon.Blake2b256 // datum hash, if any
	RefScript bool
}

// UpstreamCacheRecord describes one entry of the volatile upstream cache
// (spec.md §4.6): the raw block bytes as received from the upstream peer
// plus enough block info to index it for replay. The upstreamcache
// package stores its own Record type and does not use this struct.
type UpstreamCacheRecord struct {
	BlockNumber uint64
	BlockSlot   uint64
	BlockHash   lcommon.Blake2b256
	RawBlock    []byte
}
