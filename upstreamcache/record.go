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

// Package upstreamcache is an append-only, chunked on-disk log of raw
// upstream block messages, used for replay after restart (spec.md
// §4.6). Records are grouped into fixed-density chunks; any backend
// that can atomically read or write one chunk as a unit may back it.
package upstreamcache

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	lcommon "github.com/blinklabs-io/gouroboros/ledger/common"
)

// DefaultChunkSize is the record density per chunk file when a Cache is
// not given an explicit size.
const DefaultChunkSize = 1000

// BlockInfo identifies the block a Record carries.
type BlockInfo struct {
	Slot   uint64
	Hash   lcommon.Blake2b256
	Number uint64
}

type blockInfoJSON struct {
	Slot   uint64 `json:"slot"`
	Hash   string `json:"hash"`
	Number uint64 `json:"number"`
}

// MarshalJSON renders the hash as hex, independent of whatever
// marshalling gouroboros' own Blake2b256 type happens to implement.
func (b BlockInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(blockInfoJSON{
		Slot:   b.Slot,
		Hash:   hex.EncodeToString(b.Hash.Bytes()),
		Number: b.Number,
	})
}

func (b *BlockInfo) UnmarshalJSON(data []byte) error {
	var aux blockInfoJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	raw, err := hex.DecodeString(aux.Hash)
	if err != nil {
		return fmt.Errorf("upstreamcache: decoding block hash: %w", err)
	}
	b.Slot = aux.Slot
	b.Hash = lcommon.NewBlake2b256(raw)
	b.Number = aux.Number
	return nil
}

// Record is one {id, message} entry in a chunk file: a block's identity
// alongside the raw upstream message bytes, per spec.md §6's
// self-describing JSON array format.
type Record struct {
	ID      BlockInfo `json:"id"`
	Message []byte    `json:"message"`
}
