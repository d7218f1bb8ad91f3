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

// BlockStatus is one of the five states a tracked block can be in
// (spec.md §3, §4.5).
type BlockStatus uint8

const (
	BlockOffered BlockStatus = iota
	BlockWanted
	BlockFetched
	BlockValidated
	BlockRejected
)

func (s BlockStatus) String() string {
	switch s {
	case BlockOffered:
		return "Offered"
	case BlockWanted:
		return "Wanted"
	case BlockFetched:
		return "Fetched"
	case BlockValidated:
		return "Validated"
	case BlockRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

// TreeBlock is one header-known block tracked by the consensus tree.
// Cross-block edges are stable hash ids, not live pointers, per the
// id-to-record convention spec.md §9 mandates for graph-shaped state.
type TreeBlock struct {
	Hash     lcommon.Blake2b256
	Number   uint64
	Slot     uint64
	Parent   *lcommon.Blake2b256
	Children []lcommon.Blake2b256
	Status   BlockStatus
	Body     []byte
}

// HasBody reports whether this block carries a body (status >= Fetched).
func (b *TreeBlock) HasBody() bool {
	return b.Status >= BlockFetched
}
