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
	lcommon "github.com/blinklabs-io/gouroboros/ledger/common"
	"github.com/input-output-hk/acropolis-sub000/ledgermodel"
)

// ConsensusQueries is the read surface over the header-known block tree
// (spec.md §6's consensus/blocks query group), implemented directly by
// consensus.Tree.
type ConsensusQueries interface {
	Block(hash lcommon.Blake2b256) (ledgermodel.TreeBlock, bool)
	FavouredTip() (lcommon.Blake2b256, uint64)
}

// BlockInfo resolves hash's tracked block, translating an unknown hash
// to NotFound.
func BlockInfo(q ConsensusQueries, hash lcommon.Blake2b256) (ledgermodel.TreeBlock, error) {
	blk, ok := q.Block(hash)
	if !ok {
		return ledgermodel.TreeBlock{}, NotFound
	}
	return blk, nil
}
