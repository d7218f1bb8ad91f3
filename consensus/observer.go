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

package consensus

import (
	lcommon "github.com/blinklabs-io/gouroboros/ledger/common"
)

// Observer receives the three notifications a Tree emits as the
// favoured chain evolves. A Tree has exactly one observer; fan-out to
// multiple downstream consumers is the observer implementation's job,
// not the Tree's.
type Observer interface {
	// BlockProposed fires, in ancestor-to-tip order, for every block on
	// the favoured chain whose body has become available.
	BlockProposed(number uint64, hash lcommon.Blake2b256, body []byte)

	// Rollback fires when the favoured tip moves to a block that does not
	// descend from the previous tip, whether or not the abandoned blocks
	// were proposed; number is the last surviving common ancestor.
	Rollback(number uint64)

	// BlockRejected fires once, for the rejected hash itself, before any
	// resulting Rollback.
	BlockRejected(hash lcommon.Blake2b256)
}
