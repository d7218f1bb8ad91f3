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
	"sync"

	lcommon "github.com/blinklabs-io/gouroboros/ledger/common"
)

// ProposedEvent is one recorded BlockProposed call.
type ProposedEvent struct {
	Number uint64
	Hash   lcommon.Blake2b256
	Body   []byte
}

// RecordingObserver is an Observer that appends every call it receives,
// for assertion by tests. Not safe for use outside of tests; a Tree
// calls its observer under the Tree's own lock, so the Proposed,
// Rollbacks and Rejected accessors take the recorder's own mutex, as the
// recording methods do, to stay race-free when a test inspects it concurrently
// with a background AddBlock call.
type RecordingObserver struct {
	mu        sync.Mutex
	proposed  []ProposedEvent
	rollbacks []uint64
	rejected  []lcommon.Blake2b256
}

func (o *RecordingObserver) BlockProposed(number uint64, hash lcommon.Blake2b256, body []byte) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.proposed = append(o.proposed, ProposedEvent{Number: number, Hash: hash, Body: body})
}

func (o *RecordingObserver) Rollback(number uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rollbacks = append(o.rollbacks, number)
}

func (o *RecordingObserver) BlockRejected(hash lcommon.Blake2b256) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rejected = append(o.rejected, hash)
}

// Proposed returns a copy of every BlockProposed call recorded so far.
func (o *RecordingObserver) Proposed() []ProposedEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]ProposedEvent, len(o.proposed))
	copy(out, o.proposed)
	return out
}

// Rollbacks returns a copy of every Rollback call recorded so far.
func (o *RecordingObserver) Rollbacks() []uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]uint64, len(o.rollbacks))
	copy(out, o.rollbacks)
	return out
}

// Rejected returns a copy of every BlockRejected call recorded so far.
func (o *RecordingObserver) Rejected() []lcommon.Blake2b256 {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]lcommon.Blake2b256, len(o.rejected))
	copy(out, o.rejected)
	return out
}
