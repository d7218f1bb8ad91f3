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
	"testing"

	lcommon "github.com/blinklabs-io/gouroboros/ledger/common"
)

func sampleCredential(b byte) lcommon.Credential {
	raw := make([]byte, 28)
	for i := range raw {
		raw[i] = b
	}
	return lcommon.Credential{Credential: lcommon.NewBlake2b224(raw)}
}

func TestDRepChoiceIsSentinel(t *testing.T) {
	abstain := DRepChoice{Kind: DRepChoiceAbstain}
	if !abstain.IsSentinel() {
		t.Errorf("expected abstain to be a sentinel choice")
	}
	keyed := DRepChoice{Kind: DRepChoiceKey, Credential: lcommon.NewBlake2b224(make([]byte, 28))}
	if keyed.IsSentinel() {
		t.Errorf("expected keyed drep choice to not be a sentinel")
	}
}

func TestStakeAddressRecordCloneIsIndependent(t *testing.T) {
	pool := lcommon.NewBlake2b224(make([]byte, 28))
	rec := &StakeAddressRecord{
		Registered:    true,
		UtxoValue:     100,
		DelegatedPool: &pool,
	}
	clone := rec.Clone()
	*clone.DelegatedPool = lcommon.NewBlake2b224([]byte{1, 2, 3})

	if *rec.DelegatedPool == *clone.DelegatedPool {
		t.Errorf("mutating clone's pool pointer affected the original record")
	}
}

func TestStakeAddressAsMapKey(t *testing.T) {
	a1 := StakeAddress{Network: 1, Credential: sampleCredential(0xAA)}
	a2 := StakeAddress{Network: 1, Credential: sampleCredential(0xAA)}
	m := map[StakeAddress]int{a1: 7}
	if m[a2] != 7 {
		t.Errorf("expected StakeAddress with identical fields to compare equal as a map key")
	}
}
