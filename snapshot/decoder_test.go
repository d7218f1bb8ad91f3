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

package snapshot

import (
	"bytes"
	"testing"

	"github.com/input-output-hk/acropolis-sub000/ledgermodel"
)

// --- minimal hand-rolled CBOR encoding helpers, test-only ---

func cborHeader(major byte, n uint64) []byte {
	switch {
	case n < 24:
		return []byte{major<<5 | byte(n)}
	case n <= 0xFF:
		return []byte{major<<5 | 24, byte(n)}
	case n <= 0xFFFF:
		return []byte{major<<5 | 25, byte(n >> 8), byte(n)}
	default:
		return []byte{major<<5 | 26, byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}
	}
}

func cborArray(n int) []byte  { return cborHeader(4, uint64(n)) }
func cborMap(n int) []byte    { return cborHeader(5, uint64(n)) }
func cborUint(n uint64) []byte { return cborHeader(0, n) }
func cborBytes(b []byte) []byte {
	return append(cborHeader(2, uint64(len(b))), b...)
}
func cborNull() []byte { return []byte{0xF6} }

func emptyMap() []byte { return cborMap(0) }
func emptyArr() []byte { return cborArray(0) }

func fixedBytes(n int, fill byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = fill
	}
	return b
}

// buildMinimalSnapshot assembles a structurally valid, minimal snapshot
// stream with exactly one UTXO entry, following the traversal order
// Decoder.Run expects. It writes each CBOR item straight to a buffer in
// wire order rather than splicing byte slices together, so there is no
// risk of slices aliasing each other's backing arrays.
func buildMinimalSnapshot(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := func(parts ...[]byte) {
		for _, p := range parts {
			buf.Write(p)
		}
	}

	addr := fixedBytes(29, 0xAB)
	txHash := fixedBytes(32, 0xCD)

	writeOneSnapshot := func() {
		w(cborArray(4))
		w(emptyMap()) // pools
		w(emptyMap()) // stake by address
		w(emptyMap()) // rewards by address
		w(emptyMap()) // delegation by address
	}

	// top-level array: [epoch, prev_block_counts, cur_block_counts,
	// new_epoch_state, pool_distr, stake_distr]
	w(cborArray(6))
	w(cborUint(minSupportedEraEpoch))
	w(emptyMap()) // prev block counts
	w(emptyMap()) // cur block counts

	// new_epoch_state: [account_state, ledger_state, pparams_current,
	// pparams_prev, snapshots, non_myopic]
	w(cborArray(6))

	// account_state: [treasury, reserves]
	w(cborArray(2))
	w(cborUint(1000))
	w(cborUint(2000))

	// ledger_state: [cert_state, utxo_state]
	w(cborArray(2))

	// cert_state: [drep_registry, pool_state, delegation_state]
	w(cborArray(3))
	w(emptyMap()) // drep registry

	// pool_state: three sequential items, not wrapped in their own array --
	// registrations map, future updates (skipped), retirement schedule map
	w(emptyMap())
	w(cborNull())
	w(emptyMap())

	w(emptyMap()) // delegation_state

	// utxo_state: [utxos, deposits, fees_cumulative, gov_state, donations]
	w(cborArray(5))

	w(cborMap(1))
	w(cborArray(2))
	w(cborBytes(txHash))
	w(cborUint(0))
	w(cborArray(5))
	w(cborBytes(addr))
	w(cborUint(500))
	w(emptyMap()) // assets
	w(cborNull()) // datum
	w(cborUint(0))

	w(cborUint(10)) // deposits
	w(cborUint(7))  // fees_cumulative

	// gov_state: [proposals, enacted, expired, committee, constitution,
	// pparams_future, pulsing_drep_state]
	w(cborArray(7))
	w(emptyArr()) // proposals
	w(emptyArr()) // enacted
	w(emptyArr()) // expired
	w(emptyArr()) // committee
	w(cborNull()) // constitution
	w(cborNull()) // pparams_future
	w(cborNull()) // pulsing drep state

	w(cborUint(5)) // donations

	w(cborNull()) // pparams_current
	w(cborNull()) // pparams_prev

	w(cborArray(3)) // snapshots: mark, set, go
	writeOneSnapshot()
	writeOneSnapshot()
	writeOneSnapshot()

	w(cborNull()) // non_myopic / pulsing reward update

	w(cborNull()) // pool_distr
	w(cborNull()) // stake_distr

	return buf.Bytes()
}

func TestBootstrapMinimalSnapshot(t *testing.T) {
	data := buildMinimalSnapshot(t)

	var gotUTXO []ledgermodel.UtxoEntry
	var gotAccounts AccountsState
	var completed bool

	err := Bootstrap(bytes.NewReader(data), Callbacks{
		OnUTXO: func(e ledgermodel.UtxoEntry) {
			gotUTXO = append(gotUTXO, e)
		},
		OnAccounts: func(a AccountsState) {
			gotAccounts = a
		},
		OnComplete: func() {
			completed = true
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !completed {
		t.Fatalf("expected OnComplete to fire")
	}
	if len(gotUTXO) != 1 {
		t.Fatalf("expected exactly one utxo entry, got %d", len(gotUTXO))
	}
	if gotUTXO[0].Lovelace != 500 {
		t.Errorf("expected lovelace 500, got %d", gotUTXO[0].Lovelace)
	}
	if gotUTXO[0].Index != 0 {
		t.Errorf("expected index 0, got %d", gotUTXO[0].Index)
	}
	if gotAccounts.Pots.Treasury != 1000+5 {
		t.Errorf("expected treasury 1005 after donations applied, got %d", gotAccounts.Pots.Treasury)
	}
	if gotAccounts.Pots.Reserves != 2000 {
		t.Errorf("expected reserves 2000, got %d", gotAccounts.Pots.Reserves)
	}
	if gotAccounts.Pots.Deposits != 10 {
		t.Errorf("expected deposits 10, got %d", gotAccounts.Pots.Deposits)
	}
}

func TestBootstrapRejectsPreConwayEpoch(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(cborArray(1))
	buf.Write(cborUint(minSupportedEraEpoch - 1))

	err := Bootstrap(bytes.NewReader(buf.Bytes()), Callbacks{})
	if err == nil {
		t.Fatalf("expected an error for a pre-Conway epoch")
	}
}

func TestParseFilename(t *testing.T) {
	info, err := ParseFilename("/var/snapshots/123456.AbCdEf.cbor")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Slot != 123456 {
		t.Errorf("expected slot 123456, got %d", info.Slot)
	}
	if info.Hash != "abcdef" {
		t.Errorf("expected lower-cased hash 'abcdef', got %q", info.Hash)
	}
}

func TestParseFilenameRejectsMissingSuffix(t *testing.T) {
	if _, err := ParseFilename("123456.abcdef.json"); err == nil {
		t.Errorf("expected an error for a non-.cbor filename")
	}
}
