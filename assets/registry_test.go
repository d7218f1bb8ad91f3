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
	"testing"

	lcommon "github.com/blinklabs-io/gouroboros/ledger/common"
	"github.com/input-output-hk/acropolis-sub000/ledgermodel"
)

func samplePolicy(b byte) lcommon.Blake2b224 {
	raw := make([]byte, 28)
	for i := range raw {
		raw[i] = b
	}
	return lcommon.NewBlake2b224(raw)
}

func sampleTx(b byte) lcommon.Blake2b256 {
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = b
	}
	return lcommon.NewBlake2b256(raw)
}

func TestApplyMintCreatesAssetOnFirstMint(t *testing.T) {
	r := NewRegistry(NewConfigBuilder().WithMintHistory(true).Build())
	key := ledgermodel.PolicyName{Policy: samplePolicy(1), Name: "token"}

	id, err := r.ApplyMint(key, sampleTx(1), 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info, err := r.AssetInfo(id)
	if err != nil {
		t.Fatalf("AssetInfo: %v", err)
	}
	if info.Supply != 1000 || info.MintBurnCount != 1 {
		t.Fatalf("unexpected record: %+v", info)
	}
}

func TestApplyMintRejectsBurnOfUnknownAsset(t *testing.T) {
	r := NewRegistry(NewConfigBuilder().Build())
	key := ledgermodel.PolicyName{Policy: samplePolicy(2), Name: "ghost"}

	if _, err := r.ApplyMint(key, sampleTx(1), -100); err != ErrUnknownAssetBurn {
		t.Fatalf("expected ErrUnknownAssetBurn, got %v", err)
	}
}

func TestApplyMintRejectsBurnExceedingSupply(t *testing.T) {
	r := NewRegistry(NewConfigBuilder().Build())
	key := ledgermodel.PolicyName{Policy: samplePolicy(3), Name: "tok"}
	id, _ := r.ApplyMint(key, sampleTx(1), 100)

	if _, err := r.ApplyMint(key, sampleTx(2), -200); err != ErrBurnExceedsSupply {
		t.Fatalf("expected ErrBurnExceedsSupply, got %v", err)
	}
	info, _ := r.AssetInfo(id)
	if info.Supply != 100 {
		t.Fatalf("expected supply unchanged at 100, got %d", info.Supply)
	}
}

func TestApplyMintAppendsHistoryAndIncrementsCount(t *testing.T) {
	r := NewRegistry(NewConfigBuilder().WithMintHistory(true).Build())
	key := ledgermodel.PolicyName{Policy: samplePolicy(4), Name: "tok"}
	id, _ := r.ApplyMint(key, sampleTx(1), 500)
	r.ApplyMint(key, sampleTx(2), -100)

	hist, err := r.History(id)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(hist) != 2 || hist[1].Amount != -100 || !hist[1].Burn {
		t.Fatalf("unexpected history: %+v", hist)
	}
	info, _ := r.AssetInfo(id)
	if info.MintBurnCount != 2 || info.Supply != 400 {
		t.Fatalf("unexpected record after burn: %+v", info)
	}
}

func TestHistoryDisabledReturnsStorageDisabled(t *testing.T) {
	r := NewRegistry(NewConfigBuilder().Build())
	key := ledgermodel.PolicyName{Policy: samplePolicy(5), Name: "tok"}
	id, _ := r.ApplyMint(key, sampleTx(1), 1)

	if _, err := r.History(id); err == nil {
		t.Fatalf("expected an error when history tracking is disabled")
	}
}

func TestOwnershipSendSaturatesAtZeroAndRemovesEntry(t *testing.T) {
	r := NewRegistry(NewConfigBuilder().WithAddressOwnership(true).Build())
	key := ledgermodel.PolicyName{Policy: samplePolicy(6), Name: "tok"}
	id, _ := r.ApplyMint(key, sampleTx(1), 100)
	addr := Address{Raw: "addr1"}

	r.ApplyReceive(id, addr, 50)
	r.ApplySend(id, addr, 80)

	holders, err := r.Holders(id)
	if err != nil {
		t.Fatalf("Holders: %v", err)
	}
	if _, exists := holders[addr]; exists {
		t.Fatalf("expected the zeroed-out holder entry to be removed, got %+v", holders)
	}
}

func TestOwnershipReceiveAccumulates(t *testing.T) {
	r := NewRegistry(NewConfigBuilder().WithAddressOwnership(true).Build())
	key := ledgermodel.PolicyName{Policy: samplePolicy(7), Name: "tok"}
	id, _ := r.ApplyMint(key, sampleTx(1), 100)
	addr := Address{Raw: "addr2"}

	r.ApplyReceive(id, addr, 30)
	r.ApplyReceive(id, addr, 20)

	holders, _ := r.Holders(id)
	if holders[addr] != 50 {
		t.Fatalf("expected balance 50, got %d", holders[addr])
	}
}

func TestRecordTransactionDedupesWithinOneTransaction(t *testing.T) {
	r := NewRegistry(NewConfigBuilder().WithTxListPolicy(ledgermodel.TxListPolicy{}).Build())
	key := ledgermodel.PolicyName{Policy: samplePolicy(8), Name: "tok"}
	id, _ := r.ApplyMint(key, sampleTx(1), 100)

	tx := sampleTx(9)
	r.RecordTransaction(tx, []ledgermodel.AssetID{id, id, id})

	txs, err := r.Transactions(id)
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	// sampleTx(1) from ApplyMint plus one dedup'd entry from RecordTransaction.
	if len(txs) != 2 {
		t.Fatalf("expected 2 touchpoints (mint + one deduped tx), got %d: %+v", len(txs), txs)
	}
}

func TestTransactionListLastNRetention(t *testing.T) {
	r := NewRegistry(NewConfigBuilder().WithTxListPolicy(ledgermodel.TxListPolicy{LastN: 2}).Build())
	key := ledgermodel.PolicyName{Policy: samplePolicy(10), Name: "tok"}
	id, _ := r.ApplyMint(key, sampleTx(1), 100)
	r.RecordTransaction(sampleTx(2), []ledgermodel.AssetID{id})
	r.RecordTransaction(sampleTx(3), []ledgermodel.AssetID{id})

	txs, _ := r.Transactions(id)
	if len(txs) != 2 {
		t.Fatalf("expected retention capped at 2, got %d", len(txs))
	}
	if txs[0] != sampleTx(2) || txs[1] != sampleTx(3) {
		t.Fatalf("expected the oldest touchpoint dropped, got %+v", txs)
	}
}

func TestPolicyIndexListsAssetsUnderOnePolicy(t *testing.T) {
	r := NewRegistry(NewConfigBuilder().WithPolicyIndex(true).Build())
	policy := samplePolicy(11)
	keyA := ledgermodel.PolicyName{Policy: policy, Name: "a"}
	keyB := ledgermodel.PolicyName{Policy: policy, Name: "b"}
	idA, _ := r.ApplyMint(keyA, sampleTx(1), 1)
	idB, _ := r.ApplyMint(keyB, sampleTx(1), 1)

	ids, err := r.AssetsByPolicy(policy)
	if err != nil {
		t.Fatalf("AssetsByPolicy: %v", err)
	}
	if len(ids) != 2 || ids[0] != idA || ids[1] != idB {
		t.Fatalf("unexpected policy index contents: %+v", ids)
	}
}

func TestApplyCIP25UpdatesKnownAssetAndIgnoresUnknown(t *testing.T) {
	r := NewRegistry(NewConfigBuilder().WithMetadata(true).Build())
	policy := samplePolicy(1)
	key := ledgermodel.PolicyName{Policy: policy, Name: "nft1"}
	id, _ := r.ApplyMint(key, sampleTx(1), 1)

	raw := map[string]any{
		"version": "2.0",
		"721": map[string]any{
			hex.EncodeToString(policy.Bytes()): map[string]any{
				"nft1": map[string]any{"name": "Cool NFT"},
			},
			"deadbeef": "not a map, skipped",
		},
	}
	r.ApplyCIP25(raw)

	info, err := r.AssetInfo(id)
	if err != nil {
		t.Fatalf("AssetInfo: %v", err)
	}
	if info.Metadata.CIP25 == nil || info.Metadata.CIP25.Version != "2.0" {
		t.Fatalf("expected CIP-25 v2 metadata applied, got %+v", info.Metadata)
	}
}

func TestApplyCIP68ReferenceAndUserTokenResolution(t *testing.T) {
	r := NewRegistry(NewConfigBuilder().WithMetadata(true).Build())
	policy := samplePolicy(12)
	refName := string([]byte{0x00, 0x06, 0x43, 0xB0}) + "mynft"
	userName := string([]byte{0x00, 0x0D, 0xE1, 0x40}) + "mynft"

	refKey := ledgermodel.PolicyName{Policy: policy, Name: refName}
	userKey := ledgermodel.PolicyName{Policy: policy, Name: userName}
	refID, _ := r.ApplyMint(refKey, sampleTx(1), 1)
	userID, _ := r.ApplyMint(userKey, sampleTx(1), 1000)

	if err := r.ApplyCIP68(refKey, ledgermodel.CIP68Datum{Version: 1}); err != nil {
		t.Fatalf("ApplyCIP68: %v", err)
	}

	refInfo, err := r.AssetInfo(refID)
	if err != nil {
		t.Fatalf("AssetInfo(ref): %v", err)
	}
	if refInfo.Metadata.CIP68 != nil {
		t.Fatalf("expected the reference NFT's own query to strip CIP-68 metadata, got %+v", refInfo.Metadata.CIP68)
	}

	userInfo, err := r.AssetInfo(userID)
	if err != nil {
		t.Fatalf("AssetInfo(user): %v", err)
	}
	if userInfo.Metadata.CIP68 == nil || userInfo.Metadata.CIP68.Version != 1 {
		t.Fatalf("expected the user token to resolve the reference NFT's metadata, got %+v", userInfo.Metadata)
	}
}

func TestLabelChecksumRoundTrips(t *testing.T) {
	label := LabelFromPrefix(cip67RefPrefix)
	cs, err := label.Checksum()
	if err != nil {
		t.Fatalf("Checksum: %v", err)
	}
	constructed := [4]byte{cip67RefPrefix[0], cip67RefPrefix[1], cip67RefPrefix[2], cs}
	if !label.VerifyPrefix(constructed) {
		t.Fatalf("expected a prefix built from the label's own checksum to verify")
	}
}
