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
	utxorpc "github.com/utxorpc/go-codegen/utxorpc/v1alpha/cardano"
	"github.com/input-output-hk/acropolis-sub000/ledgermodel"
)

// AssetRecordUtxorpc renders rec as a utxorpc Asset, quantity set to its
// current supply. Mirrors the BigInt encoding the teacher's own
// MockTransactionOutput.Utxorpc uses for on-chain asset amounts, so a
// caller already consuming gouroboros' utxorpc conversions gets the same
// shape from this engine's query results.
func AssetRecordUtxorpc(rec ledgermodel.AssetRecord) *utxorpc.Asset {
	return &utxorpc.Asset{
		Name: []byte(rec.PolicyName.Name),
		Quantity: &utxorpc.Asset_OutputCoin{
			OutputCoin: lcommon.ToUtxorpcBigInt(rec.Supply),
		},
	}
}

// AssetsByPolicyUtxorpc groups records minted under policy into a single
// Multiasset, one Asset per asset name, matching the per-policy grouping
// lcommon's own multi-asset conversion uses.
func AssetsByPolicyUtxorpc(policy lcommon.Blake2b224, records []ledgermodel.AssetRecord) *utxorpc.Multiasset {
	out := &utxorpc.Multiasset{PolicyId: policy.Bytes()}
	for _, rec := range records {
		out.Assets = append(out.Assets, AssetRecordUtxorpc(rec))
	}
	return out
}

// PotsUtxorpc renders the three pots as utxorpc BigInts.
func PotsUtxorpc(pots ledgermodel.Pots) (reserves, treasury, deposits *utxorpc.BigInt) {
	return lcommon.ToUtxorpcBigInt(pots.Reserves),
		lcommon.ToUtxorpcBigInt(pots.Treasury),
		lcommon.ToUtxorpcBigInt(pots.Deposits)
}

// StakeAddressRewardsUtxorpc renders a stake address's current reward
// balance as a utxorpc BigInt.
func StakeAddressRewardsUtxorpc(rec ledgermodel.StakeAddressRecord) *utxorpc.BigInt {
	return lcommon.ToUtxorpcBigInt(rec.Rewards)
}
