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
	"github.com/blinklabs-io/plutigo/data"
)

// PolicyName is the interning key for an asset: a 28-byte policy id plus
// an asset name of up to 32 bytes.
type PolicyName struct {
	Policy lcommon.Blake2b224
	Name   string // raw asset-name bytes, stored as a string map key
}

// AssetID is the compact integer an asset is known by after interning.
type AssetID int64

// MintEvent is one append to an asset's mint/burn history.
type MintEvent struct {
	TxHash lcommon.Blake2b256
	Amount int64 // positive: mint, negative: burn
	Burn   bool
}

// CIP25Metadata is the raw per-asset CIP-25 metadata value, kept as the
// caller supplied it (policy-keyed maps inside transaction metadata label
// 721).
type CIP25Metadata struct {
	Version string // "1.0" or "2.0"
	Raw     map[string]any
}

// CIP68Datum is the decoded inline datum attached to a CIP-68 reference
// NFT, represented as real Plutus Data (the same structural type the
// teacher's mock transaction outputs build via plutigo/data) rather than
// an engine-invented shape.
type CIP68Datum struct {
	Version int64
	Data    data.PlutusData
}

// AssetMetadata bundles both metadata standards an asset may carry.
type AssetMetadata struct {
	CIP25 *CIP25Metadata
	CIP68 *CIP68Datum
}

// AssetRecord is the per-asset value held by the assets index.
type AssetRecord struct {
	ID             AssetID
	PolicyName     PolicyName
	Supply         uint64
	InitialMintTx  lcommon.Blake2b256
	MintBurnCount  uint64
	Metadata       AssetMetadata
}

// TxListPolicy configures how many transaction touchpoints an asset
// retains (spec.md §4.4).
type TxListPolicy struct {
	Off   bool
	LastN int // 0 means unlimited ("All")
}

// Keep returns the length a touchpoint list of currentLen entries (after
// one more id was appended) is cut to: LastN when the list is longer,
// otherwise currentLen, and always currentLen when LastN is 0 (All). ok
// is false only for an Off policy.
func (p TxListPolicy) Keep(currentLen int) (truncateTo int, ok bool) {
	if p.Off {
		return 0, false
	}
	if p.LastN <= 0 {
		return currentLen, true
	}
	if currentLen > p.LastN {
		return p.LastN, true
	}
	return currentLen, true
}
