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

import "errors"

// ErrUnknownAssetBurn is returned when the first event observed for a
// previously unknown asset is a burn (spec.md §4.4: "the first event for
// a previously unknown asset must be a mint").
var ErrUnknownAssetBurn = errors.New("assets: burn against unknown asset")

// ErrBurnExceedsSupply is returned when a burn delta's magnitude exceeds
// the asset's current supply.
var ErrBurnExceedsSupply = errors.New("assets: burn exceeds current supply")

// ErrAssetNotFound is returned by a per-asset query for an unknown id.
var ErrAssetNotFound = errors.New("assets: asset not found")

// ErrNoReferenceNFT is returned when a CIP-68 user-token lookup cannot
// find its corresponding reference NFT.
var ErrNoReferenceNFT = errors.New("assets: no reference nft for this asset")
