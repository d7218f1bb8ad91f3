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
	"errors"

	lcommon "github.com/blinklabs-io/gouroboros/ledger/common"
	"github.com/input-output-hk/acropolis-sub000/assets"
	"github.com/input-output-hk/acropolis-sub000/ledgermodel"
)

// AssetQueries is the read surface over the native-asset index (spec.md
// §6's assets query group), implemented directly by assets.Registry.
type AssetQueries interface {
	ListAssets() []ledgermodel.AssetRecord
	AssetInfo(id ledgermodel.AssetID) (ledgermodel.AssetRecord, error)
	History(id ledgermodel.AssetID) ([]ledgermodel.MintEvent, error)
	Holders(id ledgermodel.AssetID) (map[assets.Address]uint64, error)
	Transactions(id ledgermodel.AssetID) ([]lcommon.Blake2b256, error)
	AssetsByPolicy(policy lcommon.Blake2b224) ([]ledgermodel.AssetID, error)
}

// translateAssetsErr maps assets.Registry's own error vocabulary onto
// this package's NotFound/StorageDisabled/Err variants.
func translateAssetsErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, assets.ErrAssetNotFound) {
		return NotFound
	}
	var sd *ledgermodel.StorageDisabledError
	if errors.As(err, &sd) {
		return &StorageDisabled{Feature: sd.Feature}
	}
	return &Err{Message: err.Error()}
}

// AssetInfo resolves id's record, translating Registry's own error
// vocabulary onto this package's variants.
func AssetInfo(q AssetQueries, id ledgermodel.AssetID) (ledgermodel.AssetRecord, error) {
	rec, err := q.AssetInfo(id)
	if err != nil {
		return ledgermodel.AssetRecord{}, translateAssetsErr(err)
	}
	return rec, nil
}

// AssetHistory resolves id's mint/burn history.
func AssetHistory(q AssetQueries, id ledgermodel.AssetID) ([]ledgermodel.MintEvent, error) {
	hist, err := q.History(id)
	if err != nil {
		return nil, translateAssetsErr(err)
	}
	return hist, nil
}

// AssetHolders resolves id's address-to-balance map.
func AssetHolders(q AssetQueries, id ledgermodel.AssetID) (map[assets.Address]uint64, error) {
	holders, err := q.Holders(id)
	if err != nil {
		return nil, translateAssetsErr(err)
	}
	return holders, nil
}

// AssetTransactions resolves id's retained transaction touchpoints.
func AssetTransactions(q AssetQueries, id ledgermodel.AssetID) ([]lcommon.Blake2b256, error) {
	txs, err := q.Transactions(id)
	if err != nil {
		return nil, translateAssetsErr(err)
	}
	return txs, nil
}

// AssetsByPolicy resolves every asset interned under policy.
func AssetsByPolicy(q AssetQueries, policy lcommon.Blake2b224) ([]ledgermodel.AssetID, error) {
	ids, err := q.AssetsByPolicy(policy)
	if err != nil {
		return nil, translateAssetsErr(err)
	}
	return ids, nil
}
