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
	"testing"

	lcommon "github.com/blinklabs-io/gouroboros/ledger/common"
	utxorpc "github.com/utxorpc/go-codegen/utxorpc/v1alpha/cardano"
	"github.com/input-output-hk/acropolis-sub000/assets"
	"github.com/input-output-hk/acropolis-sub000/ledgermodel"
)

type fakePoolQueries struct {
	pool   ledgermodel.PoolRegistration
	known  bool
	retire uint64
	sched  bool
}

func (f fakePoolQueries) Pool(lcommon.PoolKeyHash) (ledgermodel.PoolRegistration, bool) {
	return f.pool, f.known
}
func (f fakePoolQueries) ListPools() []lcommon.PoolKeyHash { return nil }
func (f fakePoolQueries) RetirementEpoch(lcommon.PoolKeyHash) (uint64, bool) {
	return f.retire, f.sched
}

func TestPoolInfoTranslatesUnknownToNotFound(t *testing.T) {
	q := fakePoolQueries{known: false}
	_, err := PoolInfo(q, lcommon.PoolKeyHash{})
	if err != NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestPoolRetirementTranslatesUnscheduledToNotFound(t *testing.T) {
	q := fakePoolQueries{sched: false}
	_, err := PoolRetirement(q, lcommon.PoolKeyHash{})
	if err != NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestTranslateAssetsErrMapsKnownVariants(t *testing.T) {
	if got := translateAssetsErr(assets.ErrAssetNotFound); got != NotFound {
		t.Fatalf("expected NotFound, got %v", got)
	}

	sd := &ledgermodel.StorageDisabledError{Feature: "mint history"}
	got := translateAssetsErr(sd)
	var asSD *StorageDisabled
	if !errors.As(got, &asSD) || asSD.Feature != "mint history" {
		t.Fatalf("expected StorageDisabled{mint history}, got %v", got)
	}

	other := errors.New("boom")
	got = translateAssetsErr(other)
	var asErr *Err
	if !errors.As(got, &asErr) || asErr.Message != "boom" {
		t.Fatalf("expected Err{boom}, got %v", got)
	}

	if translateAssetsErr(nil) != nil {
		t.Fatalf("expected nil passthrough")
	}
}

type fakeConsensusQueries struct {
	blk   ledgermodel.TreeBlock
	known bool
}

func (f fakeConsensusQueries) Block(lcommon.Blake2b256) (ledgermodel.TreeBlock, bool) {
	return f.blk, f.known
}
func (f fakeConsensusQueries) FavouredTip() (lcommon.Blake2b256, uint64) {
	return f.blk.Hash, f.blk.Number
}

func TestBlockInfoTranslatesUnknownToNotFound(t *testing.T) {
	q := fakeConsensusQueries{known: false}
	_, err := BlockInfo(q, lcommon.Blake2b256{})
	if err != NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestAssetRecordUtxorpcCarriesSupplyAndName(t *testing.T) {
	rec := ledgermodel.AssetRecord{
		PolicyName: ledgermodel.PolicyName{Name: "mytoken"},
		Supply:     42,
	}
	out := AssetRecordUtxorpc(rec)
	if string(out.Name) != "mytoken" {
		t.Fatalf("expected name mytoken, got %s", out.Name)
	}
	coin, ok := out.Quantity.(*utxorpc.Asset_OutputCoin)
	if !ok {
		t.Fatalf("expected Asset_OutputCoin, got %T", out.Quantity)
	}
	if coin.OutputCoin == nil {
		t.Fatalf("expected non-nil OutputCoin")
	}
}

func TestPotsUtxorpcCarriesAllThreePots(t *testing.T) {
	reserves, treasury, deposits := PotsUtxorpc(ledgermodel.Pots{
		Reserves: 1, Treasury: 2, Deposits: 3,
	})
	if reserves == nil || treasury == nil || deposits == nil {
		t.Fatalf("expected non-nil pots, got %v %v %v", reserves, treasury, deposits)
	}
}
