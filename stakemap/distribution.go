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

package stakemap

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	lcommon "github.com/blinklabs-io/gouroboros/ledger/common"
	"github.com/input-output-hk/acropolis-sub000/ledgermodel"
	"golang.org/x/sync/errgroup"
)

// shardCount picks a worker count bounded by available CPUs, matching
// the "embarrassingly parallel over records" guidance of spec.md §4.2.
func shardCount(n int) int {
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// SPDD computes the Stake-Pool Delegation Distribution over a clone of
// the stake-address map. Pools with zero delegators are omitted.
func SPDD(
	records map[ledgermodel.StakeAddress]ledgermodel.StakeAddressRecord,
) (map[lcommon.PoolKeyHash]ledgermodel.PoolDistributionEntry, error) {
	keys := make([]ledgermodel.StakeAddress, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	workers := shardCount(len(keys))
	shardSize := (len(keys) + workers - 1) / workers
	if shardSize == 0 {
		shardSize = 1
	}

	var mu sync.Mutex
	result := make(map[lcommon.PoolKeyHash]ledgermodel.PoolDistributionEntry)

	g, _ := errgroup.WithContext(context.Background())
	for start := 0; start < len(keys); start += shardSize {
		end := start + shardSize
		if end > len(keys) {
			end = len(keys)
		}
		shard := keys[start:end]
		g.Go(func() error {
			local := make(map[lcommon.PoolKeyHash]ledgermodel.PoolDistributionEntry)
			for _, addr := range shard {
				rec := records[addr]
				if rec.DelegatedPool == nil {
					continue
				}
				entry := local[*rec.DelegatedPool]
				entry.Active += rec.UtxoValue
				entry.Live += rec.UtxoValue + rec.Rewards
				entry.ActiveDelegatorsCount++
				local[*rec.DelegatedPool] = entry
			}
			mu.Lock()
			defer mu.Unlock()
			for pool, entry := range local {
				merged := result[pool]
				merged.Active += entry.Active
				merged.Live += entry.Live
				merged.ActiveDelegatorsCount += entry.ActiveDelegatorsCount
				result[pool] = merged
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// DRDD computes the DRep Delegation Distribution. depositByDRep seeds
// each DRep's total with its registration deposit (spec.md §4.2); a
// delegation to a DRep absent from depositByDRep is logged and ignored,
// not faulted.
func DRDD(
	records map[ledgermodel.StakeAddress]ledgermodel.StakeAddressRecord,
	depositByDRep map[lcommon.Blake2b224]uint64,
	logger *slog.Logger,
) (ledgermodel.DRepDistribution, error) {
	if logger == nil {
		logger = slog.Default()
	}
	keys := make([]ledgermodel.StakeAddress, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	workers := shardCount(len(keys))
	shardSize := (len(keys) + workers - 1) / workers
	if shardSize == 0 {
		shardSize = 1
	}

	var mu sync.Mutex
	dist := ledgermodel.DRepDistribution{
		PerDRep: make(map[lcommon.Blake2b224]uint64, len(depositByDRep)),
	}
	for cred, deposit := range depositByDRep {
		dist.PerDRep[cred] = deposit
	}

	g, _ := errgroup.WithContext(context.Background())
	for start := 0; start < len(keys); start += shardSize {
		end := start + shardSize
		if end > len(keys) {
			end = len(keys)
		}
		shard := keys[start:end]
		g.Go(func() error {
			var localAbstain, localNoConf uint64
			localPerDRep := make(map[lcommon.Blake2b224]uint64)
			for _, addr := range shard {
				rec := records[addr]
				if rec.DelegatedDRep == nil {
					continue
				}
				amount := rec.UtxoValue + rec.Rewards
				switch rec.DelegatedDRep.Kind {
				case ledgermodel.DRepChoiceAbstain:
					localAbstain += amount
				case ledgermodel.DRepChoiceNoConfidence:
					localNoConf += amount
				default:
					if _, known := depositByDRep[rec.DelegatedDRep.Credential]; !known {
						logger.Info(
							"delegation to unregistered drep ignored",
							"address", addr,
							"drep", rec.DelegatedDRep.Credential,
						)
						continue
					}
					localPerDRep[rec.DelegatedDRep.Credential] += amount
				}
			}
			mu.Lock()
			defer mu.Unlock()
			dist.Abstain += localAbstain
			dist.NoConfidence += localNoConf
			for cred, amount := range localPerDRep {
				dist.PerDRep[cred] += amount
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ledgermodel.DRepDistribution{}, err
	}
	return dist, nil
}
