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

// Package accounts owns the stake-address map, pool maps, pot balances,
// reward snapshots and protocol-parameter bookkeeping (spec.md §4.3): the
// single mutable ledger-state object the snapshot codec bootstraps and
// per-block certificate/delta application subsequently mutates.
package accounts

import (
	"log/slog"
	"math/big"
)

// Era names a ledger era. Config.Era records the era the engine runs in
// (DefaultConfig sets EraConway); no code in this module branches on it.
type Era int

const (
	EraByron Era = iota
	EraShelley
	EraConway
)

// Config carries the network-specific constants the engine must not
// hard-code (spec.md §9's open questions): the security parameter, the
// rewards-worker stability window, and the Shelley monetary parameters.
type Config struct {
	// SecurityParam is Cardano's "k"; defaults to 2160 (mainnet) if zero.
	SecurityParam uint64

	// StabilityWindowSlots gates when the background rewards worker may
	// start, measured from the epoch's first slot. Defaults to 4*k when
	// zero, but is independently settable per spec.md §9.
	StabilityWindowSlots uint64

	// MonetaryExpansionRho is rho, the fraction of reserves withdrawn
	// into the rewards pot each epoch.
	MonetaryExpansionRho *big.Rat

	// TreasuryGrowthTau is tau, the fraction of the rewards pot diverted
	// to the treasury before pool distribution.
	TreasuryGrowthTau *big.Rat

	// PledgeInfluenceA0 is a0, the pledge-influence factor in the
	// per-pool saturation-adjusted reward split.
	PledgeInfluenceA0 *big.Rat

	// OptimalPoolCount is k (a.k.a. n_opt), the desired number of pools;
	// it defines the saturation threshold z0 = 1/k.
	OptimalPoolCount uint64

	// PoolDeposit is the fixed lovelace deposit a pool registration
	// certificate pays, refunded in full at retirement (spec.md §4.3).
	PoolDeposit uint64

	Era Era

	Logger *slog.Logger
}

// DefaultConfig returns mainnet-shaped Shelley monetary parameters. Every
// field remains independently overridable.
func DefaultConfig() Config {
	k := uint64(2160)
	return Config{
		SecurityParam:        k,
		StabilityWindowSlots: 4 * k,
		MonetaryExpansionRho: big.NewRat(3, 1000),
		TreasuryGrowthTau:    big.NewRat(2, 10),
		PledgeInfluenceA0:    big.NewRat(3, 10),
		OptimalPoolCount:     500,
		PoolDeposit:          500_000_000,
		Era:                  EraConway,
		Logger:               slog.Default(),
	}
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.SecurityParam == 0 {
		out.SecurityParam = 2160
	}
	if out.StabilityWindowSlots == 0 {
		out.StabilityWindowSlots = 4 * out.SecurityParam
	}
	if out.MonetaryExpansionRho == nil {
		out.MonetaryExpansionRho = big.NewRat(3, 1000)
	}
	if out.TreasuryGrowthTau == nil {
		out.TreasuryGrowthTau = big.NewRat(2, 10)
	}
	if out.PledgeInfluenceA0 == nil {
		out.PledgeInfluenceA0 = big.NewRat(3, 10)
	}
	if out.OptimalPoolCount == 0 {
		out.OptimalPoolCount = 500
	}
	if out.PoolDeposit == 0 {
		out.PoolDeposit = 500_000_000
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	return out
}
