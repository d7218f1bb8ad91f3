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

// Package assets implements the native-asset index (spec.md §4.4):
// supply and mint/burn history, address ownership, per-asset
// transaction touchpoints and per-policy listing, and CIP-25/CIP-68
// metadata, each gated by an independently configurable storage class.
package assets

import (
	"log/slog"

	"github.com/input-output-hk/acropolis-sub000/ledgermodel"
)

// Config selects which storage classes the registry maintains. Supply
// tracking is always on (an asset registry that didn't track supply
// wouldn't be one). The boolean classes are off in a zero Config; its
// zero TxList policy retains every touchpoint (All), whereas
// NewConfigBuilder starts with TxList Off.
type Config struct {
	TrackMintHistory      bool
	TrackAddressOwnership bool
	TrackPolicyIndex      bool
	TrackMetadata         bool
	TxList                ledgermodel.TxListPolicy

	Logger *slog.Logger
}

// ConfigBuilder is the fluent construction API for Config, imitating the
// teacher's LedgerStateBuilder style (ledger/state.go).
type ConfigBuilder struct {
	cfg Config
}

// NewConfigBuilder starts a builder with every optional class disabled
// and an Off transaction-list policy.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{cfg: Config{TxList: ledgermodel.TxListPolicy{Off: true}}}
}

// WithMintHistory enables per-asset mint/burn history.
func (b *ConfigBuilder) WithMintHistory(enabled bool) *ConfigBuilder {
	b.cfg.TrackMintHistory = enabled
	return b
}

// WithAddressOwnership enables the per-asset address-balance map.
func (b *ConfigBuilder) WithAddressOwnership(enabled bool) *ConfigBuilder {
	b.cfg.TrackAddressOwnership = enabled
	return b
}

// WithPolicyIndex enables the secondary policy -> assets listing.
func (b *ConfigBuilder) WithPolicyIndex(enabled bool) *ConfigBuilder {
	b.cfg.TrackPolicyIndex = enabled
	return b
}

// WithMetadata enables CIP-25/CIP-68 metadata storage.
func (b *ConfigBuilder) WithMetadata(enabled bool) *ConfigBuilder {
	b.cfg.TrackMetadata = enabled
	return b
}

// WithTxListPolicy sets the per-asset transaction touchpoint retention
// policy (Off, All, or Last(N)).
func (b *ConfigBuilder) WithTxListPolicy(policy ledgermodel.TxListPolicy) *ConfigBuilder {
	b.cfg.TxList = policy
	return b
}

// WithLogger overrides the default logger.
func (b *ConfigBuilder) WithLogger(logger *slog.Logger) *ConfigBuilder {
	b.cfg.Logger = logger
	return b
}

// Build finalises the Config, filling in a default logger if none was set.
func (b *ConfigBuilder) Build() Config {
	out := b.cfg
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	return out
}
