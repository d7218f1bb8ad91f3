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

// Package stakemap implements the central stake-address index (spec.md
// §4.2): one mutable record per stake address, single-thread writable,
// with cheap clones for parallel aggregation queries.
package stakemap

import (
	"log/slog"
	"sync"

	lcommon "github.com/blinklabs-io/gouroboros/ledger/common"
	"github.com/input-output-hk/acropolis-sub000/ledgermodel"
)

// Map is the stake-address index. The zero value is not usable; use New.
type Map struct {
	mu      sync.RWMutex
	records map[ledgermodel.StakeAddress]*ledgermodel.StakeAddressRecord
	logger  *slog.Logger
}

// New creates an empty stake-address map.
func New(logger *slog.Logger) *Map {
	if logger == nil {
		logger = slog.Default()
	}
	return &Map{
		records: make(map[ledgermodel.StakeAddress]*ledgermodel.StakeAddressRecord),
		logger:  logger,
	}
}

// Len returns the number of known addresses (registered or not).
func (m *Map) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// Get returns the record for addr, or nil if unknown.
func (m *Map) Get(addr ledgermodel.StakeAddress) *ledgermodel.StakeAddressRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.records[addr]
}

// Set installs rec (used by the snapshot codec bootstrap, which has
// already validated the record shape).
func (m *Map) Set(addr ledgermodel.StakeAddress, rec *ledgermodel.StakeAddressRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[addr] = rec
}

func (m *Map) lazyCreate(addr ledgermodel.StakeAddress) *ledgermodel.StakeAddressRecord {
	rec, ok := m.records[addr]
	if !ok {
		rec = &ledgermodel.StakeAddressRecord{}
		m.records[addr] = rec
	}
	return rec
}

// Register flips registered=false->true and adds deposit to the caller's
// tracked pots.deposits accounting (the caller, accounts.State, owns
// Pots; this method only reports the amount to add).
func (m *Map) Register(addr ledgermodel.StakeAddress, deposit uint64) (addedDeposit uint64, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.lazyCreate(addr)
	if rec.Registered {
		m.logger.Info("stake address already registered", "address", addr)
		return 0, false
	}
	rec.Registered = true
	rec.DepositLovelace = deposit
	return deposit, true
}

// Deregister flips registered=true->false and reports the deposit to
// refund.
func (m *Map) Deregister(addr ledgermodel.StakeAddress) (refund uint64, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, exists := m.records[addr]
	if !exists || !rec.Registered {
		m.logger.Info("stake address not registered", "address", addr)
		return 0, false
	}
	rec.Registered = false
	refund = rec.DepositLovelace
	rec.DepositLovelace = 0
	return refund, true
}

// RecordStakeDelegation sets DelegatedPool. Requires the address to be
// registered.
func (m *Map) RecordStakeDelegation(addr ledgermodel.StakeAddress, pool lcommon.PoolKeyHash) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, exists := m.records[addr]
	if !exists || !rec.Registered {
		m.logger.Info("stake delegation rejected: not registered", "address", addr)
		return false
	}
	p := pool
	rec.DelegatedPool = &p
	return true
}

// RecordDRepDelegation sets DelegatedDRep. Requires the address to be
// registered.
func (m *Map) RecordDRepDelegation(addr ledgermodel.StakeAddress, choice ledgermodel.DRepChoice) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, exists := m.records[addr]
	if !exists || !rec.Registered {
		m.logger.Info("drep delegation rejected: not registered", "address", addr)
		return false
	}
	rec.DelegatedDRep = &choice
	return true
}

// AddReward lazily creates the record and increases rewards by amount.
func (m *Map) AddReward(addr ledgermodel.StakeAddress, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.lazyCreate(addr)
	if rec.Rewards > ^uint64(0)-amount {
		return ledgermodel.ErrOverflow
	}
	rec.Rewards += amount
	return nil
}

// SubtractReward lazily creates the record and decreases rewards by
// amount, used for a negative MIR entry paying value back out of a
// stake address into its source pot. Underflow is rejected and the
// record left unchanged.
func (m *Map) SubtractReward(addr ledgermodel.StakeAddress, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.lazyCreate(addr)
	if amount > rec.Rewards {
		return ledgermodel.ErrUnderflow
	}
	rec.Rewards -= amount
	return nil
}

// ApplyUtxoDelta lazily creates the record and applies a signed delta to
// utxo_value. Underflow preserves the previous value and reports an
// error.
func (m *Map) ApplyUtxoDelta(addr ledgermodel.StakeAddress, delta int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.lazyCreate(addr)
	if delta < 0 {
		dec := uint64(-delta)
		if dec > rec.UtxoValue {
			m.logger.Info("utxo delta underflow", "address", addr, "delta", delta)
			return ledgermodel.ErrUnderflow
		}
		rec.UtxoValue -= dec
		return nil
	}
	inc := uint64(delta)
	if rec.UtxoValue > ^uint64(0)-inc {
		return ledgermodel.ErrOverflow
	}
	rec.UtxoValue += inc
	return nil
}

// Withdraw decreases rewards by amount. Amount 0 is a valid no-op used to
// witness an address. Unknown address or underflow is logged and leaves
// state unchanged.
func (m *Map) Withdraw(addr ledgermodel.StakeAddress, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if amount == 0 {
		return nil
	}
	rec, exists := m.records[addr]
	if !exists {
		m.logger.Info("withdrawal from unknown address", "address", addr)
		return ledgermodel.ErrNotFound
	}
	if amount > rec.Rewards {
		m.logger.Info("withdrawal exceeds rewards", "address", addr, "amount", amount, "rewards", rec.Rewards)
		return ledgermodel.ErrUnderflow
	}
	rec.Rewards -= amount
	return nil
}

// RemoveAllDelegationsTo clears DelegatedPool on every record currently
// delegating to pool. Used during epoch finalisation after a pool
// retires.
func (m *Map) RemoveAllDelegationsTo(pool lcommon.PoolKeyHash) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.records {
		if rec.DelegatedPool != nil && *rec.DelegatedPool == pool {
			rec.DelegatedPool = nil
		}
	}
}

// Clone takes the exclusive lock briefly and returns a value-copied
// snapshot safe for concurrent read-only aggregation (SPDD, DRDD,
// live-stake queries), per spec.md §5 and §9.
func (m *Map) Clone() map[ledgermodel.StakeAddress]ledgermodel.StakeAddressRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[ledgermodel.StakeAddress]ledgermodel.StakeAddressRecord, len(m.records))
	for k, v := range m.records {
		out[k] = *v
	}
	return out
}
