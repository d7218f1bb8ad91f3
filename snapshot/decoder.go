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

package snapshot

import (
	"io"

	gcbor "github.com/blinklabs-io/gouroboros/cbor"
	lcommon2 "github.com/blinklabs-io/gouroboros/ledger/common"
	"github.com/input-output-hk/acropolis-sub000/ledgermodel"
)

// minSupportedEraEpoch is the first epoch of the earliest era this engine
// bootstraps from. Snapshots taken before it fail decoding rather than be
// silently misinterpreted.
const minSupportedEraEpoch = 290

// Decoder drives a single pass over a snapshot file, per spec.md §4.1.
// The zero value is not usable; use NewDecoder.
type Decoder struct {
	scan *cborScanner
	cb   Callbacks
}

// NewDecoder wraps r (which the caller owns and must close) for a single
// streaming bootstrap pass.
func NewDecoder(r io.Reader, cb Callbacks) *Decoder {
	return &Decoder{scan: newCborScanner(r), cb: cb}
}

// Bootstrap is a convenience wrapper equivalent to
// NewDecoder(r, cb).Run().
func Bootstrap(r io.Reader, cb Callbacks) error {
	return NewDecoder(r, cb).Run()
}

// Run executes the decode in the order spec.md §4.1 lists: epoch, block
// counts, account state, cert state, utxo state, governance state, reward
// snapshots, pulsing reward update. It never reads the file a second time.
func (d *Decoder) Run() error {
	top, err := d.scan.readContainerHeader(nil)
	if err != nil {
		return err
	}
	if top.major != majorArray {
		return ledgermodel.NewStructuralError("top-level item is not an array")
	}

	// 1. epoch
	epoch, err := d.scan.readUint(nil)
	if err != nil {
		return err
	}
	if epoch < minSupportedEraEpoch {
		return ledgermodel.NewStructuralError("pre-Conway")
	}

	// 2. previous/current block-count maps: pool_id -> u8
	if _, err := d.readBlockCountMap(); err != nil {
		return err
	}
	totalNonOBFT, err := d.readBlockCountMap()
	if err != nil {
		return err
	}

	// new_epoch_state = [account_state, ledger_state, pparams_current,
	// pparams_prev, snapshots, non_myopic]
	nes, err := d.scan.readContainerHeader(nil)
	if err != nil {
		return err
	}
	if nes.major != majorArray {
		return ledgermodel.NewStructuralError("new_epoch_state is not an array")
	}

	// 3. account_state = [treasury, reserves]
	pots, err := d.readAccountState()
	if err != nil {
		return err
	}

	// ledger_state = [cert_state, utxo_state]
	ledgerState, err := d.scan.readContainerHeader(nil)
	if err != nil {
		return err
	}
	if ledgerState.major != majorArray {
		return ledgermodel.NewStructuralError("ledger_state is not an array")
	}

	// 4. cert_state = [voting_state, pool_state, delegation_state]
	certState, err := d.scan.readContainerHeader(nil)
	if err != nil {
		return err
	}
	if certState.major != majorArray {
		return ledgermodel.NewStructuralError("cert_state is not an array")
	}
	dreps, err := d.readDRepRegistry()
	if err != nil {
		return err
	}
	d.cb.dreps(dreps)

	poolsState, err := d.readPoolState()
	if err != nil {
		return err
	}
	d.cb.pools(poolsState)

	delegations, err := d.readDelegationState()
	if err != nil {
		return err
	}

	// 5. utxo_state = [utxos, deposits, fees_cumulative, gov_state, donations]
	utxoState, err := d.scan.readContainerHeader(nil)
	if err != nil {
		return err
	}
	if utxoState.major != majorArray {
		return ledgermodel.NewStructuralError("utxo_state is not an array")
	}
	if err := d.readUtxoMap(); err != nil {
		return err
	}
	deposits, err := d.scan.readUint(nil)
	if err != nil {
		return err
	}
	if err := pots.ApplyDelta(ledgermodel.PotDeposits, int64(deposits)); err != nil {
		return ledgermodel.NewStructuralError("deposits overflow pots")
	}
	feesCumulative, err := d.scan.readUint(nil)
	if err != nil {
		return err
	}

	// 6. governance state
	gov, err := d.readGovernanceState()
	if err != nil {
		return err
	}

	donations, err := d.scan.readUint(nil)
	if err != nil {
		return err
	}
	if err := pots.ApplyDelta(ledgermodel.PotTreasury, int64(donations)); err != nil {
		return ledgermodel.NewStructuralError("donations overflow treasury")
	}

	d.cb.accounts(AccountsState{
		Pots:        *pots,
		DRepRegs:    dreps,
		Delegations: delegations,
	})
	d.cb.governanceState(gov)

	// pparams_current, pparams_prev: opaque records, traversed but not
	// interpreted by this engine.
	if err := d.scan.skipItem(); err != nil {
		return err
	}
	if err := d.scan.skipItem(); err != nil {
		return err
	}

	// 7. reward snapshots (mark/set/go) + cumulative fees for prior epoch
	snapshots, err := d.readSnapshots(epoch, *pots, totalNonOBFT)
	if err != nil {
		return err
	}
	d.cb.snapshots(snapshots)
	d.cb.metadata(epoch, feesCumulative)

	// 8. pulsing reward update / non_myopic
	if err := d.scan.skipItem(); err != nil {
		return err
	}

	// pool_distr, stake_distr: not required by any callback.
	for i := 0; i < 2; i++ {
		if err := d.scan.skipItem(); err != nil {
			if err == io.EOF {
				break
			}
		}
	}

	d.cb.complete()
	return nil
}

func (d *Decoder) readBlockCountMap() (uint64, error) {
	h, err := d.scan.readContainerHeader(nil)
	if err != nil {
		return 0, err
	}
	if h.major != majorMap {
		return 0, ledgermodel.NewStructuralError("block count map expected")
	}
	var total uint64
	err = d.scan.walkMap(h, func() error {
		if _, err := d.scan.readBytes(nil); err != nil { // pool id
			return err
		}
		count, err := d.scan.readUint(nil)
		if err != nil {
			return err
		}
		total += count
		return nil
	})
	return total, err
}

func (d *Decoder) readAccountState() (*ledgermodel.Pots, error) {
	acct, err := d.scan.readContainerHeader(nil)
	if err != nil {
		return nil, err
	}
	if acct.major != majorArray {
		return nil, ledgermodel.NewStructuralError("account_state is not an array")
	}
	treasury, err := d.scan.readSignedPotBalance(nil)
	if err != nil {
		return nil, err
	}
	reserves, err := d.scan.readSignedPotBalance(nil)
	if err != nil {
		return nil, err
	}
	return &ledgermodel.Pots{Treasury: treasury, Reserves: reserves}, nil
}

func blake2b224FromBytes(b []byte) lcommon2.Blake2b224 {
	return lcommon2.NewBlake2b224(b)
}

func blake2b256FromBytes(b []byte) lcommon2.Blake2b256 {
	return lcommon2.NewBlake2b256(b)
}

func (d *Decoder) readDRepRegistry() ([]ledgermodel.DRepRegistration, error) {
	h, err := d.scan.readContainerHeader(nil)
	if err != nil {
		return nil, err
	}
	if h.major != majorMap {
		return nil, ledgermodel.NewStructuralError("drep registry is not a map")
	}
	var out []ledgermodel.DRepRegistration
	err = d.scan.walkMap(h, func() error {
		credBytes, err := d.scan.readBytes(nil)
		if err != nil {
			return err
		}
		entry, err := d.scan.readContainerHeader(nil)
		if err != nil {
			return err
		}
		if entry.major != majorArray {
			return ledgermodel.NewStructuralError("drep entry is not an array")
		}
		expiry, err := d.scan.readUint(nil)
		if err != nil {
			return err
		}
		anchorURL, err := d.readOptionalAnchorURL()
		if err != nil {
			return err
		}
		deposit, err := d.scan.readUint(nil)
		if err != nil {
			return err
		}
		delegCount, err := d.scan.readUint(nil)
		if err != nil {
			return err
		}
		delegators := make(map[ledgermodel.StakeAddress]bool, delegCount)
		for i := uint64(0); i < delegCount; i++ {
			delegBytes, err := d.scan.readBytes(nil)
			if err != nil {
				return err
			}
			delegators[ledgermodel.StakeAddress{
				Credential: lcommon2.Credential{Credential: blake2b224FromBytes(delegBytes)},
			}] = true
		}
		var anchor *lcommon2.GovAnchor
		if anchorURL != "" {
			anchor = &lcommon2.GovAnchor{Url: anchorURL}
		}
		out = append(out, ledgermodel.DRepRegistration{
			Credential: blake2b224FromBytes(credBytes),
			Expiry:     expiry,
			Anchor:     anchor,
			Deposit:    deposit,
			Delegators: delegators,
		})
		return nil
	})
	return out, err
}

// readOptionalAnchorURL reads a nullable [url, data_hash] anchor pair:
// either CBOR null, or a text string followed by a 32-byte data hash.
func (d *Decoder) readOptionalAnchorURL() (string, error) {
	h, err := d.scan.readHeader(nil)
	if err != nil {
		return "", err
	}
	if h.major == majorSimple {
		return "", nil // null
	}
	if h.major != majorText {
		return "", ledgermodel.NewStructuralError("expected anchor url text or null")
	}
	buf := make([]byte, h.value)
	if _, err := io.ReadFull(d.scan.r, buf); err != nil {
		return "", ledgermodel.NewIOError("read anchor url", err)
	}
	if _, err := d.scan.readBytes(nil); err != nil { // data hash
		return "", err
	}
	return string(buf), nil
}

func (d *Decoder) readPoolState() (PoolsState, error) {
	regMapHeader, err := d.scan.readContainerHeader(nil)
	if err != nil {
		return PoolsState{}, err
	}
	if regMapHeader.major != majorMap {
		return PoolsState{}, ledgermodel.NewStructuralError("pool registration map is not a map")
	}
	var regs []ledgermodel.PoolRegistration
	err = d.scan.walkMap(regMapHeader, func() error {
		if _, err := d.scan.readBytes(nil); err != nil { // pool id key
			return err
		}
		raw, err := d.scan.readRawItem(nil)
		if err != nil {
			return err
		}
		var cert lcommon2.PoolRegistrationCertificate
		if _, err := gcbor.Decode(raw, &cert); err == nil {
			regs = append(regs, ledgermodel.PoolRegistration{Cert: &cert})
		}
		return nil
	})
	if err != nil {
		return PoolsState{}, err
	}

	// future pool updates: traversed, not interpreted further here.
	if err := d.scan.skipItem(); err != nil {
		return PoolsState{}, err
	}

	retireHeader, err := d.scan.readContainerHeader(nil)
	if err != nil {
		return PoolsState{}, err
	}
	if retireHeader.major != majorMap {
		return PoolsState{}, ledgermodel.NewStructuralError("retirement schedule is not a map")
	}
	schedule := make(ledgermodel.PoolRetirementSchedule)
	err = d.scan.walkMap(retireHeader, func() error {
		poolID, err := d.scan.readBytes(nil)
		if err != nil {
			return err
		}
		targetEpoch, err := d.scan.readUint(nil)
		if err != nil {
			return err
		}
		schedule[blake2b224FromBytes(poolID)] = targetEpoch
		return nil
	})
	if err != nil {
		return PoolsState{}, err
	}
	return PoolsState{Registrations: regs, Retirements: schedule}, nil
}

func (d *Decoder) readDelegationState() (map[ledgermodel.StakeAddress]delegationEntry, error) {
	h, err := d.scan.readContainerHeader(nil)
	if err != nil {
		return nil, err
	}
	if h.major != majorMap {
		return nil, ledgermodel.NewStructuralError("delegation state is not a map")
	}
	out := make(map[ledgermodel.StakeAddress]delegationEntry)
	err = d.scan.walkMap(h, func() error {
		credBytes, err := d.scan.readBytes(nil)
		if err != nil {
			return err
		}
		entryHeader, err := d.scan.readContainerHeader(nil)
		if err != nil {
			return err
		}
		if entryHeader.major != majorArray {
			return ledgermodel.NewStructuralError("delegation entry is not an array")
		}
		hasDeposit, err := d.scan.readUint(nil)
		if err != nil {
			return err
		}
		depositAmount, err := d.scan.readUint(nil)
		if err != nil {
			return err
		}
		hasPool, err := d.scan.readUint(nil)
		if err != nil {
			return err
		}
		var poolPtr *lcommon2.PoolKeyHash
		if hasPool != 0 {
			poolBytes, err := d.scan.readBytes(nil)
			if err != nil {
				return err
			}
			p := blake2b224FromBytes(poolBytes)
			poolPtr = &p
		}
		drepKind, err := d.scan.readUint(nil)
		if err != nil {
			return err
		}
		var drepPtr *ledgermodel.DRepChoice
		switch ledgermodel.DRepChoiceKind(drepKind) {
		case ledgermodel.DRepChoiceAbstain:
			drepPtr = &ledgermodel.DRepChoice{Kind: ledgermodel.DRepChoiceAbstain}
		case ledgermodel.DRepChoiceNoConfidence:
			drepPtr = &ledgermodel.DRepChoice{Kind: ledgermodel.DRepChoiceNoConfidence}
		case ledgermodel.DRepChoiceKey:
			drepBytes, err := d.scan.readBytes(nil)
			if err != nil {
				return err
			}
			drepPtr = &ledgermodel.DRepChoice{
				Kind:       ledgermodel.DRepChoiceKey,
				Credential: blake2b224FromBytes(drepBytes),
			}
		}
		addr := ledgermodel.StakeAddress{
			Credential: lcommon2.Credential{
				CredType:   lcommon2.CredentialTypeAddrKeyHash,
				Credential: blake2b224FromBytes(credBytes),
			},
		}
		out[addr] = delegationEntry{
			DepositLovelace: depositAmount,
			HasDeposit:      hasDeposit != 0,
			Pool:            poolPtr,
			DRep:            drepPtr,
		}
		return nil
	})
	return out, err
}

func (d *Decoder) readUtxoMap() error {
	h, err := d.scan.readContainerHeader(nil)
	if err != nil {
		return err
	}
	if h.major != majorMap {
		return ledgermodel.NewStructuralError("utxo map is not a map")
	}
	return d.scan.walkMap(h, func() error {
		keyHeader, err := d.scan.readContainerHeader(nil)
		if err != nil {
			return err
		}
		if keyHeader.major != majorArray {
			return ledgermodel.NewStructuralError("utxo key is not [tx_hash, index]")
		}
		txHashBytes, err := d.scan.readBytes(nil)
		if err != nil {
			return err
		}
		index, err := d.scan.readUint(nil)
		if err != nil {
			return err
		}

		valHeader, err := d.scan.readContainerHeader(nil)
		if err != nil {
			return err
		}
		if valHeader.major != majorArray {
			return ledgermodel.NewStructuralError("utxo value is not an array")
		}
		address, err := d.scan.readBytes(nil)
		if err != nil {
			return err
		}
		lovelace, err := d.scan.readUint(nil)
		if err != nil {
			return err
		}
		assets, err := d.readAssetsMap()
		if err != nil {
			return err
		}
		datum, err := d.readOptionalDatumHash()
		if err != nil {
			return err
		}
		refScript, err := d.scan.readUint(nil)
		if err != nil {
			return err
		}

		d.cb.utxo(ledgermodel.UtxoEntry{
			TxHash:    blake2b256FromBytes(txHashBytes),
			Index:     uint32(index),
			Address:   address,
			Lovelace:  lovelace,
			Assets:    assets,
			Datum:     datum,
			RefScript: refScript != 0,
		})
		return nil
	})
}

func (d *Decoder) readAssetsMap() (ledgermodel.MultiAssetBundle, error) {
	h, err := d.scan.readContainerHeader(nil)
	if err != nil {
		return nil, err
	}
	if h.major != majorMap {
		return nil, ledgermodel.NewStructuralError("assets bundle is not a map")
	}
	if h.value == 0 && !h.indefinite {
		return nil, nil
	}
	out := make(ledgermodel.MultiAssetBundle)
	err = d.scan.walkMap(h, func() error {
		assetIDRaw, err := d.scan.readUint(nil)
		if err != nil {
			return err
		}
		qty, err := d.scan.readUint(nil)
		if err != nil {
			return err
		}
		out[ledgermodel.AssetID(assetIDRaw)] = qty
		return nil
	})
	return out, err
}

func (d *Decoder) readOptionalDatumHash() (*lcommon2.Blake2b256, error) {
	brk, err := d.scan.isBreakNext()
	if err != nil {
		return nil, err
	}
	if brk {
		return nil, nil
	}
	h, err := d.scan.readHeader(nil)
	if err != nil {
		return nil, err
	}
	if h.major == majorSimple {
		return nil, nil
	}
	if h.major != majorBytes {
		return nil, ledgermodel.NewStructuralError("expected datum hash bytes or null")
	}
	buf := make([]byte, h.value)
	if _, err := io.ReadFull(d.scan.r, buf); err != nil {
		return nil, ledgermodel.NewIOError("read datum hash", err)
	}
	hash := blake2b256FromBytes(buf)
	return &hash, nil
}

func (d *Decoder) readGovernanceState() (GovernanceState, error) {
	h, err := d.scan.readContainerHeader(nil)
	if err != nil {
		return GovernanceState{}, err
	}
	if h.major != majorArray {
		return GovernanceState{}, ledgermodel.NewStructuralError("gov_state is not an array")
	}

	proposalsHeader, err := d.scan.readContainerHeader(nil)
	if err != nil {
		return GovernanceState{}, err
	}
	if proposalsHeader.major != majorArray {
		return GovernanceState{}, ledgermodel.NewStructuralError("proposals is not an array")
	}
	var proposals []ledgermodel.GovernanceProposal
	err = d.scan.walkArray(proposalsHeader, func() error {
		p, err := d.readOneProposal()
		if err != nil {
			return err
		}
		proposals = append(proposals, p)
		return nil
	})
	if err != nil {
		return GovernanceState{}, err
	}

	enacted, err := d.readGovActionIDArray()
	if err != nil {
		return GovernanceState{}, err
	}
	expired, err := d.readGovActionIDArray()
	if err != nil {
		return GovernanceState{}, err
	}

	committeeHeader, err := d.scan.readContainerHeader(nil)
	if err != nil {
		return GovernanceState{}, err
	}
	if committeeHeader.major != majorArray {
		return GovernanceState{}, ledgermodel.NewStructuralError("committee is not an array")
	}
	var committee []ledgermodel.CommitteeMember
	err = d.scan.walkArray(committeeHeader, func() error {
		m, err := d.readOneCommitteeMember()
		if err != nil {
			return err
		}
		committee = append(committee, m)
		return nil
	})
	if err != nil {
		return GovernanceState{}, err
	}

	constitution, err := d.readOptionalConstitution()
	if err != nil {
		return GovernanceState{}, err
	}

	// pparams_future, pulsing drep state: traversed, best-effort skipped.
	if err := d.scan.skipItem(); err != nil {
		return GovernanceState{}, err
	}
	if err := d.scan.skipItem(); err != nil {
		return GovernanceState{}, err
	}

	return GovernanceState{
		Proposals:    proposals,
		EnactedIDs:   enacted,
		ExpiredIDs:   expired,
		Committee:    committee,
		Constitution: constitution,
	}, nil
}

func (d *Decoder) readGovActionIDArray() ([]ledgermodel.GovActionID, error) {
	h, err := d.scan.readContainerHeader(nil)
	if err != nil {
		return nil, err
	}
	if h.major != majorArray {
		return nil, ledgermodel.NewStructuralError("gov action id list is not an array")
	}
	var out []ledgermodel.GovActionID
	err = d.scan.walkArray(h, func() error {
		idHeader, err := d.scan.readContainerHeader(nil)
		if err != nil {
			return err
		}
		if idHeader.major != majorArray {
			return ledgermodel.NewStructuralError("gov action id is not [tx_hash, index]")
		}
		txHash, err := d.scan.readBytes(nil)
		if err != nil {
			return err
		}
		index, err := d.scan.readUint(nil)
		if err != nil {
			return err
		}
		out = append(out, ledgermodel.GovActionID{
			TxHash: blake2b256FromBytes(txHash),
			Index:  uint32(index),
		})
		return nil
	})
	return out, err
}

// readOneProposal reads a proposal tuple: [deposit, reward_account_cred,
// action_tx_hash, action_index, action_kind, anchor], where anchor is
// either null or an anchor url text followed by its data hash. Deep action payloads (parameter updates,
// committee membership deltas, withdrawal maps) are out of scope for this
// engine; only the fields bootstrap and enactment bookkeeping need are
// retained.
func (d *Decoder) readOneProposal() (ledgermodel.GovernanceProposal, error) {
	h, err := d.scan.readContainerHeader(nil)
	if err != nil {
		return ledgermodel.GovernanceProposal{}, err
	}
	if h.major != majorArray {
		return ledgermodel.GovernanceProposal{}, ledgermodel.NewStructuralError("proposal is not an array")
	}
	deposit, err := d.scan.readUint(nil)
	if err != nil {
		return ledgermodel.GovernanceProposal{}, err
	}
	rewardCred, err := d.scan.readBytes(nil)
	if err != nil {
		return ledgermodel.GovernanceProposal{}, err
	}
	actionTxHash, err := d.scan.readBytes(nil)
	if err != nil {
		return ledgermodel.GovernanceProposal{}, err
	}
	actionIndex, err := d.scan.readUint(nil)
	if err != nil {
		return ledgermodel.GovernanceProposal{}, err
	}
	actionKind, err := d.scan.readUint(nil)
	if err != nil {
		return ledgermodel.GovernanceProposal{}, err
	}
	anchorURL, err := d.readOptionalAnchorURL()
	if err != nil {
		return ledgermodel.GovernanceProposal{}, err
	}
	var anchor *lcommon2.GovAnchor
	if anchorURL != "" {
		anchor = &lcommon2.GovAnchor{Url: anchorURL}
	}
	return ledgermodel.GovernanceProposal{
		Deposit: deposit,
		RewardAccount: ledgermodel.StakeAddress{
			Credential: lcommon2.Credential{Credential: blake2b224FromBytes(rewardCred)},
		},
		ActionID: ledgermodel.GovActionID{
			TxHash: blake2b256FromBytes(actionTxHash),
			Index:  uint32(actionIndex),
		},
		Payload: ledgermodel.GovActionPayload{Kind: ledgermodel.GovActionKind(actionKind)},
		Anchor:  anchor,
	}, nil
}

// readOneCommitteeMember reads a committee tuple: [cold_cred,
// has_hot_key, hot_cred?, expiry_epoch, resigned, has_resign_anchor,
// resign_anchor_url?].
func (d *Decoder) readOneCommitteeMember() (ledgermodel.CommitteeMember, error) {
	h, err := d.scan.readContainerHeader(nil)
	if err != nil {
		return ledgermodel.CommitteeMember{}, err
	}
	if h.major != majorArray {
		return ledgermodel.CommitteeMember{}, ledgermodel.NewStructuralError("committee member is not an array")
	}
	coldCred, err := d.scan.readBytes(nil)
	if err != nil {
		return ledgermodel.CommitteeMember{}, err
	}
	hasHot, err := d.scan.readUint(nil)
	if err != nil {
		return ledgermodel.CommitteeMember{}, err
	}
	var hotCred lcommon2.Credential
	if hasHot != 0 {
		hotBytes, err := d.scan.readBytes(nil)
		if err != nil {
			return ledgermodel.CommitteeMember{}, err
		}
		hotCred = lcommon2.Credential{Credential: blake2b224FromBytes(hotBytes)}
	}
	expiry, err := d.scan.readUint(nil)
	if err != nil {
		return ledgermodel.CommitteeMember{}, err
	}
	resignedFlag, err := d.scan.readUint(nil)
	if err != nil {
		return ledgermodel.CommitteeMember{}, err
	}
	hasAnchor, err := d.scan.readUint(nil)
	if err != nil {
		return ledgermodel.CommitteeMember{}, err
	}
	var resignAnchor *lcommon2.GovAnchor
	if hasAnchor != 0 {
		url, err := d.readOptionalAnchorURL()
		if err != nil {
			return ledgermodel.CommitteeMember{}, err
		}
		resignAnchor = &lcommon2.GovAnchor{Url: url}
	}
	return ledgermodel.CommitteeMember{
		ColdCredential: lcommon2.Credential{Credential: blake2b224FromBytes(coldCred)},
		HotCredential:  hotCred,
		ExpiryEpoch:    expiry,
		Resigned:       resignedFlag != 0,
		ResignAnchor:   resignAnchor,
	}, nil
}

func (d *Decoder) readOptionalConstitution() (*ledgermodel.Constitution, error) {
	peeked, err := d.scan.peekByte()
	if err != nil {
		return nil, err
	}
	if peeked == 0xF6 { // CBOR null, major 7 simple value 22, single byte
		if _, err := d.scan.readByte(nil); err != nil {
			return nil, err
		}
		return nil, nil
	}
	h, err := d.scan.readContainerHeader(nil)
	if err != nil {
		return nil, err
	}
	if h.major != majorArray {
		return nil, ledgermodel.NewStructuralError("constitution is not an array")
	}
	url, err := d.readOptionalAnchorURL()
	if err != nil {
		return nil, err
	}
	hasPolicy, err := d.scan.readUint(nil)
	if err != nil {
		return nil, err
	}
	var policyHash *lcommon2.Blake2b224
	if hasPolicy != 0 {
		b, err := d.scan.readBytes(nil)
		if err != nil {
			return nil, err
		}
		h := blake2b224FromBytes(b)
		policyHash = &h
	}
	return &ledgermodel.Constitution{
		Anchor:     lcommon2.GovAnchor{Url: url},
		PolicyHash: policyHash,
	}, nil
}

func (d *Decoder) readSnapshots(
	epoch uint64,
	pots ledgermodel.Pots,
	totalNonOBFT uint64,
) (ledgermodel.EpochSnapshots, error) {
	h, err := d.scan.readContainerHeader(nil)
	if err != nil {
		return ledgermodel.EpochSnapshots{}, err
	}
	if h.major != majorArray {
		return ledgermodel.EpochSnapshots{}, ledgermodel.NewStructuralError("snapshots is not an array")
	}
	var snaps [3]ledgermodel.EpochSnapshot
	for i := 0; i < 3; i++ {
		snap, err := d.readOneSnapshot(epoch, pots, totalNonOBFT)
		if err != nil {
			return ledgermodel.EpochSnapshots{}, err
		}
		snaps[i] = snap
	}
	return ledgermodel.EpochSnapshots{Mark: snaps[0], Set: snaps[1], Go: snaps[2]}, nil
}

func (d *Decoder) readOneSnapshot(
	epoch uint64,
	pots ledgermodel.Pots,
	totalNonOBFT uint64,
) (ledgermodel.EpochSnapshot, error) {
	h, err := d.scan.readContainerHeader(nil)
	if err != nil {
		return ledgermodel.EpochSnapshot{}, err
	}
	if h.major != majorArray {
		return ledgermodel.EpochSnapshot{}, ledgermodel.NewStructuralError("snapshot entry is not an array")
	}

	poolsHeader, err := d.scan.readContainerHeader(nil)
	if err != nil {
		return ledgermodel.EpochSnapshot{}, err
	}
	if poolsHeader.major != majorMap {
		return ledgermodel.EpochSnapshot{}, ledgermodel.NewStructuralError("snapshot pools is not a map")
	}
	pools := make(map[lcommon2.PoolKeyHash]ledgermodel.PoolSnapshotEntry)
	err = d.scan.walkMap(poolsHeader, func() error {
		poolID, err := d.scan.readBytes(nil)
		if err != nil {
			return err
		}
		entryHeader, err := d.scan.readContainerHeader(nil)
		if err != nil {
			return err
		}
		if entryHeader.major != majorArray {
			return ledgermodel.NewStructuralError("snapshot pool entry is not an array")
		}
		delegators, err := d.scan.readUint(nil)
		if err != nil {
			return err
		}
		blocksMinted, err := d.scan.readUint(nil)
		if err != nil {
			return err
		}
		rewardAccount, err := d.scan.readBytes(nil)
		if err != nil {
			return err
		}
		pools[blake2b224FromBytes(poolID)] = ledgermodel.PoolSnapshotEntry{
			Delegators:    int(delegators),
			BlocksMinted:  blocksMinted,
			RewardAccount: ledgermodel.StakeAddress{Credential: lcommon2.Credential{Credential: blake2b224FromBytes(rewardAccount)}},
		}
		return nil
	})
	if err != nil {
		return ledgermodel.EpochSnapshot{}, err
	}

	stakeByAddr, err := d.readUint64ByAddress()
	if err != nil {
		return ledgermodel.EpochSnapshot{}, err
	}
	rewardsByAddr, err := d.readUint64ByAddress()
	if err != nil {
		return ledgermodel.EpochSnapshot{}, err
	}
	delegationByAddr, err := d.readPoolByAddress()
	if err != nil {
		return ledgermodel.EpochSnapshot{}, err
	}

	return ledgermodel.EpochSnapshot{
		Epoch:               epoch,
		Pools:               pools,
		Pots:                pots,
		TotalNonOBFTBlocks:  totalNonOBFT,
		StakeByAddress:      stakeByAddr,
		RewardsByAddress:    rewardsByAddr,
		DelegationByAddress: delegationByAddr,
	}, nil
}

func (d *Decoder) readUint64ByAddress() (map[ledgermodel.StakeAddress]uint64, error) {
	h, err := d.scan.readContainerHeader(nil)
	if err != nil {
		return nil, err
	}
	if h.major != majorMap {
		return nil, ledgermodel.NewStructuralError("address-keyed map is not a map")
	}
	out := make(map[ledgermodel.StakeAddress]uint64)
	err = d.scan.walkMap(h, func() error {
		credBytes, err := d.scan.readBytes(nil)
		if err != nil {
			return err
		}
		value, err := d.scan.readUint(nil)
		if err != nil {
			return err
		}
		addr := ledgermodel.StakeAddress{Credential: lcommon2.Credential{Credential: blake2b224FromBytes(credBytes)}}
		out[addr] = value
		return nil
	})
	return out, err
}

func (d *Decoder) readPoolByAddress() (map[ledgermodel.StakeAddress]lcommon2.PoolKeyHash, error) {
	h, err := d.scan.readContainerHeader(nil)
	if err != nil {
		return nil, err
	}
	if h.major != majorMap {
		return nil, ledgermodel.NewStructuralError("delegation-by-address map is not a map")
	}
	out := make(map[ledgermodel.StakeAddress]lcommon2.PoolKeyHash)
	err = d.scan.walkMap(h, func() error {
		credBytes, err := d.scan.readBytes(nil)
		if err != nil {
			return err
		}
		poolBytes, err := d.scan.readBytes(nil)
		if err != nil {
			return err
		}
		addr := ledgermodel.StakeAddress{Credential: lcommon2.Credential{Credential: blake2b224FromBytes(credBytes)}}
		out[addr] = blake2b224FromBytes(poolBytes)
		return nil
	})
	return out, err
}
