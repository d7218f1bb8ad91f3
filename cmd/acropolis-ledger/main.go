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

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	lcommon "github.com/blinklabs-io/gouroboros/ledger/common"
	"github.com/spf13/cobra"

	"github.com/input-output-hk/acropolis-sub000/accounts"
	"github.com/input-output-hk/acropolis-sub000/assets"
	"github.com/input-output-hk/acropolis-sub000/consensus"
	"github.com/input-output-hk/acropolis-sub000/query"
	"github.com/input-output-hk/acropolis-sub000/snapshot"
	"github.com/input-output-hk/acropolis-sub000/upstreamcache"
)

const programName = "acropolis-ledger"

var cmdlineFlags = struct {
	debug            bool
	securityParam    uint64
	upstreamCacheDir string
	chunkSize        int
}{}

func main() {
	cmd := &cobra.Command{
		Use: fmt.Sprintf("%s [flags] <snapshot file>", programName),
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("you must specify a snapshot file")
			}
			if len(args) > 1 {
				return errors.New("you cannot specify more than one snapshot file")
			}
			return nil
		},
		RunE: cmdRun,
	}

	cmd.Flags().BoolVarP(&cmdlineFlags.debug, "debug", "D", false, "enable debug logging")
	cmd.Flags().Uint64VarP(&cmdlineFlags.securityParam, "security-param", "k", 2160, "consensus security parameter (k)")
	cmd.Flags().StringVarP(&cmdlineFlags.upstreamCacheDir, "upstream-cache-dir", "u", "", "directory for the upstream block cache (disabled if empty)")
	cmd.Flags().IntVarP(&cmdlineFlags.chunkSize, "chunk-size", "c", upstreamcache.DefaultChunkSize, "upstream cache records per chunk")

	if err := cmd.Execute(); err != nil {
		// NOTE: we purposely don't display the error, since cobra will have already displayed it
		os.Exit(1)
	}
}

func cmdRun(cmd *cobra.Command, args []string) error {
	configureLogger()
	slog.Info(fmt.Sprintf("starting %s", programName))

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer f.Close()

	accCfg := accounts.DefaultConfig()
	accCfg.SecurityParam = cmdlineFlags.securityParam
	accCfg.Logger = slog.Default()
	state := accounts.NewState(accCfg)

	if err := snapshot.Bootstrap(f, state.Bootstrap(0)); err != nil {
		return fmt.Errorf("failed to bootstrap ledger state from snapshot: %w", err)
	}
	slog.Info("bootstrap complete",
		"epoch", state.CurrentEpoch(),
		"pools", len(state.ListPools()),
		"dreps", len(state.ListDReps()),
	)

	registry := assets.NewRegistry(
		assets.NewConfigBuilder().
			WithMintHistory(true).
			WithPolicyIndex(true).
			Build(),
	)

	_ = consensus.NewTree(cmdlineFlags.securityParam, slogObserver{})
	slog.Info("consensus tree ready", "k", cmdlineFlags.securityParam)

	if cmdlineFlags.upstreamCacheDir != "" {
		if err := os.MkdirAll(cmdlineFlags.upstreamCacheDir, 0o755); err != nil {
			return fmt.Errorf("failed to create upstream cache directory: %w", err)
		}
		cache, err := upstreamcache.NewCache(
			upstreamcache.FileChunkStore{Dir: cmdlineFlags.upstreamCacheDir},
			cmdlineFlags.chunkSize,
		)
		if err != nil {
			return fmt.Errorf("failed to open upstream cache: %w", err)
		}
		cache.StartReading()
		slog.Info("upstream cache ready", "dir", cmdlineFlags.upstreamCacheDir)
	}

	reserves, treasury, deposits := query.PotsUtxorpc(state.PotBalances())
	slog.Info("pots",
		"reserves", reserves.String(),
		"treasury", treasury.String(),
		"deposits", deposits.String(),
	)

	slog.Info("registry ready", "assets", len(registry.ListAssets()))

	return nil
}

// slogObserver logs consensus.Tree events through the default logger, a
// stand-in for whatever downstream bus would otherwise subscribe to
// them.
type slogObserver struct{}

func (slogObserver) BlockProposed(number uint64, hash lcommon.Blake2b256, body []byte) {
	slog.Debug("block proposed", "number", number, "hash", hash.String())
}

func (slogObserver) Rollback(number uint64) {
	slog.Info("rollback", "number", number)
}

func (slogObserver) BlockRejected(hash lcommon.Blake2b256) {
	slog.Warn("block rejected", "hash", hash.String())
}

func configureLogger() {
	var logger *slog.Logger
	if cmdlineFlags.debug {
		logger = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	} else {
		logger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
	slog.SetDefault(logger)
}
