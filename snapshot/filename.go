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
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// FilenameInfo is the parsed form of a snapshot filename following the
// "<slot>.<hash>.cbor" convention (spec.md §6).
type FilenameInfo struct {
	Slot uint64
	Hash string
}

// ParseFilename parses the "<slot>.<hash>.cbor" naming convention used for
// snapshot files taken at a particular chain point. The hash is returned
// lower-cased and is not otherwise validated as a real block hash.
func ParseFilename(path string) (FilenameInfo, error) {
	base := filepath.Base(path)
	const suffix = ".cbor"
	if !strings.HasSuffix(base, suffix) {
		return FilenameInfo{}, fmt.Errorf("snapshot filename %q: missing .cbor suffix", base)
	}
	trimmed := strings.TrimSuffix(base, suffix)
	parts := strings.SplitN(trimmed, ".", 2)
	if len(parts) != 2 {
		return FilenameInfo{}, fmt.Errorf("snapshot filename %q: expected <slot>.<hash>.cbor", base)
	}
	slot, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return FilenameInfo{}, fmt.Errorf("snapshot filename %q: invalid slot: %w", base, err)
	}
	hash := strings.ToLower(parts[1])
	if hash == "" {
		return FilenameInfo{}, fmt.Errorf("snapshot filename %q: empty hash", base)
	}
	return FilenameInfo{Slot: slot, Hash: hash}, nil
}
