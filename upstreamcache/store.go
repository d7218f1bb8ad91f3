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

package upstreamcache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ChunkStore abstracts the storage backend a Cache writes through. Any
// backend that can atomically read or replace one chunk's worth of
// records is acceptable (spec.md §4.6). ReadChunk on a chunk that has
// never been written returns a nil slice and a nil error.
type ChunkStore interface {
	ReadChunk(n int) ([]Record, error)
	WriteChunk(n int, records []Record) error
}

// FileChunkStore persists chunks as chunk-<N>.json files under Dir, one
// self-describing JSON array per file, matching spec.md §6's on-disk
// layout.
type FileChunkStore struct {
	Dir string
}

func (f FileChunkStore) chunkPath(n int) string {
	return filepath.Join(f.Dir, fmt.Sprintf("chunk-%d.json", n))
}

// ReadChunk loads chunk n, or (nil, nil) if it hasn't been written yet.
func (f FileChunkStore) ReadChunk(n int) ([]Record, error) {
	data, err := os.ReadFile(f.chunkPath(n))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("upstreamcache: reading %s: %w", f.chunkPath(n), err)
	}
	var recs []Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("upstreamcache: parsing %s: %w", f.chunkPath(n), err)
	}
	return recs, nil
}

// WriteChunk replaces chunk n's file with records in full, via a
// write-then-rename so a crash mid-write never leaves a truncated chunk
// in place.
func (f FileChunkStore) WriteChunk(n int, records []Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("upstreamcache: encoding chunk %d: %w", n, err)
	}
	path := f.chunkPath(n)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("upstreamcache: writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("upstreamcache: replacing %s: %w", path, err)
	}
	return nil
}
