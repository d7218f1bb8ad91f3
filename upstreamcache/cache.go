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
	"fmt"
	"sync"
)

// Cache is the single-writer, single-reader-cursor log described by
// spec.md §4.6. One Cache owns exactly one ChunkStore.
type Cache struct {
	mu        sync.Mutex
	store     ChunkStore
	chunkSize int

	writeChunk int
	writeBuf   []Record

	readChunk int
	readIndex int
	readBuf   []Record
}

// NewCache opens store, probing forward from chunk 0 to find the first
// not-yet-full chunk (the currently open one). chunkSize <= 0 defaults
// to DefaultChunkSize.
func NewCache(store ChunkStore, chunkSize int) (*Cache, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	c := &Cache{store: store, chunkSize: chunkSize}
	for n := 0; ; n++ {
		recs, err := store.ReadChunk(n)
		if err != nil {
			return nil, fmt.Errorf("upstreamcache: opening chunk %d: %w", n, err)
		}
		if len(recs) < chunkSize {
			c.writeChunk = n
			c.writeBuf = append([]Record(nil), recs...)
			return c, nil
		}
	}
}

// WriteRecord appends r to the currently open chunk and flushes it.
// When the chunk reaches the configured density, the next record
// advances to a fresh, empty chunk.
func (c *Cache) WriteRecord(r Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	buf := append(c.writeBuf, r)
	if err := c.store.WriteChunk(c.writeChunk, buf); err != nil {
		return fmt.Errorf("upstreamcache: appending to chunk %d: %w", c.writeChunk, err)
	}
	c.writeBuf = buf
	if len(c.writeBuf) >= c.chunkSize {
		c.writeChunk++
		c.writeBuf = nil
	}
	return nil
}

// StartReading resets the read cursor to chunk 0, record 0.
func (c *Cache) StartReading() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.readChunk = 0
	c.readIndex = 0
	c.readBuf = nil
}

// ReadRecord returns the next record from the read cursor, advancing
// it. ok is false once the cursor has walked past the last record
// currently on disk; a later call (after more records have been
// written) resumes correctly rather than reporting end-of-log forever.
func (c *Cache) ReadRecord() (Record, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for {
		if c.readBuf == nil {
			recs, err := c.store.ReadChunk(c.readChunk)
			if err != nil {
				return Record{}, false, fmt.Errorf("upstreamcache: reading chunk %d: %w", c.readChunk, err)
			}
			c.readBuf = recs
		}
		if c.readIndex < len(c.readBuf) {
			rec := c.readBuf[c.readIndex]
			c.readIndex++
			return rec, true, nil
		}
		if len(c.readBuf) < c.chunkSize {
			// This chunk is still open for writing; don't advance past
			// it, but force a fresh read next time in case it grew.
			c.readBuf = nil
			return Record{}, false, nil
		}
		c.readChunk++
		c.readIndex = 0
		c.readBuf = nil
	}
}
