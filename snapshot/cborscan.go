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
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/input-output-hk/acropolis-sub000/ledgermodel"
)

// majorType values per RFC 8949.
const (
	majorUint byte = iota
	majorNegInt
	majorBytes
	majorText
	majorArray
	majorMap
	majorTag
	majorSimple
)

const (
	setTag258  uint64 = 258
	breakByte         = 0xFF
)

// cborScanner is a hand-rolled CBOR primitive reader used by the
// snapshot codec's streaming walk. It reads exactly the bytes required
// for the item being inspected (header only, or header plus a bounded
// byte-string payload), so the decoder never has to buffer a container's
// full contents to skip or re-emit it. Higher-level, fully
// self-contained sub-items (a single certificate, a single protocol
// parameter record) are instead handed off whole to
// github.com/blinklabs-io/gouroboros/cbor via readRawItem, which
// accumulates exactly one item's bytes.
type cborScanner struct {
	r *bufio.Reader
}

func newCborScanner(r io.Reader) *cborScanner {
	return &cborScanner{r: bufio.NewReaderSize(r, 64*1024)}
}

func (s *cborScanner) readByte(acc *[]byte) (byte, error) {
	b, err := s.r.ReadByte()
	if err != nil {
		return 0, ledgermodel.NewIOError("read byte", err)
	}
	if acc != nil {
		*acc = append(*acc, b)
	}
	return b, nil
}

func (s *cborScanner) readN(n int, acc *[]byte) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(s.r, buf); err != nil {
		return nil, ledgermodel.NewIOError(fmt.Sprintf("read %d bytes", n), err)
	}
	if acc != nil {
		*acc = append(*acc, buf...)
	}
	return buf, nil
}

// peekByte reports the next byte without consuming it, used to detect a
// break marker (0xFF) terminating an indefinite-length container.
func (s *cborScanner) peekByte() (byte, error) {
	b, err := s.r.Peek(1)
	if err != nil {
		return 0, ledgermodel.NewIOError("peek byte", err)
	}
	return b[0], nil
}

func (s *cborScanner) isBreakNext() (bool, error) {
	b, err := s.peekByte()
	if err != nil {
		return false, err
	}
	return b == breakByte, nil
}

func (s *cborScanner) consumeBreak(acc *[]byte) error {
	_, err := s.readByte(acc)
	return err
}

// header reads one CBOR item's leading byte(s): major type, and the
// resolved argument (count/length/value), or indefinite=true when the
// additional-info nibble is 31.
type header struct {
	major       byte
	value       uint64
	indefinite  bool
}

func (s *cborScanner) readHeader(acc *[]byte) (header, error) {
	b0, err := s.readByte(acc)
	if err != nil {
		return header{}, err
	}
	major := b0 >> 5
	info := b0 & 0x1F
	h := header{major: major}
	switch {
	case info < 24:
		h.value = uint64(info)
	case info == 24:
		b, err := s.readN(1, acc)
		if err != nil {
			return header{}, err
		}
		h.value = uint64(b[0])
	case info == 25:
		b, err := s.readN(2, acc)
		if err != nil {
			return header{}, err
		}
		h.value = uint64(binary.BigEndian.Uint16(b))
	case info == 26:
		b, err := s.readN(4, acc)
		if err != nil {
			return header{}, err
		}
		h.value = uint64(binary.BigEndian.Uint32(b))
	case info == 27:
		b, err := s.readN(8, acc)
		if err != nil {
			return header{}, err
		}
		h.value = binary.BigEndian.Uint64(b)
	case info == 31:
		h.indefinite = true
	default:
		return header{}, ledgermodel.NewCborError(
			fmt.Sprintf("reserved additional info %d", info), nil,
		)
	}
	return h, nil
}

// readContainerHeader reads an array or map header and normalises the
// tag-258 "set" marker (spec.md §4.1: "A CBOR tag 258 preceding a set is
// treated identically to an untagged set") by transparently skipping any
// leading tags before the container header.
func (s *cborScanner) readContainerHeader(acc *[]byte) (header, error) {
	for {
		h, err := s.readHeader(acc)
		if err != nil {
			return header{}, err
		}
		if h.major == majorTag {
			// Tag value already consumed as h.value; loop to read the
			// tagged item's own header (set-as-array, etc).
			continue
		}
		return h, nil
	}
}

// readUint reads a definite unsigned integer item.
func (s *cborScanner) readUint(acc *[]byte) (uint64, error) {
	h, err := s.readHeader(acc)
	if err != nil {
		return 0, err
	}
	if h.major != majorUint {
		return 0, ledgermodel.NewStructuralError(
			fmt.Sprintf("expected uint, got major type %d", h.major),
		)
	}
	return h.value, nil
}

// readSignedPotBalance reads a possibly-negative integer used for a pot
// balance and enforces spec.md's "never silent casting" rule: a negative
// value is a hard structural error, not a wraparound cast.
func (s *cborScanner) readSignedPotBalance(acc *[]byte) (uint64, error) {
	h, err := s.readHeader(acc)
	if err != nil {
		return 0, err
	}
	switch h.major {
	case majorUint:
		return h.value, nil
	case majorNegInt:
		return 0, ledgermodel.NewStructuralError("negative pot")
	default:
		return 0, ledgermodel.NewStructuralError(
			fmt.Sprintf("expected integer pot balance, got major type %d", h.major),
		)
	}
}

// readBytes reads a definite- or indefinite-length byte string in full.
func (s *cborScanner) readBytes(acc *[]byte) ([]byte, error) {
	h, err := s.readHeader(acc)
	if err != nil {
		return nil, err
	}
	if h.major != majorBytes {
		return nil, ledgermodel.NewStructuralError(
			fmt.Sprintf("expected byte string, got major type %d", h.major),
		)
	}
	if !h.indefinite {
		return s.readN(int(h.value), acc)
	}
	var out []byte
	for {
		brk, err := s.isBreakNext()
		if err != nil {
			return nil, err
		}
		if brk {
			_ = s.consumeBreak(acc)
			return out, nil
		}
		chunkHeader, err := s.readHeader(acc)
		if err != nil {
			return nil, err
		}
		if chunkHeader.major != majorBytes || chunkHeader.indefinite {
			return nil, ledgermodel.NewStructuralError("malformed indefinite byte string chunk")
		}
		chunk, err := s.readN(int(chunkHeader.value), acc)
		if err != nil {
			return nil, err
		}
		out = append(out, chunk...)
	}
}

// walkMap drives fn once per map entry described by h (already consumed),
// stopping at the declared count or the break marker, whichever the
// header calls for. fn is responsible for reading exactly one key and
// one value from s.
func (s *cborScanner) walkMap(h header, fn func() error) error {
	if !h.indefinite {
		for i := uint64(0); i < h.value; i++ {
			if err := fn(); err != nil {
				return err
			}
		}
		return nil
	}
	for {
		brk, err := s.isBreakNext()
		if err != nil {
			return err
		}
		if brk {
			return s.consumeBreak(nil)
		}
		if err := fn(); err != nil {
			return err
		}
	}
}

// walkArray drives fn once per array element described by h (already
// consumed), stopping at the declared count or the break marker.
func (s *cborScanner) walkArray(h header, fn func() error) error {
	if !h.indefinite {
		for i := uint64(0); i < h.value; i++ {
			if err := fn(); err != nil {
				return err
			}
		}
		return nil
	}
	for {
		brk, err := s.isBreakNext()
		if err != nil {
			return err
		}
		if brk {
			return s.consumeBreak(nil)
		}
		if err := fn(); err != nil {
			return err
		}
	}
}

// skipItem consumes and discards exactly one complete CBOR data item
// (recursively, for containers), without retaining its bytes. Used for
// fields the codec's callbacks do not need to interpret.
func (s *cborScanner) skipItem() error {
	_, err := s.readRawItem(nil)
	return err
}

// readRawItem consumes exactly one complete CBOR data item and returns
// its encoded bytes, for handing off to gouroboros/cbor.Unmarshal when
// decoding a fully self-contained sub-structure (a certificate, a
// protocol-parameter record, ...).
func (s *cborScanner) readRawItem(dst *[]byte) ([]byte, error) {
	var local []byte
	acc := &local
	h, err := s.readHeader(acc)
	if err != nil {
		return nil, err
	}
	switch h.major {
	case majorUint, majorNegInt:
		// argument already consumed by readHeader.
	case majorBytes, majorText:
		if !h.indefinite {
			if _, err := s.readN(int(h.value), acc); err != nil {
				return nil, err
			}
		} else {
			for {
				brk, err := s.isBreakNext()
				if err != nil {
					return nil, err
				}
				if brk {
					if err := s.consumeBreak(acc); err != nil {
						return nil, err
					}
					break
				}
				chunkHeader, err := s.readHeader(acc)
				if err != nil {
					return nil, err
				}
				if _, err := s.readN(int(chunkHeader.value), acc); err != nil {
					return nil, err
				}
			}
		}
	case majorArray:
		if !h.indefinite {
			for i := uint64(0); i < h.value; i++ {
				item, err := s.readRawItem(nil)
				if err != nil {
					return nil, err
				}
				local = append(local, item...)
			}
		} else {
			for {
				brk, err := s.isBreakNext()
				if err != nil {
					return nil, err
				}
				if brk {
					if err := s.consumeBreak(acc); err != nil {
						return nil, err
					}
					break
				}
				item, err := s.readRawItem(nil)
				if err != nil {
					return nil, err
				}
				local = append(local, item...)
			}
		}
	case majorMap:
		if !h.indefinite {
			for i := uint64(0); i < h.value; i++ {
				k, err := s.readRawItem(nil)
				if err != nil {
					return nil, err
				}
				v, err := s.readRawItem(nil)
				if err != nil {
					return nil, err
				}
				local = append(local, k...)
				local = append(local, v...)
			}
		} else {
			for {
				brk, err := s.isBreakNext()
				if err != nil {
					return nil, err
				}
				if brk {
					if err := s.consumeBreak(acc); err != nil {
						return nil, err
					}
					break
				}
				k, err := s.readRawItem(nil)
				if err != nil {
					return nil, err
				}
				v, err := s.readRawItem(nil)
				if err != nil {
					return nil, err
				}
				local = append(local, k...)
				local = append(local, v...)
			}
		}
	case majorTag:
		item, err := s.readRawItem(nil)
		if err != nil {
			return nil, err
		}
		local = append(local, item...)
	case majorSimple:
		// Simple values (false/true/null/undefined) and floats: the
		// argument bytes were already consumed by readHeader for
		// info<=27; info==31 would be a lone break, invalid here.
		if h.indefinite {
			return nil, ledgermodel.NewStructuralError("unexpected break marker")
		}
	default:
		return nil, ledgermodel.NewCborError(
			fmt.Sprintf("unsupported major type %d", h.major), nil,
		)
	}
	if dst != nil {
		*dst = append(*dst, local...)
	}
	return local, nil
}
