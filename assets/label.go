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

package assets

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// Label is a CIP-67 two-byte asset-name label, the value embedded in
// bytes 1-2 of a reference/user-token asset-name prefix.
type Label uint16

var (
	cip67RefPrefix = [4]byte{0x00, 0x06, 0x43, 0xB0}
	cip67UserPrefixes = [][4]byte{
		{0x00, 0x0D, 0xE1, 0x40},
		{0x00, 0x14, 0xDF, 0x10},
		{0x00, 0x1B, 0x4E, 0x20},
	}
)

// LabelFromPrefix extracts the label value out of a 4-byte asset-name
// prefix (bytes 1 and 2; byte 0 is always 0x00 and byte 3 is the
// checksum byte Checksum verifies).
func LabelFromPrefix(prefix [4]byte) Label {
	return Label(uint16(prefix[1])<<8 | uint16(prefix[2]))
}

// Checksum returns a one-byte blake2b-derived checksum for l, used only
// as a verification utility against a caller-supplied prefix's fourth
// byte; the reference/user-token substitution logic in
// metadata_cip68.go never calls this, matching spec.md §4.4's
// substitution contract, which is pure byte-slice arithmetic.
func (l Label) Checksum() (byte, error) {
	h, err := blake2b.New(1, nil)
	if err != nil {
		return 0, err
	}
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], uint16(l))
	if _, err := h.Write(buf[:]); err != nil {
		return 0, err
	}
	return h.Sum(nil)[0], nil
}

// VerifyPrefix reports whether prefix's fourth byte matches l's checksum.
func (l Label) VerifyPrefix(prefix [4]byte) bool {
	cs, err := l.Checksum()
	if err != nil {
		return false
	}
	return prefix[3] == cs
}

func hasPrefix(name string, prefix [4]byte) bool {
	if len(name) < 4 {
		return false
	}
	return name[0] == prefix[0] && name[1] == prefix[1] && name[2] == prefix[2] && name[3] == prefix[3]
}

func substitutePrefix(name string, newPrefix [4]byte) string {
	b := []byte(name)
	copy(b[:4], newPrefix[:])
	return string(b)
}
