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

// Package consensus maintains the volatile set of header-known blocks
// (spec.md §4.5): the bounded Praos maxvalid chain-selection tree, with a
// single observer receiving block_proposed/rollback/block_rejected.
package consensus

import "errors"

// ErrParentNotFound is returned by CheckBlockWanted when the proposed
// block's parent hash is not tracked.
var ErrParentNotFound = errors.New("consensus: parent not found")

// ErrInvalidBlockNumber is returned when a proposed block's number is not
// exactly one more than its parent's.
var ErrInvalidBlockNumber = errors.New("consensus: invalid block number")

// ErrForkTooDeep is returned when a proposed block's branch point lies
// more than k blocks behind the current favoured tip.
var ErrForkTooDeep = errors.New("consensus: fork too deep")

// ErrBlockNotInTree is returned by an operation addressing a hash the
// tree has never seen.
var ErrBlockNotInTree = errors.New("consensus: block not in tree")

// ErrRootNotSet is returned by any operation attempted before SetRoot.
var ErrRootNotSet = errors.New("consensus: root not set")
