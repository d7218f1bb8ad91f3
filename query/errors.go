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

// Package query is the typed boundary between the state engine and its
// callers (spec.md §1, §6): small per-area interfaces implemented
// directly by accounts.State, assets.Registry and consensus.Tree, plus
// the three response variants every query can resolve to. No HTTP/REST
// transport lives here — that adapter is explicitly out of scope.
package query

import "fmt"

type notFoundError struct{}

func (notFoundError) Error() string { return "query: not found" }

// NotFound is returned when a query's subject does not exist.
var NotFound error = notFoundError{}

// StorageDisabled is returned when a query addresses a storage class
// that was not enabled at construction.
type StorageDisabled struct {
	Feature string
}

func (e *StorageDisabled) Error() string {
	return fmt.Sprintf("query: storage disabled: %s", e.Feature)
}

// Err wraps any other query failure with a caller-facing message.
type Err struct {
	Message string
}

func (e *Err) Error() string {
	return fmt.Sprintf("query: %s", e.Message)
}
