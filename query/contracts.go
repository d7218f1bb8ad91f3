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

package query

import (
	"github.com/input-output-hk/acropolis-sub000/accounts"
	"github.com/input-output-hk/acropolis-sub000/assets"
	"github.com/input-output-hk/acropolis-sub000/consensus"
)

var (
	_ PoolQueries       = (*accounts.State)(nil)
	_ AccountQueries    = (*accounts.State)(nil)
	_ GovernanceQueries = (*accounts.State)(nil)
	_ AssetQueries      = (*assets.Registry)(nil)
	_ ConsensusQueries  = (*consensus.Tree)(nil)
)
