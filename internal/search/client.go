// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package search

import (
	"context"
	"encoding/json"
	"iter"

	"github.com/sirseerhq/transfer-ads/internal/query"
)

// Client defines the interface for scanning a search index.
// This interface allows for easy mocking in tests.
type Client interface {
	// Scan submits q and returns every matching document's stored source,
	// in the order the service yields them. The sequence is lazy, finite and
	// can be ranged over only once. A non-nil error is always the last
	// element.
	Scan(ctx context.Context, q *query.Query) iter.Seq2[json.RawMessage, error]
}
