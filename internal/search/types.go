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
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-kit/log"

	"github.com/sirseerhq/transfer-ads/internal/config"
	relaierrors "github.com/sirseerhq/transfer-ads/internal/errors"
	"github.com/sirseerhq/transfer-ads/internal/logging"
	"github.com/sirseerhq/transfer-ads/internal/metadata"
	"github.com/sirseerhq/transfer-ads/internal/query"
)

// Options configures an ESClient.
type Options struct {
	// Host is the Elasticsearch endpoint. A bare host:port gets an http:// scheme.
	Host string

	// BasicAuth sends Username and Password as basic authentication on
	// every request, even when either is empty. It is implied by a
	// non-empty Username.
	BasicAuth bool
	Username  string
	Password  string

	// PageSize is the number of hits requested per page.
	// Defaults to config.DefaultPageSize.
	PageSize int

	// KeepAlive is how long the service keeps the scroll context between
	// page fetches. Defaults to config.ScrollKeepAlive.
	KeepAlive time.Duration

	// OpaqueID is sent as X-Opaque-Id on every request so the scan can be
	// found in the cluster's slow and task logs. Defaults to a random UUID.
	OpaqueID string

	// Logger receives per-request debug records. Defaults to a nop logger.
	Logger log.Logger

	// Tracker counts requests. May be nil.
	Tracker *metadata.Tracker

	// Transport overrides the HTTP transport. Defaults to http.DefaultTransport.
	Transport http.RoundTripper
}

// scanRequest is the body of the initial search. Sorting on _doc is the
// cheapest order for a scroll that does not need relevance.
type scanRequest struct {
	*query.Query
	Sort []string `json:"sort"`
}

// searchResponse is the subset of a search or scroll response the scan reads.
type searchResponse struct {
	ScrollID string `json:"_scroll_id"`
	Shards   shards `json:"_shards"`
	Hits     struct {
		Hits []hit `json:"hits"`
	} `json:"hits"`
}

type shards struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
}

// check returns ErrScanIncomplete when any shard neither succeeded nor was skipped.
func (s shards) check() error {
	if s.Successful+s.Skipped < s.Total {
		return fmt.Errorf("scroll request has only succeeded on %d (+%d skipped) shards out of %d: %w",
			s.Successful, s.Skipped, s.Total, relaierrors.ErrScanIncomplete)
	}
	return nil
}

type hit struct {
	Index  string          `json:"_index"`
	ID     string          `json:"_id"`
	Source json.RawMessage `json:"_source"`
}

func (o Options) withDefaults() Options {
	if o.Username != "" {
		o.BasicAuth = true
	}
	if o.PageSize <= 0 {
		o.PageSize = config.DefaultPageSize
	}
	if o.KeepAlive <= 0 {
		o.KeepAlive = config.ScrollKeepAlive
	}
	if o.Logger == nil {
		o.Logger = logging.Nop()
	}
	if o.Transport == nil {
		o.Transport = http.DefaultTransport
	}
	return o
}
