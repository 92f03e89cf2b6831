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
	"net/http"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/sirseerhq/transfer-ads/internal/metadata"
)

// instrumentedTransport counts and logs every request sent to Elasticsearch.
// Request bodies and credentials are never logged.
type instrumentedTransport struct {
	base    http.RoundTripper
	logger  log.Logger
	tracker *metadata.Tracker
}

// RoundTrip implements http.RoundTripper
func (t *instrumentedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	t.tracker.IncrementAPICall()

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		level.Debug(t.logger).Log(
			"msg", "request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"duration", time.Since(start),
			"err", err,
		)
		return nil, err
	}

	level.Debug(t.logger).Log(
		"msg", "request complete",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	return resp, nil
}
