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
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"iter"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"

	"github.com/sirseerhq/transfer-ads/internal/esserror"
	"github.com/sirseerhq/transfer-ads/internal/query"
)

// clearScrollTimeout bounds the best-effort cleanup after a scan.
const clearScrollTimeout = 5 * time.Second

// ESClient implements Client using the Elasticsearch scroll API.
// Client-side retries are disabled: any failure ends the scan.
type ESClient struct {
	es        *elasticsearch.Client
	pageSize  int
	keepAlive time.Duration
	opaqueID  string
	inspector esserror.Inspector
	logger    log.Logger
}

// NewESClient creates a client for the cluster at opts.Host. No request is
// made until Scan is ranged over.
func NewESClient(opts Options) (*ESClient, error) {
	opts = opts.withDefaults()
	if opts.OpaqueID == "" {
		opts.OpaqueID = uuid.NewString()
	}

	address := normalizeHost(opts.Host)
	if address == "" {
		return nil, fmt.Errorf("elasticsearch host is empty")
	}

	header := http.Header{}
	header.Set("X-Opaque-Id", opts.OpaqueID)
	if opts.BasicAuth {
		header.Set("Authorization", basicAuth(opts.Username, opts.Password))
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:    []string{address},
		Header:       header,
		DisableRetry: true,
		Transport: &instrumentedTransport{
			base:    opts.Transport,
			logger:  opts.Logger,
			tracker: opts.Tracker,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	return &ESClient{
		es:        es,
		pageSize:  opts.PageSize,
		keepAlive: opts.KeepAlive,
		opaqueID:  opts.OpaqueID,
		inspector: esserror.NewInspector(),
		logger:    log.With(opts.Logger, "component", "search", "opaque_id", opts.OpaqueID),
	}, nil
}

// OpaqueID returns the X-Opaque-Id attached to this client's requests.
func (c *ESClient) OpaqueID() string {
	return c.opaqueID
}

// Scan implements Client. The first request opens a scroll context; each
// following request fetches the next page until one comes back empty. The
// context is cleared when the sequence ends, however it ends.
func (c *ESClient) Scan(ctx context.Context, q *query.Query) iter.Seq2[json.RawMessage, error] {
	return func(yield func(json.RawMessage, error) bool) {
		body, err := json.Marshal(scanRequest{Query: q, Sort: []string{"_doc"}})
		if err != nil {
			yield(nil, fmt.Errorf("failed to encode query: %w", err))
			return
		}

		level.Debug(c.logger).Log("msg", "opening scroll", "index", q.Index, "page_size", c.pageSize, "keep_alive", c.keepAlive)

		opts := []func(*esapi.SearchRequest){
			c.es.Search.WithContext(ctx),
			c.es.Search.WithBody(bytes.NewReader(body)),
			c.es.Search.WithScroll(c.keepAlive),
			c.es.Search.WithSize(c.pageSize),
		}
		// An empty index searches every index, as /_search does.
		if q.Index != "" {
			opts = append(opts, c.es.Search.WithIndex(q.Index))
		}

		page, err := c.decode(c.es.Search(opts...))
		if err != nil {
			yield(nil, err)
			return
		}

		scrollID := page.ScrollID
		defer func() { c.clearScroll(ctx, scrollID) }()

		for scrollID != "" && len(page.Hits.Hits) > 0 {
			if err := page.Shards.check(); err != nil {
				yield(nil, err)
				return
			}

			for _, h := range page.Hits.Hits {
				if len(h.Source) == 0 {
					yield(nil, fmt.Errorf("document %s/%s has no _source", h.Index, h.ID))
					return
				}
				if !yield(h.Source, nil) {
					return
				}
			}

			page, err = c.decode(c.es.Scroll(
				c.es.Scroll.WithContext(ctx),
				c.es.Scroll.WithBody(scrollBody(scrollID, c.keepAlive)),
			))
			if err != nil {
				yield(nil, err)
				return
			}
			if page.ScrollID != "" {
				scrollID = page.ScrollID
			}
		}
	}
}

// decode reads a search or scroll response, mapping transport failures and
// error responses to classified errors.
func (c *ESClient) decode(res *esapi.Response, err error) (*searchResponse, error) {
	if err != nil {
		return nil, esserror.Classify(c.inspector, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, esserror.Classify(c.inspector, esserror.FromResponse(res.StatusCode, res.Body))
	}

	var page searchResponse
	if err := json.NewDecoder(res.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return &page, nil
}

// clearScroll releases the scroll context. Failures are logged and otherwise
// ignored; the service expires the context after the keep-alive anyway.
func (c *ESClient) clearScroll(ctx context.Context, scrollID string) {
	if scrollID == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), clearScrollTimeout)
	defer cancel()

	body, _ := json.Marshal(map[string][]string{"scroll_id": {scrollID}})
	res, err := c.es.ClearScroll(
		c.es.ClearScroll.WithContext(ctx),
		c.es.ClearScroll.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		level.Warn(c.logger).Log("msg", "failed to clear scroll", "err", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != http.StatusNotFound {
		level.Warn(c.logger).Log("msg", "failed to clear scroll", "err", esserror.FromResponse(res.StatusCode, res.Body))
	}
}

// basicAuth renders the Authorization header value. Either part may be empty.
func basicAuth(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func scrollBody(scrollID string, keepAlive time.Duration) *bytes.Reader {
	body, _ := json.Marshal(struct {
		Scroll   string `json:"scroll"`
		ScrollID string `json:"scroll_id"`
	}{
		Scroll:   formatKeepAlive(keepAlive),
		ScrollID: scrollID,
	})
	return bytes.NewReader(body)
}

// formatKeepAlive renders d in Elasticsearch time units, e.g. "20s".
func formatKeepAlive(d time.Duration) string {
	if d%time.Second == 0 {
		return fmt.Sprintf("%ds", d/time.Second)
	}
	return fmt.Sprintf("%dms", d/time.Millisecond)
}

// normalizeHost adds an http:// scheme to a bare host:port.
func normalizeHost(host string) string {
	host = strings.TrimSpace(host)
	if host == "" || strings.Contains(host, "://") {
		return host
	}
	return "http://" + host
}
