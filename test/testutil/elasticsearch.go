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

// Package testutil provides common test helpers for transfer-ads
package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// RecordedRequest is a request received by FakeElasticsearch.
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// FakeElasticsearch is an httptest server that speaks enough of the
// Elasticsearch search, scroll and clear-scroll APIs to drive a scan.
type FakeElasticsearch struct {
	*httptest.Server

	// Documents are served in order, split into pages by the size parameter.
	Documents []json.RawMessage

	// Index, when set, is the only index that exists; others answer 404.
	Index string

	// Username and Password, when set, are required as basic auth.
	Username string
	Password string

	// ErrorStatus, when non-zero, is returned for every search and scroll.
	ErrorStatus int

	// FailShardsOnPage makes the given 1-based page report a failed shard.
	FailShardsOnPage int

	mu       sync.Mutex
	requests []RecordedRequest
	scrolls  map[string]*scrollState
	cleared  []string
	nextID   int
}

type scrollState struct {
	offset int
	size   int
	page   int
}

// NewFakeElasticsearch starts a fake cluster serving docs. It is closed
// when the test ends.
func NewFakeElasticsearch(t *testing.T, docs ...json.RawMessage) *FakeElasticsearch {
	t.Helper()
	f := &FakeElasticsearch{
		Documents: docs,
		scrolls:   make(map[string]*scrollState),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Close)
	return f
}

// Requests returns a copy of every request received so far.
func (f *FakeElasticsearch) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]RecordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// ClearedScrolls returns the scroll IDs released through clear-scroll.
func (f *FakeElasticsearch) ClearedScrolls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.cleared))
	copy(out, f.cleared)
	return out
}

// OpenScrolls returns the number of scroll contexts not yet cleared.
func (f *FakeElasticsearch) OpenScrolls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.scrolls)
}

func (f *FakeElasticsearch) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	if r.URL.Path == "/" {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"version":{"number":"8.17.0","build_flavor":"default"},"tagline":"You Know, for Search"}`)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   body,
	})

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	if f.Username != "" {
		user, pass, ok := r.BasicAuth()
		if !ok || user != f.Username || pass != f.Password {
			writeError(w, http.StatusUnauthorized, "security_exception",
				fmt.Sprintf("unable to authenticate user [%s] for REST request [%s]", user, r.URL.Path))
			return
		}
	}

	switch {
	case strings.HasPrefix(r.URL.Path, "/_search/scroll"):
		if r.Method == http.MethodDelete {
			f.clearScroll(w, r, body)
			return
		}
		f.scroll(w, r, body)
	case strings.HasSuffix(r.URL.Path, "/_search"):
		f.search(w, r, body)
	default:
		writeError(w, http.StatusBadRequest, "illegal_argument_exception", "unsupported path "+r.URL.Path)
	}
}

func (f *FakeElasticsearch) search(w http.ResponseWriter, r *http.Request, body []byte) {
	if f.ErrorStatus != 0 {
		writeError(w, f.ErrorStatus, errorType(f.ErrorStatus), "injected failure")
		return
	}

	index := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/"), "/_search")
	if f.Index != "" && index != f.Index {
		writeError(w, http.StatusNotFound, "index_not_found_exception", fmt.Sprintf("no such index [%s]", index))
		return
	}

	if len(body) > 0 && !json.Valid(body) {
		writeError(w, http.StatusBadRequest, "parsing_exception", "request body is not valid JSON")
		return
	}

	size := 10
	if s := r.URL.Query().Get("size"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			size = n
		}
	}

	f.nextID++
	state := &scrollState{size: size}
	id := fmt.Sprintf("scroll-%d", f.nextID)
	f.scrolls[id] = state
	f.writePage(w, index, id, state)
}

func (f *FakeElasticsearch) scroll(w http.ResponseWriter, r *http.Request, body []byte) {
	if f.ErrorStatus != 0 {
		writeError(w, f.ErrorStatus, errorType(f.ErrorStatus), "injected failure")
		return
	}

	id := r.URL.Query().Get("scroll_id")
	if id == "" {
		var req struct {
			ScrollID string `json:"scroll_id"`
		}
		_ = json.Unmarshal(body, &req)
		id = req.ScrollID
	}

	state, ok := f.scrolls[id]
	if !ok {
		writeError(w, http.StatusNotFound, "search_context_missing_exception", "No search context found for id ["+id+"]")
		return
	}

	// Hand out a fresh id per page so callers must track the latest one.
	delete(f.scrolls, id)
	f.nextID++
	id = fmt.Sprintf("scroll-%d", f.nextID)
	f.scrolls[id] = state
	f.writePage(w, f.Index, id, state)
}

func (f *FakeElasticsearch) clearScroll(w http.ResponseWriter, r *http.Request, body []byte) {
	var ids []string
	if rest := strings.TrimPrefix(r.URL.Path, "/_search/scroll/"); rest != r.URL.Path && rest != "" {
		ids = append(ids, strings.Split(rest, ",")...)
	}
	if q := r.URL.Query().Get("scroll_id"); q != "" {
		ids = append(ids, strings.Split(q, ",")...)
	}
	if len(body) > 0 {
		var req struct {
			ScrollID json.RawMessage `json:"scroll_id"`
		}
		if json.Unmarshal(body, &req) == nil && len(req.ScrollID) > 0 {
			var many []string
			var one string
			if json.Unmarshal(req.ScrollID, &many) == nil {
				ids = append(ids, many...)
			} else if json.Unmarshal(req.ScrollID, &one) == nil {
				ids = append(ids, one)
			}
		}
	}

	freed := 0
	for _, id := range ids {
		f.cleared = append(f.cleared, id)
		if _, ok := f.scrolls[id]; ok {
			delete(f.scrolls, id)
			freed++
		}
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"succeeded": true, "num_freed": freed})
}

func (f *FakeElasticsearch) writePage(w http.ResponseWriter, index, scrollID string, state *scrollState) {
	state.page++

	end := state.offset + state.size
	if end > len(f.Documents) {
		end = len(f.Documents)
	}

	hits := make([]map[string]interface{}, 0, end-state.offset)
	for i := state.offset; i < end; i++ {
		hits = append(hits, map[string]interface{}{
			"_index":  index,
			"_id":     fmt.Sprintf("doc-%d", i),
			"_score":  nil,
			"_source": f.Documents[i],
			"sort":    []int{i},
		})
	}
	state.offset = end

	successful, failed := 1, 0
	if f.FailShardsOnPage == state.page {
		successful, failed = 0, 1
	}

	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"_scroll_id": scrollID,
		"took":       1,
		"timed_out":  false,
		"_shards": map[string]int{
			"total":      1,
			"successful": successful,
			"skipped":    0,
			"failed":     failed,
		},
		"hits": map[string]interface{}{
			"total":     map[string]interface{}{"value": len(f.Documents), "relation": "eq"},
			"max_score": nil,
			"hits":      hits,
		},
	})
}

func writeError(w http.ResponseWriter, status int, typ, reason string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]interface{}{
			"root_cause": []map[string]string{{"type": typ, "reason": reason}},
			"type":       typ,
			"reason":     reason,
		},
		"status": status,
	})
}

func errorType(status int) string {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return "security_exception"
	case http.StatusNotFound:
		return "index_not_found_exception"
	case http.StatusBadRequest:
		return "parsing_exception"
	default:
		return "es_rejected_execution_exception"
	}
}

// SearchBody decodes the JSON body of the first search request.
func (f *FakeElasticsearch) SearchBody(t *testing.T) map[string]interface{} {
	t.Helper()
	for _, r := range f.Requests() {
		if strings.HasSuffix(r.Path, "/_search") {
			var body map[string]interface{}
			if err := json.Unmarshal(r.Body, &body); err != nil {
				t.Fatalf("search body is not JSON: %v", err)
			}
			return body
		}
	}
	t.Fatal("no search request received")
	return nil
}
