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

// Package metadata provides functionality for tracking statistics about a
// scan: how many search and scroll requests were made, how many documents
// came back and how long it took. The runner logs the result at debug level
// so slow or unexpectedly empty scans can be diagnosed without touching
// stdout.
package metadata

import (
	"sync"
	"time"
)

// Tracker collects statistics during a scan operation and generates metadata.
// Create a new tracker at the start of each scan. Its methods are safe for
// concurrent use and a nil *Tracker ignores every call.
type Tracker struct {
	mu           sync.Mutex
	now          func() time.Time
	startTime    time.Time
	apiCallCount int
	documents    int
}

// New creates a new metadata tracker and initializes it with the current time
// read from now. A nil now uses time.Now.
func New(now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{
		now:       now,
		startTime: now(),
	}
}

// IncrementAPICall records that a search, scroll or clear-scroll request was made.
func (t *Tracker) IncrementAPICall() {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.apiCallCount++
	t.mu.Unlock()
}

// RecordDocument records that one document was yielded by the scan.
func (t *Tracker) RecordDocument() {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.documents++
	t.mu.Unlock()
}

// APICalls returns the number of requests recorded so far.
func (t *Tracker) APICalls() int {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.apiCallCount
}

// Documents returns the number of documents recorded so far.
func (t *Tracker) Documents() int {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.documents
}

// GenerateMetadata creates a ScanMetadata capturing the complete scan
// statistics. Call this at the end of the scan, successful or not.
func (t *Tracker) GenerateMetadata(version, scanID string, params ScanParams) *ScanMetadata {
	t.mu.Lock()
	defer t.mu.Unlock()

	completedAt := t.now()
	duration := completedAt.Sub(t.startTime)

	return &ScanMetadata{
		Version:    version,
		ScanID:     scanID,
		Parameters: params,
		Results: ScanResults{
			Documents:    t.documents,
			APICallCount: t.apiCallCount,
			Duration:     duration.String(),
			StartedAt:    t.startTime,
			CompletedAt:  completedAt,
		},
	}
}
