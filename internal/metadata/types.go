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

// Package metadata types define the structures used for describing a scan
// once it has finished. They are reported on stderr and never persisted.
package metadata

import (
	"time"
)

// ScanMetadata represents the complete record for a single scan operation:
// what was asked for and what came back.
type ScanMetadata struct {
	Version    string      `json:"version"`
	ScanID     string      `json:"scan_id"`
	Parameters ScanParams  `json:"parameters"`
	Results    ScanResults `json:"results"`
}

// ScanParams captures the input parameters used for a scan.
type ScanParams struct {
	Index    string `json:"index"`
	AP       string `json:"ap"`
	Start    int64  `json:"start"`
	End      int64  `json:"end"`
	PageSize int    `json:"page_size"`
}

// ScanResults contains statistics about a completed scan.
type ScanResults struct {
	Documents    int       `json:"documents"`
	APICallCount int       `json:"api_calls_made"`
	Duration     string    `json:"scan_duration"`
	StartedAt    time.Time `json:"started_at"`
	CompletedAt  time.Time `json:"completed_at"`
}

// Keyvals flattens the record into alternating keys and values for a
// structured logger.
func (m *ScanMetadata) Keyvals() []interface{} {
	return []interface{}{
		"scan_id", m.ScanID,
		"version", m.Version,
		"index", m.Parameters.Index,
		"ap", m.Parameters.AP,
		"start", m.Parameters.Start,
		"end", m.Parameters.End,
		"page_size", m.Parameters.PageSize,
		"documents", m.Results.Documents,
		"api_calls", m.Results.APICallCount,
		"duration", m.Results.Duration,
	}
}
