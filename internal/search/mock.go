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
	"fmt"
	"iter"

	relaierrors "github.com/sirseerhq/transfer-ads/internal/errors"
	"github.com/sirseerhq/transfer-ads/internal/query"
)

// MockClient is a mock implementation of the Client interface for testing.
type MockClient struct {
	// Documents to yield, in order
	Documents []json.RawMessage

	// Error to yield after FailAfter documents
	Error     error
	FailAfter int

	// Behavior flags
	ShouldFailAuth    bool
	ShouldFailNetwork bool

	// Track calls for verification
	CallCount int
	LastQuery *query.Query
	Yielded   int
}

// NewMockClient creates a new mock client with default test data
func NewMockClient() *MockClient {
	return &MockClient{
		Documents: generateTestAds(),
	}
}

// Scan implements the Client interface
func (m *MockClient) Scan(ctx context.Context, q *query.Query) iter.Seq2[json.RawMessage, error] {
	m.CallCount++
	m.LastQuery = q

	return func(yield func(json.RawMessage, error) bool) {
		select {
		case <-ctx.Done():
			yield(nil, ctx.Err())
			return
		default:
		}

		if m.ShouldFailAuth {
			yield(nil, fmt.Errorf("elasticsearch returned 401 Unauthorized: %w", relaierrors.ErrAuthFailed))
			return
		}

		if m.ShouldFailNetwork {
			yield(nil, fmt.Errorf("dial tcp 127.0.0.1:9200: connection refused: %w", relaierrors.ErrNetworkFailure))
			return
		}

		for i, doc := range m.Documents {
			if m.Error != nil && i == m.FailAfter {
				yield(nil, m.Error)
				return
			}
			m.Yielded++
			if !yield(doc, nil) {
				return
			}
		}

		if m.Error != nil && m.FailAfter >= len(m.Documents) {
			yield(nil, m.Error)
		}
	}
}

// generateTestAds creates sample transfer ads for testing
func generateTestAds() []json.RawMessage {
	return []json.RawMessage{
		json.RawMessage(`{"ScheddName":"ap40.uw.osg-htc.org","TransferProtocol":"osdf","RecordTime":1700000100,"TransferSuccess":true,"TransferTotalBytes":1048576}`),
		json.RawMessage(`{"ScheddName":"ap40.uw.osg-htc.org","TransferProtocol":"stash","RecordTime":1700000200,"TransferSuccess":false,"TransferError":"timeout"}`),
		json.RawMessage(`{"ScheddName":"ap40.uw.osg-htc.org","TransferProtocol":"pelican","RecordTime":1700000300,"TransferSuccess":true,"TransferTotalBytes":52428800}`),
	}
}

// MockClientOption allows configuring the mock client
type MockClientOption func(*MockClient)

// WithDocuments sets specific documents to yield
func WithDocuments(docs []json.RawMessage) MockClientOption {
	return func(m *MockClient) {
		m.Documents = docs
	}
}

// WithError makes the scan fail with err after n documents
func WithError(err error, n int) MockClientOption {
	return func(m *MockClient) {
		m.Error = err
		m.FailAfter = n
	}
}

// WithAuthFailure makes the client simulate authentication failure
func WithAuthFailure() MockClientOption {
	return func(m *MockClient) {
		m.ShouldFailAuth = true
	}
}

// WithNetworkFailure makes the client simulate a connection failure
func WithNetworkFailure() MockClientOption {
	return func(m *MockClient) {
		m.ShouldFailNetwork = true
	}
}

// NewMockClientWithOptions creates a mock client with options
func NewMockClientWithOptions(opts ...MockClientOption) *MockClient {
	mock := NewMockClient()
	for _, opt := range opts {
		opt(mock)
	}
	return mock
}
