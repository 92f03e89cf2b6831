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
	"errors"
	"testing"

	relaierrors "github.com/sirseerhq/transfer-ads/internal/errors"
	"github.com/sirseerhq/transfer-ads/internal/query"
)

// Compile-time checks that both clients implement Client
var (
	_ Client = (*ESClient)(nil)
	_ Client = (*MockClient)(nil)
)

func TestMockClient_Default(t *testing.T) {
	mock := NewMockClient()
	q := query.Build("transfers", "ap40.uw.osg-htc.org", 1, 2)

	docs, err := collect(mock.Scan(context.Background(), q))
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(docs) != 3 {
		t.Errorf("Scan() yielded %d documents, want 3", len(docs))
	}
	if mock.CallCount != 1 {
		t.Errorf("CallCount = %d, want 1", mock.CallCount)
	}
	if mock.LastQuery != q {
		t.Error("LastQuery does not match the submitted query")
	}
	for i, d := range docs {
		if !json.Valid(d) {
			t.Errorf("document %d is not valid JSON: %s", i, d)
		}
	}
}

func TestMockClient_Options(t *testing.T) {
	boom := errors.New("boom")
	docs := []json.RawMessage{
		json.RawMessage(`{"a":1}`),
		json.RawMessage(`{"a":2}`),
	}

	tests := []struct {
		name     string
		opts     []MockClientOption
		wantDocs int
		wantErr  error
	}{
		{
			name:     "custom documents",
			opts:     []MockClientOption{WithDocuments(docs)},
			wantDocs: 2,
		},
		{
			name:     "no documents",
			opts:     []MockClientOption{WithDocuments(nil)},
			wantDocs: 0,
		},
		{
			name:     "error mid stream",
			opts:     []MockClientOption{WithDocuments(docs), WithError(boom, 1)},
			wantDocs: 1,
			wantErr:  boom,
		},
		{
			name:     "error after last document",
			opts:     []MockClientOption{WithDocuments(docs), WithError(boom, 2)},
			wantDocs: 2,
			wantErr:  boom,
		},
		{
			name:    "auth failure",
			opts:    []MockClientOption{WithAuthFailure()},
			wantErr: relaierrors.ErrAuthFailed,
		},
		{
			name:    "network failure",
			opts:    []MockClientOption{WithNetworkFailure()},
			wantErr: relaierrors.ErrNetworkFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockClientWithOptions(tt.opts...)
			got, err := collect(mock.Scan(context.Background(), query.Build("i", "ap", 0, 1)))

			if len(got) != tt.wantDocs {
				t.Errorf("Scan() yielded %d documents, want %d", len(got), tt.wantDocs)
			}
			if tt.wantErr == nil && err != nil {
				t.Errorf("Scan() error = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Scan() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMockClient_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := collect(NewMockClient().Scan(ctx, query.Build("i", "ap", 0, 1)))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Scan() error = %v, want context.Canceled", err)
	}
}
