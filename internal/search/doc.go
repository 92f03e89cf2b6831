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

// Package search scans an Elasticsearch index with a filter query and
// yields the stored source of every matching document.
//
// The package includes:
//   - A Client interface: submit a query, receive a lazy stream of documents
//   - An Elasticsearch implementation built on the scroll API
//   - A mock client for testing
//
// Basic usage:
//
//	client, err := search.NewESClient(search.Options{
//	    Host:     "https://es.example.org:9200",
//	    Username: "reader",
//	    Password: "secret",
//	})
//	if err != nil {
//	    // Handle error
//	}
//	for doc, err := range client.Scan(ctx, query.Build(index, ap, start, end)) {
//	    if err != nil {
//	        // Scan failed; the stream ends here
//	    }
//	    // doc is the document's _source
//	}
package search
