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

// Package main implements the transfer-ads command-line interface.
// The tool scans an Elasticsearch index for OSDF transfer ads recorded by
// one access point within a time window and prints their sources as a
// single JSON array on stdout.
//
// The filter always restricts TransferProtocol to stash, osdf and pelican.
// The window defaults to the 24 hours before the moment of invocation.
//
// Usage:
//
//	transfer-ads --host <url> --index <pattern> --ap <name> [flags]
//
// Example:
//
//	transfer-ads --host https://es.example.org:9200 \
//	    --index 'adstash-ospool-transfer-*' --ap ap40.uw.osg-htc.org \
//	    --user reader --pass s3cret > ads.json
//
// Exit codes:
//   - 0: Success, including when nothing matched
//   - 1: Usage or general error
//   - 2: Authentication failure or index not found
//   - 3: Network error or service unavailable
package main
