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

// Package errors defines sentinel errors for consistent error handling across the application.
// These errors map to specific exit codes in the CLI for proper scripting support.
package errors

import "errors"

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrPasswordRequired indicates --user was given without --pass.
	// Detected before any network I/O. Maps to exit code 1.
	ErrPasswordRequired = errors.New("--pass is required if --user is set")

	// ErrMissingFlag indicates a required setting (host, index or access point) is empty.
	// Maps to exit code 1.
	ErrMissingFlag = errors.New("required flag not set")

	// ErrAuthFailed indicates Elasticsearch rejected the supplied credentials.
	// Maps to exit code 2.
	ErrAuthFailed = errors.New("elasticsearch authentication failed")

	// ErrIndexNotFound indicates the index or index pattern does not exist.
	// Maps to exit code 2.
	ErrIndexNotFound = errors.New("index not found")

	// ErrQueryRejected indicates Elasticsearch refused the query as malformed.
	// Maps to exit code 1.
	ErrQueryRejected = errors.New("query rejected")

	// ErrNetworkFailure indicates a network connection problem.
	// Maps to exit code 3.
	ErrNetworkFailure = errors.New("network connection failed")

	// ErrServiceUnavailable indicates the cluster answered but could not serve the request.
	// Maps to exit code 3.
	ErrServiceUnavailable = errors.New("elasticsearch unavailable")

	// ErrScanIncomplete indicates one or more shards failed during a scroll,
	// so the result set would be partial. Maps to exit code 1.
	ErrScanIncomplete = errors.New("scan incomplete")
)
