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

package output

// OutputWriter accepts scanned documents one at a time and emits them when
// closed. Implementations may hold every record until Close, so a caller
// that stops on an error before Close leaves its destination untouched.
type OutputWriter interface {
	// Write buffers one document. json.RawMessage and []byte values must
	// already be valid JSON; anything else is marshaled.
	Write(record interface{}) error

	// Close emits everything written so far. Calling it again is a no-op.
	Close() error
}
