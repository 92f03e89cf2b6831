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

// Package output provides utilities for writing scan results as a single
// pretty-printed JSON array.
//
// The primary type is ArrayWriter. It holds every record in memory and only
// writes when Close is called, so a run that fails part way leaves its
// destination untouched: consumers either get the complete array or nothing.
//
// Example usage:
//
//	w := output.NewArrayWriter(os.Stdout)
//	for doc, err := range client.Scan(ctx, q) {
//	    if err != nil {
//	        return err
//	    }
//	    if err := w.Write(doc); err != nil {
//	        return err
//	    }
//	}
//	return w.Close()
package output
