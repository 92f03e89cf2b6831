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

package testutil

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

// AssertJSONArrayOutput checks that output is one JSON array whose elements
// equal want, in order.
func AssertJSONArrayOutput(t *testing.T, output string, want []json.RawMessage) {
	t.Helper()

	var got []interface{}
	if err := json.Unmarshal([]byte(output), &got); err != nil {
		t.Fatalf("output is not a JSON array: %v\nOutput: %s", err, output)
	}

	if len(got) != len(want) {
		t.Fatalf("output has %d documents, want %d", len(got), len(want))
	}

	for i := range want {
		var w interface{}
		if err := json.Unmarshal(want[i], &w); err != nil {
			t.Fatalf("want[%d] is not JSON: %v", i, err)
		}
		if !reflect.DeepEqual(got[i], w) {
			t.Errorf("document %d = %v, want %v", i, got[i], w)
		}
	}
}

// AssertNoMetadataFields checks that no element of a JSON array carries
// search-engine hit metadata.
func AssertNoMetadataFields(t *testing.T, output string) {
	t.Helper()

	var docs []map[string]interface{}
	if err := json.Unmarshal([]byte(output), &docs); err != nil {
		t.Fatalf("output is not a JSON array of objects: %v", err)
	}
	for i, doc := range docs {
		for _, key := range []string{"_id", "_index", "_score", "_source", "sort"} {
			if _, ok := doc[key]; ok {
				t.Errorf("document %d carries hit metadata field %q", i, key)
			}
		}
	}
}

// AssertContainsString checks if a string contains a substring
func AssertContainsString(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Errorf("Expected string to contain %q, got: %s", needle, haystack)
	}
}

// AssertNotContainsString checks if a string does not contain a substring
func AssertNotContainsString(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		t.Errorf("Expected string not to contain %q, got: %s", needle, haystack)
	}
}
