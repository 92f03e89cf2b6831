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

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
)

// Indent is the per-level indentation of the emitted array.
const Indent = "  "

// ErrClosed is returned when writing to an ArrayWriter after Close.
var ErrClosed = errors.New("output writer closed")

// ArrayWriter collects records and writes them as one JSON array on Close.
type ArrayWriter struct {
	mu      sync.Mutex
	output  io.Writer
	records []json.RawMessage
	closed  bool
}

// NewArrayWriter creates a writer that emits its array to w.
func NewArrayWriter(w io.Writer) *ArrayWriter {
	return &ArrayWriter{
		output:  w,
		records: make([]json.RawMessage, 0),
	}
}

// Write buffers a single record. json.RawMessage and []byte values are kept
// verbatim and must hold valid JSON; anything else is marshaled first.
func (w *ArrayWriter) Write(record interface{}) error {
	raw, err := toRaw(record)
	if err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	w.records = append(w.records, raw)
	return nil
}

// Count returns the number of records buffered.
func (w *ArrayWriter) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.records)
}

// Close writes the buffered records as a JSON array indented by two spaces
// and followed by a newline. An empty writer produces "[]".
func (w *ArrayWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	enc := json.NewEncoder(w.output)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", Indent)
	if err := enc.Encode(w.records); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func toRaw(record interface{}) (json.RawMessage, error) {
	switch v := record.(type) {
	case json.RawMessage:
		if !json.Valid(v) {
			return nil, errors.New("invalid JSON document")
		}
		return v, nil
	case []byte:
		if !json.Valid(v) {
			return nil, errors.New("invalid JSON document")
		}
		return json.RawMessage(v), nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
}
