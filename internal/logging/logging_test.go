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

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

func TestNew_Filtering(t *testing.T) {
	tests := []struct {
		lvl       string
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
	}{
		{"debug", true, true, true},
		{"info", false, true, true},
		{"warn", false, false, true},
		{"", false, false, true},
		{"ERROR", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.lvl, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := New(&buf, tt.lvl)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			_ = level.Debug(logger).Log("msg", "debug-line")
			_ = level.Info(logger).Log("msg", "info-line")
			_ = level.Warn(logger).Log("msg", "warn-line")
			_ = level.Error(logger).Log("msg", "error-line")

			out := buf.String()
			if got := strings.Contains(out, "debug-line"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(out, "info-line"); got != tt.wantInfo {
				t.Errorf("info logged = %v, want %v", got, tt.wantInfo)
			}
			if got := strings.Contains(out, "warn-line"); got != tt.wantWarn {
				t.Errorf("warn logged = %v, want %v", got, tt.wantWarn)
			}
			if !strings.Contains(out, "error-line") {
				t.Error("error records must always be logged")
			}
		})
	}
}

func TestNew_Logfmt(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "info")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_ = level.Info(logger).Log("msg", "scan complete", "documents", 3)

	out := buf.String()
	for _, want := range []string{"level=info", `msg="scan complete"`, "documents=3", "ts=", "caller="} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "verbose"); err == nil {
		t.Error("New() with invalid level should fail")
	}
}

func TestNew_CallerIsCallSite(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "debug")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_ = level.Debug(logger).Log("msg", "direct")
	_ = log.With(logger, "component", "search").Log("msg", "nested")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), buf.String())
	}
	for _, line := range lines {
		if !strings.Contains(line, "caller=logging_test.go:") {
			t.Errorf("line %q does not report the test file as caller", line)
		}
		if strings.Contains(line, "caller=level.go") {
			t.Errorf("line %q reports the level filter as caller", line)
		}
	}
}
