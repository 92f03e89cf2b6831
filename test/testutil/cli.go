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
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// TestVersion is stamped into the binary built for CLI tests.
const TestVersion = "0.0.0-test"

// cliTimeout bounds a single CLI invocation.
const cliTimeout = 30 * time.Second

var (
	buildOnce  sync.Once
	binaryPath string
	buildErr   error
	buildLog   []byte
)

// BuildBinary compiles cmd/transfer-ads once per test process and returns
// the path to the executable.
func BuildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		root, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		dir, err := os.MkdirTemp("", "transfer-ads-bin")
		if err != nil {
			buildErr = err
			return
		}
		binaryPath = filepath.Join(dir, "transfer-ads")

		cmd := exec.Command("go", "build",
			"-ldflags", "-X main.version="+TestVersion,
			"-o", binaryPath, "./cmd/transfer-ads")
		cmd.Dir = root
		buildLog, buildErr = cmd.CombinedOutput()
	})

	if buildErr != nil {
		t.Fatalf("Failed to build transfer-ads: %v\n%s", buildErr, buildLog)
	}
	return binaryPath
}

// CLIResult is the outcome of one transfer-ads invocation.
type CLIResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

// RunCLI executes transfer-ads with args and captures both streams.
func RunCLI(t *testing.T, args ...string) CLIResult {
	t.Helper()

	binary := BuildBinary(t)

	ctx, cancel := context.WithTimeout(context.Background(), cliTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := CLIResult{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		result.ExitCode = -1
	}
	if ctx.Err() != nil {
		t.Fatalf("transfer-ads %s did not finish within %s", strings.Join(args, " "), cliTimeout)
	}
	return result
}

// RunAgainst runs transfer-ads with --host pointing at server.
func RunAgainst(t *testing.T, server *FakeElasticsearch, args ...string) CLIResult {
	t.Helper()
	return RunCLI(t, append([]string{"--host", server.URL}, args...)...)
}

// AssertCLISuccess fails the test unless the run exited 0.
func AssertCLISuccess(t *testing.T, result CLIResult) {
	t.Helper()

	if result.Err != nil {
		t.Fatalf("transfer-ads failed: %v\nStderr: %s", result.Err, result.Stderr)
	}
}

// AssertCLIError checks that the run failed, that stderr mentions
// expectedError and that nothing at all reached stdout.
func AssertCLIError(t *testing.T, result CLIResult, expectedError string) {
	t.Helper()

	if result.Err == nil {
		t.Fatalf("Expected transfer-ads to fail, but it succeeded\nStdout: %s", result.Stdout)
	}
	if !strings.HasPrefix(result.Stderr, "Error: ") && !strings.Contains(result.Stderr, "\nError: ") {
		t.Errorf("Expected an \"Error: \" line on stderr, got: %s", result.Stderr)
	}
	if expectedError != "" && !strings.Contains(result.Stderr, expectedError) {
		t.Errorf("Expected error containing %q, got: %s", expectedError, result.Stderr)
	}
	if result.Stdout != "" {
		t.Errorf("Expected no output on failure, got: %s", result.Stdout)
	}
}

// AssertExitCode checks the process exit status.
func AssertExitCode(t *testing.T, result CLIResult, expected int) {
	t.Helper()

	if result.ExitCode != expected {
		t.Errorf("exit code = %d, want %d\nStderr: %s", result.ExitCode, expected, result.Stderr)
	}
}

// findModuleRoot walks up from the working directory to the go.mod.
func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("go.mod not found above " + dir)
		}
		dir = parent
	}
}
