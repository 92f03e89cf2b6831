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

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	relaierrors "github.com/sirseerhq/transfer-ads/internal/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.PageSize != 1000 {
		t.Errorf("PageSize = %d, want 1000", cfg.PageSize)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %s, want warn", cfg.LogLevel)
	}
	if cfg.Host != "" || cfg.Index != "" || cfg.AP != "" {
		t.Errorf("required settings should have no default, got %+v", cfg)
	}
	if ScrollKeepAlive != 20*time.Second {
		t.Errorf("ScrollKeepAlive = %s, want 20s", ScrollKeepAlive)
	}
}

func TestLoadConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
host: https://es.example.org:9200
index: adstash-ospool-transfer-*
ap: ap40.uw.osg-htc.org
user: reader
pass: s3cret
page_size: 500
log_level: debug
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Host != "https://es.example.org:9200" {
		t.Errorf("Host = %s", cfg.Host)
	}
	if cfg.Index != "adstash-ospool-transfer-*" {
		t.Errorf("Index = %s", cfg.Index)
	}
	if cfg.AP != "ap40.uw.osg-htc.org" {
		t.Errorf("AP = %s", cfg.AP)
	}
	if cfg.Username != "reader" || cfg.Password != "s3cret" {
		t.Errorf("credentials = %q/%q, want reader/s3cret", cfg.Username, cfg.Password)
	}
	if cfg.PageSize != 500 {
		t.Errorf("PageSize = %d, want 500", cfg.PageSize)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", cfg.LogLevel)
	}
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("host: http://localhost:9200\n"), 0o644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.PageSize != DefaultPageSize {
		t.Errorf("PageSize = %d, want default %d", cfg.PageSize, DefaultPageSize)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %s, want default %s", cfg.LogLevel, DefaultLogLevel)
	}
}

func TestLoadConfigEmptyFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(configPath, nil, 0o644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed on empty file: %v", err)
	}
	if cfg.PageSize != DefaultPageSize {
		t.Errorf("PageSize = %d, want %d", cfg.PageSize, DefaultPageSize)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		content string
		path    string
		wantMsg string
	}{
		{
			name:    "missing file",
			path:    filepath.Join(tmpDir, "nope.yaml"),
			wantMsg: "failed to read config file",
		},
		{
			name:    "invalid yaml",
			content: "host: [unclosed",
			wantMsg: "failed to parse config file",
		},
		{
			name:    "unknown key",
			content: "hostname: http://localhost:9200\n",
			wantMsg: "failed to parse config file",
		},
		{
			name:    "start is not file configurable",
			content: "start: 100\n",
			wantMsg: "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path
			if path == "" {
				path = filepath.Join(tmpDir, strings.ReplaceAll(tt.name, " ", "_")+".yaml")
				if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
					t.Fatalf("Failed to write test config: %v", err)
				}
			}

			_, err := LoadConfig(path)
			if err == nil {
				t.Fatal("LoadConfig() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("LoadConfig() error = %v, want containing %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoadConfigNoPath(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") error = %v", err)
	}
	if cfg.PageSize != DefaultPageSize {
		t.Errorf("PageSize = %d, want %d", cfg.PageSize, DefaultPageSize)
	}
}

func TestDefaultWindow(t *testing.T) {
	now := time.Unix(1700086400, 500_000_000)
	start, end := DefaultWindow(now)

	if end != 1700086400 {
		t.Errorf("end = %d, want 1700086400", end)
	}
	if start != 1700000000 {
		t.Errorf("start = %d, want 1700000000", start)
	}
	if end-start != 86400 {
		t.Errorf("window = %d seconds, want 86400", end-start)
	}
}

func TestLoadConfigRecordsSuppliedKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := "ap: \"\"\nuser: alice\npass: \"\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	for _, key := range []string{KeyAP, KeyUser, KeyPass} {
		if !cfg.Supplied(key) {
			t.Errorf("Supplied(%q) = false, want true", key)
		}
	}
	for _, key := range []string{KeyHost, KeyIndex} {
		if cfg.Supplied(key) {
			t.Errorf("Supplied(%q) = true for a key absent from the file", key)
		}
	}
	if err := cfg.ValidateCredentials(); err != nil {
		t.Errorf("ValidateCredentials() = %v, want nil for an empty password that was given", err)
	}
	if !cfg.HasCredentials() {
		t.Error("HasCredentials() = false, want true")
	}
}

func TestValidateSuppliedEmptyValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "http://localhost:9200"
	cfg.Index = "transfers"
	cfg.MarkSupplied(KeyAP, KeyUser, KeyPass)

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil for supplied empty --ap and --pass", err)
	}

	cfg = DefaultConfig()
	cfg.MarkSupplied(KeyHost, KeyIndex, KeyUser)
	cfg.AP = "ap1"
	if err := cfg.Validate(); !errors.Is(err, relaierrors.ErrPasswordRequired) {
		t.Errorf("Validate() = %v, want ErrPasswordRequired for an empty --user without --pass", err)
	}
}

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "no credentials"},
		{name: "user and password", username: "alice", password: "pw"},
		{name: "password alone is ignored", password: "pw"},
		{name: "user without password", username: "alice", wantErr: relaierrors.ErrPasswordRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Username: tt.username, Password: tt.password}
			err := cfg.ValidateCredentials()
			if !errors.Is(err, tt.wantErr) || (tt.wantErr == nil && err != nil) {
				t.Errorf("ValidateCredentials() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.Host = "http://localhost:9200"
		cfg.Index = "transfers"
		cfg.AP = "ap1"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
		wantMsg string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "credentials checked first",
			mutate:  func(c *Config) { c.Host = ""; c.Username = "alice" },
			wantErr: relaierrors.ErrPasswordRequired,
		},
		{
			name:    "missing host",
			mutate:  func(c *Config) { c.Host = "" },
			wantErr: relaierrors.ErrMissingFlag,
			wantMsg: "--host",
		},
		{
			name:    "missing everything",
			mutate:  func(c *Config) { c.Host, c.Index, c.AP = "", "", "" },
			wantErr: relaierrors.ErrMissingFlag,
			wantMsg: "--host, --index, --ap",
		},
		{
			name:    "zero page size",
			mutate:  func(c *Config) { c.PageSize = 0 },
			wantMsg: "page size must be positive",
		},
		{
			name:    "page size over limit",
			mutate:  func(c *Config) { c.PageSize = MaxPageSize + 1 },
			wantMsg: "exceeds Elasticsearch limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == nil && tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Validate() = %v, want containing %q", err, tt.wantMsg)
			}
		})
	}
}
