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

// Package config provides configuration management for transfer-ads with
// a small, well-defined precedence order:
//  1. Command-line flags
//  2. Configuration file given with --config
//  3. Built-in defaults
//
// There is no environment-variable configuration and no implicit file
// discovery: a file is read only when its path is passed explicitly.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	relaierrors "github.com/sirseerhq/transfer-ads/internal/errors"
)

// LoadConfig returns the built-in defaults overlaid with the YAML file at
// configPath. An empty configPath yields the defaults alone.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	if configPath == "" {
		return cfg, nil
	}

	if err := loadConfigFile(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file, rejecting unknown keys
func loadConfigFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	defer f.Close()

	var fc fileConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	setString := func(key string, dst *string, v *string) {
		if v != nil {
			*dst = *v
			cfg.MarkSupplied(key)
		}
	}
	setString(KeyHost, &cfg.Host, fc.Host)
	setString(KeyIndex, &cfg.Index, fc.Index)
	setString(KeyAP, &cfg.AP, fc.AP)
	setString(KeyUser, &cfg.Username, fc.User)
	setString(KeyPass, &cfg.Password, fc.Pass)
	setString(KeyLogLevel, &cfg.LogLevel, fc.LogLevel)
	if fc.PageSize != nil {
		cfg.PageSize = *fc.PageSize
		cfg.MarkSupplied(KeyPageSize)
	}

	return nil
}

// MarkSupplied records that the settings named by keys were given
// explicitly, even if their values are empty.
func (c *Config) MarkSupplied(keys ...string) {
	if c.supplied == nil {
		c.supplied = make(map[string]bool)
	}
	for _, k := range keys {
		c.supplied[k] = true
	}
}

// Supplied reports whether the setting named by key was given, either
// explicitly or as a non-empty value on the struct.
func (c *Config) Supplied(key string) bool {
	if c.supplied[key] {
		return true
	}
	switch key {
	case KeyHost:
		return c.Host != ""
	case KeyIndex:
		return c.Index != ""
	case KeyAP:
		return c.AP != ""
	case KeyUser:
		return c.Username != ""
	case KeyPass:
		return c.Password != ""
	}
	return false
}

// DefaultWindow returns the window used when --start and --end are omitted:
// the 24 hours ending at now.
func DefaultWindow(now time.Time) (start, end int64) {
	end = now.Unix()
	start = end - int64(DefaultWindowLength/time.Second)
	return start, end
}

// ValidateCredentials enforces that a username is never sent without a
// password. Only presence counts: an empty password that was given is
// accepted. It must run before any client or query is constructed.
func (c *Config) ValidateCredentials() error {
	if c.Supplied(KeyUser) && !c.Supplied(KeyPass) {
		return relaierrors.ErrPasswordRequired
	}
	return nil
}

// Validate checks the credential precondition, then that the required
// settings were supplied and the page size is within Elasticsearch's limits.
// Empty values that were supplied pass through to the service unchanged.
func (c *Config) Validate() error {
	if err := c.ValidateCredentials(); err != nil {
		return err
	}

	var missing []string
	for _, key := range []string{KeyHost, KeyIndex, KeyAP} {
		if !c.Supplied(key) {
			missing = append(missing, "--"+key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", relaierrors.ErrMissingFlag, strings.Join(missing, ", "))
	}

	if c.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got: %d", c.PageSize)
	}
	if c.PageSize > MaxPageSize {
		return fmt.Errorf("page size %d exceeds Elasticsearch limit of %d", c.PageSize, MaxPageSize)
	}
	return nil
}

// HasCredentials reports whether basic authentication should be attached:
// a username was supplied, even an empty one.
func (c *Config) HasCredentials() bool {
	return c.Supplied(KeyUser)
}
