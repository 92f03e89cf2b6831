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

// Package config types define the configuration structures used throughout
// transfer-ads. These types represent settings that can be loaded from a
// YAML configuration file or supplied as command-line flags.
package config

import "time"

const (
	// ScrollKeepAlive is how long Elasticsearch retains the scroll context
	// between page fetches. It is fixed, not configurable.
	ScrollKeepAlive = 20 * time.Second

	// DefaultPageSize is the number of hits requested per scroll page.
	DefaultPageSize = 1000

	// MaxPageSize mirrors Elasticsearch's default index.max_result_window.
	MaxPageSize = 10000

	// DefaultWindowLength is how far back the window starts when --start is omitted.
	DefaultWindowLength = 24 * time.Hour

	// DefaultLogLevel keeps stderr quiet unless something goes wrong.
	DefaultLogLevel = "warn"
)

// Setting keys, shared by the YAML file and the supplied-settings record.
const (
	KeyHost     = "host"
	KeyIndex    = "index"
	KeyAP       = "ap"
	KeyUser     = "user"
	KeyPass     = "pass"
	KeyPageSize = "page_size"
	KeyLogLevel = "log_level"
)

// Config represents the complete configuration for a single transfer-ads run.
// Connection settings may come from a file; the time window only ever comes
// from flags or the clock.
type Config struct {
	Host     string
	Index    string
	AP       string
	Username string
	Password string
	PageSize int
	LogLevel string

	// Start and End bound RecordTime as [Start, End) in Unix seconds.
	Start int64
	End   int64

	// supplied records the keys given by a flag or a file entry, whatever
	// their value. An empty string that was supplied is still a value.
	supplied map[string]bool
}

// fileConfig is the on-disk form. Pointer fields distinguish an absent key
// from one set to the zero value.
type fileConfig struct {
	Host     *string `yaml:"host"`
	Index    *string `yaml:"index"`
	AP       *string `yaml:"ap"`
	User     *string `yaml:"user"`
	Pass     *string `yaml:"pass"`
	PageSize *int    `yaml:"page_size"`
	LogLevel *string `yaml:"log_level"`
}

// DefaultConfig returns a Config with the built-in defaults. Host, index and
// access point have no defaults and must be supplied.
func DefaultConfig() *Config {
	return &Config{
		PageSize: DefaultPageSize,
		LogLevel: DefaultLogLevel,
	}
}
