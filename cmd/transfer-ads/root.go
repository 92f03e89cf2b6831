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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sirseerhq/transfer-ads/internal/config"
	relaierrors "github.com/sirseerhq/transfer-ads/internal/errors"
	"github.com/sirseerhq/transfer-ads/internal/logging"
	"github.com/sirseerhq/transfer-ads/internal/metadata"
	"github.com/sirseerhq/transfer-ads/internal/output"
	"github.com/sirseerhq/transfer-ads/internal/query"
	"github.com/sirseerhq/transfer-ads/internal/search"
)

// ClientFactory constructs the search client for a run.
type ClientFactory func(opts search.Options) (search.Client, error)

func newESClient(opts search.Options) (search.Client, error) {
	client, err := search.NewESClient(opts)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// app holds the process-level dependencies of a run.
type app struct {
	now       func() time.Time
	newClient ClientFactory
	stdout    io.Writer
	stderr    io.Writer
}

// flagValues mirrors the command-line flags before they are merged into
// the file configuration.
type flagValues struct {
	configPath string
	host       string
	index      string
	ap         string
	user       string
	pass       string
	start      int64
	end        int64
	pageSize   int
	logLevel   string
}

// execute runs the command with args and returns the process exit code.
func (a *app) execute(ctx context.Context, args []string) int {
	cmd := a.newRootCommand()
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return mapErrorToExitCode(err)
	}
	return 0
}

func (a *app) newRootCommand() *cobra.Command {
	var fv flagValues

	cmd := &cobra.Command{
		Use:   "transfer-ads",
		Short: "Dump OSDF transfer ads for one access point as JSON",
		Long: `transfer-ads scans an Elasticsearch index for transfer ads recorded by an
access point (ScheddName) over stash, osdf or pelican within [start, end)
and prints the source of every match as one JSON array on stdout.

Settings may also come from a YAML file given with --config; flags that are
set explicitly take precedence over the file.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // Errors are printed by execute
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd.Flags(), &fv, a.now)
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), cfg)
		},
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	flags := cmd.Flags()
	flags.StringVar(&fv.host, "host", "", "Elasticsearch endpoint, e.g. https://es.example.org:9200 (required)")
	flags.StringVar(&fv.index, "index", "", "Index name or pattern to search (required)")
	flags.StringVar(&fv.ap, "ap", "", "Access point name matched against ScheddName (required)")
	flags.StringVar(&fv.user, "user", "", "Username for basic authentication")
	flags.StringVar(&fv.pass, "pass", "", "Password for basic authentication (required with --user)")
	flags.Int64Var(&fv.start, "start", 0, "Inclusive lower bound on RecordTime, Unix seconds (default: now - 86400)")
	flags.Int64Var(&fv.end, "end", 0, "Exclusive upper bound on RecordTime, Unix seconds (default: now)")
	flags.StringVar(&fv.configPath, "config", "", "Path to a YAML configuration file")
	flags.IntVar(&fv.pageSize, "page-size", config.DefaultPageSize, "Documents fetched per scroll page")
	flags.StringVar(&fv.logLevel, "log-level", config.DefaultLogLevel, "Diagnostic log level on stderr (debug, info, warn, error)")

	return cmd
}

// resolveConfig loads the optional config file, overlays the flags that were
// set explicitly, checks the credential precondition and fills in the
// default window. Nothing here touches the network.
func resolveConfig(flags *pflag.FlagSet, fv *flagValues, now func() time.Time) (*config.Config, error) {
	cfg, err := config.LoadConfig(fv.configPath)
	if err != nil {
		return nil, err
	}

	// A flag counts as given when it appears on the command line, even
	// with an empty value.
	overrideString := func(name, key string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
			cfg.MarkSupplied(key)
		}
	}
	overrideString("host", config.KeyHost, &cfg.Host, fv.host)
	overrideString("index", config.KeyIndex, &cfg.Index, fv.index)
	overrideString("ap", config.KeyAP, &cfg.AP, fv.ap)
	overrideString("user", config.KeyUser, &cfg.Username, fv.user)
	overrideString("pass", config.KeyPass, &cfg.Password, fv.pass)
	overrideString("log-level", config.KeyLogLevel, &cfg.LogLevel, fv.logLevel)
	if flags.Changed("page-size") {
		cfg.PageSize = fv.pageSize
		cfg.MarkSupplied(config.KeyPageSize)
	}

	if err := cfg.ValidateCredentials(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.Start, cfg.End = config.DefaultWindow(now())
	if flags.Changed("start") {
		cfg.Start = fv.start
	}
	if flags.Changed("end") {
		cfg.End = fv.end
	}

	return cfg, nil
}

// run scans every matching document and prints the array. Output is only
// written once the scan has completed without error.
func (a *app) run(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.New(a.stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	scanID := uuid.NewString()
	tracker := metadata.New(a.now)
	q := query.Build(cfg.Index, cfg.AP, cfg.Start, cfg.End)

	level.Info(logger).Log("msg", "starting scan", "index", cfg.Index, "ap", cfg.AP,
		"start", cfg.Start, "end", cfg.End, "auth", cfg.HasCredentials(), "scan_id", scanID)

	client, err := a.newClient(search.Options{
		Host:      cfg.Host,
		BasicAuth: cfg.HasCredentials(),
		Username:  cfg.Username,
		Password:  cfg.Password,
		PageSize:  cfg.PageSize,
		KeepAlive: config.ScrollKeepAlive,
		OpaqueID:  scanID,
		Logger:    logger,
		Tracker:   tracker,
	})
	if err != nil {
		return err
	}

	var writer output.OutputWriter = output.NewArrayWriter(a.stdout)
	for doc, err := range client.Scan(ctx, q) {
		if err != nil {
			return err
		}
		if err := writer.Write(doc); err != nil {
			return fmt.Errorf("failed to buffer document %d: %w", tracker.Documents()+1, err)
		}
		tracker.RecordDocument()
	}

	if err := writer.Close(); err != nil {
		return err
	}

	md := tracker.GenerateMetadata(version, scanID, metadata.ScanParams{
		Index:    cfg.Index,
		AP:       cfg.AP,
		Start:    cfg.Start,
		End:      cfg.End,
		PageSize: cfg.PageSize,
	})
	level.Debug(logger).Log(append([]interface{}{"msg", "scan complete"}, md.Keyvals()...)...)
	return nil
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, relaierrors.ErrAuthFailed) ||
		errors.Is(err, relaierrors.ErrIndexNotFound) {
		return 2 // Authentication/authorization errors
	}

	if errors.Is(err, relaierrors.ErrNetworkFailure) ||
		errors.Is(err, relaierrors.ErrServiceUnavailable) {
		return 3 // Network errors
	}

	return 1 // Usage and general errors
}
