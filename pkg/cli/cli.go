// Zaparoo Core
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Core.
//
// Zaparoo Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Core.  If not, see <http://www.gnu.org/licenses/>.

package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ZaparooProject/zaparoo-gamecache/internal/telemetry"
	"github.com/ZaparooProject/zaparoo-gamecache/pkg/config"
	"github.com/ZaparooProject/zaparoo-gamecache/pkg/helpers"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrVersion is returned by Parse when only the version was requested.
var ErrVersion = errors.New("version requested")

type Flags struct {
	set     *flag.FlagSet
	Config  *string
	System  *string
	List    *bool
	Export  *string
	Watch   *bool
	Version *bool
}

// SetupFlags defines the CLI flags on set, or the default command line if
// set is nil.
func SetupFlags(set *flag.FlagSet) *Flags {
	if set == nil {
		set = flag.CommandLine
	}
	return &Flags{
		set: set,
		Config: set.String(
			"config",
			"",
			"path to config file (default: $"+config.CfgEnv+" or the user config dir)",
		),
		System: set.String(
			"system",
			"",
			"only load the named system",
		),
		List: set.Bool(
			"list",
			false,
			"print every file in each loaded system",
		),
		Export: set.String(
			"export",
			"",
			"write loaded file lists to a CSV file",
		),
		Watch: set.Bool(
			"watch",
			false,
			"keep running and refresh systems when their folders change",
		),
		Version: set.Bool(
			"version",
			false,
			"print version and exit",
		),
	}
}

// Parse parses args and handles flags that don't need any setup.
func (f *Flags) Parse(args []string, out io.Writer) error {
	if err := f.set.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	if *f.Version {
		_, _ = fmt.Fprintf(out, "Zaparoo Game Cache v%s\n", config.AppVersion)
		return ErrVersion
	}

	return nil
}

// Setup starts logging, loads the config and enables error reporting if the
// config asks for it.
//
//nolint:gocritic // config struct copied for immutability
func Setup(flags *Flags, defaultConfig config.Values, writers []io.Writer) (*config.Instance, error) {
	err := helpers.InitLogging(helpers.LogDir(), writers)
	if err != nil {
		return nil, fmt.Errorf("error initializing logging: %w", err)
	}

	var cfg *config.Instance
	if flags != nil && *flags.Config != "" {
		cfg, err = config.Open(*flags.Config, defaultConfig)
	} else {
		cfg, err = config.NewConfig(helpers.ConfigDir(), defaultConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	if cfg.DebugLogging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// Initialize error reporting (opt-in)
	if err := telemetry.Init(
		cfg.ErrorReporting(),
		cfg.ErrorReportingDSN(),
		config.AppVersion,
	); err != nil {
		log.Warn().Err(err).Msg("failed to initialize error reporting")
	}

	log.Info().
		Str("version", config.AppVersion).
		Str("config", cfg.Path()).
		Msg("gamecache starting")

	return cfg, nil
}

// StderrWriter is the console writer used alongside the log file.
func StderrWriter() io.Writer {
	return zerolog.ConsoleWriter{Out: os.Stderr}
}
