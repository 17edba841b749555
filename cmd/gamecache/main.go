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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZaparooProject/zaparoo-gamecache/internal/telemetry"
	"github.com/ZaparooProject/zaparoo-gamecache/pkg/cli"
	"github.com/ZaparooProject/zaparoo-gamecache/pkg/config"
	"github.com/ZaparooProject/zaparoo-gamecache/pkg/helpers"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := cli.SetupFlags(nil)
	if err := flags.Parse(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, cli.ErrVersion) {
			return nil
		}
		return err
	}

	cfg, err := cli.Setup(flags, config.BaseDefaults, []io.Writer{cli.StderrWriter()})
	if err != nil {
		return err
	}
	defer telemetry.Close()

	defer func() {
		if err := recover(); err != nil {
			telemetry.Flush()
			_, _ = fmt.Fprintf(os.Stderr, "Panic: %s\n", err)
			log.Fatal().Msgf("panic: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fs := afero.NewOsFs()

	systems, err := cli.SelectSystems(cfg, *flags.System)
	if err != nil {
		return err
	}
	if len(systems) == 0 {
		log.Warn().Str("config", cfg.Path()).Msg("no systems configured")
	}

	store := cli.OpenStore(cfg, fs, helpers.AppDir())

	cache, err := cli.NewCache(cfg, fs, store)
	if err != nil {
		_ = store.Close()
		return err
	}
	defer func() {
		if err := cache.Close(); err != nil {
			log.Error().Err(err).Msg("error closing cache")
		}
	}()

	reports, err := cli.Warm(ctx, cache, fs, systems)
	cli.PrintReports(os.Stdout, reports, *flags.List)
	if err != nil {
		return err
	}

	if *flags.Export != "" {
		if err := cli.ExportCSV(fs, *flags.Export, reports); err != nil {
			return err
		}
		log.Info().Str("path", *flags.Export).Msg("exported file lists")
	}

	if *flags.Watch {
		return cli.Watch(ctx, cfg, cache, fs, systems, os.Stdout)
	}

	return nil
}
