// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files from its users and allows the bsweb to instantiate different
// components, from the adapter or use cases layers, using those loaded
// configuration settings.
// These settings may be versioned and maintained by sub-packages.
// However, the parsed and validated configurations should be passed
// to their ultimate components as a series of individual params (for
// the mandatory items) and a series of functional options (for
// the optional items), so they may be validated by the relevant
// end-component such as a UseCase instance.
package config

import (
	"context"
	"fmt"
	"os"

	"github.com/momeni/bikeshare/pkg/adapter/config/cfg1"
	"github.com/momeni/bikeshare/pkg/adapter/config/vers"
	"github.com/momeni/bikeshare/pkg/adapter/db/postgres"
)

// DefaultPath is the configuration file path which is used when
// neither a command line flag nor an environment variable specify it.
const DefaultPath = "configs/sample-config.yaml"

// Load function loads, validates, and normalizes the configuration
// file and returns its settings as an instance of the Config struct.
// Given path must belong to a configuration file which conforms with
// the latest known configuration settings format.
// The corresponding database schema version must also be supported
// by the latest known database schema version.
func Load(ctx context.Context, path string) (*cfg1.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(ctx, data)
}

// Parse is similar to Load, but takes the configuration file contents.
func Parse(ctx context.Context, data []byte) (*cfg1.Config, error) {
	v, err := vers.Load(data)
	if err != nil {
		return nil, fmt.Errorf("loading versions: %w", err)
	}
	if err := v.Validate(cfg1.Version); err != nil {
		return nil, fmt.Errorf("unexpected config version: %w", err)
	}
	if err := v.ValidateDatabase(postgres.Version); err != nil {
		return nil, fmt.Errorf(
			"unexpected database schema version: %w", err,
		)
	}
	c, err := cfg1.Load(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("loading cfg1.Config: %w", err)
	}
	return c, nil
}
