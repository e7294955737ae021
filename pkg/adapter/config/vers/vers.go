// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vers loads the versions section of configuration files.
// It is loaded before the rest of a file, so the version specific
// cfgN package may be chosen based on its contents.
package vers

import (
	"github.com/momeni/bikeshare/pkg/core/cerr"
	"github.com/momeni/bikeshare/pkg/core/model"
	"gopkg.in/yaml.v3"
)

// Config is embedded inline by the cfgN.Config structs.
type Config struct {
	Versions Versions `yaml:"versions"`
}

type Versions struct {
	Database model.SemVer `yaml:"database"`
	Config   model.SemVer `yaml:"config"`
}

// Load parses the versions section of data, ignoring other sections.
func Load(data []byte) (*Config, error) {
	vc := &Config{}
	if err := yaml.Unmarshal(data, vc); err != nil {
		return nil, err
	}
	return vc, nil
}

// Validate ensures that the configuration file format version is
// supported by the given config version.
func (vc *Config) Validate(config model.SemVer) error {
	return cerr.CheckVersion(config, vc.Versions.Config)
}

// ValidateDatabase ensures that the database schema version is
// supported by the given schema version.
func (vc *Config) ValidateDatabase(schema model.SemVer) error {
	return cerr.CheckVersion(schema, vc.Versions.Database)
}
